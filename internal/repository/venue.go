package repository

import (
	"context"
	"fmt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository/dao"
)

var ErrVenueNotFound = dao.ErrVenueNotFound

type VenueDAO interface {
	Insert(ctx context.Context, venue dao.Venue) (dao.Venue, error)
	FindByID(ctx context.Context, id uint) (dao.Venue, error)
	List(ctx context.Context, sortSpec string, limit int) ([]dao.Venue, error)
	Update(ctx context.Context, venue dao.Venue) (dao.Venue, error)
	Delete(ctx context.Context, id uint) error
}

type VenueRepository struct {
	dao VenueDAO
}

func NewVenueRepository(dao VenueDAO) *VenueRepository {
	return &VenueRepository{
		dao: dao,
	}
}

func (r *VenueRepository) Create(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(venue))
	if err != nil {
		return domain.Venue{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *VenueRepository) FindByID(ctx context.Context, id uint) (domain.Venue, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *VenueRepository) List(ctx context.Context, sortSpec string, limit int) ([]domain.Venue, error) {
	found, err := r.dao.List(ctx, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	venues := make([]domain.Venue, 0, len(found))
	for _, v := range found {
		venues = append(venues, r.daoToDomain(v))
	}

	return venues, nil
}

func (r *VenueRepository) Update(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(venue))
	if err != nil {
		return domain.Venue{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *VenueRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *VenueRepository) daoToDomain(v dao.Venue) domain.Venue {
	venue := domain.Venue{
		ID:           v.ID,
		Name:         v.Name,
		Address:      v.Address,
		CityID:       v.CityID,
		Capacity:     v.Capacity,
		ContactName:  v.ContactName,
		ContactPhone: v.ContactPhone,
		ContactEmail: v.ContactEmail,
		Notes:        v.Notes,
		Active:       v.Active,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}

	if v.City.ID != 0 {
		city := cityDAOToDomain(v.City)
		venue.City = &city
	}

	return venue
}

func (r *VenueRepository) domainToDAO(v domain.Venue) dao.Venue {
	return dao.Venue{
		ID:           v.ID,
		Name:         v.Name,
		Address:      v.Address,
		CityID:       v.CityID,
		Capacity:     v.Capacity,
		ContactName:  v.ContactName,
		ContactPhone: v.ContactPhone,
		ContactEmail: v.ContactEmail,
		Notes:        v.Notes,
		Active:       v.Active,
	}
}

// cityDAOToDomain is shared by repositories that embed a preloaded city.
func cityDAOToDomain(c dao.City) domain.City {
	return domain.City{
		ID:        c.ID,
		Name:      c.Name,
		Country:   c.Country,
		Region:    c.Region,
		Active:    c.Active,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
