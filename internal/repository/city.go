package repository

import (
	"context"
	"fmt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository/dao"
)

var ErrCityNotFound = dao.ErrCityNotFound

type CityDAO interface {
	Insert(ctx context.Context, city dao.City) (dao.City, error)
	FindByID(ctx context.Context, id uint) (dao.City, error)
	List(ctx context.Context, sortSpec string, limit int) ([]dao.City, error)
	ListActive(ctx context.Context) ([]dao.City, error)
	Update(ctx context.Context, city dao.City) (dao.City, error)
	Delete(ctx context.Context, id uint) error
}

type CityRepository struct {
	dao CityDAO
}

func NewCityRepository(dao CityDAO) *CityRepository {
	return &CityRepository{
		dao: dao,
	}
}

func (r *CityRepository) Create(ctx context.Context, city domain.City) (domain.City, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(city))
	if err != nil {
		return domain.City{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *CityRepository) FindByID(ctx context.Context, id uint) (domain.City, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.City{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *CityRepository) List(ctx context.Context, sortSpec string, limit int) ([]domain.City, error) {
	found, err := r.dao.List(ctx, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	cities := make([]domain.City, 0, len(found))
	for _, c := range found {
		cities = append(cities, r.daoToDomain(c))
	}

	return cities, nil
}

func (r *CityRepository) ListActive(ctx context.Context) ([]domain.City, error) {
	found, err := r.dao.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListActive -> %w", err)
	}

	cities := make([]domain.City, 0, len(found))
	for _, c := range found {
		cities = append(cities, r.daoToDomain(c))
	}

	return cities, nil
}

func (r *CityRepository) Update(ctx context.Context, city domain.City) (domain.City, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(city))
	if err != nil {
		return domain.City{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *CityRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *CityRepository) daoToDomain(c dao.City) domain.City {
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

func (r *CityRepository) domainToDAO(c domain.City) dao.City {
	return dao.City{
		ID:      c.ID,
		Name:    c.Name,
		Country: c.Country,
		Region:  c.Region,
		Active:  c.Active,
	}
}
