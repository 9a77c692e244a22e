package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository"
)

var ErrVenueNotFound = repository.ErrVenueNotFound

type VenueRepository interface {
	Create(ctx context.Context, venue domain.Venue) (domain.Venue, error)
	FindByID(ctx context.Context, id uint) (domain.Venue, error)
	List(ctx context.Context, sortSpec string, limit int) ([]domain.Venue, error)
	Update(ctx context.Context, venue domain.Venue) (domain.Venue, error)
	Delete(ctx context.Context, id uint) error
}

type VenueService struct {
	repo     VenueRepository
	cityRepo AuthCityRepository
}

func NewVenueService(repo VenueRepository, cityRepo AuthCityRepository) *VenueService {
	return &VenueService{
		repo:     repo,
		cityRepo: cityRepo,
	}
}

func (s *VenueService) Create(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	if _, err := s.cityRepo.FindByID(ctx, venue.CityID); err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return domain.Venue{}, ErrCityNotFound
		}

		return domain.Venue{}, fmt.Errorf("s.cityRepo.FindByID -> %w", err)
	}

	created, err := s.repo.Create(ctx, venue)
	if err != nil {
		return domain.Venue{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *VenueService) Get(ctx context.Context, id uint) (domain.Venue, error) {
	venue, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return domain.Venue{}, ErrVenueNotFound
		}

		return domain.Venue{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return venue, nil
}

func (s *VenueService) List(ctx context.Context, sortSpec string, limit int) ([]domain.Venue, error) {
	venues, err := s.repo.List(ctx, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return venues, nil
}

func (s *VenueService) Update(ctx context.Context, venue domain.Venue) (domain.Venue, error) {
	updated, err := s.repo.Update(ctx, venue)
	if err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return domain.Venue{}, ErrVenueNotFound
		}

		return domain.Venue{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *VenueService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrVenueNotFound) {
			return ErrVenueNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
