package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository"
)

var ErrCityNotFound = repository.ErrCityNotFound

// CityInUseError rejects deleting a city that events still reference.
type CityInUseError struct {
	Count int64
}

func (e *CityInUseError) Error() string {
	return fmt.Sprintf("city cannot be deleted: %v associated events", e.Count)
}

type CityRepository interface {
	Create(ctx context.Context, city domain.City) (domain.City, error)
	FindByID(ctx context.Context, id uint) (domain.City, error)
	List(ctx context.Context, sortSpec string, limit int) ([]domain.City, error)
	ListActive(ctx context.Context) ([]domain.City, error)
	Update(ctx context.Context, city domain.City) (domain.City, error)
	Delete(ctx context.Context, id uint) error
}

type CityEventCounter interface {
	CountByCity(ctx context.Context, cityID uint) (int64, error)
}

type CityService struct {
	repo   CityRepository
	events CityEventCounter
}

func NewCityService(repo CityRepository, events CityEventCounter) *CityService {
	return &CityService{
		repo:   repo,
		events: events,
	}
}

func (s *CityService) Create(ctx context.Context, city domain.City) (domain.City, error) {
	created, err := s.repo.Create(ctx, city)
	if err != nil {
		return domain.City{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *CityService) Get(ctx context.Context, id uint) (domain.City, error) {
	city, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return domain.City{}, ErrCityNotFound
		}

		return domain.City{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return city, nil
}

func (s *CityService) List(ctx context.Context, sortSpec string, limit int) ([]domain.City, error) {
	cities, err := s.repo.List(ctx, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return cities, nil
}

func (s *CityService) Update(ctx context.Context, city domain.City) (domain.City, error) {
	updated, err := s.repo.Update(ctx, city)
	if err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return domain.City{}, ErrCityNotFound
		}

		return domain.City{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// Delete refuses to remove a city while events still reference it; the error
// carries how many do.
func (s *CityService) Delete(ctx context.Context, id uint) error {
	count, err := s.events.CountByCity(ctx, id)
	if err != nil {
		return fmt.Errorf("s.events.CountByCity -> %w", err)
	}
	if count > 0 {
		return &CityInUseError{Count: count}
	}

	if err = s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCityNotFound) {
			return ErrCityNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
