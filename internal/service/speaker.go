package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository"
)

var ErrSpeakerNotFound = repository.ErrSpeakerNotFound

type SpeakerRepository interface {
	Create(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error)
	FindByID(ctx context.Context, id uint) (domain.Speaker, error)
	List(ctx context.Context, sortSpec string, limit int) ([]domain.Speaker, error)
	Update(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error)
	Delete(ctx context.Context, id uint) error
}

type SpeakerService struct {
	repo SpeakerRepository
}

func NewSpeakerService(repo SpeakerRepository) *SpeakerService {
	return &SpeakerService{
		repo: repo,
	}
}

func (s *SpeakerService) Create(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error) {
	created, err := s.repo.Create(ctx, speaker)
	if err != nil {
		return domain.Speaker{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *SpeakerService) Get(ctx context.Context, id uint) (domain.Speaker, error) {
	speaker, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSpeakerNotFound) {
			return domain.Speaker{}, ErrSpeakerNotFound
		}

		return domain.Speaker{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return speaker, nil
}

func (s *SpeakerService) List(ctx context.Context, sortSpec string, limit int) ([]domain.Speaker, error) {
	speakers, err := s.repo.List(ctx, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return speakers, nil
}

func (s *SpeakerService) Update(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error) {
	updated, err := s.repo.Update(ctx, speaker)
	if err != nil {
		if errors.Is(err, repository.ErrSpeakerNotFound) {
			return domain.Speaker{}, ErrSpeakerNotFound
		}

		return domain.Speaker{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *SpeakerService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSpeakerNotFound) {
			return ErrSpeakerNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
