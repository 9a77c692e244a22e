package repository

import (
	"context"
	"fmt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository/dao"
)

var ErrSpeakerNotFound = dao.ErrSpeakerNotFound

type SpeakerDAO interface {
	Insert(ctx context.Context, speaker dao.Speaker) (dao.Speaker, error)
	FindByID(ctx context.Context, id uint) (dao.Speaker, error)
	List(ctx context.Context, sortSpec string, limit int) ([]dao.Speaker, error)
	Update(ctx context.Context, speaker dao.Speaker) (dao.Speaker, error)
	Delete(ctx context.Context, id uint) error
}

type SpeakerRepository struct {
	dao SpeakerDAO
}

func NewSpeakerRepository(dao SpeakerDAO) *SpeakerRepository {
	return &SpeakerRepository{
		dao: dao,
	}
}

func (r *SpeakerRepository) Create(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(speaker))
	if err != nil {
		return domain.Speaker{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SpeakerRepository) FindByID(ctx context.Context, id uint) (domain.Speaker, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Speaker{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SpeakerRepository) List(ctx context.Context, sortSpec string, limit int) ([]domain.Speaker, error) {
	found, err := r.dao.List(ctx, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	speakers := make([]domain.Speaker, 0, len(found))
	for _, s := range found {
		speakers = append(speakers, r.daoToDomain(s))
	}

	return speakers, nil
}

func (r *SpeakerRepository) Update(ctx context.Context, speaker domain.Speaker) (domain.Speaker, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(speaker))
	if err != nil {
		return domain.Speaker{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *SpeakerRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *SpeakerRepository) daoToDomain(s dao.Speaker) domain.Speaker {
	return domain.Speaker{
		ID:                       s.ID,
		Name:                     s.Name,
		Email:                    s.Email,
		Phone:                    s.Phone,
		SocialHandle:             s.SocialHandle,
		Bio:                      s.Bio,
		ContactStatus:            domain.ContactStatus(s.ContactStatus),
		ProposalStatus:           domain.ProposalStatus(s.ProposalStatus),
		ProposalConfirmationDate: s.ProposalConfirmationDate,
		Active:                   s.Active,
		CreatedAt:                s.CreatedAt,
		UpdatedAt:                s.UpdatedAt,
	}
}

func (r *SpeakerRepository) domainToDAO(s domain.Speaker) dao.Speaker {
	return dao.Speaker{
		ID:                       s.ID,
		Name:                     s.Name,
		Email:                    s.Email,
		Phone:                    s.Phone,
		SocialHandle:             s.SocialHandle,
		Bio:                      s.Bio,
		ContactStatus:            string(s.ContactStatus),
		ProposalStatus:           string(s.ProposalStatus),
		ProposalConfirmationDate: s.ProposalConfirmationDate,
		Active:                   s.Active,
	}
}
