package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrSpeakerNotFound = errors.New("speaker not found")

type Speaker struct {
	ID uint `gorm:"primaryKey"`

	Name                     string `gorm:"not null"`
	Email                    string `gorm:"not null"`
	Phone                    string
	SocialHandle             string
	Bio                      string
	ContactStatus            string `gorm:"not null;default:no_contactado"`
	ProposalStatus           string `gorm:"not null;default:sin_propuesta"`
	ProposalConfirmationDate *time.Time
	Active                   bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SpeakerDAO struct {
	db *gorm.DB
}

func NewSpeakerDAO(db *gorm.DB) *SpeakerDAO {
	return &SpeakerDAO{
		db: db,
	}
}

func (d *SpeakerDAO) Insert(ctx context.Context, speaker Speaker) (Speaker, error) {
	result := d.db.WithContext(ctx).Create(&speaker)
	if result.Error != nil {
		return Speaker{}, result.Error
	}

	return speaker, nil
}

func (d *SpeakerDAO) FindByID(ctx context.Context, id uint) (Speaker, error) {
	var speaker Speaker

	result := d.db.WithContext(ctx).First(&speaker, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Speaker{}, ErrSpeakerNotFound
		}

		return Speaker{}, result.Error
	}

	return speaker, nil
}

func (d *SpeakerDAO) List(ctx context.Context, sortSpec string, limit int) ([]Speaker, error) {
	var speakers []Speaker

	query := d.db.WithContext(ctx)
	query = applySort(query, sortSpec, "name")
	query = applyLimit(query, limit)

	result := query.Find(&speakers)
	if result.Error != nil {
		return nil, result.Error
	}

	return speakers, nil
}

func (d *SpeakerDAO) Update(ctx context.Context, speaker Speaker) (Speaker, error) {
	result := d.db.WithContext(ctx).
		Model(&Speaker{ID: speaker.ID}).
		Select("Name", "Email", "Phone", "SocialHandle", "Bio",
			"ContactStatus", "ProposalStatus", "ProposalConfirmationDate", "Active").
		Updates(speaker)
	if result.Error != nil {
		return Speaker{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Speaker{}, ErrSpeakerNotFound
	}

	return d.FindByID(ctx, speaker.ID)
}

func (d *SpeakerDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Speaker{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSpeakerNotFound
	}

	return nil
}
