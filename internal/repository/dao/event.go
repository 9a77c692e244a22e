package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrEventNotFound = errors.New("event not found")

type Event struct {
	ID uint `gorm:"primaryKey"`

	Description  string
	CityID       uint      `gorm:"not null;index"`
	City         City      `gorm:"foreignKey:CityID"`
	Date         time.Time `gorm:"not null;index"`
	SpeakerID    *uint
	Speaker      *Speaker `gorm:"foreignKey:SpeakerID"`
	VenueID      *uint
	Venue        *Venue `gorm:"foreignKey:VenueID"`
	Status       string `gorm:"not null;default:planificacion"`
	MaxAttendees int

	// Preparations and Volunteers are JSONB documents; the preparation
	// sub-statuses and the volunteer list have no relational shape of
	// their own.
	Preparations datatypes.JSON `gorm:"type:jsonb"`
	Volunteers   datatypes.JSON `gorm:"column:confirmed_volunteers;type:jsonb"`

	Notes string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).Create(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("City").
		Preload("Speaker").
		Preload("Venue").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// List returns events with city, speaker and venue embedded. cityID == 0
// means all cities.
func (d *EventDAO) List(ctx context.Context, cityID uint, sortSpec string, limit int) ([]Event, error) {
	var events []Event

	query := d.db.WithContext(ctx).
		Preload("City").
		Preload("Speaker").
		Preload("Venue")
	if cityID != 0 {
		query = query.Where("city_id = ?", cityID)
	}
	query = applySort(query, sortSpec, "-date")
	query = applyLimit(query, limit)

	result := query.Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// ListBetween returns events in [from, to) for one city, or all cities when
// cityID is 0. Used by the academic-year calendar.
func (d *EventDAO) ListBetween(ctx context.Context, cityID uint, from, to time.Time) ([]Event, error) {
	var events []Event

	query := d.db.WithContext(ctx).
		Preload("City").
		Preload("Speaker").
		Preload("Venue").
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC")
	if cityID != 0 {
		query = query.Where("city_id = ?", cityID)
	}

	result := query.Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) CountByCity(ctx context.Context, cityID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Event{}).
		Where("city_id = ?", cityID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).
		Model(&Event{ID: event.ID}).
		Select("Description", "CityID", "Date", "SpeakerID", "VenueID",
			"Status", "MaxAttendees", "Preparations", "Volunteers", "Notes").
		Updates(event)
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return d.FindByID(ctx, event.ID)
}

func (d *EventDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Event{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventNotFound
	}

	return nil
}
