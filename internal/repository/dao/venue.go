package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrVenueNotFound = errors.New("venue not found")

type Venue struct {
	ID uint `gorm:"primaryKey"`

	Name         string `gorm:"not null"`
	Address      string
	CityID       uint `gorm:"not null;index"`
	City         City `gorm:"foreignKey:CityID"`
	Capacity     int
	ContactName  string
	ContactPhone string
	ContactEmail string
	Notes        string
	Active       bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type VenueDAO struct {
	db *gorm.DB
}

func NewVenueDAO(db *gorm.DB) *VenueDAO {
	return &VenueDAO{
		db: db,
	}
}

func (d *VenueDAO) Insert(ctx context.Context, venue Venue) (Venue, error) {
	result := d.db.WithContext(ctx).Create(&venue)
	if result.Error != nil {
		return Venue{}, result.Error
	}

	return venue, nil
}

func (d *VenueDAO) FindByID(ctx context.Context, id uint) (Venue, error) {
	var venue Venue

	result := d.db.WithContext(ctx).Preload("City").First(&venue, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Venue{}, ErrVenueNotFound
		}

		return Venue{}, result.Error
	}

	return venue, nil
}

func (d *VenueDAO) List(ctx context.Context, sortSpec string, limit int) ([]Venue, error) {
	var venues []Venue

	query := d.db.WithContext(ctx).Preload("City")
	query = applySort(query, sortSpec, "name")
	query = applyLimit(query, limit)

	result := query.Find(&venues)
	if result.Error != nil {
		return nil, result.Error
	}

	return venues, nil
}

func (d *VenueDAO) Update(ctx context.Context, venue Venue) (Venue, error) {
	result := d.db.WithContext(ctx).
		Model(&Venue{ID: venue.ID}).
		Select("Name", "Address", "CityID", "Capacity",
			"ContactName", "ContactPhone", "ContactEmail", "Notes", "Active").
		Updates(venue)
	if result.Error != nil {
		return Venue{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Venue{}, ErrVenueNotFound
	}

	return d.FindByID(ctx, venue.ID)
}

func (d *VenueDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Venue{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVenueNotFound
	}

	return nil
}
