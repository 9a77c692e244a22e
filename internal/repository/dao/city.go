package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrCityNotFound = errors.New("city not found")

type City struct {
	ID uint `gorm:"primaryKey"`

	Name    string `gorm:"not null;index"`
	Country string
	Region  string
	Active  bool `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CityDAO struct {
	db *gorm.DB
}

func NewCityDAO(db *gorm.DB) *CityDAO {
	return &CityDAO{
		db: db,
	}
}

func (d *CityDAO) Insert(ctx context.Context, city City) (City, error) {
	result := d.db.WithContext(ctx).Create(&city)
	if result.Error != nil {
		return City{}, result.Error
	}

	return city, nil
}

func (d *CityDAO) FindByID(ctx context.Context, id uint) (City, error) {
	var city City

	result := d.db.WithContext(ctx).First(&city, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return City{}, ErrCityNotFound
		}

		return City{}, result.Error
	}

	return city, nil
}

func (d *CityDAO) List(ctx context.Context, sortSpec string, limit int) ([]City, error) {
	var cities []City

	query := d.db.WithContext(ctx)
	query = applySort(query, sortSpec, "name")
	query = applyLimit(query, limit)

	result := query.Find(&cities)
	if result.Error != nil {
		return nil, result.Error
	}

	return cities, nil
}

func (d *CityDAO) ListActive(ctx context.Context) ([]City, error) {
	var cities []City

	result := d.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&cities)
	if result.Error != nil {
		return nil, result.Error
	}

	return cities, nil
}

func (d *CityDAO) Update(ctx context.Context, city City) (City, error) {
	result := d.db.WithContext(ctx).
		Model(&City{ID: city.ID}).
		Select("Name", "Country", "Region", "Active").
		Updates(city)
	if result.Error != nil {
		return City{}, result.Error
	}
	if result.RowsAffected == 0 {
		return City{}, ErrCityNotFound
	}

	return d.FindByID(ctx, city.ID)
}

func (d *CityDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&City{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCityNotFound
	}

	return nil
}
