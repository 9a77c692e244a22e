package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrOrderTypeNotFound = errors.New("order type not found")

type OrderType struct {
	ID uint `gorm:"primaryKey"`

	Name        string `gorm:"not null"`
	Description string
	Priority    string `gorm:"not null;default:media"`
	Active      bool   `gorm:"not null;default:true"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type OrderTypeDAO struct {
	db *gorm.DB
}

func NewOrderTypeDAO(db *gorm.DB) *OrderTypeDAO {
	return &OrderTypeDAO{
		db: db,
	}
}

func (d *OrderTypeDAO) Insert(ctx context.Context, orderType OrderType) (OrderType, error) {
	result := d.db.WithContext(ctx).Create(&orderType)
	if result.Error != nil {
		return OrderType{}, result.Error
	}

	return orderType, nil
}

func (d *OrderTypeDAO) FindByID(ctx context.Context, id uint) (OrderType, error) {
	var orderType OrderType

	result := d.db.WithContext(ctx).First(&orderType, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return OrderType{}, ErrOrderTypeNotFound
		}

		return OrderType{}, result.Error
	}

	return orderType, nil
}

func (d *OrderTypeDAO) List(ctx context.Context, sortSpec string, limit int) ([]OrderType, error) {
	var orderTypes []OrderType

	query := d.db.WithContext(ctx)
	query = applySort(query, sortSpec, "name")
	query = applyLimit(query, limit)

	result := query.Find(&orderTypes)
	if result.Error != nil {
		return nil, result.Error
	}

	return orderTypes, nil
}

func (d *OrderTypeDAO) Update(ctx context.Context, orderType OrderType) (OrderType, error) {
	result := d.db.WithContext(ctx).
		Model(&OrderType{ID: orderType.ID}).
		Select("Name", "Description", "Priority", "Active").
		Updates(orderType)
	if result.Error != nil {
		return OrderType{}, result.Error
	}
	if result.RowsAffected == 0 {
		return OrderType{}, ErrOrderTypeNotFound
	}

	return d.FindByID(ctx, orderType.ID)
}

func (d *OrderTypeDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&OrderType{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOrderTypeNotFound
	}

	return nil
}
