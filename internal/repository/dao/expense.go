package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrExpenseRequestNotFound = errors.New("expense request not found")

type ExpenseRequest struct {
	ID uint `gorm:"primaryKey"`

	RequestName     string `gorm:"not null"`
	Email           string `gorm:"not null"`
	RequestType     string `gorm:"not null"`
	EstimatedAmount float64
	IBAN            string
	ShippingAddress string
	AdditionalInfo  string
	Attachments     datatypes.JSON `gorm:"type:jsonb"`
	Status          string         `gorm:"not null;default:pendiente"`
	CityID          uint           `gorm:"not null;index"`
	City            City           `gorm:"foreignKey:CityID"`
	CreatedBy       uint           `gorm:"not null"`
	Creator         UserProfile    `gorm:"foreignKey:CreatedBy"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ExpenseRequestDAO struct {
	db *gorm.DB
}

func NewExpenseRequestDAO(db *gorm.DB) *ExpenseRequestDAO {
	return &ExpenseRequestDAO{
		db: db,
	}
}

func (d *ExpenseRequestDAO) Insert(ctx context.Context, request ExpenseRequest) (ExpenseRequest, error) {
	result := d.db.WithContext(ctx).Create(&request)
	if result.Error != nil {
		return ExpenseRequest{}, result.Error
	}

	return d.FindByID(ctx, request.ID)
}

func (d *ExpenseRequestDAO) FindByID(ctx context.Context, id uint) (ExpenseRequest, error) {
	var request ExpenseRequest

	result := d.db.WithContext(ctx).
		Preload("City").
		Preload("Creator").
		First(&request, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ExpenseRequest{}, ErrExpenseRequestNotFound
		}

		return ExpenseRequest{}, result.Error
	}

	return request, nil
}

// Filter narrows List. Zero values mean no filter.
type ExpenseRequestFilter struct {
	CityID      uint
	Status      string
	RequestType string
}

func (d *ExpenseRequestDAO) List(ctx context.Context, filter ExpenseRequestFilter, sortSpec string, limit int) ([]ExpenseRequest, error) {
	var requests []ExpenseRequest

	query := d.db.WithContext(ctx).
		Preload("City").
		Preload("Creator")
	if filter.CityID != 0 {
		query = query.Where("city_id = ?", filter.CityID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RequestType != "" {
		query = query.Where("request_type = ?", filter.RequestType)
	}
	query = applySort(query, sortSpec, "-created_at")
	query = applyLimit(query, limit)

	result := query.Find(&requests)
	if result.Error != nil {
		return nil, result.Error
	}

	return requests, nil
}

func (d *ExpenseRequestDAO) Update(ctx context.Context, request ExpenseRequest) (ExpenseRequest, error) {
	result := d.db.WithContext(ctx).
		Model(&ExpenseRequest{ID: request.ID}).
		Select("RequestName", "Email", "RequestType", "EstimatedAmount", "IBAN",
			"ShippingAddress", "AdditionalInfo", "Attachments", "Status", "CityID").
		Updates(request)
	if result.Error != nil {
		return ExpenseRequest{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ExpenseRequest{}, ErrExpenseRequestNotFound
	}

	return d.FindByID(ctx, request.ID)
}

func (d *ExpenseRequestDAO) UpdateAttachments(ctx context.Context, id uint, attachments datatypes.JSON) (ExpenseRequest, error) {
	result := d.db.WithContext(ctx).
		Model(&ExpenseRequest{ID: id}).
		Update("attachments", attachments)
	if result.Error != nil {
		return ExpenseRequest{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ExpenseRequest{}, ErrExpenseRequestNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *ExpenseRequestDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ExpenseRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrExpenseRequestNotFound
	}

	return nil
}
