package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrEventOrderNotFound = errors.New("event order not found")

type EventOrder struct {
	ID uint `gorm:"primaryKey"`

	EventID           uint      `gorm:"not null;index"`
	Event             Event     `gorm:"foreignKey:EventID"`
	OrderTypeID       uint      `gorm:"not null"`
	OrderType         OrderType `gorm:"foreignKey:OrderTypeID"`
	ResponsibleUserID uint      `gorm:"not null"`
	Responsible       UserProfile `gorm:"foreignKey:ResponsibleUserID"`
	Status            string    `gorm:"not null;default:pendiente"`
	DueDate           *time.Time
	Notes             string
	CompletionNotes   string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type EventOrderDAO struct {
	db *gorm.DB
}

func NewEventOrderDAO(db *gorm.DB) *EventOrderDAO {
	return &EventOrderDAO{
		db: db,
	}
}

func (d *EventOrderDAO) Insert(ctx context.Context, order EventOrder) (EventOrder, error) {
	result := d.db.WithContext(ctx).Create(&order)
	if result.Error != nil {
		return EventOrder{}, result.Error
	}

	return d.FindByID(ctx, order.ID)
}

func (d *EventOrderDAO) FindByID(ctx context.Context, id uint) (EventOrder, error) {
	var order EventOrder

	result := d.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.City").
		Preload("OrderType").
		Preload("Responsible").
		First(&order, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventOrder{}, ErrEventOrderNotFound
		}

		return EventOrder{}, result.Error
	}

	return order, nil
}

// List returns orders with event, type and responsible embedded. eventID == 0
// means all events.
func (d *EventOrderDAO) List(ctx context.Context, eventID uint, sortSpec string, limit int) ([]EventOrder, error) {
	var orders []EventOrder

	query := d.db.WithContext(ctx).
		Preload("Event").
		Preload("Event.City").
		Preload("OrderType").
		Preload("Responsible")
	if eventID != 0 {
		query = query.Where("event_id = ?", eventID)
	}
	query = applySort(query, sortSpec, "-created_at")
	query = applyLimit(query, limit)

	result := query.Find(&orders)
	if result.Error != nil {
		return nil, result.Error
	}

	return orders, nil
}

func (d *EventOrderDAO) Update(ctx context.Context, order EventOrder) (EventOrder, error) {
	result := d.db.WithContext(ctx).
		Model(&EventOrder{ID: order.ID}).
		Select("EventID", "OrderTypeID", "ResponsibleUserID", "Status",
			"DueDate", "Notes", "CompletionNotes").
		Updates(order)
	if result.Error != nil {
		return EventOrder{}, result.Error
	}
	if result.RowsAffected == 0 {
		return EventOrder{}, ErrEventOrderNotFound
	}

	return d.FindByID(ctx, order.ID)
}

func (d *EventOrderDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&EventOrder{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEventOrderNotFound
	}

	return nil
}
