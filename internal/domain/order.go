package domain

import "time"

type OrderPriority string

const (
	PriorityHigh   OrderPriority = "alta"
	PriorityMedium OrderPriority = "media"
	PriorityLow    OrderPriority = "baja"
)

type OrderType struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Priority    OrderPriority `json:"priority"`
	Active      bool          `json:"active"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pendiente"
	OrderInProgress OrderStatus = "en_proceso"
	OrderCompleted  OrderStatus = "completado"
	OrderCancelled  OrderStatus = "cancelado"
)

type EventOrder struct {
	ID              uint        `json:"id"`
	EventID         uint        `json:"event_id"`
	Event           *Event      `json:"event,omitempty"`
	OrderTypeID     uint        `json:"order_type_id"`
	OrderType       *OrderType  `json:"order_type,omitempty"`
	ResponsibleID   uint        `json:"responsible_user_id"`
	Responsible     *User       `json:"responsible,omitempty"`
	Status          OrderStatus `json:"status"`
	DueDate         *time.Time  `json:"due_date,omitempty"`
	Notes           string      `json:"notes,omitempty"`
	CompletionNotes string      `json:"completion_notes,omitempty"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}
