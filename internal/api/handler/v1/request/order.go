package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type OrderTypeRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Active      *bool  `json:"active,omitempty"`
}

func (req *OrderTypeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Priority, validation.In("alta", "media", "baja")),
	)
}

type CreateEventOrderRequest struct {
	EventID       uint       `json:"event_id" validate:"required"`
	OrderTypeID   uint       `json:"order_type_id" validate:"required"`
	ResponsibleID uint       `json:"responsible_user_id" validate:"required"`
	Status        string     `json:"status,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

func (req *CreateEventOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EventID, validation.Required),
		validation.Field(&req.OrderTypeID, validation.Required),
		validation.Field(&req.ResponsibleID, validation.Required),
		validation.Field(&req.Status, validation.In("pendiente", "en_proceso", "completado", "cancelado")),
	)
}

type UpdateEventOrderRequest struct {
	OrderTypeID     uint       `json:"order_type_id" validate:"required"`
	ResponsibleID   uint       `json:"responsible_user_id" validate:"required"`
	Status          string     `json:"status" validate:"required"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	CompletionNotes string     `json:"completion_notes,omitempty"`
}

func (req *UpdateEventOrderRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.OrderTypeID, validation.Required),
		validation.Field(&req.ResponsibleID, validation.Required),
		validation.Field(&req.Status, validation.Required, validation.In("pendiente", "en_proceso", "completado", "cancelado")),
	)
}
