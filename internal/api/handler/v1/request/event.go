package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/centerthink/centerthink-api/internal/domain"
)

type EventRequest struct {
	Description  string               `json:"description" validate:"required"`
	CityID       uint                 `json:"city_id" validate:"required"`
	Date         time.Time            `json:"date" validate:"required"`
	SpeakerID    *uint                `json:"speaker_id,omitempty"`
	VenueID      *uint                `json:"venue_id,omitempty"`
	Status       string               `json:"status,omitempty"`
	MaxAttendees int                  `json:"max_attendees,omitempty"`
	Preparations *domain.Preparations `json:"preparations,omitempty"`
	Notes        string               `json:"notes,omitempty"`
}

func (req *EventRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Description, validation.Required, validation.Length(2, 300)),
		validation.Field(&req.CityID, validation.Required),
		validation.Field(&req.Date, validation.Required),
		validation.Field(&req.Status, validation.In("planificacion", "confirmado", "completado", "cancelado")),
		validation.Field(&req.MaxAttendees, validation.Min(0)),
	)
}

type ConfirmAttendanceRequest struct {
	ArrivalTime string `json:"arrival_time" validate:"required"`
}

func (req *ConfirmAttendanceRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ArrivalTime, validation.Required, validation.Length(1, 50)),
	)
}
