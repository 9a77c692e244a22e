package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type VenueRequest struct {
	Name         string `json:"name" validate:"required"`
	Address      string `json:"address,omitempty"`
	CityID       uint   `json:"city_id" validate:"required"`
	Capacity     int    `json:"capacity,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
	ContactEmail string `json:"contact_email,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Active       *bool  `json:"active,omitempty"`
}

func (req *VenueRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 150)),
		validation.Field(&req.CityID, validation.Required),
		validation.Field(&req.Capacity, validation.Min(0)),
		validation.Field(&req.ContactEmail, is.Email),
	)
}
