package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateCityRequest struct {
	Name    string `json:"name" validate:"required"`
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	Active  *bool  `json:"active,omitempty"`
}

func (req *CreateCityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Country, validation.Length(0, 100)),
		validation.Field(&req.Region, validation.Length(0, 100)),
	)
}

type UpdateCityRequest struct {
	Name    string `json:"name" validate:"required"`
	Country string `json:"country,omitempty"`
	Region  string `json:"region,omitempty"`
	Active  *bool  `json:"active,omitempty"`
}

func (req *UpdateCityRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Country, validation.Length(0, 100)),
		validation.Field(&req.Region, validation.Length(0, 100)),
	)
}
