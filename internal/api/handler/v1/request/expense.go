package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type ExpenseRequestPayload struct {
	RequestName     string  `json:"request_name" validate:"required"`
	Email           string  `json:"email" validate:"required"`
	RequestType     string  `json:"request_type" validate:"required"`
	EstimatedAmount float64 `json:"estimated_amount" validate:"required"`
	IBAN            string  `json:"iban,omitempty"`
	ShippingAddress string  `json:"shipping_address,omitempty"`
	AdditionalInfo  string  `json:"additional_info,omitempty"`
	Status          string  `json:"status,omitempty"`
	CityID          uint    `json:"city_id" validate:"required"`
}

func (req *ExpenseRequestPayload) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.RequestName, validation.Required, validation.Length(2, 200)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.RequestType, validation.Required, validation.In("presupuesto", "material", "camisetas", "viajes", "IT")),
		validation.Field(&req.EstimatedAmount, validation.Required, validation.Min(0.0)),
		validation.Field(&req.Status, validation.In("pendiente", "en_proceso", "completado", "cancelado")),
		validation.Field(&req.CityID, validation.Required),
	)
}

type RemoveAttachmentRequest struct {
	Path string `json:"path" validate:"required"`
}

func (req *RemoveAttachmentRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Path, validation.Required),
	)
}
