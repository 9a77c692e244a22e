package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type SpeakerRequest struct {
	Name                     string     `json:"name" validate:"required"`
	Email                    string     `json:"email,omitempty"`
	Phone                    string     `json:"phone,omitempty"`
	SocialHandle             string     `json:"social_handle,omitempty"`
	Bio                      string     `json:"bio,omitempty"`
	ContactStatus            string     `json:"contact_status,omitempty"`
	ProposalStatus           string     `json:"proposal_status,omitempty"`
	ProposalConfirmationDate *time.Time `json:"proposal_confirmation_date,omitempty"`
	Active                   *bool      `json:"active,omitempty"`
}

func (req *SpeakerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 150)),
		validation.Field(&req.Email, is.Email),
		validation.Field(&req.ContactStatus, validation.In("no_contactado", "contactado", "seguimiento")),
		validation.Field(&req.ProposalStatus, validation.In("sin_propuesta", "propuesta_enviada", "confirmado", "rechazado")),
	)
}
