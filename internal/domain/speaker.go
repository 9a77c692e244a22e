package domain

import "time"

type ContactStatus string

const (
	ContactNotContacted ContactStatus = "no_contactado"
	ContactContacted    ContactStatus = "contactado"
	ContactFollowUp     ContactStatus = "seguimiento"
)

type ProposalStatus string

const (
	ProposalNone      ProposalStatus = "sin_propuesta"
	ProposalSent      ProposalStatus = "propuesta_enviada"
	ProposalConfirmed ProposalStatus = "confirmado"
	ProposalRejected  ProposalStatus = "rechazado"
)

type Speaker struct {
	ID                       uint           `json:"id"`
	Name                     string         `json:"name"`
	Email                    string         `json:"email"`
	Phone                    string         `json:"phone,omitempty"`
	SocialHandle             string         `json:"social_handle,omitempty"`
	Bio                      string         `json:"bio,omitempty"`
	ContactStatus            ContactStatus  `json:"contact_status"`
	ProposalStatus           ProposalStatus `json:"proposal_status"`
	ProposalConfirmationDate *time.Time     `json:"proposal_confirmation_date,omitempty"`
	Active                   bool           `json:"active"`
	CreatedAt                time.Time      `json:"created_at"`
	UpdatedAt                time.Time      `json:"updated_at"`
}
