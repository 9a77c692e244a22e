package domain

import "time"

type ExpenseType string

const (
	ExpenseBudget   ExpenseType = "presupuesto"
	ExpenseMaterial ExpenseType = "material"
	ExpenseShirts   ExpenseType = "camisetas"
	ExpenseTravel   ExpenseType = "viajes"
	ExpenseIT       ExpenseType = "IT"
)

type ExpenseStatus string

const (
	ExpensePending    ExpenseStatus = "pendiente"
	ExpenseInProgress ExpenseStatus = "en_proceso"
	ExpenseCompleted  ExpenseStatus = "completado"
	ExpenseCancelled  ExpenseStatus = "cancelado"
)

// Attachment is file metadata kept on the expense request row. The bytes
// themselves live in blob storage under Path.
type Attachment struct {
	Name       string    `json:"name"`
	URL        string    `json:"url"`
	Path       string    `json:"path"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	UploadedAt time.Time `json:"uploadedAt"`
}

type ExpenseRequest struct {
	ID              uint          `json:"id"`
	RequestName     string        `json:"request_name"`
	Email           string        `json:"email"`
	RequestType     ExpenseType   `json:"request_type"`
	EstimatedAmount float64       `json:"estimated_amount"`
	IBAN            string        `json:"iban,omitempty"`
	ShippingAddress string        `json:"shipping_address,omitempty"`
	AdditionalInfo  string        `json:"additional_info,omitempty"`
	Attachments     []Attachment  `json:"attachments"`
	Status          ExpenseStatus `json:"status"`
	CityID          uint          `json:"city_id"`
	City            *City         `json:"city,omitempty"`
	CreatedBy       uint          `json:"created_by"`
	Creator         *User         `json:"creator,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}
