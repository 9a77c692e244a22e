package domain

import "time"

type EventStatus string

const (
	EventPlanning  EventStatus = "planificacion"
	EventConfirmed EventStatus = "confirmado"
	EventCompleted EventStatus = "completado"
	EventCancelled EventStatus = "cancelado"
)

type PreparationStatus string

const (
	PreparationPending    PreparationStatus = "pendiente"
	PreparationProcessing PreparationStatus = "procesando"
	PreparationResolved   PreparationStatus = "resuelto"
)

// Preparations tracks five independent pre-event tasks.
type Preparations struct {
	PresentationVideo PreparationStatus `json:"presentation_video"`
	PosterImage       PreparationStatus `json:"poster_image"`
	Theme             PreparationStatus `json:"theme"`
	Transport         PreparationStatus `json:"transport"`
	Accommodation     PreparationStatus `json:"accommodation"`
}

func DefaultPreparations() Preparations {
	return Preparations{
		PresentationVideo: PreparationPending,
		PosterImage:       PreparationPending,
		Theme:             PreparationPending,
		Transport:         PreparationPending,
		Accommodation:     PreparationPending,
	}
}

// Volunteer is a confirmed attendance entry, unique per user.
type Volunteer struct {
	UserID      uint   `json:"user_id"`
	ArrivalTime string `json:"arrival_time"`
}

type Event struct {
	ID           uint        `json:"id"`
	Description  string      `json:"description"`
	CityID       uint        `json:"city_id"`
	City         *City       `json:"city,omitempty"`
	Date         time.Time   `json:"date"`
	SpeakerID    *uint       `json:"speaker_id,omitempty"`
	Speaker      *Speaker    `json:"speaker,omitempty"`
	VenueID      *uint       `json:"venue_id,omitempty"`
	Venue        *Venue      `json:"venue,omitempty"`
	Status       EventStatus `json:"status"`
	MaxAttendees int         `json:"max_attendees"`
	Preparations Preparations `json:"preparations"`
	Volunteers   []Volunteer `json:"confirmed_volunteers"`
	Notes        string      `json:"notes,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// ConfirmVolunteer records attendance for userID. A previous entry for the
// same user is replaced, so the list stays unique per user and keeps the
// latest arrival time.
func (e *Event) ConfirmVolunteer(userID uint, arrivalTime string) {
	kept := make([]Volunteer, 0, len(e.Volunteers)+1)
	for _, v := range e.Volunteers {
		if v.UserID != userID {
			kept = append(kept, v)
		}
	}

	e.Volunteers = append(kept, Volunteer{UserID: userID, ArrivalTime: arrivalTime})
}

// CancelVolunteer removes the entry for userID. Removing a user who never
// confirmed leaves the list unchanged.
func (e *Event) CancelVolunteer(userID uint) {
	kept := make([]Volunteer, 0, len(e.Volunteers))
	for _, v := range e.Volunteers {
		if v.UserID != userID {
			kept = append(kept, v)
		}
	}

	e.Volunteers = kept
}

// AcademicYearStart returns the starting calendar year of the academic year
// containing date. The academic year runs September through August.
func AcademicYearStart(date time.Time) int {
	if date.Month() >= time.September {
		return date.Year()
	}

	return date.Year() - 1
}
