package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository"
)

var ErrEventNotFound = repository.ErrEventNotFound

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	List(ctx context.Context, cityID uint, sortSpec string, limit int) ([]domain.Event, error)
	ListBetween(ctx context.Context, cityID uint, from, to time.Time) ([]domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventService struct {
	repo EventRepository
}

func NewEventService(repo EventRepository) *EventService {
	return &EventService{
		repo: repo,
	}
}

func (s *EventService) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	if event.Status == "" {
		event.Status = domain.EventPlanning
	}
	if event.Preparations == (domain.Preparations{}) {
		event.Preparations = domain.DefaultPreparations()
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) Get(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return event, nil
}

// List returns events, newest first by default. cityID 0 means all cities.
func (s *EventService) List(ctx context.Context, cityID uint, sortSpec string, limit int) ([]domain.Event, error) {
	events, err := s.repo.List(ctx, cityID, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return events, nil
}

func (s *EventService) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return domain.Event{}, ErrEventNotFound
		}

		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return ErrEventNotFound
		}

		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ConfirmAttendance registers the user as a confirmed volunteer for the
// event. Confirming again replaces the previous arrival time, never
// duplicates the entry.
func (s *EventService) ConfirmAttendance(ctx context.Context, eventID, userID uint, arrivalTime string) (domain.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}

	event.ConfirmVolunteer(userID, arrivalTime)

	return s.Update(ctx, event)
}

// CancelAttendance removes the user's volunteer entry. A no-op if the user
// never confirmed.
func (s *EventService) CancelAttendance(ctx context.Context, eventID, userID uint) (domain.Event, error) {
	event, err := s.Get(ctx, eventID)
	if err != nil {
		return domain.Event{}, err
	}

	event.CancelVolunteer(userID)

	return s.Update(ctx, event)
}

// CalendarMonth is one month's bucket of an academic-year calendar.
type CalendarMonth struct {
	Year   int            `json:"year"`
	Month  time.Month     `json:"month"`
	Events []domain.Event `json:"events"`
}

// Calendar buckets a city's events into the twelve months of the academic
// year starting in September of startYear. cityID 0 means all cities.
func (s *EventService) Calendar(ctx context.Context, cityID uint, startYear int) ([]CalendarMonth, error) {
	from := time.Date(startYear, time.September, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)

	events, err := s.repo.ListBetween(ctx, cityID, from, to)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListBetween -> %w", err)
	}

	months := make([]CalendarMonth, 0, 12)
	for i := 0; i < 12; i++ {
		at := from.AddDate(0, i, 0)
		months = append(months, CalendarMonth{
			Year:   at.Year(),
			Month:  at.Month(),
			Events: []domain.Event{},
		})
	}

	for _, event := range events {
		idx := monthOffset(from, event.Date)
		if idx < 0 || idx > 11 {
			continue
		}
		months[idx].Events = append(months[idx].Events, event)
	}

	return months, nil
}

func monthOffset(from, date time.Time) int {
	return (date.Year()-from.Year())*12 + int(date.Month()) - int(from.Month())
}
