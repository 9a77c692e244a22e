package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository/dao"
)

var ErrEventNotFound = dao.ErrEventNotFound

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	List(ctx context.Context, cityID uint, sortSpec string, limit int) ([]dao.Event, error)
	ListBetween(ctx context.Context, cityID uint, from, to time.Time) ([]dao.Event, error)
	CountByCity(ctx context.Context, cityID uint) (int64, error)
	Update(ctx context.Context, event dao.Event) (dao.Event, error)
	Delete(ctx context.Context, id uint) error
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	daoEvent, err := r.domainToDAO(event)
	if err != nil {
		return domain.Event{}, err
	}

	created, err := r.dao.Insert(ctx, daoEvent)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created)
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found)
}

func (r *EventRepository) List(ctx context.Context, cityID uint, sortSpec string, limit int) ([]domain.Event, error) {
	found, err := r.dao.List(ctx, cityID, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	return r.daoListToDomain(found)
}

func (r *EventRepository) ListBetween(ctx context.Context, cityID uint, from, to time.Time) ([]domain.Event, error) {
	found, err := r.dao.ListBetween(ctx, cityID, from, to)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListBetween -> %w", err)
	}

	return r.daoListToDomain(found)
}

func (r *EventRepository) CountByCity(ctx context.Context, cityID uint) (int64, error) {
	count, err := r.dao.CountByCity(ctx, cityID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountByCity -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	daoEvent, err := r.domainToDAO(event)
	if err != nil {
		return domain.Event{}, err
	}

	updated, err := r.dao.Update(ctx, daoEvent)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated)
}

func (r *EventRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *EventRepository) daoListToDomain(found []dao.Event) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(found))
	for _, e := range found {
		event, err := r.daoToDomain(e)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}

func (r *EventRepository) daoToDomain(e dao.Event) (domain.Event, error) {
	event := domain.Event{
		ID:           e.ID,
		Description:  e.Description,
		CityID:       e.CityID,
		Date:         e.Date,
		SpeakerID:    e.SpeakerID,
		VenueID:      e.VenueID,
		Status:       domain.EventStatus(e.Status),
		MaxAttendees: e.MaxAttendees,
		Preparations: domain.DefaultPreparations(),
		Volunteers:   []domain.Volunteer{},
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}

	if len(e.Preparations) > 0 {
		if err := json.Unmarshal(e.Preparations, &event.Preparations); err != nil {
			return domain.Event{}, fmt.Errorf("unmarshal event %v preparations -> %w", e.ID, err)
		}
	}
	if len(e.Volunteers) > 0 {
		if err := json.Unmarshal(e.Volunteers, &event.Volunteers); err != nil {
			return domain.Event{}, fmt.Errorf("unmarshal event %v volunteers -> %w", e.ID, err)
		}
	}

	if e.City.ID != 0 {
		city := cityDAOToDomain(e.City)
		event.City = &city
	}
	if e.Speaker != nil && e.Speaker.ID != 0 {
		speaker := speakerDAOToDomain(*e.Speaker)
		event.Speaker = &speaker
	}
	if e.Venue != nil && e.Venue.ID != 0 {
		venue := venueDAOToDomain(*e.Venue)
		event.Venue = &venue
	}

	return event, nil
}

func (r *EventRepository) domainToDAO(e domain.Event) (dao.Event, error) {
	preparations, err := json.Marshal(e.Preparations)
	if err != nil {
		return dao.Event{}, fmt.Errorf("marshal event preparations -> %w", err)
	}

	volunteers := e.Volunteers
	if volunteers == nil {
		volunteers = []domain.Volunteer{}
	}
	volunteersJSON, err := json.Marshal(volunteers)
	if err != nil {
		return dao.Event{}, fmt.Errorf("marshal event volunteers -> %w", err)
	}

	return dao.Event{
		ID:           e.ID,
		Description:  e.Description,
		CityID:       e.CityID,
		Date:         e.Date,
		SpeakerID:    e.SpeakerID,
		VenueID:      e.VenueID,
		Status:       string(e.Status),
		MaxAttendees: e.MaxAttendees,
		Preparations: datatypes.JSON(preparations),
		Volunteers:   datatypes.JSON(volunteersJSON),
		Notes:        e.Notes,
	}, nil
}

func speakerDAOToDomain(s dao.Speaker) domain.Speaker {
	return domain.Speaker{
		ID:                       s.ID,
		Name:                     s.Name,
		Email:                    s.Email,
		Phone:                    s.Phone,
		SocialHandle:             s.SocialHandle,
		Bio:                      s.Bio,
		ContactStatus:            domain.ContactStatus(s.ContactStatus),
		ProposalStatus:           domain.ProposalStatus(s.ProposalStatus),
		ProposalConfirmationDate: s.ProposalConfirmationDate,
		Active:                   s.Active,
		CreatedAt:                s.CreatedAt,
		UpdatedAt:                s.UpdatedAt,
	}
}

func venueDAOToDomain(v dao.Venue) domain.Venue {
	return domain.Venue{
		ID:           v.ID,
		Name:         v.Name,
		Address:      v.Address,
		CityID:       v.CityID,
		Capacity:     v.Capacity,
		ContactName:  v.ContactName,
		ContactPhone: v.ContactPhone,
		ContactEmail: v.ContactEmail,
		Notes:        v.Notes,
		Active:       v.Active,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
