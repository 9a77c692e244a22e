package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository"
)

type mockEventRepo struct {
	events map[uint]domain.Event
	nextID uint
}

func newMockEventRepo(events ...domain.Event) *mockEventRepo {
	m := &mockEventRepo{events: map[uint]domain.Event{}, nextID: 1}
	for _, event := range events {
		m.events[event.ID] = event
		if event.ID >= m.nextID {
			m.nextID = event.ID + 1
		}
	}

	return m
}

func (m *mockEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = m.nextID
	m.nextID++
	m.events[event.ID] = event

	return event, nil
}

func (m *mockEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := m.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}

	return event, nil
}

func (m *mockEventRepo) List(_ context.Context, cityID uint, _ string, _ int) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(m.events))
	for _, event := range m.events {
		if cityID != 0 && event.CityID != cityID {
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

func (m *mockEventRepo) ListBetween(_ context.Context, cityID uint, from, to time.Time) ([]domain.Event, error) {
	events := make([]domain.Event, 0, len(m.events))
	for _, event := range m.events {
		if cityID != 0 && event.CityID != cityID {
			continue
		}
		if event.Date.Before(from) || !event.Date.Before(to) {
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

func (m *mockEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	if _, ok := m.events[event.ID]; !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	m.events[event.ID] = event

	return event, nil
}

func (m *mockEventRepo) Delete(_ context.Context, id uint) error {
	if _, ok := m.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(m.events, id)

	return nil
}

func TestEventService_Create(t *testing.T) {
	repo := newMockEventRepo()
	svc := NewEventService(repo)

	created, err := svc.Create(context.Background(), domain.Event{
		Description: "Charla de septiembre",
		CityID:      1,
		Date:        time.Date(2025, time.September, 20, 19, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	assert.Equal(t, domain.EventPlanning, created.Status)
	assert.Equal(t, domain.DefaultPreparations(), created.Preparations)
}

func TestEventService_Attendance(t *testing.T) {
	t.Run("confirm then reconfirm keeps one entry", func(t *testing.T) {
		repo := newMockEventRepo(domain.Event{ID: 1, CityID: 1})
		svc := NewEventService(repo)

		_, err := svc.ConfirmAttendance(context.Background(), 1, 7, "18:30")
		require.NoError(t, err)

		updated, err := svc.ConfirmAttendance(context.Background(), 1, 7, "19:00")
		require.NoError(t, err)

		assert.Equal(t, []domain.Volunteer{{UserID: 7, ArrivalTime: "19:00"}}, updated.Volunteers)
		assert.Equal(t, updated.Volunteers, repo.events[1].Volunteers)
	})

	t.Run("cancel removes the entry", func(t *testing.T) {
		repo := newMockEventRepo(domain.Event{ID: 1, CityID: 1, Volunteers: []domain.Volunteer{
			{UserID: 7, ArrivalTime: "18:30"},
		}})
		svc := NewEventService(repo)

		updated, err := svc.CancelAttendance(context.Background(), 1, 7)

		require.NoError(t, err)
		assert.Empty(t, updated.Volunteers)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewEventService(newMockEventRepo())

		_, err := svc.ConfirmAttendance(context.Background(), 99, 7, "18:30")

		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventService_Calendar(t *testing.T) {
	repo := newMockEventRepo(
		domain.Event{ID: 1, CityID: 1, Date: time.Date(2025, time.September, 20, 0, 0, 0, 0, time.UTC)},
		domain.Event{ID: 2, CityID: 1, Date: time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC)},
		domain.Event{ID: 3, CityID: 1, Date: time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)},
		domain.Event{ID: 4, CityID: 1, Date: time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)}, // next year
		domain.Event{ID: 5, CityID: 2, Date: time.Date(2025, time.October, 5, 0, 0, 0, 0, time.UTC)},
	)
	svc := NewEventService(repo)

	months, err := svc.Calendar(context.Background(), 1, 2025)

	require.NoError(t, err)
	require.Len(t, months, 12)

	assert.Equal(t, time.September, months[0].Month)
	assert.Equal(t, 2025, months[0].Year)
	assert.Equal(t, time.January, months[4].Month)
	assert.Equal(t, 2026, months[4].Year)
	assert.Equal(t, time.August, months[11].Month)

	require.Len(t, months[0].Events, 1)
	assert.Equal(t, uint(1), months[0].Events[0].ID)
	require.Len(t, months[4].Events, 1)
	assert.Equal(t, uint(2), months[4].Events[0].ID)
	require.Len(t, months[11].Events, 1)
	assert.Equal(t, uint(3), months[11].Events[0].ID)

	// nothing from the next academic year or other cities
	assert.Empty(t, months[1].Events)
	for _, month := range months {
		for _, event := range month.Events {
			assert.NotEqual(t, uint(4), event.ID)
			assert.NotEqual(t, uint(5), event.ID)
		}
	}
}
