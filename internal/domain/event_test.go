package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEvent_ConfirmVolunteer(t *testing.T) {
	t.Run("adds a new volunteer", func(t *testing.T) {
		event := Event{}

		event.ConfirmVolunteer(7, "18:30")

		assert.Equal(t, []Volunteer{{UserID: 7, ArrivalTime: "18:30"}}, event.Volunteers)
	})

	t.Run("confirming twice keeps one entry with the latest arrival time", func(t *testing.T) {
		event := Event{Volunteers: []Volunteer{
			{UserID: 1, ArrivalTime: "18:00"},
			{UserID: 7, ArrivalTime: "18:30"},
		}}

		event.ConfirmVolunteer(7, "19:00")

		assert.Len(t, event.Volunteers, 2)
		assert.Equal(t, Volunteer{UserID: 7, ArrivalTime: "19:00"}, event.Volunteers[1])
		assert.Equal(t, Volunteer{UserID: 1, ArrivalTime: "18:00"}, event.Volunteers[0])
	})
}

func TestEvent_CancelVolunteer(t *testing.T) {
	t.Run("removes the matching entry", func(t *testing.T) {
		event := Event{Volunteers: []Volunteer{
			{UserID: 1, ArrivalTime: "18:00"},
			{UserID: 7, ArrivalTime: "18:30"},
		}}

		event.CancelVolunteer(7)

		assert.Equal(t, []Volunteer{{UserID: 1, ArrivalTime: "18:00"}}, event.Volunteers)
	})

	t.Run("cancelling a user who never confirmed is a no-op", func(t *testing.T) {
		event := Event{Volunteers: []Volunteer{{UserID: 1, ArrivalTime: "18:00"}}}

		event.CancelVolunteer(99)

		assert.Equal(t, []Volunteer{{UserID: 1, ArrivalTime: "18:00"}}, event.Volunteers)
	})
}

func TestAcademicYearStart(t *testing.T) {
	testCases := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{
			name:     "September starts a new academic year",
			date:     time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC),
			expected: 2025,
		},
		{
			name:     "December belongs to the year it started in",
			date:     time.Date(2025, time.December, 15, 0, 0, 0, 0, time.UTC),
			expected: 2025,
		},
		{
			name:     "January belongs to the previous calendar year's academic year",
			date:     time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC),
			expected: 2025,
		},
		{
			name:     "August closes the academic year",
			date:     time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
			expected: 2025,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AcademicYearStart(tc.date))
		})
	}
}

func TestDefaultPreparations(t *testing.T) {
	preparations := DefaultPreparations()

	assert.Equal(t, PreparationPending, preparations.PresentationVideo)
	assert.Equal(t, PreparationPending, preparations.PosterImage)
	assert.Equal(t, PreparationPending, preparations.Theme)
	assert.Equal(t, PreparationPending, preparations.Transport)
	assert.Equal(t, PreparationPending, preparations.Accommodation)
}
