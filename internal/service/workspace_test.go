package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centerthink/centerthink-api/internal/domain"
)

type staticProfileResolver struct {
	profile domain.User
}

func (r *staticProfileResolver) GetCurrentProfile(_ context.Context, _ uint) (domain.User, error) {
	return r.profile, nil
}

type recordingWorkspaceRepo struct {
	selections map[uint]uint
}

func (r *recordingWorkspaceRepo) UpdateSelectedCity(_ context.Context, userID, cityID uint) error {
	if r.selections == nil {
		r.selections = map[uint]uint{}
	}
	r.selections[userID] = cityID

	return nil
}

func TestWorkspaceService_Get(t *testing.T) {
	cities := newMockCityRepo(
		domain.City{ID: 1, Name: "Madrid", Active: true},
		domain.City{ID: 2, Name: "Barcelona", Active: true},
		domain.City{ID: 3, Name: "Valencia", Active: false},
	)

	t.Run("stale selection falls back to a visible city", func(t *testing.T) {
		profiles := &staticProfileResolver{profile: domain.User{
			ID:           7,
			Role:         domain.RoleUser,
			Cities:       []uint{2},
			SelectedCity: 3, // no longer visible
		}}
		svc := NewWorkspaceService(profiles, &recordingWorkspaceRepo{}, cities)

		workspace, err := svc.Get(context.Background(), 7)

		require.NoError(t, err)
		require.NotNil(t, workspace.SelectedCity)
		assert.Equal(t, uint(2), workspace.SelectedCity.ID)
		assert.Len(t, workspace.Cities, 1)
	})

	t.Run("regular user gets a trimmed nav", func(t *testing.T) {
		profiles := &staticProfileResolver{profile: domain.User{
			ID:     7,
			Role:   domain.RoleUser,
			Cities: []uint{1},
		}}
		svc := NewWorkspaceService(profiles, &recordingWorkspaceRepo{}, cities)

		workspace, err := svc.Get(context.Background(), 7)

		require.NoError(t, err)
		for _, item := range workspace.Nav {
			assert.NotEqual(t, "users", item.Key)
			assert.NotEqual(t, "cities", item.Key)
		}
	})
}

func TestWorkspaceService_SelectCity(t *testing.T) {
	cities := newMockCityRepo(
		domain.City{ID: 1, Name: "Madrid", Active: true},
		domain.City{ID: 2, Name: "Barcelona", Active: true},
	)
	profiles := &staticProfileResolver{profile: domain.User{
		ID:     7,
		Role:   domain.RoleUser,
		Cities: []uint{1, 2},
	}}

	t.Run("persists a visible city", func(t *testing.T) {
		users := &recordingWorkspaceRepo{}
		svc := NewWorkspaceService(profiles, users, cities)

		workspace, err := svc.SelectCity(context.Background(), 7, 2)

		require.NoError(t, err)
		assert.Equal(t, uint(2), users.selections[7])
		require.NotNil(t, workspace.SelectedCity)
		assert.Equal(t, uint(2), workspace.SelectedCity.ID)
	})

	t.Run("city outside the visible set is rejected", func(t *testing.T) {
		users := &recordingWorkspaceRepo{}
		svc := NewWorkspaceService(profiles, users, cities)

		_, err := svc.SelectCity(context.Background(), 7, 99)

		assert.ErrorIs(t, err, ErrInvalidCity)
		assert.Empty(t, users.selections)
	})
}
