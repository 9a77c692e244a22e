package service

import (
	"context"
	"fmt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/scope"
)

// ProfileResolver resolves the full profile for an authenticated user.
type ProfileResolver interface {
	GetCurrentProfile(ctx context.Context, userID uint) (domain.User, error)
}

type WorkspaceUserRepository interface {
	UpdateSelectedCity(ctx context.Context, userID, cityID uint) error
}

// Workspace is everything the client needs to render a session: who the user
// is, what they can navigate to, which cities they can work in and which one
// is active.
type Workspace struct {
	Profile      domain.User     `json:"profile"`
	Nav          []scope.NavItem `json:"nav"`
	Cities       []domain.City   `json:"cities"`
	SelectedCity *domain.City    `json:"selected_city"`
}

type WorkspaceService struct {
	profiles ProfileResolver
	users    WorkspaceUserRepository
	cities   AuthCityRepository
}

func NewWorkspaceService(profiles ProfileResolver, users WorkspaceUserRepository, cities AuthCityRepository) *WorkspaceService {
	return &WorkspaceService{
		profiles: profiles,
		users:    users,
		cities:   cities,
	}
}

// Get recomputes the user's workspace from scratch. A saved city selection
// that is no longer visible falls back to the first visible city.
func (s *WorkspaceService) Get(ctx context.Context, userID uint) (Workspace, error) {
	profile, err := s.profiles.GetCurrentProfile(ctx, userID)
	if err != nil {
		return Workspace{}, err
	}

	cities, err := s.cities.ListActive(ctx)
	if err != nil {
		return Workspace{}, fmt.Errorf("s.cities.ListActive -> %w", err)
	}

	visible := scope.VisibleCities(&profile, cities)

	return Workspace{
		Profile:      profile,
		Nav:          scope.FilterNav(&profile, scope.DefaultNavItems()),
		Cities:       visible,
		SelectedCity: scope.ResolveSelectedCity(profile.SelectedCity, visible),
	}, nil
}

// SelectCity persists the user's city choice. The city must be visible to
// them.
func (s *WorkspaceService) SelectCity(ctx context.Context, userID, cityID uint) (Workspace, error) {
	profile, err := s.profiles.GetCurrentProfile(ctx, userID)
	if err != nil {
		return Workspace{}, err
	}

	cities, err := s.cities.ListActive(ctx)
	if err != nil {
		return Workspace{}, fmt.Errorf("s.cities.ListActive -> %w", err)
	}

	visible := scope.VisibleCities(&profile, cities)

	allowed := false
	for _, city := range visible {
		if city.ID == cityID {
			allowed = true
			break
		}
	}
	if !allowed {
		return Workspace{}, ErrInvalidCity
	}

	if err = s.users.UpdateSelectedCity(ctx, userID, cityID); err != nil {
		return Workspace{}, fmt.Errorf("s.users.UpdateSelectedCity -> %w", err)
	}

	profile.SelectedCity = cityID

	return Workspace{
		Profile:      profile,
		Nav:          scope.FilterNav(&profile, scope.DefaultNavItems()),
		Cities:       visible,
		SelectedCity: scope.ResolveSelectedCity(cityID, visible),
	}, nil
}
