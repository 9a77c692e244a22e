package scope

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/centerthink/centerthink-api/internal/domain"
)

func navKeys(items []NavItem) []string {
	keys := make([]string, 0, len(items))
	for _, item := range items {
		keys = append(keys, item.Key)
	}

	return keys
}

func TestFilterNav(t *testing.T) {
	all := DefaultNavItems()

	t.Run("nil profile sees everything", func(t *testing.T) {
		assert.Equal(t, all, FilterNav(nil, all))
	})

	t.Run("admin sees everything", func(t *testing.T) {
		profile := &domain.User{Role: domain.RoleAdmin}

		assert.Equal(t, all, FilterNav(profile, all))
	})

	t.Run("supplier sees everything", func(t *testing.T) {
		profile := &domain.User{Role: domain.RoleSupplier}

		assert.Equal(t, all, FilterNav(profile, all))
	})

	t.Run("regular user does not see user or city management", func(t *testing.T) {
		profile := &domain.User{Role: domain.RoleUser}

		visible := navKeys(FilterNav(profile, all))

		assert.NotContains(t, visible, "users")
		assert.NotContains(t, visible, "cities")
		assert.Contains(t, visible, "events")
		assert.Contains(t, visible, "calendar")
		assert.Contains(t, visible, "expense-requests")
	})
}

func TestVisibleCities(t *testing.T) {
	cities := []domain.City{
		{ID: 1, Name: "Madrid", Active: true},
		{ID: 2, Name: "Barcelona", Active: true},
		{ID: 3, Name: "Valencia", Active: false},
	}

	t.Run("admin sees all active cities", func(t *testing.T) {
		profile := &domain.User{Role: domain.RoleAdmin}

		visible := VisibleCities(profile, cities)

		assert.Len(t, visible, 2)
	})

	t.Run("inactive cities are hidden even when assigned", func(t *testing.T) {
		profile := &domain.User{Role: domain.RoleUser, Cities: []uint{2, 3}}

		visible := VisibleCities(profile, cities)

		assert.Equal(t, []domain.City{{ID: 2, Name: "Barcelona", Active: true}}, visible)
	})

	t.Run("user with no assignments sees nothing", func(t *testing.T) {
		profile := &domain.User{Role: domain.RoleUser, Cities: []uint{}}

		assert.Empty(t, VisibleCities(profile, cities))
	})
}

func TestResolveSelectedCity(t *testing.T) {
	visible := []domain.City{
		{ID: 1, Name: "Madrid", Active: true},
		{ID: 2, Name: "Barcelona", Active: true},
	}

	t.Run("keeps the saved selection when still visible", func(t *testing.T) {
		selected := ResolveSelectedCity(2, visible)

		assert.NotNil(t, selected)
		assert.Equal(t, uint(2), selected.ID)
	})

	t.Run("stale selection falls back to the first visible city", func(t *testing.T) {
		selected := ResolveSelectedCity(99, visible)

		assert.NotNil(t, selected)
		assert.Equal(t, uint(1), selected.ID)
	})

	t.Run("no visible cities yields no selection", func(t *testing.T) {
		assert.Nil(t, ResolveSelectedCity(1, nil))
	})
}
