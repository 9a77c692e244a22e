// Package scope derives what a user can see: which cities they may work in,
// which city is currently selected, and which navigation items their role
// unlocks. It is a pure read-only layer recomputed from the profile and city
// list on every request.
package scope

import "github.com/centerthink/centerthink-api/internal/domain"

// NavItem is a navigation entry tagged with the roles allowed to see it.
type NavItem struct {
	Key   string        `json:"key"`
	Title string        `json:"title"`
	Roles []domain.Role `json:"-"`
}

// DefaultNavItems mirrors the application sidebar.
func DefaultNavItems() []NavItem {
	return []NavItem{
		{Key: "events", Title: "Thinkglaos", Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser, domain.RoleSupplier}},
		{Key: "calendar", Title: "Calendario", Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser, domain.RoleSupplier}},
		{Key: "speakers", Title: "Ponentes", Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser, domain.RoleSupplier}},
		{Key: "venues", Title: "Locales", Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser, domain.RoleSupplier}},
		{Key: "orders", Title: "Pedidos", Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser, domain.RoleSupplier}},
		{Key: "expense-requests", Title: "Solicitudes", Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser, domain.RoleSupplier}},
		{Key: "users", Title: "Usuarios", Roles: []domain.Role{domain.RoleAdmin, domain.RoleSupplier}},
		{Key: "cities", Title: "Ciudades", Roles: []domain.Role{domain.RoleAdmin, domain.RoleSupplier}},
	}
}

// FilterNav returns the items visible to profile. Admin and supplier bypass
// the per-item role sets entirely. A nil profile gets the full list so the
// menu never renders empty while the profile is still loading.
func FilterNav(profile *domain.User, items []NavItem) []NavItem {
	if profile == nil {
		return items
	}
	if profile.Role == domain.RoleAdmin || profile.Role == domain.RoleSupplier {
		return items
	}

	visible := make([]NavItem, 0, len(items))
	for _, item := range items {
		for _, role := range item.Roles {
			if role == profile.Role {
				visible = append(visible, item)
				break
			}
		}
	}

	return visible
}

// VisibleCities returns the cities profile may choose from: every active city
// for admins, otherwise the active cities in the profile's assignment list.
func VisibleCities(profile *domain.User, cities []domain.City) []domain.City {
	visible := make([]domain.City, 0, len(cities))
	for _, city := range cities {
		if !city.Active {
			continue
		}
		if profile != nil && profile.Role != domain.RoleAdmin && !profile.HasCity(city.ID) {
			continue
		}
		visible = append(visible, city)
	}

	return visible
}

// ResolveSelectedCity keeps the saved selection if it is still visible,
// otherwise falls back to the first visible city. Returns nil when the user
// has no visible cities at all.
func ResolveSelectedCity(savedCityID uint, visible []domain.City) *domain.City {
	for i := range visible {
		if visible[i].ID == savedCityID {
			return &visible[i]
		}
	}

	if len(visible) > 0 {
		return &visible[0]
	}

	return nil
}
