package domain

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleSupplier Role = "supplier"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleUser || r == RoleSupplier
}

// User is the authenticated identity merged with its profile row.
// The identity part (email, password hash, verified flag) and the profile
// part (names, role, city assignments) live in separate tables joined by ID.
type User struct {
	ID            uint      `json:"id"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	EmailVerified bool      `json:"email_verified"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	Role          Role      `json:"role"`
	Cities        []uint    `json:"cities"`
	Phone         string    `json:"phone,omitempty"`
	SelectedCity  uint      `json:"selected_city_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// HasCity reports whether cityID is in the user's assigned city list.
func (u User) HasCity(cityID uint) bool {
	for _, id := range u.Cities {
		if id == cityID {
			return true
		}
	}

	return false
}

func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}

	return u.FirstName + " " + u.LastName
}
