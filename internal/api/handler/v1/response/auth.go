package response

import "github.com/centerthink/centerthink-api/internal/domain"

type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// CreatedUserResponse returns the new account together with its temporary
// password, so the admin can hand it over out of band.
type CreatedUserResponse struct {
	User         domain.User `json:"user"`
	TempPassword string      `json:"temp_password"`
}
