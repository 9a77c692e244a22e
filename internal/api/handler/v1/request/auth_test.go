package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegisterRequest_Validate(t *testing.T) {
	valid := RegisterRequest{
		Email:           "ana@example.com",
		Password:        "Abcdef12",
		ConfirmPassword: "Abcdef12",
		FirstName:       "Ana",
		LastName:        "García",
		CityID:          1,
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid

		assert.NoError(t, req.Validate())
	})

	t.Run("malformed email", func(t *testing.T) {
		req := valid
		req.Email = "not-an-email"

		assert.Error(t, req.Validate())
	})

	t.Run("password without complexity", func(t *testing.T) {
		req := valid
		req.Password = "abcdefgh"
		req.ConfirmPassword = "abcdefgh"

		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("confirm password mismatch", func(t *testing.T) {
		req := valid
		req.ConfirmPassword = "Abcdef13"

		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})

	t.Run("missing city", func(t *testing.T) {
		req := valid
		req.CityID = 0

		assert.Error(t, req.Validate())
	})
}

func TestRecoverPasswordRequest_Validate(t *testing.T) {
	valid := RecoverPasswordRequest{
		Token:           "some-token",
		Password:        "Abcdef12",
		ConfirmPassword: "Abcdef12",
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid

		assert.NoError(t, req.Validate())
	})

	t.Run("missing token", func(t *testing.T) {
		req := valid
		req.Token = ""

		assert.Error(t, req.Validate())
	})

	t.Run("password without complexity", func(t *testing.T) {
		req := valid
		req.Password = "abcdefgh"
		req.ConfirmPassword = "abcdefgh"

		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})

	t.Run("confirm password mismatch", func(t *testing.T) {
		req := valid
		req.ConfirmPassword = "Abcdef13"

		assert.ErrorIs(t, req.Validate(), errConfirmPasswordMismatch)
	})
}

func TestChangePasswordRequest_Validate(t *testing.T) {
	valid := ChangePasswordRequest{
		CurrentPassword: "Vieja1Pass",
		NewPassword:     "Nueva1Pass",
		ConfirmPassword: "Nueva1Pass",
	}

	t.Run("valid request", func(t *testing.T) {
		req := valid

		assert.NoError(t, req.Validate())
	})

	t.Run("missing current password", func(t *testing.T) {
		req := valid
		req.CurrentPassword = ""

		assert.Error(t, req.Validate())
	})

	t.Run("new password without complexity", func(t *testing.T) {
		req := valid
		req.NewPassword = "abcdefgh"
		req.ConfirmPassword = "abcdefgh"

		assert.ErrorIs(t, req.Validate(), errInvalidPassword)
	})
}

func TestLoginRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := LoginRequest{Email: "ana@example.com", Password: "Abcdef12"}

		assert.NoError(t, req.Validate())
	})

	t.Run("missing password", func(t *testing.T) {
		req := LoginRequest{Email: "ana@example.com"}

		assert.Error(t, req.Validate())
	})
}
