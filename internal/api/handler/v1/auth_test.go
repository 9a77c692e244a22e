package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centerthink/centerthink-api/internal/api/handler/v1/response"
	"github.com/centerthink/centerthink-api/internal/api/middleware"
	"github.com/centerthink/centerthink-api/internal/config"
	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/service"
)

type mockAuthService struct {
	loginUser   domain.User
	loginErr    error
	registerErr error
	updateErr   error

	recoveryEmails []string
	resetPasswords []string
}

func (m *mockAuthService) Login(_ context.Context, _, _ string) (domain.User, error) {
	return m.loginUser, m.loginErr
}

func (m *mockAuthService) Register(_ context.Context, user domain.User, _ string, cityID uint) (domain.User, error) {
	if m.registerErr != nil {
		return domain.User{}, m.registerErr
	}
	user.ID = 1
	user.Role = domain.RoleUser
	user.Cities = []uint{cityID}

	return user, nil
}

func (m *mockAuthService) RegistrationCities(_ context.Context) ([]domain.City, error) {
	return []domain.City{{ID: 1, Name: "Madrid", Active: true}}, nil
}

func (m *mockAuthService) VerifyEmailToken(_ context.Context, token string) error {
	if token != "valid-token" {
		return service.ErrInvalidToken
	}

	return nil
}

func (m *mockAuthService) GetCurrentProfile(_ context.Context, _ uint) (domain.User, error) {
	return m.loginUser, m.loginErr
}

func (m *mockAuthService) ForgotPassword(_ context.Context, email string) error {
	m.recoveryEmails = append(m.recoveryEmails, email)

	return nil
}

func (m *mockAuthService) ResetPassword(_ context.Context, token, newPassword string) error {
	if token != "valid-token" {
		return service.ErrInvalidToken
	}
	m.resetPasswords = append(m.resetPasswords, newPassword)

	return nil
}

func (m *mockAuthService) UpdateOwnProfile(_ context.Context, userID uint, firstName, lastName, phone string) (domain.User, error) {
	if m.updateErr != nil {
		return domain.User{}, m.updateErr
	}

	user := m.loginUser
	user.ID = userID
	user.FirstName = firstName
	user.LastName = lastName
	user.Phone = phone

	return user, nil
}

func (m *mockAuthService) ChangePassword(_ context.Context, _ uint, currentPassword, _ string) error {
	if currentPassword != "Abcdef12" {
		return service.ErrWrongPassword
	}

	return nil
}

func newAuthTestRouter(svc *mockAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)

	handler := NewAuthHandler(&config.APIConfig{JWTSigningKey: "test-signing-key"}, svc)

	router := gin.New()
	router.POST("/auth/login", handler.HandleLogin)
	router.POST("/auth/register", handler.HandleRegister)
	router.POST("/auth/verify-email", handler.HandleVerifyEmail)
	router.POST("/auth/forgot-password", handler.HandleForgotPassword)
	router.POST("/auth/reset-password", handler.HandleResetPassword)
	router.GET("/auth/cities", handler.HandleRegistrationCities)

	authed := router.Group("", func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeyUserID, uint(7))
	})
	authed.PUT("/me", handler.HandleUpdateMe)
	authed.PUT("/me/password", handler.HandleChangeMyPassword)

	return router
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	return rec
}

func TestAuthHandler_HandleLogin(t *testing.T) {
	t.Run("valid credentials return a token and the user", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{
			loginUser: domain.User{ID: 1, Email: "ana@example.com", Role: domain.RoleUser},
		})

		rec := doJSON(router, http.MethodPost, "/auth/login",
			`{"email":"ana@example.com","password":"Abcdef12"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp response.LoginResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "ana@example.com", resp.User.Email)
	})

	t.Run("wrong credentials return 401", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{loginErr: service.ErrWrongPassword})

		rec := doJSON(router, http.MethodPost, "/auth/login",
			`{"email":"ana@example.com","password":"wrong"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields return 400", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{})

		rec := doJSON(router, http.MethodPost, "/auth/login", `{"email":"ana@example.com"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_HandleRegister(t *testing.T) {
	payload := `{
		"email": "ana@example.com",
		"first_name": "Ana",
		"last_name": "García",
		"password": "Abcdef12",
		"confirm_password": "Abcdef12",
		"city_id": 1
	}`

	t.Run("valid payload returns the created user", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{})

		rec := doJSON(router, http.MethodPost, "/auth/register", payload)

		require.Equal(t, http.StatusCreated, rec.Code)

		var user domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.Equal(t, []uint{1}, user.Cities)
	})

	t.Run("weak password is rejected before hitting the service", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{})

		rec := doJSON(router, http.MethodPost, "/auth/register", `{
			"email": "ana@example.com",
			"first_name": "Ana",
			"last_name": "García",
			"password": "abcdefgh",
			"confirm_password": "abcdefgh",
			"city_id": 1
		}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("password mismatch is rejected", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{})

		rec := doJSON(router, http.MethodPost, "/auth/register", `{
			"email": "ana@example.com",
			"first_name": "Ana",
			"last_name": "García",
			"password": "Abcdef12",
			"confirm_password": "Abcdef13",
			"city_id": 1
		}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("duplicate email returns 409", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{registerErr: service.ErrUserEmailExists})

		rec := doJSON(router, http.MethodPost, "/auth/register", payload)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAuthHandler_HandleVerifyEmail(t *testing.T) {
	router := newAuthTestRouter(&mockAuthService{})

	t.Run("valid token", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/auth/verify-email", `{"token":"valid-token"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		rec := doJSON(router, http.MethodPost, "/auth/verify-email", `{"token":"garbage"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_HandleForgotPassword(t *testing.T) {
	t.Run("valid email is accepted", func(t *testing.T) {
		svc := &mockAuthService{}
		router := newAuthTestRouter(svc)

		rec := doJSON(router, http.MethodPost, "/auth/forgot-password", `{"email":"ana@example.com"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"ana@example.com"}, svc.recoveryEmails)
	})

	t.Run("malformed email returns 400", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{})

		rec := doJSON(router, http.MethodPost, "/auth/forgot-password", `{"email":"not-an-email"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_HandleResetPassword(t *testing.T) {
	t.Run("valid token sets the new password", func(t *testing.T) {
		svc := &mockAuthService{}
		router := newAuthTestRouter(svc)

		rec := doJSON(router, http.MethodPost, "/auth/reset-password",
			`{"token":"valid-token","password":"Nuevo1Pass","confirm_password":"Nuevo1Pass"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, []string{"Nuevo1Pass"}, svc.resetPasswords)
	})

	t.Run("invalid token returns 400", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{})

		rec := doJSON(router, http.MethodPost, "/auth/reset-password",
			`{"token":"garbage","password":"Nuevo1Pass","confirm_password":"Nuevo1Pass"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("weak password is rejected before hitting the service", func(t *testing.T) {
		svc := &mockAuthService{}
		router := newAuthTestRouter(svc)

		rec := doJSON(router, http.MethodPost, "/auth/reset-password",
			`{"token":"valid-token","password":"abcdefgh","confirm_password":"abcdefgh"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, svc.resetPasswords)
	})
}

func TestAuthHandler_HandleUpdateMe(t *testing.T) {
	t.Run("valid payload returns the updated profile", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{
			loginUser: domain.User{Role: domain.RoleUser, Cities: []uint{1}},
		})

		rec := doJSON(router, http.MethodPut, "/me",
			`{"first_name":"Ana María","last_name":"García","phone":"600123123"}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var user domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
		assert.Equal(t, "Ana María", user.FirstName)
		assert.Equal(t, domain.RoleUser, user.Role)
	})

	t.Run("missing last name returns 400", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{})

		rec := doJSON(router, http.MethodPut, "/me", `{"first_name":"Ana"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown user returns 404", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{updateErr: service.ErrUserNotFound})

		rec := doJSON(router, http.MethodPut, "/me",
			`{"first_name":"Ana","last_name":"García"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAuthHandler_HandleChangeMyPassword(t *testing.T) {
	t.Run("valid change returns 200", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{})

		rec := doJSON(router, http.MethodPut, "/me/password",
			`{"current_password":"Abcdef12","new_password":"Nuevo1Pass","confirm_password":"Nuevo1Pass"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wrong current password returns 401", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{})

		rec := doJSON(router, http.MethodPut, "/me/password",
			`{"current_password":"wrong","new_password":"Nuevo1Pass","confirm_password":"Nuevo1Pass"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("mismatched confirmation returns 400", func(t *testing.T) {
		router := newAuthTestRouter(&mockAuthService{})

		rec := doJSON(router, http.MethodPut, "/me/password",
			`{"current_password":"Abcdef12","new_password":"Nuevo1Pass","confirm_password":"Otro1Pass"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
