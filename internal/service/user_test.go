package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/centerthink/centerthink-api/internal/domain"
)

func newTestUserService(repo *mockUserRepo, sender *recordingSender) *UserService {
	return NewUserService(repo, sender,
		"CenterThink <no-reply@centerthink.test>", "http://app.centerthink.test", "test-signing-key")
}

func TestUserService_CreateUser(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin, FirstName: "Root", LastName: "Admin"}
	supplier := domain.User{ID: 2, Role: domain.RoleSupplier, Cities: []uint{1, 2}}
	regular := domain.User{ID: 3, Role: domain.RoleUser}

	t.Run("admin creates a verified user with a temporary password", func(t *testing.T) {
		repo := newMockUserRepo()
		sender := &recordingSender{}
		svc := newTestUserService(repo, sender)

		created, tempPassword, err := svc.CreateUser(context.Background(), admin, domain.User{
			Email:     "nuevo@example.com",
			FirstName: "Nuevo",
			LastName:  "Usuario",
			Role:      domain.RoleUser,
			Cities:    []uint{1},
		})

		require.NoError(t, err)
		assert.Len(t, tempPassword, 16)
		assert.True(t, created.EmailVerified)
		assert.NoError(t, bcrypt.CompareHashAndPassword(
			[]byte(repo.identities[created.ID].Password), []byte(tempPassword)))
		require.Len(t, sender.sent, 1)
		assert.Contains(t, sender.sent[0].Text, tempPassword)
	})

	t.Run("supplier cannot assign cities outside their own", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := newTestUserService(repo, &recordingSender{})

		_, _, err := svc.CreateUser(context.Background(), supplier, domain.User{
			Email:  "nuevo@example.com",
			Role:   domain.RoleUser,
			Cities: []uint{2, 5, 9},
		})

		var citiesErr *CitiesNotAllowedError
		require.ErrorAs(t, err, &citiesErr)
		assert.Equal(t, []uint{5, 9}, citiesErr.CityIDs)
		assert.Contains(t, err.Error(), "5, 9")
		assert.Zero(t, repo.createIdentityCalls)
	})

	t.Run("supplier inside their own cities is allowed", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := newTestUserService(repo, &recordingSender{})

		_, _, err := svc.CreateUser(context.Background(), supplier, domain.User{
			Email:  "nuevo@example.com",
			Role:   domain.RoleUser,
			Cities: []uint{1, 2},
		})

		assert.NoError(t, err)
	})

	t.Run("regular user is rejected", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := newTestUserService(repo, &recordingSender{})

		_, _, err := svc.CreateUser(context.Background(), regular, domain.User{
			Email: "nuevo@example.com",
			Role:  domain.RoleUser,
		})

		assert.ErrorIs(t, err, ErrNotAllowed)
	})

	t.Run("unknown role is rejected", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := newTestUserService(repo, &recordingSender{})

		_, _, err := svc.CreateUser(context.Background(), admin, domain.User{
			Email: "nuevo@example.com",
			Role:  "superuser",
		})

		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("profile failure rolls back the identity", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.createProfileErr = assert.AnError
		svc := newTestUserService(repo, &recordingSender{})

		_, _, err := svc.CreateUser(context.Background(), admin, domain.User{
			Email: "nuevo@example.com",
			Role:  domain.RoleUser,
		})

		require.Error(t, err)
		assert.Empty(t, repo.identities)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}

	t.Run("removes profile and identity", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.identities[4] = domain.User{ID: 4}
		repo.profiles[4] = domain.User{ID: 4}
		svc := newTestUserService(repo, &recordingSender{})

		require.NoError(t, svc.DeleteUser(context.Background(), admin, 4))
		assert.Empty(t, repo.profiles)
		assert.Empty(t, repo.identities)
	})

	t.Run("self-delete is rejected", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.identities[1] = domain.User{ID: 1}
		repo.profiles[1] = domain.User{ID: 1}
		svc := newTestUserService(repo, &recordingSender{})

		err := svc.DeleteUser(context.Background(), admin, 1)

		assert.ErrorIs(t, err, ErrSelfDelete)
		assert.Len(t, repo.identities, 1)
	})

	t.Run("identity without profile is still deleted", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.identities[7] = domain.User{ID: 7}
		svc := newTestUserService(repo, &recordingSender{})

		require.NoError(t, svc.DeleteUser(context.Background(), admin, 7))
		assert.Empty(t, repo.identities)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := newTestUserService(repo, &recordingSender{})

		err := svc.DeleteUser(context.Background(), admin, 999)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_ResetPassword(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}

	t.Run("sets the new password", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.identities[4] = domain.User{ID: 4, Email: "ana@example.com"}
		svc := newTestUserService(repo, &recordingSender{})

		require.NoError(t, svc.ResetPassword(context.Background(), admin, 4, "nueva-clave"))
		assert.NotEmpty(t, repo.passwordUpdates[4])
	})

	t.Run("too short password is rejected", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.identities[4] = domain.User{ID: 4, Email: "ana@example.com"}
		svc := newTestUserService(repo, &recordingSender{})

		err := svc.ResetPassword(context.Background(), admin, 4, "corta")

		assert.ErrorIs(t, err, ErrShortPassword)
		assert.Empty(t, repo.passwordUpdates)
	})

	t.Run("empty password sends a recovery email instead", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.identities[4] = domain.User{ID: 4, Email: "ana@example.com", FirstName: "Ana"}
		sender := &recordingSender{}
		svc := newTestUserService(repo, sender)

		require.NoError(t, svc.ResetPassword(context.Background(), admin, 4, ""))
		require.Len(t, sender.sent, 1)
		assert.Contains(t, sender.sent[0].Subject, "Restablece")
		assert.Empty(t, repo.passwordUpdates)
	})

	t.Run("unknown user", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := newTestUserService(repo, &recordingSender{})

		err := svc.ResetPassword(context.Background(), admin, 99, "nueva-clave")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestUserService_VerifyUserEmail(t *testing.T) {
	admin := domain.User{ID: 1, Role: domain.RoleAdmin}

	repo := newMockUserRepo()
	repo.identities[4] = domain.User{ID: 4, Email: "ana@example.com"}
	svc := newTestUserService(repo, &recordingSender{})

	require.NoError(t, svc.VerifyUserEmail(context.Background(), admin, 4))
	assert.True(t, repo.identities[4].EmailVerified)
}
