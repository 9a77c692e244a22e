package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/email"
	"github.com/centerthink/centerthink-api/internal/repository"
)

type mockUserRepo struct {
	identities map[uint]domain.User
	profiles   map[uint]domain.User
	nextID     uint

	createIdentityCalls int
	createProfileErr    error
	deletedIdentities   []uint
	verifiedUsers       []uint
	passwordUpdates     map[uint]string
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		identities:      map[uint]domain.User{},
		profiles:        map[uint]domain.User{},
		nextID:          1,
		passwordUpdates: map[uint]string{},
	}
}

func (m *mockUserRepo) CreateIdentity(_ context.Context, user domain.User) (domain.User, error) {
	m.createIdentityCalls++

	for _, existing := range m.identities {
		if existing.Email == user.Email {
			return domain.User{}, repository.ErrUserEmailExists
		}
	}

	user.ID = m.nextID
	m.nextID++
	m.identities[user.ID] = user

	return user, nil
}

func (m *mockUserRepo) CreateProfile(_ context.Context, user domain.User) (domain.User, error) {
	if m.createProfileErr != nil {
		return domain.User{}, m.createProfileErr
	}

	m.profiles[user.ID] = user

	return user, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	if _, ok := m.identities[id]; !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	profile, ok := m.profiles[id]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: user %v", repository.ErrProfileNotFound, id)
	}

	return profile, nil
}

func (m *mockUserRepo) FindIdentityByID(_ context.Context, id uint) (domain.User, error) {
	identity, ok := m.identities[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}

	return identity, nil
}

func (m *mockUserRepo) FindIdentityByEmail(_ context.Context, userEmail string) (domain.User, error) {
	for _, identity := range m.identities {
		if identity.Email == userEmail {
			return identity, nil
		}
	}

	return domain.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) List(_ context.Context, _ string, _ int) ([]domain.User, error) {
	users := make([]domain.User, 0, len(m.profiles))
	for _, user := range m.profiles {
		users = append(users, user)
	}

	return users, nil
}

func (m *mockUserRepo) UpdateProfile(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := m.profiles[user.ID]; !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	m.profiles[user.ID] = user

	return user, nil
}

func (m *mockUserRepo) UpdatePassword(_ context.Context, userID uint, hash string) error {
	if _, ok := m.identities[userID]; !ok {
		return repository.ErrUserNotFound
	}
	m.passwordUpdates[userID] = hash

	return nil
}

func (m *mockUserRepo) MarkEmailVerified(_ context.Context, userID uint) error {
	identity, ok := m.identities[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	identity.EmailVerified = true
	m.identities[userID] = identity

	return nil
}

func (m *mockUserRepo) DeleteProfile(_ context.Context, id uint) error {
	if _, ok := m.profiles[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.profiles, id)

	return nil
}

func (m *mockUserRepo) DeleteIdentity(_ context.Context, id uint) error {
	if _, ok := m.identities[id]; !ok {
		return repository.ErrUserNotFound
	}
	delete(m.identities, id)
	m.deletedIdentities = append(m.deletedIdentities, id)

	return nil
}

type mockCityRepo struct {
	cities map[uint]domain.City
}

func newMockCityRepo(cities ...domain.City) *mockCityRepo {
	m := &mockCityRepo{cities: map[uint]domain.City{}}
	for _, city := range cities {
		m.cities[city.ID] = city
	}

	return m
}

func (m *mockCityRepo) FindByID(_ context.Context, id uint) (domain.City, error) {
	city, ok := m.cities[id]
	if !ok {
		return domain.City{}, repository.ErrCityNotFound
	}

	return city, nil
}

func (m *mockCityRepo) ListActive(_ context.Context) ([]domain.City, error) {
	active := make([]domain.City, 0, len(m.cities))
	for _, city := range m.cities {
		if city.Active {
			active = append(active, city)
		}
	}

	return active, nil
}

type recordingSender struct {
	sent []*email.Message
}

func (s *recordingSender) Send(_ context.Context, msg *email.Message) error {
	s.sent = append(s.sent, msg)

	return nil
}

func newTestAuthService(repo *mockUserRepo, cities *mockCityRepo, sender *recordingSender) *AuthService {
	return NewAuthService(repo, cities, sender,
		"CenterThink <no-reply@centerthink.test>", "http://app.centerthink.test", "test-signing-key")
}

func TestValidPassword(t *testing.T) {
	testCases := []struct {
		password string
		expected bool
	}{
		{"abcdefgh", false},
		{"ABCDEFGH", false},
		{"12345678", false},
		{"Abcdef12", true},
		{"Ab1", false},
		{"Str0ngPassword", true},
	}

	for _, tc := range testCases {
		t.Run(tc.password, func(t *testing.T) {
			assert.Equal(t, tc.expected, ValidPassword(tc.password))
		})
	}
}

func TestAuthService_Register(t *testing.T) {
	madrid := domain.City{ID: 1, Name: "Madrid", Active: true}
	closed := domain.City{ID: 2, Name: "Cerrada", Active: false}

	t.Run("weak password is rejected before anything is stored", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := newTestAuthService(repo, newMockCityRepo(madrid), &recordingSender{})

		_, err := svc.Register(context.Background(), domain.User{Email: "ana@example.com"}, "abcdefgh", 1)

		assert.ErrorIs(t, err, ErrWeakPassword)
		assert.Zero(t, repo.createIdentityCalls)
	})

	t.Run("inactive city is rejected", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := newTestAuthService(repo, newMockCityRepo(madrid, closed), &recordingSender{})

		_, err := svc.Register(context.Background(), domain.User{Email: "ana@example.com"}, "Abcdef12", 2)

		assert.ErrorIs(t, err, ErrInvalidCity)
	})

	t.Run("successful registration forces role user and single city", func(t *testing.T) {
		repo := newMockUserRepo()
		sender := &recordingSender{}
		svc := newTestAuthService(repo, newMockCityRepo(madrid), sender)

		created, err := svc.Register(context.Background(), domain.User{
			Email:     "ana@example.com",
			FirstName: "Ana",
			LastName:  "García",
			Role:      domain.RoleAdmin, // must be ignored
		}, "Abcdef12", 1)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, created.Role)
		assert.Equal(t, []uint{1}, created.Cities)
		assert.False(t, created.EmailVerified)
		require.Len(t, sender.sent, 1)
		assert.Contains(t, sender.sent[0].Subject, "Confirma")
	})

	t.Run("profile failure rolls back the identity", func(t *testing.T) {
		repo := newMockUserRepo()
		repo.createProfileErr = errors.New("insert failed")
		svc := newTestAuthService(repo, newMockCityRepo(madrid), &recordingSender{})

		_, err := svc.Register(context.Background(), domain.User{Email: "ana@example.com"}, "Abcdef12", 1)

		require.Error(t, err)
		assert.Equal(t, []uint{1}, repo.deletedIdentities)
		assert.Empty(t, repo.identities)
	})

	t.Run("duplicate email maps to ErrUserEmailExists", func(t *testing.T) {
		repo := newMockUserRepo()
		svc := newTestAuthService(repo, newMockCityRepo(madrid), &recordingSender{})

		_, err := svc.Register(context.Background(), domain.User{Email: "ana@example.com"}, "Abcdef12", 1)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), domain.User{Email: "ana@example.com"}, "Abcdef12", 1)
		assert.ErrorIs(t, err, ErrUserEmailExists)
	})
}

func TestAuthService_Login(t *testing.T) {
	madrid := domain.City{ID: 1, Name: "Madrid", Active: true}

	hash, err := bcrypt.GenerateFromPassword([]byte("Abcdef12"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newMockUserRepo()
	repo.identities[1] = domain.User{ID: 1, Email: "ana@example.com", Password: string(hash)}
	repo.profiles[1] = domain.User{ID: 1, Email: "ana@example.com", Role: domain.RoleUser, Cities: []uint{1}}
	repo.nextID = 2

	svc := newTestAuthService(repo, newMockCityRepo(madrid), &recordingSender{})

	t.Run("valid credentials return the merged profile", func(t *testing.T) {
		user, err := svc.Login(context.Background(), "ana@example.com", "Abcdef12")

		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.Equal(t, []uint{1}, user.Cities)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "ana@example.com", "wrong")

		assert.ErrorIs(t, err, ErrWrongPassword)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(context.Background(), "nadie@example.com", "Abcdef12")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthService_GetCurrentProfile(t *testing.T) {
	madrid := domain.City{ID: 1, Name: "Madrid", Active: true}

	repo := newMockUserRepo()
	repo.identities[5] = domain.User{ID: 5, Email: "solo@example.com"}
	repo.nextID = 6

	svc := newTestAuthService(repo, newMockCityRepo(madrid), &recordingSender{})

	t.Run("missing profile degrades to a default one", func(t *testing.T) {
		user, err := svc.GetCurrentProfile(context.Background(), 5)

		require.NoError(t, err)
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.Empty(t, user.Cities)
		assert.Equal(t, "solo@example.com", user.Email)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.GetCurrentProfile(context.Background(), 999)

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthService_VerifyEmailToken(t *testing.T) {
	madrid := domain.City{ID: 1, Name: "Madrid", Active: true}

	repo := newMockUserRepo()
	repo.identities[3] = domain.User{ID: 3, Email: "ana@example.com"}
	repo.nextID = 4

	svc := newTestAuthService(repo, newMockCityRepo(madrid), &recordingSender{})

	t.Run("round trip", func(t *testing.T) {
		url, err := svc.verificationURL(3)
		require.NoError(t, err)

		token := url[len("http://app.centerthink.test/verify-email?token="):]

		require.NoError(t, svc.VerifyEmailToken(context.Background(), token))
		assert.True(t, repo.identities[3].EmailVerified)
	})

	t.Run("garbage token", func(t *testing.T) {
		err := svc.VerifyEmailToken(context.Background(), "not-a-token")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_PasswordRecovery(t *testing.T) {
	madrid := domain.City{ID: 1, Name: "Madrid", Active: true}

	newRepo := func() *mockUserRepo {
		repo := newMockUserRepo()
		repo.identities[1] = domain.User{ID: 1, Email: "ana@example.com", FirstName: "Ana", LastName: "García"}
		repo.nextID = 2

		return repo
	}

	t.Run("forgot password emails a reset link", func(t *testing.T) {
		repo := newRepo()
		sender := &recordingSender{}
		svc := newTestAuthService(repo, newMockCityRepo(madrid), sender)

		require.NoError(t, svc.ForgotPassword(context.Background(), "ana@example.com"))

		require.Len(t, sender.sent, 1)
		assert.Contains(t, sender.sent[0].Subject, "Restablece")
		assert.Contains(t, sender.sent[0].Text, "/reset-password?token=")
	})

	t.Run("unknown email is accepted without sending anything", func(t *testing.T) {
		repo := newRepo()
		sender := &recordingSender{}
		svc := newTestAuthService(repo, newMockCityRepo(madrid), sender)

		require.NoError(t, svc.ForgotPassword(context.Background(), "nadie@example.com"))

		assert.Empty(t, sender.sent)
	})

	t.Run("reset link round trip sets the new password", func(t *testing.T) {
		repo := newRepo()
		sender := &recordingSender{}
		svc := newTestAuthService(repo, newMockCityRepo(madrid), sender)

		require.NoError(t, svc.ForgotPassword(context.Background(), "ana@example.com"))
		require.Len(t, sender.sent, 1)

		text := sender.sent[0].Text
		token := strings.TrimSpace(text[strings.Index(text, "token=")+len("token="):])

		require.NoError(t, svc.ResetPassword(context.Background(), token, "Nuevo1Pass"))

		hash := repo.passwordUpdates[1]
		require.NotEmpty(t, hash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("Nuevo1Pass")))
	})

	t.Run("weak new password is rejected", func(t *testing.T) {
		repo := newRepo()
		svc := newTestAuthService(repo, newMockCityRepo(madrid), &recordingSender{})

		url, err := svc.recoveryURL(1)
		require.NoError(t, err)
		token := url[len("http://app.centerthink.test/reset-password?token="):]

		err = svc.ResetPassword(context.Background(), token, "abcdefgh")

		assert.ErrorIs(t, err, ErrWeakPassword)
		assert.Empty(t, repo.passwordUpdates)
	})

	t.Run("garbage token", func(t *testing.T) {
		svc := newTestAuthService(newRepo(), newMockCityRepo(madrid), &recordingSender{})

		err := svc.ResetPassword(context.Background(), "not-a-token", "Nuevo1Pass")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token for a deleted account", func(t *testing.T) {
		svc := newTestAuthService(newRepo(), newMockCityRepo(madrid), &recordingSender{})

		url, err := svc.recoveryURL(99)
		require.NoError(t, err)
		token := url[len("http://app.centerthink.test/reset-password?token="):]

		err = svc.ResetPassword(context.Background(), token, "Nuevo1Pass")

		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	madrid := domain.City{ID: 1, Name: "Madrid", Active: true}

	hash, err := bcrypt.GenerateFromPassword([]byte("Abcdef12"), bcrypt.MinCost)
	require.NoError(t, err)

	newRepo := func() *mockUserRepo {
		repo := newMockUserRepo()
		repo.identities[1] = domain.User{ID: 1, Email: "ana@example.com", Password: string(hash)}
		repo.nextID = 2

		return repo
	}

	t.Run("wrong current password", func(t *testing.T) {
		repo := newRepo()
		svc := newTestAuthService(repo, newMockCityRepo(madrid), &recordingSender{})

		err := svc.ChangePassword(context.Background(), 1, "wrong", "Nuevo1Pass")

		assert.ErrorIs(t, err, ErrWrongPassword)
		assert.Empty(t, repo.passwordUpdates)
	})

	t.Run("weak new password", func(t *testing.T) {
		svc := newTestAuthService(newRepo(), newMockCityRepo(madrid), &recordingSender{})

		err := svc.ChangePassword(context.Background(), 1, "Abcdef12", "abcdefgh")

		assert.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("valid change updates the stored hash", func(t *testing.T) {
		repo := newRepo()
		svc := newTestAuthService(repo, newMockCityRepo(madrid), &recordingSender{})

		require.NoError(t, svc.ChangePassword(context.Background(), 1, "Abcdef12", "Nuevo1Pass"))

		updated := repo.passwordUpdates[1]
		require.NotEmpty(t, updated)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated), []byte("Nuevo1Pass")))
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newTestAuthService(newRepo(), newMockCityRepo(madrid), &recordingSender{})

		err := svc.ChangePassword(context.Background(), 999, "Abcdef12", "Nuevo1Pass")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestAuthService_UpdateOwnProfile(t *testing.T) {
	madrid := domain.City{ID: 1, Name: "Madrid", Active: true}

	repo := newMockUserRepo()
	repo.identities[1] = domain.User{ID: 1, Email: "ana@example.com"}
	repo.profiles[1] = domain.User{
		ID:        1,
		Email:     "ana@example.com",
		FirstName: "Ana",
		LastName:  "García",
		Role:      domain.RoleSupplier,
		Cities:    []uint{1, 2},
	}
	repo.nextID = 2

	svc := newTestAuthService(repo, newMockCityRepo(madrid), &recordingSender{})

	t.Run("name and phone change, role and cities stay", func(t *testing.T) {
		updated, err := svc.UpdateOwnProfile(context.Background(), 1, "Ana María", "García López", "600123123")

		require.NoError(t, err)
		assert.Equal(t, "Ana María", updated.FirstName)
		assert.Equal(t, "García López", updated.LastName)
		assert.Equal(t, "600123123", updated.Phone)
		assert.Equal(t, domain.RoleSupplier, updated.Role)
		assert.Equal(t, []uint{1, 2}, updated.Cities)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateOwnProfile(context.Background(), 999, "Ana", "García", "")

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
