package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/email"
	"github.com/centerthink/centerthink-api/internal/repository"
)

var (
	ErrNotAllowed    = errors.New("operation not allowed for this role")
	ErrSelfDelete    = errors.New("cannot delete your own account")
	ErrShortPassword = errors.New("password must be at least 6 characters")
	ErrInvalidRole   = errors.New("invalid role")
)

// CitiesNotAllowedError rejects a supplier assigning cities outside their own
// assignment list. It names the offending city IDs.
type CitiesNotAllowedError struct {
	CityIDs []uint
}

func (e *CitiesNotAllowedError) Error() string {
	ids := make([]string, 0, len(e.CityIDs))
	for _, id := range e.CityIDs {
		ids = append(ids, fmt.Sprint(id))
	}

	return fmt.Sprintf("cities not in your assignment: %v", strings.Join(ids, ", "))
}

const tempPasswordLength = 16

const tempPasswordCharset = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnpqrstuvwxyz23456789"

type UserRepository interface {
	CreateIdentity(ctx context.Context, user domain.User) (domain.User, error)
	CreateProfile(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindIdentityByID(ctx context.Context, id uint) (domain.User, error)
	List(ctx context.Context, sortSpec string, limit int) ([]domain.User, error)
	UpdateProfile(ctx context.Context, user domain.User) (domain.User, error)
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	DeleteProfile(ctx context.Context, id uint) error
	DeleteIdentity(ctx context.Context, id uint) error
}

// UserService is the management surface behind the admin endpoints. Every
// operation takes the authenticated caller and re-derives authorization
// server-side; nothing trusts what the client claims about itself.
type UserService struct {
	repo       UserRepository
	sender     email.Sender
	from       string
	appURL     string
	signingKey []byte
}

func NewUserService(repo UserRepository, sender email.Sender, from, appURL, signingKey string) *UserService {
	return &UserService{
		repo:       repo,
		sender:     sender,
		from:       from,
		appURL:     appURL,
		signingKey: []byte(signingKey),
	}
}

// CreateUser provisions an account with a generated temporary password. The
// identity is created already verified, the credentials go out by email, and
// the temporary password is also returned so the caller can hand it over
// directly.
func (s *UserService) CreateUser(ctx context.Context, caller domain.User, user domain.User) (domain.User, string, error) {
	if err := s.authorizeManage(caller, user.Cities); err != nil {
		return domain.User{}, "", err
	}
	if !domain.ValidRole(user.Role) {
		return domain.User{}, "", ErrInvalidRole
	}

	tempPassword, err := generatePassword(tempPasswordLength)
	if err != nil {
		return domain.User{}, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(tempPassword), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	user.Password = string(hash)
	user.EmailVerified = true

	created, err := s.repo.CreateIdentity(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, "", ErrUserEmailExists
		}

		return domain.User{}, "", fmt.Errorf("s.repo.CreateIdentity -> %w", err)
	}

	identityID := created.ID

	created, err = s.repo.CreateProfile(ctx, created)
	if err != nil {
		// Compensate so no orphaned identity blocks the email address.
		if delErr := s.repo.DeleteIdentity(ctx, identityID); delErr != nil {
			zap.L().Error("failed to roll back identity after profile failure",
				zap.Uint("user_id", identityID), zap.Error(delErr))
		}

		return domain.User{}, "", fmt.Errorf("s.repo.CreateProfile -> %w", err)
	}

	msg := email.CredentialsMessage(s.from, created.Email, created.FullName(), tempPassword, caller.FullName(), s.appURL)
	if err = s.sender.Send(ctx, msg); err != nil {
		zap.L().Error("failed to send credentials email",
			zap.Uint("user_id", created.ID), zap.Error(err))
	}

	return created, tempPassword, nil
}

func (s *UserService) Get(ctx context.Context, caller domain.User, id uint) (domain.User, error) {
	if err := s.authorizeManage(caller, nil); err != nil {
		return domain.User{}, err
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrProfileNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

func (s *UserService) List(ctx context.Context, caller domain.User, sortSpec string, limit int) ([]domain.User, error) {
	if err := s.authorizeManage(caller, nil); err != nil {
		return nil, err
	}

	users, err := s.repo.List(ctx, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return users, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, caller domain.User, user domain.User) (domain.User, error) {
	if err := s.authorizeManage(caller, user.Cities); err != nil {
		return domain.User{}, err
	}
	if !domain.ValidRole(user.Role) {
		return domain.User{}, ErrInvalidRole
	}

	updated, err := s.repo.UpdateProfile(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return updated, nil
}

// DeleteUser removes the profile first and the identity second. Deleting
// your own account is rejected.
func (s *UserService) DeleteUser(ctx context.Context, caller domain.User, id uint) error {
	if err := s.authorizeManage(caller, nil); err != nil {
		return err
	}
	if caller.ID == id {
		return ErrSelfDelete
	}

	if err := s.repo.DeleteProfile(ctx, id); err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("s.repo.DeleteProfile -> %w", err)
		}
		// A missing profile row still leaves the identity to clean up.
	}

	if err := s.repo.DeleteIdentity(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.DeleteIdentity -> %w", err)
	}

	return nil
}

// ResetPassword sets a new password when one is given, or emails a recovery
// link when the password is empty.
func (s *UserService) ResetPassword(ctx context.Context, caller domain.User, id uint, newPassword string) error {
	if err := s.authorizeManage(caller, nil); err != nil {
		return err
	}

	user, err := s.repo.FindIdentityByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindIdentityByID -> %w", err)
	}

	if newPassword == "" {
		return s.sendRecovery(ctx, user)
	}

	if len(newPassword) < 6 {
		return ErrShortPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	if err = s.repo.UpdatePassword(ctx, id, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

// VerifyUserEmail marks the account's email as confirmed without the user
// clicking the verification link.
func (s *UserService) VerifyUserEmail(ctx context.Context, caller domain.User, id uint) error {
	if err := s.authorizeManage(caller, nil); err != nil {
		return err
	}

	if err := s.repo.MarkEmailVerified(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.MarkEmailVerified -> %w", err)
	}

	return nil
}

// authorizeManage enforces the management rules: only admins and suppliers
// manage users, and suppliers stay inside their own city assignments.
func (s *UserService) authorizeManage(caller domain.User, cities []uint) error {
	switch caller.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleSupplier:
		var outside []uint
		for _, cityID := range cities {
			if !caller.HasCity(cityID) {
				outside = append(outside, cityID)
			}
		}
		if len(outside) > 0 {
			return &CitiesNotAllowedError{CityIDs: outside}
		}

		return nil
	default:
		return ErrNotAllowed
	}
}

func (s *UserService) sendRecovery(ctx context.Context, user domain.User) error {
	claims := verificationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: user.ID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return fmt.Errorf("token.SignedString -> %w", err)
	}

	resetURL := fmt.Sprintf("%v/reset-password?token=%v", s.appURL, token)
	msg := email.RecoveryMessage(s.from, user.Email, user.FullName(), resetURL)
	if err = s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("s.sender.Send -> %w", err)
	}

	return nil
}

func generatePassword(length int) (string, error) {
	password := make([]byte, length)
	max := big.NewInt(int64(len(tempPasswordCharset)))

	for i := range password {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("rand.Int -> %w", err)
		}
		password[i] = tempPasswordCharset[n.Int64()]
	}

	return string(password), nil
}
