package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/email"
	"github.com/centerthink/centerthink-api/internal/repository"
)

var (
	ErrUserEmailExists = repository.ErrUserEmailExists
	ErrUserNotFound    = repository.ErrUserNotFound
	ErrWrongPassword   = errors.New("wrong password")
	ErrWeakPassword    = errors.New("password must be at least 8 characters and contain an uppercase letter, a lowercase letter and a digit")
	ErrInvalidCity     = errors.New("invalid city")
	ErrInvalidToken    = errors.New("invalid verification token")
)

// passwordComplexityPattern needs lookaheads, which the stdlib regexp engine
// does not support.
const passwordComplexityPattern = `^(?=.*[A-Z])(?=.*[a-z])(?=.*\d).{8,}$`

var passwordComplexityExp = regexp2.MustCompile(passwordComplexityPattern, regexp2.None)

// ValidPassword reports whether password meets the self-registration
// complexity rules.
func ValidPassword(password string) bool {
	ok, err := passwordComplexityExp.MatchString(password)

	return err == nil && ok
}

type AuthUserRepository interface {
	CreateIdentity(ctx context.Context, user domain.User) (domain.User, error)
	CreateProfile(ctx context.Context, user domain.User) (domain.User, error)
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindIdentityByID(ctx context.Context, id uint) (domain.User, error)
	FindIdentityByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateProfile(ctx context.Context, user domain.User) (domain.User, error)
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	DeleteIdentity(ctx context.Context, id uint) error
}

type AuthCityRepository interface {
	FindByID(ctx context.Context, id uint) (domain.City, error)
	ListActive(ctx context.Context) ([]domain.City, error)
}

type AuthService struct {
	repo       AuthUserRepository
	cityRepo   AuthCityRepository
	sender     email.Sender
	from       string
	appURL     string
	signingKey []byte
}

func NewAuthService(repo AuthUserRepository, cityRepo AuthCityRepository, sender email.Sender, from, appURL, signingKey string) *AuthService {
	return &AuthService{
		repo:       repo,
		cityRepo:   cityRepo,
		sender:     sender,
		from:       from,
		appURL:     appURL,
		signingKey: []byte(signingKey),
	}
}

func (s *AuthService) Login(ctx context.Context, userEmail, password string) (domain.User, error) {
	identity, err := s.repo.FindIdentityByEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindIdentityByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(identity.Password), []byte(password)); err != nil {
		return domain.User{}, ErrWrongPassword
	}

	// An identity without a profile can still log in; the profile is
	// synthesized on fetch.
	return s.GetCurrentProfile(ctx, identity.ID)
}

// GetCurrentProfile resolves the identity and profile for userID. A missing
// or failing profile fetch degrades to a synthesized default profile
// (role=user, no cities) so a half-provisioned account still gets a working,
// if empty, session.
func (s *AuthService) GetCurrentProfile(ctx context.Context, userID uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err == nil {
		return user, nil
	}

	if !errors.Is(err, repository.ErrProfileNotFound) {
		zap.L().Warn("profile fetch failed, falling back to default profile",
			zap.Uint("user_id", userID), zap.Error(err))
	}

	identity, err := s.repo.FindIdentityByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindIdentityByID -> %w", err)
	}

	identity.Role = domain.RoleUser
	identity.Cities = []uint{}

	return identity, nil
}

// Register is the public self-registration flow. The password complexity
// check runs before anything touches the store; the role is always "user"
// with the single chosen city; the identity starts unverified and a
// verification email is sent.
func (s *AuthService) Register(ctx context.Context, user domain.User, password string, cityID uint) (domain.User, error) {
	if !ValidPassword(password) {
		return domain.User{}, ErrWeakPassword
	}

	city, err := s.cityRepo.FindByID(ctx, cityID)
	if err != nil || !city.Active {
		return domain.User{}, ErrInvalidCity
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	user.Password = string(hash)
	user.EmailVerified = false
	user.Role = domain.RoleUser
	user.Cities = []uint{cityID}

	created, err := s.repo.CreateIdentity(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserEmailExists) {
			return domain.User{}, ErrUserEmailExists
		}

		return domain.User{}, fmt.Errorf("s.repo.CreateIdentity -> %w", err)
	}

	identityID := created.ID

	created, err = s.repo.CreateProfile(ctx, created)
	if err != nil {
		// Best-effort compensation: without a profile the identity is
		// unusable, so remove it again.
		if delErr := s.repo.DeleteIdentity(ctx, identityID); delErr != nil {
			zap.L().Error("failed to roll back identity after profile failure",
				zap.Uint("user_id", identityID), zap.Error(delErr))
		}

		return domain.User{}, fmt.Errorf("s.repo.CreateProfile -> %w", err)
	}

	verifyURL, err := s.verificationURL(created.ID)
	if err != nil {
		return domain.User{}, err
	}
	msg := email.VerificationMessage(s.from, created.Email, created.FullName(), verifyURL)
	if err = s.sender.Send(ctx, msg); err != nil {
		zap.L().Error("failed to send verification email",
			zap.Uint("user_id", created.ID), zap.Error(err))
	}

	return created, nil
}

// RegistrationCities lists the active cities offered on the public
// registration form.
func (s *AuthService) RegistrationCities(ctx context.Context) ([]domain.City, error) {
	cities, err := s.cityRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.cityRepo.ListActive -> %w", err)
	}

	return cities, nil
}

// VerifyEmailToken confirms the email behind a verification link.
func (s *AuthService) VerifyEmailToken(ctx context.Context, token string) error {
	claims := &verificationClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid || claims.UserID == 0 {
		return ErrInvalidToken
	}

	if err = s.repo.MarkEmailVerified(ctx, claims.UserID); err != nil {
		return fmt.Errorf("s.repo.MarkEmailVerified -> %w", err)
	}

	return nil
}

// ForgotPassword emails a recovery link to the account behind userEmail.
// Unknown addresses are accepted silently so the endpoint does not reveal
// which emails have an account.
func (s *AuthService) ForgotPassword(ctx context.Context, userEmail string) error {
	user, err := s.repo.FindIdentityByEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			zap.L().Info("password recovery requested for unknown email")

			return nil
		}

		return fmt.Errorf("s.repo.FindIdentityByEmail -> %w", err)
	}

	resetURL, err := s.recoveryURL(user.ID)
	if err != nil {
		return err
	}

	msg := email.RecoveryMessage(s.from, user.Email, user.FullName(), resetURL)
	if err = s.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("s.sender.Send -> %w", err)
	}

	return nil
}

// ResetPassword redeems a recovery token and sets the account's new password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims := &verificationClaims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}

		return s.signingKey, nil
	})
	if err != nil || !parsed.Valid || claims.UserID == 0 {
		return ErrInvalidToken
	}

	if !ValidPassword(newPassword) {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	if err = s.repo.UpdatePassword(ctx, claims.UserID, string(hash)); err != nil {
		// The account may have been deleted since the link was sent.
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrInvalidToken
		}

		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

// UpdateOwnProfile lets a user edit their own name and phone. The role and
// city assignments stay untouched.
func (s *AuthService) UpdateOwnProfile(ctx context.Context, userID uint, firstName, lastName, phone string) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) || errors.Is(err, repository.ErrProfileNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.Phone = phone

	updated, err := s.repo.UpdateProfile(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, ErrUserNotFound
		}

		return domain.User{}, fmt.Errorf("s.repo.UpdateProfile -> %w", err)
	}

	return updated, nil
}

// ChangePassword verifies the current password before setting the new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword, newPassword string) error {
	identity, err := s.repo.FindIdentityByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}

		return fmt.Errorf("s.repo.FindIdentityByID -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(identity.Password), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	if !ValidPassword(newPassword) {
		return ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("bcrypt.GenerateFromPassword -> %w", err)
	}

	if err = s.repo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

type verificationClaims struct {
	jwt.RegisteredClaims

	UserID uint `json:"uid"`
}

func (s *AuthService) verificationURL(userID uint) (string, error) {
	claims := verificationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(48 * time.Hour)),
		},
		UserID: userID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return fmt.Sprintf("%v/verify-email?token=%v", s.appURL, token), nil
}

// recoveryURL signs a short-lived token for the reset-password page.
func (s *AuthService) recoveryURL(userID uint) (string, error) {
	claims := verificationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: userID,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return fmt.Sprintf("%v/reset-password?token=%v", s.appURL, token), nil
}
