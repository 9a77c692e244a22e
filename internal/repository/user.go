package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"

	"github.com/centerthink/centerthink-api/internal/domain"
	"github.com/centerthink/centerthink-api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUserNotFound    = dao.ErrUserNotFound

	// ErrProfileNotFound means the identity exists but has no profile row.
	// Callers synthesize a default profile instead of failing.
	ErrProfileNotFound = errors.New("user profile not found")
)

type UserDAO interface {
	InsertIdentity(ctx context.Context, identity dao.Identity) (dao.Identity, error)
	InsertProfile(ctx context.Context, profile dao.UserProfile) (dao.UserProfile, error)
	FindIdentityByID(ctx context.Context, id uint) (dao.Identity, error)
	FindIdentityByEmail(ctx context.Context, email string) (dao.Identity, error)
	FindProfileByID(ctx context.Context, id uint) (dao.UserProfile, error)
	ListProfiles(ctx context.Context, sortSpec string, limit int) ([]dao.UserProfile, error)
	ListIdentities(ctx context.Context, ids []uint) ([]dao.Identity, error)
	UpdateProfile(ctx context.Context, profile dao.UserProfile) (dao.UserProfile, error)
	UpdateSelectedCity(ctx context.Context, userID, cityID uint) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string) error
	MarkEmailVerified(ctx context.Context, userID uint) error
	DeleteProfile(ctx context.Context, id uint) error
	DeleteIdentity(ctx context.Context, id uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// CreateIdentity inserts only the authentication record. The profile row is
// created separately so a failed profile insert can be compensated by
// deleting the identity again.
func (r *UserRepository) CreateIdentity(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.InsertIdentity(ctx, dao.Identity{
		Email:         user.Email,
		Password:      user.Password,
		EmailVerified: user.EmailVerified,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.InsertIdentity -> %w", err)
	}

	user.ID = created.ID
	user.CreatedAt = created.CreatedAt
	user.UpdatedAt = created.UpdatedAt

	return user, nil
}

func (r *UserRepository) CreateProfile(ctx context.Context, user domain.User) (domain.User, error) {
	cities, err := marshalCities(user.Cities)
	if err != nil {
		return domain.User{}, err
	}

	created, err := r.dao.InsertProfile(ctx, dao.UserProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		Cities:    cities,
		Phone:     user.Phone,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.InsertProfile -> %w", err)
	}

	return r.merge(dao.Identity{ID: user.ID, Email: user.Email, EmailVerified: user.EmailVerified}, created)
}

// FindByID merges the identity and profile rows. Returns ErrProfileNotFound
// when the identity exists without a profile.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	identity, err := r.dao.FindIdentityByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindIdentityByID -> %w", err)
	}

	profile, err := r.dao.FindProfileByID(ctx, id)
	if err != nil {
		if errors.Is(err, dao.ErrUserNotFound) {
			return domain.User{}, fmt.Errorf("%w: user %v", ErrProfileNotFound, id)
		}

		return domain.User{}, fmt.Errorf("r.dao.FindProfileByID -> %w", err)
	}

	return r.merge(identity, profile)
}

func (r *UserRepository) FindIdentityByID(ctx context.Context, id uint) (domain.User, error) {
	identity, err := r.dao.FindIdentityByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindIdentityByID -> %w", err)
	}

	return domain.User{
		ID:            identity.ID,
		Email:         identity.Email,
		Password:      identity.Password,
		EmailVerified: identity.EmailVerified,
		CreatedAt:     identity.CreatedAt,
		UpdatedAt:     identity.UpdatedAt,
	}, nil
}

// FindIdentityByEmail returns only the authentication record, without the
// profile fields. Used for password checks.
func (r *UserRepository) FindIdentityByEmail(ctx context.Context, email string) (domain.User, error) {
	identity, err := r.dao.FindIdentityByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindIdentityByEmail -> %w", err)
	}

	return domain.User{
		ID:            identity.ID,
		Email:         identity.Email,
		Password:      identity.Password,
		EmailVerified: identity.EmailVerified,
		CreatedAt:     identity.CreatedAt,
		UpdatedAt:     identity.UpdatedAt,
	}, nil
}

func (r *UserRepository) List(ctx context.Context, sortSpec string, limit int) ([]domain.User, error) {
	profiles, err := r.dao.ListProfiles(ctx, sortSpec, limit)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListProfiles -> %w", err)
	}

	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.ID)
	}

	identities, err := r.dao.ListIdentities(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListIdentities -> %w", err)
	}

	byID := make(map[uint]dao.Identity, len(identities))
	for _, identity := range identities {
		byID[identity.ID] = identity
	}

	users := make([]domain.User, 0, len(profiles))
	for _, p := range profiles {
		user, err := r.merge(byID[p.ID], p)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, user domain.User) (domain.User, error) {
	cities, err := marshalCities(user.Cities)
	if err != nil {
		return domain.User{}, err
	}

	updated, err := r.dao.UpdateProfile(ctx, dao.UserProfile{
		ID:        user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      string(user.Role),
		Cities:    cities,
		Phone:     user.Phone,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateProfile -> %w", err)
	}

	identity, err := r.dao.FindIdentityByID(ctx, user.ID)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindIdentityByID -> %w", err)
	}

	return r.merge(identity, updated)
}

func (r *UserRepository) UpdateSelectedCity(ctx context.Context, userID, cityID uint) error {
	if err := r.dao.UpdateSelectedCity(ctx, userID, cityID); err != nil {
		return fmt.Errorf("r.dao.UpdateSelectedCity -> %w", err)
	}

	return nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	if err := r.dao.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func (r *UserRepository) MarkEmailVerified(ctx context.Context, userID uint) error {
	if err := r.dao.MarkEmailVerified(ctx, userID); err != nil {
		return fmt.Errorf("r.dao.MarkEmailVerified -> %w", err)
	}

	return nil
}

func (r *UserRepository) DeleteProfile(ctx context.Context, id uint) error {
	if err := r.dao.DeleteProfile(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteProfile -> %w", err)
	}

	return nil
}

func (r *UserRepository) DeleteIdentity(ctx context.Context, id uint) error {
	if err := r.dao.DeleteIdentity(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteIdentity -> %w", err)
	}

	return nil
}

func (r *UserRepository) merge(identity dao.Identity, profile dao.UserProfile) (domain.User, error) {
	cities := []uint{}
	if len(profile.Cities) > 0 {
		if err := json.Unmarshal(profile.Cities, &cities); err != nil {
			return domain.User{}, fmt.Errorf("unmarshal profile %v cities -> %w", profile.ID, err)
		}
	}

	return domain.User{
		ID:            profile.ID,
		Email:         identity.Email,
		Password:      identity.Password,
		EmailVerified: identity.EmailVerified,
		FirstName:     profile.FirstName,
		LastName:      profile.LastName,
		Role:          domain.Role(profile.Role),
		Cities:        cities,
		Phone:         profile.Phone,
		SelectedCity:  profile.SelectedCityID,
		CreatedAt:     profile.CreatedAt,
		UpdatedAt:     profile.UpdatedAt,
	}, nil
}

func marshalCities(cities []uint) (datatypes.JSON, error) {
	if cities == nil {
		cities = []uint{}
	}

	data, err := json.Marshal(cities)
	if err != nil {
		return nil, fmt.Errorf("marshal cities -> %w", err)
	}

	return datatypes.JSON(data), nil
}
