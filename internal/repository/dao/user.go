package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUserNotFound    = errors.New("user not found")
)

// Identity is the authentication record: credentials and email verification.
type Identity struct {
	ID uint `gorm:"primaryKey"`

	Email         string `gorm:"unique;not null"`
	Password      string `gorm:"not null"`
	EmailVerified bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// UserProfile shares its primary key with the Identity it belongs to.
type UserProfile struct {
	ID uint `gorm:"primaryKey"`

	FirstName      string `gorm:"not null"`
	LastName       string `gorm:"not null"`
	Role           string `gorm:"not null;default:user"`
	Cities         datatypes.JSON `gorm:"type:jsonb"`
	Phone          string
	SelectedCityID uint

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) InsertIdentity(ctx context.Context, identity Identity) (Identity, error) {
	result := d.db.WithContext(ctx).Create(&identity)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) && err.Code == pgerrcode.UniqueViolation {
			return Identity{}, ErrUserEmailExists
		}

		return Identity{}, result.Error
	}

	return identity, nil
}

func (d *UserDAO) InsertProfile(ctx context.Context, profile UserProfile) (UserProfile, error) {
	result := d.db.WithContext(ctx).Create(&profile)
	if result.Error != nil {
		return UserProfile{}, result.Error
	}

	return profile, nil
}

func (d *UserDAO) FindIdentityByID(ctx context.Context, id uint) (Identity, error) {
	var identity Identity

	result := d.db.WithContext(ctx).First(&identity, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Identity{}, ErrUserNotFound
		}

		return Identity{}, result.Error
	}

	return identity, nil
}

func (d *UserDAO) FindIdentityByEmail(ctx context.Context, email string) (Identity, error) {
	var identity Identity

	result := d.db.WithContext(ctx).First(&identity, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Identity{}, ErrUserNotFound
		}

		return Identity{}, result.Error
	}

	return identity, nil
}

func (d *UserDAO) FindProfileByID(ctx context.Context, id uint) (UserProfile, error) {
	var profile UserProfile

	result := d.db.WithContext(ctx).First(&profile, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return UserProfile{}, ErrUserNotFound
		}

		return UserProfile{}, result.Error
	}

	return profile, nil
}

func (d *UserDAO) ListProfiles(ctx context.Context, sortSpec string, limit int) ([]UserProfile, error) {
	var profiles []UserProfile

	query := d.db.WithContext(ctx)
	query = applySort(query, sortSpec, "last_name")
	query = applyLimit(query, limit)

	result := query.Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}

	return profiles, nil
}

func (d *UserDAO) ListIdentities(ctx context.Context, ids []uint) ([]Identity, error) {
	var identities []Identity

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&identities)
	if result.Error != nil {
		return nil, result.Error
	}

	return identities, nil
}

func (d *UserDAO) UpdateProfile(ctx context.Context, profile UserProfile) (UserProfile, error) {
	result := d.db.WithContext(ctx).
		Model(&UserProfile{ID: profile.ID}).
		Select("FirstName", "LastName", "Role", "Cities", "Phone").
		Updates(profile)
	if result.Error != nil {
		return UserProfile{}, result.Error
	}
	if result.RowsAffected == 0 {
		return UserProfile{}, ErrUserNotFound
	}

	return d.FindProfileByID(ctx, profile.ID)
}

func (d *UserDAO) UpdateSelectedCity(ctx context.Context, userID, cityID uint) error {
	result := d.db.WithContext(ctx).
		Model(&UserProfile{ID: userID}).
		Update("selected_city_id", cityID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) UpdatePassword(ctx context.Context, userID uint, passwordHash string) error {
	result := d.db.WithContext(ctx).
		Model(&Identity{ID: userID}).
		Update("password", passwordHash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) MarkEmailVerified(ctx context.Context, userID uint) error {
	result := d.db.WithContext(ctx).
		Model(&Identity{ID: userID}).
		Update("email_verified", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) DeleteProfile(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&UserProfile{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) DeleteIdentity(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Identity{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}
