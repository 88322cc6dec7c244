package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/conexa-api/internal/domain/profile"
	"github.com/gravadigital/conexa-api/internal/logger"
)

// ErrEmailTaken is returned by Create when the email is already registered
var ErrEmailTaken = errors.New("email already registered")

// PostgresProfileRepository implements ProfileRepository using GORM
type PostgresProfileRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		db:  db,
		log: logger.Repository("profile"),
	}
}

func (r *PostgresProfileRepository) Create(p *profile.Profile) error {
	r.log.Debug("Creating profile", "email", p.Email)

	if err := p.Validate(); err != nil {
		r.log.Error("Profile validation failed", "error", err)
		return fmt.Errorf("profile validation failed: %w", err)
	}

	var existing profile.Profile
	if err := r.db.Where("email = ?", p.Email).First(&existing).Error; err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check existing profile: %w", err)
	}

	if err := r.db.Create(p).Error; err != nil {
		r.log.Error("Failed to create profile", "error", err, "email", p.Email)
		return fmt.Errorf("failed to create profile: %w", err)
	}

	r.log.Info("Profile created successfully", "id", p.ID)
	return nil
}

func (r *PostgresProfileRepository) GetByID(id uuid.UUID) (*profile.Profile, error) {
	var p profile.Profile
	if err := r.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get profile by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get profile by ID: %w", err)
	}
	return &p, nil
}

func (r *PostgresProfileRepository) GetByEmail(email string) (*profile.Profile, error) {
	var p profile.Profile
	if err := r.db.First(&p, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get profile by email", "error", err)
		return nil, fmt.Errorf("failed to get profile by email: %w", err)
	}
	return &p, nil
}

func (r *PostgresProfileRepository) Update(p *profile.Profile) error {
	result := r.db.Model(&profile.Profile{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"full_name":  p.FullName,
			"avatar_url": p.AvatarURL,
			"instagram":  p.Instagram,
			"tiktok":     p.TikTok,
			"age_group":  p.AgeGroup,
		})
	if result.Error != nil {
		r.log.Error("Failed to update profile", "id", p.ID, "error", result.Error)
		return fmt.Errorf("failed to update profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Profile updated successfully", "id", p.ID)
	return nil
}

// ExistsByQRIdentifier checks the dedicated scan identifier field
func (r *PostgresProfileRepository) ExistsByQRIdentifier(code string) (bool, error) {
	var count int64
	err := r.db.Model(&profile.Profile{}).
		Where("qr_identifier = ?", code).
		Count(&count).Error
	if err != nil {
		r.log.Error("Failed to check profile by qr_identifier", "error", err)
		return false, fmt.Errorf("failed to check profile by qr_identifier: %w", err)
	}
	return count > 0, nil
}

// ExistsByID checks the primary identifier, the oldest QR code scheme
func (r *PostgresProfileRepository) ExistsByID(code string) (bool, error) {
	var count int64
	err := r.db.Model(&profile.Profile{}).
		Where("id = ?", code).
		Count(&count).Error
	if err != nil {
		r.log.Error("Failed to check profile by id", "error", err)
		return false, fmt.Errorf("failed to check profile by id: %w", err)
	}
	return count > 0, nil
}
