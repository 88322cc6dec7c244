package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/conexa-api/internal/domain/activity"
	"github.com/gravadigital/conexa-api/internal/logger"
)

// PostgresActivityRepository implements ActivityRepository using GORM
type PostgresActivityRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresActivityRepository creates a new PostgreSQL activity repository
func NewPostgresActivityRepository(db *gorm.DB) *PostgresActivityRepository {
	return &PostgresActivityRepository{
		db:  db,
		log: logger.Repository("activity"),
	}
}

func (r *PostgresActivityRepository) Create(a *activity.Activity) error {
	r.log.Debug("Creating activity", "name", a.Name, "event_id", a.EventID, "type", a.Type)

	if err := a.Validate(); err != nil {
		r.log.Error("Activity validation failed", "error", err)
		return fmt.Errorf("activity validation failed: %w", err)
	}

	if err := r.db.Create(a).Error; err != nil {
		r.log.Error("Failed to create activity", "error", err, "event_id", a.EventID)
		return fmt.Errorf("failed to create activity: %w", err)
	}

	r.log.Info("Activity created successfully", "id", a.ID, "identifier", a.Identifier)
	return nil
}

func (r *PostgresActivityRepository) GetByID(id uuid.UUID) (*activity.Activity, error) {
	var a activity.Activity
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get activity by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get activity by ID: %w", err)
	}
	return &a, nil
}

func (r *PostgresActivityRepository) GetByEvent(eventID uuid.UUID, activityType *activity.Type) ([]*activity.Activity, error) {
	query := r.db.Where("event_id = ?", eventID)
	if activityType != nil {
		query = query.Where("type = ?", *activityType)
	}

	var activities []*activity.Activity
	if err := query.Order("created_at ASC").Find(&activities).Error; err != nil {
		r.log.Error("Failed to get activities by event", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to get activities by event: %w", err)
	}

	r.log.Debug("Retrieved activities", "event_id", eventID, "count", len(activities))
	return activities, nil
}

func (r *PostgresActivityRepository) Update(a *activity.Activity) error {
	if err := a.Validate(); err != nil {
		return fmt.Errorf("activity validation failed: %w", err)
	}

	// The scan identifier is never rewritten, printed QR codes depend on it.
	result := r.db.Model(&activity.Activity{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"name":        a.Name,
			"description": a.Description,
			"image_url":   a.ImageURL,
			"points":      a.Points,
		})
	if result.Error != nil {
		r.log.Error("Failed to update activity", "id", a.ID, "error", result.Error)
		return fmt.Errorf("failed to update activity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Activity updated successfully", "id", a.ID)
	return nil
}

func (r *PostgresActivityRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&activity.Activity{}, "id = ?", id)
	if result.Error != nil {
		r.log.Error("Failed to delete activity", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete activity: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Activity deleted successfully", "id", id)
	return nil
}

// ExistsInEvent checks for an activity scan code scoped to one event
func (r *PostgresActivityRepository) ExistsInEvent(eventID uuid.UUID, code string) (bool, error) {
	var count int64
	err := r.db.Model(&activity.Activity{}).
		Where("event_id = ? AND identifier = ?", eventID, code).
		Count(&count).Error
	if err != nil {
		r.log.Error("Failed to check activity in event", "event_id", eventID, "error", err)
		return false, fmt.Errorf("failed to check activity in event: %w", err)
	}
	return count > 0, nil
}

// EventIDByCode searches for an activity scan code across all events. Legacy
// data never guaranteed cross-event uniqueness of codes; the first row the
// database returns wins, matching the historical behavior.
func (r *PostgresActivityRepository) EventIDByCode(code string) (uuid.UUID, bool, error) {
	var a activity.Activity
	err := r.db.Select("event_id").First(&a, "identifier = ?", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		r.log.Error("Failed to search activity by code", "error", err)
		return uuid.Nil, false, fmt.Errorf("failed to search activity by code: %w", err)
	}

	return a.EventID, true, nil
}
