package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/conexa-api/internal/domain/event"
	"github.com/gravadigital/conexa-api/internal/logger"
)

// ErrNotFound is returned when a record does not exist. Callers that need to
// distinguish "absent" from a storage fault check for it with errors.Is.
var ErrNotFound = errors.New("record not found")

// PostgresEventRepository implements EventRepository using GORM
type PostgresEventRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresEventRepository creates a new PostgreSQL event repository
func NewPostgresEventRepository(db *gorm.DB) *PostgresEventRepository {
	return &PostgresEventRepository{
		db:  db,
		log: logger.Repository("event"),
	}
}

func (r *PostgresEventRepository) Create(e *event.Event) error {
	r.log.Debug("Creating event", "name", e.Name, "slug", e.Slug)

	if err := e.Validate(); err != nil {
		r.log.Error("Event validation failed", "error", err)
		return fmt.Errorf("event validation failed: %w", err)
	}

	if err := r.db.Create(e).Error; err != nil {
		r.log.Error("Failed to create event", "error", err, "slug", e.Slug)
		return fmt.Errorf("failed to create event: %w", err)
	}

	r.log.Info("Event created successfully", "id", e.ID, "slug", e.Slug)
	return nil
}

func (r *PostgresEventRepository) GetByID(id uuid.UUID) (*event.Event, error) {
	var e event.Event
	if err := r.db.First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get event by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get event by ID: %w", err)
	}
	return &e, nil
}

func (r *PostgresEventRepository) GetBySlug(slug string) (*event.Event, error) {
	var e event.Event
	if err := r.db.First(&e, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		r.log.Error("Failed to get event by slug", "slug", slug, "error", err)
		return nil, fmt.Errorf("failed to get event by slug: %w", err)
	}
	return &e, nil
}

func (r *PostgresEventRepository) GetAll() ([]*event.Event, error) {
	var events []*event.Event
	if err := r.db.Order("start_date ASC").Find(&events).Error; err != nil {
		r.log.Error("Failed to get all events", "error", err)
		return nil, fmt.Errorf("failed to get all events: %w", err)
	}

	r.log.Debug("Retrieved all events", "count", len(events))
	return events, nil
}

func (r *PostgresEventRepository) Update(e *event.Event) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("event validation failed: %w", err)
	}

	// The slug is intentionally never rewritten: printed QR material links
	// to it.
	result := r.db.Model(&event.Event{}).
		Where("id = ?", e.ID).
		Updates(map[string]any{
			"name":        e.Name,
			"description": e.Description,
			"image_url":   e.ImageURL,
			"start_date":  e.StartDate,
			"end_date":    e.EndDate,
		})
	if result.Error != nil {
		r.log.Error("Failed to update event", "id", e.ID, "error", result.Error)
		return fmt.Errorf("failed to update event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Event updated successfully", "id", e.ID)
	return nil
}

func (r *PostgresEventRepository) Delete(id uuid.UUID) error {
	result := r.db.Delete(&event.Event{}, "id = ?", id)
	if result.Error != nil {
		r.log.Error("Failed to delete event", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete event: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.log.Info("Event deleted successfully", "id", id)
	return nil
}

// ActiveEventID returns the event whose window contains now, inclusive on
// both ends. Overlapping events are broken by the latest start date.
func (r *PostgresEventRepository) ActiveEventID(now time.Time) (uuid.UUID, bool, error) {
	var e event.Event
	err := r.db.
		Where("start_date <= ? AND end_date >= ?", now, now).
		Order("start_date DESC").
		First(&e).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, false, nil
		}
		r.log.Error("Failed to resolve active event", "error", err)
		return uuid.Nil, false, fmt.Errorf("failed to resolve active event: %w", err)
	}

	return e.ID, true, nil
}
