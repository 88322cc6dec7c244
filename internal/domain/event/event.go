package event

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event represents a gamified event attendees join and scan codes in
type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"not null;uniqueIndex"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	EndDate     time.Time `json:"end_date" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Event) TableName() string {
	return "events"
}

// BeforeCreate sets a UUID before creating the record
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// NewEvent creates a new event. The slug is derived from the name once and
// then left alone: external QR material may reference it.
func NewEvent(name, description, imageURL string, startDate, endDate time.Time) *Event {
	return &Event{
		ID:          uuid.New(),
		Name:        name,
		Slug:        Slugify(name),
		Description: description,
		ImageURL:    imageURL,
		StartDate:   startDate,
		EndDate:     endDate,
	}
}

var nonSlugChars = regexp.MustCompile(`[^\w-]+`)

// Slugify converts an event name into its URL slug: lowercase, spaces to
// dashes, everything outside [a-z0-9_-] removed.
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	return nonSlugChars.ReplaceAllString(slug, "")
}

// IsActiveAt reports whether now falls inside the event window, inclusive on
// both ends.
func (e *Event) IsActiveAt(now time.Time) bool {
	return !now.Before(e.StartDate) && !now.After(e.EndDate)
}

// Validate checks if the event data is valid
func (e *Event) Validate() error {
	if e.Name == "" {
		return fmt.Errorf("name is required")
	}
	if e.Slug == "" {
		return fmt.Errorf("slug is required")
	}
	if e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("end_date must be after start_date")
	}
	return nil
}
