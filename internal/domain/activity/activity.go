package activity

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/conexa-api/internal/domain/common"
)

// Activity represents a scannable mission or hidden point worth points,
// scoped to one event.
//
// Identifier is the short scan code printed into QR material. It is distinct
// from the primary key and only unique within the owning event; the legacy
// data model never guaranteed global uniqueness across events.
type Activity struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventID     uuid.UUID `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_activities_event_identifier"`
	Type        Type      `json:"type" gorm:"type:varchar(20);not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	ImageURL    string    `json:"image_url"`
	Points      int       `json:"points" gorm:"not null;default:0"`
	Identifier  uuid.UUID `json:"identifier" gorm:"type:uuid;not null;default:gen_random_uuid();uniqueIndex:idx_activities_event_identifier"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	Event common.SharedEvent `json:"event,omitempty" gorm:"foreignKey:EventID"`
}

// TableName overrides the table name used by GORM
func (Activity) TableName() string {
	return "activities"
}

// BeforeCreate sets the UUIDs before creating the record
func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Identifier == uuid.Nil {
		a.Identifier = uuid.New()
	}
	return nil
}

// NewActivity creates a new activity with a fresh scan identifier
func NewActivity(eventID uuid.UUID, activityType Type, name, description, imageURL string, points int) *Activity {
	return &Activity{
		ID:          uuid.New(),
		EventID:     eventID,
		Type:        activityType,
		Name:        name,
		Description: description,
		ImageURL:    imageURL,
		Points:      points,
		Identifier:  uuid.New(),
	}
}

// Validate checks if the activity data is valid
func (a *Activity) Validate() error {
	if a.EventID == uuid.Nil {
		return fmt.Errorf("event_id is required")
	}
	if !a.Type.Valid() {
		return fmt.Errorf("invalid activity type: %s", a.Type)
	}
	if a.Name == "" {
		return fmt.Errorf("name is required")
	}
	if a.Points < 0 {
		return fmt.Errorf("points cannot be negative")
	}
	return nil
}

// Type is the closed activity variant. The scan protocol never branches on
// it; only rendering and the award routine care which subtype was hit.
type Type string

const (
	TypeMission     Type = "mission"
	TypeHiddenPoint Type = "hidden_point"
)

// Valid reports whether the type is one of the recognized variants
func (t Type) Valid() bool {
	return t == TypeMission || t == TypeHiddenPoint
}

// TypeFromString converts a string to a Type
func TypeFromString(s string) (Type, bool) {
	switch s {
	case "mission":
		return TypeMission, true
	case "hidden_point":
		return TypeHiddenPoint, true
	default:
		return "", false
	}
}

// Scan implements the sql.Scanner interface for database deserialization
func (t *Type) Scan(value any) error {
	if value == nil {
		return fmt.Errorf("activity type cannot be null")
	}
	str, ok := value.(string)
	if !ok {
		if b, ok := value.([]byte); ok {
			str = string(b)
		} else {
			return fmt.Errorf("cannot scan %T into activity Type", value)
		}
	}

	parsed, valid := TypeFromString(str)
	if !valid {
		return fmt.Errorf("invalid activity type value: %s", str)
	}
	*t = parsed
	return nil
}

// Value implements the driver.Valuer interface for database serialization
func (t Type) Value() (driver.Value, error) {
	return string(t), nil
}
