package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/gravadigital/conexa-api/internal/domain/activity"
	"github.com/gravadigital/conexa-api/internal/domain/event"
	"github.com/gravadigital/conexa-api/internal/domain/profile"
	"github.com/gravadigital/conexa-api/internal/domain/scan"
)

// EventRepository defines the persistence operations for events
type EventRepository interface {
	Create(event *event.Event) error
	GetByID(id uuid.UUID) (*event.Event, error)
	GetBySlug(slug string) (*event.Event, error)
	GetAll() ([]*event.Event, error)
	Update(event *event.Event) error
	Delete(id uuid.UUID) error

	// ActiveEventID implements scan.EventLookup
	ActiveEventID(now time.Time) (uuid.UUID, bool, error)
}

// ActivityRepository defines the persistence operations for activities
type ActivityRepository interface {
	Create(activity *activity.Activity) error
	GetByID(id uuid.UUID) (*activity.Activity, error)
	GetByEvent(eventID uuid.UUID, activityType *activity.Type) ([]*activity.Activity, error)
	Update(activity *activity.Activity) error
	Delete(id uuid.UUID) error

	// ExistsInEvent and EventIDByCode implement scan.ActivityLookup
	ExistsInEvent(eventID uuid.UUID, code string) (bool, error)
	EventIDByCode(code string) (uuid.UUID, bool, error)
}

// ProfileRepository defines the persistence operations for profiles
type ProfileRepository interface {
	Create(p *profile.Profile) error
	GetByID(id uuid.UUID) (*profile.Profile, error)
	GetByEmail(email string) (*profile.Profile, error)
	Update(p *profile.Profile) error

	// ExistsByQRIdentifier and ExistsByID implement scan.ProfileLookup
	ExistsByQRIdentifier(code string) (bool, error)
	ExistsByID(code string) (bool, error)
}

// RankingEntry is one row of an event ranking
type RankingEntry struct {
	Points  int           `json:"points"`
	Profile PublicProfile `json:"user"`
}

// PublicProfile is the subset of a profile shown to other attendees
type PublicProfile struct {
	ID        uuid.UUID        `json:"id"`
	FullName  string           `json:"full_name"`
	AvatarURL string           `json:"avatar_url"`
	Instagram string           `json:"instagram"`
	TikTok    string           `json:"tiktok"`
	AgeGroup  profile.AgeGroup `json:"age_group"`
}

// PointsRepository defines read access to derived scores and connections
type PointsRepository interface {
	GetUserEventPoints(userID, eventID uuid.UUID) (int, error)
	GetRanking(eventID uuid.UUID, page, limit int) ([]RankingEntry, error)
	GetConnections(userID, eventID uuid.UUID) ([]*scan.Connection, error)
}
