package scan

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/conexa-api/internal/domain/common"
)

// Record is an append-only fact that a user scanned a code in an event. The
// unique index over (user, event, code) is what makes repeated scans safe:
// the award routine inserts here first and stops when the row already
// exists.
type Record struct {
	ID               uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_scans_user_event_code"`
	EventID          uuid.UUID `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_scans_user_event_code"`
	QRCodeIdentifier string    `json:"qrcode_identifier" gorm:"not null;uniqueIndex:idx_scans_user_event_code"`
	Type             string    `json:"type" gorm:"not null"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the table name used by GORM
func (Record) TableName() string {
	return "scans"
}

// BeforeCreate sets a UUID before creating the record
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Connection is the directional edge "UserID scanned ConnectedUserID's QR in
// EventID". Symmetric awarding is handled inside the award routine.
type Connection struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_connections_pair_event"`
	ConnectedUserID uuid.UUID `json:"connected_user_id" gorm:"type:uuid;not null;uniqueIndex:idx_connections_pair_event"`
	EventID         uuid.UUID `json:"event_id" gorm:"type:uuid;not null;uniqueIndex:idx_connections_pair_event"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`

	ConnectedUser common.SharedProfile `json:"connected_user,omitempty" gorm:"foreignKey:ConnectedUserID"`
}

// TableName overrides the table name used by GORM
func (Connection) TableName() string {
	return "connections"
}

// BeforeCreate sets a UUID before creating the record
func (c *Connection) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// UserEventPoints is the derived per-event point tally, mutated only by the
// award routine.
type UserEventPoints struct {
	UserID  uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	EventID uuid.UUID `json:"event_id" gorm:"type:uuid;primaryKey"`
	Points  int       `json:"points" gorm:"not null;default:0"`
}

// TableName overrides the table name used by GORM
func (UserEventPoints) TableName() string {
	return "user_event_points"
}
