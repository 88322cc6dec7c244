package profile

import (
	"database/sql/driver"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Profile represents an attendee account.
//
// QRIdentifier is the dedicated scan code shown in the user's own QR view.
// It is distinct from the primary key on purpose: the very first QR
// generation printed the primary id directly, and the legacy resolver still
// accepts both.
type Profile struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `json:"email" gorm:"not null;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"not null"`
	FullName     string    `json:"full_name"`
	AvatarURL    string    `json:"avatar_url"`
	Instagram    string    `json:"instagram"`
	TikTok       string    `json:"tiktok"`
	AgeGroup     AgeGroup  `json:"age_group" gorm:"type:varchar(20)"`
	QRIdentifier uuid.UUID `json:"qr_identifier" gorm:"type:uuid;not null;uniqueIndex;default:gen_random_uuid()"`
	Role         Role      `json:"role" gorm:"type:varchar(20);not null;default:'user'"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate sets the UUIDs before creating the record
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.QRIdentifier == uuid.Nil {
		p.QRIdentifier = uuid.New()
	}
	return nil
}

// NewProfile creates a new profile with a fresh scan identifier
func NewProfile(email, passwordHash, fullName string) *Profile {
	return &Profile{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		FullName:     fullName,
		QRIdentifier: uuid.New(),
		Role:         RoleUser,
	}
}

// Validate checks if the profile data is valid
func (p *Profile) Validate() error {
	if p.Email == "" {
		return fmt.Errorf("email is required")
	}
	if !strings.Contains(p.Email, "@") {
		return fmt.Errorf("email must have a valid format")
	}
	if p.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	if p.AgeGroup != "" && !p.AgeGroup.Valid() {
		return fmt.Errorf("invalid age group: %s", p.AgeGroup)
	}
	return nil
}

// IsAdmin reports whether the profile has the admin role
func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

var (
	handlePrefix  = regexp.MustCompile(`^@`)
	instagramHost = regexp.MustCompile(`^(?:https?://)?(?:www\.)?instagram\.com/`)
	tiktokHost    = regexp.MustCompile(`^(?:https?://)?(?:www\.)?tiktok\.com/@?`)
)

// SanitizeInstagram reduces a pasted Instagram handle or profile URL to the
// bare username.
func SanitizeInstagram(value string) string {
	value = handlePrefix.ReplaceAllString(strings.TrimSpace(value), "")
	value = instagramHost.ReplaceAllString(value, "")
	return strings.SplitN(value, "/", 2)[0]
}

// SanitizeTikTok reduces a pasted TikTok handle or profile URL to the bare
// username.
func SanitizeTikTok(value string) string {
	value = handlePrefix.ReplaceAllString(strings.TrimSpace(value), "")
	value = tiktokHost.ReplaceAllString(value, "")
	return strings.SplitN(value, "/", 2)[0]
}

// AgeGroup classifies attendees for event demographics
type AgeGroup string

const (
	AgeGroupUnder18 AgeGroup = "under_18"
	AgeGroup18To24  AgeGroup = "18_24"
	AgeGroup25To34  AgeGroup = "25_34"
	AgeGroup35To44  AgeGroup = "35_44"
	AgeGroup45Plus  AgeGroup = "45_plus"
)

// AgeGroupFromString parses a string into an AgeGroup
func AgeGroupFromString(s string) (AgeGroup, error) {
	a := AgeGroup(s)
	if !a.Valid() {
		return "", fmt.Errorf("invalid age group: %s", s)
	}
	return a, nil
}

// Valid reports whether the age group is one of the recognized variants
func (a AgeGroup) Valid() bool {
	switch a {
	case AgeGroupUnder18, AgeGroup18To24, AgeGroup25To34, AgeGroup35To44, AgeGroup45Plus:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface for database deserialization
func (a *AgeGroup) Scan(value any) error {
	if value == nil {
		*a = ""
		return nil
	}
	if str, ok := value.(string); ok {
		*a = AgeGroup(str)
		return nil
	}
	if b, ok := value.([]byte); ok {
		*a = AgeGroup(b)
		return nil
	}
	return fmt.Errorf("cannot scan %T into AgeGroup", value)
}

// Value implements the driver.Valuer interface for database serialization
func (a AgeGroup) Value() (driver.Value, error) {
	return string(a), nil
}

// Role represents the access level of a profile
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Scan implements the sql.Scanner interface for database deserialization
func (r *Role) Scan(value any) error {
	if value == nil {
		*r = RoleUser
		return nil
	}
	if str, ok := value.(string); ok {
		*r = Role(str)
		return nil
	}
	if b, ok := value.([]byte); ok {
		*r = Role(b)
		return nil
	}
	return fmt.Errorf("cannot scan %T into Role", value)
}

// Value implements the driver.Valuer interface for database serialization
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}
