package common

import "github.com/google/uuid"

// SharedEvent represents the minimal Event structure used across domains
type SharedEvent struct {
	ID   uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name string    `json:"name"`
	Slug string    `json:"slug"`
}

func (SharedEvent) TableName() string {
	return "events"
}

// SharedProfile represents the minimal Profile structure used across domains
type SharedProfile struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	FullName string    `json:"full_name"`
}

func (SharedProfile) TableName() string {
	return "profiles"
}
