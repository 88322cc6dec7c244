package validation

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// ValidateRequired checks that a field is not empty
func ValidateRequired(value, fieldName string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(fieldName + " is required")
	}
	return nil
}

// ValidateMinLength checks the minimum length of a string
func ValidateMinLength(value string, minLength int, fieldName string) error {
	if utf8.RuneCountInString(value) < minLength {
		return errors.New(fieldName + " must be at least " + strconv.Itoa(minLength) + " characters long")
	}
	return nil
}

// ValidateMaxLength checks the maximum length of a string
func ValidateMaxLength(value string, maxLength int, fieldName string) error {
	if utf8.RuneCountInString(value) > maxLength {
		return errors.New(fieldName + " must be at most " + strconv.Itoa(maxLength) + " characters long")
	}
	return nil
}

// ValidateUUID checks that a string is a valid UUID
func ValidateUUID(value, fieldName string) error {
	if _, err := uuid.Parse(value); err != nil {
		return errors.New(fieldName + " must be a valid UUID")
	}
	return nil
}

// ValidateEmail does a basic email format check
func ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return errors.New("email must have a valid format")
	}
	return nil
}

// ValidateDateRange checks that the dates form a valid window
func ValidateDateRange(startDate, endDate time.Time) error {
	if endDate.Before(startDate) {
		return errors.New("end date must be after start date")
	}
	return nil
}

// EventValidation groups event-specific validations
type EventValidation struct{}

// ValidateEventName validates an event name
func (v EventValidation) ValidateEventName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	if err := ValidateMinLength(name, 3, "name"); err != nil {
		return err
	}
	return ValidateMaxLength(name, 100, "name")
}

// ValidateEventDescription validates an event description
func (v EventValidation) ValidateEventDescription(description string) error {
	return ValidateMaxLength(description, 1000, "description")
}

// ActivityValidation groups activity-specific validations
type ActivityValidation struct{}

// ValidateActivityName validates an activity name
func (v ActivityValidation) ValidateActivityName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	return ValidateMaxLength(name, 100, "name")
}

// ValidatePoints validates an activity point value
func (v ActivityValidation) ValidatePoints(points int) error {
	if points < 0 {
		return errors.New("points cannot be negative")
	}
	if points > 10000 {
		return errors.New("points cannot exceed 10000")
	}
	return nil
}

// ProfileValidation groups profile-specific validations
type ProfileValidation struct{}

// ValidateFullName validates a profile display name
func (v ProfileValidation) ValidateFullName(name string) error {
	if err := ValidateRequired(name, "name"); err != nil {
		return err
	}
	return ValidateMaxLength(name, 80, "name")
}

// Shared validator instances
var (
	Event    = EventValidation{}
	Activity = ActivityValidation{}
	Profile  = ProfileValidation{}
)
