package migrations

import (
	"github.com/gravadigital/conexa-api/internal/domain/activity"
	"github.com/gravadigital/conexa-api/internal/domain/event"
	"github.com/gravadigital/conexa-api/internal/domain/profile"
	"github.com/gravadigital/conexa-api/internal/domain/scan"
)

// AllModels returns every model AutoMigrate manages, dependency order first
func AllModels() []any {
	return []any{
		&event.Event{},
		&profile.Profile{},
		&activity.Activity{},
		&scan.Record{},
		&scan.Connection{},
		&scan.UserEventPoints{},
	}
}
