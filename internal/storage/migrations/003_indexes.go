package migrations

import "gorm.io/gorm"

// migration003Up creates the indexes the hot paths rely on beyond what the
// model tags already declare
func migration003Up(db *gorm.DB) error {
	indexes := []string{
		// active-event resolution: date window scan ordered by start_date
		`CREATE INDEX IF NOT EXISTS idx_events_date_window
            ON events (start_date, end_date)`,

		// legacy global activity lookup by scan code
		`CREATE INDEX IF NOT EXISTS idx_activities_identifier
            ON activities (identifier)`,

		// ranking pages: points descending within one event
		`CREATE INDEX IF NOT EXISTS idx_user_event_points_ranking
            ON user_event_points (event_id, points DESC)`,

		// connections listing, newest first
		`CREATE INDEX IF NOT EXISTS idx_connections_user_event_created
            ON connections (user_id, event_id, created_at DESC)`,
	}

	for _, indexSQL := range indexes {
		if err := db.Exec(indexSQL).Error; err != nil {
			return err
		}
	}

	return nil
}

// migration003Down drops the indexes
func migration003Down(db *gorm.DB) error {
	indexes := []string{
		"idx_connections_user_event_created",
		"idx_user_event_points_ranking",
		"idx_activities_identifier",
		"idx_events_date_window",
	}

	for _, index := range indexes {
		if err := db.Exec("DROP INDEX IF EXISTS " + index).Error; err != nil {
			return err
		}
	}

	return nil
}
