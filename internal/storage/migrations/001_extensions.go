package migrations

import "gorm.io/gorm"

// migration001Up enables the extensions the schema depends on
func migration001Up(db *gorm.DB) error {
	// gen_random_uuid used by the uuid column defaults
	return db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error
}

// migration001Down leaves extensions in place; other databases on the same
// server may use them.
func migration001Down(db *gorm.DB) error {
	return nil
}
