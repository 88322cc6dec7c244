package postgres

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/conexa-api/internal/domain/scan"
	"github.com/gravadigital/conexa-api/internal/logger"
)

// PostgresAwardRepository implements scan.Awarder by invoking the
// process_scan SQL function. All award semantics live inside that function:
// activity-vs-user resolution of the code, idempotency under the unique
// constraints on scans and connections, and the point/connection mutations.
// Keeping it in the database makes it the single serialization point for
// concurrent scans of the same code.
type PostgresAwardRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresAwardRepository creates a new PostgreSQL award repository
func NewPostgresAwardRepository(db *gorm.DB) *PostgresAwardRepository {
	return &PostgresAwardRepository{
		db:  db,
		log: logger.Repository("award"),
	}
}

// Award runs the atomic award operation for one (actor, event, code) triple
// and returns its verdict verbatim.
func (r *PostgresAwardRepository) Award(actorID, eventID uuid.UUID, code string) (scan.Result, error) {
	r.log.Debug("Delegating scan to process_scan", "event_id", eventID)

	var payload string
	err := r.db.
		Raw("SELECT process_scan(?::uuid, ?::uuid, ?)::text", actorID, eventID, code).
		Scan(&payload).Error
	if err != nil {
		r.log.Error("process_scan invocation failed", "event_id", eventID, "error", err)
		return scan.Result{}, fmt.Errorf("process_scan failed: %w", err)
	}

	var result scan.Result
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		r.log.Error("process_scan returned malformed payload", "payload", payload, "error", err)
		return scan.Result{}, fmt.Errorf("malformed process_scan result: %w", err)
	}

	return result, nil
}
