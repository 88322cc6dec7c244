package postgres

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/conexa-api/internal/domain/profile"
	"github.com/gravadigital/conexa-api/internal/domain/scan"
	"github.com/gravadigital/conexa-api/internal/logger"
)

// PostgresPointsRepository implements PointsRepository using GORM
type PostgresPointsRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresPointsRepository creates a new PostgreSQL points repository
func NewPostgresPointsRepository(db *gorm.DB) *PostgresPointsRepository {
	return &PostgresPointsRepository{
		db:  db,
		log: logger.Repository("points"),
	}
}

// GetUserEventPoints returns the user's tally for an event, zero when the
// user has not scored yet.
func (r *PostgresPointsRepository) GetUserEventPoints(userID, eventID uuid.UUID) (int, error) {
	var row scan.UserEventPoints
	err := r.db.
		Where("user_id = ? AND event_id = ?", userID, eventID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		r.log.Error("Failed to get user points", "user_id", userID, "event_id", eventID, "error", err)
		return 0, fmt.Errorf("failed to get user points: %w", err)
	}
	return row.Points, nil
}

// GetRanking returns one page of the event ranking, points descending.
// Pages are 1-based.
func (r *PostgresPointsRepository) GetRanking(eventID uuid.UUID, page, limit int) ([]RankingEntry, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	type rankingRow struct {
		Points    int
		ID        uuid.UUID
		FullName  string
		AvatarURL string
		Instagram string
		TikTok    string
		AgeGroup  profile.AgeGroup
	}

	var rows []rankingRow
	err := r.db.
		Table("user_event_points").
		Select("user_event_points.points, profiles.id, profiles.full_name, profiles.avatar_url, profiles.instagram, profiles.tiktok, profiles.age_group").
		Joins("JOIN profiles ON profiles.id = user_event_points.user_id").
		Where("user_event_points.event_id = ?", eventID).
		Order("user_event_points.points DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		r.log.Error("Failed to get ranking", "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to get ranking: %w", err)
	}

	entries := make([]RankingEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, RankingEntry{
			Points: row.Points,
			Profile: PublicProfile{
				ID:        row.ID,
				FullName:  row.FullName,
				AvatarURL: row.AvatarURL,
				Instagram: row.Instagram,
				TikTok:    row.TikTok,
				AgeGroup:  row.AgeGroup,
			},
		})
	}

	r.log.Debug("Retrieved ranking page", "event_id", eventID, "page", page, "count", len(entries))
	return entries, nil
}

// GetConnections returns the user's connections in an event, newest first,
// with the connected profile preloaded.
func (r *PostgresPointsRepository) GetConnections(userID, eventID uuid.UUID) ([]*scan.Connection, error) {
	var connections []*scan.Connection
	err := r.db.
		Preload("ConnectedUser").
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Order("created_at DESC").
		Find(&connections).Error
	if err != nil {
		r.log.Error("Failed to get connections", "user_id", userID, "event_id", eventID, "error", err)
		return nil, fmt.Errorf("failed to get connections: %w", err)
	}

	return connections, nil
}
