package postgres

import (
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"github.com/gravadigital/conexa-api/internal/config"
	"github.com/gravadigital/conexa-api/internal/domain/scan"
	"github.com/gravadigital/conexa-api/internal/logger"
)

// Container holds all repositories over one database connection
type Container struct {
	db           *gorm.DB
	log          *log.Logger
	eventRepo    EventRepository
	activityRepo ActivityRepository
	profileRepo  ProfileRepository
	pointsRepo   PointsRepository
	awardRepo    scan.Awarder
}

// NewContainer connects to the database, runs migrations and initializes all
// repositories.
func NewContainer(cfg *config.Config) (*Container, error) {
	log := logger.Repository("postgres_container")
	log.Info("Initializing PostgreSQL repository container...")

	db, err := Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	container := NewContainerWithDB(db)

	if err := container.Health(); err != nil {
		return nil, fmt.Errorf("container health check failed: %w", err)
	}

	log.Info("PostgreSQL repository container initialized successfully")
	return container, nil
}

// NewContainerWithDB creates a container with an existing database connection
func NewContainerWithDB(db *gorm.DB) *Container {
	return &Container{
		db:           db,
		log:          logger.Repository("postgres_container"),
		eventRepo:    NewPostgresEventRepository(db),
		activityRepo: NewPostgresActivityRepository(db),
		profileRepo:  NewPostgresProfileRepository(db),
		pointsRepo:   NewPostgresPointsRepository(db),
		awardRepo:    NewPostgresAwardRepository(db),
	}
}

// DB returns the underlying connection
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Events returns the event repository
func (c *Container) Events() EventRepository {
	return c.eventRepo
}

// Activities returns the activity repository
func (c *Container) Activities() ActivityRepository {
	return c.activityRepo
}

// Profiles returns the profile repository
func (c *Container) Profiles() ProfileRepository {
	return c.profileRepo
}

// Points returns the points repository
func (c *Container) Points() PointsRepository {
	return c.pointsRepo
}

// Awards returns the award operation
func (c *Container) Awards() scan.Awarder {
	return c.awardRepo
}

// Health performs a health check on the database connection
func (c *Container) Health() error {
	if err := HealthCheck(c.db); err != nil {
		c.log.Error("Database health check failed", "error", err)
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}
