package storage

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/sevahub/internal/config"
	"github.com/example/sevahub/internal/models"
)

// Repository persists full state snapshots. The application state lives in
// memory; the repository only mirrors it, last write wins, exactly like
// the key-value blob it replaces.
type Repository interface {
	Load() (*models.Snapshot, error)
	Save(models.Snapshot) error
}

// authState is the single-row table remembering which user was signed in
// when the snapshot was written.
type authState struct {
	ID        uint       `gorm:"primaryKey"`
	UserID    *uuid.UUID `gorm:"type:uuid"`
	UpdatedAt time.Time
}

func (authState) TableName() string { return "auth_state" }

// GormRepository stores snapshots through GORM, backed by either an
// embedded SQLite file or a Postgres server depending on configuration.
type GormRepository struct {
	db *gorm.DB
}

// Open connects to the configured backend and runs migrations.
func Open(cfg *config.Config) (*GormRepository, error) {
	var dialector gorm.Dialector
	switch cfg.StorageDriver {
	case "postgres":
		if err := ensureDatabase(cfg.DatabaseURL); err != nil {
			return nil, fmt.Errorf("ensure database: %w", err)
		}
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s storage: %w", cfg.StorageDriver, err)
	}

	migrations := []interface{}{
		&models.User{},
		&models.ServiceRequest{},
		&authState{},
	}
	for _, migration := range migrations {
		if err := conn.AutoMigrate(migration); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}

	return &GormRepository{db: conn}, nil
}

// Load reads the last saved snapshot. An empty backend yields an empty
// snapshot, not an error.
func (r *GormRepository) Load() (*models.Snapshot, error) {
	var users []models.User
	if err := r.db.Find(&users).Error; err != nil {
		return nil, err
	}

	var requests []models.ServiceRequest
	if err := r.db.Find(&requests).Error; err != nil {
		return nil, err
	}

	snap := &models.Snapshot{
		Users:   users,
		AppData: &models.AppData{ServiceRequests: requests},
	}

	var state authState
	if err := r.db.First(&state, "id = ?", 1).Error; err == nil && state.UserID != nil {
		for i := range users {
			if users[i].ID == *state.UserID {
				snap.AuthUser = &users[i]
				break
			}
		}
	}

	return snap, nil
}

// Save replaces the persisted state with the snapshot in one transaction.
func (r *GormRepository) Save(snap models.Snapshot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM users").Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM service_requests").Error; err != nil {
			return err
		}

		if len(snap.Users) > 0 {
			if err := tx.Create(&snap.Users).Error; err != nil {
				return err
			}
		}
		if snap.AppData != nil && len(snap.AppData.ServiceRequests) > 0 {
			if err := tx.Create(&snap.AppData.ServiceRequests).Error; err != nil {
				return err
			}
		}

		if err := tx.Exec("DELETE FROM auth_state").Error; err != nil {
			return err
		}
		state := authState{ID: 1, UpdatedAt: time.Now()}
		if snap.AuthUser != nil {
			id := snap.AuthUser.ID
			state.UserID = &id
		}
		return tx.Create(&state).Error
	})
}

// ensureDatabase creates the target postgres database when it does not
// exist yet, connecting through the maintenance database first.
func ensureDatabase(dsn string) error {
	if !strings.HasPrefix(dsn, "postgres://") && !strings.HasPrefix(dsn, "postgresql://") {
		return nil
	}

	parsed, err := url.Parse(dsn)
	if err != nil {
		return err
	}

	dbName := strings.TrimPrefix(parsed.Path, "/")
	if dbName == "" {
		return nil
	}

	parsed.Path = "/postgres"
	masterDSN := parsed.String()

	sqlDB, err := sql.Open("postgres", masterDSN)
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return err
	}

	var exists bool
	if err := sqlDB.QueryRow("SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", dbName).Scan(&exists); err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = sqlDB.Exec("CREATE DATABASE " + pq.QuoteIdentifier(dbName))
	return err
}
