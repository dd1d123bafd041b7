// Package store manages the Maderas database layer.
// It initializes GORM with SQLite (default) or MySQL and persists contact
// inquiries.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/vesaa/maderas/internal/config"
	"github.com/vesaa/maderas/internal/logging"
	"github.com/vesaa/maderas/internal/models"
)

// DefaultListLimit caps ListInquiries when no limit is given.
const DefaultListLimit = 100

// Store wraps the GORM handle.
type Store struct {
	db  *gorm.DB
	log *slog.Logger
}

// Open opens the configured database and runs AutoMigrate.
func Open(cfg *config.Config, log *slog.Logger) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBPath)
	case "mysql":
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("db_driver mysql needs db_dsn")
		}
		dialector = mysql.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported db_driver %q (use 'sqlite' or 'mysql')", cfg.DBDriver)
	}

	s, err := OpenDialector(dialector, log)
	if err != nil {
		return nil, err
	}
	s.log.Info("database opened", slog.String("driver", dialector.Name()), slog.String("path", cfg.DBPath))
	return s, nil
}

// OpenDialector opens an arbitrary GORM dialector; tests use it directly.
func OpenDialector(dialector gorm.Dialector, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = logging.Discard()
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logging.NewGormLogger(log, 200*time.Millisecond),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.AutoMigrate(&models.Inquiry{}); err != nil {
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

// SaveInquiry inserts inq and fills in its ID and timestamps.
func (s *Store) SaveInquiry(ctx context.Context, inq *models.Inquiry) error {
	if inq.Source == "" {
		inq.Source = "web"
	}
	if err := s.db.WithContext(ctx).Create(inq).Error; err != nil {
		return fmt.Errorf("inserting inquiry: %w", err)
	}
	s.log.Debug("inquiry saved", slog.Uint64("id", uint64(inq.ID)))
	return nil
}

// ListInquiries returns the newest inquiries first. limit <= 0 means
// DefaultListLimit.
func (s *Store) ListInquiries(ctx context.Context, limit int) ([]models.Inquiry, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var out []models.Inquiry
	err := s.db.WithContext(ctx).Order("created_at desc, id desc").Limit(limit).Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing inquiries: %w", err)
	}
	return out, nil
}

// GetInquiry loads one inquiry by id.
func (s *Store) GetInquiry(ctx context.Context, id uint) (*models.Inquiry, error) {
	var inq models.Inquiry
	if err := s.db.WithContext(ctx).First(&inq, id).Error; err != nil {
		return nil, err
	}
	return &inq, nil
}

// DeleteInquiry soft-deletes an inquiry.
func (s *Store) DeleteInquiry(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Inquiry{}, id)
	if res.Error != nil {
		return fmt.Errorf("deleting inquiry %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountInquiries returns the number of stored inquiries.
func (s *Store) CountInquiries(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&models.Inquiry{}).Count(&n).Error
	return n, err
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
