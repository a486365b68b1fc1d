package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/drzo/assistant-revival/internal/config"
)

// ErrUnknownDriver is returned for a database driver other than sqlite or postgres.
var ErrUnknownDriver = errors.New("unknown database driver")

// Store provides access to assistant prompts.
type Store struct {
	db     *gorm.DB
	logger *slog.Logger
}

// New wraps an open GORM handle. The schema must already be migrated.
func New(db *gorm.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Open connects to the configured database, retrying until it answers a
// ping, and migrates the assistant_prompts table.
func Open(ctx context.Context, cfg config.DatabaseCfg, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	attempts := cfg.ConnectAttempts
	if attempts < 1 {
		attempts = 1
	}

	var db *gorm.DB
	err = retry.Do(
		func() error {
			conn, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
			if err != nil {
				return err
			}
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := sqlDB.PingContext(ctx); err != nil {
				_ = sqlDB.Close()
				return err
			}
			db = conn
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(attempts)),
		retry.Delay(cfg.ConnectDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			logger.Warn("database not ready, retrying", "driver", cfg.Driver, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	if err := db.WithContext(ctx).AutoMigrate(&AssistantPrompt{}); err != nil {
		return nil, fmt.Errorf("failed to migrate assistant_prompts: %w", err)
	}
	for _, stmt := range columnDefaults(cfg.Driver) {
		if err := db.WithContext(ctx).Exec(stmt).Error; err != nil {
			return nil, fmt.Errorf("failed to migrate assistant_prompts: %w", err)
		}
	}

	logger.Debug("opened prompt store", "driver", cfg.Driver)
	return New(db, logger), nil
}

func dialectorFor(cfg config.DatabaseCfg) (gorm.Dialector, error) {
	dsn := cfg.ConnectionString()
	switch cfg.Driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}

// columnDefaults returns the statements that give assistant_prompts
// database-side defaults, so rows inserted by the generated SQL script
// (which names no id) get one too. SQLite accepts a NULL text primary key.
func columnDefaults(driver string) []string {
	if driver != "postgres" {
		return nil
	}
	return []string{
		"ALTER TABLE assistant_prompts ALTER COLUMN id SET DEFAULT gen_random_uuid()::text",
	}
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ListPrompts returns all prompts in creation order.
func (s *Store) ListPrompts(ctx context.Context) ([]AssistantPrompt, error) {
	var prompts []AssistantPrompt
	if err := s.db.WithContext(ctx).Order("created_at asc").Find(&prompts).Error; err != nil {
		return nil, fmt.Errorf("failed to list prompts: %w", err)
	}
	return prompts, nil
}

// GetDefaultPrompt returns the default prompt, or nil if none is marked.
func (s *Store) GetDefaultPrompt(ctx context.Context) (*AssistantPrompt, error) {
	var p AssistantPrompt
	err := s.db.WithContext(ctx).Where("is_default = ?", true).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default prompt: %w", err)
	}
	return &p, nil
}

// CreatePrompt inserts a prompt. A new default clears the flag on every
// other prompt in the same transaction, so at most one default exists.
func (s *Store) CreatePrompt(ctx context.Context, name, instructions string, isDefault bool) (*AssistantPrompt, error) {
	now := time.Now()
	p := &AssistantPrompt{
		Name:         name,
		Instructions: instructions,
		IsDefault:    isDefault,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isDefault {
			if err := tx.Model(&AssistantPrompt{}).
				Where("is_default = ?", true).
				Updates(map[string]any{"is_default": false, "updated_at": now}).Error; err != nil {
				return err
			}
		}
		return tx.Create(p).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create prompt %q: %w", name, err)
	}

	s.logger.Debug("created prompt", "id", p.ID, "name", name, "default", isDefault)
	return p, nil
}
