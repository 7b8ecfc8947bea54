package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

var ErrNotConnected = errors.New("database connection is not established")

type SiteDB struct {
	DB  *sql.DB
	Log *zerolog.Logger
}

// NewSiteDB opens the database described by driver and source. The pool
// connects lazily so callers decide whether an unreachable server is fatal.
func NewSiteDB(driver, source string, log *zerolog.Logger) (*SiteDB, error) {
	if source == "" {
		log.Error().Msg("database source is not set")
		return nil, fmt.Errorf("database source is not set")
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		log.Error().Err(err).Msg("Failed to open database connection")
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &SiteDB{
		DB:  db,
		Log: log,
	}, nil
}

// Ping checks we are actually connected
func (s *SiteDB) Ping(ctx context.Context) error {
	if s.DB == nil {
		return ErrNotConnected
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

func (s *SiteDB) Close() error {
	if s.DB == nil {
		return nil
	}
	if err := s.DB.Close(); err != nil {
		return err
	}
	s.Log.Info().Msg("database connection closed")
	s.DB = nil

	return nil
}

// Migrate applies the embedded goose migrations.
func (s *SiteDB) Migrate() error {
	if s.DB == nil {
		return ErrNotConnected
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.Up(s.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	s.Log.Info().Msg("Migrations applied successfully")
	return nil
}
