package utils

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"whisp/config"
	"whisp/logger"
	"whisp/models"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

// SetupDatabase opens the postgres pool and wraps it in bun. Tables
// and indexes are created on startup so a fresh database works
// without a separate migration step.
func SetupDatabase(cfg *config.Config, log *logger.Logger) (*bun.DB, error) {
	sqldb, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("DB connection error: %w", err)
	}

	if err := sqldb.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	sqldb.SetMaxOpenConns(25)
	sqldb.SetMaxIdleConns(5)

	db := bun.NewDB(sqldb, pgdialect.New())

	log.Info("Database connection established")

	if err := createTables(context.Background(), db); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.Upload.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("error creating uploads directory: %w", err)
	}

	return db, nil
}

func createTables(ctx context.Context, db *bun.DB) error {
	tables := []any{
		(*models.User)(nil),
		(*models.Message)(nil),
	}

	for _, t := range tables {
		if _, err := db.NewCreateTable().Model(t).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("table creation error for %T: %w", t, err)
		}
	}

	// A conversation is an unordered user pair, so the index is
	// order-independent: both directions land on the same key.
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_messages_pair
			ON messages (least(sender_id, receiver_id), greatest(sender_id, receiver_id), created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_created_at ON messages (created_at)`,
	}

	for _, q := range indexes {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("index creation error: %w", err)
		}
	}

	return nil
}

func CloseDatabase(db *bun.DB) error {
	if db != nil {
		return db.Close()
	}
	return nil
}
