package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	libconfig "billiardsone/backend/libs/config"
	libdb "billiardsone/backend/libs/db"
	"billiardsone/backend/libs/logging"
	"billiardsone/backend/migrations"
)

type migrateConfig struct {
	Database struct {
		DSN string `yaml:"dsn" env:"BILLIARDSCTL_POSTGRES_DSN"`
	} `yaml:"database"`
}

func newMigrateCmd() *cobra.Command {
	var dsn string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &migrateConfig{}
			if err := libconfig.LoadConfig(cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("dsn") {
				cfg.Database.DSN = dsn
			}
			if strings.TrimSpace(cfg.Database.DSN) == "" {
				return errors.New("migrate: database dsn required (--dsn or BILLIARDSCTL_POSTGRES_DSN)")
			}

			logger, err := logging.NewLogger("billiardsctl")
			if err != nil {
				return err
			}
			defer logger.Sync() // best-effort flush

			db, err := libdb.NewPostgresDB(cfg.Database.DSN)
			if err != nil {
				return err
			}
			defer db.Close()

			all, err := migrations.All()
			if err != nil {
				return err
			}
			applied, err := applyMigrations(cmd.Context(), db, all, logger)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", applied)
			return nil
		},
	}

	cmd.Flags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN")

	return cmd
}

const createMigrationsTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		name        TEXT PRIMARY KEY,
		applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// applyMigrations runs each migration not yet recorded in schema_migrations,
// one transaction per file.
func applyMigrations(ctx context.Context, db *sql.DB, all []migrations.Migration, logger *zap.Logger) (int, error) {
	if _, err := db.ExecContext(ctx, createMigrationsTable); err != nil {
		return 0, fmt.Errorf("create schema_migrations: %w", err)
	}

	applied := 0
	for _, m := range all {
		ran := false
		err := libdb.WithTx(ctx, db, nil, func(tx *sql.Tx) error {
			var exists bool
			if err := tx.QueryRowContext(ctx,
				`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, m.Name,
			).Scan(&exists); err != nil {
				return err
			}
			if exists {
				return nil
			}
			if _, err := tx.ExecContext(ctx, m.SQL); err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO schema_migrations (name) VALUES ($1)`, m.Name,
			); err != nil {
				return err
			}
			ran = true
			return nil
		})
		if err != nil {
			return applied, fmt.Errorf("migration %s: %w", m.Name, err)
		}
		if ran {
			applied++
			logger.Info("migration applied", zap.String("name", m.Name))
		}
	}
	return applied, nil
}
