package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/baharkarakas/ppob-wallet/internal/config"
	"github.com/baharkarakas/ppob-wallet/internal/db"
	"github.com/baharkarakas/ppob-wallet/internal/logger"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all up migrations",
			RunE: func(*cobra.Command, []string) error {
				return withMigrator(func(m *db.Migrator) error { return m.Up() })
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the last migration",
			RunE: func(*cobra.Command, []string) error {
				return withMigrator(func(m *db.Migrator) error { return m.Down() })
			},
		},
	)
	return cmd
}

func withMigrator(fn func(*db.Migrator) error) error {
	url, err := config.LoadDatabaseURL()
	if err != nil {
		return err
	}
	log := logger.New(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	m, err := db.NewMigrator(url)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close() }()

	if err := fn(m); err != nil {
		return err
	}
	logVersion(log, m)
	return nil
}

func logVersion(log *slog.Logger, m *db.Migrator) {
	v, dirty, err := m.Version()
	if err != nil {
		log.Info("migrations applied", "version", "none")
		return
	}
	log.Info("migrations applied", "version", v, "dirty", dirty)
}
