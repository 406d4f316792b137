package helper

//nolint:revive
import (
	"errors"
	"fmt"
	"net"
	"net/url"

	"furk/config"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

func databaseURL(cfg *config.Config) string {
	write := cfg.DB.Postgres.Write

	name := write.Name
	if cfg.DB.Postgres.Prefix != "" {
		name = cfg.DB.Postgres.Prefix + name
	}

	query := url.Values{}
	query.Set("sslmode", write.SSLMode)
	query.Set("x-migrations-table", cfg.DB.Postgres.MigrationTable)

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(write.Username, write.Password),
		Host:     net.JoinHostPort(write.Host, write.Port),
		Path:     name,
		RawQuery: query.Encode(),
	}

	return u.String()
}

func open(cfg *config.Config) (*migrate.Migrate, error) {
	mig, err := migrate.New(migrationSource, databaseURL(cfg))
	if err != nil {
		return nil, fmt.Errorf("error creating migrate instance: %w", err)
	}

	return mig, nil
}

func run(cfg *config.Config, action string, apply func(*migrate.Migrate) error) error {
	mig, err := open(cfg)
	if err != nil {
		return err
	}

	defer mig.Close()

	if err := apply(mig); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migration: %w", action, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().
		Str("action", action).
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Database migration completed")

	return nil
}

// Up applies every pending migration.
func Up(cfg *config.Config) error {
	return run(cfg, "up", func(m *migrate.Migrate) error { return m.Up() })
}

// StepUp applies exactly one pending migration.
func StepUp(cfg *config.Config) error {
	return run(cfg, "step-up", func(m *migrate.Migrate) error { return m.Steps(1) })
}

// Down rolls back the most recent migration.
func Down(cfg *config.Config) error {
	return run(cfg, "down", func(m *migrate.Migrate) error { return m.Steps(-1) })
}

// Drop rolls back every applied migration.
func Drop(cfg *config.Config) error {
	return run(cfg, "drop", func(m *migrate.Migrate) error { return m.Down() })
}
