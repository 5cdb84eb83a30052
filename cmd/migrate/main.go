package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"

	"storefront-be/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

type migrator interface {
	Up() error
	Steps(n int) error
	Version() (uint, bool, error)
}

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()
	log := logger.L()

	mode := flag.String("mode", "up", "migration mode: up, down or steps")
	steps := flag.Int("steps", 1, "number of steps for mode=steps (negative rolls back)")
	dir := flag.String("dir", "./migrations", "migrations directory")
	flag.Parse()

	dbURL := os.Getenv("DB_URL")
	if dbURL == "" {
		log.Fatal("DB_URL not set in environment")
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatal("failed to connect db", zap.Error(err))
	}
	defer db.Close()

	m, err := newMigrator(db, *dir)
	if err != nil {
		log.Fatal("failed to init migrations", zap.Error(err))
	}

	if err := run(m, *mode, *steps); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}

func newMigrator(db *sql.DB, dir string) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("could not create migrate instance: %w", err)
	}
	return m, nil
}

func run(m migrator, mode string, steps int) error {
	log := logger.L().With(zap.String("mode", mode))

	var err error
	switch mode {
	case "up":
		err = m.Up()
	case "down":
		// Down rolls back only the latest migration.
		err = m.Steps(-1)
	case "steps":
		if steps == 0 {
			return errors.New("steps must not be zero")
		}
		err = m.Steps(steps)
	default:
		return fmt.Errorf("unknown mode: %s (use 'up', 'down' or 'steps')", mode)
	}

	if errors.Is(err, migrate.ErrNoChange) {
		log.Info("no migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", verr)
	}
	log.Info("migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}
