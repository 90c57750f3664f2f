package db

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect opens the Postgres connection for the durable backend. The
// connection is opened once at process start and held for the process
// lifetime.
func Connect() (*sqlx.DB, error) {
	dbUrl := os.Getenv("DATABASE_URL")
	if dbUrl == "" {
		if os.Getenv("DB_HOST") != "" &&
			os.Getenv("DB_PORT") != "" &&
			os.Getenv("DB_USER") != "" &&
			os.Getenv("DB_PASSWORD") != "" &&
			os.Getenv("DB_NAME") != "" {
			encodedPassword := url.QueryEscape(os.Getenv("DB_PASSWORD"))

			dbUrl = "postgres://" + os.Getenv("DB_USER") + ":" + encodedPassword + "@" + os.Getenv("DB_HOST") + ":" + os.Getenv("DB_PORT") + "/" + os.Getenv("DB_NAME")
		}

		if dbUrl == "" {
			return nil, errors.New("DATABASE_URL or DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, and DB_NAME environment variables must be set")
		}
	}

	conn, err := sqlx.Connect("postgres", dbUrl)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	log.Println("connected to database")

	// A single interactive session drives this; no need for a big pool.
	conn.SetMaxOpenConns(5)
	conn.SetMaxIdleConns(2)

	return conn, nil
}

// MigrationsUp applies the schema idempotently. The default migrations dir can
// be overridden with MIGRATIONS_DIR.
func MigrationsUp(conn *sqlx.DB) error {
	migrationsDir := "migrations"
	if os.Getenv("MIGRATIONS_DIR") != "" {
		migrationsDir = os.Getenv("MIGRATIONS_DIR")
	}

	return migrationsUp(conn, migrationsDir)
}

func MigrationsUpWithDir(conn *sqlx.DB, dir string) error {
	return migrationsUp(conn, dir)
}

func migrationsUp(conn *sqlx.DB, dir string) error {
	if conn == nil {
		return errors.New("db not initialized")
	}

	driver, err := postgres.WithInstance(conn.DB, &postgres.Config{})

	if err != nil {
		return fmt.Errorf("error creating postgres driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://"+dir,
		"postgres", driver)

	if err != nil {
		return fmt.Errorf("error creating migration instance: %v", err)
	}

	err = m.Up()

	if err != nil {
		if err == migrate.ErrNoChange {
			log.Println("migration state is up to date")
			return nil
		}

		return fmt.Errorf("error running migrations: %v", err)
	}

	log.Println("ran migrations successfully")

	return nil
}
