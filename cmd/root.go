package cmd

import (
	"threadfeed/app"
	"threadfeed/db"
	"threadfeed/term"

	"github.com/spf13/cobra"
)

var dbBackend string

// RootCmd runs the interactive session when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "threadfeed",
	Short: "threadfeed: a tiny terminal thread feed",
	Run:   run,
}

func init() {
	RootCmd.Flags().StringVar(&dbBackend, "db", "", "storage backend: memory or postgres (prompts when unset)")
}

// Execute is called by main.main(). It only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		term.OutputErrorAndExit("Error executing root command: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) {
	database := openDatabase()
	if postgresDb, ok := database.(*db.PostgresDatabase); ok {
		defer postgresDb.Close()
	}

	runSession(app.NewApp(database))
}

const (
	backendMemory   = "memory"
	backendPostgres = "postgres"

	backendMemoryLabel   = "In-memory (lost on exit)"
	backendPostgresLabel = "PostgreSQL (durable)"
)

// openDatabase picks the backend once at startup; the choice is immutable for
// the process lifetime.
func openDatabase() db.Database {
	backend := dbBackend
	if backend == "" {
		choice, err := term.SelectFromList("Where should your data live?", []string{backendMemoryLabel, backendPostgresLabel})
		if err != nil {
			term.OutputErrorAndExit("Error selecting backend: %v", err)
		}

		if choice == backendPostgresLabel {
			backend = backendPostgres
		} else {
			backend = backendMemory
		}
	}

	switch backend {
	case backendMemory:
		return db.NewInMemoryDatabase()

	case backendPostgres:
		database, err := db.OpenPostgresDatabase()
		if err != nil {
			term.OutputErrorAndExit("Error initializing database: %v", err)
		}
		return database

	default:
		term.OutputErrorAndExit("Unknown backend %q — use %q or %q", backend, backendMemory, backendPostgres)
		return nil
	}
}
