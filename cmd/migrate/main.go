package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"portfolio/config"
	"portfolio/database"
)

// Runs the schema migration against the configured database and prints the
// resulting column set. Safe to run repeatedly: EnsureSchema is
// idempotent.
func main() {
	godotenv.Load()
	config.InitLogging()

	path := os.Getenv("PORTFOLIO_DB")
	if path == "" {
		path = "portfolio.db"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Open(ctx, path)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open database")
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		logrus.WithError(err).Fatal("migration failed")
	}

	columns, err := db.Columns(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("failed to read schema")
	}

	for _, column := range columns {
		fmt.Println("  ", column)
	}
	fmt.Println("\nMigration completed!")
}
