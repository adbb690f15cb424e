package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/stockmasterhq/stockmaster-backend/pkg/config"
	"github.com/stockmasterhq/stockmaster-backend/pkg/logger"
	"github.com/stockmasterhq/stockmaster-backend/pkg/migrate"
)

// Usage:
//
//	go run ./cmd/migrate -command up
//	go run ./cmd/migrate -command down
//	go run ./cmd/migrate -command status
//	go run ./cmd/migrate -command version -to 00001
func main() {
	_ = godotenv.Load()

	command := flag.String("command", "up", "goose command: up, down, status, version")
	to := flag.String("to", "", "target version for the version command")
	dir := flag.String("dir", migrate.DefaultDir, "migrations directory")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fail(err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "stockmaster-migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
	})

	sqlDB, err := sql.Open("postgres", cfg.DB.DSN)
	if err != nil {
		fail(fmt.Errorf("open database: %w", err))
	}
	defer func() { _ = sqlDB.Close() }()

	ctx := context.Background()

	if *command == "version" && *to != "" {
		if err := migrate.MigrateToVersion(ctx, sqlDB, *dir, *to); err != nil {
			fail(err)
		}
		logg.Info(ctx, "migrated to requested version")
		return
	}

	if err := migrate.Run(ctx, sqlDB, *dir, *command, flag.Args()...); err != nil {
		fail(err)
	}
	logg.Info(logg.WithField(ctx, "command", *command), "migration command completed")
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
