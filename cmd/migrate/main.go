package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/ballonsurprise/backend/pkg/config"
	"github.com/ballonsurprise/backend/pkg/db"
	"github.com/ballonsurprise/backend/pkg/logger"
	"github.com/ballonsurprise/backend/pkg/migrate"
)

var (
	cmd     = flag.String("cmd", "up", "migration command: up|down|status|version|create|validate")
	dir     = flag.String("dir", migrate.DefaultDir, "goose migrations directory")
	name    = flag.String("name", "", "migration name (for create)")
	version = flag.String("version", "", "target version (YYYYMMDDHHMMSS) for -cmd=version")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()

	// create and validate work on files alone, no config or database
	switch *cmd {
	case "create":
		if *name == "" {
			fail("missing -name for create")
		}
		path, err := migrate.CreateSQLMigration(*dir, *name)
		if err != nil {
			fail("create migration: %v", err)
		}
		fmt.Println("created migration:", path)
		return
	case "validate":
		if err := migrate.ValidateDir(*dir); err != nil {
			fail("migration validation failed: %v", err)
		}
		fmt.Println("migration validation passed")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fail("load config: %v", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "migrate",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env": cfg.App.Env,
		"cmd": *cmd,
		"dir": *dir,
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		fail("connect database: %v", err)
	}
	defer dbClient.Close()

	sqlDB, err := dbClient.DB().DB()
	if err != nil {
		fail("unwrap sql.DB: %v", err)
	}

	switch *cmd {
	case "up", "down", "status":
		logg.Info(ctx, "running goose")
		if err := migrate.Run(ctx, sqlDB, *dir, *cmd); err != nil {
			fail("goose %s: %v", *cmd, err)
		}
	case "version":
		if *version == "" {
			fail("missing -version for version command")
		}
		if err := migrate.MigrateToVersion(ctx, sqlDB, *dir, *version); err != nil {
			fail("goose migrate to %s: %v", *version, err)
		}
	default:
		fail("unknown -cmd value: %s", *cmd)
	}
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
