// Command migrate applies or rolls back the schema migrations.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/newsboard-api/internal/config"
	"github.com/newsboard-api/internal/database"
	"github.com/newsboard-api/pkg/logger"
	"github.com/rs/zerolog"
)

var errUsage = errors.New("usage: migrate [-path dir] <up|down|goto|version> [version]")

func main() {
	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, log, os.Args[1:]); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}

func run(cfg *config.Config, log zerolog.Logger, args []string) error {
	fs := flag.NewFlagSet("migrate", flag.ContinueOnError)
	path := fs.String("path", cfg.Database.MigrationsPath, "Directory containing migration files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return errUsage
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	switch strings.ToLower(fs.Arg(0)) {
	case "up":
		return db.RunMigrations(*path)
	case "down":
		return db.MigrateDown(*path)
	case "goto":
		if fs.NArg() < 2 {
			return errUsage
		}
		version, err := strconv.ParseUint(fs.Arg(1), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid version %q: %w", fs.Arg(1), err)
		}
		return db.MigrateToVersion(*path, uint(version))
	case "version":
		version, dirty, err := db.MigrationVersion(*path)
		if err != nil {
			return err
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current schema version")
		return nil
	default:
		return errUsage
	}
}
