// Command seed fills the database with generated demo data.
package main

import (
	"context"
	"flag"
	"time"

	"github.com/newsboard-api/internal/config"
	"github.com/newsboard-api/internal/database"
	"github.com/newsboard-api/internal/repository"
	"github.com/newsboard-api/internal/seed"
	"github.com/newsboard-api/pkg/logger"
)

func main() {
	def := seed.DefaultOptions()
	numTopics := flag.Int("topics", def.Topics, "Number of topics to create")
	numUsers := flag.Int("users", def.Users, "Number of users to create")
	numArticles := flag.Int("articles", def.Articles, "Number of articles to create")
	maxComments := flag.Int("max-comments", def.MaxCommentsPerPost, "Maximum comments per article")
	maxDays := flag.Int("max-days", def.MaxDays, "Spread created_at over this many days")
	seedValue := flag.Int64("seed", 0, "Random seed; 0 uses the current time")
	clean := flag.Bool("clean", true, "Truncate all tables before seeding")
	migrateFirst := flag.Bool("migrate", true, "Apply pending migrations before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log := logger.New("info", "json")
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if cfg.Env == "production" {
		log.Fatal().Msg("Refusing to seed a production database")
	}

	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if *migrateFirst {
		if err := db.RunMigrations(cfg.Database.MigrationsPath); err != nil {
			log.Error().Err(err).Msg("Failed to run database migrations")
			return
		}
	}

	factory := seed.NewFactory(seed.Options{
		Topics:             *numTopics,
		Users:              *numUsers,
		Articles:           *numArticles,
		MaxCommentsPerPost: *maxComments,
		MaxDays:            *maxDays,
		Seed:               *seedValue,
	})
	ds := factory.Build()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	seeder := seed.NewSeeder(db, repository.New(db), log)
	if err := seeder.Run(ctx, ds, *clean); err != nil {
		log.Error().Err(err).Msg("Seeding failed")
		return
	}

	log.Info().Msg("Seeding complete")
}
