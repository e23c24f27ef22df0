package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/newsboard-api/internal/repository"
	"github.com/rs/zerolog"
)

// Execer is the slice of the connection pool the seeder needs for
// maintenance statements. *database.DB satisfies it.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

const (
	truncateQuery = `TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE`

	// Articles are copied in with explicit ids, so the serial has to be
	// moved past them before the API inserts anything.
	resyncArticleSeqQuery = `SELECT setval(pg_get_serial_sequence('articles', 'article_id'), COALESCE((SELECT MAX(article_id) FROM articles), 0) + 1, false)`
)

// Seeder loads a Dataset through the repositories' bulk insert paths
type Seeder struct {
	db    Execer
	repos *repository.Repositories
	log   zerolog.Logger
}

// NewSeeder creates a Seeder
func NewSeeder(db Execer, repos *repository.Repositories, log zerolog.Logger) *Seeder {
	return &Seeder{
		db:    db,
		repos: repos,
		log:   log.With().Str("component", "seeder").Logger(),
	}
}

// Clear removes every row and resets the serial sequences
func (s *Seeder) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, truncateQuery); err != nil {
		return fmt.Errorf("truncate tables: %w", err)
	}
	s.log.Info().Msg("Cleared all tables")
	return nil
}

// Load inserts ds in foreign key order
func (s *Seeder) Load(ctx context.Context, ds *Dataset) error {
	topics, err := s.repos.Topic.BatchInsert(ctx, ds.Topics)
	if err != nil {
		return fmt.Errorf("insert topics: %w", err)
	}

	users, err := s.repos.User.BatchInsert(ctx, ds.Users)
	if err != nil {
		return fmt.Errorf("insert users: %w", err)
	}

	if _, err := s.repos.Article.BatchInsert(ctx, ds.Articles); err != nil {
		return fmt.Errorf("insert articles: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, resyncArticleSeqQuery); err != nil {
		return fmt.Errorf("resync article sequence: %w", err)
	}

	if _, err := s.repos.Comment.BatchInsert(ctx, ds.Comments); err != nil {
		return fmt.Errorf("insert comments: %w", err)
	}

	articles, err := s.repos.Article.Count(ctx)
	if err != nil {
		return fmt.Errorf("count articles: %w", err)
	}
	comments, err := s.repos.Comment.Count(ctx)
	if err != nil {
		return fmt.Errorf("count comments: %w", err)
	}

	s.log.Info().
		Int("topics", topics).
		Int("users", users).
		Int("articles", articles).
		Int("comments", comments).
		Msg("Seed data loaded")

	return nil
}

// Run optionally clears the store, then loads ds
func (s *Seeder) Run(ctx context.Context, ds *Dataset, clean bool) error {
	if clean {
		if err := s.Clear(ctx); err != nil {
			return err
		}
	}
	return s.Load(ctx, ds)
}
