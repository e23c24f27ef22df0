package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/lib/pq"
	"github.com/newsboard-api/internal/database"
	"github.com/newsboard-api/internal/metrics"
	"github.com/newsboard-api/internal/models"
	"github.com/newsboard-api/internal/validation"
)

const (
	articleSelectWithBody = `
		SELECT articles.article_id, articles.author, articles.title, articles.topic, articles.body,
			articles.created_at, articles.votes, articles.article_img_url,
			COUNT(comments.comment_id)::INT AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id`

	articleSelectSummary = `
		SELECT articles.article_id, articles.author, articles.title, articles.topic,
			articles.created_at, articles.votes, articles.article_img_url,
			COUNT(comments.comment_id)::INT AS comment_count
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id`
)

// articleRepo is the concrete implementation of ArticleRepository
type articleRepo struct {
	db *database.DB
}

// NewArticleRepo creates a new article repository
func NewArticleRepo(db *database.DB) ArticleRepository {
	return &articleRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanArticle(row rowScanner) (*models.Article, error) {
	var article models.Article
	err := row.Scan(
		&article.ArticleID, &article.Author, &article.Title, &article.Topic, &article.Body,
		&article.CreatedAt, &article.Votes, &article.ArticleImgURL, &article.CommentCount,
	)
	if err != nil {
		return nil, err
	}
	return &article, nil
}

// GetByID retrieves an article with its comment count
func (r *articleRepo) GetByID(ctx context.Context, id int) (*models.Article, error) {
	defer metrics.TrackQuery("select", "articles")()

	query := articleSelectWithBody + `
		WHERE articles.article_id = $1
		GROUP BY articles.article_id`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// buildListQuery assembles the listing query. Only the fixed fragments of
// the validated sort enums are spliced into the text; the topic is bound.
func buildListQuery(q validation.ArticleListQuery) (string, []interface{}) {
	var sb strings.Builder
	var args []interface{}

	sb.WriteString(articleSelectSummary)
	if q.Topic != "" {
		args = append(args, q.Topic)
		sb.WriteString("\n\t\tWHERE articles.topic = $1")
	}
	sb.WriteString("\n\t\tGROUP BY articles.article_id")
	sb.WriteString("\n\t\tORDER BY ")
	sb.WriteString(q.SortBy.SQL())
	sb.WriteString(" ")
	sb.WriteString(q.Order.SQL())
	sb.WriteString(", articles.article_id ")
	sb.WriteString(q.Order.SQL())

	return sb.String(), args
}

// List retrieves article summaries filtered and ordered per q
func (r *articleRepo) List(ctx context.Context, q validation.ArticleListQuery) ([]models.ArticleSummary, error) {
	defer metrics.TrackQuery("list", "articles")()

	query, args := buildListQuery(q)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	articles := make([]models.ArticleSummary, 0)
	for rows.Next() {
		var a models.ArticleSummary
		if err := rows.Scan(
			&a.ArticleID, &a.Author, &a.Title, &a.Topic,
			&a.CreatedAt, &a.Votes, &a.ArticleImgURL, &a.CommentCount,
		); err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	return articles, rows.Err()
}

// UpdateVotes adds incVotes to the article's votes in a single statement and
// returns the updated article, or nil if no article has that id.
func (r *articleRepo) UpdateVotes(ctx context.Context, id int, incVotes int) (*models.Article, error) {
	defer metrics.TrackQuery("update", "articles")()

	query := `
		WITH updated AS (
			UPDATE articles SET votes = votes + $1
			WHERE article_id = $2
			RETURNING article_id, author, title, topic, body, created_at, votes, article_img_url
		)
		SELECT updated.article_id, updated.author, updated.title, updated.topic, updated.body,
			updated.created_at, updated.votes, updated.article_img_url,
			(SELECT COUNT(*)::INT FROM comments WHERE comments.article_id = updated.article_id) AS comment_count
		FROM updated`

	article, err := scanArticle(r.db.QueryRowContext(ctx, query, incVotes, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return article, nil
}

// Count returns the total number of articles
func (r *articleRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM articles").Scan(&count)
	return count, err
}

// BatchInsert inserts multiple articles using PostgreSQL COPY. Ids are
// taken from the records; callers must resync the serial sequence.
func (r *articleRepo) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	if len(articles) == 0 {
		return 0, nil
	}
	defer metrics.TrackQuery("copy", "articles")()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("articles",
		"article_id", "title", "topic", "author", "body", "created_at", "votes", "article_img_url",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, a := range articles {
		if _, err := stmt.ExecContext(ctx,
			a.ArticleID, a.Title, a.Topic, a.Author, a.Body, a.CreatedAt, a.Votes, a.ArticleImgURL,
		); err != nil {
			return 0, err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(articles), nil
}
