package repository

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/newsboard-api/internal/database"
	"github.com/newsboard-api/internal/metrics"
	"github.com/newsboard-api/internal/models"
)

// commentRepo is the concrete implementation of CommentRepository
type commentRepo struct {
	db *database.DB
}

// NewCommentRepo creates a new comment repository
func NewCommentRepo(db *database.DB) CommentRepository {
	return &commentRepo{db: db}
}

// ListByArticle reads the article and its comments in one round trip. The
// left join yields one row with NULL comment columns for an article without
// comments and no rows at all for a missing article.
func (r *commentRepo) ListByArticle(ctx context.Context, articleID int) ([]models.Comment, bool, error) {
	defer metrics.TrackQuery("list", "comments")()

	query := `
		SELECT articles.article_id, comments.comment_id, comments.author, comments.body,
			comments.votes, comments.created_at
		FROM articles
		LEFT JOIN comments ON comments.article_id = articles.article_id
		WHERE articles.article_id = $1
		ORDER BY comments.created_at DESC, comments.comment_id DESC`

	rows, err := r.db.QueryContext(ctx, query, articleID)
	if err != nil {
		return nil, false, err
	}
	defer rows.Close()

	found := false
	comments := make([]models.Comment, 0)
	for rows.Next() {
		found = true

		var (
			artID     int
			commentID sql.NullInt64
			author    sql.NullString
			body      sql.NullString
			votes     sql.NullInt64
			createdAt sql.NullTime
		)
		if err := rows.Scan(&artID, &commentID, &author, &body, &votes, &createdAt); err != nil {
			return nil, false, err
		}
		if !commentID.Valid {
			continue
		}
		comments = append(comments, models.Comment{
			CommentID: int(commentID.Int64),
			ArticleID: artID,
			Author:    author.String,
			Body:      body.String,
			Votes:     int(votes.Int64),
			CreatedAt: createdAt.Time,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	return comments, found, nil
}

// Create inserts a new comment. A missing article or author surfaces as a
// foreign key violation from the store.
func (r *commentRepo) Create(ctx context.Context, articleID int, comment *models.NewComment) (*models.Comment, error) {
	defer metrics.TrackQuery("insert", "comments")()

	query := `
		INSERT INTO comments (article_id, author, body)
		VALUES ($1, $2, $3)
		RETURNING comment_id, article_id, author, body, votes, created_at`

	var c models.Comment
	err := r.db.QueryRowContext(ctx, query, articleID, comment.Username, comment.Body).Scan(
		&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// GetByID retrieves a comment by ID
func (r *commentRepo) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	defer metrics.TrackQuery("select", "comments")()

	query := `SELECT comment_id, article_id, author, body, votes, created_at FROM comments WHERE comment_id = $1`

	var c models.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&c.CommentID, &c.ArticleID, &c.Author, &c.Body, &c.Votes, &c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete removes a comment and reports whether a row was affected
func (r *commentRepo) Delete(ctx context.Context, id int) (bool, error) {
	defer metrics.TrackQuery("delete", "comments")()

	res, err := r.db.ExecContext(ctx, "DELETE FROM comments WHERE comment_id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Count returns the total number of comments
func (r *commentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM comments").Scan(&count)
	return count, err
}

// BatchInsert inserts multiple comments using PostgreSQL COPY
func (r *commentRepo) BatchInsert(ctx context.Context, comments []*models.Comment) (int, error) {
	if len(comments) == 0 {
		return 0, nil
	}
	defer metrics.TrackQuery("copy", "comments")()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("comments",
		"body", "article_id", "author", "votes", "created_at",
	))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, c := range comments {
		if _, err := stmt.ExecContext(ctx, c.Body, c.ArticleID, c.Author, c.Votes, c.CreatedAt); err != nil {
			return 0, err
		}
	}

	if _, err := stmt.ExecContext(ctx); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(comments), nil
}
