package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/newsboard-api/internal/database"
	"github.com/newsboard-api/internal/models"
	"github.com/newsboard-api/internal/repository"
	"github.com/newsboard-api/internal/validation"
	"github.com/rs/zerolog"
)

// commentService is the concrete implementation of CommentService
type commentService struct {
	comments repository.CommentRepository
	log      zerolog.Logger
}

// newCommentService creates a new CommentService
func newCommentService(comments repository.CommentRepository, log zerolog.Logger) *commentService {
	return &commentService{
		comments: comments,
		log:      log.With().Str("service", "comment").Logger(),
	}
}

// ListComments distinguishes a missing article (404) from an article with
// no comments (empty list).
func (s *commentService) ListComments(ctx context.Context, articleID int) ([]models.Comment, error) {
	comments, found, err := s.comments.ListByArticle(ctx, articleID)
	if err != nil {
		return nil, fmt.Errorf("list comments for article %d: %w", articleID, err)
	}
	if !found {
		return nil, models.NewNotFoundError(models.MsgArticleNotFound)
	}
	return comments, nil
}

// GetComment returns a single comment
func (s *commentService) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get comment %d: %w", id, err)
	}
	if comment == nil {
		return nil, models.NewNotFoundError(models.MsgCommentNotFound)
	}
	return comment, nil
}

// CreateComment inserts in one statement and lets the store's foreign keys
// decide whether the article and author exist.
func (s *commentService) CreateComment(ctx context.Context, articleID int, in *models.NewComment) (*models.Comment, error) {
	if err := validation.ValidateNewComment(in); err != nil {
		return nil, err
	}

	comment, err := s.comments.Create(ctx, articleID, in)
	switch {
	case database.IsForeignKeyViolation(err, database.ConstraintCommentArticle):
		return nil, &models.AppError{Status: http.StatusNotFound, Msg: models.MsgArticleNotFound, Err: err}
	case database.IsForeignKeyViolation(err, database.ConstraintCommentAuthor):
		return nil, &models.AppError{Status: http.StatusNotFound, Msg: models.MsgUserNotFound, Err: err}
	case err != nil:
		return nil, fmt.Errorf("create comment on article %d: %w", articleID, err)
	}

	s.log.Info().
		Int("comment_id", comment.CommentID).
		Int("article_id", articleID).
		Str("author", comment.Author).
		Msg("Comment created")

	return comment, nil
}

// DeleteComment removes one comment; nothing deleted is a 404
func (s *commentService) DeleteComment(ctx context.Context, id int) error {
	deleted, err := s.comments.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete comment %d: %w", id, err)
	}
	if !deleted {
		return models.NewNotFoundError(models.MsgCommentNotFound)
	}

	s.log.Info().Int("comment_id", id).Msg("Comment deleted")
	return nil
}
