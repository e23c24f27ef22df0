package service

import (
	"context"

	"github.com/newsboard-api/internal/models"
	"github.com/newsboard-api/internal/repository"
	"github.com/newsboard-api/internal/validation"
	"github.com/rs/zerolog"
)

// TopicService defines the interface for topic reads
type TopicService interface {
	ListTopics(ctx context.Context) ([]models.Topic, error)
}

// UserService defines the interface for user reads
type UserService interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, username string) (*models.User, error)
}

// ArticleService defines the interface for article reads and vote updates
type ArticleService interface {
	GetArticle(ctx context.Context, id int) (*models.Article, error)
	ListArticles(ctx context.Context, params validation.ArticleListParams) ([]models.ArticleSummary, error)
	// UpdateVotes applies incVotes; a nil incVotes reads the article unchanged.
	UpdateVotes(ctx context.Context, id int, incVotes *int) (*models.Article, error)
}

// CommentService defines the interface for comment operations
type CommentService interface {
	ListComments(ctx context.Context, articleID int) ([]models.Comment, error)
	GetComment(ctx context.Context, id int) (*models.Comment, error)
	CreateComment(ctx context.Context, articleID int, in *models.NewComment) (*models.Comment, error)
	DeleteComment(ctx context.Context, id int) error
}

// HealthChecker reports whether the store is reachable
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Services holds all service interfaces
type Services struct {
	Topic   TopicService
	User    UserService
	Article ArticleService
	Comment CommentService
	Health  HealthChecker
}

// NewServices creates all services
func NewServices(repos *repository.Repositories, health HealthChecker, log zerolog.Logger) *Services {
	return &Services{
		Topic:   newTopicService(repos.Topic, log),
		User:    newUserService(repos.User, log),
		Article: newArticleService(repos.Article, repos.Topic, log),
		Comment: newCommentService(repos.Comment, log),
		Health:  health,
	}
}
