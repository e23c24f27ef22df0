package repository

import (
	"context"

	"github.com/newsboard-api/internal/database"
	"github.com/newsboard-api/internal/models"
	"github.com/newsboard-api/internal/validation"
)

// TopicRepository defines the interface for topic data operations
type TopicRepository interface {
	List(ctx context.Context) ([]models.Topic, error)
	Exists(ctx context.Context, slug string) (bool, error)
	BatchInsert(ctx context.Context, topics []*models.Topic) (int, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	BatchInsert(ctx context.Context, users []*models.User) (int, error)
}

// ArticleRepository defines the interface for article data operations.
// Missing rows are reported as a nil article and a nil error.
type ArticleRepository interface {
	GetByID(ctx context.Context, id int) (*models.Article, error)
	List(ctx context.Context, q validation.ArticleListQuery) ([]models.ArticleSummary, error)
	UpdateVotes(ctx context.Context, id int, incVotes int) (*models.Article, error)
	Count(ctx context.Context) (int, error)
	BatchInsert(ctx context.Context, articles []*models.Article) (int, error)
}

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	// ListByArticle returns the article's comments newest first. found is
	// false when the article itself does not exist.
	ListByArticle(ctx context.Context, articleID int) (comments []models.Comment, found bool, err error)
	Create(ctx context.Context, articleID int, comment *models.NewComment) (*models.Comment, error)
	GetByID(ctx context.Context, id int) (*models.Comment, error)
	Delete(ctx context.Context, id int) (bool, error)
	Count(ctx context.Context) (int, error)
	BatchInsert(ctx context.Context, comments []*models.Comment) (int, error)
}

// Repositories holds all repository interfaces
type Repositories struct {
	Topic   TopicRepository
	User    UserRepository
	Article ArticleRepository
	Comment CommentRepository
}

// New creates all repositories with the given database connection
func New(db *database.DB) *Repositories {
	return &Repositories{
		Topic:   NewTopicRepo(db),
		User:    NewUserRepo(db),
		Article: NewArticleRepo(db),
		Comment: NewCommentRepo(db),
	}
}
