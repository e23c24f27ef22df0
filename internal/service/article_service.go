package service

import (
	"context"
	"fmt"

	"github.com/newsboard-api/internal/models"
	"github.com/newsboard-api/internal/repository"
	"github.com/newsboard-api/internal/validation"
	"github.com/rs/zerolog"
)

// articleService is the concrete implementation of ArticleService
type articleService struct {
	articles repository.ArticleRepository
	topics   repository.TopicRepository
	log      zerolog.Logger
}

// newArticleService creates a new ArticleService
func newArticleService(articles repository.ArticleRepository, topics repository.TopicRepository, log zerolog.Logger) *articleService {
	return &articleService{
		articles: articles,
		topics:   topics,
		log:      log.With().Str("service", "article").Logger(),
	}
}

// GetArticle returns one article with its comment count
func (s *articleService) GetArticle(ctx context.Context, id int) (*models.Article, error) {
	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article %d: %w", id, err)
	}
	if article == nil {
		return nil, models.NewNotFoundError(models.MsgArticleNotFound)
	}
	return article, nil
}

// ListArticles validates in a fixed order: a supplied topic that matches no
// slug is reported before any sort_by/order problem. A supplied empty topic
// matches no slug.
func (s *articleService) ListArticles(ctx context.Context, params validation.ArticleListParams) ([]models.ArticleSummary, error) {
	var topic string
	if params.Topic != nil {
		topic = *params.Topic
		exists := false
		if topic != "" {
			var err error
			if exists, err = s.topics.Exists(ctx, topic); err != nil {
				return nil, fmt.Errorf("check topic %q: %w", topic, err)
			}
		}
		if !exists {
			return nil, models.NewNotFoundError(models.MsgTopicNotFound)
		}
	}

	col, dir, err := validation.ParseSort(params.SortBy, params.Order)
	if err != nil {
		s.log.Debug().
			Interface("sort_by", params.SortBy).
			Interface("order", params.Order).
			Msg("Rejected article list query")
		return nil, err
	}

	articles, err := s.articles.List(ctx, validation.ArticleListQuery{
		Topic:  topic,
		SortBy: col,
		Order:  dir,
	})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	return articles, nil
}

// UpdateVotes adds incVotes to the article's votes. Without a delta no
// update statement is issued.
func (s *articleService) UpdateVotes(ctx context.Context, id int, incVotes *int) (*models.Article, error) {
	if incVotes == nil {
		return s.GetArticle(ctx, id)
	}

	article, err := s.articles.UpdateVotes(ctx, id, *incVotes)
	if err != nil {
		return nil, fmt.Errorf("update votes for article %d: %w", id, err)
	}
	if article == nil {
		return nil, models.NewNotFoundError(models.MsgArticleNotFound)
	}

	s.log.Debug().
		Int("article_id", id).
		Int("inc_votes", *incVotes).
		Int("votes", article.Votes).
		Msg("Article votes updated")

	return article, nil
}
