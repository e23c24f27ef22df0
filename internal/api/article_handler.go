package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsboard-api/internal/models"
	"github.com/newsboard-api/internal/service"
	"github.com/newsboard-api/internal/validation"
	"github.com/rs/zerolog"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// pathID parses a numeric path parameter, recording a 400 on failure
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := validation.ParseID(c.Param(name))
	if err != nil {
		abortWith(c, err)
		return 0, false
	}
	return id, true
}

// optionalQuery returns nil when key is absent from the query string, and
// the (possibly empty) value otherwise
func optionalQuery(c *gin.Context, key string) *string {
	value, ok := c.GetQuery(key)
	if !ok {
		return nil
	}
	return &value
}

// GetArticles handles GET /api/articles?topic=&sort_by=&order=
func (h *ArticleHandler) GetArticles(c *gin.Context) {
	articles, err := h.services.Article.ListArticles(c.Request.Context(), validation.ArticleListParams{
		Topic:  optionalQuery(c, "topic"),
		SortBy: optionalQuery(c, "sort_by"),
		Order:  optionalQuery(c, "order"),
	})
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"articles": articles})
}

// GetArticleByID handles GET /api/articles/:article_id
func (h *ArticleHandler) GetArticleByID(c *gin.Context) {
	id, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	article, err := h.services.Article.GetArticle(c.Request.Context(), id)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}

// PatchArticle handles PATCH /api/articles/:article_id with {inc_votes}.
// An empty body or one without inc_votes returns the article unchanged.
func (h *ArticleHandler) PatchArticle(c *gin.Context) {
	id, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	var req models.ArticleVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.log.Debug().Err(err).Int("article_id", id).Msg("Rejected vote body")
		abortWith(c, models.NewBadRequestError(models.MsgBadRequest))
		return
	}

	article, err := h.services.Article.UpdateVotes(c.Request.Context(), id, req.IncVotes)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"article": article})
}
