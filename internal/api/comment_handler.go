package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsboard-api/internal/models"
	"github.com/newsboard-api/internal/service"
	"github.com/rs/zerolog"
)

// CommentHandler handles comment endpoints
type CommentHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(services *service.Services, log zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		services: services,
		log:      log.With().Str("handler", "comment").Logger(),
	}
}

// GetCommentsByArticleID handles GET /api/articles/:article_id/comments
func (h *CommentHandler) GetCommentsByArticleID(c *gin.Context) {
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	comments, err := h.services.Comment.ListComments(c.Request.Context(), articleID)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// PostComment handles POST /api/articles/:article_id/comments with
// {username, body}. Other fields are ignored.
func (h *CommentHandler) PostComment(c *gin.Context) {
	articleID, ok := pathID(c, "article_id")
	if !ok {
		return
	}

	var req models.NewComment
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Int("article_id", articleID).Msg("Rejected comment body")
		abortWith(c, models.NewBadRequestError(models.MsgBadRequest))
		return
	}

	comment, err := h.services.Comment.CreateComment(c.Request.Context(), articleID, &req)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"comment": comment})
}

// GetCommentByID handles GET /api/comments/:comment_id
func (h *CommentHandler) GetCommentByID(c *gin.Context) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.services.Comment.GetComment(c.Request.Context(), commentID)
	if err != nil {
		abortWith(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comment": comment})
}

// DeleteComment handles DELETE /api/comments/:comment_id
func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.services.Comment.DeleteComment(c.Request.Context(), commentID); err != nil {
		abortWith(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
