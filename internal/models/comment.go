package models

import (
	"time"
)

// Comment represents a comment on an article
type Comment struct {
	CommentID int       `json:"comment_id" db:"comment_id"`
	ArticleID int       `json:"article_id" db:"article_id"`
	Author    string    `json:"author" db:"author"`
	Body      string    `json:"body" db:"body"`
	Votes     int       `json:"votes" db:"votes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewComment is the POST /api/articles/:article_id/comments body.
// Unknown fields are dropped by the decoder.
type NewComment struct {
	Username string `json:"username" binding:"required"`
	Body     string `json:"body" binding:"required"`
}
