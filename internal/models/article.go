package models

import (
	"time"
)

// Article is a single article together with its derived comment count
type Article struct {
	ArticleID     int       `json:"article_id" db:"article_id"`
	Author        string    `json:"author" db:"author"`
	Title         string    `json:"title" db:"title"`
	Topic         string    `json:"topic" db:"topic"`
	Body          string    `json:"body" db:"body"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"comment_count"`
}

// ArticleSummary is the listing shape of an article; it never carries the body
type ArticleSummary struct {
	ArticleID     int       `json:"article_id" db:"article_id"`
	Author        string    `json:"author" db:"author"`
	Title         string    `json:"title" db:"title"`
	Topic         string    `json:"topic" db:"topic"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	Votes         int       `json:"votes" db:"votes"`
	ArticleImgURL string    `json:"article_img_url" db:"article_img_url"`
	CommentCount  int       `json:"comment_count" db:"comment_count"`
}

// Summary drops the body
func (a *Article) Summary() ArticleSummary {
	return ArticleSummary{
		ArticleID:     a.ArticleID,
		Author:        a.Author,
		Title:         a.Title,
		Topic:         a.Topic,
		CreatedAt:     a.CreatedAt,
		Votes:         a.Votes,
		ArticleImgURL: a.ArticleImgURL,
		CommentCount:  a.CommentCount,
	}
}

// ArticleVoteRequest is the PATCH /api/articles/:article_id body.
// A nil IncVotes means the field was absent.
type ArticleVoteRequest struct {
	IncVotes *int `json:"inc_votes"`
}
