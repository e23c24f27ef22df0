// Package validation turns raw request input into typed, safe values.
//
// Sort columns and directions are closed enumerations; only their fixed SQL
// fragments ever reach query text, never the caller's string.
package validation

import (
	"strconv"
	"strings"

	"github.com/newsboard-api/internal/models"
)

// SortColumn is an allow-listed article attribute usable in ORDER BY
type SortColumn int

const (
	SortByCreatedAt SortColumn = iota
	SortByAuthor
	SortByTitle
	SortByArticleID
	SortByTopic
	SortByVotes
	SortByArticleImgURL
	SortByCommentCount
)

var sortColumnNames = map[string]SortColumn{
	"created_at":      SortByCreatedAt,
	"author":          SortByAuthor,
	"title":           SortByTitle,
	"article_id":      SortByArticleID,
	"topic":           SortByTopic,
	"votes":           SortByVotes,
	"article_img_url": SortByArticleImgURL,
	"comment_count":   SortByCommentCount,
}

var sortColumnSQL = map[SortColumn]string{
	SortByCreatedAt:     "articles.created_at",
	SortByAuthor:        "articles.author",
	SortByTitle:         "articles.title",
	SortByArticleID:     "articles.article_id",
	SortByTopic:         "articles.topic",
	SortByVotes:         "articles.votes",
	SortByArticleImgURL: "articles.article_img_url",
	SortByCommentCount:  "comment_count",
}

// SQL returns the fixed ORDER BY expression for the column
func (s SortColumn) SQL() string {
	if frag, ok := sortColumnSQL[s]; ok {
		return frag
	}
	return sortColumnSQL[SortByCreatedAt]
}

func (s SortColumn) String() string {
	for name, col := range sortColumnNames {
		if col == s {
			return name
		}
	}
	return "created_at"
}

// SortOrder is the ORDER BY direction
type SortOrder int

const (
	OrderDesc SortOrder = iota
	OrderAsc
)

// SQL returns ASC or DESC
func (o SortOrder) SQL() string {
	if o == OrderAsc {
		return "ASC"
	}
	return "DESC"
}

func (o SortOrder) String() string {
	return strings.ToLower(o.SQL())
}

// ArticleListParams is the raw GET /api/articles query string. A nil field
// was not supplied; a supplied empty value is validated like any other.
type ArticleListParams struct {
	Topic  *string
	SortBy *string
	Order  *string
}

// ArticleListQuery is a validated GET /api/articles query
type ArticleListQuery struct {
	// Topic is empty when no filter applies
	Topic  string
	SortBy SortColumn
	Order  SortOrder
}

// ParseSortColumn maps a sort_by value onto the allow-list. Matching is
// case-insensitive.
func ParseSortColumn(raw string) (SortColumn, bool) {
	col, ok := sortColumnNames[strings.ToLower(raw)]
	return col, ok
}

// ParseSortOrder accepts asc/desc in any case
func ParseSortOrder(raw string) (SortOrder, bool) {
	switch strings.ToUpper(raw) {
	case "DESC":
		return OrderDesc, true
	case "ASC":
		return OrderAsc, true
	}
	return OrderDesc, false
}

// ParseSort validates sort_by and order together. Only an omitted parameter
// takes its default (created_at, desc).
func ParseSort(sortBy, order *string) (SortColumn, SortOrder, error) {
	col, dir := SortByCreatedAt, OrderDesc

	if sortBy != nil {
		var ok bool
		if col, ok = ParseSortColumn(*sortBy); !ok {
			return 0, 0, models.NewInvalidQueriesError()
		}
	}
	if order != nil {
		var ok bool
		if dir, ok = ParseSortOrder(*order); !ok {
			return 0, 0, models.NewInvalidQueriesError()
		}
	}
	return col, dir, nil
}

// ParseID parses a path identifier. Anything that is not a base-10 integer
// fitting the store's INT column is a client error.
func ParseID(raw string) (int, error) {
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, models.NewBadRequestError(models.MsgBadRequest)
	}
	return int(id), nil
}

// ValidateNewComment requires a non-blank username and body
func ValidateNewComment(c *models.NewComment) error {
	if c == nil || strings.TrimSpace(c.Username) == "" || strings.TrimSpace(c.Body) == "" {
		return models.NewBadRequestError(models.MsgBadRequest)
	}
	return nil
}
