package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/newsboard-api/internal/mocks"
	"github.com/newsboard-api/internal/models"
	"github.com/newsboard-api/internal/service"
	"github.com/newsboard-api/internal/validation"
	"github.com/rs/zerolog"
)

func newTestServices(t *testing.T) (*service.Services, *mocks.MockStore) {
	t.Helper()
	store := mocks.NewFixtureStore()
	return service.NewServices(store.Repositories(), nil, zerolog.Nop()), store
}

func assertAppError(t *testing.T, err error, status int, msg string) {
	t.Helper()
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("Expected AppError(%d %q), got %v", status, msg, err)
	}
	if appErr.Status != status || appErr.Msg != msg {
		t.Errorf("Expected %d %q, got %d %q", status, msg, appErr.Status, appErr.Msg)
	}
}

func intPtr(i int) *int { return &i }

func str(s string) *string { return &s }

func TestArticleService_GetArticle(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	article, err := svcs.Article.GetArticle(ctx, 1)
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if article.CommentCount != 11 {
		t.Errorf("Expected 11 comments, got %d", article.CommentCount)
	}

	article, err = svcs.Article.GetArticle(ctx, 2)
	if err != nil {
		t.Fatalf("GetArticle failed: %v", err)
	}
	if article.CommentCount != 0 {
		t.Errorf("Expected 0 comments, got %d", article.CommentCount)
	}

	_, err = svcs.Article.GetArticle(ctx, 9999)
	assertAppError(t, err, http.StatusNotFound, models.MsgArticleNotFound)
}

func TestArticleService_ListArticles_ValidationOrder(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()

	// Unknown topic wins over an invalid sort_by
	_, err := svcs.Article.ListArticles(ctx, validation.ArticleListParams{Topic: str("not-a-topic"), SortBy: str("bananas"), Order: str("sideways")})
	assertAppError(t, err, http.StatusNotFound, models.MsgTopicNotFound)
	if store.TopicLookups != 1 {
		t.Errorf("Expected one topic lookup, got %d", store.TopicLookups)
	}

	// Without a topic no lookup happens and sort is rejected
	_, err = svcs.Article.ListArticles(ctx, validation.ArticleListParams{SortBy: str("bananas")})
	assertAppError(t, err, http.StatusBadRequest, models.MsgInvalidQueries)

	_, err = svcs.Article.ListArticles(ctx, validation.ArticleListParams{Topic: str("mitch"), SortBy: str("votes"), Order: str("sideways")})
	assertAppError(t, err, http.StatusBadRequest, models.MsgInvalidQueries)

	if store.TopicLookups != 2 {
		t.Errorf("Expected two topic lookups in total, got %d", store.TopicLookups)
	}
}

func TestArticleService_ListArticles_SuppliedEmptyParams(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	_, err := svcs.Article.ListArticles(ctx, validation.ArticleListParams{Topic: str("")})
	assertAppError(t, err, http.StatusNotFound, models.MsgTopicNotFound)

	_, err = svcs.Article.ListArticles(ctx, validation.ArticleListParams{SortBy: str("")})
	assertAppError(t, err, http.StatusBadRequest, models.MsgInvalidQueries)

	_, err = svcs.Article.ListArticles(ctx, validation.ArticleListParams{Order: str("")})
	assertAppError(t, err, http.StatusBadRequest, models.MsgInvalidQueries)

	// Empty topic is still checked before sort
	_, err = svcs.Article.ListArticles(ctx, validation.ArticleListParams{Topic: str(""), SortBy: str("")})
	assertAppError(t, err, http.StatusNotFound, models.MsgTopicNotFound)
}

func TestArticleService_ListArticles(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	all, err := svcs.Article.ListArticles(ctx, validation.ArticleListParams{})
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(all) != 5 {
		t.Fatalf("Expected 5 articles, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].CreatedAt.Before(all[i].CreatedAt) {
			t.Errorf("Default order must be created_at desc: %v before %v", all[i-1].CreatedAt, all[i].CreatedAt)
		}
	}

	mitch, err := svcs.Article.ListArticles(ctx, validation.ArticleListParams{Topic: str("mitch"), SortBy: str("votes"), Order: str("ASC")})
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if len(mitch) != 4 {
		t.Errorf("Expected 4 mitch articles, got %d", len(mitch))
	}
	for i, a := range mitch {
		if a.Topic != "mitch" {
			t.Errorf("Unexpected topic %q", a.Topic)
		}
		if i > 0 && mitch[i-1].Votes > a.Votes {
			t.Errorf("Expected ascending votes")
		}
	}

	paper, err := svcs.Article.ListArticles(ctx, validation.ArticleListParams{Topic: str("paper")})
	if err != nil {
		t.Fatalf("Known topic without articles should not fail: %v", err)
	}
	if paper == nil || len(paper) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", paper)
	}
}

func TestArticleService_UpdateVotes(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()

	article, err := svcs.Article.UpdateVotes(ctx, 1, intPtr(-10))
	if err != nil {
		t.Fatalf("UpdateVotes failed: %v", err)
	}
	if article.Votes != 90 {
		t.Errorf("Expected 90 votes, got %d", article.Votes)
	}

	// Absent delta: read only, no update statement
	article, err = svcs.Article.UpdateVotes(ctx, 1, nil)
	if err != nil {
		t.Fatalf("UpdateVotes failed: %v", err)
	}
	if article.Votes != 90 {
		t.Errorf("Expected unchanged 90 votes, got %d", article.Votes)
	}
	if store.UpdateVotesCalls != 1 {
		t.Errorf("Expected exactly one update, got %d", store.UpdateVotesCalls)
	}

	// Zero delta is a genuine update
	if _, err := svcs.Article.UpdateVotes(ctx, 1, intPtr(0)); err != nil {
		t.Fatalf("UpdateVotes failed: %v", err)
	}
	if store.UpdateVotesCalls != 2 {
		t.Errorf("Expected zero delta to issue an update, got %d calls", store.UpdateVotesCalls)
	}

	// Votes may go negative
	article, err = svcs.Article.UpdateVotes(ctx, 2, intPtr(-5))
	if err != nil {
		t.Fatalf("UpdateVotes failed: %v", err)
	}
	if article.Votes != -5 {
		t.Errorf("Expected -5 votes, got %d", article.Votes)
	}

	_, err = svcs.Article.UpdateVotes(ctx, 9999, intPtr(1))
	assertAppError(t, err, http.StatusNotFound, models.MsgArticleNotFound)

	_, err = svcs.Article.UpdateVotes(ctx, 9999, nil)
	assertAppError(t, err, http.StatusNotFound, models.MsgArticleNotFound)
}

func TestCommentService_ListComments(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	comments, err := svcs.Comment.ListComments(ctx, 1)
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(comments) != 11 {
		t.Fatalf("Expected 11 comments, got %d", len(comments))
	}
	for i := 1; i < len(comments); i++ {
		if comments[i-1].CreatedAt.Before(comments[i].CreatedAt) {
			t.Error("Comments must be newest first")
		}
	}

	empty, err := svcs.Comment.ListComments(ctx, 2)
	if err != nil {
		t.Fatalf("Article without comments should not fail: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Expected empty non-nil list, got %#v", empty)
	}

	_, err = svcs.Comment.ListComments(ctx, 9999)
	assertAppError(t, err, http.StatusNotFound, models.MsgArticleNotFound)
}

func TestCommentService_CreateComment(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	comment, err := svcs.Comment.CreateComment(ctx, 2, &models.NewComment{Username: "lurker", Body: "first!"})
	if err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}
	if comment.Votes != 0 || comment.ArticleID != 2 || comment.Author != "lurker" || comment.CommentID == 0 {
		t.Errorf("Unexpected comment %+v", comment)
	}

	tests := []struct {
		name      string
		articleID int
		in        *models.NewComment
		status    int
		msg       string
	}{
		{"missing article", 9999, &models.NewComment{Username: "lurker", Body: "hi"}, http.StatusNotFound, models.MsgArticleNotFound},
		{"unknown author", 1, &models.NewComment{Username: "nobody", Body: "hi"}, http.StatusNotFound, models.MsgUserNotFound},
		{"missing body", 1, &models.NewComment{Username: "lurker"}, http.StatusBadRequest, models.MsgBadRequest},
		{"missing username", 1, &models.NewComment{Body: "hi"}, http.StatusBadRequest, models.MsgBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svcs.Comment.CreateComment(ctx, tt.articleID, tt.in)
			assertAppError(t, err, tt.status, tt.msg)
		})
	}
}

func TestCommentService_DeleteComment(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	before := len(store.Comments)

	if err := svcs.Comment.DeleteComment(ctx, 1); err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}
	if len(store.Comments) != before-1 {
		t.Errorf("Expected one comment removed")
	}

	err := svcs.Comment.DeleteComment(ctx, 1)
	assertAppError(t, err, http.StatusNotFound, models.MsgCommentNotFound)

	_, err = svcs.Comment.GetComment(ctx, 1)
	assertAppError(t, err, http.StatusNotFound, models.MsgCommentNotFound)
}

func TestCommentService_GetComment(t *testing.T) {
	svcs, _ := newTestServices(t)

	comment, err := svcs.Comment.GetComment(context.Background(), 12)
	if err != nil {
		t.Fatalf("GetComment failed: %v", err)
	}
	if comment.ArticleID != 3 || comment.Author != "butter_bridge" {
		t.Errorf("Unexpected comment %+v", comment)
	}
}

func TestServices_StoreErrorsPropagate(t *testing.T) {
	svcs, store := newTestServices(t)
	ctx := context.Background()
	storeErr := errors.New("connection refused")
	store.Err = storeErr

	checks := map[string]error{}
	_, checks["topics"] = svcs.Topic.ListTopics(ctx)
	_, checks["users"] = svcs.User.ListUsers(ctx)
	_, checks["article"] = svcs.Article.GetArticle(ctx, 1)
	_, checks["articles"] = svcs.Article.ListArticles(ctx, validation.ArticleListParams{Topic: str("mitch")})
	_, checks["comments"] = svcs.Comment.ListComments(ctx, 1)
	_, checks["comment"] = svcs.Comment.GetComment(ctx, 1)
	_, checks["user"] = svcs.User.GetUser(ctx, "lurker")
	checks["delete"] = svcs.Comment.DeleteComment(ctx, 1)

	for name, err := range checks {
		if !errors.Is(err, storeErr) {
			t.Errorf("%s: expected wrapped store error, got %v", name, err)
		}
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			t.Errorf("%s: store failure must not become a client error", name)
		}
	}
}

func TestTopicAndUserServices(t *testing.T) {
	svcs, _ := newTestServices(t)
	ctx := context.Background()

	topics, err := svcs.Topic.ListTopics(ctx)
	if err != nil {
		t.Fatalf("ListTopics failed: %v", err)
	}
	if len(topics) != 3 {
		t.Errorf("Expected 3 topics, got %d", len(topics))
	}

	users, err := svcs.User.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	for _, u := range users {
		if u.Username == "" || u.Name == "" || u.AvatarURL == "" {
			t.Errorf("User has empty attribute: %+v", u)
		}
	}

	user, err := svcs.User.GetUser(ctx, "rogersop")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if user.Name != "paul" {
		t.Errorf("Expected name paul, got %s", user.Name)
	}

	_, err = svcs.User.GetUser(ctx, "nobody")
	assertAppError(t, err, http.StatusNotFound, models.MsgUserNotFound)
}
