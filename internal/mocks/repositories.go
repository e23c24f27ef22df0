package mocks

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/newsboard-api/internal/database"
	"github.com/newsboard-api/internal/models"
	"github.com/newsboard-api/internal/repository"
	"github.com/newsboard-api/internal/validation"
)

// MockStore is an in-memory stand-in for the four tables. The repository
// views it hands out share its state, so comment counts and foreign keys
// behave like the real schema.
type MockStore struct {
	mu sync.Mutex

	Topics   map[string]*models.Topic
	Users    map[string]*models.User
	Articles map[int]*models.Article
	Comments map[int]*models.Comment

	// Err, when set, is returned by every repository call
	Err error

	TopicLookups     int
	UpdateVotesCalls int

	nextArticleID int
	nextCommentID int
}

// NewMockStore creates an empty store
func NewMockStore() *MockStore {
	return &MockStore{
		Topics:        make(map[string]*models.Topic),
		Users:         make(map[string]*models.User),
		Articles:      make(map[int]*models.Article),
		Comments:      make(map[int]*models.Comment),
		nextArticleID: 1,
		nextCommentID: 1,
	}
}

// Repositories returns repository views over the store
func (s *MockStore) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Topic:   &MockTopicRepository{s: s},
		User:    &MockUserRepository{s: s},
		Article: &MockArticleRepository{s: s},
		Comment: &MockCommentRepository{s: s},
	}
}

// AddTopic inserts a topic
func (s *MockStore) AddTopic(slug, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Topics[slug] = &models.Topic{Slug: slug, Description: description}
}

// AddUser inserts a user
func (s *MockStore) AddUser(username, name, avatarURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Users[username] = &models.User{Username: username, Name: name, AvatarURL: avatarURL}
}

// AddArticle inserts an article, assigning the next id when ArticleID is zero
func (s *MockStore) AddArticle(a models.Article) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a.ArticleID == 0 {
		a.ArticleID = s.nextArticleID
	}
	if a.ArticleID >= s.nextArticleID {
		s.nextArticleID = a.ArticleID + 1
	}
	a.CommentCount = 0
	s.Articles[a.ArticleID] = &a
	return a.ArticleID
}

// AddComment inserts a comment, assigning the next id
func (s *MockStore) AddComment(c models.Comment) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.CommentID = s.nextCommentID
	s.nextCommentID++
	s.Comments[c.CommentID] = &c
	return c.CommentID
}

func (s *MockStore) commentCount(articleID int) int {
	n := 0
	for _, c := range s.Comments {
		if c.ArticleID == articleID {
			n++
		}
	}
	return n
}

func (s *MockStore) article(id int) *models.Article {
	a, ok := s.Articles[id]
	if !ok {
		return nil
	}
	out := *a
	out.CommentCount = s.commentCount(id)
	return &out
}

// MockTopicRepository is a mock implementation of TopicRepository
type MockTopicRepository struct {
	s *MockStore
}

func (m *MockTopicRepository) List(ctx context.Context) ([]models.Topic, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	topics := make([]models.Topic, 0, len(m.s.Topics))
	for _, t := range m.s.Topics {
		topics = append(topics, *t)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Slug < topics[j].Slug })
	return topics, nil
}

func (m *MockTopicRepository) Exists(ctx context.Context, slug string) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.TopicLookups++
	if m.s.Err != nil {
		return false, m.s.Err
	}
	_, ok := m.s.Topics[slug]
	return ok, nil
}

func (m *MockTopicRepository) BatchInsert(ctx context.Context, topics []*models.Topic) (int, error) {
	for _, t := range topics {
		m.s.AddTopic(t.Slug, t.Description)
	}
	return len(topics), nil
}

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	s *MockStore
}

func (m *MockUserRepository) List(ctx context.Context) ([]models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	users := make([]models.User, 0, len(m.s.Users))
	for _, u := range m.s.Users {
		users = append(users, *u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	u, ok := m.s.Users[username]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (m *MockUserRepository) BatchInsert(ctx context.Context, users []*models.User) (int, error) {
	for _, u := range users {
		m.s.AddUser(u.Username, u.Name, u.AvatarURL)
	}
	return len(users), nil
}

// MockArticleRepository is a mock implementation of ArticleRepository
type MockArticleRepository struct {
	s *MockStore
}

func (m *MockArticleRepository) GetByID(ctx context.Context, id int) (*models.Article, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	return m.s.article(id), nil
}

func (m *MockArticleRepository) List(ctx context.Context, q validation.ArticleListQuery) ([]models.ArticleSummary, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}

	articles := make([]models.ArticleSummary, 0, len(m.s.Articles))
	for id := range m.s.Articles {
		a := m.s.article(id)
		if q.Topic != "" && a.Topic != q.Topic {
			continue
		}
		articles = append(articles, a.Summary())
	}

	sort.Slice(articles, func(i, j int) bool {
		c := compareSummaries(articles[i], articles[j], q.SortBy)
		if c == 0 {
			c = articles[i].ArticleID - articles[j].ArticleID
		}
		if q.Order == validation.OrderDesc {
			c = -c
		}
		return c < 0
	})
	return articles, nil
}

func compareSummaries(a, b models.ArticleSummary, col validation.SortColumn) int {
	switch col {
	case validation.SortByAuthor:
		return strings.Compare(a.Author, b.Author)
	case validation.SortByTitle:
		return strings.Compare(a.Title, b.Title)
	case validation.SortByArticleID:
		return a.ArticleID - b.ArticleID
	case validation.SortByTopic:
		return strings.Compare(a.Topic, b.Topic)
	case validation.SortByVotes:
		return a.Votes - b.Votes
	case validation.SortByArticleImgURL:
		return strings.Compare(a.ArticleImgURL, b.ArticleImgURL)
	case validation.SortByCommentCount:
		return a.CommentCount - b.CommentCount
	default:
		return a.CreatedAt.Compare(b.CreatedAt)
	}
}

func (m *MockArticleRepository) UpdateVotes(ctx context.Context, id int, incVotes int) (*models.Article, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.UpdateVotesCalls++
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	a, ok := m.s.Articles[id]
	if !ok {
		return nil, nil
	}
	a.Votes += incVotes
	return m.s.article(id), nil
}

func (m *MockArticleRepository) Count(ctx context.Context) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return len(m.s.Articles), m.s.Err
}

func (m *MockArticleRepository) BatchInsert(ctx context.Context, articles []*models.Article) (int, error) {
	for _, a := range articles {
		m.s.AddArticle(*a)
	}
	return len(articles), nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	s *MockStore
}

func (m *MockCommentRepository) ListByArticle(ctx context.Context, articleID int) ([]models.Comment, bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return nil, false, m.s.Err
	}
	if _, ok := m.s.Articles[articleID]; !ok {
		return []models.Comment{}, false, nil
	}

	comments := make([]models.Comment, 0)
	for _, c := range m.s.Comments {
		if c.ArticleID == articleID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].CommentID > comments[j].CommentID
	})
	return comments, true, nil
}

// Create mirrors the schema's foreign keys by returning the same driver
// errors PostgreSQL would.
func (m *MockCommentRepository) Create(ctx context.Context, articleID int, in *models.NewComment) (*models.Comment, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	if _, ok := m.s.Articles[articleID]; !ok {
		return nil, &pq.Error{Code: database.CodeForeignKeyViolation, Constraint: database.ConstraintCommentArticle}
	}
	if _, ok := m.s.Users[in.Username]; !ok {
		return nil, &pq.Error{Code: database.CodeForeignKeyViolation, Constraint: database.ConstraintCommentAuthor}
	}

	c := &models.Comment{
		CommentID: m.s.nextCommentID,
		ArticleID: articleID,
		Author:    in.Username,
		Body:      in.Body,
		Votes:     0,
		CreatedAt: time.Now(),
	}
	m.s.nextCommentID++
	m.s.Comments[c.CommentID] = c

	out := *c
	return &out, nil
}

func (m *MockCommentRepository) GetByID(ctx context.Context, id int) (*models.Comment, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return nil, m.s.Err
	}
	c, ok := m.s.Comments[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int) (bool, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if m.s.Err != nil {
		return false, m.s.Err
	}
	if _, ok := m.s.Comments[id]; !ok {
		return false, nil
	}
	delete(m.s.Comments, id)
	return true, nil
}

func (m *MockCommentRepository) Count(ctx context.Context) (int, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	return len(m.s.Comments), m.s.Err
}

func (m *MockCommentRepository) BatchInsert(ctx context.Context, comments []*models.Comment) (int, error) {
	for _, c := range comments {
		m.s.AddComment(*c)
	}
	return len(comments), nil
}
