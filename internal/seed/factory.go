// Package seed builds demo data for the news database. It is meant for
// development and test environments only.
package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/newsboard-api/internal/models"
)

const defaultImgURL = "https://images.pexels.com/photos/158651/news-newsletter-newspaper-information-158651.jpeg?w=700&h=700"

// Options controls the size and shape of a generated dataset
type Options struct {
	Topics             int
	Users              int
	Articles           int
	MaxCommentsPerPost int
	// MaxDays bounds how far back created_at timestamps are spread
	MaxDays int
	// Seed makes generation reproducible; zero picks a time-based seed
	Seed int64
}

// DefaultOptions returns a small dataset suitable for local development
func DefaultOptions() Options {
	return Options{
		Topics:             5,
		Users:              20,
		Articles:           60,
		MaxCommentsPerPost: 12,
		MaxDays:            365,
	}
}

// Dataset is a generated, referentially consistent set of rows
type Dataset struct {
	Topics   []*models.Topic
	Users    []*models.User
	Articles []*models.Article
	Comments []*models.Comment
}

// Factory builds domain entities with gofakeit
type Factory struct {
	faker *gofakeit.Faker
	opts  Options
	now   time.Time
}

// NewFactory creates a Factory. Zero-valued size options fall back to the defaults.
func NewFactory(opts Options) *Factory {
	def := DefaultOptions()
	if opts.Topics <= 0 {
		opts.Topics = def.Topics
	}
	if opts.Users <= 0 {
		opts.Users = def.Users
	}
	if opts.Articles < 0 {
		opts.Articles = 0
	}
	if opts.MaxCommentsPerPost < 0 {
		opts.MaxCommentsPerPost = 0
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = def.MaxDays
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Factory{
		faker: gofakeit.New(opts.Seed),
		opts:  opts,
		now:   time.Now().UTC().Truncate(time.Second),
	}
}

// Build generates a full dataset. Articles get explicit ids starting at 1.
func (f *Factory) Build() *Dataset {
	ds := &Dataset{}

	seen := make(map[string]bool)
	for len(ds.Topics) < f.opts.Topics {
		ds.Topics = append(ds.Topics, f.BuildTopic(seen))
	}

	seen = make(map[string]bool)
	for len(ds.Users) < f.opts.Users {
		ds.Users = append(ds.Users, f.BuildUser(seen))
	}

	for i := 0; i < f.opts.Articles; i++ {
		topic := ds.Topics[f.faker.Number(0, len(ds.Topics)-1)]
		author := ds.Users[f.faker.Number(0, len(ds.Users)-1)]
		article := f.BuildArticle(i+1, topic.Slug, author.Username)
		ds.Articles = append(ds.Articles, article)

		n := f.faker.Number(0, f.opts.MaxCommentsPerPost)
		for j := 0; j < n; j++ {
			commenter := ds.Users[f.faker.Number(0, len(ds.Users)-1)]
			ds.Comments = append(ds.Comments, f.BuildComment(article, commenter.Username))
		}
	}

	return ds
}

// BuildTopic returns a topic whose slug is not yet in seen
func (f *Factory) BuildTopic(seen map[string]bool) *models.Topic {
	slug := strings.ToLower(f.faker.HipsterWord())
	for seen[slug] {
		slug = fmt.Sprintf("%s-%d", strings.ToLower(f.faker.HipsterWord()), f.faker.Number(1, 999))
	}
	seen[slug] = true

	return &models.Topic{
		Slug:        slug,
		Description: f.faker.HipsterSentence(6),
	}
}

// BuildUser returns a user whose username is not yet in seen
func (f *Factory) BuildUser(seen map[string]bool) *models.User {
	username := strings.ToLower(f.faker.Username())
	for seen[username] {
		username = fmt.Sprintf("%s%d", strings.ToLower(f.faker.Username()), f.faker.Number(100, 999))
	}
	seen[username] = true

	return &models.User{
		Username:  username,
		Name:      f.faker.Name(),
		AvatarURL: fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID()),
	}
}

// BuildArticle returns an article with the given id, topic and author
func (f *Factory) BuildArticle(id int, topic, author string) *models.Article {
	imgURL := defaultImgURL
	if f.faker.Bool() {
		imgURL = fmt.Sprintf("https://picsum.photos/seed/%s/700/700", f.faker.UUID())
	}

	return &models.Article{
		ArticleID:     id,
		Title:         strings.TrimSuffix(f.faker.Sentence(f.faker.Number(3, 9)), "."),
		Topic:         topic,
		Author:        author,
		Body:          f.faker.Paragraph(f.faker.Number(1, 4), 4, 12, "\n\n"),
		CreatedAt:     f.pastTime(f.now),
		Votes:         f.faker.Number(-10, 150),
		ArticleImgURL: imgURL,
	}
}

// BuildComment returns a comment posted after its article was created
func (f *Factory) BuildComment(article *models.Article, author string) *models.Comment {
	created := article.CreatedAt.Add(time.Duration(f.faker.Number(1, 72*60)) * time.Minute)
	if created.After(f.now) {
		created = f.now
	}

	return &models.Comment{
		ArticleID: article.ArticleID,
		Author:    author,
		Body:      f.faker.Sentence(f.faker.Number(4, 20)),
		Votes:     f.faker.Number(-5, 30),
		CreatedAt: created,
	}
}

func (f *Factory) pastTime(now time.Time) time.Time {
	back := time.Duration(f.faker.Number(0, f.opts.MaxDays*24*60)) * time.Minute
	return now.Add(-back)
}
