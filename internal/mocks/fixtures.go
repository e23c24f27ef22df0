package mocks

import (
	"time"

	"github.com/newsboard-api/internal/models"
)

const fixtureImg = "https://images.pexels.com/photos/158651/news-newsletter-newspaper-information-158651.jpeg?w=700&h=700"

func at(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

// SeedFixtures loads a small, fixed dataset:
//
//   - topics mitch, cats, paper (paper has no articles)
//   - article 1 (mitch, 100 votes) with 11 comments
//   - article 2 (mitch) with no comments
//   - article 3 (mitch) with 2 comments, the newest article
//   - article 4 (cats) with no comments
//   - article 5 (mitch, 3 votes) with 1 comment, the oldest article
func SeedFixtures(s *MockStore) {
	s.AddTopic("mitch", "The man, the Mitch, the legend")
	s.AddTopic("cats", "Not dogs")
	s.AddTopic("paper", "what books are made of")

	s.AddUser("butter_bridge", "jonny", "https://www.healthytherapies.com/wp-content/uploads/2016/06/Lime3.jpg")
	s.AddUser("icellusedkars", "sam", "https://avatars2.githubusercontent.com/u/24604688?s=460&v=4")
	s.AddUser("rogersop", "paul", "https://avatars2.githubusercontent.com/u/24394918?s=400&v=4")
	s.AddUser("lurker", "do_nothing", "https://www.golenbock.com/wp-content/uploads/2015/01/placeholder-user.png")

	s.AddArticle(models.Article{
		ArticleID: 1, Title: "Living in the shadow of a great man", Topic: "mitch", Author: "butter_bridge",
		Body: "I find this existence challenging", CreatedAt: at("2020-07-09T20:11:00Z"), Votes: 100,
		ArticleImgURL: fixtureImg,
	})
	s.AddArticle(models.Article{
		ArticleID: 2, Title: "Sony Vaio; or, The Laptop", Topic: "mitch", Author: "icellusedkars",
		Body: "Call me Mitchell.", CreatedAt: at("2020-10-16T05:03:00Z"), ArticleImgURL: fixtureImg,
	})
	s.AddArticle(models.Article{
		ArticleID: 3, Title: "Eight pug gifs that remind me of mitch", Topic: "mitch", Author: "icellusedkars",
		Body: "some gifs", CreatedAt: at("2020-11-03T09:12:00Z"), ArticleImgURL: fixtureImg,
	})
	s.AddArticle(models.Article{
		ArticleID: 4, Title: "UNCOVERED: catspiracy to bring down democracy", Topic: "cats", Author: "rogersop",
		Body: "Bastet walks amongst us, and the cats are taking arms!", CreatedAt: at("2020-08-03T13:14:00Z"),
		ArticleImgURL: fixtureImg,
	})
	s.AddArticle(models.Article{
		ArticleID: 5, Title: "A", Topic: "mitch", Author: "icellusedkars",
		Body: "Delicious tin of cat food", CreatedAt: at("2020-01-07T14:08:00Z"), Votes: 3,
		ArticleImgURL: fixtureImg,
	})

	authors := []string{"butter_bridge", "icellusedkars", "rogersop"}
	base := at("2020-01-01T00:00:00Z")
	for i := 0; i < 11; i++ {
		s.AddComment(models.Comment{
			ArticleID: 1,
			Author:    authors[i%len(authors)],
			Body:      "Comment on the great man",
			Votes:     i - 2,
			CreatedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		})
	}
	s.AddComment(models.Comment{
		ArticleID: 3, Author: "butter_bridge", Body: "Ambidextrous marsupial", CreatedAt: at("2020-09-19T23:10:00Z"),
	})
	s.AddComment(models.Comment{
		ArticleID: 3, Author: "icellusedkars", Body: "git push origin master", Votes: 1, CreatedAt: at("2020-06-20T07:24:00Z"),
	})
	s.AddComment(models.Comment{
		ArticleID: 5, Author: "lurker", Body: "I hate streaming noses", CreatedAt: at("2020-11-03T21:00:00Z"),
	})
}

// NewFixtureStore returns a store preloaded with SeedFixtures
func NewFixtureStore() *MockStore {
	s := NewMockStore()
	SeedFixtures(s)
	return s
}
