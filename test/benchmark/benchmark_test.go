package benchmark

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/newsboard-api/internal/api"
	"github.com/newsboard-api/internal/config"
	"github.com/newsboard-api/internal/mocks"
	"github.com/newsboard-api/internal/seed"
	"github.com/newsboard-api/internal/service"
	"github.com/newsboard-api/internal/validation"
	"github.com/rs/zerolog"
)

// seededStore loads a generated dataset into an in-memory store
func seededStore(b *testing.B, articles int) *mocks.MockStore {
	b.Helper()
	store := mocks.NewMockStore()
	ds := seed.NewFactory(seed.Options{Topics: 8, Users: 50, Articles: articles, MaxCommentsPerPost: 10, Seed: 1}).Build()
	repos := store.Repositories()
	ctx := context.Background()

	if _, err := repos.Topic.BatchInsert(ctx, ds.Topics); err != nil {
		b.Fatal(err)
	}
	if _, err := repos.User.BatchInsert(ctx, ds.Users); err != nil {
		b.Fatal(err)
	}
	if _, err := repos.Article.BatchInsert(ctx, ds.Articles); err != nil {
		b.Fatal(err)
	}
	if _, err := repos.Comment.BatchInsert(ctx, ds.Comments); err != nil {
		b.Fatal(err)
	}
	return store
}

// BenchmarkParseSort benchmarks allow-list validation of sort parameters
func BenchmarkParseSort(b *testing.B) {
	str := func(s string) *string { return &s }
	inputs := [][2]*string{
		{nil, nil},
		{str("votes"), str("asc")},
		{str("comment_count"), str("DESC")},
		{str("body"), str("asc")},
	}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		in := inputs[i%len(inputs)]
		validation.ParseSort(in[0], in[1])
	}
}

// BenchmarkParseID benchmarks path identifier parsing
func BenchmarkParseID(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		validation.ParseID("12345")
	}
}

// BenchmarkSeedFactory benchmarks dataset generation
func BenchmarkSeedFactory(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		seed.NewFactory(seed.Options{Topics: 5, Users: 20, Articles: 100, MaxCommentsPerPost: 10, Seed: int64(i + 1)}).Build()
	}
	b.ReportMetric(float64(100*b.N)/b.Elapsed().Seconds(), "articles/sec")
}

// BenchmarkListArticles benchmarks the listing service path
func BenchmarkListArticles(b *testing.B) {
	store := seededStore(b, 500)
	services := service.NewServices(store.Repositories(), nil, zerolog.Nop())
	ctx := context.Background()
	sortBy, order := "votes", "asc"
	params := validation.ArticleListParams{SortBy: &sortBy, Order: &order}

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := services.Article.ListArticles(ctx, params); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkRouterGetArticle benchmarks a full request through the middleware chain
func BenchmarkRouterGetArticle(b *testing.B) {
	gin.SetMode(gin.TestMode)
	store := seededStore(b, 100)
	services := service.NewServices(store.Repositories(), nil, zerolog.Nop())
	router := api.NewRouter(services, &config.Config{}, zerolog.Nop())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/articles/1", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", w.Code)
		}
	}
}

// BenchmarkRouterParallel benchmarks concurrent listing requests
func BenchmarkRouterParallel(b *testing.B) {
	gin.SetMode(gin.TestMode)
	store := seededStore(b, 100)
	services := service.NewServices(store.Repositories(), nil, zerolog.Nop())
	router := api.NewRouter(services, &config.Config{}, zerolog.Nop())

	b.ResetTimer()
	b.ReportAllocs()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req := httptest.NewRequest(http.MethodGet, "/api/articles", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
		}
	})
}
