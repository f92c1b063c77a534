package repository

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nl2rss/nl2rss/pkg/domain"
	"github.com/nl2rss/nl2rss/pkg/metrics"
)

func setupTestDB(t *testing.T) *Repositories {
	t.Helper()
	repos, err := NewRepositories(context.Background(), Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
		Metrics:         metrics.NewRecorder(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })
	return repos
}

func TestRepositories_Integration(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repos.Ping(ctx))

	src, created, err := repos.Source.UpsertSource(ctx, "Go Weekly", "weekly@golang.example")
	require.NoError(t, err)
	assert.True(t, created)

	article, created, err := repos.Article.CreateArticle(ctx, "uid-1", "Issue 1", src.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Go Weekly", article.SourceName)
	assert.Equal(t, "weekly@golang.example", article.SourceAddress)

	main, err := repos.Feed.GetMainFeed(ctx)
	require.NoError(t, err)
	articles, err := repos.Article.GetFeedArticles(ctx, main.ID, false, 10)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "uid-1", articles[0].UID)
}

func TestNewRepositories_InvalidDSN(t *testing.T) {
	cfg := Config{
		DSN:     filepath.Join(t.TempDir(), "missing", "dir", "test.db"),
		Metrics: metrics.NewRecorder(),
	}

	_, err := NewRepositories(context.Background(), cfg)
	assert.Error(t, err)
}

func TestRepositories_Close(t *testing.T) {
	repos, err := NewRepositories(context.Background(), Config{DSN: ":memory:", Metrics: metrics.NewRecorder()})
	require.NoError(t, err)

	// close should not error
	assert.NoError(t, repos.Close())

	// second close should not error
	assert.NoError(t, repos.Close())
}

func TestRepositories_Metrics(t *testing.T) {
	rec := metrics.NewRecorder()
	repos, err := NewRepositories(context.Background(), Config{DSN: ":memory:", MaxOpenConns: 1, Metrics: rec})
	require.NoError(t, err)
	defer repos.Close()

	_, err = repos.Feed.GetMainFeed(context.Background())
	require.NoError(t, err)
	_, err = repos.Source.GetSource(context.Background(), 12345)
	require.ErrorIs(t, err, ErrNotFound)

	stats, ok := rec.Stats("fetch_main_feed")
	require.True(t, ok)
	assert.Equal(t, int64(1), stats.Calls)
	assert.Equal(t, int64(0), stats.Failures)

	stats, ok = rec.Stats("fetch_source")
	require.True(t, ok)
	assert.Equal(t, int64(1), stats.Failures)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{err: errors.New("constraint failed: UNIQUE constraint failed: feeds.name (2067)"), want: KindUniqueConstraint},
		{err: errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), want: KindValidation},
		{err: errors.New("NOT NULL constraint failed: articles.uid"), want: KindValidation},
		{err: errors.New("database is locked (5) (SQLITE_BUSY)"), want: KindTimeout},
		{err: fmt.Errorf("query: %w", context.DeadlineExceeded), want: KindTimeout},
		{err: errors.New("unable to open database file: out of memory (14)"), want: KindConnectionRefused},
		{err: errors.New("sql: database is closed"), want: KindConnectionRefused},
		{err: errors.New("attempt to write a readonly database (8)"), want: KindAccessDenied},
		{err: errors.New("no such table: foo"), want: KindUnexpected},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.err))
		})
	}
}

func TestNewQueryError(t *testing.T) {
	err := newQueryError("create feed", errors.New("UNIQUE constraint failed: feeds.name"))
	var qe *QueryError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, KindUniqueConstraint, qe.Kind)
	assert.Equal(t, "create feed", qe.Op)
	assert.True(t, IsKind(err, KindUniqueConstraint))
	assert.False(t, IsKind(err, KindTimeout))
	assert.False(t, IsKind(errors.New("plain"), KindUnexpected))
}

func TestWithRetry(t *testing.T) {
	t.Run("retries lock errors", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), func() error {
			calls++
			if calls < 3 {
				return errors.New("database is locked")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("stops on other errors", func(t *testing.T) {
		calls := 0
		err := withRetry(context.Background(), func() error {
			calls++
			return fmt.Errorf("update feed 1: %w", ErrNotFound)
		})
		require.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 1, calls)
		assert.NotErrorIs(t, err, errCritical)
	})
}

func TestFeedRepository_MainFeed(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	main, err := repos.Feed.GetMainFeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.MainFeedName, main.Name)
	assert.Equal(t, domain.MainFeedTitle, main.Title)
	assert.Equal(t, domain.MainFeedDescription, main.Description)
	assert.True(t, main.Main)
	assert.True(t, main.Enabled)

	t.Run("repeated access returns the same row", func(t *testing.T) {
		again, err := repos.Feed.GetMainFeed(ctx)
		require.NoError(t, err)
		assert.Equal(t, main.ID, again.ID)
	})

	t.Run("concurrent access creates one row", func(t *testing.T) {
		var wg sync.WaitGroup
		ids := make([]int64, 10)
		for i := range ids {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				f, err := repos.Feed.GetMainFeed(ctx)
				if assert.NoError(t, err) {
					ids[i] = f.ID
				}
			}(i)
		}
		wg.Wait()
		for _, id := range ids {
			assert.Equal(t, main.ID, id)
		}

		var count int
		require.NoError(t, repos.DB.Get(&count, "SELECT COUNT(*) FROM feeds WHERE main = 1"))
		assert.Equal(t, 1, count)
	})

	t.Run("second main row rejected by index", func(t *testing.T) {
		_, err := repos.DB.Exec("INSERT INTO feeds (name, main) VALUES ('other-main', 1)")
		require.Error(t, err)
	})

	t.Run("main feed can't be deleted", func(t *testing.T) {
		err := repos.Feed.DeleteFeed(ctx, main.ID)
		require.ErrorIs(t, err, ErrMainFeed)

		f, err := repos.Feed.GetFeed(ctx, main.ID, true)
		require.NoError(t, err)
		assert.True(t, f.Main)
	})
}

func TestFeedRepository_CRUD(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	feed, err := repos.Feed.CreateFeed(ctx, domain.FeedInput{Name: "tech", Title: "Tech", Description: "tech news", Enabled: true})
	require.NoError(t, err)
	assert.NotZero(t, feed.ID)
	assert.False(t, feed.Main)

	t.Run("duplicate name", func(t *testing.T) {
		_, err := repos.Feed.CreateFeed(ctx, domain.FeedInput{Name: "tech", Title: "Other"})
		require.Error(t, err)
		assert.True(t, IsKind(err, KindUniqueConstraint))
	})

	t.Run("get by name", func(t *testing.T) {
		f, err := repos.Feed.GetFeedByName(ctx, "tech", false)
		require.NoError(t, err)
		assert.Equal(t, feed.ID, f.ID)

		_, err = repos.Feed.GetFeedByName(ctx, "unknown", true)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("disabled feed filtered", func(t *testing.T) {
		updated, err := repos.Feed.UpdateFeed(ctx, feed.ID, domain.FeedInput{Name: "tech", Title: "Tech 2", Enabled: false})
		require.NoError(t, err)
		assert.Equal(t, "Tech 2", updated.Title)
		assert.False(t, updated.Enabled)

		_, err = repos.Feed.GetFeed(ctx, feed.ID, false)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = repos.Feed.GetFeedByName(ctx, "tech", false)
		assert.ErrorIs(t, err, ErrNotFound)

		f, err := repos.Feed.GetFeed(ctx, feed.ID, true)
		require.NoError(t, err)
		assert.Equal(t, "Tech 2", f.Title)
	})

	t.Run("update unknown", func(t *testing.T) {
		_, err := repos.Feed.UpdateFeed(ctx, 9999, domain.FeedInput{Name: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("list and by ids", func(t *testing.T) {
		main, err := repos.Feed.GetMainFeed(ctx)
		require.NoError(t, err)

		feeds, err := repos.Feed.GetFeeds(ctx)
		require.NoError(t, err)
		require.Len(t, feeds, 2)
		assert.True(t, feeds[0].Main)

		feeds, err = repos.Feed.GetFeedsByIDs(ctx, []int64{feed.ID, 4242})
		require.NoError(t, err)
		require.Len(t, feeds, 1)
		assert.Equal(t, feed.ID, feeds[0].ID)

		feeds, err = repos.Feed.GetFeedsByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, feeds)

		feeds, err = repos.Feed.GetFeedsByIDs(ctx, []int64{main.ID, feed.ID})
		require.NoError(t, err)
		assert.Len(t, feeds, 2)
	})

	t.Run("delete keeps sources and articles", func(t *testing.T) {
		src, _, err := repos.Source.UpsertSource(ctx, "Tech News", "tech@example.com")
		require.NoError(t, err)
		main, err := repos.Feed.GetMainFeed(ctx)
		require.NoError(t, err)
		require.NoError(t, repos.Source.UpdateSource(ctx, src.ID, true, []int64{main.ID, feed.ID}))
		_, _, err = repos.Article.CreateArticle(ctx, "tech-uid", "Tech issue", src.ID)
		require.NoError(t, err)

		require.NoError(t, repos.Feed.DeleteFeed(ctx, feed.ID))

		_, err = repos.Feed.GetFeed(ctx, feed.ID, true)
		assert.ErrorIs(t, err, ErrNotFound)

		got, err := repos.Source.GetSource(ctx, src.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{main.ID}, got.Feeds)

		_, err = repos.Article.GetArticleByUID(ctx, "tech-uid", false)
		require.NoError(t, err)
	})

	t.Run("delete unknown", func(t *testing.T) {
		assert.ErrorIs(t, repos.Feed.DeleteFeed(ctx, 9999), ErrNotFound)
	})
}

func TestSourceRepository_Upsert(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	src, created, err := repos.Source.UpsertSource(ctx, "Newsletter", "news@example.com")
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, src.Enabled)
	assert.Equal(t, "Newsletter", src.Name)

	main, err := repos.Feed.GetMainFeed(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{main.ID}, src.Feeds, "new source belongs to the main feed")

	t.Run("second upsert finds the same source", func(t *testing.T) {
		again, created, err := repos.Source.UpsertSource(ctx, "Renamed", "news@example.com")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, src.ID, again.ID)
		assert.Equal(t, "Newsletter", again.Name)
	})

	t.Run("existing source is not re-associated", func(t *testing.T) {
		require.NoError(t, repos.Source.UpdateSource(ctx, src.ID, true, nil))

		again, created, err := repos.Source.UpsertSource(ctx, "Newsletter", "news@example.com")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Empty(t, again.Feeds)
	})

	t.Run("get by address", func(t *testing.T) {
		got, err := repos.Source.GetSourceByAddress(ctx, "news@example.com")
		require.NoError(t, err)
		assert.Equal(t, src.ID, got.ID)

		_, err = repos.Source.GetSourceByAddress(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSourceRepository_UpdateAndList(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	main, err := repos.Feed.GetMainFeed(ctx)
	require.NoError(t, err)
	tech, err := repos.Feed.CreateFeed(ctx, domain.FeedInput{Name: "tech", Title: "Tech", Enabled: true})
	require.NoError(t, err)

	a, _, err := repos.Source.UpsertSource(ctx, "A", "a@example.com")
	require.NoError(t, err)
	b, _, err := repos.Source.UpsertSource(ctx, "B", "b@example.com")
	require.NoError(t, err)

	require.NoError(t, repos.Source.UpdateSource(ctx, a.ID, true, []int64{main.ID, tech.ID}))
	require.NoError(t, repos.Source.UpdateSource(ctx, b.ID, false, []int64{main.ID}))

	t.Run("enabled only", func(t *testing.T) {
		sources, err := repos.Source.GetSources(ctx, false, 0)
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, "a@example.com", sources[0].Address)
		assert.ElementsMatch(t, []int64{main.ID, tech.ID}, sources[0].Feeds)
	})

	t.Run("allow disabled", func(t *testing.T) {
		sources, err := repos.Source.GetSources(ctx, true, 0)
		require.NoError(t, err)
		assert.Len(t, sources, 2)
	})

	t.Run("by feed", func(t *testing.T) {
		sources, err := repos.Source.GetSources(ctx, true, tech.ID)
		require.NoError(t, err)
		require.Len(t, sources, 1)
		assert.Equal(t, a.ID, sources[0].ID)
	})

	t.Run("source feeds", func(t *testing.T) {
		feeds, err := repos.Source.GetSourceFeeds(ctx, a.ID)
		require.NoError(t, err)
		require.Len(t, feeds, 2)
		assert.True(t, feeds[0].Main)
		assert.Equal(t, "tech", feeds[1].Name)
	})

	t.Run("unknown feed id rejected and membership kept", func(t *testing.T) {
		err := repos.Source.UpdateSource(ctx, a.ID, true, []int64{777})
		require.Error(t, err)
		assert.True(t, IsKind(err, KindValidation))

		got, err := repos.Source.GetSource(ctx, a.ID)
		require.NoError(t, err)
		assert.ElementsMatch(t, []int64{main.ID, tech.ID}, got.Feeds)
	})

	t.Run("unknown source", func(t *testing.T) {
		assert.ErrorIs(t, repos.Source.UpdateSource(ctx, 999, true, nil), ErrNotFound)
	})
}

func TestArticleRepository(t *testing.T) {
	repos := setupTestDB(t)
	ctx := context.Background()

	main, err := repos.Feed.GetMainFeed(ctx)
	require.NoError(t, err)
	src, _, err := repos.Source.UpsertSource(ctx, "Sender", "sender@example.com")
	require.NoError(t, err)

	first, created, err := repos.Article.CreateArticle(ctx, "uid-a", "First", src.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, first.Hidden)

	t.Run("create is idempotent on uid", func(t *testing.T) {
		again, created, err := repos.Article.CreateArticle(ctx, "uid-a", "Other title", src.ID)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, first.ID, again.ID)
		assert.Equal(t, "First", again.Title)

		var count int
		require.NoError(t, repos.DB.Get(&count, "SELECT COUNT(*) FROM articles WHERE uid = 'uid-a'"))
		assert.Equal(t, 1, count)
	})

	t.Run("unknown source rejected", func(t *testing.T) {
		_, _, err := repos.Article.CreateArticle(ctx, "uid-x", "Orphan", 9999)
		require.Error(t, err)
		assert.True(t, IsKind(err, KindValidation))
	})

	second, _, err := repos.Article.CreateArticle(ctx, "uid-b", "Second", src.ID)
	require.NoError(t, err)

	t.Run("newest first", func(t *testing.T) {
		articles, err := repos.Article.GetArticles(ctx, false)
		require.NoError(t, err)
		require.Len(t, articles, 2)
		assert.Equal(t, "uid-b", articles[0].UID)
		assert.Equal(t, "uid-a", articles[1].UID)
	})

	t.Run("limit", func(t *testing.T) {
		articles, err := repos.Article.GetFeedArticles(ctx, main.ID, false, 1)
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "uid-b", articles[0].UID)

		articles, err = repos.Article.GetFeedArticles(ctx, main.ID, false, 0)
		require.NoError(t, err)
		assert.Len(t, articles, 2)
	})

	t.Run("hidden filtering", func(t *testing.T) {
		require.NoError(t, repos.Article.SetArticleHidden(ctx, second.ID, true))

		_, err := repos.Article.GetArticleByUID(ctx, "uid-b", false)
		assert.ErrorIs(t, err, ErrHidden)
		_, err = repos.Article.GetArticle(ctx, second.ID, false)
		assert.ErrorIs(t, err, ErrHidden)

		got, err := repos.Article.GetArticleByUID(ctx, "uid-b", true)
		require.NoError(t, err)
		assert.True(t, got.Hidden)

		articles, err := repos.Article.GetFeedArticles(ctx, main.ID, false, 10)
		require.NoError(t, err)
		require.Len(t, articles, 1)
		assert.Equal(t, "uid-a", articles[0].UID)

		articles, err = repos.Article.GetArticles(ctx, true)
		require.NoError(t, err)
		assert.Len(t, articles, 2)

		require.NoError(t, repos.Article.SetArticleHidden(ctx, second.ID, false))
	})

	t.Run("disabled source excluded from feed only", func(t *testing.T) {
		require.NoError(t, repos.Source.UpdateSource(ctx, src.ID, false, []int64{main.ID}))

		articles, err := repos.Article.GetFeedArticles(ctx, main.ID, false, 10)
		require.NoError(t, err)
		assert.Empty(t, articles)

		articles, err = repos.Article.GetArticles(ctx, false)
		require.NoError(t, err)
		assert.Len(t, articles, 2)

		require.NoError(t, repos.Source.UpdateSource(ctx, src.ID, true, []int64{main.ID}))
	})

	t.Run("not a feed member", func(t *testing.T) {
		tech, err := repos.Feed.CreateFeed(ctx, domain.FeedInput{Name: "tech", Enabled: true})
		require.NoError(t, err)
		articles, err := repos.Article.GetFeedArticles(ctx, tech.ID, false, 10)
		require.NoError(t, err)
		assert.Empty(t, articles)
	})

	t.Run("unknown ids", func(t *testing.T) {
		_, err := repos.Article.GetArticle(ctx, 9999, true)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repos.Article.SetArticleHidden(ctx, 9999, true), ErrNotFound)
	})
}
