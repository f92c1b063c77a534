package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"

	"github.com/nl2rss/nl2rss/pkg/domain"
	"github.com/nl2rss/nl2rss/pkg/metrics"
	"github.com/nl2rss/nl2rss/pkg/storage"
)

//go:generate moq -out mocks/articles.go -pkg mocks -skip-ensure -fmt goimports . ArticleLister

// ArticleLister lists visible articles of a feed, newest first
type ArticleLister interface {
	GetFeedArticles(ctx context.Context, feedID int64, allowHidden bool, limit int) ([]domain.Article, error)
}

// Store keeps rendered feeds and article bodies
type Store interface {
	FeedPath(feedID int64) string
	ModTime(path string) (time.Time, error)
	Read(path string) (string, error)
	Write(path, content string) error
	ReadArticle(uid string) (string, error)
}

// Config defines materializer parameters
type Config struct {
	BaseURL   string        // public url, links are built from it
	Limit     int           // max items per feed
	CacheTime time.Duration // rendered feed is reused while younger than this
	Metrics   *metrics.Recorder
}

// Materializer renders feeds to xml files and serves them while they are fresh
type Materializer struct {
	articles ArticleLister
	store    Store
	gen      *Generator
	policy   *bluemonday.Policy
	cfg      Config
	now      func() time.Time
}

// NewMaterializer makes a materializer, zero config values get defaults
func NewMaterializer(articles ArticleLister, store Store, cfg Config) *Materializer {
	if cfg.Limit <= 0 {
		cfg.Limit = 100
	}
	if cfg.CacheTime == 0 {
		cfg.CacheTime = 10 * time.Minute
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.Default()
	}
	return &Materializer{
		articles: articles,
		store:    store,
		gen:      NewGenerator(),
		policy:   bluemonday.UGCPolicy(),
		cfg:      cfg,
		now:      time.Now,
	}
}

// GetXML returns the path of the rendered feed, regenerating it when missing or stale
func (m *Materializer) GetXML(ctx context.Context, feed domain.Feed) (string, error) {
	path := m.store.FeedPath(feed.ID)
	mtime, err := m.store.ModTime(path)
	switch {
	case err == nil && m.now().Sub(mtime) <= m.cfg.CacheTime:
		lgr.Printf("[DEBUG] feed %d served from cache", feed.ID)
		return path, nil
	case err != nil && !errors.Is(err, storage.ErrNotExist):
		lgr.Printf("[WARN] can't check rendered feed %d, regenerating: %v", feed.ID, err)
	}
	return m.Write(ctx, feed)
}

// Load returns the rendered xml of a feed, see GetXML
func (m *Materializer) Load(ctx context.Context, feed domain.Feed) (string, error) {
	path, err := m.GetXML(ctx, feed)
	if err != nil {
		return "", err
	}
	return m.store.Read(path)
}

// Write renders the feed from its current articles and stores it, returns the file path.
// Articles with unreadable bodies are skipped.
func (m *Materializer) Write(ctx context.Context, feed domain.Feed) (path string, err error) {
	timer := m.cfg.Metrics.Start("write_feed", "write feed")
	defer func() { timer.Done(err) }()

	lgr.Printf("[INFO] writing feed %d (%s)", feed.ID, feed.Name)
	articles, err := m.articles.GetFeedArticles(ctx, feed.ID, false, m.cfg.Limit)
	if err != nil {
		return "", fmt.Errorf("list articles of feed %d: %w", feed.ID, err)
	}

	items := make([]Item, 0, len(articles))
	for _, a := range articles {
		body, err := m.store.ReadArticle(a.UID)
		if err != nil {
			lgr.Printf("[WARN] could not read article %s: %v", a.UID, err)
			continue
		}
		if body == "" {
			lgr.Printf("[WARN] article %s has an empty body", a.UID)
			continue
		}
		link := m.cfg.BaseURL + "/article/" + a.UID
		author := a.SourceName
		if author == "" {
			author = a.SourceAddress
		}
		items = append(items, Item{
			Title:       a.Title,
			Description: m.policy.Sanitize(body),
			Link:        link,
			GUID:        link,
			Author:      author,
			Published:   a.CreatedAt,
		})
	}

	doc, err := m.gen.GenerateRSS(Channel{
		Title:       feed.Title,
		Description: feed.Description,
		SiteURL:     m.cfg.BaseURL,
		FeedURL:     m.cfg.BaseURL + "/feed/" + feed.Name,
	}, items)
	if err != nil {
		return "", fmt.Errorf("render feed %d: %w", feed.ID, err)
	}
	// a broken document must not replace the cached one
	if err := verify(doc, len(items)); err != nil {
		return "", fmt.Errorf("verify feed %d: %w", feed.ID, err)
	}

	path = m.store.FeedPath(feed.ID)
	if err := m.store.Write(path, doc); err != nil {
		return "", fmt.Errorf("store feed %d: %w", feed.ID, err)
	}
	return path, nil
}
