// Package ingest turns fetched mails into sources, articles and stored bodies. A single worker
// owns the mailbox and runs fetch batches one at a time.
package ingest

import (
	"context"

	"github.com/go-pkgz/lgr"

	"github.com/nl2rss/nl2rss/pkg/domain"
)

//go:generate moq -out mocks/sources.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/articles.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore
//go:generate moq -out mocks/bodies.go -pkg mocks -skip-ensure -fmt goimports . BodyStore

// SourceStore finds or creates mail senders
type SourceStore interface {
	UpsertSource(ctx context.Context, name, address string) (*domain.Source, bool, error)
}

// ArticleStore finds or creates articles by uid
type ArticleStore interface {
	CreateArticle(ctx context.Context, uid, title string, sourceID int64) (*domain.Article, bool, error)
}

// BodyStore keeps article html bodies
type BodyStore interface {
	ArticleExists(uid string) (bool, error)
	WriteArticle(uid, html string) error
}

// Stats summarizes one ingested batch
type Stats struct {
	Mails         int
	NewSources    int
	NewArticles   int
	BodiesWritten int
	Failures      int
}

// Pipeline stores mails one by one, re-ingesting the same mail is a no-op
type Pipeline struct {
	Sources  SourceStore
	Articles ArticleStore
	Bodies   BodyStore
}

// NewPipeline makes a pipeline on top of the given stores
func NewPipeline(sources SourceStore, articles ArticleStore, bodies BodyStore) *Pipeline {
	return &Pipeline{Sources: sources, Articles: articles, Bodies: bodies}
}

// Ingest processes mails sequentially. A failing mail is logged and skipped, it never stops the batch.
func (p *Pipeline) Ingest(ctx context.Context, mails []domain.Mail) Stats {
	stats := Stats{}
	for _, m := range mails {
		if ctx.Err() != nil {
			lgr.Printf("[WARN] ingestion interrupted, %d mail(s) left", len(mails)-stats.Mails)
			break
		}
		stats.Mails++
		if err := p.ingestMail(ctx, m, &stats); err != nil {
			stats.Failures++
			lgr.Printf("[WARN] failed to ingest mail %s from %s: %v", m.UID, m.Address, err)
		}
	}
	if stats.NewArticles > 0 || stats.Failures > 0 {
		lgr.Printf("[INFO] ingested %d mail(s): %d new source(s), %d new article(s), %d failure(s)",
			stats.Mails, stats.NewSources, stats.NewArticles, stats.Failures)
	}
	return stats
}

func (p *Pipeline) ingestMail(ctx context.Context, m domain.Mail, stats *Stats) error {
	src, created, err := p.Sources.UpsertSource(ctx, m.Name, m.Address)
	if err != nil {
		return err
	}
	if created {
		stats.NewSources++
		lgr.Printf("[INFO] new source %s <%s>", src.Name, src.Address)
	}

	_, created, err = p.Articles.CreateArticle(ctx, m.UID, m.Subject, src.ID)
	if err != nil {
		return err
	}
	if created {
		stats.NewArticles++
		lgr.Printf("[DEBUG] new article %s %q", m.UID, m.Subject)
	}

	exists, err := p.Bodies.ArticleExists(m.UID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	if err := p.Bodies.WriteArticle(m.UID, m.HTML); err != nil {
		return err
	}
	stats.BodiesWritten++
	return nil
}
