package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/nl2rss/nl2rss/pkg/domain"
	"github.com/nl2rss/nl2rss/pkg/metrics"
)

// FeedRepository handles feed-related database operations
type FeedRepository struct {
	db  *sqlx.DB
	rec *metrics.Recorder
}

// feedSQL represents a feed for SQL operations
type feedSQL struct {
	ID          int64     `db:"id"`
	Name        string    `db:"name"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	Enabled     bool      `db:"enabled"`
	Main        bool      `db:"main"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const feedColumns = "id, name, title, description, enabled, main, created_at, updated_at"

// NewFeedRepository creates a new feed repository
func NewFeedRepository(db *sqlx.DB, rec *metrics.Recorder) *FeedRepository {
	return &FeedRepository{db: db, rec: rec}
}

// GetMainFeed returns the main feed, creating it on first access
func (r *FeedRepository) GetMainFeed(ctx context.Context) (feed *domain.Feed, err error) {
	defer track(r.rec, "fetch_main_feed", "fetch main feed")(&err)

	id, err := ensureMainFeed(ctx, r.db)
	if err != nil {
		return nil, err
	}

	var row feedSQL
	if err := r.db.GetContext(ctx, &row, "SELECT "+feedColumns+" FROM feeds WHERE id = ?", id); err != nil {
		return nil, newQueryError("get main feed", err)
	}
	return row.toDomain(), nil
}

// ensureMainFeed creates the main feed if missing and returns its id. Safe for concurrent
// callers, the partial unique index on feeds(main) turns a second insert into a no-op.
func ensureMainFeed(ctx context.Context, ext sqlx.ExtContext) (int64, error) {
	res, err := ext.ExecContext(ctx,
		`INSERT OR IGNORE INTO feeds (name, title, description, enabled, main) VALUES (?, ?, ?, 1, 1)`,
		domain.MainFeedName, domain.MainFeedTitle, domain.MainFeedDescription)
	if err != nil {
		return 0, newQueryError("create main feed", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		lgr.Printf("[INFO] created main feed %q", domain.MainFeedName)
	}

	var id int64
	if err := sqlx.GetContext(ctx, ext, &id, "SELECT id FROM feeds WHERE main = 1"); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// the name is taken by a regular feed, nothing was inserted
			return 0, &QueryError{Kind: KindUniqueConstraint, Op: "create main feed",
				Err: fmt.Errorf("feed name %q is already used", domain.MainFeedName)}
		}
		return 0, newQueryError("get main feed id", err)
	}
	return id, nil
}

// GetFeed retrieves a feed by id, disabled feeds are returned only with allowDisabled
func (r *FeedRepository) GetFeed(ctx context.Context, id int64, allowDisabled bool) (feed *domain.Feed, err error) {
	defer track(r.rec, "fetch_feed", "fetch feed")(&err)

	var row feedSQL
	query := "SELECT " + feedColumns + " FROM feeds WHERE id = ? AND (enabled = 1 OR ? = 1)"
	if err := r.db.GetContext(ctx, &row, query, id, allowDisabled); err != nil {
		return nil, newQueryError("get feed", err)
	}
	return row.toDomain(), nil
}

// GetFeedByName retrieves a feed by its url name
func (r *FeedRepository) GetFeedByName(ctx context.Context, name string, allowDisabled bool) (feed *domain.Feed, err error) {
	defer track(r.rec, "fetch_feed", "fetch feed")(&err)

	var row feedSQL
	query := "SELECT " + feedColumns + " FROM feeds WHERE name = ? AND (enabled = 1 OR ? = 1)"
	if err := r.db.GetContext(ctx, &row, query, name, allowDisabled); err != nil {
		return nil, newQueryError("get feed by name", err)
	}
	return row.toDomain(), nil
}

// GetFeeds returns all feeds, main feed first
func (r *FeedRepository) GetFeeds(ctx context.Context) (feeds []domain.Feed, err error) {
	defer track(r.rec, "fetch_feeds", "fetch feeds")(&err)

	var rows []feedSQL
	if err := r.db.SelectContext(ctx, &rows, "SELECT "+feedColumns+" FROM feeds ORDER BY main DESC, name"); err != nil {
		return nil, newQueryError("get feeds", err)
	}
	return toDomainFeeds(rows), nil
}

// GetFeedsByIDs returns feeds with the given ids, unknown ids are ignored
func (r *FeedRepository) GetFeedsByIDs(ctx context.Context, ids []int64) (feeds []domain.Feed, err error) {
	defer track(r.rec, "fetch_feeds", "fetch feeds")(&err)

	if len(ids) == 0 {
		return []domain.Feed{}, nil
	}
	query, args, err := sqlx.In("SELECT "+feedColumns+" FROM feeds WHERE id IN (?) ORDER BY main DESC, name", ids)
	if err != nil {
		return nil, fmt.Errorf("build feeds query: %w", err)
	}
	var rows []feedSQL
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, newQueryError("get feeds by ids", err)
	}
	return toDomainFeeds(rows), nil
}

// CreateFeed inserts a new regular feed
func (r *FeedRepository) CreateFeed(ctx context.Context, in domain.FeedInput) (feed *domain.Feed, err error) {
	defer track(r.rec, "create_feed", "create feed")(&err)

	var id int64
	err = withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO feeds (name, title, description, enabled, main) VALUES (?, ?, ?, ?, 0)`,
			in.Name, in.Title, in.Description, in.Enabled)
		if err != nil {
			return newQueryError("create feed", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return newQueryError("get insert id", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	lgr.Printf("[INFO] created feed %q (%d)", in.Name, id)

	var row feedSQL
	if err := r.db.GetContext(ctx, &row, "SELECT "+feedColumns+" FROM feeds WHERE id = ?", id); err != nil {
		return nil, newQueryError("get created feed", err)
	}
	return row.toDomain(), nil
}

// UpdateFeed replaces user editable attributes of a feed, the main flag is kept
func (r *FeedRepository) UpdateFeed(ctx context.Context, id int64, in domain.FeedInput) (feed *domain.Feed, err error) {
	defer track(r.rec, "update_feed", "update feed")(&err)

	err = withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			`UPDATE feeds SET name = ?, title = ?, description = ?, enabled = ?, updated_at = CURRENT_TIMESTAMP
			WHERE id = ?`, in.Name, in.Title, in.Description, in.Enabled, id)
		if err != nil {
			return newQueryError("update feed", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("update feed %d: %w", id, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var row feedSQL
	if err := r.db.GetContext(ctx, &row, "SELECT "+feedColumns+" FROM feeds WHERE id = ?", id); err != nil {
		return nil, newQueryError("get updated feed", err)
	}
	return row.toDomain(), nil
}

// DeleteFeed removes a regular feed and its memberships, sources and articles stay.
// The main feed can't be deleted.
func (r *FeedRepository) DeleteFeed(ctx context.Context, id int64) (err error) {
	defer track(r.rec, "remove_feed", "remove feed")(&err)

	var main bool
	if err := r.db.GetContext(ctx, &main, "SELECT main FROM feeds WHERE id = ?", id); err != nil {
		return newQueryError("get feed", err)
	}
	if main {
		return ErrMainFeed
	}

	return withRetry(ctx, func() error {
		if _, err := r.db.ExecContext(ctx, "DELETE FROM feeds WHERE id = ? AND main = 0", id); err != nil {
			return newQueryError("delete feed", err)
		}
		return nil
	})
}

func (f *feedSQL) toDomain() *domain.Feed {
	return &domain.Feed{
		ID:          f.ID,
		Name:        f.Name,
		Title:       f.Title,
		Description: f.Description,
		Enabled:     f.Enabled,
		Main:        f.Main,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}

func toDomainFeeds(rows []feedSQL) []domain.Feed {
	feeds := make([]domain.Feed, len(rows))
	for i := range rows {
		feeds[i] = *rows[i].toDomain()
	}
	return feeds
}

// withRetry runs a write, retrying on sqlite lock errors with backoff
func withRetry(ctx context.Context, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	var critical *criticalError
	err := retrier.Do(ctx, func() error {
		err := fn()
		if err == nil || isLockError(err) {
			return err // nil or retry
		}
		critical = &criticalError{err: err}
		return errCritical
	}, errCritical)
	if critical != nil {
		return critical.err
	}
	return err
}
