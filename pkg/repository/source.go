package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/jmoiron/sqlx"

	"github.com/nl2rss/nl2rss/pkg/domain"
	"github.com/nl2rss/nl2rss/pkg/metrics"
)

// SourceRepository handles source-related database operations
type SourceRepository struct {
	db  *sqlx.DB
	rec *metrics.Recorder
}

// sourceSQL represents a source for SQL operations
type sourceSQL struct {
	ID        int64     `db:"id"`
	Address   string    `db:"address"`
	Name      string    `db:"name"`
	Enabled   bool      `db:"enabled"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type membershipSQL struct {
	SourceID int64 `db:"source_id"`
	FeedID   int64 `db:"feed_id"`
}

const sourceColumns = "s.id, s.address, s.name, s.enabled, s.created_at, s.updated_at"

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB, rec *metrics.Recorder) *SourceRepository {
	return &SourceRepository{db: db, rec: rec}
}

// GetSource retrieves a source by id with its feed memberships
func (r *SourceRepository) GetSource(ctx context.Context, id int64) (src *domain.Source, err error) {
	defer track(r.rec, "fetch_source", "fetch source")(&err)

	var row sourceSQL
	if err := r.db.GetContext(ctx, &row, "SELECT "+sourceColumns+" FROM sources s WHERE s.id = ?", id); err != nil {
		return nil, newQueryError("get source", err)
	}
	return r.withFeeds(ctx, row)
}

// GetSourceByAddress retrieves a source by sender address
func (r *SourceRepository) GetSourceByAddress(ctx context.Context, address string) (src *domain.Source, err error) {
	defer track(r.rec, "fetch_source", "fetch source")(&err)

	var row sourceSQL
	if err := r.db.GetContext(ctx, &row, "SELECT "+sourceColumns+" FROM sources s WHERE s.address = ?", address); err != nil {
		return nil, newQueryError("get source by address", err)
	}
	return r.withFeeds(ctx, row)
}

// GetSources lists sources. Disabled sources are included only with allowDisabled,
// feedID > 0 limits the list to members of that feed.
func (r *SourceRepository) GetSources(ctx context.Context, allowDisabled bool, feedID int64) (sources []domain.Source, err error) {
	defer track(r.rec, "fetch_sources", "fetch sources")(&err)

	query := "SELECT " + sourceColumns + " FROM sources s WHERE (s.enabled = 1 OR ? = 1)"
	args := []any{allowDisabled}
	if feedID > 0 {
		query += " AND EXISTS (SELECT 1 FROM source_feeds sf WHERE sf.source_id = s.id AND sf.feed_id = ?)"
		args = append(args, feedID)
	}
	query += " ORDER BY s.address"

	var rows []sourceSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, newQueryError("get sources", err)
	}

	var links []membershipSQL
	if err := r.db.SelectContext(ctx, &links, "SELECT source_id, feed_id FROM source_feeds ORDER BY feed_id"); err != nil {
		return nil, newQueryError("get source feeds", err)
	}
	membership := make(map[int64][]int64)
	for _, l := range links {
		membership[l.SourceID] = append(membership[l.SourceID], l.FeedID)
	}

	sources = make([]domain.Source, len(rows))
	for i := range rows {
		sources[i] = *rows[i].toDomain(membership[rows[i].ID])
	}
	return sources, nil
}

// UpsertSource finds a source by address or creates it. A new source is added to the
// main feed in the same transaction. Name of an existing source is not changed.
func (r *SourceRepository) UpsertSource(ctx context.Context, name, address string) (src *domain.Source, created bool, err error) {
	defer track(r.rec, "create_source", "save source")(&err)

	var id int64
	err = withRetry(ctx, func() error {
		id, created = 0, false
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return newQueryError("begin transaction", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		err = tx.GetContext(ctx, &id, "SELECT id FROM sources WHERE address = ?", address)
		if err == nil {
			return nil // already known
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return newQueryError("find source", err)
		}

		mainID, err := ensureMainFeed(ctx, tx)
		if err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx, "INSERT INTO sources (address, name) VALUES (?, ?)", address, name)
		if err != nil {
			return newQueryError("create source", err)
		}
		if id, err = res.LastInsertId(); err != nil {
			return newQueryError("get insert id", err)
		}
		if _, err := tx.ExecContext(ctx, "INSERT INTO source_feeds (source_id, feed_id) VALUES (?, ?)", id, mainID); err != nil {
			return newQueryError("add source to main feed", err)
		}
		if err := tx.Commit(); err != nil {
			return newQueryError("commit source", err)
		}
		created = true
		return nil
	})
	if err != nil {
		if !IsKind(err, KindUniqueConstraint) {
			return nil, false, err
		}
		// lost a race with a concurrent insert of the same address
		created = false
		if err = r.db.GetContext(ctx, &id, "SELECT id FROM sources WHERE address = ?", address); err != nil {
			return nil, false, newQueryError("find source", err)
		}
	}
	if created {
		lgr.Printf("[INFO] saved source %s", address)
	}

	var row sourceSQL
	if err := r.db.GetContext(ctx, &row, "SELECT "+sourceColumns+" FROM sources s WHERE s.id = ?", id); err != nil {
		return nil, false, newQueryError("get source", err)
	}
	src, err = r.withFeeds(ctx, row)
	if err != nil {
		return nil, false, err
	}
	return src, created, nil
}

// UpdateSource sets the enabled flag and replaces feed memberships of a source.
// The main feed membership is kept only if listed in feedIDs.
func (r *SourceRepository) UpdateSource(ctx context.Context, id int64, enabled bool, feedIDs []int64) (err error) {
	defer track(r.rec, "update_source", "update source")(&err)

	return withRetry(ctx, func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return newQueryError("begin transaction", err)
		}
		defer tx.Rollback() //nolint:errcheck // no-op after commit

		res, err := tx.ExecContext(ctx, "UPDATE sources SET enabled = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", enabled, id)
		if err != nil {
			return newQueryError("update source", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("update source %d: %w", id, ErrNotFound)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM source_feeds WHERE source_id = ?", id); err != nil {
			return newQueryError("clear source feeds", err)
		}
		for _, feedID := range feedIDs {
			if _, err := tx.ExecContext(ctx, "INSERT OR IGNORE INTO source_feeds (source_id, feed_id) VALUES (?, ?)", id, feedID); err != nil {
				return newQueryError(fmt.Sprintf("add source to feed %d", feedID), err)
			}
		}
		if err := tx.Commit(); err != nil {
			return newQueryError("commit source", err)
		}
		return nil
	})
}

// GetSourceFeeds returns feeds the source is a member of
func (r *SourceRepository) GetSourceFeeds(ctx context.Context, id int64) (feeds []domain.Feed, err error) {
	defer track(r.rec, "fetch_source_feeds", "fetch source feeds")(&err)

	var rows []feedSQL
	query := `SELECT f.id, f.name, f.title, f.description, f.enabled, f.main, f.created_at, f.updated_at
		FROM feeds f JOIN source_feeds sf ON sf.feed_id = f.id
		WHERE sf.source_id = ? ORDER BY f.main DESC, f.name`
	if err := r.db.SelectContext(ctx, &rows, query, id); err != nil {
		return nil, newQueryError("get source feeds", err)
	}
	return toDomainFeeds(rows), nil
}

func (r *SourceRepository) withFeeds(ctx context.Context, row sourceSQL) (*domain.Source, error) {
	var feedIDs []int64
	if err := r.db.SelectContext(ctx, &feedIDs, "SELECT feed_id FROM source_feeds WHERE source_id = ? ORDER BY feed_id", row.ID); err != nil {
		return nil, newQueryError("get source feeds", err)
	}
	return row.toDomain(feedIDs), nil
}

func (s *sourceSQL) toDomain(feedIDs []int64) *domain.Source {
	if feedIDs == nil {
		feedIDs = []int64{}
	}
	return &domain.Source{
		ID:        s.ID,
		Address:   s.Address,
		Name:      s.Name,
		Enabled:   s.Enabled,
		Feeds:     feedIDs,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
