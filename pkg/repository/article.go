package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nl2rss/nl2rss/pkg/domain"
	"github.com/nl2rss/nl2rss/pkg/metrics"
)

// ArticleRepository handles article-related database operations
type ArticleRepository struct {
	db  *sqlx.DB
	rec *metrics.Recorder
}

// articleSQL represents an article joined with its source
type articleSQL struct {
	ID            int64     `db:"id"`
	UID           string    `db:"uid"`
	Title         string    `db:"title"`
	SourceID      int64     `db:"source_id"`
	Hidden        bool      `db:"hidden"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
	SourceName    string    `db:"source_name"`
	SourceAddress string    `db:"source_address"`
}

const articleSelect = `SELECT a.id, a.uid, a.title, a.source_id, a.hidden, a.created_at, a.updated_at,
	s.name AS source_name, s.address AS source_address
	FROM articles a JOIN sources s ON s.id = a.source_id`

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB, rec *metrics.Recorder) *ArticleRepository {
	return &ArticleRepository{db: db, rec: rec}
}

// CreateArticle inserts an article unless one with the same uid exists, created
// reports whether a new row was added
func (r *ArticleRepository) CreateArticle(ctx context.Context, uid, title string, sourceID int64) (article *domain.Article, created bool, err error) {
	defer track(r.rec, "create_article", "save article")(&err)

	err = withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO articles (uid, title, source_id) VALUES (?, ?, ?) ON CONFLICT(uid) DO NOTHING`,
			uid, title, sourceID)
		if err != nil {
			return newQueryError("create article", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return newQueryError("get affected rows", err)
		}
		created = n > 0
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	var row articleSQL
	if err := r.db.GetContext(ctx, &row, articleSelect+" WHERE a.uid = ?", uid); err != nil {
		return nil, false, newQueryError("get article", err)
	}
	return row.toDomain(), created, nil
}

// GetArticle retrieves an article by id. A hidden article without allowHidden is ErrHidden.
func (r *ArticleRepository) GetArticle(ctx context.Context, id int64, allowHidden bool) (article *domain.Article, err error) {
	defer track(r.rec, "fetch_article", "fetch article")(&err)

	var row articleSQL
	if err := r.db.GetContext(ctx, &row, articleSelect+" WHERE a.id = ?", id); err != nil {
		return nil, newQueryError("get article", err)
	}
	if row.Hidden && !allowHidden {
		return nil, fmt.Errorf("get article %d: %w", id, ErrHidden)
	}
	return row.toDomain(), nil
}

// GetArticleByUID retrieves an article by uid. A hidden article without allowHidden is ErrHidden.
func (r *ArticleRepository) GetArticleByUID(ctx context.Context, uid string, allowHidden bool) (article *domain.Article, err error) {
	defer track(r.rec, "fetch_article", "fetch article")(&err)

	var row articleSQL
	if err := r.db.GetContext(ctx, &row, articleSelect+" WHERE a.uid = ?", uid); err != nil {
		return nil, newQueryError("get article by uid", err)
	}
	if row.Hidden && !allowHidden {
		return nil, fmt.Errorf("get article %s: %w", uid, ErrHidden)
	}
	return row.toDomain(), nil
}

// GetArticles lists all articles newest first, hidden ones only with allowHidden.
// Articles of disabled sources are included.
func (r *ArticleRepository) GetArticles(ctx context.Context, allowHidden bool) (articles []domain.Article, err error) {
	defer track(r.rec, "fetch_articles", "fetch articles")(&err)

	var rows []articleSQL
	query := articleSelect + " WHERE (a.hidden = 0 OR ? = 1) ORDER BY a.created_at DESC, a.id DESC"
	if err := r.db.SelectContext(ctx, &rows, query, allowHidden); err != nil {
		return nil, newQueryError("get articles", err)
	}
	return toDomainArticles(rows), nil
}

// GetFeedArticles lists articles of enabled sources that are members of the feed,
// newest first. limit <= 0 means no limit.
func (r *ArticleRepository) GetFeedArticles(ctx context.Context, feedID int64, allowHidden bool, limit int) (articles []domain.Article, err error) {
	defer track(r.rec, "fetch_feed_articles", "fetch feed articles")(&err)

	if limit <= 0 {
		limit = -1 // sqlite treats negative limit as no limit
	}
	query := articleSelect + `
		JOIN source_feeds sf ON sf.source_id = s.id
		WHERE sf.feed_id = ? AND s.enabled = 1 AND (a.hidden = 0 OR ? = 1)
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT ?`

	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, query, feedID, allowHidden, limit); err != nil {
		return nil, newQueryError("get feed articles", err)
	}
	return toDomainArticles(rows), nil
}

// SetArticleHidden changes the hidden flag of an article
func (r *ArticleRepository) SetArticleHidden(ctx context.Context, id int64, hidden bool) (err error) {
	defer track(r.rec, "update_article", "update article")(&err)

	return withRetry(ctx, func() error {
		res, err := r.db.ExecContext(ctx,
			"UPDATE articles SET hidden = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?", hidden, id)
		if err != nil {
			return newQueryError("update article", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("update article %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func (a *articleSQL) toDomain() *domain.Article {
	return &domain.Article{
		ID:            a.ID,
		UID:           a.UID,
		Title:         a.Title,
		SourceID:      a.SourceID,
		Hidden:        a.Hidden,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
		SourceName:    a.SourceName,
		SourceAddress: a.SourceAddress,
	}
}

func toDomainArticles(rows []articleSQL) []domain.Article {
	articles := make([]domain.Article, len(rows))
	for i := range rows {
		articles[i] = *rows[i].toDomain()
	}
	return articles
}
