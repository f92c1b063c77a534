// Package server exposes rendered feeds and article bodies over http, plus a json api to
// curate sources, feeds and articles
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/nl2rss/nl2rss/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/sources.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/feeds.go -pkg mocks -skip-ensure -fmt goimports . FeedStore
//go:generate moq -out mocks/articles.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore
//go:generate moq -out mocks/bodies.go -pkg mocks -skip-ensure -fmt goimports . BodyReader
//go:generate moq -out mocks/renderer.go -pkg mocks -skip-ensure -fmt goimports . FeedRenderer
//go:generate moq -out mocks/pinger.go -pkg mocks -skip-ensure -fmt goimports . Pinger

// Server represents HTTP server instance
type Server struct {
	Params

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Params holds server dependencies
type Params struct {
	Config   ConfigProvider
	Sources  SourceStore
	Feeds    FeedStore
	Articles ArticleStore
	Bodies   BodyReader
	Renderer FeedRenderer
	DB       Pinger
	Version  string
	Debug    bool
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetAuth() (user, passwordHash string)
}

// SourceStore is the source part of the repository
type SourceStore interface {
	GetSources(ctx context.Context, allowDisabled bool, feedID int64) ([]domain.Source, error)
	UpdateSource(ctx context.Context, id int64, enabled bool, feedIDs []int64) error
}

// FeedStore is the feed part of the repository
type FeedStore interface {
	GetFeeds(ctx context.Context) ([]domain.Feed, error)
	GetFeedByName(ctx context.Context, name string, allowDisabled bool) (*domain.Feed, error)
	CreateFeed(ctx context.Context, in domain.FeedInput) (*domain.Feed, error)
	UpdateFeed(ctx context.Context, id int64, in domain.FeedInput) (*domain.Feed, error)
	DeleteFeed(ctx context.Context, id int64) error
}

// ArticleStore is the article part of the repository
type ArticleStore interface {
	GetArticles(ctx context.Context, allowHidden bool) ([]domain.Article, error)
	GetArticleByUID(ctx context.Context, uid string, allowHidden bool) (*domain.Article, error)
	SetArticleHidden(ctx context.Context, id int64, hidden bool) error
}

// BodyReader reads stored article bodies
type BodyReader interface {
	ReadArticle(uid string) (string, error)
}

// FeedRenderer returns rendered xml of a feed, cached or fresh
type FeedRenderer interface {
	Load(ctx context.Context, feed domain.Feed) (string, error)
}

// Pinger checks database availability
type Pinger interface {
	Ping(ctx context.Context) error
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		Params: p,
		router: routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.Config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s.lock.Lock()
		defer s.lock.Unlock()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("nl2rss", "nl2rss", s.Version))
	s.router.Use(rest.Ping)
	s.router.Use(rest.Metrics())

	if s.Debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.HandleFunc("GET /healthcheck", s.healthHandler)
	s.router.HandleFunc("GET /feed/{name}", s.feedHandler)
	s.router.HandleFunc("GET /article/{uid}", s.articleHandler)

	s.router.Mount("/api").Route(func(r *routegroup.Bundle) {
		if user, hash := s.Config.GetAuth(); user != "" {
			r.Use(basicAuth(user, hash))
		}
		r.HandleFunc("GET /sources", s.getSourcesHandler)
		r.HandleFunc("POST /source/{id}", s.setSourceHandler)
		r.HandleFunc("GET /articles", s.getArticlesHandler)
		r.HandleFunc("POST /article/{id}", s.setArticleHandler)
		r.HandleFunc("GET /feeds", s.getFeedsHandler)
		r.HandleFunc("POST /feed", s.createFeedHandler)
		r.HandleFunc("POST /feed/{id}", s.setFeedHandler)
		r.HandleFunc("DELETE /feed/{id}", s.removeFeedHandler)
	})
}

// healthHandler reports database availability
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if err := s.DB.Ping(r.Context()); err != nil {
		lgr.Printf("[WARN] health check failed: %v", err)
		RenderJSON(w, r, http.StatusServiceUnavailable, ErrorResponse{Status: http.StatusServiceUnavailable,
			Message: "Database is not available.", Type: TypeUnexpected, Errors: []string{}})
		return
	}
	RenderJSON(w, r, http.StatusOK, DataResponse{Status: http.StatusOK,
		Data: map[string]string{"database": "ok", "version": s.Version}})
}
