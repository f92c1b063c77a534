package server

import (
	"net/http"

	"github.com/go-pkgz/lgr"
)

// feedHandler serves the rendered RSS of an enabled feed, cached or regenerated when stale
func (s *Server) feedHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	feed, err := s.Feeds.GetFeedByName(ctx, r.PathValue("name"), false)
	if err != nil {
		RenderError(w, r, err, "Feed")
		return
	}

	rss, err := s.Renderer.Load(ctx, *feed)
	if err != nil {
		RenderError(w, r, err, "Feed")
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		lgr.Printf("[WARN] failed to write RSS response: %v", err)
	}
}

// articleHandler serves the stored html body of a visible article
func (s *Server) articleHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := r.PathValue("uid")

	if _, err := s.Articles.GetArticleByUID(ctx, uid, false); err != nil {
		RenderError(w, r, err, "Article")
		return
	}

	body, err := s.Bodies.ReadArticle(uid)
	if err != nil {
		RenderError(w, r, err, "Article")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(body)); err != nil {
		lgr.Printf("[WARN] failed to write article response: %v", err)
	}
}
