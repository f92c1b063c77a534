package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"

	"github.com/go-pkgz/lgr"

	"github.com/nl2rss/nl2rss/pkg/domain"
)

var feedNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// sourcePayload is the body of POST /api/source/{id}
type sourcePayload struct {
	Enabled *bool   `json:"enabled"`
	Feeds   []int64 `json:"feeds"`
}

func (p sourcePayload) validate() []string {
	var problems []string
	if p.Enabled == nil {
		problems = append(problems, "Source enabled is required")
	}
	if p.Feeds == nil {
		problems = append(problems, "Source feeds are required")
	}
	return problems
}

// articlePayload is the body of POST /api/article/{id}
type articlePayload struct {
	Hidden *bool `json:"hidden"`
}

// feedPayload is the body of feed create and update calls
type feedPayload struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Enabled     *bool   `json:"enabled"`
}

func (p feedPayload) validate() []string {
	var problems []string
	switch {
	case p.Name == nil || *p.Name == "":
		problems = append(problems, "Feed name is required")
	case !feedNameRe.MatchString(*p.Name):
		problems = append(problems, "Feed name may contain only letters, digits, '-' and '_'")
	}
	if p.Title == nil {
		problems = append(problems, "Feed title is required")
	}
	if p.Description == nil {
		problems = append(problems, "Feed description is required")
	}
	if p.Enabled == nil {
		problems = append(problems, "Feed enabled is required")
	}
	return problems
}

func (p feedPayload) input() domain.FeedInput {
	return domain.FeedInput{Name: *p.Name, Title: *p.Title, Description: *p.Description, Enabled: *p.Enabled}
}

// getSourcesHandler lists all sources, disabled included
func (s *Server) getSourcesHandler(w http.ResponseWriter, r *http.Request) {
	sources, err := s.Sources.GetSources(r.Context(), true, 0)
	if err != nil {
		RenderError(w, r, err, "Source")
		return
	}
	RenderJSON(w, r, http.StatusOK, DataResponse{Status: http.StatusOK, Data: sources})
}

// setSourceHandler changes enabled status and feed membership of a source
func (s *Server) setSourceHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		renderValidation(w, r, "Source id is required: "+err.Error())
		return
	}
	var p sourcePayload
	if !decodePayload(w, r, &p) {
		return
	}
	if problems := p.validate(); len(problems) > 0 {
		renderValidation(w, r, problems...)
		return
	}

	if err := s.Sources.UpdateSource(r.Context(), id, *p.Enabled, p.Feeds); err != nil {
		RenderError(w, r, err, "Source")
		return
	}
	lgr.Printf("[INFO] source %d updated, enabled=%t, feeds=%v", id, *p.Enabled, p.Feeds)
	renderOK(w, r)
}

// getArticlesHandler lists all articles, hidden included
func (s *Server) getArticlesHandler(w http.ResponseWriter, r *http.Request) {
	articles, err := s.Articles.GetArticles(r.Context(), true)
	if err != nil {
		RenderError(w, r, err, "Article")
		return
	}
	RenderJSON(w, r, http.StatusOK, DataResponse{Status: http.StatusOK, Data: articles})
}

// setArticleHandler hides or unhides an article
func (s *Server) setArticleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		renderValidation(w, r, "Article id is required: "+err.Error())
		return
	}
	var p articlePayload
	if !decodePayload(w, r, &p) {
		return
	}
	if p.Hidden == nil {
		renderValidation(w, r, "Article hidden is required")
		return
	}

	if err := s.Articles.SetArticleHidden(r.Context(), id, *p.Hidden); err != nil {
		RenderError(w, r, err, "Article")
		return
	}
	renderOK(w, r)
}

// getFeedsHandler lists all feeds, main feed first
func (s *Server) getFeedsHandler(w http.ResponseWriter, r *http.Request) {
	feeds, err := s.Feeds.GetFeeds(r.Context())
	if err != nil {
		RenderError(w, r, err, "Feed")
		return
	}
	RenderJSON(w, r, http.StatusOK, DataResponse{Status: http.StatusOK, Data: feeds})
}

// createFeedHandler creates a regular feed
func (s *Server) createFeedHandler(w http.ResponseWriter, r *http.Request) {
	var p feedPayload
	if !decodePayload(w, r, &p) {
		return
	}
	if problems := p.validate(); len(problems) > 0 {
		renderValidation(w, r, problems...)
		return
	}

	if _, err := s.Feeds.CreateFeed(r.Context(), p.input()); err != nil {
		RenderError(w, r, err, "Feed")
		return
	}
	renderOK(w, r)
}

// setFeedHandler replaces attributes of a feed, the main feed included
func (s *Server) setFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		renderValidation(w, r, "Feed id is required: "+err.Error())
		return
	}
	var p feedPayload
	if !decodePayload(w, r, &p) {
		return
	}
	if problems := p.validate(); len(problems) > 0 {
		renderValidation(w, r, problems...)
		return
	}

	if _, err := s.Feeds.UpdateFeed(r.Context(), id, p.input()); err != nil {
		RenderError(w, r, err, "Feed")
		return
	}
	renderOK(w, r)
}

// removeFeedHandler deletes a regular feed
func (s *Server) removeFeedHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		renderValidation(w, r, "Feed id is required: "+err.Error())
		return
	}
	if err := s.Feeds.DeleteFeed(r.Context(), id); err != nil {
		RenderError(w, r, err, "Feed")
		return
	}
	lgr.Printf("[INFO] feed %d removed", id)
	renderOK(w, r)
}

// decodePayload parses json body into v, a malformed body is answered with 400
func decodePayload(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		renderValidation(w, r, fmt.Sprintf("invalid json body: %v", err))
		return false
	}
	return true
}
