package domain

import "time"

// main feed defaults, used when the main feed is created on first access
const (
	MainFeedName        = "all"
	MainFeedTitle       = "All Available Articles"
	MainFeedDescription = "All Fetched Emails."
)

// Feed represents a named, user-curated group of sources
type Feed struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"` // url slug, unique
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Enabled     bool      `json:"enabled"`
	Main        bool      `json:"main"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FeedInput holds user supplied feed attributes for create and update
type FeedInput struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}
