package domain

import "time"

// Source represents a mail sender, identified by its address
type Source struct {
	ID        int64     `json:"id"`
	Address   string    `json:"address"`
	Name      string    `json:"name"`
	Enabled   bool      `json:"enabled"`
	Feeds     []int64   `json:"feeds,omitempty"` // ids of feeds the source is a member of
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
