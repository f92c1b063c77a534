package domain

import "time"

// Article represents one ingested mail
type Article struct {
	ID        int64     `json:"id"`
	UID       string    `json:"uid"`
	Title     string    `json:"title"`
	SourceID  int64     `json:"source"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// joined data, populated by queries
	SourceName    string `json:"sourceName,omitempty"`
	SourceAddress string `json:"sourceAddress,omitempty"`
}
