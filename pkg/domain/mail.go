package domain

// Mail is a normalized parse result of a raw message. It is not persisted,
// it carries data from the mail connector into the ingestion pipeline.
type Mail struct {
	Address string
	Name    string
	Subject string
	Date    string // RFC 3339, UTC
	HTML    string // html body or escaped plain text fallback
	UID     string
}
