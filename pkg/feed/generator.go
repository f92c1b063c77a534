// Package feed renders RSS documents for feeds and keeps them cached on disk
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

const generatorName = "nl2rss"

// Generator creates RSS 2.0 documents
type Generator struct {
	now func() time.Time
}

// NewGenerator creates a new feed generator
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// GenerateRSS creates a compact, not indented RSS 2.0 document with an atom self link
func (g *Generator) GenerateRSS(channel Channel, items []Item) (string, error) {
	rssItems := make([]*RSSItem, 0, len(items))
	for _, item := range items {
		rssItems = append(rssItems, convertToRSSItem(item))
	}

	feed := &RSS{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		Channel: &RSSChannel{
			Title:         channel.Title,
			Link:          channel.SiteURL,
			Description:   channel.Description,
			AtomLink:      &AtomLink{Href: channel.FeedURL, Rel: "self", Type: "application/rss+xml"},
			Generator:     generatorName,
			LastBuildDate: g.now().UTC().Format(time.RFC1123Z),
			Items:         rssItems,
		},
	}

	output, err := xml.Marshal(feed)
	if err != nil {
		return "", fmt.Errorf("marshal RSS: %w", err)
	}
	return xml.Header + string(output), nil
}

func convertToRSSItem(item Item) *RSSItem {
	guid := item.GUID
	if guid == "" {
		guid = item.Link
	}
	return &RSSItem{
		Title:       xmlText(item.Title),
		Description: CDATA{Value: xmlText(item.Description)},
		Link:        item.Link,
		GUID:        &RSSGUID{Value: guid, IsPermaLink: guid == item.Link},
		Author:      xmlText(item.Author),
		PubDate:     item.Published.UTC().Format(time.RFC1123Z),
	}
}

// xmlText makes s valid inside an xml document. Cdata sections are written as is, so
// invalid utf-8 is replaced and characters outside of the xml Char range are dropped.
func xmlText(s string) string {
	s = strings.ToValidUTF8(s, "\uFFFD")
	return strings.Map(func(r rune) rune {
		if isXMLChar(r) {
			return r
		}
		return -1
	}, s)
}

func isXMLChar(r rune) bool {
	switch {
	case r == 0x09 || r == 0x0A || r == 0x0D:
		return true
	case r >= 0x20 && r <= 0xD7FF, r >= 0xE000 && r <= 0xFFFD, r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
