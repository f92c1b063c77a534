package feed

import (
	"fmt"
	"strings"

	"github.com/mmcdole/gofeed"
)

// Parse reads a rendered feed back with a regular feed reader and converts it to our types.
// Used to check a freshly generated document before it replaces the cached one.
func Parse(doc string) (Channel, []Item, error) {
	parsed, err := gofeed.NewParser().Parse(strings.NewReader(doc))
	if err != nil {
		return Channel{}, nil, fmt.Errorf("parse feed: %w", err)
	}

	channel := Channel{
		Title:       parsed.Title,
		Description: parsed.Description,
		SiteURL:     parsed.Link,
		FeedURL:     parsed.FeedLink,
	}

	items := make([]Item, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		item := Item{
			Title:       it.Title,
			Description: it.Description,
			Link:        it.Link,
			GUID:        it.GUID,
		}
		if it.Author != nil {
			item.Author = it.Author.Name
			if item.Author == "" {
				item.Author = it.Author.Email
			}
		}
		if it.PublishedParsed != nil {
			item.Published = *it.PublishedParsed
		}
		items = append(items, item)
	}
	return channel, items, nil
}

// verify checks that doc is readable and carries all the expected items
func verify(doc string, want int) error {
	_, items, err := Parse(doc)
	if err != nil {
		return err
	}
	if len(items) != want {
		return fmt.Errorf("rendered %d items, expected %d", len(items), want)
	}
	return nil
}
