package feed

import (
	"encoding/xml"
	"time"
)

// Channel describes a rendered feed
type Channel struct {
	Title       string
	Description string
	SiteURL     string
	FeedURL     string // self link
}

// Item is a single entry of a rendered feed
type Item struct {
	Title       string
	Description string // html
	Link        string
	GUID        string
	Author      string
	Published   time.Time
}

// RSS represents the root RSS 2.0 element
type RSS struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	Atom    string      `xml:"xmlns:atom,attr"`
	Channel *RSSChannel `xml:"channel"`
}

// RSSChannel represents an RSS channel
type RSSChannel struct {
	XMLName       xml.Name   `xml:"channel"`
	Title         string     `xml:"title"`
	Link          string     `xml:"link"`
	Description   string     `xml:"description"`
	AtomLink      *AtomLink  `xml:"http://www.w3.org/2005/Atom link"`
	Generator     string     `xml:"generator"`
	LastBuildDate string     `xml:"lastBuildDate"`
	Items         []*RSSItem `xml:"item"`
}

// AtomLink represents an Atom link element within RSS
type AtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

// RSSItem represents an item in an RSS feed
type RSSItem struct {
	Title       string   `xml:"title"`
	Description CDATA    `xml:"description"`
	Link        string   `xml:"link"`
	GUID        *RSSGUID `xml:"guid"`
	Author      string   `xml:"author,omitempty"`
	PubDate     string   `xml:"pubDate"`
}

// RSSGUID is an item guid, permalink when it is the item url
type RSSGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

// CDATA keeps html descriptions readable in the xml
type CDATA struct {
	Value string `xml:",cdata"`
}
