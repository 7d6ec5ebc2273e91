// Package feeder reads RSS/Atom feeds so their entries can be imported as posts.
package feeder

import (
	"context"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"portfolio-api/httpclient"
)

type FeedItem struct {
	Title       string
	Link        string
	Description string
	Content     string
	Author      string
	Categories  []string
	PublishedAt time.Time
}

// FetchFeed downloads and parses the feed at feedURL.
// If limit is greater than 0, it returns only the first limit items.
func FetchFeed(ctx context.Context, feedURL string, limit int, client *http.Client) ([]FeedItem, error) {
	if client == nil {
		client = httpclient.NewDefault()
	}
	fp := gofeed.NewParser()
	fp.Client = client

	feed, err := fp.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, err
	}

	items := make([]FeedItem, 0, len(feed.Items))
	for _, it := range feed.Items {
		var published time.Time
		if it.PublishedParsed != nil {
			published = *it.PublishedParsed
		} else if it.UpdatedParsed != nil {
			published = *it.UpdatedParsed
		}

		author := ""
		if it.Author != nil {
			author = it.Author.Name
		} else if len(it.Authors) > 0 && it.Authors[0] != nil {
			author = it.Authors[0].Name
		}

		items = append(items, FeedItem{
			Title:       it.Title,
			Link:        it.Link,
			Description: it.Description,
			Content:     it.Content,
			Author:      author,
			Categories:  it.Categories,
			PublishedAt: published,
		})
	}

	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
