package feedscan

import (
	"context"
	"fmt"
	"time"

	"github.com/mmcdole/gofeed"
)

// Options bound which feed items become extraction candidates.
type Options struct {
	// Limit caps the number of candidates; <= 0 means no cap.
	Limit int
	// MaxAge skips items published longer ago; zero means no cutoff.
	MaxAge time.Duration
}

// Candidate is a feed item worth submitting for extraction.
type Candidate struct {
	Title     string
	Link      string
	Published time.Time
}

// Scan fetches an RSS/Atom feed and returns its item links, deduped and
// in feed order, for bulk submission to the extraction endpoint.
func Scan(ctx context.Context, feedURL string, opts Options) ([]Candidate, error) {
	feed, err := gofeed.NewParser().ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching feed: %w", err)
	}
	return collect(feed, time.Now(), opts), nil
}

func collect(feed *gofeed.Feed, now time.Time, opts Options) []Candidate {
	var cutoff time.Time
	if opts.MaxAge > 0 {
		cutoff = now.Add(-opts.MaxAge)
	}

	seen := make(map[string]bool, len(feed.Items))
	var out []Candidate
	for _, item := range feed.Items {
		if item.Link == "" || seen[item.Link] {
			continue
		}

		pub := now
		if item.PublishedParsed != nil {
			pub = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			pub = *item.UpdatedParsed
		}
		if !cutoff.IsZero() && pub.Before(cutoff) {
			continue
		}

		seen[item.Link] = true
		out = append(out, Candidate{
			Title:     item.Title,
			Link:      item.Link,
			Published: pub,
		})
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out
}
