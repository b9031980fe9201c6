// ABOUTME: Exporter renders the feed list as OPML 1.0 or CSV for download
// ABOUTME: Entries without a URL are skipped and missing titles default to the URL

package exporter

import (
	"strings"

	"feedlist-api/core/domain"
	coreerrors "feedlist-api/core/errors"
)

const (
	OPMLFilename    = "rss-feeds.opml"
	OPMLContentType = "application/xml"
	CSVFilename     = "rss-feeds.csv"
	CSVContentType  = "text/csv"
)

// ErrNoFeeds is returned when the list holds no entry with a URL
var ErrNoFeeds = &coreerrors.ValidationError{
	Field:   "feeds",
	Message: "add at least one valid RSS feed URL",
}

type row struct {
	url   string
	title string
}

// exportable returns the entries with a URL, titles defaulting to the URL
func exportable(entries []domain.FeedEntry) ([]row, error) {
	rows := make([]row, 0, len(entries))
	for _, entry := range entries {
		url := entry.TrimmedURL()
		if url == "" {
			continue
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			title = url
		}
		rows = append(rows, row{url: url, title: title})
	}
	if len(rows) == 0 {
		return nil, ErrNoFeeds
	}
	return rows, nil
}
