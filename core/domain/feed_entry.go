// ABOUTME: FeedEntry domain model represents one row of a user's feed subscription list
// ABOUTME: Tracks title provenance so automatic detection never clobbers user input

package domain

import (
	"strings"

	"github.com/google/uuid"
)

// TitleSource records where an entry's title came from
type TitleSource string

const (
	// TitleSourceUnset means no title has been assigned yet
	TitleSourceUnset TitleSource = ""

	// TitleSourceUser marks a title typed or imported by the user. It is authoritative.
	TitleSourceUser TitleSource = "user"

	// TitleSourceDomain marks a provisional domain-name placeholder
	TitleSourceDomain TitleSource = "domain"

	// TitleSourceFeed marks a title extracted from the feed or page content
	TitleSourceFeed TitleSource = "feed"
)

// FeedEntry represents a single feed subscription being edited
type FeedEntry struct {
	// ID is the opaque identifier of the entry, stable for the session
	ID string

	// URL is the user-supplied feed address. It may be empty or lack a scheme.
	URL string

	// Title is the display title
	Title string

	// TitleSource is the provenance of Title
	TitleSource TitleSource

	// Loading is true while a title detection for this entry is in flight
	Loading bool
}

// NewFeedEntry creates an empty entry with a fresh identifier
func NewFeedEntry() FeedEntry {
	return FeedEntry{ID: uuid.New().String()}
}

// HasUserTitle reports whether the title was provided by the user
func (e FeedEntry) HasUserTitle() bool {
	return e.TitleSource == TitleSourceUser
}

// TrimmedURL returns the URL without surrounding whitespace
func (e FeedEntry) TrimmedURL() string {
	return strings.TrimSpace(e.URL)
}

// IsBlank reports whether the entry has neither a URL nor a title
func (e FeedEntry) IsBlank() bool {
	return e.URL == "" && e.Title == ""
}

// NeedsDetection reports whether detect-all should pick this entry up:
// it has a URL and its title is empty, a domain placeholder, or unset.
func (e FeedEntry) NeedsDetection() bool {
	if e.TrimmedURL() == "" {
		return false
	}
	return e.Title == "" || e.TitleSource == TitleSourceDomain || e.TitleSource == TitleSourceUnset
}

// DetectionItem is a pending title detection request
type DetectionItem struct {
	EntryID string
	URL     string
}

// ImportRecord is a flat feed record produced by a file importer
type ImportRecord struct {
	URL   string
	Title string
}

// ToEntry converts an imported record into a feed entry. A non-empty imported title is
// treated as user-provided.
func (r ImportRecord) ToEntry() FeedEntry {
	entry := NewFeedEntry()
	entry.URL = strings.TrimSpace(r.URL)
	entry.Title = strings.TrimSpace(r.Title)
	if entry.Title != "" {
		entry.TitleSource = TitleSourceUser
	}
	return entry
}
