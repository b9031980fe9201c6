// ABOUTME: Response DTOs for feed list sessions and title detection
// ABOUTME: Provides structured responses with JSON serialization

package responses

import "time"

// TitleResponse is the result of a stateless title detection. Either Title and
// Source are set, or Error is.
type TitleResponse struct {
	Title      string `json:"title,omitempty" doc:"Detected title"`
	Source     string `json:"source,omitempty" enum:"feed,domain_fallback" doc:"Where the title came from"`
	Error      string `json:"error,omitempty" doc:"Why no title could be produced"`
	StatusCode int    `json:"status_code,omitempty" doc:"Upstream HTTP status for fetch failures"`
	Fallback   bool   `json:"fallback,omitempty" doc:"Set when the client should fall back to its own placeholder"`
}

// FeedEntryResponse is one row of a feed list
type FeedEntryResponse struct {
	ID          string `json:"id" doc:"Stable entry identifier"`
	URL         string `json:"url" doc:"Feed URL as entered"`
	Title       string `json:"title" doc:"Display title"`
	TitleSource string `json:"title_source" doc:"Provenance of the title; empty when unset"`
	Loading     bool   `json:"loading" doc:"Whether a detection is in flight for this entry"`
}

// SessionResponse is a snapshot of a session's feed list and detection queue
type SessionResponse struct {
	ID         string              `json:"id" doc:"Session identifier"`
	CreatedAt  time.Time           `json:"created_at" doc:"When the session was created"`
	Feeds      []FeedEntryResponse `json:"feeds" doc:"Entries in display order"`
	Pending    int                 `json:"pending" doc:"Detections waiting or in flight"`
	Processing bool                `json:"processing" doc:"Whether a detection is in flight"`
}

// DetectResponse reports whether a detection was queued
type DetectResponse struct {
	Queued bool `json:"queued" doc:"Whether the entry was queued for detection"`
}

// DetectAllResponse reports how many entries were selected for detection
type DetectAllResponse struct {
	Queued  int    `json:"queued" doc:"Number of entries selected for detection"`
	Message string `json:"message,omitempty" doc:"Informational message when nothing needed detection"`
}

// ImportResponse lists the entries added by an import
type ImportResponse struct {
	Imported int                 `json:"imported" doc:"Number of feeds imported"`
	Feeds    []FeedEntryResponse `json:"feeds" doc:"Entries created by the import"`
}
