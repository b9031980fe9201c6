// ABOUTME: Mappers for converting between feed list domain models and API DTOs
// ABOUTME: Provides clean separation between business logic and API layer

package mappers

import (
	"time"

	"feedlist-api/api/dto/responses"
	"feedlist-api/core/domain"
)

// NothingToDetectMessage is returned by detect-all when every entry is settled
const NothingToDetectMessage = "No feeds need title detection"

// ToFeedEntryResponse converts a domain FeedEntry to its DTO
func ToFeedEntryResponse(entry domain.FeedEntry) responses.FeedEntryResponse {
	return responses.FeedEntryResponse{
		ID:          entry.ID,
		URL:         entry.URL,
		Title:       entry.Title,
		TitleSource: string(entry.TitleSource),
		Loading:     entry.Loading,
	}
}

// ToFeedEntryResponses converts a list of entries, never returning nil
func ToFeedEntryResponses(entries []domain.FeedEntry) []responses.FeedEntryResponse {
	out := make([]responses.FeedEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, ToFeedEntryResponse(e))
	}
	return out
}

// ToTitleResponse converts a resolver result
func ToTitleResponse(result domain.TitleResult) responses.TitleResponse {
	if result.Failed() {
		return responses.TitleResponse{
			Error:      result.Error,
			StatusCode: result.StatusCode,
			Fallback:   result.Fallback,
		}
	}
	return responses.TitleResponse{
		Title:  result.Title,
		Source: string(result.Source),
	}
}

// FromTitleResponse converts a detect-title payload back into a resolver result
func FromTitleResponse(resp responses.TitleResponse) domain.TitleResult {
	return domain.TitleResult{
		Title:      resp.Title,
		Source:     domain.ResolvedSource(resp.Source),
		Error:      resp.Error,
		StatusCode: resp.StatusCode,
		Fallback:   resp.Fallback,
	}
}

// SessionSnapshot is the state a SessionResponse is built from
type SessionSnapshot struct {
	ID         string
	CreatedAt  time.Time
	Entries    []domain.FeedEntry
	Pending    int
	Processing bool
}

// ToSessionResponse converts a session snapshot
func ToSessionResponse(s SessionSnapshot) responses.SessionResponse {
	return responses.SessionResponse{
		ID:         s.ID,
		CreatedAt:  s.CreatedAt,
		Feeds:      ToFeedEntryResponses(s.Entries),
		Pending:    s.Pending,
		Processing: s.Processing,
	}
}

// ToDetectAllResponse reports the detect-all count, with a message when it is zero
func ToDetectAllResponse(queued int) responses.DetectAllResponse {
	resp := responses.DetectAllResponse{Queued: queued}
	if queued == 0 {
		resp.Message = NothingToDetectMessage
	}
	return resp
}

// ToImportResponse converts the entries created by an import
func ToImportResponse(entries []domain.FeedEntry) responses.ImportResponse {
	return responses.ImportResponse{
		Imported: len(entries),
		Feeds:    ToFeedEntryResponses(entries),
	}
}
