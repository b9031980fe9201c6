// ABOUTME: Service interfaces for the core business logic
// ABOUTME: Defines contracts for title detection used by the queue and the API

package interfaces

import (
	"context"

	"feedlist-api/core/domain"
)

// TitleResolver turns a feed URL into a display title.
// Implementations never return errors: every failure collapses to a fallback
// title or a soft failure result.
type TitleResolver interface {
	Resolve(ctx context.Context, url string) domain.TitleResult
}

// TitleExtractor pulls a title out of a fetched document
type TitleExtractor interface {
	Extract(body string, contentType string) string
}
