// ABOUTME: Stateless title detection endpoint
// ABOUTME: Resolves a feed URL to a display title without touching any session

package handlers

import (
	"context"
	"net/http"
	"strings"

	"feedlist-api/api/dto/mappers"
	"feedlist-api/api/dto/responses"
	"feedlist-api/core/interfaces"
	"github.com/danielgtaylor/huma/v2"
)

// TitleHandler exposes the title resolver over HTTP
type TitleHandler struct {
	resolver interfaces.TitleResolver
}

// NewTitleHandler creates a new title handler
func NewTitleHandler(resolver interfaces.TitleResolver) *TitleHandler {
	return &TitleHandler{resolver: resolver}
}

// RegisterRoutes registers title detection routes
func (h *TitleHandler) RegisterRoutes(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "detectTitle",
		Method:      http.MethodGet,
		Path:        "/detect-title",
		Summary:     "Detect a feed title",
		Description: "Fetches the URL and extracts a title from the feed or page. Failures fall back to the domain name and are still reported with status 200.",
		Tags:        []string{"Titles"},
	}, h.DetectTitle)
}

// DetectTitleInput defines the input for title detection
type DetectTitleInput struct {
	URL string `query:"url" doc:"Feed or page URL; a missing scheme means https"`
}

// DetectTitleOutput defines the output for title detection
type DetectTitleOutput struct {
	Body responses.TitleResponse
}

// DetectTitle handles GET /detect-title
func (h *TitleHandler) DetectTitle(ctx context.Context, input *DetectTitleInput) (*DetectTitleOutput, error) {
	if strings.TrimSpace(input.URL) == "" {
		return nil, huma.Error400BadRequest("URL is required")
	}

	result := h.resolver.Resolve(ctx, input.URL)
	return &DetectTitleOutput{Body: mappers.ToTitleResponse(result)}, nil
}
