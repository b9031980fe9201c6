// ABOUTME: Request DTOs for feed list session endpoints
// ABOUTME: Optional fields are pointers so absent and empty can be told apart

package requests

// UpdateFeedRequest is a user edit of one entry. Omitted fields are left unchanged.
type UpdateFeedRequest struct {
	URL   *string `json:"url,omitempty" doc:"New feed URL as typed by the user"`
	Title *string `json:"title,omitempty" doc:"New title; marks the title as user-provided"`
}

// HasChanges reports whether the edit touches any field
func (r UpdateFeedRequest) HasChanges() bool {
	return r.URL != nil || r.Title != nil
}
