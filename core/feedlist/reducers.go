package feedlist

import (
	"strings"

	"feedlist-api/core/domain"
)

// Edit is a user edit of an entry. Nil fields are left alone.
type Edit struct {
	URL   *string
	Title *string
}

// Reset returns the default list: a single empty entry
func Reset() []domain.FeedEntry {
	return []domain.FeedEntry{domain.NewFeedEntry()}
}

// AddEntry appends entry to the list
func AddEntry(entries []domain.FeedEntry, entry domain.FeedEntry) []domain.FeedEntry {
	return append(entries, entry)
}

// RemoveEntry drops the entry with the given id. The last remaining entry is cleared
// instead of removed so the list never becomes empty.
func RemoveEntry(entries []domain.FeedEntry, id string) []domain.FeedEntry {
	i := indexOf(entries, id)
	if i < 0 {
		return entries
	}
	if len(entries) == 1 {
		return []domain.FeedEntry{{ID: id}}
	}
	return append(entries[:i:i], entries[i+1:]...)
}

// EditEntry applies a user edit. A title edit makes the title user-provided; a URL edit
// discards a title that was not user-provided.
func EditEntry(entries []domain.FeedEntry, id string, edit Edit) []domain.FeedEntry {
	next, _ := PatchEntry(entries, id, func(e *domain.FeedEntry) bool {
		if edit.URL != nil {
			e.URL = *edit.URL
			if !e.HasUserTitle() {
				e.Title = ""
				e.TitleSource = domain.TitleSourceUnset
			}
		}
		if edit.Title != nil {
			e.Title = *edit.Title
			e.TitleSource = domain.TitleSourceUser
		}
		return edit.URL != nil || edit.Title != nil
	})
	return next
}

// PatchEntry applies fn to the entry with the given id and reports whether it was found
func PatchEntry(entries []domain.FeedEntry, id string, fn func(entry *domain.FeedEntry) bool) ([]domain.FeedEntry, bool) {
	i := indexOf(entries, id)
	if i < 0 {
		return entries, false
	}
	entry := entries[i]
	if !fn(&entry) {
		return entries, true
	}
	entries[i] = entry
	return entries, true
}

// MergeImported replaces a pristine list with the imported entries, otherwise appends them
func MergeImported(entries []domain.FeedEntry, imported []domain.FeedEntry) []domain.FeedEntry {
	if len(imported) == 0 {
		return entries
	}
	if IsPristine(entries) {
		return imported
	}
	return append(entries, imported...)
}

// IsPristine reports whether the list is the single untouched default entry
func IsPristine(entries []domain.FeedEntry) bool {
	return len(entries) == 1 && entries[0].IsBlank()
}

// NeedingDetection returns the entries detect-all should queue
func NeedingDetection(entries []domain.FeedEntry) []domain.FeedEntry {
	var out []domain.FeedEntry
	for _, e := range entries {
		if e.NeedsDetection() {
			out = append(out, e)
		}
	}
	return out
}

// ShouldDetectOnBlur reports whether leaving the URL field should trigger detection:
// the typed URL differs from the stored one after trimming, or the title is empty.
func ShouldDetectOnBlur(entry domain.FeedEntry, typedURL string) bool {
	trimmed := strings.TrimSpace(typedURL)
	if trimmed == "" {
		return false
	}
	return entry.URL != trimmed || entry.Title == ""
}

func indexOf(entries []domain.FeedEntry, id string) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
