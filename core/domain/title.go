// ABOUTME: Title detection result returned by resolvers
// ABOUTME: Soft failures are carried as values, never as errors

package domain

// ResolvedSource is the provenance reported by a title resolver
type ResolvedSource string

const (
	// ResolvedFromFeed means the title was extracted from the fetched content
	ResolvedFromFeed ResolvedSource = "feed"

	// ResolvedFromDomain means the resolver fell back to the domain name or raw URL
	ResolvedFromDomain ResolvedSource = "domain_fallback"
)

// TitleResult is the outcome of resolving a feed URL to a title
type TitleResult struct {
	Title      string
	Source     ResolvedSource
	Error      string
	StatusCode int
	Fallback   bool
}

// Failed reports whether the resolver could not produce any title
func (r TitleResult) Failed() bool {
	return r.Error != ""
}

// EntrySource maps the resolver provenance onto the stored entry provenance
func (r TitleResult) EntrySource() TitleSource {
	if r.Source == ResolvedFromFeed {
		return TitleSourceFeed
	}
	return TitleSourceDomain
}
