// ABOUTME: Title resolver fetches a feed URL and turns it into a display title
// ABOUTME: Every transport or parse failure degrades to the domain name, never to an error

package title

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"feedlist-api/core/domain"
	coreerrors "feedlist-api/core/errors"
	"feedlist-api/core/interfaces"
	"golang.org/x/net/html/charset"
)

const (
	// DefaultTimeout bounds a single title fetch
	DefaultTimeout = 15 * time.Second

	// DefaultCacheTTL is how long a detected feed title is remembered
	DefaultCacheTTL = time.Hour

	maxBodySize    = 5 * 1024 * 1024
	cacheKeyPrefix = "title:"
)

var (
	utf8BOM            = []byte("\xef\xbb\xbf")
	xmlDeclPattern     = regexp.MustCompile(`^\s*<\?xml[^>]*\?>`)
	xmlEncodingPattern = regexp.MustCompile(`(?i)(encoding\s*=\s*["'])([^"']*)(["'])`)
)

// RequestHeaders is the browser-like header set sent with every title fetch.
// Many feed hosts block clients that look automated or send cache hints.
var RequestHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Accept":          "application/rss+xml, application/atom+xml, application/xml, text/xml, */*",
	"Accept-Language": "en-US,en;q=0.5",
	"Referer":         "https://www.google.com/",
	"Cache-Control":   "no-cache",
	"Pragma":          "no-cache",
}

// ResolverConfig holds tunables for the resolver
type ResolverConfig struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Resolver implements interfaces.TitleResolver over HTTP
type Resolver struct {
	deps      interfaces.Dependencies
	extractor interfaces.TitleExtractor
	config    ResolverConfig
}

// NewResolver creates a resolver. A nil extractor selects the default cascade.
func NewResolver(deps interfaces.Dependencies, extractor interfaces.TitleExtractor, cfg ResolverConfig) *Resolver {
	if extractor == nil {
		extractor = NewExtractor(WithLogger(deps.Logger))
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	return &Resolver{
		deps:      deps,
		extractor: extractor,
		config:    cfg,
	}
}

// NormalizeURL prefixes https:// when the input has no http(s) scheme
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	lower := strings.ToLower(raw)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return raw
	}
	return "https://" + raw
}

// Domain returns the host of the (normalized) URL without a leading "www.".
// It returns an empty string when the URL cannot be parsed.
func Domain(raw string) string {
	u, err := url.Parse(NormalizeURL(raw))
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// DomainOrInput is the placeholder title shown while detection runs
func DomainOrInput(raw string) string {
	if d := Domain(raw); d != "" {
		return d
	}
	return raw
}

// Resolve fetches rawURL and returns its title. It never returns an error; the worst
// outcome is a title equal to the domain or the input itself.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) domain.TitleResult {
	input := strings.TrimSpace(rawURL)
	feedURL := NormalizeURL(input)
	host := Domain(input)

	if cached, ok := r.cached(ctx, feedURL); ok {
		return cached
	}

	fetchCtx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	resp, err := r.deps.HTTPClient.GetWithHeaders(fetchCtx, feedURL, RequestHeaders)
	if err != nil {
		r.logFailure(&coreerrors.DetectionError{Kind: coreerrors.NetworkFailure, URL: feedURL, Err: err})
		if host != "" {
			return fallback(host)
		}
		return domain.TitleResult{Error: err.Error(), Fallback: true}
	}
	defer resp.Body().Close()

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		r.logFailure(&coreerrors.DetectionError{Kind: coreerrors.HTTPFailure, URL: feedURL, StatusCode: resp.StatusCode()})
		if host != "" {
			return fallback(host)
		}
		return domain.TitleResult{
			Error:      fmt.Sprintf("Failed to fetch feed: %s", resp.Status()),
			StatusCode: resp.StatusCode(),
		}
	}

	contentType := resp.Header("Content-Type")
	body, err := readBody(resp.Body(), contentType)
	if err != nil {
		r.logFailure(&coreerrors.DetectionError{Kind: coreerrors.NetworkFailure, URL: feedURL, Err: err})
		if host != "" {
			return fallback(host)
		}
		return domain.TitleResult{Error: err.Error(), Fallback: true}
	}

	r.logDebug("Title detection response", map[string]interface{}{
		"url":          feedURL,
		"content_type": contentType,
		"bytes":        len(body),
	})

	found := strings.TrimSpace(r.extractor.Extract(body, contentType))
	if found == "" {
		r.logFailure(&coreerrors.DetectionError{Kind: coreerrors.TitleNotFound, URL: feedURL})
		if host != "" {
			return fallback(host)
		}
		return fallback(input)
	}

	result := domain.TitleResult{Title: found, Source: domain.ResolvedFromFeed}
	r.store(ctx, feedURL, result)
	return result
}

func fallback(title string) domain.TitleResult {
	return domain.TitleResult{Title: strings.TrimSpace(title), Source: domain.ResolvedFromDomain}
}

// readBody reads the response and decodes it to UTF-8
func readBody(body io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(io.LimitReader(body, maxBodySize))
	if err != nil {
		return "", err
	}
	return decodeBody(data, contentType), nil
}

// decodeBody trusts a charset from the Content-Type header or a byte order mark.
// Without one, valid UTF-8 is kept as is and anything else is decoded with the
// charset the document itself declares, or windows-1252 when it declares none.
// The XML declaration is rewritten to UTF-8 so parsers do not decode it again.
func decodeBody(data []byte, contentType string) string {
	enc, name, certain := charset.DetermineEncoding(data, contentType)
	if !certain {
		if utf8.Valid(data) {
			return markUTF8(string(bytes.TrimPrefix(data, utf8BOM)))
		}
		if label := declaredXMLEncoding(data); label != "" {
			if e, n := charset.Lookup(label); e != nil {
				enc, name = e, n
			}
		}
	}
	if name != "utf-8" {
		if decoded, err := enc.NewDecoder().Bytes(data); err == nil {
			data = decoded
		}
	}
	return markUTF8(string(bytes.TrimPrefix(data, utf8BOM)))
}

func declaredXMLEncoding(data []byte) string {
	decl := xmlDeclPattern.Find(data)
	if decl == nil {
		return ""
	}
	match := xmlEncodingPattern.FindSubmatch(decl)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(string(match[2]))
}

func markUTF8(body string) string {
	loc := xmlDeclPattern.FindStringIndex(body)
	if loc == nil {
		return body
	}
	decl := xmlEncodingPattern.ReplaceAllString(body[loc[0]:loc[1]], "${1}UTF-8${3}")
	return body[:loc[0]] + decl + body[loc[1]:]
}

type cachedTitle struct {
	Title string `json:"title"`
}

func (r *Resolver) cached(ctx context.Context, feedURL string) (domain.TitleResult, bool) {
	if r.deps.Cache == nil {
		return domain.TitleResult{}, false
	}
	data, err := r.deps.Cache.Get(ctx, cacheKeyPrefix+feedURL)
	if err != nil || data == nil {
		return domain.TitleResult{}, false
	}
	var entry cachedTitle
	if err := json.Unmarshal(data, &entry); err != nil || entry.Title == "" {
		return domain.TitleResult{}, false
	}
	return domain.TitleResult{Title: entry.Title, Source: domain.ResolvedFromFeed}, true
}

// store caches feed-sourced titles only, so blocked hosts get another chance later
func (r *Resolver) store(ctx context.Context, feedURL string, result domain.TitleResult) {
	if r.deps.Cache == nil {
		return
	}
	data, err := json.Marshal(cachedTitle{Title: result.Title})
	if err != nil {
		return
	}
	if err := r.deps.Cache.Set(ctx, cacheKeyPrefix+feedURL, data, r.config.CacheTTL); err != nil {
		r.logDebug("Failed to cache detected title", map[string]interface{}{
			"url":   feedURL,
			"error": err.Error(),
		})
	}
}

func (r *Resolver) logFailure(err *coreerrors.DetectionError) {
	if r.deps.Logger == nil {
		return
	}
	fields := map[string]interface{}{
		"kind":  string(err.Kind),
		"url":   err.URL,
		"error": err.Error(),
	}
	if err.StatusCode != 0 {
		fields["status"] = err.StatusCode
	}
	r.deps.Logger.Warn("Title detection fell back", fields)
}

func (r *Resolver) logDebug(msg string, fields map[string]interface{}) {
	if r.deps.Logger != nil {
		r.deps.Logger.Debug(msg, fields)
	}
}
