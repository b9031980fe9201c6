// ABOUTME: Title extractor runs an ordered cascade of strategies over a fetched document
// ABOUTME: Handles RSS, Atom, RDF and JSON feeds before falling back to HTML page titles

package title

import (
	"regexp"
	"strings"

	coreerrors "feedlist-api/core/errors"
	"feedlist-api/core/interfaces"
	htmlutil "feedlist-api/pkg/utils/html"
	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/xmlquery"
	"github.com/mmcdole/gofeed"
)

var (
	cdataPattern        = regexp.MustCompile(`(?s)<!\[CDATA\[(.*?)\]\]>`)
	channelTitlePattern = regexp.MustCompile(`(?i)<channel>[\s\S]*?<title>([\s\S]*?)</title>`)
	anyTitlePattern     = regexp.MustCompile(`(?i)<title>([\s\S]*?)</title>`)
)

// feedSelectors are tried in order against the parsed XML tree. The most specific
// container comes first.
var feedSelectors = []string{
	"//channel/title",
	"//rss/channel/title",
	"//feed/title",
	"//rdf:RDF/channel/title",
	"//rdf:rdf/channel/title",
	"//title",
}

// strategy is one independent attempt at finding a title
type strategy struct {
	name    string
	attempt func(doc *document) string
}

// Extractor pulls a human readable title out of a feed or web page
type Extractor struct {
	logger         interfaces.Logger
	jsonFeedTitles bool
	feedStrategies []strategy
	pageStrategies []strategy
}

// ExtractorOption configures an Extractor
type ExtractorOption func(*Extractor)

// WithLogger sets the logger used to report swallowed parse failures
func WithLogger(logger interfaces.Logger) ExtractorOption {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithJSONFeedTitles toggles title extraction from JSON Feed documents
func WithJSONFeedTitles(enabled bool) ExtractorOption {
	return func(e *Extractor) {
		e.jsonFeedTitles = enabled
	}
}

// NewExtractor creates an extractor with the default strategy cascade
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{jsonFeedTitles: true}
	for _, opt := range opts {
		opt(e)
	}

	e.feedStrategies = []strategy{
		{name: "xml", attempt: e.fromXML},
		{name: "json_feed", attempt: e.fromJSONFeed},
	}
	e.pageStrategies = []strategy{
		{name: "html_title", attempt: e.fromHTMLTitle},
		{name: "og_title", attempt: e.fromMeta(`meta[property="og:title"]`)},
		{name: "twitter_title", attempt: e.fromMeta(`meta[name="twitter:title"]`)},
	}
	return e
}

// Extract returns the best title found in body, or an empty string.
// It never fails: a strategy that cannot parse the body simply yields nothing.
func (e *Extractor) Extract(body string, contentType string) string {
	doc := &document{body: body, contentType: contentType}

	if title := e.run(e.feedStrategies, doc); title != "" {
		return title
	}
	return e.run(e.pageStrategies, doc)
}

// IsFeedLike reports whether a document should be treated as syndication XML
func IsFeedLike(body string, contentType string) bool {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "xml") || strings.Contains(ct, "rss") || strings.Contains(ct, "atom") {
		return true
	}
	return strings.Contains(body, "<rss") || strings.Contains(body, "<feed") || strings.Contains(body, "<?xml")
}

func (e *Extractor) run(strategies []strategy, doc *document) string {
	for _, s := range strategies {
		if title := cleanTitle(s.attempt(doc)); title != "" {
			return title
		}
	}
	return ""
}

// fromXML walks the feed selectors, then the channel pattern, and finally a plain
// <title> regex when the document is not well-formed XML.
func (e *Extractor) fromXML(doc *document) string {
	if !IsFeedLike(doc.body, doc.contentType) {
		return ""
	}

	root, err := doc.xml()
	if err != nil {
		e.parseFailure("xml", err)
		return firstSubmatch(anyTitlePattern, doc.body)
	}

	for _, selector := range feedSelectors {
		node, err := xmlquery.Query(root, selector)
		if err != nil || node == nil {
			continue
		}
		if title := cleanTitle(node.InnerText()); title != "" {
			return title
		}
	}

	if strings.Contains(doc.body, "<channel>") && strings.Contains(doc.body, "<title>") {
		return firstSubmatch(channelTitlePattern, doc.body)
	}
	return ""
}

func (e *Extractor) fromJSONFeed(doc *document) string {
	if !e.jsonFeedTitles {
		return ""
	}
	if gofeed.DetectFeedType(strings.NewReader(doc.body)) != gofeed.FeedTypeJSON {
		return ""
	}

	feed, err := gofeed.NewParser().ParseString(doc.body)
	if err != nil {
		e.parseFailure("json_feed", err)
		return ""
	}
	return feed.Title
}

func (e *Extractor) fromHTMLTitle(doc *document) string {
	page, err := doc.html()
	if err != nil {
		e.parseFailure("html", err)
		return ""
	}
	return page.Find("title").First().Text()
}

func (e *Extractor) fromMeta(selector string) func(doc *document) string {
	return func(doc *document) string {
		page, err := doc.html()
		if err != nil {
			return ""
		}
		content, _ := page.Find(selector).First().Attr("content")
		return content
	}
}

func (e *Extractor) parseFailure(parser string, err error) {
	if e.logger == nil {
		return
	}
	e.logger.Debug("Title extraction parser failed", map[string]interface{}{
		"kind":   string(coreerrors.ParseFailure),
		"parser": parser,
		"error":  err.Error(),
	})
}

// cleanTitle strips CDATA markers and folds whitespace
func cleanTitle(s string) string {
	return htmlutil.CollapseWhitespace(cdataPattern.ReplaceAllString(s, "$1"))
}

func firstSubmatch(pattern *regexp.Regexp, body string) string {
	match := pattern.FindStringSubmatch(body)
	if len(match) < 2 {
		return ""
	}
	// regex matches are raw markup, unlike parser output
	return htmlutil.StripTags(cleanTitle(match[1]))
}

// document lazily parses the body once per parser
type document struct {
	body        string
	contentType string

	xmlParsed bool
	xmlRoot   *xmlquery.Node
	xmlErr    error

	htmlParsed bool
	htmlDoc    *goquery.Document
	htmlErr    error
}

func (d *document) xml() (*xmlquery.Node, error) {
	if !d.xmlParsed {
		d.xmlRoot, d.xmlErr = xmlquery.Parse(strings.NewReader(d.body))
		d.xmlParsed = true
	}
	return d.xmlRoot, d.xmlErr
}

func (d *document) html() (*goquery.Document, error) {
	if !d.htmlParsed {
		d.htmlDoc, d.htmlErr = goquery.NewDocumentFromReader(strings.NewReader(d.body))
		d.htmlParsed = true
	}
	return d.htmlDoc, d.htmlErr
}
