package exporter

import (
	"encoding/xml"

	"feedlist-api/core/domain"
)

const opmlTitle = "RSS Subscriptions"

type opmlDocument struct {
	XMLName xml.Name `xml:"opml"`
	Version string   `xml:"version,attr"`
	Head    opmlHead `xml:"head"`
	Body    opmlBody `xml:"body"`
}

type opmlHead struct {
	Title string `xml:"title"`
}

type opmlBody struct {
	Outlines []opmlOutline `xml:"outline"`
}

type opmlOutline struct {
	Type   string `xml:"type,attr"`
	Text   string `xml:"text,attr"`
	Title  string `xml:"title,attr"`
	XMLURL string `xml:"xmlUrl,attr"`
}

// OPML renders the entries as an OPML 1.0 document
func OPML(entries []domain.FeedEntry) ([]byte, error) {
	rows, err := exportable(entries)
	if err != nil {
		return nil, err
	}

	doc := opmlDocument{
		Version: "1.0",
		Head:    opmlHead{Title: opmlTitle},
	}
	for _, r := range rows {
		doc.Body.Outlines = append(doc.Body.Outlines, opmlOutline{
			Type:   "rss",
			Text:   r.title,
			Title:  r.title,
			XMLURL: r.url,
		})
	}

	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}
