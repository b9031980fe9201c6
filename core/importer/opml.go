package importer

import (
	"io"
	"strings"

	"feedlist-api/core/domain"
	"github.com/antchfx/xmlquery"
)

const outlineQuery = "//outline[@type='rss' or @xmlUrl]"

// ParseOPML collects feed outlines at any depth. Outlines without an xmlUrl are skipped;
// the title comes from the title attribute, then text.
func ParseOPML(r io.Reader) ([]domain.ImportRecord, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, err
	}

	outlines, err := xmlquery.QueryAll(doc, outlineQuery)
	if err != nil {
		return nil, err
	}

	var records []domain.ImportRecord
	for _, outline := range outlines {
		url := strings.TrimSpace(outline.SelectAttr("xmlUrl"))
		if url == "" {
			continue
		}
		title := outline.SelectAttr("title")
		if strings.TrimSpace(title) == "" {
			title = outline.SelectAttr("text")
		}
		records = append(records, domain.ImportRecord{URL: url, Title: strings.TrimSpace(title)})
	}
	return records, nil
}
