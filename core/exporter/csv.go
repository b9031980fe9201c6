package exporter

import (
	"bytes"
	"encoding/csv"

	"feedlist-api/core/domain"
)

// CSV renders the entries as url,title rows under a header
func CSV(entries []domain.FeedEntry) ([]byte, error) {
	rows, err := exportable(entries)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"url", "title"}); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.url, r.title}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
