// ABOUTME: Importer turns uploaded subscription files into flat feed records
// ABOUTME: Dispatches on file extension to the CSV, Excel and OPML parsers

package importer

import (
	"bytes"
	"path/filepath"
	"strings"

	"feedlist-api/core/domain"
	coreerrors "feedlist-api/core/errors"
)

// Format is a supported import file format
type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
	FormatOPML  Format = "opml"
)

var formatsByExtension = map[string]Format{
	"csv":  FormatCSV,
	"xlsx": FormatExcel,
	"xls":  FormatExcel,
	"opml": FormatOPML,
	"xml":  FormatOPML,
}

// DetectFormat maps a filename to its import format by extension
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	format, ok := formatsByExtension[ext]
	if !ok {
		return "", &coreerrors.ImportError{
			Kind:     coreerrors.UnsupportedFormat,
			Filename: filename,
			Message:  "unsupported file format, please use CSV, Excel or OPML",
		}
	}
	return format, nil
}

// Import parses data according to the filename's extension. It returns an ImportError
// when the format is unsupported, the file cannot be parsed, or it holds no feeds.
func Import(filename string, data []byte) ([]domain.ImportRecord, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	var records []domain.ImportRecord
	switch format {
	case FormatCSV:
		records, err = ParseCSV(bytes.NewReader(data))
	case FormatExcel:
		records, err = ParseExcel(bytes.NewReader(data))
	case FormatOPML:
		records, err = ParseOPML(bytes.NewReader(data))
	}
	if err != nil {
		return nil, &coreerrors.ImportError{
			Kind:     coreerrors.MalformedFile,
			Filename: filename,
			Message:  "could not parse " + string(format) + " file",
			Err:      err,
		}
	}

	if len(records) == 0 {
		return nil, &coreerrors.ImportError{
			Kind:     coreerrors.EmptyImport,
			Filename: filename,
			Message:  "no valid feeds found in file",
		}
	}
	return records, nil
}

// tableRecords maps a header row plus data rows onto records. The url and title columns
// are located case-insensitively; rows without a URL are dropped.
func tableRecords(rows [][]string) []domain.ImportRecord {
	if len(rows) == 0 {
		return nil
	}

	urlCol, titleCol := -1, -1
	for i, name := range rows[0] {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch {
		case name == "url" && urlCol < 0:
			urlCol = i
		case name == "title" && titleCol < 0:
			titleCol = i
		}
	}
	if urlCol < 0 {
		return nil
	}

	records := make([]domain.ImportRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		url := strings.TrimSpace(cell(row, urlCol))
		if url == "" {
			continue
		}
		records = append(records, domain.ImportRecord{
			URL:   url,
			Title: strings.TrimSpace(cell(row, titleCol)),
		})
	}
	return records
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}
