package importer

import (
	"encoding/csv"
	"io"

	"feedlist-api/core/domain"
)

// ParseCSV reads a CSV file with a header row naming url and title columns
func ParseCSV(r io.Reader) ([]domain.ImportRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return tableRecords(rows), nil
}
