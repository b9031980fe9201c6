package importer

import (
	"errors"
	"io"

	"feedlist-api/core/domain"
	"github.com/xuri/excelize/v2"
)

// ParseExcel reads the first worksheet of a workbook with a header row naming url and
// title columns. Only the OOXML (.xlsx) container is understood.
func ParseExcel(r io.Reader) ([]domain.ImportRecord, error) {
	workbook, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}

	rows, err := workbook.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return tableRecords(rows), nil
}
