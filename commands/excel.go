package commands

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// sheet is one worksheet of a history snapshot.
type sheet struct {
	name    string
	headers []string
	rows    [][]any
}

// workbook renders the sheets into an .xlsx file. The first sheet replaces
// the default one so the workbook never carries an empty 'Sheet1'.
func workbook(sheets []sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return nil, fmt.Errorf("renaming sheet %v: %w", s.name, err)
			}
		} else {
			if _, err := f.NewSheet(s.name); err != nil {
				return nil, fmt.Errorf("adding sheet %v: %w", s.name, err)
			}
		}

		headers := make([]any, len(s.headers))
		for j, h := range s.headers {
			headers[j] = h
		}

		if err := f.SetSheetRow(s.name, "A1", &headers); err != nil {
			return nil, fmt.Errorf("writing headers of sheet %v: %w", s.name, err)
		}

		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return nil, fmt.Errorf("sheet %v row %v: %w", s.name, r+2, err)
			}

			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return nil, fmt.Errorf("writing sheet %v row %v: %w", s.name, r+2, err)
			}
		}
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("rendering workbook: %w", err)
	}

	return buffer.Bytes(), nil
}
