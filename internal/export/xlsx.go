// Package export serializes the raw diary table to a downloadable workbook.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/diarioapp/diario/internal/domain/diary"
	"github.com/diarioapp/diario/internal/store"
)

const sheetName = "Sheet1"

// Filename is the download name of the snapshot workbook.
const Filename = "diario_snapshot.xlsx"

// ContentType is the MIME type of the produced workbook.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Snapshot writes the raw, pre-normalization table to a single-sheet xlsx
// workbook: header row first, columns in original order, date cells styled
// yyyy-mm-dd. It only produces a byte buffer, no other side effects.
func Snapshot(t store.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("writing header: %w", err)
	}

	dateFmt := "yyyy-mm-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, fmt.Errorf("creating date style: %w", err)
	}

	for i, row := range t.Rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, fmt.Errorf("cell name: %w", err)
			}
			if day, ok := diary.ParseDate(cell); ok {
				if err := f.SetCellValue(sheetName, name, day); err != nil {
					return nil, fmt.Errorf("writing cell %s: %w", name, err)
				}
				if err := f.SetCellStyle(sheetName, name, name, dateStyle); err != nil {
					return nil, fmt.Errorf("styling cell %s: %w", name, err)
				}
				continue
			}
			if err := f.SetCellValue(sheetName, name, cell); err != nil {
				return nil, fmt.Errorf("writing cell %s: %w", name, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
