// Package spreadsheet reads wallet classification input from xlsx workbooks.
package spreadsheet

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

// XLSXSource implements ports.RowSource over an xlsx file on disk. The file is
// opened on every Rows call so an ingestion run always sees the file as it is
// at that moment.
type XLSXSource struct {
	path string
	log  zerolog.Logger
}

// NewXLSXSource creates a row source backed by the workbook at path.
func NewXLSXSource(path string, log zerolog.Logger) *XLSXSource {
	return &XLSXSource{path: path, log: log}
}

// Rows returns every cell row of the workbook's first sheet, header included.
// Cells are returned as raw strings; date cells keep their serial form.
func (s *XLSXSource) Rows(ctx context.Context) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.path, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("opening workbook %s: %w", s.path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.log.Warn().Err(cerr).Str("path", s.path).Msg("failed to close workbook")
		}
	}()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("workbook %s has no sheets", s.path)
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}

	s.log.Debug().
		Str("path", s.path).
		Str("sheet", sheet).
		Int("rows", len(rows)).
		Msg("workbook loaded")

	return rows, nil
}
