package dataset

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX loads one sheet of an .xlsx workbook into a Table. A non-empty
// sheetName wins over sheetIndex; sheetIndex is 1-based (Sheet1 == 1) and
// defaults to the first sheet when out of range.
func ReadXLSX(path, sheetName string, sheetIndex int, opt Options) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", filepath.Base(path))
	}
	target := ""
	if sheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, sheetName) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("sheet %q not found in workbook %s (available: %s)",
				sheetName, filepath.Base(path), strings.Join(sheets, ", "))
		}
	} else {
		idx := sheetIndex
		if idx < 1 || idx > len(sheets) {
			idx = 1
		}
		target = sheets[idx-1]
	}

	raw, err := f.GetRows(target)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", target, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty dataset: sheet %q in %s", target, filepath.Base(path))
	}
	header := raw[0]
	maxRows := opt.MaxRows
	if maxRows <= 0 {
		maxRows = int(^uint(0) >> 1)
	}
	body := raw[1:]
	if len(body) > maxRows {
		body = body[:maxRows]
	}
	rows := make([][]Value, 0, len(body))
	for _, rec := range body {
		row := make([]Value, len(rec))
		for i, cell := range rec {
			row[i] = opt.parseCell(cell)
		}
		rows = append(rows, row)
	}
	name := filepath.Base(path)
	if sheetName != "" {
		name = fmt.Sprintf("%s (sheet: %s)", name, target)
	}
	return New(name, header, rows)
}
