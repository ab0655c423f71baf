package workbook

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// Errors surfaced to the upload handler. Both map to client-side problems,
// not server faults.
var (
	ErrUnreadableWorkbook = errors.New("workbook could not be parsed")
	ErrInvalidHeaderRow   = errors.New("header row index out of range")
)

// headerScanWindow is how many leading rows DetectHeaderRow inspects before
// falling back to the first row. Exports rarely bury the header deeper than
// a title block plus a filter echo.
const headerScanWindow = 8

// DetectHeaderRow finds the most likely header row: the first row within the
// scan window containing a cell mentioning "shop" or "store". Falls back to
// row 0 when the sheet has rows, -1 when it is empty.
func DetectHeaderRow(rows [][]model.CellValue) int {
	limit := len(rows)
	if limit > headerScanWindow {
		limit = headerScanWindow
	}
	for i := 0; i < limit; i++ {
		for _, cell := range rows[i] {
			label := strings.ToLower(cell.String())
			if strings.Contains(label, "shop") || strings.Contains(label, "store") {
				return i
			}
		}
	}
	if len(rows) > 0 {
		return 0
	}
	return -1
}

// ToObjectRows converts the sheet below headerIdx into keyed rows. Blank or
// duplicate header labels get positional "Column N" names so no data column
// is silently dropped. Rows with no non-empty cells are skipped.
func ToObjectRows(rows [][]model.CellValue, headerIdx int) ([]model.ObjectRow, []string, error) {
	if headerIdx < 0 || headerIdx >= len(rows) {
		return nil, nil, ErrInvalidHeaderRow
	}

	headers := headerLabels(rows[headerIdx])

	out := make([]model.ObjectRow, 0, len(rows)-headerIdx-1)
	for _, row := range rows[headerIdx+1:] {
		obj := make(model.ObjectRow, len(headers))
		empty := true
		for j, label := range headers {
			cell := model.EmptyCell
			if j < len(row) {
				cell = row[j]
			}
			if !cell.IsEmpty() {
				empty = false
			}
			obj[label] = cell
		}
		if empty {
			continue
		}
		out = append(out, obj)
	}
	return out, headers, nil
}

// headerLabels renders the header cells, substituting "Column N" (1-based)
// for blanks and de-duplicating repeats.
func headerLabels(row []model.CellValue) []string {
	labels := make([]string, len(row))
	seen := make(map[string]bool, len(row))
	for i, cell := range row {
		label := strings.TrimSpace(cell.String())
		if label == "" || seen[label] {
			label = fmt.Sprintf("Column %d", i+1)
		}
		seen[label] = true
		labels[i] = label
	}
	return labels
}
