// Package workbook turns uploaded spreadsheet bytes into typed rows. Legacy
// .xls files go through the BIFF reader, everything else through excelize.
// Cells are converted to the closed CellValue variant here, at the ingestion
// boundary, so downstream code never sees raw spreadsheet types.
package workbook

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// maxLegacyRows bounds how far the BIFF reader will scan a .xls sheet.
const maxLegacyRows = 100000

// Sheet is one worksheet's typed cells.
type Sheet struct {
	Name string
	Rows [][]model.CellValue
}

// Workbook is the parsed upload.
type Workbook struct {
	Sheets []Sheet
}

// SheetNames returns the sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		names[i] = s.Name
	}
	return names
}

// Sheet returns the named sheet, or nil when absent.
func (w *Workbook) Sheet(name string) *Sheet {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i]
		}
	}
	return nil
}

// Open parses data according to the filename extension. Any parser failure
// wraps ErrUnreadableWorkbook so callers can map it to one client error.
func Open(data []byte, filename string) (*Workbook, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".xls", ".xsl":
		return openLegacy(data)
	default:
		return openOOXML(data)
	}
}

func openLegacy(data []byte) (*Workbook, error) {
	book, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	if book.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: no worksheet found", ErrUnreadableWorkbook)
	}

	name := "Sheet1"
	if sheet := book.GetSheet(0); sheet != nil {
		name = sheet.Name
	}
	raw := book.ReadAllCells(maxLegacyRows)
	return &Workbook{Sheets: []Sheet{{Name: name, Rows: typeRows(raw)}}}, nil
}

func openOOXML(data []byte) (*Workbook, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer func() { _ = file.Close() }()

	names := file.GetSheetList()
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no worksheet found", ErrUnreadableWorkbook)
	}

	wb := &Workbook{Sheets: make([]Sheet, 0, len(names))}
	for _, name := range names {
		raw, err := file.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet %q: %v", ErrUnreadableWorkbook, name, err)
		}
		wb.Sheets = append(wb.Sheets, Sheet{Name: name, Rows: typeRows(raw)})
	}
	return wb, nil
}

// typeRows converts string cells to the closed variant. A cell that parses
// cleanly as a number becomes CellNumber; blanks collapse to CellEmpty.
func typeRows(raw [][]string) [][]model.CellValue {
	rows := make([][]model.CellValue, len(raw))
	for i, rawRow := range raw {
		row := make([]model.CellValue, len(rawRow))
		for j, cell := range rawRow {
			row[j] = typeCell(cell)
		}
		rows[i] = row
	}
	return rows
}

func typeCell(raw string) model.CellValue {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.EmptyCell
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return model.NumberCell(f)
	}
	return model.TextCell(trimmed)
}
