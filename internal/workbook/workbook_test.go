package workbook

import (
	"bytes"
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

func buildTestFile(t *testing.T, cells map[string]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for ref, value := range cells {
		if err := f.SetCellValue("Sheet1", ref, value); err != nil {
			t.Fatalf("set %s: %v", ref, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestOpen_TypesCellsAtBoundary(t *testing.T) {
	t.Parallel()

	data := buildTestFile(t, map[string]any{
		"A1": "Shop", "B1": "Sales",
		"A2": "447", "B2": 1234.5,
		"A3": "511", "B3": "n/a",
	})

	wb, err := Open(data, "upload.xlsx")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if len(wb.Sheets) != 1 {
		t.Fatalf("sheets = %d, want 1", len(wb.Sheets))
	}

	rows := wb.Sheets[0].Rows
	if got := rows[1][0]; got.Kind != model.CellNumber || got.Number != 447 {
		t.Errorf("numeric-looking text should become a number cell, got %+v", got)
	}
	if got := rows[2][1]; got.Kind != model.CellText || got.Text != "n/a" {
		t.Errorf("non-numeric text should stay text, got %+v", got)
	}
}

func TestOpen_GarbageBytes(t *testing.T) {
	t.Parallel()

	_, err := Open([]byte("not a workbook"), "upload.xlsx")
	if !errors.Is(err, ErrUnreadableWorkbook) {
		t.Fatalf("want ErrUnreadableWorkbook, got %v", err)
	}
}

func TestDetectHeaderRow(t *testing.T) {
	t.Parallel()

	row := func(labels ...string) []model.CellValue {
		cells := make([]model.CellValue, len(labels))
		for i, l := range labels {
			cells[i] = model.TextCell(l)
		}
		return cells
	}

	cases := []struct {
		name string
		rows [][]model.CellValue
		want int
	}{
		{"header first", [][]model.CellValue{row("Shop", "Sales")}, 0},
		{"title block above", [][]model.CellValue{
			row("Weekly KPI Report"),
			row(""),
			row("Store #", "Sales"),
		}, 2},
		{"no marker falls back to first row", [][]model.CellValue{row("A", "B"), row("1", "2")}, 0},
		{"empty sheet", nil, -1},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := DetectHeaderRow(tc.rows); got != tc.want {
				t.Fatalf("DetectHeaderRow = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestToObjectRows(t *testing.T) {
	t.Parallel()

	rows := [][]model.CellValue{
		{model.TextCell("Shop"), model.EmptyCell, model.TextCell("Sales"), model.TextCell("Sales")},
		{model.NumberCell(447), model.TextCell("x"), model.NumberCell(100), model.NumberCell(200)},
		{model.EmptyCell, model.EmptyCell, model.EmptyCell, model.EmptyCell},
		{model.NumberCell(511)},
	}

	objs, headers, err := ToObjectRows(rows, 0)
	if err != nil {
		t.Fatalf("ToObjectRows: %v", err)
	}

	wantHeaders := []string{"Shop", "Column 2", "Sales", "Column 4"}
	for i, want := range wantHeaders {
		if headers[i] != want {
			t.Fatalf("headers = %v, want %v", headers, wantHeaders)
		}
	}

	if len(objs) != 2 {
		t.Fatalf("rows out = %d, want 2 (blank row skipped)", len(objs))
	}
	if got := objs[0]["Sales"]; got.Number != 100 {
		t.Errorf("first Sales cell = %+v, want 100", got)
	}
	if got := objs[0]["Column 4"]; got.Number != 200 {
		t.Errorf("duplicate header column = %+v, want 200", got)
	}
	if got := objs[1]["Sales"]; !got.IsEmpty() {
		t.Errorf("short row should pad with empty cells, got %+v", got)
	}
}

func TestToObjectRows_BadHeaderIndex(t *testing.T) {
	t.Parallel()

	_, _, err := ToObjectRows(nil, 0)
	if !errors.Is(err, ErrInvalidHeaderRow) {
		t.Fatalf("want ErrInvalidHeaderRow, got %v", err)
	}
}
