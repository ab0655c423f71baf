// Package exporter renders aggregate rows to CSV and XLSX downloads. Column
// order is fixed by the metric catalog so repeated exports diff cleanly, and
// a missing value exports as a blank cell, never as 0.
package exporter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// Options selects what an export carries.
type Options struct {
	// MetricKeys restricts and orders the metric columns. Nil exports the
	// whole catalog in catalog order.
	MetricKeys []string
	// SheetName names the worksheet in XLSX exports. Defaults to "Summary".
	SheetName string
}

func (o Options) metricKeys() []string {
	if o.MetricKeys != nil {
		return o.MetricKeys
	}
	return model.CatalogKeys()
}

// header builds the fixed column list: identity, hierarchy, sample count,
// then one column per metric labeled from the catalog.
func header(keys []string) []string {
	columns := []string{"Entity", "District", "Region", "Samples"}
	for _, key := range keys {
		label := key
		if metric, ok := model.MetricByKey(key); ok {
			label = metric.Label
		}
		columns = append(columns, label)
	}
	return columns
}

func displayOrKey(row model.AggregateRow) string {
	if row.DisplayName != "" {
		return row.DisplayName
	}
	return row.ScopeKey
}

func record(row model.AggregateRow, keys []string) []string {
	out := []string{
		displayOrKey(row),
		row.DistrictName,
		row.RegionName,
		strconv.Itoa(row.SampleCount),
	}
	for _, key := range keys {
		value := row.Metric(key)
		if value == nil {
			out = append(out, "")
			continue
		}
		out = append(out, strconv.FormatFloat(*value, 'f', -1, 64))
	}
	return out
}

// WriteCSV renders rows as CSV bytes.
func WriteCSV(rows []model.AggregateRow, opts Options) ([]byte, error) {
	keys := opts.metricKeys()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header(keys)); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(record(row, keys)); err != nil {
			return nil, fmt.Errorf("failed to write row %s: %w", row.ScopeKey, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteXLSX renders rows as a single-sheet workbook.
func WriteXLSX(rows []model.AggregateRow, opts Options) ([]byte, error) {
	keys := opts.metricKeys()
	sheet := opts.SheetName
	if sheet == "" {
		sheet = "Summary"
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if sheet != "Sheet1" {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("failed to drop default sheet: %w", err)
		}
	}

	for col, label := range header(keys) {
		ref, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, ref, label); err != nil {
			return nil, err
		}
	}

	for r, row := range rows {
		cells := []interface{}{displayOrKey(row), row.DistrictName, row.RegionName, row.SampleCount}
		for _, key := range keys {
			if value := row.Metric(key); value != nil {
				cells = append(cells, *value)
			} else {
				cells = append(cells, nil)
			}
		}
		for col, value := range cells {
			if value == nil {
				continue
			}
			ref, err := excelize.CoordinatesToCellName(col+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, ref, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
