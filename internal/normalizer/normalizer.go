// Package normalizer maps parsed spreadsheet rows onto the canonical metric
// shape. All the messy coercion lives here: currency symbols, thousands
// separators, percent signs, accounting-style negatives, and the wholly
// ambiguous "is 85 a fraction or a whole-number percent" question.
package normalizer

import (
	"strconv"
	"strings"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// PercentScale selects how percent-formatted metrics are interpreted.
type PercentScale int

const (
	// ScaleAuto treats parsed values above 1 as whole-number percents and
	// divides them by 100. Values at or below 1 pass through unchanged.
	ScaleAuto PercentScale = iota
	// ScaleAsFraction passes every value through unchanged.
	ScaleAsFraction
	// ScaleAsWholeNumber divides every value by 100.
	ScaleAsWholeNumber
)

// Options tunes normalization behavior.
type Options struct {
	PercentScale PercentScale
}

// Normalize projects object rows through the column mapping into canonical
// rows. Rows without a resolvable entity id are dropped and counted; cells
// that fail numeric coercion become nil and are counted. Output order follows
// input order; re-running on its own output shape is a no-op.
func Normalize(rows []model.ObjectRow, mapping model.ColumnMapping, selectedKeys []string, cadence model.Cadence, opts Options) ([]model.NormalizedRow, model.Diagnostics) {
	diag := model.Diagnostics{RowsIn: len(rows)}
	percentKeys := model.PercentMetricKeys()

	for _, key := range selectedKeys {
		if mapping.Column(key) == "" {
			diag.UnmappedMetrics = append(diag.UnmappedMetrics, key)
		}
	}

	shopCol := mapping.Column(model.KeyShopNumber)
	districtCol := mapping.Column(model.KeyDistrictName)
	regionCol := mapping.Column(model.KeyRegionName)
	dateCol := mapping.Column(model.KeyDate)

	out := make([]model.NormalizedRow, 0, len(rows))
	for _, row := range rows {
		entityID := entityLabel(row[shopCol])
		if entityID == "" {
			diag.RowsSkipped++
			continue
		}

		nr := model.NormalizedRow{
			EntityID:     entityID,
			DistrictName: strings.TrimSpace(row[districtCol].String()),
			RegionName:   strings.TrimSpace(row[regionCol].String()),
			Cadence:      cadence,
			DateLabel:    strings.TrimSpace(row[dateCol].String()),
			Metrics:      make(map[string]*float64, len(selectedKeys)),
		}

		for _, key := range selectedKeys {
			col := mapping.Column(key)
			if col == "" {
				nr.Metrics[key] = nil
				continue
			}
			cell := row[col]
			value, ok := CoerceNumber(cell)
			if !ok {
				if !cell.IsEmpty() {
					diag.CellsUnparsed++
				}
				nr.Metrics[key] = nil
				continue
			}
			if percentKeys[key] {
				value = scalePercent(value, opts.PercentScale)
			}
			nr.Metrics[key] = &value
		}

		out = append(out, nr)
		diag.RowsOut++
	}
	return out, diag
}

// entityLabel renders the shop cell as a stable id. Numeric cells drop any
// fractional formatting so 447 and 447.0 collapse to the same entity.
func entityLabel(cell model.CellValue) string {
	if cell.Kind == model.CellNumber {
		return strconv.FormatFloat(cell.Number, 'f', -1, 64)
	}
	return strings.TrimSpace(cell.Text)
}

// CoerceNumber extracts a float from a cell. Text cells are cleaned of
// currency symbols, thousands separators, percent signs, and whitespace;
// accounting-style "(123)" parses as -123. Empty and unparseable cells
// report ok=false.
func CoerceNumber(cell model.CellValue) (float64, bool) {
	switch cell.Kind {
	case model.CellNumber:
		return cell.Number, true
	case model.CellText:
		return parseNumericText(cell.Text)
	default:
		return 0, false
	}
}

func parseNumericText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '$', ',', '%', ' ', '\u00a0':
			return -1
		}
		return r
	}, s)
	if cleaned == "" {
		return 0, false
	}

	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		f = -f
	}
	return f, true
}

func scalePercent(v float64, scale PercentScale) float64 {
	switch scale {
	case ScaleAsFraction:
		return v
	case ScaleAsWholeNumber:
		return v / 100
	default:
		if v > 1 {
			return v / 100
		}
		return v
	}
}
