package model

// Special mapping keys that sit alongside the canonical metric keys in a
// ColumnMapping.
const (
	KeyShopNumber   = "shopNumber"
	KeyDistrictName = "districtName"
	KeyRegionName   = "regionName"
	KeyDate         = "date"
)

// ColumnMapping maps canonical metric keys (plus the special keys above) to
// resolved spreadsheet header labels. A missing entry means unmapped.
type ColumnMapping map[string]string

// Column returns the mapped header for key, "" when unmapped.
func (m ColumnMapping) Column(key string) string {
	return m[key]
}

// Preset is a saved mapping + metric selection + goals, keyed by cadence.
type Preset struct {
	ID           string        `json:"id"`
	Cadence      Cadence       `json:"cadence"`
	Title        string        `json:"title"`
	DistrictName string        `json:"districtName,omitempty"`
	Mapping      ColumnMapping `json:"mapping"`
	SelectedKeys []string      `json:"selectedKeys"`
	Goals        GoalMap       `json:"goals"`
	CreatedAt    string        `json:"createdAt,omitempty"`
}

// Diagnostics tallies per-row and per-cell recoveries during normalization.
// Nothing here is fatal; the counts exist so the UI can surface data quality.
type Diagnostics struct {
	RowsIn          int      `json:"rowsIn"`
	RowsOut         int      `json:"rowsOut"`
	RowsSkipped     int      `json:"rowsSkipped"`
	CellsUnparsed   int      `json:"cellsUnparsed"`
	UnmappedMetrics []string `json:"unmappedMetrics,omitempty"`
}
