// Package recognition evaluates award rules over a period's shop dataset and
// produces ranked winner lists for the district award show.
package recognition

import "time"

// MetricFormat controls winner value rendering.
type MetricFormat string

const (
	FormatCurrency MetricFormat = "currency"
	FormatPercent  MetricFormat = "percent"
	FormatInteger  MetricFormat = "integer"
	FormatDecimal  MetricFormat = "decimal"
)

// MetricDef describes one metric in the recognition namespace. Recognition
// uploads carry period-level fields (growth, retention, safety) that the
// KPI catalog does not, so the namespace is separate on purpose.
type MetricDef struct {
	Key            string       `json:"key"`
	Label          string       `json:"label"`
	Description    string       `json:"description,omitempty"`
	Format         MetricFormat `json:"format"`
	Precision      int          `json:"precision,omitempty"`
	HigherIsBetter bool         `json:"higherIsBetter"`
}

// Comparison is a qualifier operator.
type Comparison string

const (
	CompareGTE Comparison = "gte"
	CompareLTE Comparison = "lte"
	CompareEQ  Comparison = "eq"
	CompareNEQ Comparison = "neq"
)

// Qualifier is one gate a row must pass before it can win an award.
// A row missing the referenced metric fails the gate.
type Qualifier struct {
	MetricKey  string     `json:"metricKey"`
	Comparison Comparison `json:"comparison"`
	Value      float64    `json:"value"`
	Label      string     `json:"label,omitempty"`
}

// SortDirection orders candidates by the rule metric.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// Rule selects and orders award candidates.
type Rule struct {
	ID               string        `json:"id"`
	MetricKey        string        `json:"metricKey"`
	Direction        SortDirection `json:"direction"`
	TopN             int           `json:"topN"`
	MinValue         *float64      `json:"minValue,omitempty"`
	Qualifiers       []Qualifier   `json:"qualifiers,omitempty"`
	DeltaMetricKey   string        `json:"deltaMetricKey,omitempty"`
	TieBreakerMetric string        `json:"tieBreakerMetric,omitempty"`
}

// AwardConfig is a named award backed by a rule.
type AwardConfig struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Narrative   string `json:"narrative,omitempty"`
	Rule        Rule   `json:"rule"`
}

// DatasetRow is one shop's period snapshot in the recognition namespace.
// A nil metric means the upload did not carry it.
type DatasetRow struct {
	ShopNumber   int                 `json:"shopNumber"`
	ShopName     string              `json:"shopName"`
	ManagerName  string              `json:"managerName"`
	DistrictName string              `json:"districtName"`
	RegionName   string              `json:"regionName"`
	Metrics      map[string]*float64 `json:"metrics"`
}

// Winner is one ranked award recipient.
type Winner struct {
	Rank             int      `json:"rank"`
	ShopNumber       int      `json:"shopNumber"`
	ShopName         string   `json:"shopName"`
	ManagerName      string   `json:"managerName"`
	MetricKey        string   `json:"metricKey"`
	MetricValue      float64  `json:"metricValue"`
	DeltaMetricKey   string   `json:"deltaMetricKey,omitempty"`
	DeltaMetricValue *float64 `json:"deltaMetricValue,omitempty"`
	DistrictName     string   `json:"districtName,omitempty"`
	RegionName       string   `json:"regionName,omitempty"`
}

// AwardResult pairs an award with its winners for one evaluation run.
type AwardResult struct {
	AwardID     string   `json:"awardId"`
	AwardLabel  string   `json:"awardLabel"`
	Description string   `json:"description"`
	Winners     []Winner `json:"winners"`
}

// ProcessingSummary captures run-level stats shown on the award show cover.
type ProcessingSummary struct {
	ProcessedAt     time.Time `json:"processedAt"`
	ProcessedBy     string    `json:"processedBy"`
	ReportingPeriod string    `json:"reportingPeriod"`
	DataSource      string    `json:"dataSource"`
	RowCount        int       `json:"rowCount"`
	MedianCarCount  int       `json:"medianCarCount"`
	AverageTicket   int       `json:"averageTicket"`
}
