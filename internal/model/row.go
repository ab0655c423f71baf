package model

// Cadence is the reporting frequency bucket a mapping/preset is saved under.
type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
	CadencePeriod  Cadence = "period"
)

// Scope is the grouping granularity for aggregation.
type Scope string

const (
	ScopeShop     Scope = "shop"
	ScopeDistrict Scope = "district"
	ScopeRegion   Scope = "region"
)

// ObjectRow is a parsed spreadsheet row keyed by detected header labels.
type ObjectRow map[string]CellValue

// NormalizedRow is one upload row mapped onto canonical metrics.
// EntityID is always non-empty; rows without a resolvable entity id are
// dropped during normalization, never emitted.
type NormalizedRow struct {
	EntityID     string              `json:"entityId"`
	DistrictName string              `json:"districtName,omitempty"`
	RegionName   string              `json:"regionName,omitempty"`
	Cadence      Cadence             `json:"cadence"`
	DateLabel    string              `json:"dateLabel,omitempty"`
	Metrics      map[string]*float64 `json:"metrics"`
}

// Metric returns the value for key, nil when absent or unparsed.
func (r NormalizedRow) Metric(key string) *float64 {
	return r.Metrics[key]
}

// AggregateRow is a per-scope rollup of contributing NormalizedRows.
// A metric with zero contributing non-nil values stays nil, never 0, so
// callers can tell "no data" from "zero value".
type AggregateRow struct {
	ScopeKey      string              `json:"scopeKey"`
	DisplayName   string              `json:"displayName,omitempty"`
	DistrictName  string              `json:"districtName,omitempty"`
	RegionName    string              `json:"regionName,omitempty"`
	Metrics       map[string]*float64 `json:"metrics"`
	SampleCount   int                 `json:"sampleCount"`
	DaysAvailable int                 `json:"daysAvailable"`
	DaysCounted   int                 `json:"daysCounted"`
}

// Metric returns the aggregate value for key, nil when no data contributed.
func (r AggregateRow) Metric(key string) *float64 {
	return r.Metrics[key]
}

// LeaderboardEntry is one ranked, qualified entity for a single metric.
type LeaderboardEntry struct {
	Rank        int     `json:"rank"`
	EntityID    string  `json:"entityId"`
	DisplayName string  `json:"displayName,omitempty"`
	MetricKey   string  `json:"metricKey"`
	MetricValue float64 `json:"metricValue"`
	SampleCount int     `json:"sampleCount"`
}

// GoalConfig pairs a goal value with its directionality.
type GoalConfig struct {
	Goal      *float64      `json:"goal"`
	Direction GoalDirection `json:"direction"`
}

// GoalMap holds per-metric goals, falling back to the catalog default
// direction when a metric is unset.
type GoalMap map[string]GoalConfig

// DirectionFor resolves the effective direction for a metric key.
func (g GoalMap) DirectionFor(key string) GoalDirection {
	if cfg, ok := g[key]; ok && cfg.Direction != "" {
		return cfg.Direction
	}
	if metric, ok := MetricByKey(key); ok {
		return metric.DefaultDirection
	}
	return DirectionHigher
}

// GoalStatus is the tri-state outcome of comparing an actual to a goal.
type GoalStatus string

const (
	StatusHit     GoalStatus = "hit"
	StatusMiss    GoalStatus = "miss"
	StatusMissing GoalStatus = "missing"
)

// DirectoryEntry decorates an entity id with its hierarchy labels.
type DirectoryEntry struct {
	EntityID     string `json:"entityId"`
	DisplayName  string `json:"displayName"`
	DistrictName string `json:"districtName"`
	RegionName   string `json:"regionName"`
}

// Float returns a pointer to v. Convenience for literals and tests.
func Float(v float64) *float64 {
	return &v
}
