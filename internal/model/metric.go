package model

// MetricFormat controls how a metric value is rendered downstream.
type MetricFormat string

const (
	FormatNumber   MetricFormat = "number"
	FormatPercent  MetricFormat = "percent"
	FormatCurrency MetricFormat = "currency"
)

// GoalDirection states which direction of change is good for a metric.
type GoalDirection string

const (
	DirectionHigher GoalDirection = "higher"
	DirectionLower  GoalDirection = "lower"
)

// AggregationKind selects sum vs arithmetic mean when rolling rows up.
type AggregationKind string

const (
	AggSum  AggregationKind = "sum"
	AggMean AggregationKind = "mean"
)

// CanonicalMetric is a fixed catalog entry. The catalog is loaded at process
// start and never mutated at runtime.
type CanonicalMetric struct {
	Key              string          `json:"key"`
	Label            string          `json:"label"`
	Format           MetricFormat    `json:"format"`
	Group            string          `json:"group"`
	DefaultDirection GoalDirection   `json:"defaultDirection"`
	Aggregation      AggregationKind `json:"aggregation"`
}

// HigherIsBetter reports the ranking sort order for the metric.
func (m CanonicalMetric) HigherIsBetter() bool {
	return m.DefaultDirection == DirectionHigher
}

// Catalog is the canonical KPI set every upload is mapped onto.
// Cars and sales are flow metrics and aggregate as sums; everything else is a
// rate and aggregates as a mean.
var Catalog = []CanonicalMetric{
	{Key: "cars", Label: "Cars", Format: FormatNumber, Group: "traffic", DefaultDirection: DirectionHigher, Aggregation: AggSum},
	{Key: "sales", Label: "Sales / Net Sales", Format: FormatCurrency, Group: "traffic", DefaultDirection: DirectionHigher, Aggregation: AggSum},
	{Key: "aro", Label: "ARO", Format: FormatCurrency, Group: "traffic", DefaultDirection: DirectionHigher, Aggregation: AggMean},
	{Key: "big4", Label: "Big 4 %", Format: FormatPercent, Group: "controllables", DefaultDirection: DirectionHigher, Aggregation: AggMean},
	{Key: "premiumOil", Label: "Premium Oil", Format: FormatPercent, Group: "controllables", DefaultDirection: DirectionHigher, Aggregation: AggMean},
	{Key: "coolants", Label: "Coolants %", Format: FormatPercent, Group: "controllables", DefaultDirection: DirectionHigher, Aggregation: AggMean},
	{Key: "diff", Label: "Diff %", Format: FormatPercent, Group: "controllables", DefaultDirection: DirectionHigher, Aggregation: AggMean},
	{Key: "wipers", Label: "Wipers %", Format: FormatPercent, Group: "addOns", DefaultDirection: DirectionHigher, Aggregation: AggMean},
	{Key: "air", Label: "Air %", Format: FormatPercent, Group: "addOns", DefaultDirection: DirectionHigher, Aggregation: AggMean},
	{Key: "cabin", Label: "Cabin %", Format: FormatPercent, Group: "addOns", DefaultDirection: DirectionHigher, Aggregation: AggMean},
	{Key: "nps", Label: "NPS", Format: FormatNumber, Group: "experience", DefaultDirection: DirectionHigher, Aggregation: AggMean},
	{Key: "discounts", Label: "Discounts %", Format: FormatPercent, Group: "discounts", DefaultDirection: DirectionLower, Aggregation: AggMean},
}

var catalogByKey = func() map[string]CanonicalMetric {
	m := make(map[string]CanonicalMetric, len(Catalog))
	for _, metric := range Catalog {
		m[metric.Key] = metric
	}
	return m
}()

// MetricByKey looks up a catalog entry.
func MetricByKey(key string) (CanonicalMetric, bool) {
	m, ok := catalogByKey[key]
	return m, ok
}

// PercentMetricKeys returns the set of percent-formatted metric keys.
func PercentMetricKeys() map[string]bool {
	keys := make(map[string]bool)
	for _, metric := range Catalog {
		if metric.Format == FormatPercent {
			keys[metric.Key] = true
		}
	}
	return keys
}

// CatalogKeys returns the catalog keys in stable catalog order.
func CatalogKeys() []string {
	keys := make([]string, 0, len(Catalog))
	for _, metric := range Catalog {
		keys = append(keys, metric.Key)
	}
	return keys
}
