package recognition

import (
	"math"
	"sort"
	"time"
)

// Evaluate runs every award over the dataset. A nil award slate falls back
// to DefaultAwards. Identical inputs always yield identical winner lists.
func Evaluate(dataset []DatasetRow, awards []AwardConfig) []AwardResult {
	if awards == nil {
		awards = DefaultAwards
	}
	results := make([]AwardResult, len(awards))
	for i, config := range awards {
		results[i] = AwardResult{
			AwardID:     config.ID,
			AwardLabel:  config.Label,
			Description: config.Description,
			Winners:     winners(config.Rule, dataset),
		}
	}
	return results
}

func winners(rule Rule, dataset []DatasetRow) []Winner {
	candidates := make([]DatasetRow, 0, len(dataset))
	for _, row := range dataset {
		value := row.Metrics[rule.MetricKey]
		if value == nil {
			continue
		}
		if rule.MinValue != nil && *value < *rule.MinValue {
			continue
		}
		if !passesQualifiers(row, rule.Qualifiers) {
			continue
		}
		candidates = append(candidates, row)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		av, bv := *a.Metrics[rule.MetricKey], *b.Metrics[rule.MetricKey]
		if av != bv {
			if rule.Direction == SortAsc {
				return av < bv
			}
			return av > bv
		}
		if rule.TieBreakerMetric != "" {
			at := metricOrZero(a, rule.TieBreakerMetric)
			bt := metricOrZero(b, rule.TieBreakerMetric)
			if at != bt {
				if rule.Direction == SortAsc {
					return at < bt
				}
				return at > bt
			}
		}
		// Shop number keeps reruns stable when everything else ties.
		return a.ShopNumber < b.ShopNumber
	})

	if rule.TopN > 0 && len(candidates) > rule.TopN {
		candidates = candidates[:rule.TopN]
	}

	out := make([]Winner, len(candidates))
	for i, row := range candidates {
		w := Winner{
			Rank:         i + 1,
			ShopNumber:   row.ShopNumber,
			ShopName:     row.ShopName,
			ManagerName:  row.ManagerName,
			MetricKey:    rule.MetricKey,
			MetricValue:  *row.Metrics[rule.MetricKey],
			DistrictName: row.DistrictName,
			RegionName:   row.RegionName,
		}
		if rule.DeltaMetricKey != "" {
			w.DeltaMetricKey = rule.DeltaMetricKey
			w.DeltaMetricValue = row.Metrics[rule.DeltaMetricKey]
		}
		out[i] = w
	}
	return out
}

func passesQualifiers(row DatasetRow, qualifiers []Qualifier) bool {
	for _, q := range qualifiers {
		value := row.Metrics[q.MetricKey]
		if value == nil {
			return false
		}
		switch q.Comparison {
		case CompareGTE:
			if *value < q.Value {
				return false
			}
		case CompareLTE:
			if *value > q.Value {
				return false
			}
		case CompareEQ:
			if *value != q.Value {
				return false
			}
		case CompareNEQ:
			if *value == q.Value {
				return false
			}
		}
	}
	return true
}

func metricOrZero(row DatasetRow, key string) float64 {
	if v := row.Metrics[key]; v != nil {
		return *v
	}
	return 0
}

// SummaryOptions overrides the defaults baked into BuildSummary.
type SummaryOptions struct {
	ReportingPeriod string
	DataSource      string
	ProcessedBy     string
	ProcessedAt     time.Time
}

// BuildSummary computes the cover-page stats for a dataset: median car
// count and average ticket, both rounded to whole numbers.
func BuildSummary(dataset []DatasetRow, opts SummaryOptions) ProcessingSummary {
	cars := make([]float64, 0, len(dataset))
	var ticketSum float64
	for _, row := range dataset {
		cars = append(cars, metricOrZero(row, "carCount"))
		ticketSum += metricOrZero(row, "ticket")
	}
	sort.Float64s(cars)

	var median float64
	if n := len(cars); n > 0 {
		mid := n / 2
		if n%2 == 0 {
			median = (cars[mid-1] + cars[mid]) / 2
		} else {
			median = cars[mid]
		}
	}

	avgTicket := 0.0
	if len(dataset) > 0 {
		avgTicket = ticketSum / float64(len(dataset))
	}

	summary := ProcessingSummary{
		ProcessedAt:     opts.ProcessedAt,
		ProcessedBy:     opts.ProcessedBy,
		ReportingPeriod: opts.ReportingPeriod,
		DataSource:      opts.DataSource,
		RowCount:        len(dataset),
		MedianCarCount:  int(math.Round(median)),
		AverageTicket:   int(math.Round(avgTicket)),
	}
	if summary.ProcessedAt.IsZero() {
		summary.ProcessedAt = time.Now().UTC()
	}
	if summary.ReportingPeriod == "" {
		summary.ReportingPeriod = "Current Period"
	}
	if summary.DataSource == "" {
		summary.DataSource = "Recognition Upload"
	}
	return summary
}
