package recognition

// Metrics is the recognition namespace every upload column maps onto.
var Metrics = []MetricDef{
	{Key: "carCount", Label: "Car Count", Description: "Total serviced cars for the period.", Format: FormatInteger, HigherIsBetter: true},
	{Key: "carGrowth", Label: "Car Growth", Description: "Period car count variance vs. the same period last year.", Format: FormatPercent, Precision: 1, HigherIsBetter: true},
	{Key: "sales", Label: "Total Sales", Description: "Gross sales captured in the KPI table.", Format: FormatCurrency, HigherIsBetter: true},
	{Key: "ticket", Label: "Avg. Ticket", Description: "Average ticket size for the period.", Format: FormatCurrency, HigherIsBetter: true},
	{Key: "csi", Label: "CSI", Description: "Customer satisfaction index.", Format: FormatPercent, Precision: 1, HigherIsBetter: true},
	{Key: "retention", Label: "Retention", Description: "Return customer capture rate.", Format: FormatPercent, Precision: 1, HigherIsBetter: true},
	{Key: "safetyScore", Label: "Safety", Description: "Safety and compliance composite score.", Format: FormatPercent, HigherIsBetter: true},
}

// MetricByKey looks up a recognition metric definition.
func MetricByKey(key string) (MetricDef, bool) {
	for _, m := range Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return MetricDef{}, false
}

func f(v float64) *float64 { return &v }

// DefaultAwards is the stock award slate. Districts can replace it per run;
// the engine treats it as data, not policy.
var DefaultAwards = []AwardConfig{
	{
		ID:          "district-mvp",
		Label:       "District MVP",
		Description: "Balanced growth award that blends cars, ticket, and CSI stability.",
		Narrative:   "Captures consistent execution across volume and guest experience.",
		Rule: Rule{
			ID:        "district-mvp",
			MetricKey: "carGrowth",
			Direction: SortDesc,
			TopN:      3,
			MinValue:  f(0),
			Qualifiers: []Qualifier{
				{MetricKey: "carCount", Comparison: CompareGTE, Value: 800, Label: "800+ cars"},
				{MetricKey: "csi", Comparison: CompareGTE, Value: 88, Label: "88 CSI"},
			},
			DeltaMetricKey: "ticket",
		},
	},
	{
		ID:          "car-count-crusher",
		Label:       "Car Count Crusher",
		Description: "Highlights pure volume hitters with double digit growth.",
		Narrative:   "Volume captains who outrun plan without tanking margin.",
		Rule: Rule{
			ID:        "car-count-crusher",
			MetricKey: "carCount",
			Direction: SortDesc,
			TopN:      5,
			Qualifiers: []Qualifier{
				{MetricKey: "carGrowth", Comparison: CompareGTE, Value: 8, Label: "+8% growth"},
			},
			DeltaMetricKey: "carGrowth",
		},
	},
	{
		ID:          "ticket-hawk",
		Label:       "Ticket Hawk",
		Description: "Recognizes shops protecting margin and attachment.",
		Narrative:   "Showcases attachment discipline without sacrificing CSI.",
		Rule: Rule{
			ID:        "ticket-hawk",
			MetricKey: "ticket",
			Direction: SortDesc,
			TopN:      3,
			Qualifiers: []Qualifier{
				{MetricKey: "carCount", Comparison: CompareGTE, Value: 600, Label: "600+ cars"},
				{MetricKey: "csi", Comparison: CompareGTE, Value: 90, Label: "90 CSI"},
			},
		},
	},
	{
		ID:          "csi-guardian",
		Label:       "CSI Guardian",
		Description: "Crowns the highest guest experience operators.",
		Narrative:   "Keeps the frontline rallying around wow moments.",
		Rule: Rule{
			ID:        "csi-guardian",
			MetricKey: "csi",
			Direction: SortDesc,
			TopN:      3,
			Qualifiers: []Qualifier{
				{MetricKey: "carCount", Comparison: CompareGTE, Value: 500, Label: "500 cars"},
			},
			TieBreakerMetric: "retention",
		},
	},
}
