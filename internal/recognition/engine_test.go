package recognition

import (
	"testing"
	"time"
)

func row(shop int, metrics map[string]*float64) DatasetRow {
	return DatasetRow{
		ShopNumber: shop,
		ShopName:   "Shop",
		Metrics:    metrics,
	}
}

func TestEvaluate_QualifiersGateWinners(t *testing.T) {
	t.Parallel()

	award := AwardConfig{
		ID:    "mvp",
		Label: "MVP",
		Rule: Rule{
			MetricKey: "carGrowth",
			Direction: SortDesc,
			TopN:      3,
			MinValue:  f(0),
			Qualifiers: []Qualifier{
				{MetricKey: "carCount", Comparison: CompareGTE, Value: 800},
				{MetricKey: "csi", Comparison: CompareGTE, Value: 88},
			},
		},
	}

	dataset := []DatasetRow{
		row(1, map[string]*float64{"carGrowth": f(12), "carCount": f(900), "csi": f(91)}),
		row(2, map[string]*float64{"carGrowth": f(15), "carCount": f(700), "csi": f(95)}), // under the car floor
		row(3, map[string]*float64{"carGrowth": f(10), "carCount": f(850), "csi": f(80)}), // under the CSI floor
		row(4, map[string]*float64{"carGrowth": f(-2), "carCount": f(950), "csi": f(92)}), // negative growth
		row(5, map[string]*float64{"carGrowth": nil, "carCount": f(950), "csi": f(92)}),   // no growth figure
	}

	results := Evaluate(dataset, []AwardConfig{award})
	if len(results) != 1 {
		t.Fatalf("results = %d, want 1", len(results))
	}
	winners := results[0].Winners
	if len(winners) != 1 || winners[0].ShopNumber != 1 {
		t.Fatalf("winners = %+v, want only shop 1", winners)
	}
	if winners[0].Rank != 1 {
		t.Fatalf("rank = %d, want 1", winners[0].Rank)
	}
}

func TestEvaluate_TopNAndOrdering(t *testing.T) {
	t.Parallel()

	award := AwardConfig{
		ID: "volume",
		Rule: Rule{
			MetricKey: "carCount",
			Direction: SortDesc,
			TopN:      2,
		},
	}

	dataset := []DatasetRow{
		row(10, map[string]*float64{"carCount": f(500)}),
		row(20, map[string]*float64{"carCount": f(900)}),
		row(30, map[string]*float64{"carCount": f(700)}),
	}

	winners := Evaluate(dataset, []AwardConfig{award})[0].Winners
	if len(winners) != 2 {
		t.Fatalf("topN should cap winners, got %d", len(winners))
	}
	if winners[0].ShopNumber != 20 || winners[1].ShopNumber != 30 {
		t.Fatalf("order = %+v", winners)
	}
}

func TestEvaluate_TieBreaksByMetricThenShopNumber(t *testing.T) {
	t.Parallel()

	award := AwardConfig{
		ID: "csi",
		Rule: Rule{
			MetricKey:        "csi",
			Direction:        SortDesc,
			TopN:             3,
			TieBreakerMetric: "retention",
		},
	}

	dataset := []DatasetRow{
		row(30, map[string]*float64{"csi": f(92), "retention": f(40)}),
		row(20, map[string]*float64{"csi": f(92), "retention": f(55)}),
		row(10, map[string]*float64{"csi": f(92), "retention": f(40)}),
	}

	winners := Evaluate(dataset, []AwardConfig{award})[0].Winners
	want := []int{20, 10, 30}
	for i, shop := range want {
		if winners[i].ShopNumber != shop {
			t.Fatalf("order = %+v, want shops %v", winners, want)
		}
	}
}

func TestEvaluate_DeltaMetricCarried(t *testing.T) {
	t.Parallel()

	award := AwardConfig{
		ID: "growth",
		Rule: Rule{
			MetricKey:      "carGrowth",
			Direction:      SortDesc,
			TopN:           1,
			DeltaMetricKey: "ticket",
		},
	}

	dataset := []DatasetRow{
		row(1, map[string]*float64{"carGrowth": f(9), "ticket": f(112)}),
	}

	w := Evaluate(dataset, []AwardConfig{award})[0].Winners[0]
	if w.DeltaMetricKey != "ticket" || w.DeltaMetricValue == nil || *w.DeltaMetricValue != 112 {
		t.Fatalf("delta metric not carried: %+v", w)
	}
}

func TestEvaluate_NilSlateUsesDefaults(t *testing.T) {
	t.Parallel()

	results := Evaluate(nil, nil)
	if len(results) != len(DefaultAwards) {
		t.Fatalf("results = %d, want %d", len(results), len(DefaultAwards))
	}
}

func TestBuildSummary(t *testing.T) {
	t.Parallel()

	dataset := []DatasetRow{
		row(1, map[string]*float64{"carCount": f(100), "ticket": f(90)}),
		row(2, map[string]*float64{"carCount": f(300), "ticket": f(110)}),
		row(3, map[string]*float64{"carCount": f(200), "ticket": f(101)}),
		row(4, map[string]*float64{"carCount": f(400), "ticket": f(99)}),
	}

	at := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	summary := BuildSummary(dataset, SummaryOptions{
		ReportingPeriod: "P05 2026",
		ProcessedAt:     at,
	})

	if summary.RowCount != 4 {
		t.Errorf("RowCount = %d", summary.RowCount)
	}
	// Even count: median is the mean of the middle pair (200, 300).
	if summary.MedianCarCount != 250 {
		t.Errorf("MedianCarCount = %d, want 250", summary.MedianCarCount)
	}
	if summary.AverageTicket != 100 {
		t.Errorf("AverageTicket = %d, want 100", summary.AverageTicket)
	}
	if !summary.ProcessedAt.Equal(at) {
		t.Errorf("ProcessedAt = %v", summary.ProcessedAt)
	}
	if summary.ReportingPeriod != "P05 2026" {
		t.Errorf("ReportingPeriod = %q", summary.ReportingPeriod)
	}
}

func TestBuildSummary_EmptyDataset(t *testing.T) {
	t.Parallel()

	summary := BuildSummary(nil, SummaryOptions{})
	if summary.RowCount != 0 || summary.MedianCarCount != 0 || summary.AverageTicket != 0 {
		t.Fatalf("empty dataset summary = %+v", summary)
	}
	if summary.ReportingPeriod != "Current Period" || summary.DataSource != "Recognition Upload" {
		t.Fatalf("defaults not applied: %+v", summary)
	}
}
