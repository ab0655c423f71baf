package inventory

import "testing"

func TestResolveCategory(t *testing.T) {
	t.Parallel()

	cases := []struct {
		code, desc string
		want       Category
	}{
		{"OF-101", "Premium Oil Filter", CategoryOilFilters},
		{"AF-22", "ENGINE AIR FILTER", CategoryAirFilters},
		{"CF-9", "cabin filter carbon", CategoryCabins},
		{"WB-16", "Rear Wiper Blade", CategoryWipers},
		{"BULK-5W30", "Bulk Oil 5W30", CategoryLubesOil},
		{"ZZ-1", "Shop Towels", CategoryLubesOil}, // unmatched falls back
	}
	for _, tc := range cases {
		if got := ResolveCategory(tc.code, tc.desc); got != tc.want {
			t.Errorf("ResolveCategory(%q, %q) = %s, want %s", tc.code, tc.desc, got, tc.want)
		}
	}
}

func TestResolveCategory_OilFilterBeforeOilFallback(t *testing.T) {
	t.Parallel()

	// "OIL FILTER" contains "OIL"; the specific rule must win.
	if got := ResolveCategory("", "OIL FILTER ECONOMY"); got != CategoryOilFilters {
		t.Fatalf("got %s, want oilFilters", got)
	}
}

func TestBuildShopDays(t *testing.T) {
	t.Parallel()

	rows := []LogRow{
		{StoreNumber: 447, District: "North", Date: "2026-08-24", PartDescription: "Oil Filter", QuantityChange: -2, Cost: 5},
		{StoreNumber: 447, District: "North", Date: "2026-08-24", PartDescription: "Wiper Blade", QuantityChange: 1, Cost: 10},
		{StoreNumber: 447, District: "North", Date: "2026-08-25", PartDescription: "Bulk Oil", QuantityChange: -1, Cost: 20},
	}

	days := BuildShopDays(rows)
	if len(days) != 2 {
		t.Fatalf("days = %d, want 2", len(days))
	}

	first := days[0]
	if first.Date != "2026-08-24" || !first.DidCount {
		t.Fatalf("first day = %+v", first)
	}
	if got := first.Categories[CategoryOilFilters]; got.Qty != -2 || got.Value != -10 {
		t.Errorf("oil filter variance = %+v", got)
	}
	if first.AdjustmentVarianceValue != 0 { // -10 + 10
		t.Errorf("adjustment value = %v, want 0", first.AdjustmentVarianceValue)
	}
}

func TestSummarizeDistricts(t *testing.T) {
	t.Parallel()

	days := []ShopDayStatus{
		{StoreNumber: 447, District: "North", Date: "d1", DidCount: true, Categories: map[Category]CategoryVariance{CategoryWipers: {Qty: 1, Value: 10}}},
		{StoreNumber: 447, District: "North", Date: "d2", DidCount: true, Categories: map[Category]CategoryVariance{}},
		{StoreNumber: 511, District: "North", Date: "d1", DidCount: true, Categories: map[Category]CategoryVariance{CategoryWipers: {Qty: 2, Value: 20}}},
	}

	summaries := SummarizeDistricts(days, ThresholdConfig{CountsPerShopPerWeek: 3})
	if len(summaries) != 1 {
		t.Fatalf("summaries = %d, want 1", len(summaries))
	}

	s := summaries[0]
	if s.OnTimeCounts != 3 {
		t.Errorf("OnTimeCounts = %d, want 3", s.OnTimeCounts)
	}
	// Two shops at three counts each.
	if s.TotalCountTarget != 6 {
		t.Errorf("TotalCountTarget = %d, want 6", s.TotalCountTarget)
	}
	if s.CountCompliance != 0.5 {
		t.Errorf("CountCompliance = %v, want 0.5", s.CountCompliance)
	}
	if got := s.Categories[CategoryWipers]; got.Qty != 3 || got.Value != 30 {
		t.Errorf("wiper rollup = %+v", got)
	}
}
