package inventory

import "sort"

// LogRow is one line of a shop's inventory count log.
type LogRow struct {
	StoreNumber     int     `json:"storeNumber"`
	Region          string  `json:"region"`
	District        string  `json:"district"`
	Date            string  `json:"date"`
	LogType         string  `json:"logType"`
	ProductCode     string  `json:"productCode"`
	PartNumber      string  `json:"partNumber"`
	PartDescription string  `json:"partDescription"`
	QuantityChange  float64 `json:"quantityChange"`
	Cost            float64 `json:"cost"`
}

// CategoryVariance is a quantity/value pair for one bucket.
type CategoryVariance struct {
	Qty   float64 `json:"qty"`
	Value float64 `json:"value"`
}

// ShopDayStatus is one shop's counted day with per-category variances.
type ShopDayStatus struct {
	StoreNumber             int                           `json:"storeNumber"`
	Region                  string                        `json:"region"`
	District                string                        `json:"district"`
	Date                    string                        `json:"date"`
	Categories              map[Category]CategoryVariance `json:"categories"`
	AdjustmentVarianceValue float64                       `json:"adjustmentVarianceValue"`
	DidCount                bool                          `json:"didCount"`
}

// DistrictSummary rolls shop-day statuses up to a district with count
// compliance against the configured cadence.
type DistrictSummary struct {
	District                string                        `json:"district"`
	Region                  string                        `json:"region"`
	Categories              map[Category]CategoryVariance `json:"categories"`
	AdjustmentVarianceValue float64                       `json:"adjustmentVarianceValue"`
	OnTimeCounts            int                           `json:"onTimeCounts"`
	TotalCountTarget        int                           `json:"totalCountTarget"`
	CountCompliance         float64                       `json:"countCompliance"`
}

// ThresholdConfig sets the count cadence and the compliance color bands.
type ThresholdConfig struct {
	CountsPerShopPerWeek int     `json:"countsPerShopPerWeek"`
	GreenCompliance      float64 `json:"greenCompliance"`
	YellowCompliance     float64 `json:"yellowCompliance"`
}

// DefaultThresholds is the stock cadence: five counts a week per shop,
// green at 95% and yellow at 85%.
var DefaultThresholds = ThresholdConfig{
	CountsPerShopPerWeek: 5,
	GreenCompliance:      0.95,
	YellowCompliance:     0.85,
}

// BuildShopDays folds log rows into per-shop-per-day statuses. A shop-day
// with at least one line counts as counted.
func BuildShopDays(rows []LogRow) []ShopDayStatus {
	type key struct {
		store int
		date  string
	}
	byDay := make(map[key]*ShopDayStatus)
	order := make([]key, 0)

	for _, row := range rows {
		k := key{store: row.StoreNumber, date: row.Date}
		status, ok := byDay[k]
		if !ok {
			status = &ShopDayStatus{
				StoreNumber: row.StoreNumber,
				Region:      row.Region,
				District:    row.District,
				Date:        row.Date,
				Categories:  make(map[Category]CategoryVariance),
				DidCount:    true,
			}
			byDay[k] = status
			order = append(order, k)
		}

		category := ResolveCategory(row.ProductCode, row.PartDescription)
		variance := status.Categories[category]
		variance.Qty += row.QuantityChange
		variance.Value += row.QuantityChange * row.Cost
		status.Categories[category] = variance
		status.AdjustmentVarianceValue += row.QuantityChange * row.Cost
	}

	out := make([]ShopDayStatus, 0, len(order))
	for _, k := range order {
		out = append(out, *byDay[k])
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].StoreNumber != out[j].StoreNumber {
			return out[i].StoreNumber < out[j].StoreNumber
		}
		return out[i].Date < out[j].Date
	})
	return out
}

// SummarizeDistricts aggregates shop days per district and computes count
// compliance: counted shop-days over the target implied by the cadence and
// the number of distinct shops.
func SummarizeDistricts(days []ShopDayStatus, thresholds ThresholdConfig) []DistrictSummary {
	type acc struct {
		summary *DistrictSummary
		shops   map[int]bool
	}
	byDistrict := make(map[string]*acc)
	order := make([]string, 0)

	for _, day := range days {
		a, ok := byDistrict[day.District]
		if !ok {
			a = &acc{
				summary: &DistrictSummary{
					District:   day.District,
					Region:     day.Region,
					Categories: make(map[Category]CategoryVariance),
				},
				shops: make(map[int]bool),
			}
			byDistrict[day.District] = a
			order = append(order, day.District)
		}

		a.shops[day.StoreNumber] = true
		if day.DidCount {
			a.summary.OnTimeCounts++
		}
		a.summary.AdjustmentVarianceValue += day.AdjustmentVarianceValue
		for category, variance := range day.Categories {
			total := a.summary.Categories[category]
			total.Qty += variance.Qty
			total.Value += variance.Value
			a.summary.Categories[category] = total
		}
	}

	sort.Strings(order)
	out := make([]DistrictSummary, 0, len(order))
	for _, district := range order {
		a := byDistrict[district]
		a.summary.TotalCountTarget = len(a.shops) * thresholds.CountsPerShopPerWeek
		if a.summary.TotalCountTarget > 0 {
			a.summary.CountCompliance = float64(a.summary.OnTimeCounts) / float64(a.summary.TotalCountTarget)
		}
		out = append(out, *a.summary)
	}
	return out
}
