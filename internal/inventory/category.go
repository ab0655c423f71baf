// Package inventory classifies count-log lines into product categories and
// rolls shop-day variances up to district summaries.
package inventory

import "strings"

// Category is a closed set of count-log product buckets.
type Category string

const (
	CategoryLubesOil   Category = "lubesOil"
	CategoryOilFilters Category = "oilFilters"
	CategoryAirFilters Category = "airFilters"
	CategoryWipers     Category = "wipers"
	CategoryCabins     Category = "cabins"
)

// CategoryLabels maps a category to its display label.
var CategoryLabels = map[Category]string{
	CategoryLubesOil:   "Lubricants / Oil",
	CategoryOilFilters: "Oil Filters",
	CategoryAirFilters: "Air Filters",
	CategoryWipers:     "Wipers",
	CategoryCabins:     "Cabin Filters",
}

// Categories lists every bucket in report order.
var Categories = []Category{
	CategoryLubesOil,
	CategoryOilFilters,
	CategoryAirFilters,
	CategoryWipers,
	CategoryCabins,
}

type categoryRule struct {
	category Category
	includes []string
}

// Rule order matters: "OIL FILTER" must match before the bare "OIL"
// fallback or every filter line lands in the lubricants bucket.
var categoryRules = []categoryRule{
	{category: CategoryOilFilters, includes: []string{"OIL FILTER"}},
	{category: CategoryAirFilters, includes: []string{"AIR FILTER"}},
	{category: CategoryCabins, includes: []string{"CABIN FILTER"}},
	{category: CategoryWipers, includes: []string{"WIPER"}},
	{category: CategoryLubesOil, includes: []string{"LUBE", "LUBRICANT", "BULK OIL", "OIL"}},
}

// ResolveCategory buckets a log line by product code and description.
// Unmatched lines default to the lubricants bucket, mirroring how the count
// sheets treat unclassified SKUs.
func ResolveCategory(productCode, partDescription string) Category {
	haystacks := []string{
		strings.ToUpper(strings.TrimSpace(productCode)),
		strings.ToUpper(strings.TrimSpace(partDescription)),
	}
	for _, rule := range categoryRules {
		for _, needle := range rule.includes {
			for _, value := range haystacks {
				if strings.Contains(value, needle) {
					return rule.category
				}
			}
		}
	}
	return CategoryLubesOil
}
