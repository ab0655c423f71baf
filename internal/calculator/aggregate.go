// Package calculator rolls normalized rows up to a scope, applies
// qualification thresholds, ranks entities, and resolves goal status.
// Every function here is pure: same inputs, same outputs, no I/O.
package calculator

import (
	"sort"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// ActiveFunc decides whether a row counts as an active reporting day.
type ActiveFunc func(model.NormalizedRow) bool

// AggregateOptions tunes the rollup.
type AggregateOptions struct {
	// Active overrides the default activity test (any non-nil metric).
	Active ActiveFunc
	// Directory decorates rows with display names and hierarchy labels.
	Directory []model.DirectoryEntry
	// IncludePlaceholders appends a zero-sample row for every directory
	// entity missing from the upload. Off by default; only the shop scope
	// ever wants it.
	IncludePlaceholders bool
}

// Aggregate groups rows by scope and rolls each metric up according to its
// catalog aggregation kind: sums for flow metrics, means for rates. A metric
// with zero non-nil contributions stays nil in the output, never zero.
// Rows whose scope key is empty are dropped. Output is sorted by scope key.
func Aggregate(rows []model.NormalizedRow, scope model.Scope, opts AggregateOptions) []model.AggregateRow {
	active := opts.Active
	if active == nil {
		active = hasAnyMetric
	}
	directory := indexDirectory(opts.Directory, scope)

	type accumulator struct {
		row        *model.AggregateRow
		sums       map[string]float64
		counts     map[string]int
		days       map[string]bool
		activeDays map[string]bool
	}

	groups := make(map[string]*accumulator)
	order := make([]string, 0)

	for _, row := range rows {
		key := scopeKey(row, scope)
		if key == "" {
			continue
		}

		acc, ok := groups[key]
		if !ok {
			acc = &accumulator{
				row: &model.AggregateRow{
					ScopeKey:     key,
					DisplayName:  displayName(key, scope, directory),
					DistrictName: row.DistrictName,
					RegionName:   row.RegionName,
					Metrics:      make(map[string]*float64),
				},
				sums:       make(map[string]float64),
				counts:     make(map[string]int),
				days:       make(map[string]bool),
				activeDays: make(map[string]bool),
			}
			if entry, ok := directory[key]; ok {
				acc.row.DistrictName = entry.DistrictName
				acc.row.RegionName = entry.RegionName
			}
			groups[key] = acc
			order = append(order, key)
		}

		acc.row.SampleCount++
		if row.DateLabel != "" {
			acc.days[row.DateLabel] = true
			if active(row) {
				acc.activeDays[row.DateLabel] = true
			}
		}
		for metricKey, value := range row.Metrics {
			if value == nil {
				continue
			}
			acc.sums[metricKey] += *value
			acc.counts[metricKey]++
		}
	}

	out := make([]model.AggregateRow, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		for metricKey, count := range acc.counts {
			if count == 0 {
				continue
			}
			value := acc.sums[metricKey]
			if aggregationFor(metricKey) == model.AggMean {
				value /= float64(count)
			}
			acc.row.Metrics[metricKey] = &value
		}
		acc.row.DaysAvailable = len(acc.days)
		acc.row.DaysCounted = len(acc.activeDays)
		out = append(out, *acc.row)
	}

	if opts.IncludePlaceholders {
		out = append(out, placeholders(groups, opts.Directory, scope)...)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ScopeKey < out[j].ScopeKey })
	return out
}

func hasAnyMetric(row model.NormalizedRow) bool {
	for _, v := range row.Metrics {
		if v != nil {
			return true
		}
	}
	return false
}

func scopeKey(row model.NormalizedRow, scope model.Scope) string {
	switch scope {
	case model.ScopeDistrict:
		return row.DistrictName
	case model.ScopeRegion:
		return row.RegionName
	default:
		return row.EntityID
	}
}

func aggregationFor(metricKey string) model.AggregationKind {
	if metric, ok := model.MetricByKey(metricKey); ok {
		return metric.Aggregation
	}
	return model.AggMean
}

func indexDirectory(entries []model.DirectoryEntry, scope model.Scope) map[string]model.DirectoryEntry {
	index := make(map[string]model.DirectoryEntry, len(entries))
	for _, entry := range entries {
		key := entry.EntityID
		switch scope {
		case model.ScopeDistrict:
			key = entry.DistrictName
		case model.ScopeRegion:
			key = entry.RegionName
		}
		if key != "" {
			index[key] = entry
		}
	}
	return index
}

func displayName(key string, scope model.Scope, directory map[string]model.DirectoryEntry) string {
	if entry, ok := directory[key]; ok && scope == model.ScopeShop && entry.DisplayName != "" {
		return entry.DisplayName
	}
	return key
}

// placeholders builds empty rows for directory entities with no upload data,
// so a roster view can show every shop even on a partial file.
func placeholders[T any](seen map[string]T, entries []model.DirectoryEntry, scope model.Scope) []model.AggregateRow {
	index := indexDirectory(entries, scope)
	out := make([]model.AggregateRow, 0)
	for key, entry := range index {
		if _, ok := seen[key]; ok {
			continue
		}
		out = append(out, model.AggregateRow{
			ScopeKey:     key,
			DisplayName:  displayName(key, scope, index),
			DistrictName: entry.DistrictName,
			RegionName:   entry.RegionName,
			Metrics:      make(map[string]*float64),
		})
	}
	return out
}
