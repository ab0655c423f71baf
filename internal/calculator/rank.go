package calculator

import (
	"fmt"
	"sort"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// RankOptions tunes leaderboard construction.
type RankOptions struct {
	// Goals supplies per-metric direction overrides; the catalog default
	// applies otherwise.
	Goals model.GoalMap
	// SecondaryKey breaks primary ties by a second metric, higher wins.
	// Empty skips the tier.
	SecondaryKey string
	// Limit caps the board length; 0 means unbounded.
	Limit int
}

// Rank orders rows by metricKey and assigns 1-based contiguous ranks.
// Rows without a value for the metric are excluded. Ties break by the
// secondary metric descending, then sample count descending, then scope key
// ascending, so identical inputs always produce identical boards.
func Rank(rows []model.AggregateRow, metricKey string, opts RankOptions) ([]model.LeaderboardEntry, error) {
	if _, ok := model.MetricByKey(metricKey); !ok {
		return nil, fmt.Errorf("unknown metric %q", metricKey)
	}

	higherBetter := opts.Goals.DirectionFor(metricKey) == model.DirectionHigher

	ranked := make([]model.AggregateRow, 0, len(rows))
	for _, row := range rows {
		if row.Metric(metricKey) != nil {
			ranked = append(ranked, row)
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]

		av, bv := *a.Metric(metricKey), *b.Metric(metricKey)
		if av != bv {
			if higherBetter {
				return av > bv
			}
			return av < bv
		}

		if opts.SecondaryKey != "" {
			as, bs := a.Metric(opts.SecondaryKey), b.Metric(opts.SecondaryKey)
			switch {
			case as != nil && bs == nil:
				return true
			case as == nil && bs != nil:
				return false
			case as != nil && bs != nil && *as != *bs:
				return *as > *bs
			}
		}

		if a.SampleCount != b.SampleCount {
			return a.SampleCount > b.SampleCount
		}
		return a.ScopeKey < b.ScopeKey
	})

	if opts.Limit > 0 && len(ranked) > opts.Limit {
		ranked = ranked[:opts.Limit]
	}

	entries := make([]model.LeaderboardEntry, len(ranked))
	for i, row := range ranked {
		entries[i] = model.LeaderboardEntry{
			Rank:        i + 1,
			EntityID:    row.ScopeKey,
			DisplayName: row.DisplayName,
			MetricKey:   metricKey,
			MetricValue: *row.Metric(metricKey),
			SampleCount: row.SampleCount,
		}
	}
	return entries, nil
}
