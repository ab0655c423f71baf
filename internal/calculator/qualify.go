package calculator

import "github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"

// QualifyRule is one metric bound a row must satisfy to stay on a
// leaderboard. Nil bounds are unconstrained.
type QualifyRule struct {
	MetricKey string   `json:"metricKey"`
	Min       *float64 `json:"min,omitempty"`
	Max       *float64 `json:"max,omitempty"`
}

// Qualify splits rows into those passing every rule and the rest. Rules
// combine with AND; a nil metric fails any rule that references it, so low
// sample counts cannot sneak onto a board. Input order is preserved.
func Qualify(rows []model.AggregateRow, rules []QualifyRule) (qualified, disqualified []model.AggregateRow) {
	if len(rules) == 0 {
		return rows, nil
	}

	qualified = make([]model.AggregateRow, 0, len(rows))
	for _, row := range rows {
		if passesAll(row, rules) {
			qualified = append(qualified, row)
		} else {
			disqualified = append(disqualified, row)
		}
	}
	return qualified, disqualified
}

func passesAll(row model.AggregateRow, rules []QualifyRule) bool {
	for _, rule := range rules {
		value := row.Metric(rule.MetricKey)
		if value == nil {
			return false
		}
		if rule.Min != nil && *value < *rule.Min {
			return false
		}
		if rule.Max != nil && *value > *rule.Max {
			return false
		}
	}
	return true
}
