package calculator

import "github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"

// ResolveStatus compares an actual against its goal. Either side missing
// yields StatusMissing. Meeting the goal exactly is a hit in both
// directions.
func ResolveStatus(actual *float64, cfg model.GoalConfig) model.GoalStatus {
	if actual == nil || cfg.Goal == nil {
		return model.StatusMissing
	}
	if cfg.Direction == model.DirectionLower {
		if *actual <= *cfg.Goal {
			return model.StatusHit
		}
		return model.StatusMiss
	}
	if *actual >= *cfg.Goal {
		return model.StatusHit
	}
	return model.StatusMiss
}

// StatusFor resolves the status of one metric on an aggregate row against a
// goal map, falling back to the catalog direction when the goal entry leaves
// it unset.
func StatusFor(row model.AggregateRow, metricKey string, goals model.GoalMap) model.GoalStatus {
	cfg := goals[metricKey]
	cfg.Direction = goals.DirectionFor(metricKey)
	return ResolveStatus(row.Metric(metricKey), cfg)
}
