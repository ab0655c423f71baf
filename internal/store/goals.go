package store

import (
	"database/sql"
	"fmt"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// DefaultGoals is the stock goal sheet applied when a cadence has nothing
// persisted yet. NPS carries a real target; the rest start unset and only
// pin a direction where the catalog default is wrong for goals.
var DefaultGoals = model.GoalMap{
	"nps":       {Goal: model.Float(75), Direction: model.DirectionHigher},
	"discounts": {Direction: model.DirectionLower},
}

// GetGoals loads the goal sheet for a cadence, merged over DefaultGoals.
func (s *Store) GetGoals(cadence model.Cadence) (model.GoalMap, error) {
	rows, err := s.db.Query(`
		SELECT metric_key, goal, direction FROM goals WHERE cadence = ?
	`, string(cadence))
	if err != nil {
		return nil, fmt.Errorf("failed to load goals: %w", err)
	}
	defer rows.Close()

	goals := make(model.GoalMap, len(DefaultGoals))
	for key, cfg := range DefaultGoals {
		goals[key] = cfg
	}
	for rows.Next() {
		var (
			key       string
			goal      sql.NullFloat64
			direction sql.NullString
		)
		if err := rows.Scan(&key, &goal, &direction); err != nil {
			return nil, err
		}
		cfg := model.GoalConfig{Direction: model.GoalDirection(direction.String)}
		if goal.Valid {
			cfg.Goal = model.Float(goal.Float64)
		}
		goals[key] = cfg
	}
	return goals, rows.Err()
}

// SetGoals replaces the goal sheet for a cadence.
func (s *Store) SetGoals(cadence model.Cadence, goals model.GoalMap) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM goals WHERE cadence = ?", string(cadence)); err != nil {
		return fmt.Errorf("failed to clear goals: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO goals (cadence, metric_key, goal, direction) VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for key, cfg := range goals {
		var goal interface{}
		if cfg.Goal != nil {
			goal = *cfg.Goal
		}
		if _, err := stmt.Exec(string(cadence), key, goal, string(cfg.Direction)); err != nil {
			return fmt.Errorf("failed to insert goal %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// GetThresholds returns the named qualification floors.
func (s *Store) GetThresholds() (map[string]float64, error) {
	rows, err := s.db.Query("SELECT name, value FROM thresholds")
	if err != nil {
		return nil, fmt.Errorf("failed to load thresholds: %w", err)
	}
	defer rows.Close()

	thresholds := make(map[string]float64)
	for rows.Next() {
		var (
			name  string
			value float64
		)
		if err := rows.Scan(&name, &value); err != nil {
			return nil, err
		}
		thresholds[name] = value
	}
	return thresholds, rows.Err()
}

// SetThreshold upserts one named floor.
func (s *Store) SetThreshold(name string, value float64) error {
	_, err := s.db.Exec(`
		INSERT INTO thresholds (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = ?, updated_at = CURRENT_TIMESTAMP
	`, name, value, value)
	return err
}
