package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// presetPayload is the JSON blob stored per preset. Mapping shapes evolve;
// keeping them in one column avoids a migration per new field.
type presetPayload struct {
	Mapping      model.ColumnMapping `json:"mapping"`
	SelectedKeys []string            `json:"selectedKeys"`
	Goals        model.GoalMap       `json:"goals"`
}

// SavePreset upserts a mapping preset.
func (s *Store) SavePreset(p model.Preset) error {
	payload, err := json.Marshal(presetPayload{
		Mapping:      p.Mapping,
		SelectedKeys: p.SelectedKeys,
		Goals:        p.Goals,
	})
	if err != nil {
		return fmt.Errorf("failed to encode preset payload: %w", err)
	}

	createdAt := p.CreatedAt
	if createdAt == "" {
		createdAt = time.Now().UTC().Format(time.RFC3339)
	}

	_, err = s.db.Exec(`
		INSERT INTO presets (id, cadence, title, district_name, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			cadence = excluded.cadence,
			title = excluded.title,
			district_name = excluded.district_name,
			payload = excluded.payload
	`, p.ID, string(p.Cadence), p.Title, p.DistrictName, string(payload), createdAt)
	if err != nil {
		return fmt.Errorf("failed to save preset: %w", err)
	}
	return nil
}

// GetPreset loads one preset by id.
func (s *Store) GetPreset(id string) (model.Preset, error) {
	row := s.db.QueryRow(`
		SELECT id, cadence, title, district_name, payload, created_at
		FROM presets WHERE id = ?
	`, id)
	preset, err := scanPreset(row.Scan)
	if err == sql.ErrNoRows {
		return model.Preset{}, fmt.Errorf("preset not found: %s", id)
	}
	return preset, err
}

// ListPresets returns presets, optionally filtered by cadence, newest first.
func (s *Store) ListPresets(cadence model.Cadence) ([]model.Preset, error) {
	query := `
		SELECT id, cadence, title, district_name, payload, created_at
		FROM presets
	`
	args := []interface{}{}
	if cadence != "" {
		query += " WHERE cadence = ?"
		args = append(args, string(cadence))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	defer rows.Close()

	presets := make([]model.Preset, 0)
	for rows.Next() {
		preset, err := scanPreset(rows.Scan)
		if err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}
	return presets, rows.Err()
}

// DeletePreset removes a preset by id.
func (s *Store) DeletePreset(id string) error {
	_, err := s.db.Exec("DELETE FROM presets WHERE id = ?", id)
	return err
}

func scanPreset(scan func(...interface{}) error) (model.Preset, error) {
	var (
		p        model.Preset
		cadence  string
		district sql.NullString
		payload  string
	)
	if err := scan(&p.ID, &cadence, &p.Title, &district, &payload, &p.CreatedAt); err != nil {
		return model.Preset{}, err
	}
	p.Cadence = model.Cadence(cadence)
	p.DistrictName = district.String

	var body presetPayload
	if err := json.Unmarshal([]byte(payload), &body); err != nil {
		return model.Preset{}, fmt.Errorf("failed to decode preset payload: %w", err)
	}
	p.Mapping = body.Mapping
	p.SelectedKeys = body.SelectedKeys
	p.Goals = body.Goals
	return p, nil
}
