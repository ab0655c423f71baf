package store

import (
	"database/sql"
	"fmt"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/model"
)

// ListDirectory returns every known shop ordered by entity id.
func (s *Store) ListDirectory() ([]model.DirectoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT entity_id, display_name, district_name, region_name
		FROM directory ORDER BY entity_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to load directory: %w", err)
	}
	defer rows.Close()

	entries := make([]model.DirectoryEntry, 0)
	for rows.Next() {
		var (
			entry    model.DirectoryEntry
			district sql.NullString
			region   sql.NullString
		)
		if err := rows.Scan(&entry.EntityID, &entry.DisplayName, &district, &region); err != nil {
			return nil, err
		}
		entry.DistrictName = district.String
		entry.RegionName = region.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// UpsertDirectory writes shop entries, replacing existing ids.
func (s *Store) UpsertDirectory(entries []model.DirectoryEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO directory (entity_id, display_name, district_name, region_name)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(entity_id) DO UPDATE SET
			display_name = excluded.display_name,
			district_name = excluded.district_name,
			region_name = excluded.region_name,
			updated_at = CURRENT_TIMESTAMP
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, entry := range entries {
		if _, err := stmt.Exec(entry.EntityID, entry.DisplayName, entry.DistrictName, entry.RegionName); err != nil {
			return fmt.Errorf("failed to upsert directory entry %s: %w", entry.EntityID, err)
		}
	}
	return tx.Commit()
}

// DeleteDirectoryEntry removes one shop from the directory.
func (s *Store) DeleteDirectoryEntry(entityID string) error {
	_, err := s.db.Exec("DELETE FROM directory WHERE entity_id = ?", entityID)
	return err
}
