package store

import (
	"fmt"

	"github.com/kwo744-075/pocketmanager5-site-sub000/internal/alias"
)

// LoadAliases reads the taught alias table. Implements alias.Store.
func (s *Store) LoadAliases() (alias.Table, error) {
	rows, err := s.db.Query("SELECT key, spelling FROM aliases ORDER BY created_at, spelling")
	if err != nil {
		return nil, fmt.Errorf("failed to load aliases: %w", err)
	}
	defer rows.Close()

	table := alias.Table{}
	for rows.Next() {
		var key, spelling string
		if err := rows.Scan(&key, &spelling); err != nil {
			return nil, err
		}
		table[key] = append(table[key], spelling)
	}
	return table, rows.Err()
}

// SaveAliases replaces the taught alias table. Implements alias.Store.
func (s *Store) SaveAliases(table alias.Table) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM aliases"); err != nil {
		return fmt.Errorf("failed to clear aliases: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO aliases (key, spelling) VALUES (?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, key := range table.Keys() {
		for _, spelling := range table[key] {
			if _, err := stmt.Exec(key, spelling); err != nil {
				return fmt.Errorf("failed to insert alias %s/%s: %w", key, spelling, err)
			}
		}
	}
	return tx.Commit()
}
