package repository

import (
	"database/sql"
	"fmt"
)

// SettingsRepository provides access to the settings key/value table.
type SettingsRepository struct {
	db *sql.DB
}

// NewSettingsRepository creates a new repository instance.
func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns a setting value. The boolean reports whether the key exists.
func (r *SettingsRepository) Get(name string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM settings WHERE name = ?", name).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query setting %s: %w", name, err)
	}
	return value, true, nil
}

// Set inserts or replaces a setting value.
func (r *SettingsRepository) Set(name, value string) error {
	_, err := r.db.Exec(`
		INSERT INTO settings (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value
	`, name, value)
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", name, err)
	}
	return nil
}
