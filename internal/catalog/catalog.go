// Package catalog holds the static category → subcategory lookup table used
// by the inventory filter. A category filter with an unrestricted
// subcategory expands to every subcategory registered under it.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
)

// Table maps a category name to its known subcategories.
type Table map[string][]string

// Default returns the built-in skin catalog.
func Default() Table {
	return Table{
		"Rifle":  {"AK-47", "M4A4", "M4A1-S", "AWP", "FAMAS", "Galil AR", "SG 553", "AUG"},
		"Pistol": {"Glock-18", "USP-S", "P250", "Desert Eagle", "Five-SeveN", "Tec-9"},
		"SMG":    {"MP9", "MAC-10", "MP7", "UMP-45", "P90", "PP-Bizon"},
		"Knife":  {"Karambit", "Butterfly Knife", "M9 Bayonet", "Bayonet", "Flip Knife", "Gut Knife"},
		"Gloves": {"Sport Gloves", "Driver Gloves", "Specialist Gloves", "Moto Gloves"},
		"Other":  {"Sticker", "Case", "Agent", "Music Kit"},
	}
}

// Load reads a category table from a JSON file. An empty path returns the
// built-in default.
func Load(path string) (Table, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var table Table
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}
	return table, nil
}

// Subcategories returns the subcategories registered under category, or nil
// if the category is unknown.
func (t Table) Subcategories(category string) []string {
	return t[category]
}

// Contains reports whether subcategory is registered under category.
func (t Table) Contains(category, subcategory string) bool {
	for _, sub := range t[category] {
		if sub == subcategory {
			return true
		}
	}
	return false
}

// Categories returns the known category names.
func (t Table) Categories() []string {
	names := make([]string, 0, len(t))
	for name := range t {
		names = append(names, name)
	}
	return names
}
