package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
	"github.com/skintrack/skin-ledger-backend/internal/model"
)

// MappingRepository provides data access methods for the item_mapping
// price-catalog table.
type MappingRepository struct {
	db *sql.DB
}

// NewMappingRepository creates a new repository instance.
func NewMappingRepository(db *sql.DB) *MappingRepository {
	return &MappingRepository{db: db}
}

// Find returns the mapping for a (name, category, wear tier, StatTrak)
// tuple. The boolean reports whether it exists.
func (r *MappingRepository) Find(name, category, wearTier string, statTrak bool) (model.ItemMapping, bool, error) {
	query := `
		SELECT mapping_id, item_name, category, wear_tier, stattrak, last_used, current_price
		FROM item_mapping
		WHERE item_name = ? AND category = ? AND wear_tier = ? AND stattrak = ?
	`

	m, err := r.scanOne(r.db.QueryRow(query, name, category, wearTier, statTrak))
	if err == sql.ErrNoRows {
		return model.ItemMapping{}, false, nil
	}
	if err != nil {
		return model.ItemMapping{}, false, fmt.Errorf("failed to query item_mapping: %w", err)
	}
	return m, true, nil
}

// Get returns a mapping by id, or apperrors.ErrMappingNotFound.
func (r *MappingRepository) Get(mappingID int64) (model.ItemMapping, error) {
	query := `
		SELECT mapping_id, item_name, category, wear_tier, stattrak, last_used, current_price
		FROM item_mapping
		WHERE mapping_id = ?
	`

	m, err := r.scanOne(r.db.QueryRow(query, mappingID))
	if err == sql.ErrNoRows {
		return model.ItemMapping{}, apperrors.ErrMappingNotFound
	}
	if err != nil {
		return model.ItemMapping{}, fmt.Errorf("failed to query item_mapping: %w", err)
	}
	return m, nil
}

// Insert creates a new mapping row and returns it with the generated id.
func (r *MappingRepository) Insert(m model.ItemMapping) (model.ItemMapping, error) {
	query := `
		INSERT INTO item_mapping (item_name, category, wear_tier, stattrak, last_used, current_price)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	res, err := r.db.Exec(query,
		m.ItemName, m.Category, m.WearTier, m.StatTrak,
		m.LastUsed.Format(time.RFC3339), m.CurrentPrice,
	)
	if err != nil {
		return model.ItemMapping{}, fmt.Errorf("failed to insert item_mapping: %w", err)
	}

	m.MappingID, err = res.LastInsertId()
	if err != nil {
		return model.ItemMapping{}, fmt.Errorf("failed to read item_mapping id: %w", err)
	}
	return m, nil
}

// TouchLastUsed updates the last_used timestamp of a mapping.
func (r *MappingRepository) TouchLastUsed(mappingID int64, at time.Time) error {
	_, err := r.db.Exec(
		"UPDATE item_mapping SET last_used = ? WHERE mapping_id = ?",
		at.Format(time.RFC3339), mappingID,
	)
	if err != nil {
		return fmt.Errorf("failed to touch item_mapping %d: %w", mappingID, err)
	}
	return nil
}

// UpdatePrice sets the market reference price of a mapping.
func (r *MappingRepository) UpdatePrice(mappingID int64, price float64) error {
	res, err := r.db.Exec(
		"UPDATE item_mapping SET current_price = ? WHERE mapping_id = ?",
		price, mappingID,
	)
	if err != nil {
		return fmt.Errorf("failed to update item_mapping price: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrMappingNotFound
	}
	return nil
}

func (r *MappingRepository) scanOne(row *sql.Row) (model.ItemMapping, error) {
	var m model.ItemMapping
	var lastUsedStr string

	err := row.Scan(
		&m.MappingID,
		&m.ItemName,
		&m.Category,
		&m.WearTier,
		&m.StatTrak,
		&lastUsedStr,
		&m.CurrentPrice,
	)
	if err != nil {
		return model.ItemMapping{}, err
	}

	m.LastUsed, err = parseTime(lastUsedStr)
	if err != nil {
		return model.ItemMapping{}, fmt.Errorf("failed to parse last_used: %w", err)
	}
	return m, nil
}
