package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/skintrack/skin-ledger-backend/internal/model"
)

// AnalyticsRepository provides data access methods for the analytics table.
// The table is append-only; rows are never updated or deleted.
type AnalyticsRepository struct {
	db *sql.DB
}

// NewAnalyticsRepository creates a new repository instance.
func NewAnalyticsRepository(db *sql.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Insert appends one snapshot row.
func (r *AnalyticsRepository) Insert(snap model.AnalyticsSnapshot) error {
	query := `
		INSERT INTO analytics (id, date, period_type, total_value, total_profit,
		remaining_balance, item_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		snap.ID,
		snap.Date.Format(time.RFC3339),
		string(snap.PeriodType),
		snap.TotalValue,
		snap.TotalProfit,
		snap.RemainingBalance,
		snap.ItemCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analytics snapshot: %w", err)
	}
	return nil
}

// Latest returns the most recently recorded snapshot. The boolean reports
// whether any snapshot exists yet.
func (r *AnalyticsRepository) Latest() (model.AnalyticsSnapshot, bool, error) {
	query := `
		SELECT id, date, period_type, total_value, total_profit, remaining_balance, item_count
		FROM analytics
		ORDER BY date DESC
		LIMIT 1
	`

	var snap model.AnalyticsSnapshot
	var dateStr, periodStr string

	err := r.db.QueryRow(query).Scan(
		&snap.ID,
		&dateStr,
		&periodStr,
		&snap.TotalValue,
		&snap.TotalProfit,
		&snap.RemainingBalance,
		&snap.ItemCount,
	)
	if err == sql.ErrNoRows {
		return model.AnalyticsSnapshot{}, false, nil
	}
	if err != nil {
		return model.AnalyticsSnapshot{}, false, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	snap.Date, err = parseTime(dateStr)
	if err != nil {
		return model.AnalyticsSnapshot{}, false, fmt.Errorf("failed to parse snapshot date: %w", err)
	}
	snap.PeriodType = model.Period(periodStr)

	return snap, true, nil
}

// List returns all snapshots in chronological order.
func (r *AnalyticsRepository) List() ([]model.AnalyticsSnapshot, error) {
	query := `
		SELECT id, date, period_type, total_value, total_profit, remaining_balance, item_count
		FROM analytics
		ORDER BY date ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analytics table: %w", err)
	}
	defer rows.Close()

	var snapshots []model.AnalyticsSnapshot
	for rows.Next() {
		var snap model.AnalyticsSnapshot
		var dateStr, periodStr string

		err := rows.Scan(
			&snap.ID,
			&dateStr,
			&periodStr,
			&snap.TotalValue,
			&snap.TotalProfit,
			&snap.RemainingBalance,
			&snap.ItemCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analytics row: %w", err)
		}

		snap.Date, err = parseTime(dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse snapshot date: %w", err)
		}
		snap.PeriodType = model.Period(periodStr)

		snapshots = append(snapshots, snap)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analytics table: %w", err)
	}

	return snapshots, nil
}
