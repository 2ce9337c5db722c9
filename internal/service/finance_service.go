package service

import (
	"context"

	"github.com/skintrack/skin-ledger-backend/internal/model"
	"github.com/skintrack/skin-ledger-backend/internal/repository"
	"github.com/skintrack/skin-ledger-backend/internal/store"
	"github.com/skintrack/skin-ledger-backend/internal/validation"
)

// settingInvestmentSeeded marks that the configured starting investment has
// been applied once. Without the marker a restart would re-seed.
const settingInvestmentSeeded = "investment_seeded"

// FinanceService handles the counter-only operations: investment
// adjustments and fees.
type FinanceService struct {
	store        *store.LedgerStore
	settingsRepo *repository.SettingsRepository
}

// NewFinanceService creates a new FinanceService.
func NewFinanceService(ledger *store.LedgerStore, settingsRepo *repository.SettingsRepository) *FinanceService {
	return &FinanceService{store: ledger, settingsRepo: settingsRepo}
}

// Counters returns a copy of the current running totals.
func (s *FinanceService) Counters() model.Counters {
	return s.store.Counters()
}

// AdjustInvestment moves total investment and remaining balance together by
// delta. Negative deltas withdraw; there is no lower bound, going negative
// is the caller's responsibility to avoid.
func (s *FinanceService) AdjustInvestment(ctx context.Context, delta float64) (model.Counters, error) {
	err := s.store.Update(ctx, func(tx *store.Txn) error {
		if err := tx.AdjustCounter(store.CounterInvestment, delta); err != nil {
			return err
		}
		return tx.AdjustCounter(store.CounterRemaining, delta)
	})
	if err != nil {
		return model.Counters{}, err
	}
	return s.store.Counters(), nil
}

// AddFee records a non-negative fee: the remaining balance drops and the
// fee total grows by amount. Negative amounts are rejected before any
// counter moves.
func (s *FinanceService) AddFee(ctx context.Context, amount float64) (model.Counters, error) {
	if err := validation.ValidateFee(amount); err != nil {
		return model.Counters{}, err
	}

	err := s.store.Update(ctx, func(tx *store.Txn) error {
		if err := tx.AdjustCounter(store.CounterRemaining, -amount); err != nil {
			return err
		}
		return tx.AdjustCounter(store.CounterFees, amount)
	})
	if err != nil {
		return model.Counters{}, err
	}
	return s.store.Counters(), nil
}

// SeedInitialInvestment applies the configured starting investment exactly
// once per container. The boolean reports whether seeding happened on this
// call.
func (s *FinanceService) SeedInitialInvestment(ctx context.Context, amount float64) (bool, error) {
	if amount == 0 {
		return false, nil
	}

	_, seeded, err := s.settingsRepo.Get(settingInvestmentSeeded)
	if err != nil {
		return false, err
	}
	if seeded {
		return false, nil
	}

	if _, err := s.AdjustInvestment(ctx, amount); err != nil {
		return false, err
	}
	if err := s.settingsRepo.Set(settingInvestmentSeeded, "true"); err != nil {
		return false, err
	}
	return true, nil
}
