// Package scheduler runs the periodic maintenance jobs: cooling-state
// refresh and analytics snapshots.
package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/skintrack/skin-ledger-backend/internal/config"
	"github.com/skintrack/skin-ledger-backend/internal/model"
	"github.com/skintrack/skin-ledger-backend/internal/service"
)

// Scheduler owns the cron instance and the services its jobs call.
type Scheduler struct {
	cron      *cron.Cron
	inventory *service.InventoryService
	stats     *service.StatsService
	period    model.Period
}

// New builds a scheduler; call Start to register and begin the jobs.
func New(inventory *service.InventoryService, stats *service.StatsService) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		inventory: inventory,
		stats:     stats,
		period:    model.PeriodWeek,
	}
}

// Start registers the jobs from the configured cron expressions and starts
// the cron loop. Returns an error if an expression does not parse.
func (s *Scheduler) Start(cfg config.SchedulerConfig) error {
	if p := model.Period(cfg.SnapshotPeriod); p.Valid() {
		s.period = p
	} else if cfg.SnapshotPeriod != "" {
		log.Printf("Scheduler: ignoring invalid snapshot period %q, using %q", cfg.SnapshotPeriod, s.period)
	}

	if _, err := s.cron.AddFunc(cfg.CoolingRefreshSchedule, s.refreshCooling); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc(cfg.SnapshotSchedule, s.recordSnapshot); err != nil {
		return err
	}

	s.cron.Start()
	log.Printf("Scheduler started: cooling refresh %q, snapshots %q (%s)",
		cfg.CoolingRefreshSchedule, cfg.SnapshotSchedule, s.period)
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Printf("Scheduler stopped")
}

func (s *Scheduler) refreshCooling() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	transitioned, err := s.inventory.RefreshCoolingStates(ctx, time.Now().UTC())
	if err != nil {
		log.Printf("Scheduler: cooling refresh failed: %v", err)
		return
	}
	if transitioned > 0 {
		log.Printf("Scheduler: %d item(s) transitioned from cooling to holding", transitioned)
	}
}

func (s *Scheduler) recordSnapshot() {
	recorded, err := s.stats.RecordSnapshot(time.Now().UTC(), s.period)
	if err != nil {
		log.Printf("Scheduler: snapshot failed: %v", err)
		return
	}
	if recorded {
		log.Printf("Scheduler: recorded %s analytics snapshot", s.period)
	}
}
