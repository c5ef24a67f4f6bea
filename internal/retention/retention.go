// Package retention schedules the periodic cleanup of aged audit records
package retention

import (
	"context"
	"fmt"
	"log"
	"muniportal/internal/config"
	"muniportal/internal/repository"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper runs the audit retention policy on a cron schedule. With a
// retention of zero days the sweeper is a no-op and records are kept
// forever.
type Sweeper struct {
	auditRepo repository.AuditLogRepository
	cfg       config.AuditConfig
	cron      *cron.Cron
}

// NewSweeper creates a new retention sweeper
func NewSweeper(auditRepo repository.AuditLogRepository, cfg config.AuditConfig) *Sweeper {
	// Create a new cron scheduler with seconds disabled
	c := cron.New(cron.WithParser(cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)))

	return &Sweeper{
		auditRepo: auditRepo,
		cfg:       cfg,
		cron:      c,
	}
}

// Start registers the cleanup job and starts the scheduler. It returns an
// error when the configured schedule cannot be parsed.
func (s *Sweeper) Start() error {
	if s.cfg.RetentionDays <= 0 {
		log.Printf("retention: disabled, audit records are kept indefinitely")
		return nil
	}

	_, err := s.cron.AddFunc(s.cfg.RetentionSchedule, func() {
		if err := s.Sweep(context.Background()); err != nil {
			log.Printf("retention: sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid retention schedule %q: %w", s.cfg.RetentionSchedule, err)
	}

	s.cron.Start()
	log.Printf("retention: sweeping records older than %d days on schedule %q",
		s.cfg.RetentionDays, s.cfg.RetentionSchedule)
	return nil
}

// Sweep removes audit records older than the configured retention
func (s *Sweeper) Sweep(ctx context.Context) error {
	olderThan := time.Duration(s.cfg.RetentionDays) * 24 * time.Hour
	return s.auditRepo.CleanupOld(ctx, olderThan)
}

// Stop halts the scheduler, waiting for a running sweep to finish
func (s *Sweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
