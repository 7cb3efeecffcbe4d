// internal/service/mirror_reconciliation.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dangerclosesec/onboarding/internal/model"
	"github.com/dangerclosesec/onboarding/internal/repository"
)

// ReconcileResult counts what a reconciliation pass did.
type ReconcileResult struct {
	Checked int `json:"checked"`
	Synced  int `json:"synced"`
	Failed  int `json:"failed"`
}

// MirrorReconciler re-mirrors submissions whose CRM linkage is still unset,
// either once on demand or periodically.
type MirrorReconciler struct {
	repo         repository.SubmissionRepositoryIface
	sync         Syncer
	syncInterval time.Duration
	batchSize    int
	dryRun       bool // If true, don't make changes, just log
	logger       *slog.Logger
	stopChan     chan struct{}
	stoppedChan  chan struct{}
}

// NewMirrorReconciler creates a new reconciliation service
func NewMirrorReconciler(
	repo repository.SubmissionRepositoryIface,
	sync Syncer,
	syncInterval time.Duration,
	logger *slog.Logger,
) *MirrorReconciler {
	if syncInterval == 0 {
		syncInterval = 30 * time.Minute
	}

	return &MirrorReconciler{
		repo:         repo,
		sync:         sync,
		syncInterval: syncInterval,
		batchSize:    50,
		logger:       logger,
		stopChan:     make(chan struct{}),
		stoppedChan:  make(chan struct{}),
	}
}

// Start begins the periodic reconciliation process
func (s *MirrorReconciler) Start() {
	go func() {
		ticker := time.NewTicker(s.syncInterval)
		defer ticker.Stop()
		defer close(s.stoppedChan)

		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
				if _, err := s.ReconcileAll(ctx); err != nil {
					s.logger.Error("reconciliation failed", "error", err)
				}
				cancel()
			case <-s.stopChan:
				return
			}
		}
	}()
}

// Stop halts the reconciliation process
func (s *MirrorReconciler) Stop() {
	close(s.stopChan)
	<-s.stoppedChan
}

// SetBatchSize sets the number of records processed between cancellation checks
func (s *MirrorReconciler) SetBatchSize(size int) {
	if size > 0 {
		s.batchSize = size
	}
}

// SetDryRun sets whether to actually make changes or just log what would be done
func (s *MirrorReconciler) SetDryRun(dryRun bool) {
	s.dryRun = dryRun
}

// ReconcileAll runs one pass over both submission kinds.
func (s *MirrorReconciler) ReconcileAll(ctx context.Context) (ReconcileResult, error) {
	s.logger.InfoContext(ctx, "starting crm mirror reconciliation", "dry_run", s.dryRun)

	var total ReconcileResult
	for _, kind := range []model.Kind{model.KindCampaign, model.KindOrganization} {
		res, err := s.ReconcileKind(ctx, kind)
		total.Checked += res.Checked
		total.Synced += res.Synced
		total.Failed += res.Failed
		if err != nil {
			return total, fmt.Errorf("reconciling %s submissions: %w", kind, err)
		}
	}

	s.logger.InfoContext(ctx, "completed crm mirror reconciliation",
		"checked", total.Checked,
		"synced", total.Synced,
		"failed", total.Failed)
	return total, nil
}

// ReconcileKind re-mirrors the unmirrored submissions of one kind.
func (s *MirrorReconciler) ReconcileKind(ctx context.Context, kind model.Kind) (ReconcileResult, error) {
	var res ReconcileResult

	subs, err := s.repo.FindUnmirrored(ctx, kind)
	if err != nil {
		return res, fmt.Errorf("fetching unmirrored submissions: %w", err)
	}

	s.logger.InfoContext(ctx, "reconciling submissions", "type", kind, "count", len(subs), "dry_run", s.dryRun)

	for i := 0; i < len(subs); i += s.batchSize {
		end := i + s.batchSize
		if end > len(subs) {
			end = len(subs)
		}

		for _, sub := range subs[i:end] {
			res.Checked++
			b := sub.Base()

			if s.dryRun {
				s.logger.InfoContext(ctx, "would mirror submission (dry run)",
					"submission_id", b.ID.String(),
					"type", kind,
					"slug", b.Slug)
				continue
			}

			if _, err := s.sync.Sync(ctx, sub); err != nil {
				res.Failed++
				s.logger.ErrorContext(ctx, "failed to mirror submission",
					"submission_id", b.ID.String(),
					"error", err)
				continue
			}
			res.Synced++
		}

		// Check if context is done between batches
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}
	}

	return res, nil
}
