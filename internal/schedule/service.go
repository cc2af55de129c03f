// Package schedule runs the batch scheduling pipeline: validate the
// incoming records, resolve the provider credential once, then provision
// meetings strictly in input order with fail-fast semantics.
package schedule

import (
	"context"

	"go.uber.org/zap"

	"github.com/webinar-wrapper/backend/internal/meeting"
	"github.com/webinar-wrapper/backend/internal/models"
	"github.com/webinar-wrapper/backend/internal/validation"
)

// NoValidRecordsError means every record in the batch failed validation.
// Errors carries the aggregated per-row messages.
type NoValidRecordsError struct {
	Errors []string
}

func (e *NoValidRecordsError) Error() string {
	return "No valid webinars found to schedule"
}

// Result is a successful (possibly partial) scheduling pass.
type Result struct {
	Scheduled []models.ScheduledWebinar
	Warnings  []string // validation messages for skipped rows
	Skipped   int
}

// Service orchestrates one scheduling batch.
type Service struct {
	logger *zap.Logger
}

// NewService creates the scheduling orchestrator.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{logger: logger}
}

// Schedule validates records, resolves the provider credential, and
// provisions each valid record in input order. The first provisioning
// failure aborts the batch: already-provisioned meetings are discarded so
// the caller never sees a partially scheduled batch.
func (s *Service) Schedule(ctx context.Context, provider meeting.Provider, records []models.WebinarRecord) (*Result, error) {
	valid, warnings := validation.Partition(records, validation.Scheduling)
	if len(valid) == 0 {
		return nil, &NoValidRecordsError{Errors: warnings}
	}
	if len(warnings) > 0 {
		s.logger.Warn("validation warnings",
			zap.String("provider", provider.Name()),
			zap.Strings("warnings", warnings),
		)
	}

	session, err := provider.Begin(ctx)
	if err != nil {
		return nil, err
	}

	scheduled := make([]models.ScheduledWebinar, 0, len(valid))
	for _, rec := range valid {
		m, err := session.Provision(ctx, rec)
		if err != nil {
			s.logger.Error("provisioning aborted",
				zap.String("provider", provider.Name()),
				zap.String("webinar", rec.Name),
				zap.Int("discarded", len(scheduled)),
				zap.Error(err),
			)
			return nil, err
		}
		scheduled = append(scheduled, models.ScheduledWebinar{
			WebinarRecord: rec,
			MeetingRecord: *m,
		})
	}

	return &Result{
		Scheduled: scheduled,
		Warnings:  warnings,
		Skipped:   len(records) - len(valid),
	}, nil
}
