package queueservice

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/dftlabs/refengine/internal/domain"
)

//go:generate mockgen -source=queueservice.go -destination=mock_queueservice.go -package=queueservice

const defaultMaxAttempts = 5

type JobWriter interface {
	Enqueue(ctx context.Context, job *domain.RecalcJob) (bool, error)
}

// Service is the enqueue API the purchase flow calls after a buy: it
// creates the PENDING level-recalc job that the worker later claims.
type Service struct {
	jobs  JobWriter
	clock clockwork.Clock
}

func New(jobs JobWriter, clock clockwork.Clock) *Service {
	return &Service{jobs: jobs, clock: clock}
}

// Request carries the optional knobs of one enqueue call.
type Request struct {
	UserID      int64
	Reason      string
	Payload     domain.JobPayload
	DedupeKey   *string
	MaxAttempts int
	ScheduleAt  *time.Time
}

// Enqueue creates a PENDING job. Returns false when a dedupe key matched a
// live job and the insert was suppressed.
func (s *Service) Enqueue(ctx context.Context, req Request) (bool, error) {
	maxAttempts := req.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	scheduledAt := s.clock.Now()
	if req.ScheduleAt != nil {
		scheduledAt = *req.ScheduleAt
	}

	created, err := s.jobs.Enqueue(ctx, &domain.RecalcJob{
		UserID:      req.UserID,
		Reason:      req.Reason,
		MaxAttempts: maxAttempts,
		ScheduledAt: scheduledAt,
		Payload:     req.Payload,
		DedupeKey:   req.DedupeKey,
	})
	if err != nil {
		return false, err
	}
	if !created {
		zap.L().Info("enqueue suppressed by dedupe key",
			zap.Int64("userID", req.UserID),
			zap.Stringp("dedupeKey", req.DedupeKey))
	}
	return created, nil
}
