package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"

	"parcelmatch/internal/core/domain/model/announcement"
	"parcelmatch/internal/core/ports"
	"parcelmatch/internal/metrics"
)

// DefaultMinAge is how long an announcement must sit without subscription
// attempts before the sweep re-enters it into matching.
const DefaultMinAge = 10 * time.Minute

// SweepUoW provides the read access the sweep needs: open announcements and
// the subscription attempts registered against them.
type SweepUoW interface {
	Begin(ctx context.Context) error
	Rollback(ctx context.Context) error
	AnnouncementRepository() ports.AnnouncementRepository
	SubscriptionRepository() ports.SubscriptionRepository
}

// SweepUoWFactory creates new sweep unit of work instances.
type SweepUoWFactory interface {
	Create() SweepUoW
}

// RematchSweepJob re-enters stale announcements into matching. An
// announcement still Published past minAge with no subscription attempts
// gets its published event re-emitted, so the matching consumer runs a
// fresh search over whatever couriers are around now.
type RematchSweepJob struct {
	uowFactory SweepUoWFactory
	publisher  ports.EventPublisher
	minAge     time.Duration
	cron       *cron.Cron
	logger     *slog.Logger

	republished prometheus.Counter
}

// NewRematchSweepJob creates the rematch sweep. A non-positive minAge falls
// back to DefaultMinAge.
func NewRematchSweepJob(
	uowFactory SweepUoWFactory,
	publisher ports.EventPublisher,
	minAge time.Duration,
	logger *slog.Logger,
) *RematchSweepJob {
	if minAge <= 0 {
		minAge = DefaultMinAge
	}

	return &RematchSweepJob{
		uowFactory:  uowFactory,
		publisher:   publisher,
		minAge:      minAge,
		cron:        cron.New(),
		logger:      logger.With("component", "rematch_sweep_job"),
		republished: metrics.NewRematchRepublishedTotal(),
	}
}

// Collectors returns the job's Prometheus collectors for registration.
func (j *RematchSweepJob) Collectors() []prometheus.Collector {
	return []prometheus.Collector{j.republished}
}

// Start schedules the sweep to run once a minute.
func (j *RematchSweepJob) Start() error {
	_, err := j.cron.AddFunc("* * * * *", func() {
		ctx := context.Background()
		if err := j.Sweep(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Rematch sweep failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Rematch sweep started (running every minute)",
		"min_age", j.minAge.String())
	return nil
}

// Stop stops the sweep.
func (j *RematchSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Rematch sweep stopped")
}

// Sweep runs one pass over the open announcements. It only reads state and
// re-emits events, so a failed pass leaves nothing to clean up.
func (j *RematchSweepJob) Sweep(ctx context.Context) error {
	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	open, err := uow.AnnouncementRepository().GetAllOpen(ctx)
	if err != nil {
		return err
	}

	cutoff := time.Now().Add(-j.minAge)

	for _, aggregate := range open {
		if aggregate.Status() != announcement.Published {
			continue
		}
		if aggregate.CreatedAt().After(cutoff) {
			continue
		}

		subscriptions, sErr := uow.SubscriptionRepository().GetAllByAnnouncement(ctx, aggregate.ID())
		if sErr != nil {
			return sErr
		}
		if len(subscriptions) > 0 {
			continue
		}

		if pErr := j.publisher.PublishAnnouncementPublished(ctx, aggregate); pErr != nil {
			return pErr
		}

		j.republished.Inc()
		j.logger.InfoContext(ctx, "Announcement re-entered into matching",
			"announcement_id", aggregate.ID().String(),
			"age", time.Since(aggregate.CreatedAt()).String())
	}

	return nil
}
