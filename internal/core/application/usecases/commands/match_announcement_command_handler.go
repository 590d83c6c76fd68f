package commands

import (
	"context"
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"parcelmatch/internal/core/domain/model/courier"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/services"
	"parcelmatch/internal/core/ports"
	"parcelmatch/internal/metrics"
)

// ErrAnnouncementNotOpen is returned when matching is requested for an
// announcement that is no longer open to couriers.
var ErrAnnouncementNotOpen = errors.New("announcement is not open for matching")

// MatchAnnouncementCommandHandler runs the expanding detour-ellipse search for
// one announcement and reports the couriers it finds.
//
// One Handle call is one full sweep over the margin sequence. Candidates come
// from the geo index; when the index is unreachable the handler falls back to
// the relational courier store and filters the same way. On success it
// publishes a CouriersMatched event; persisting notifications is the dispatch
// handler's job.
//
// Outcomes callers should distinguish:
//   - errs.ObjectNotFoundError, ErrAnnouncementNotOpen,
//     announcement.ErrMissingCoordinates: permanent, do not retry
//   - services.ErrNoEligibleCourier: transient, retry after a wait
type MatchAnnouncementCommandHandler struct {
	uowFactory MatchingUoWFactory
	geoIndex   ports.GeoIndex
	publisher  ports.EventPublisher
	log        *slog.Logger

	runs       prometheus.Counter
	expansions prometheus.Counter
	fallbacks  prometheus.Counter
}

// NewMatchAnnouncementCommandHandler creates a handler for announcement matching.
func NewMatchAnnouncementCommandHandler(
	uowFactory MatchingUoWFactory,
	geoIndex ports.GeoIndex,
	publisher ports.EventPublisher,
	log *slog.Logger,
) MatchAnnouncementCommandHandler {
	return MatchAnnouncementCommandHandler{
		uowFactory: uowFactory,
		geoIndex:   geoIndex,
		publisher:  publisher,
		log:        log.With("component", "matching"),
		runs:       metrics.NewMatchingRunsTotal(),
		expansions: metrics.NewMatchingExpansionsTotal(),
		fallbacks:  metrics.NewGeoIndexFallbacksTotal(),
	}
}

// Collectors returns the handler's Prometheus collectors for registration.
func (h MatchAnnouncementCommandHandler) Collectors() []prometheus.Collector {
	return []prometheus.Collector{h.runs, h.expansions, h.fallbacks}
}

// Handle runs one full expanding search for the command's announcement.
func (h MatchAnnouncementCommandHandler) Handle(ctx context.Context, command MatchAnnouncementCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.AnnouncementRepository().Get(ctx, command.AnnouncementID())
	if err != nil {
		return err
	}

	if !aggregate.Status().IsOpen() {
		return ErrAnnouncementNotOpen
	}

	pickup, delivery, err := aggregate.RequireRoute()
	if err != nil {
		return err
	}

	plan, err := services.NewSearchPlan(pickup, delivery)
	if err != nil {
		return err
	}

	h.runs.Inc()

	for i, attempt := range plan.Attempts() {
		if i > 0 {
			h.expansions.Inc()
		}

		candidates, cErr := h.candidates(ctx, uow, pickup, attempt.DMaxKm)
		if cErr != nil {
			return cErr
		}

		eligible, eErr := plan.EligibleCouriers(candidates, attempt)
		if eErr != nil {
			return eErr
		}

		if len(eligible) == 0 {
			continue
		}

		courierIDs := make([]kernel.UUID, 0, len(eligible))
		for _, c := range eligible {
			courierIDs = append(courierIDs, c.ID())
		}

		h.log.InfoContext(ctx, "couriers matched",
			"announcement_id", aggregate.ID().String(),
			"delta_km", attempt.DeltaKm,
			"couriers", len(courierIDs))

		return h.publisher.PublishCouriersMatched(ctx, aggregate.ID(), courierIDs)
	}

	return services.ErrNoEligibleCourier
}

// candidates fetches matchable couriers around the pickup point. A courier
// inside the detour ellipse is never farther than dMax from pickup, so the
// radius pre-filter cannot lose eligible candidates.
func (h MatchAnnouncementCommandHandler) candidates(
	ctx context.Context,
	uow MatchingUoW,
	pickup kernel.GeoPoint,
	radiusKm float64,
) ([]*courier.Courier, error) {
	found, err := h.geoIndex.FindCandidates(ctx, pickup, radiusKm)
	if err == nil {
		return found, nil
	}

	h.fallbacks.Inc()
	h.log.WarnContext(ctx, "geo index unavailable, using relational fallback", "error", err)

	return uow.CourierRepository().GetAllMatchable(ctx)
}
