package commands

import (
	"context"
	"log/slog"

	"parcelmatch/internal/core/ports"
)

// UpdateCourierLocationCommandHandler persists a courier's reported position
// and refreshes the geo index document.
//
// The relational store is the source of truth; the index write happens after
// commit and is best-effort. A failed index write only makes the courier
// temporarily invisible to index-backed searches, and the next location
// report repairs it.
type UpdateCourierLocationCommandHandler struct {
	uowFactory CourierUoWFactory
	geoIndex   ports.GeoIndex
	log        *slog.Logger
}

// NewUpdateCourierLocationCommandHandler creates a handler for courier location updates.
func NewUpdateCourierLocationCommandHandler(
	uowFactory CourierUoWFactory,
	geoIndex ports.GeoIndex,
	log *slog.Logger,
) UpdateCourierLocationCommandHandler {
	return UpdateCourierLocationCommandHandler{
		uowFactory: uowFactory,
		geoIndex:   geoIndex,
		log:        log.With("component", "courier_lifecycle"),
	}
}

// Handle updates the courier aggregate and mirrors it into the geo index.
func (h UpdateCourierLocationCommandHandler) Handle(ctx context.Context, command UpdateCourierLocationCommand) error {
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

	repo := uow.CourierRepository()

	aggregate, err := repo.Get(ctx, command.CourierID())
	if err != nil {
		return err
	}

	if err = aggregate.UpdateLocation(command.Location()); err != nil {
		return err
	}

	if err = repo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if err = h.geoIndex.Index(ctx, aggregate); err != nil {
		h.log.WarnContext(ctx, "geo index refresh failed",
			"courier_id", aggregate.ID().String(), "error", err)
	}

	return nil
}
