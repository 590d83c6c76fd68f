package commands

import (
	"context"

	"parcelmatch/internal/core/domain/model/courier"
)

// CreateCourierCommandHandler persists newly registered couriers.
// The new courier has no position yet, so there is nothing to index until
// the first location report arrives.
type CreateCourierCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewCreateCourierCommandHandler creates a handler for courier registration.
func NewCreateCourierCommandHandler(uowFactory CourierUoWFactory) CreateCourierCommandHandler {
	return CreateCourierCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the courier aggregate and persists it within a transaction.
func (h CreateCourierCommandHandler) Handle(ctx context.Context, command CreateCourierCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	aggregate, err := courier.NewCourier(command.CourierID(), command.Name())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CourierRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
