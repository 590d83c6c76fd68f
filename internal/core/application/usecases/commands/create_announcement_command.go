package commands

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/guard"
)

var (
	ErrCreateAnnouncementCommandIsNotConstructed = errors.New(
		"CreateAnnouncementCommand must be created via NewCreateAnnouncementCommand constructor",
	)
	ErrDescriptionIsRequired = errors.New("description is required")
	ErrWeightIsInvalid       = errors.New("weight must be greater than 0")
	ErrAmountIsInvalid       = errors.New("amount must be greater than 0")
)

// CreateAnnouncementCommand represents a client's request to create a new
// delivery announcement in Draft status. The pickup and delivery points are
// attached here when the client already knows them; an announcement created
// without them can still be published but will never match.
//
// Example:
//
//	id := kernel.NewUUID()
//	cmd, err := NewCreateAnnouncementCommand(id, clientID, "Spare parts", 2.5, 4500, &pickup, &delivery)
//	if err != nil {
//	    return fmt.Errorf("invalid announcement data: %w", err)
//	}
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create announcement: %w", err)
//	}
type CreateAnnouncementCommand struct { //nolint:recvcheck //using for validation
	announcementID kernel.UUID
	clientID       kernel.UUID
	description    string
	weightKg       float64
	amount         float64
	pickup         *kernel.GeoPoint
	delivery       *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCreateAnnouncementCommand creates a command to register a new announcement.
// Pickup and delivery are optional but must be provided together and be valid
// when present.
func NewCreateAnnouncementCommand(
	announcementID kernel.UUID,
	clientID kernel.UUID,
	description string,
	weightKg float64,
	amount float64,
	pickup *kernel.GeoPoint,
	delivery *kernel.GeoPoint,
) (CreateAnnouncementCommand, error) {
	cmd := CreateAnnouncementCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setAnnouncementID(announcementID),
		cmd.setClientID(clientID),
		cmd.setDescription(description),
		cmd.setWeightKg(weightKg),
		cmd.setAmount(amount),
		cmd.setRoute(pickup, delivery),
	); err != nil {
		return CreateAnnouncementCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateAnnouncementCommand) Validate() error {
	return c.guard.Validate(ErrCreateAnnouncementCommandIsNotConstructed)
}

// AnnouncementID returns the unique identifier for the announcement.
func (c CreateAnnouncementCommand) AnnouncementID() kernel.UUID {
	return c.announcementID
}

// ClientID returns the identifier of the client creating the announcement.
func (c CreateAnnouncementCommand) ClientID() kernel.UUID {
	return c.clientID
}

// Description returns the packet description.
func (c CreateAnnouncementCommand) Description() string {
	return c.description
}

// WeightKg returns the packet weight in kilograms.
func (c CreateAnnouncementCommand) WeightKg() float64 {
	return c.weightKg
}

// Amount returns the offered payment amount.
func (c CreateAnnouncementCommand) Amount() float64 {
	return c.amount
}

// Pickup returns the pickup point, or nil if not yet known.
func (c CreateAnnouncementCommand) Pickup() *kernel.GeoPoint {
	return c.pickup
}

// Delivery returns the delivery point, or nil if not yet known.
func (c CreateAnnouncementCommand) Delivery() *kernel.GeoPoint {
	return c.delivery
}

func (c *CreateAnnouncementCommand) setAnnouncementID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.announcementID = id
	return nil
}

func (c *CreateAnnouncementCommand) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.clientID = id
	return nil
}

func (c *CreateAnnouncementCommand) setDescription(description string) error {
	if description == "" {
		return ErrDescriptionIsRequired
	}

	c.description = description
	return nil
}

func (c *CreateAnnouncementCommand) setWeightKg(weightKg float64) error {
	if weightKg <= 0 {
		return ErrWeightIsInvalid
	}

	c.weightKg = weightKg
	return nil
}

func (c *CreateAnnouncementCommand) setAmount(amount float64) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}

	c.amount = amount
	return nil
}

func (c *CreateAnnouncementCommand) setRoute(pickup *kernel.GeoPoint, delivery *kernel.GeoPoint) error {
	if pickup == nil && delivery == nil {
		return nil
	}
	if pickup == nil || delivery == nil {
		return errors.New("pickup and delivery must be provided together")
	}

	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}

	c.pickup = pickup
	c.delivery = delivery
	return nil
}
