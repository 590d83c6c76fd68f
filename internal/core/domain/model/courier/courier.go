package courier

import (
	"errors"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"
	"parcelmatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New(
		"Courier must be created via NewCourier or RestoreCourier constructors")
)

// Courier represents a delivery person as seen by the matching core: an
// identity, a display name, the last reported GPS position, and two flags
// managed by external collaborators.
//
// The core never mutates courier state except for the position updates fed in
// by the location-update collaborator; registration, validation and
// availability toggling all live outside this module.
//
// Flags:
//   - isActive: the courier's account is approved and not suspended
//   - isAvailable: the courier is currently willing to take deliveries
//
// Only active, available couriers with a known position can be matched.
type Courier struct {
	id          kernel.UUID
	name        string
	location    *kernel.GeoPoint
	isActive    bool
	isAvailable bool
	guard       guard.ConstructorGuard
}

// NewCourier creates a new Courier without a known position.
// The courier starts active and available; position arrives later through
// UpdateLocation when the courier's device first reports in.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - name: Display name (must be non-empty)
//
// Returns:
//   - *Courier: A fully initialized courier
//   - error: Validation error if any parameter is invalid
func NewCourier(id kernel.UUID, name string) (*Courier, error) {
	c := &Courier{
		isActive:    true,
		isAvailable: true,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a Courier from persistence or from a search
// index document, including the optional last known position and both flags.
func RestoreCourier(
	id kernel.UUID,
	name string,
	location *kernel.GeoPoint,
	isActive bool,
	isAvailable bool,
) (*Courier, error) {
	c := &Courier{
		isActive:    isActive,
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate ensures the Courier was properly constructed through a factory method.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Location returns the last reported position, or nil if the courier has
// never reported one.
func (c *Courier) Location() *kernel.GeoPoint {
	return c.location
}

// IsActive reports whether the courier's account is approved and not suspended.
func (c *Courier) IsActive() bool {
	return c.isActive
}

// IsAvailable reports whether the courier is currently taking deliveries.
func (c *Courier) IsAvailable() bool {
	return c.isAvailable
}

// IsMatchable reports whether the courier can participate in matching:
// active, available, and with a known position.
func (c *Courier) IsMatchable() bool {
	return c.isActive && c.isAvailable && c.location != nil
}

// UpdateLocation records a new reported position for the courier.
func (c *Courier) UpdateLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}

	c.location = &location
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setLocation(location *kernel.GeoPoint) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
