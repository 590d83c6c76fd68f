package announcement

import (
	"errors"
	"fmt"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"
	"parcelmatch/internal/pkg/guard"
)

var (
	// ErrAnnouncementIsNotConstructed is returned when an Announcement instance was not
	// created through the NewAnnouncement or RestoreAnnouncement factory methods.
	ErrAnnouncementIsNotConstructed = errors.New(
		"Announcement must be created via NewAnnouncement or RestoreAnnouncement constructors")

	// ErrMissingCoordinates is returned when an announcement lacks a geocoded pickup
	// or delivery point. This is a permanent data error: matching such an
	// announcement requires an upstream fix, not a retry.
	ErrMissingCoordinates = errors.New("announcement pickup or delivery coordinates are missing")
)

// Packet describes the parcel attached to an announcement.
// It is a small immutable descriptor carried through the matching pipeline
// so that notified couriers can judge whether a delivery is worth taking.
type Packet struct {
	// Description is the client's free-text summary of the parcel contents.
	Description string
	// WeightKg is the declared parcel weight in kilograms.
	WeightKg float64
}

// Announcement represents a client's delivery request. It is the aggregate root
// of the announcement lifecycle, owned by the client-facing CRUD subsystem.
//
// The matching core treats announcements as mostly read-only: it reads the
// pickup and delivery points to run the spatial search, and it performs exactly
// one write - the Published -> Assigned transition when a courier's
// subscription wins arbitration.
//
// Invariants:
//   - Must have a valid unique identifier and a valid owning client identifier
//   - Amount must not be negative
//   - Status transitions follow the Status state machine
//   - Pickup and delivery points, when present, are validated GeoPoints
//
// Pickup and delivery points are optional at the type level because upstream
// geocoding can fail; RequireRoute is how the matching engine distinguishes a
// routable announcement from a permanently broken one.
type Announcement struct {
	id        kernel.UUID
	clientID  kernel.UUID
	pickup    *kernel.GeoPoint
	delivery  *kernel.GeoPoint
	packet    Packet
	amount    float64
	status    Status
	createdAt time.Time
	guard     guard.ConstructorGuard
}

// NewAnnouncement creates a new Announcement in Draft status.
//
// Parameters:
//   - id: Unique identifier (must be a valid UUID)
//   - clientID: Owning client's identifier (must be a valid UUID)
//   - packet: Parcel descriptor
//   - amount: Offered payment (must not be negative)
//
// Returns:
//   - *Announcement: The created announcement if all validations pass
//   - error: Validation error if any parameter is invalid
func NewAnnouncement(id kernel.UUID, clientID kernel.UUID, packet Packet, amount float64) (*Announcement, error) {
	a := &Announcement{
		status:    Draft,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setClientID(clientID),
		a.setAmount(amount),
	); err != nil {
		return nil, err
	}

	a.packet = packet
	return a, nil
}

// RestoreAnnouncement reconstructs an Announcement from persistence.
// Unlike NewAnnouncement it accepts the full stored state, including the
// status and the optional geocoded route points.
//
// Returns an error if any stored value fails validation; this surfaces
// corrupted rows at the persistence boundary instead of deep inside the
// matching pipeline.
func RestoreAnnouncement(
	id kernel.UUID,
	clientID kernel.UUID,
	pickup *kernel.GeoPoint,
	delivery *kernel.GeoPoint,
	packet Packet,
	amount float64,
	status Status,
	createdAt time.Time,
) (*Announcement, error) {
	a := &Announcement{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setClientID(clientID),
		a.setAmount(amount),
		a.setStatus(status),
		a.setPickup(pickup),
		a.setDelivery(delivery),
	); err != nil {
		return nil, err
	}

	a.packet = packet
	return a, nil
}

// Validate ensures the Announcement was properly constructed through a factory method.
func (a *Announcement) Validate() error {
	if a == nil {
		return ErrAnnouncementIsNotConstructed
	}
	return a.guard.Validate(ErrAnnouncementIsNotConstructed)
}

// IsEqual compares two announcements by their unique identifiers.
func (a *Announcement) IsEqual(other *Announcement) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// ID returns the announcement's unique identifier.
func (a *Announcement) ID() kernel.UUID {
	return a.id
}

// ClientID returns the identifier of the client who owns the announcement.
func (a *Announcement) ClientID() kernel.UUID {
	return a.clientID
}

// Pickup returns the geocoded pickup point, or nil if geocoding is missing.
func (a *Announcement) Pickup() *kernel.GeoPoint {
	return a.pickup
}

// Delivery returns the geocoded delivery point, or nil if geocoding is missing.
func (a *Announcement) Delivery() *kernel.GeoPoint {
	return a.delivery
}

// Packet returns the parcel descriptor.
func (a *Announcement) Packet() Packet {
	return a.packet
}

// Amount returns the payment offered for the delivery.
func (a *Announcement) Amount() float64 {
	return a.amount
}

// Status returns the current lifecycle status.
func (a *Announcement) Status() Status {
	return a.status
}

// CreatedAt returns the creation timestamp.
func (a *Announcement) CreatedAt() time.Time {
	return a.createdAt
}

// SetRoute attaches the geocoded pickup and delivery points.
// Both points must be valid; the route is set atomically or not at all.
func (a *Announcement) SetRoute(pickup kernel.GeoPoint, delivery kernel.GeoPoint) error {
	if err := errors.Join(pickup.Validate(), delivery.Validate()); err != nil {
		return err
	}

	a.pickup = &pickup
	a.delivery = &delivery
	return nil
}

// RequireRoute returns the pickup and delivery points, or ErrMissingCoordinates
// when either is absent. The matching engine calls this before searching;
// a missing route is a permanent rejection, not a transient failure.
func (a *Announcement) RequireRoute() (kernel.GeoPoint, kernel.GeoPoint, error) {
	if a.pickup == nil || a.delivery == nil {
		return kernel.GeoPoint{}, kernel.GeoPoint{}, ErrMissingCoordinates
	}

	return *a.pickup, *a.delivery, nil
}

// Publish transitions the announcement from Draft to Published,
// making it visible to the matching pipeline.
func (a *Announcement) Publish() error {
	newStatus, err := a.status.Publish()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// Assign transitions the announcement to Assigned.
// This is the single write the matching core performs on the aggregate,
// executed when exactly one subscription wins arbitration. A second call
// fails because Assigned -> Assigned is not a legal transition.
func (a *Announcement) Assign() error {
	newStatus, err := a.status.Assign()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// Cancel withdraws the announcement. Matching and arbitration ignore
// cancelled announcements.
func (a *Announcement) Cancel() error {
	newStatus, err := a.status.Cancel()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

// Complete marks the delivery as carried out.
func (a *Announcement) Complete() error {
	newStatus, err := a.status.Complete()
	if err != nil {
		return err
	}

	a.status = newStatus
	return nil
}

func (a *Announcement) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Announcement) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.clientID = id
	return nil
}

func (a *Announcement) setAmount(amount float64) error {
	if amount < 0 {
		return errs.NewValueIsInvalidErrorWithCause("amount is invalid",
			fmt.Errorf("%f is negative", amount))
	}
	a.amount = amount
	return nil
}

func (a *Announcement) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	a.status = status
	return nil
}

func (a *Announcement) setPickup(pickup *kernel.GeoPoint) error {
	if pickup == nil {
		return nil
	}
	if err := pickup.Validate(); err != nil {
		return err
	}
	a.pickup = pickup
	return nil
}

func (a *Announcement) setDelivery(delivery *kernel.GeoPoint) error {
	if delivery == nil {
		return nil
	}
	if err := delivery.Validate(); err != nil {
		return err
	}
	a.delivery = delivery
	return nil
}
