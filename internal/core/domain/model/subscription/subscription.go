// Package subscription contains the Subscription entity: a courier's candidacy
// for a specific announcement. Subscriptions are created Pending by the
// arbitration consumer and promoted to Accepted or Rejected exactly once.
//
// Invariant enforced across the system: at most one Subscription per
// announcement ever reaches Accepted, and one (announcement, courier) pair
// never produces duplicate rows.
package subscription

import (
	"errors"
	"fmt"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"
	"parcelmatch/internal/pkg/guard"
)

// ErrSubscriptionIsNotConstructed is returned when using an improperly
// initialized Subscription.
var ErrSubscriptionIsNotConstructed = errors.New(
	"Subscription must be created via NewSubscription or RestoreSubscription constructors")

// Status represents the arbitration state of a subscription.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota
	// Pending means the courier's candidacy is registered and awaiting arbitration.
	Pending
	// Accepted means this subscription won arbitration and is binding.
	Accepted
	// Rejected means the candidacy lost arbitration or was withdrawn.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Pending:       "Pending",
		Accepted:      "Accepted",
		Rejected:      "Rejected",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s != Pending && s != Accepted && s != Rejected {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Subscription links one courier to one announcement with an arbitration status.
type Subscription struct {
	id             kernel.UUID
	announcementID kernel.UUID
	courierID      kernel.UUID
	status         Status
	createdAt      time.Time
	guard          guard.ConstructorGuard
}

// NewSubscription creates a Pending subscription for the given
// (announcement, courier) pair.
func NewSubscription(id kernel.UUID, announcementID kernel.UUID, courierID kernel.UUID) (*Subscription, error) {
	s := &Subscription{
		status:    Pending,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setAnnouncementID(announcementID),
		s.setCourierID(courierID),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreSubscription reconstructs a Subscription from persistence.
func RestoreSubscription(
	id kernel.UUID,
	announcementID kernel.UUID,
	courierID kernel.UUID,
	status Status,
	createdAt time.Time,
) (*Subscription, error) {
	s := &Subscription{
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setAnnouncementID(announcementID),
		s.setCourierID(courierID),
		s.setStatus(status),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Subscription was properly constructed.
func (s *Subscription) Validate() error {
	if s == nil {
		return ErrSubscriptionIsNotConstructed
	}
	return s.guard.Validate(ErrSubscriptionIsNotConstructed)
}

// ID returns the subscription's unique identifier.
func (s *Subscription) ID() kernel.UUID { return s.id }

// AnnouncementID returns the announcement the courier subscribed to.
func (s *Subscription) AnnouncementID() kernel.UUID { return s.announcementID }

// CourierID returns the subscribing courier's identifier.
func (s *Subscription) CourierID() kernel.UUID { return s.courierID }

// Status returns the current arbitration status.
func (s *Subscription) Status() Status { return s.status }

// CreatedAt returns the creation timestamp.
func (s *Subscription) CreatedAt() time.Time { return s.createdAt }

// IsPending reports whether the subscription is still awaiting arbitration.
func (s *Subscription) IsPending() bool { return s.status == Pending }

// Accept promotes the subscription to Accepted, making it binding.
// Only a Pending subscription can be accepted; the transition is final.
func (s *Subscription) Accept() error {
	return s.transition(Accepted)
}

// Reject marks the subscription as Rejected.
// Only a Pending subscription can be rejected; the transition is final.
func (s *Subscription) Reject() error {
	return s.transition(Rejected)
}

func (s *Subscription) transition(to Status) error {
	if s.status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to become %s", s.status, to))
	}
	s.status = to
	return nil
}

func (s *Subscription) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Subscription) setAnnouncementID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.announcementID = id
	return nil
}

func (s *Subscription) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.courierID = id
	return nil
}

func (s *Subscription) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	s.status = status
	return nil
}
