// Package notification contains the Notification entity created by the
// dispatch fan-out: one record per (announcement, eligible courier) pair.
// The persisted status reflects only the durable-store outcome; best-effort
// side channels (email, push, realtime stream) never touch it.
package notification

import (
	"errors"
	"fmt"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/pkg/errs"
	"parcelmatch/internal/pkg/guard"
)

// ErrNotificationIsNotConstructed is returned when using an improperly
// initialized Notification.
var ErrNotificationIsNotConstructed = errors.New(
	"Notification must be created via NewNotification or RestoreNotification constructors")

// Type classifies what a notification is about.
type Type string

// NewAnnouncement notifies a courier that a matching announcement was published.
const NewAnnouncement Type = "NEW_ANNOUNCEMENT"

// Status represents the delivery state of a notification.
type Status int

const (
	// StatusUnknown catches uninitialized Status values.
	StatusUnknown Status = iota
	// Pending means the notification has been created but not yet stored.
	Pending
	// Sent means the durable store accepted the notification.
	Sent
	// Delivered means the recipient's device acknowledged receipt.
	Delivered
	// Read means the recipient opened the notification.
	Read
	// Failed means the durable store rejected the notification.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "Unknown",
		Pending:       "Pending",
		Sent:          "Sent",
		Delivered:     "Delivered",
		Read:          "Read",
		Failed:        "Failed",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
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

// Notification is the durable record of one courier being told about one
// announcement.
type Notification struct {
	id             kernel.UUID
	courierID      kernel.UUID
	announcementID kernel.UUID
	kind           Type
	title          string
	message        string
	status         Status
	createdAt      time.Time
	guard          guard.ConstructorGuard
}

// NewNotification creates a Pending notification for a courier about an
// announcement. Title and message must be non-empty.
func NewNotification(
	id kernel.UUID,
	courierID kernel.UUID,
	announcementID kernel.UUID,
	kind Type,
	title string,
	message string,
) (*Notification, error) {
	n := &Notification{
		kind:      kind,
		status:    Pending,
		createdAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setCourierID(courierID),
		n.setAnnouncementID(announcementID),
		n.setTitle(title),
		n.setMessage(message),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// RestoreNotification reconstructs a Notification from persistence.
func RestoreNotification(
	id kernel.UUID,
	courierID kernel.UUID,
	announcementID kernel.UUID,
	kind Type,
	title string,
	message string,
	status Status,
	createdAt time.Time,
) (*Notification, error) {
	n := &Notification{
		kind:      kind,
		createdAt: createdAt,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		n.setID(id),
		n.setCourierID(courierID),
		n.setAnnouncementID(announcementID),
		n.setTitle(title),
		n.setMessage(message),
		n.setStatus(status),
	); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate ensures the Notification was properly constructed.
func (n *Notification) Validate() error {
	if n == nil {
		return ErrNotificationIsNotConstructed
	}
	return n.guard.Validate(ErrNotificationIsNotConstructed)
}

// ID returns the notification's unique identifier.
func (n *Notification) ID() kernel.UUID { return n.id }

// CourierID returns the recipient courier's identifier.
func (n *Notification) CourierID() kernel.UUID { return n.courierID }

// AnnouncementID returns the announcement the notification is about.
func (n *Notification) AnnouncementID() kernel.UUID { return n.announcementID }

// Kind returns the notification type.
func (n *Notification) Kind() Type { return n.kind }

// Title returns the short headline shown to the courier.
func (n *Notification) Title() string { return n.title }

// Message returns the notification body.
func (n *Notification) Message() string { return n.message }

// Status returns the current delivery status.
func (n *Notification) Status() Status { return n.status }

// CreatedAt returns the creation timestamp.
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// MarkSent records that the durable store accepted the notification.
func (n *Notification) MarkSent() error {
	return n.transition(Pending, Sent)
}

// MarkFailed records that the durable store rejected the notification.
func (n *Notification) MarkFailed() error {
	return n.transition(Pending, Failed)
}

// MarkDelivered records device-level acknowledgment.
func (n *Notification) MarkDelivered() error {
	return n.transition(Sent, Delivered)
}

// MarkRead records that the courier opened the notification.
func (n *Notification) MarkRead() error {
	return n.transition(Delivered, Read)
}

func (n *Notification) transition(from Status, to Status) error {
	if n.status != from {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%s is not a valid status to become %s", n.status, to))
	}
	n.status = to
	return nil
}

func (n *Notification) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.id = id
	return nil
}

func (n *Notification) setCourierID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.courierID = id
	return nil
}

func (n *Notification) setAnnouncementID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	n.announcementID = id
	return nil
}

func (n *Notification) setTitle(title string) error {
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	n.title = title
	return nil
}

func (n *Notification) setMessage(message string) error {
	if message == "" {
		return errs.NewValueIsRequiredError("message")
	}
	n.message = message
	return nil
}

func (n *Notification) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	n.status = status
	return nil
}
