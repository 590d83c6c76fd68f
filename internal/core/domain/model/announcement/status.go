package announcement

import (
	"fmt"

	"parcelmatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an announcement.
// It implements a state machine with defined transitions to ensure
// announcements follow the correct business workflow.
//
// State transitions:
//
//	Draft ──> Published ──┬──> InNegotiation ──┬──> Assigned ──> Completed
//	                      │                    │
//	                      ├──> Assigned        └──> Cancelled
//	                      │
//	                      └──> Cancelled
//
// The matching core only performs the Published -> Assigned transition;
// every other transition belongs to the client-facing CRUD subsystem.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status of an announcement being composed.
	// Draft announcements are invisible to the matching pipeline.
	Draft

	// Published means the announcement is open for courier subscriptions.
	// Only Published announcements participate in matching and arbitration.
	Published

	// InNegotiation means a courier and the client are discussing terms.
	InNegotiation

	// Assigned means a courier's subscription has been accepted.
	// At most one courier can ever be bound to an announcement.
	Assigned

	// Cancelled means the client withdrew the announcement.
	// This is a final state.
	Cancelled

	// Completed means the delivery was carried out.
	// This is a final state.
	Completed
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:       "Unknown",
		Draft:         "Draft",
		Published:     "Published",
		InNegotiation: "InNegotiation",
		Assigned:      "Assigned",
		Cancelled:     "Cancelled",
		Completed:     "Completed",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Draft:         "Draft",
		Published:     "Published",
		InNegotiation: "InNegotiation",
		Assigned:      "Assigned",
		Cancelled:     "Cancelled",
		Completed:     "Completed",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsOpen reports whether the announcement still accepts courier subscriptions.
// Only Published announcements are open.
func (s Status) IsOpen() bool {
	return s == Published
}

// Publish transitions the status to Published.
//
// Valid transitions:
//   - Draft -> Published
//
// Returns:
//   - (Published, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Publish() (Status, error) {
	if s != Draft {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to publish", s.String()),
		)
	}

	return Published, nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Published -> Assigned (first accepted subscription)
//   - InNegotiation -> Assigned (terms agreed)
//
// Invalid transitions include Assigned -> Assigned: binding is exclusive,
// so a second assignment attempt is rejected rather than overwritten.
//
// Returns:
//   - (Assigned, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Assign() (Status, error) {
	if s != Published && s != InNegotiation {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}

	return Assigned, nil
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Assigned -> Completed (parcel delivered)
//
// Returns:
//   - (Completed, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Complete() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Draft -> Cancelled
//   - Published -> Cancelled
//   - InNegotiation -> Cancelled
//
// Returns:
//   - (Cancelled, nil) on valid transition
//   - (0, error) if transition is not allowed from current status
func (s Status) Cancel() (Status, error) {
	if s != Draft && s != Published && s != InNegotiation {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}
