// Package guard provides the constructor guard pattern used by domain objects
// to reject zero-value instances that bypassed their constructors.
//
// A ConstructorGuard embedded in a struct is only marked as constructed when
// the struct is created through NewConstructorGuard. Validate on a zero value
// fails, which lets value objects and aggregates detect improper construction.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no custom error is
// supplied and the guarded object was not created through its constructor.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks whether the embedding object went through a constructor.
// The zero value is "not constructed" and fails validation.
type ConstructorGuard struct {
	constructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
// Domain constructors embed the result into the object they build.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{constructed: true}
}

// Validate returns nil for a properly constructed guard. For a zero-value
// guard it returns notConstructedErr, or ErrDefaultConstructorGuard when
// notConstructedErr is nil.
func (g ConstructorGuard) Validate(notConstructedErr error) error {
	if g.constructed {
		return nil
	}
	if notConstructedErr != nil {
		return notConstructedErr
	}
	return ErrDefaultConstructorGuard
}
