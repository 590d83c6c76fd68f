// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the parcel marketplace. It implements
// business workflows that don't naturally belong to a single aggregate root.
//
// The package includes:
//   - SearchPlan: A domain service driving the expanding detour-ellipse courier search
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
