// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"parcelmatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// AnnouncementRepoFactory provides access to the announcement repository within a transaction.
	AnnouncementRepoFactory interface {
		AnnouncementRepository() ports.AnnouncementRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// SubscriptionRepoFactory provides access to the subscription repository within a transaction.
	SubscriptionRepoFactory interface {
		SubscriptionRepository() ports.SubscriptionRepository
	}

	// NotificationRepoFactory provides access to the notification repository within a transaction.
	NotificationRepoFactory interface {
		NotificationRepository() ports.NotificationRepository
	}

	// AnnouncementUoW manages transactions for announcement-only operations.
	AnnouncementUoW interface {
		TxManager
		AnnouncementRepoFactory
	}

	// AnnouncementUoWFactory creates new announcement unit of work instances.
	AnnouncementUoWFactory interface {
		Create() AnnouncementUoW
	}

	// MatchingUoW manages transactions for the matching workflow: it reads the
	// announcement under search and, when the search index is unreachable,
	// falls back to the relational courier store.
	MatchingUoW interface {
		TxManager
		AnnouncementRepoFactory
		CourierRepoFactory
	}

	// MatchingUoWFactory creates new matching unit of work instances.
	MatchingUoWFactory interface {
		Create() MatchingUoW
	}

	// DispatchUoW manages transactions for notification dispatch.
	DispatchUoW interface {
		TxManager
		NotificationRepoFactory
	}

	// DispatchUoWFactory creates new dispatch unit of work instances.
	DispatchUoWFactory interface {
		Create() DispatchUoW
	}

	// SubscriptionUoW manages transactions spanning subscriptions and the
	// announcement they compete for. Used by registration and arbitration,
	// which must observe both aggregates consistently.
	SubscriptionUoW interface {
		TxManager
		SubscriptionRepoFactory
		AnnouncementRepoFactory
	}

	// SubscriptionUoWFactory creates new subscription unit of work instances.
	SubscriptionUoWFactory interface {
		Create() SubscriptionUoW
	}

	// CourierUoW manages transactions for courier-only operations.
	CourierUoW interface {
		TxManager
		CourierRepoFactory
	}

	// CourierUoWFactory creates new courier unit of work instances.
	CourierUoWFactory interface {
		Create() CourierUoW
	}
)
