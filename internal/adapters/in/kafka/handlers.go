package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/domain/model/announcement"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/services"
	"parcelmatch/internal/pkg/errs"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	// DefaultMaxSearchRounds caps the full expansion sweeps per announcement event.
	DefaultMaxSearchRounds = 3

	// DefaultRetryWait is the pause between sweeps while waiting for couriers
	// to come online or move closer.
	DefaultRetryWait = time.Minute
)

// MatchHandler runs one full matching sweep for an announcement.
type MatchHandler interface {
	Handle(ctx context.Context, command commands.MatchAnnouncementCommand) error
}

// DispatchHandler fans a matching result out to the matched couriers.
type DispatchHandler interface {
	Handle(ctx context.Context, command commands.DispatchNotificationsCommand) error
}

// RegisterHandler records a courier's subscription attempt.
type RegisterHandler interface {
	Handle(ctx context.Context, command commands.RegisterSubscriptionCommand) error
}

// CourierCreator mirrors courier registrations into the local store.
type CourierCreator interface {
	Handle(ctx context.Context, command commands.CreateCourierCommand) error
}

// LocationReporter records courier position reports.
type LocationReporter interface {
	Handle(ctx context.Context, command commands.UpdateCourierLocationCommand) error
}

// NewAnnouncementPublishedHandler runs the matching sweep for each published
// announcement. A sweep that finds nobody is retried after retryWait, up to
// maxRounds sweeps in total; announcements that can never match (gone, not
// open, no coordinates) are dropped on the first attempt.
func NewAnnouncementPublishedHandler(
	handler MatchHandler,
	maxRounds int,
	retryWait time.Duration,
	exhausted prometheus.Counter,
	log *slog.Logger,
) HandleFunc {
	if maxRounds <= 0 {
		maxRounds = DefaultMaxSearchRounds
	}
	if retryWait <= 0 {
		retryWait = DefaultRetryWait
	}
	log = log.With("component", "matching_consumer")

	return func(ctx context.Context, message *sarama.ConsumerMessage) error {
		var event AnnouncementPublishedEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.WarnContext(ctx, "bad payload, dropping", "error", err)
			return nil
		}

		announcementID, err := kernel.UUIDFromString(event.AnnouncementID)
		if err != nil {
			log.WarnContext(ctx, "bad announcement id, dropping",
				"announcement_id", event.AnnouncementID, "error", err)
			return nil
		}

		command, err := commands.NewMatchAnnouncementCommand(announcementID)
		if err != nil {
			return err
		}

		for round := 1; ; round++ {
			err := handler.Handle(ctx, command)
			switch {
			case err == nil:
				return nil

			case errors.Is(err, services.ErrNoEligibleCourier):
				if round >= maxRounds {
					exhausted.Inc()
					log.WarnContext(ctx, "no eligible courier, giving up",
						"announcement_id", announcementID.String(),
						"rounds", round,
					)
					return nil
				}

				log.InfoContext(ctx, "no eligible courier yet, waiting for next round",
					"announcement_id", announcementID.String(),
					"round", round,
				)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(retryWait):
				}

			case errors.Is(err, errs.ErrObjectNotFound),
				errors.Is(err, commands.ErrAnnouncementNotOpen),
				errors.Is(err, announcement.ErrMissingCoordinates):
				log.WarnContext(ctx, "announcement is not matchable, dropping",
					"announcement_id", announcementID.String(),
					"reason", err,
				)
				return nil

			default:
				return err
			}
		}
	}
}

// NewCouriersMatchedHandler dispatches notifications for each matching result.
func NewCouriersMatchedHandler(
	handler DispatchHandler,
	log *slog.Logger,
) HandleFunc {
	log = log.With("component", "dispatch_consumer")

	return func(ctx context.Context, message *sarama.ConsumerMessage) error {
		var event CouriersMatchedEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.WarnContext(ctx, "bad payload, dropping", "error", err)
			return nil
		}

		announcementID, err := kernel.UUIDFromString(event.AnnouncementID)
		if err != nil {
			log.WarnContext(ctx, "bad announcement id, dropping",
				"announcement_id", event.AnnouncementID, "error", err)
			return nil
		}

		courierIDs := make([]kernel.UUID, 0, len(event.CourierIDs))
		for _, raw := range event.CourierIDs {
			id, err := kernel.UUIDFromString(raw)
			if err != nil {
				log.WarnContext(ctx, "bad courier id, dropping event",
					"courier_id", raw, "error", err)
				return nil
			}
			courierIDs = append(courierIDs, id)
		}

		command, err := commands.NewDispatchNotificationsCommand(announcementID, courierIDs)
		if err != nil {
			log.WarnContext(ctx, "unbuildable dispatch command, dropping", "error", err)
			return nil
		}

		return handler.Handle(ctx, command)
	}
}

// NewSubscriptionRequestedHandler registers subscription attempts. Attempts
// that lost their window (announcement gone or no longer open) and duplicate
// attempts are dropped silently.
func NewSubscriptionRequestedHandler(
	handler RegisterHandler,
	log *slog.Logger,
) HandleFunc {
	log = log.With("component", "subscription_consumer")

	return func(ctx context.Context, message *sarama.ConsumerMessage) error {
		var event SubscriptionRequestedEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.WarnContext(ctx, "bad payload, dropping", "error", err)
			return nil
		}

		announcementID, err := kernel.UUIDFromString(event.AnnouncementID)
		if err != nil {
			log.WarnContext(ctx, "bad announcement id, dropping",
				"announcement_id", event.AnnouncementID, "error", err)
			return nil
		}

		courierID, err := kernel.UUIDFromString(event.CourierID)
		if err != nil {
			log.WarnContext(ctx, "bad courier id, dropping",
				"courier_id", event.CourierID, "error", err)
			return nil
		}

		command, err := commands.NewRegisterSubscriptionCommand(announcementID, courierID)
		if err != nil {
			return err
		}

		err = handler.Handle(ctx, command)
		switch {
		case err == nil:
			return nil

		case errors.Is(err, commands.ErrSubscriptionAlreadyExists):
			log.InfoContext(ctx, "duplicate subscription attempt, dropping",
				"announcement_id", announcementID.String(),
				"courier_id", courierID.String(),
			)
			return nil

		case errors.Is(err, commands.ErrAnnouncementNotOpen), errors.Is(err, errs.ErrObjectNotFound):
			log.WarnContext(ctx, "subscription window closed, dropping",
				"announcement_id", announcementID.String(),
				"courier_id", courierID.String(),
				"reason", err,
			)
			return nil

		default:
			return err
		}
	}
}

// NewCourierLifecycleHandler mirrors courier platform events into the local
// courier store and the geo index.
func NewCourierLifecycleHandler(
	createHandler CourierCreator,
	locationHandler LocationReporter,
	log *slog.Logger,
) HandleFunc {
	log = log.With("component", "courier_consumer")

	return func(ctx context.Context, message *sarama.ConsumerMessage) error {
		var event CourierLifecycleEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.WarnContext(ctx, "bad payload, dropping", "error", err)
			return nil
		}

		courierID, err := kernel.UUIDFromString(event.CourierID)
		if err != nil {
			log.WarnContext(ctx, "bad courier id, dropping",
				"courier_id", event.CourierID, "error", err)
			return nil
		}

		switch event.Kind {
		case CourierCreated:
			command, err := commands.NewCreateCourierCommand(courierID, event.Name)
			if err != nil {
				log.WarnContext(ctx, "unbuildable create command, dropping",
					"courier_id", courierID.String(), "error", err)
				return nil
			}
			if err := createHandler.Handle(ctx, command); err != nil {
				return err
			}
			if event.Latitude == nil || event.Longitude == nil {
				return nil
			}
			return reportLocation(ctx, locationHandler, courierID, *event.Latitude, *event.Longitude)

		case CourierLocationReported:
			if event.Latitude == nil || event.Longitude == nil {
				log.WarnContext(ctx, "location report without coordinates, dropping",
					"courier_id", courierID.String())
				return nil
			}
			return reportLocation(ctx, locationHandler, courierID, *event.Latitude, *event.Longitude)

		default:
			log.WarnContext(ctx, "unknown lifecycle event kind, dropping",
				"courier_id", courierID.String(), "kind", event.Kind)
			return nil
		}
	}
}

func reportLocation(
	ctx context.Context,
	handler LocationReporter,
	courierID kernel.UUID,
	latitude float64,
	longitude float64,
) error {
	location, err := kernel.NewGeoPoint(latitude, longitude)
	if err != nil {
		return err
	}

	command, err := commands.NewUpdateCourierLocationCommand(courierID, location)
	if err != nil {
		return err
	}

	return handler.Handle(ctx, command)
}
