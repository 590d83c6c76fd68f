package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/domain/model/announcement"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/services"
	"parcelmatch/internal/metrics"
	"parcelmatch/internal/pkg/errs"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type matchFunc func(context.Context, commands.MatchAnnouncementCommand) error

func (f matchFunc) Handle(ctx context.Context, cmd commands.MatchAnnouncementCommand) error {
	return f(ctx, cmd)
}

type dispatchFunc func(context.Context, commands.DispatchNotificationsCommand) error

func (f dispatchFunc) Handle(ctx context.Context, cmd commands.DispatchNotificationsCommand) error {
	return f(ctx, cmd)
}

type registerFunc func(context.Context, commands.RegisterSubscriptionCommand) error

func (f registerFunc) Handle(ctx context.Context, cmd commands.RegisterSubscriptionCommand) error {
	return f(ctx, cmd)
}

type createCourierFunc func(context.Context, commands.CreateCourierCommand) error

func (f createCourierFunc) Handle(ctx context.Context, cmd commands.CreateCourierCommand) error {
	return f(ctx, cmd)
}

type reportLocationFunc func(context.Context, commands.UpdateCourierLocationCommand) error

func (f reportLocationFunc) Handle(ctx context.Context, cmd commands.UpdateCourierLocationCommand) error {
	return f(ctx, cmd)
}

func message(t *testing.T, event any) *sarama.ConsumerMessage {
	t.Helper()

	payload, err := json.Marshal(event)
	require.NoError(t, err)

	return &sarama.ConsumerMessage{Value: payload}
}

func TestAnnouncementPublishedHandler_MatchOnFirstRound(t *testing.T) {
	announcementID := kernel.NewUUID()

	calls := 0
	handler := NewAnnouncementPublishedHandler(
		matchFunc(func(_ context.Context, cmd commands.MatchAnnouncementCommand) error {
			calls++
			assert.True(t, cmd.AnnouncementID().IsEqual(announcementID))
			return nil
		}),
		3, time.Millisecond, metrics.NewMatchingExhaustedTotal(), discardLogger(),
	)

	event := AnnouncementPublishedEvent{AnnouncementID: announcementID.String()}
	err := handler(t.Context(), message(t, event))

	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestAnnouncementPublishedHandler_RetriesUntilCourierAppears(t *testing.T) {
	announcementID := kernel.NewUUID()

	calls := 0
	handler := NewAnnouncementPublishedHandler(
		matchFunc(func(context.Context, commands.MatchAnnouncementCommand) error {
			calls++
			if calls < 2 {
				return services.ErrNoEligibleCourier
			}
			return nil
		}),
		3, time.Millisecond, metrics.NewMatchingExhaustedTotal(), discardLogger(),
	)

	event := AnnouncementPublishedEvent{AnnouncementID: announcementID.String()}
	err := handler(t.Context(), message(t, event))

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestAnnouncementPublishedHandler_GivesUpAfterMaxRounds(t *testing.T) {
	exhausted := metrics.NewMatchingExhaustedTotal()

	calls := 0
	handler := NewAnnouncementPublishedHandler(
		matchFunc(func(context.Context, commands.MatchAnnouncementCommand) error {
			calls++
			return services.ErrNoEligibleCourier
		}),
		3, time.Millisecond, exhausted, discardLogger(),
	)

	event := AnnouncementPublishedEvent{AnnouncementID: kernel.NewUUID().String()}
	err := handler(t.Context(), message(t, event))

	require.NoError(t, err, "exhausted searches are dropped, not retried by the bus")
	assert.Equal(t, 3, calls)
	assert.InDelta(t, 1.0, testutil.ToFloat64(exhausted), 1e-9)
}

func TestAnnouncementPublishedHandler_PermanentRejectionsAreDropped(t *testing.T) {
	for name, permanent := range map[string]error{
		"announcement gone":   errs.NewObjectNotFoundError("announcement", kernel.NewUUID().String()),
		"announcement closed": commands.ErrAnnouncementNotOpen,
		"missing coordinates": announcement.ErrMissingCoordinates,
	} {
		t.Run(name, func(t *testing.T) {
			calls := 0
			handler := NewAnnouncementPublishedHandler(
				matchFunc(func(context.Context, commands.MatchAnnouncementCommand) error {
					calls++
					return permanent
				}),
				3, time.Millisecond, metrics.NewMatchingExhaustedTotal(), discardLogger(),
			)

			event := AnnouncementPublishedEvent{AnnouncementID: kernel.NewUUID().String()}
			err := handler(t.Context(), message(t, event))

			require.NoError(t, err)
			assert.Equal(t, 1, calls, "permanent rejections must not be retried")
		})
	}
}

func TestAnnouncementPublishedHandler_UnexpectedErrorPropagates(t *testing.T) {
	sentinel := errors.New("database down")
	handler := NewAnnouncementPublishedHandler(
		matchFunc(func(context.Context, commands.MatchAnnouncementCommand) error {
			return sentinel
		}),
		3, time.Millisecond, metrics.NewMatchingExhaustedTotal(), discardLogger(),
	)

	event := AnnouncementPublishedEvent{AnnouncementID: kernel.NewUUID().String()}
	err := handler(t.Context(), message(t, event))

	assert.ErrorIs(t, err, sentinel)
}

func TestAnnouncementPublishedHandler_BadPayloadIsDropped(t *testing.T) {
	handler := NewAnnouncementPublishedHandler(
		matchFunc(func(context.Context, commands.MatchAnnouncementCommand) error {
			t.Error("handler must not be called")
			return nil
		}),
		3, time.Millisecond, metrics.NewMatchingExhaustedTotal(), discardLogger(),
	)

	err := handler(t.Context(), &sarama.ConsumerMessage{Value: []byte("not-json")})
	assert.NoError(t, err)

	err = handler(t.Context(), message(t, AnnouncementPublishedEvent{AnnouncementID: "not-a-uuid"}))
	assert.NoError(t, err)
}

func TestCouriersMatchedHandler_DispatchesToAllCouriers(t *testing.T) {
	announcementID := kernel.NewUUID()
	courierIDs := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID()}

	var received commands.DispatchNotificationsCommand
	handler := NewCouriersMatchedHandler(
		dispatchFunc(func(_ context.Context, cmd commands.DispatchNotificationsCommand) error {
			received = cmd
			return nil
		}),
		discardLogger(),
	)

	event := CouriersMatchedEvent{
		AnnouncementID: announcementID.String(),
		CourierIDs:     []string{courierIDs[0].String(), courierIDs[1].String()},
	}
	err := handler(t.Context(), message(t, event))

	require.NoError(t, err)
	assert.True(t, received.AnnouncementID().IsEqual(announcementID))
	require.Len(t, received.CourierIDs(), 2)
	assert.True(t, received.CourierIDs()[0].IsEqual(courierIDs[0]))
}

func TestCouriersMatchedHandler_BadCourierIDIsDropped(t *testing.T) {
	handler := NewCouriersMatchedHandler(
		dispatchFunc(func(context.Context, commands.DispatchNotificationsCommand) error {
			t.Error("handler must not be called")
			return nil
		}),
		discardLogger(),
	)

	event := CouriersMatchedEvent{
		AnnouncementID: kernel.NewUUID().String(),
		CourierIDs:     []string{"not-a-uuid"},
	}
	err := handler(t.Context(), message(t, event))

	assert.NoError(t, err)
}

func TestSubscriptionRequestedHandler_RegistersAttempt(t *testing.T) {
	announcementID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	var received commands.RegisterSubscriptionCommand
	handler := NewSubscriptionRequestedHandler(
		registerFunc(func(_ context.Context, cmd commands.RegisterSubscriptionCommand) error {
			received = cmd
			return nil
		}),
		discardLogger(),
	)

	event := SubscriptionRequestedEvent{
		AnnouncementID: announcementID.String(),
		CourierID:      courierID.String(),
	}
	err := handler(t.Context(), message(t, event))

	require.NoError(t, err)
	assert.True(t, received.AnnouncementID().IsEqual(announcementID))
	assert.True(t, received.CourierID().IsEqual(courierID))
}

func TestSubscriptionRequestedHandler_DropsLostAttempts(t *testing.T) {
	for name, outcome := range map[string]error{
		"duplicate attempt":   commands.ErrSubscriptionAlreadyExists,
		"announcement closed": commands.ErrAnnouncementNotOpen,
		"announcement gone":   errs.NewObjectNotFoundError("announcement", kernel.NewUUID().String()),
	} {
		t.Run(name, func(t *testing.T) {
			handler := NewSubscriptionRequestedHandler(
				registerFunc(func(context.Context, commands.RegisterSubscriptionCommand) error {
					return outcome
				}),
				discardLogger(),
			)

			event := SubscriptionRequestedEvent{
				AnnouncementID: kernel.NewUUID().String(),
				CourierID:      kernel.NewUUID().String(),
			}
			err := handler(t.Context(), message(t, event))

			assert.NoError(t, err)
		})
	}
}

func TestSubscriptionRequestedHandler_UnexpectedErrorPropagates(t *testing.T) {
	sentinel := errors.New("database down")
	handler := NewSubscriptionRequestedHandler(
		registerFunc(func(context.Context, commands.RegisterSubscriptionCommand) error {
			return sentinel
		}),
		discardLogger(),
	)

	event := SubscriptionRequestedEvent{
		AnnouncementID: kernel.NewUUID().String(),
		CourierID:      kernel.NewUUID().String(),
	}
	err := handler(t.Context(), message(t, event))

	assert.ErrorIs(t, err, sentinel)
}

func TestCourierLifecycleHandler_CreatedWithPosition(t *testing.T) {
	courierID := kernel.NewUUID()
	lat, lon := 4.051, 9.702

	created := 0
	located := 0
	handler := NewCourierLifecycleHandler(
		createCourierFunc(func(_ context.Context, cmd commands.CreateCourierCommand) error {
			created++
			assert.True(t, cmd.CourierID().IsEqual(courierID))
			assert.Equal(t, "Jean Mballa", cmd.Name())
			return nil
		}),
		reportLocationFunc(func(_ context.Context, cmd commands.UpdateCourierLocationCommand) error {
			located++
			assert.InDelta(t, lat, cmd.Location().Latitude(), 1e-9)
			assert.InDelta(t, lon, cmd.Location().Longitude(), 1e-9)
			return nil
		}),
		discardLogger(),
	)

	event := CourierLifecycleEvent{
		CourierID: courierID.String(),
		Kind:      CourierCreated,
		Name:      "Jean Mballa",
		Latitude:  &lat,
		Longitude: &lon,
	}
	err := handler(t.Context(), message(t, event))

	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, 1, located)
}

func TestCourierLifecycleHandler_LocationReport(t *testing.T) {
	courierID := kernel.NewUUID()
	lat, lon := 4.055, 9.710

	located := 0
	handler := NewCourierLifecycleHandler(
		createCourierFunc(func(context.Context, commands.CreateCourierCommand) error {
			t.Error("create must not be called for a location report")
			return nil
		}),
		reportLocationFunc(func(_ context.Context, cmd commands.UpdateCourierLocationCommand) error {
			located++
			assert.True(t, cmd.CourierID().IsEqual(courierID))
			return nil
		}),
		discardLogger(),
	)

	event := CourierLifecycleEvent{
		CourierID: courierID.String(),
		Kind:      CourierLocationReported,
		Latitude:  &lat,
		Longitude: &lon,
	}
	err := handler(t.Context(), message(t, event))

	require.NoError(t, err)
	assert.Equal(t, 1, located)
}

func TestCourierLifecycleHandler_DropsUnusableEvents(t *testing.T) {
	handler := NewCourierLifecycleHandler(
		createCourierFunc(func(context.Context, commands.CreateCourierCommand) error {
			t.Error("create must not be called")
			return nil
		}),
		reportLocationFunc(func(context.Context, commands.UpdateCourierLocationCommand) error {
			t.Error("location must not be called")
			return nil
		}),
		discardLogger(),
	)

	// unknown kind
	err := handler(t.Context(), message(t, CourierLifecycleEvent{
		CourierID: kernel.NewUUID().String(),
		Kind:      "suspended",
	}))
	assert.NoError(t, err)

	// location report without coordinates
	err = handler(t.Context(), message(t, CourierLifecycleEvent{
		CourierID: kernel.NewUUID().String(),
		Kind:      CourierLocationReported,
	}))
	assert.NoError(t, err)

	// broken courier id
	err = handler(t.Context(), message(t, CourierLifecycleEvent{
		CourierID: "not-a-uuid",
		Kind:      CourierCreated,
	}))
	assert.NoError(t, err)
}
