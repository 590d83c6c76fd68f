package commands_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
	"parcelmatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDispatchNotificationRepository struct{ mock.Mock }

func (m *MockDispatchNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockDispatchNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockDispatchNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockDispatchNotificationRepository) GetAllByCourier(ctx context.Context, courierID kernel.UUID) ([]*notification.Notification, error) {
	args := m.Called(ctx, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notification.Notification), args.Error(1)
}

type MockDispatchUoW struct{ mock.Mock }

func (m *MockDispatchUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockDispatchUoW) NotificationRepository() ports.NotificationRepository {
	args := m.Called()
	return args.Get(0).(ports.NotificationRepository)
}

type MockDispatchUoWFactory struct{ mock.Mock }

func (m *MockDispatchUoWFactory) Create() commands.DispatchUoW {
	args := m.Called()
	return args.Get(0).(commands.DispatchUoW)
}

type MockDispatchEmailSender struct{ mock.Mock }

func (m *MockDispatchEmailSender) Send(ctx context.Context, courierID kernel.UUID, n *notification.Notification) error {
	args := m.Called(ctx, courierID, n)
	return args.Error(0)
}

type MockDispatchPushSender struct{ mock.Mock }

func (m *MockDispatchPushSender) Push(ctx context.Context, courierID kernel.UUID, n *notification.Notification) error {
	args := m.Called(ctx, courierID, n)
	return args.Error(0)
}

type recordingStreamPusher struct {
	mu     sync.Mutex
	pushed []kernel.UUID
}

func (r *recordingStreamPusher) Push(courierID kernel.UUID, _ *notification.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pushed = append(r.pushed, courierID)
}

func newDispatchHandler(
	factory commands.DispatchUoWFactory,
	email ports.EmailSender,
	push ports.PushSender,
	stream ports.StreamPusher,
) commands.DispatchNotificationsCommandHandler {
	return commands.NewDispatchNotificationsCommandHandler(
		factory, email, push, stream, slog.New(slog.DiscardHandler))
}

func TestDispatchNotificationsCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	announcementID := kernel.NewUUID()
	courierA := kernel.NewUUID()
	courierB := kernel.NewUUID()

	cmd, err := commands.NewDispatchNotificationsCommand(announcementID, []kernel.UUID{courierA, courierB})
	require.NoError(t, err)

	repo := new(MockDispatchNotificationRepository)
	uow := new(MockDispatchUoW)
	email := new(MockDispatchEmailSender)
	push := new(MockDispatchPushSender)
	stream := &recordingStreamPusher{}

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NotificationRepository").Return(repo).Once()
	repo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Twice()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	email.On("Send", ctx, courierA, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()
	email.On("Send", ctx, courierB, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()
	push.On("Push", ctx, courierA, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()
	push.On("Push", ctx, courierB, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newDispatchHandler(factory, email, push, stream)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	repo.AssertExpectations(t)
	email.AssertExpectations(t)
	push.AssertExpectations(t)
	assert.Equal(t, []kernel.UUID{courierA, courierB}, stream.pushed)

	// Notifications are persisted as Sent.
	for _, call := range repo.Calls {
		n := call.Arguments[1].(*notification.Notification)
		assert.Equal(t, notification.Sent, n.Status())
		assert.Equal(t, announcementID, n.AnnouncementID())
	}
}

func TestDispatchNotificationsCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.DispatchNotificationsCommand{} // not constructed properly

	factory := new(MockDispatchUoWFactory)
	handler := newDispatchHandler(factory, new(MockDispatchEmailSender), new(MockDispatchPushSender), &recordingStreamPusher{})
	err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, commands.ErrDispatchNotificationsCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestDispatchNotificationsCommandHandler_Handle_ChannelFailuresAreContained(t *testing.T) {
	ctx := t.Context()

	announcementID := kernel.NewUUID()
	courierID := kernel.NewUUID()

	cmd, err := commands.NewDispatchNotificationsCommand(announcementID, []kernel.UUID{courierID})
	require.NoError(t, err)

	repo := new(MockDispatchNotificationRepository)
	uow := new(MockDispatchUoW)
	email := new(MockDispatchEmailSender)
	push := new(MockDispatchPushSender)
	stream := &recordingStreamPusher{}

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("NotificationRepository").Return(repo).Once()
	repo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	email.On("Send", ctx, courierID, mock.AnythingOfType("*notification.Notification")).
		Return(errors.New("smtp down")).Once()
	push.On("Push", ctx, courierID, mock.AnythingOfType("*notification.Notification")).
		Return(errors.New("gateway timeout")).Once()

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newDispatchHandler(factory, email, push, stream)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Len(t, stream.pushed, 1)
}

func TestDispatchNotificationsCommandHandler_Handle_AddError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewDispatchNotificationsCommand(kernel.NewUUID(), []kernel.UUID{kernel.NewUUID()})
	require.NoError(t, err)

	repo := new(MockDispatchNotificationRepository)
	uow := new(MockDispatchUoW)
	email := new(MockDispatchEmailSender)
	push := new(MockDispatchPushSender)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("NotificationRepository").Return(repo).Once(),
		repo.On("Add", ctx, mock.AnythingOfType("*notification.Notification")).
			Return(errors.New("insert error")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockDispatchUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := newDispatchHandler(factory, email, push, &recordingStreamPusher{})
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	require.EqualError(t, err, "insert error")
	email.AssertNotCalled(t, "Send")
	push.AssertNotCalled(t, "Push")
}
