// Package http exposes the matching core over the generated OpenAPI server
// bindings: announcement intake, subscription arbitration triggers and the
// courier notification feed, including its server-sent events stream.
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"parcelmatch/internal/core/application/usecases/commands"
	"parcelmatch/internal/core/application/usecases/queries"
	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/generated/servers"
	"parcelmatch/internal/pkg/errs"
	"parcelmatch/internal/realtime"

	"github.com/labstack/echo/v4"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createAnnouncementHandler  commands.CreateAnnouncementCommandHandler
	publishAnnouncementHandler commands.PublishAnnouncementCommandHandler
	requestSubscriptionHandler commands.RequestSubscriptionCommandHandler
	acceptSubscriptionHandler  commands.AcceptSubscriptionCommandHandler

	// Query handlers
	getOpenAnnouncementsHandler    queries.GetOpenAnnouncementsQueryHandler
	getCourierNotificationsHandler queries.GetCourierNotificationsQueryHandler

	// Live notification streams
	hub *realtime.Hub
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createAnnouncementHandler commands.CreateAnnouncementCommandHandler,
	publishAnnouncementHandler commands.PublishAnnouncementCommandHandler,
	requestSubscriptionHandler commands.RequestSubscriptionCommandHandler,
	acceptSubscriptionHandler commands.AcceptSubscriptionCommandHandler,
	getOpenAnnouncementsHandler queries.GetOpenAnnouncementsQueryHandler,
	getCourierNotificationsHandler queries.GetCourierNotificationsQueryHandler,
	hub *realtime.Hub,
) *Server {
	return &Server{
		createAnnouncementHandler:      createAnnouncementHandler,
		publishAnnouncementHandler:     publishAnnouncementHandler,
		requestSubscriptionHandler:     requestSubscriptionHandler,
		acceptSubscriptionHandler:      acceptSubscriptionHandler,
		getOpenAnnouncementsHandler:    getOpenAnnouncementsHandler,
		getCourierNotificationsHandler: getCourierNotificationsHandler,
		hub:                            hub,
	}
}

// GetAnnouncements handles GET /api/v1/announcements - lists open announcements.
func (s *Server) GetAnnouncements(ctx echo.Context) error {
	query := queries.NewGetOpenAnnouncementsQuery()

	announcements, err := s.getOpenAnnouncementsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve announcements",
		})
	}

	response := make([]servers.Announcement, len(announcements))
	for i, a := range announcements {
		response[i] = servers.Announcement{
			Id:          a.ID.Bytes(),
			ClientId:    a.ClientID.Bytes(),
			Description: a.Description,
			WeightKg:    a.WeightKg,
			Amount:      a.Amount,
			Status:      a.Status,
			Pickup:      geoPointResponse(a.Pickup),
			Delivery:    geoPointResponse(a.Delivery),
			CreatedAt:   a.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateAnnouncement handles POST /api/v1/announcements - creates a draft announcement.
func (s *Server) CreateAnnouncement(ctx echo.Context) error {
	var newAnnouncement servers.NewAnnouncement
	if err := ctx.Bind(&newAnnouncement); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	clientID, err := kernel.UUIDFromBytes(newAnnouncement.ClientId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid client id",
		})
	}

	pickup, delivery, err := routeFromRequest(newAnnouncement.Pickup, newAnnouncement.Delivery)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid route: " + err.Error(),
		})
	}

	announcementID := kernel.NewUUID()
	cmd, err := commands.NewCreateAnnouncementCommand(
		announcementID,
		clientID,
		newAnnouncement.Description,
		newAnnouncement.WeightKg,
		newAnnouncement.Amount,
		pickup,
		delivery,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid announcement data: " + err.Error(),
		})
	}

	if handleErr := s.createAnnouncementHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create announcement",
		})
	}

	return ctx.JSON(http.StatusCreated, servers.Created{Id: announcementID.Bytes()})
}

// PublishAnnouncement handles POST /api/v1/announcements/{announcementId}/publish.
// Publishing opens the announcement for matching and emits the event that
// starts the courier search.
func (s *Server) PublishAnnouncement(ctx echo.Context, announcementId openapi_types.UUID) error {
	announcementID, err := kernel.UUIDFromBytes(announcementId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid announcement id",
		})
	}

	cmd, err := commands.NewPublishAnnouncementCommand(announcementID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid announcement id",
		})
	}

	if handleErr := s.publishAnnouncementHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, servers.Error{
				Code:    http.StatusNotFound,
				Message: "Announcement not found",
			})
		}
		return ctx.JSON(http.StatusConflict, servers.Error{
			Code:    http.StatusConflict,
			Message: "Announcement cannot be published",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CreateSubscription handles POST /api/v1/subscriptions - fires a courier's
// subscription attempt into the arbitration stream.
func (s *Server) CreateSubscription(ctx echo.Context) error {
	var newSubscription servers.NewSubscription
	if err := ctx.Bind(&newSubscription); err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	announcementID, err := kernel.UUIDFromBytes(newSubscription.AnnouncementId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid announcement id",
		})
	}

	courierID, err := kernel.UUIDFromBytes(newSubscription.CourierId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid courier id",
		})
	}

	cmd, err := commands.NewRequestSubscriptionCommand(announcementID, courierID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid subscription data: " + err.Error(),
		})
	}

	if handleErr := s.requestSubscriptionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, servers.Error{
				Code:    http.StatusNotFound,
				Message: "Announcement not found",
			})
		}
		if errors.Is(handleErr, commands.ErrAnnouncementNotOpen) {
			return ctx.JSON(http.StatusConflict, servers.Error{
				Code:    http.StatusConflict,
				Message: "Announcement is no longer open",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to request subscription",
		})
	}

	return ctx.NoContent(http.StatusAccepted)
}

// AcceptSubscription handles POST /api/v1/subscriptions/{subscriptionId}/accept.
// Exactly one subscription per announcement can win; late acceptances get 409.
func (s *Server) AcceptSubscription(ctx echo.Context, subscriptionId openapi_types.UUID) error {
	subscriptionID, err := kernel.UUIDFromBytes(subscriptionId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid subscription id",
		})
	}

	cmd, err := commands.NewAcceptSubscriptionCommand(subscriptionID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid subscription id",
		})
	}

	if handleErr := s.acceptSubscriptionHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		if errors.Is(handleErr, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusNotFound, servers.Error{
				Code:    http.StatusNotFound,
				Message: "Subscription not found",
			})
		}
		if errors.Is(handleErr, commands.ErrAnnouncementAlreadyTaken) ||
			errors.Is(handleErr, commands.ErrAnnouncementNotOpen) {
			return ctx.JSON(http.StatusConflict, servers.Error{
				Code:    http.StatusConflict,
				Message: "Announcement is already taken",
			})
		}
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to accept subscription",
		})
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetCourierNotifications handles GET /api/v1/couriers/{courierId}/notifications.
func (s *Server) GetCourierNotifications(ctx echo.Context, courierId openapi_types.UUID) error {
	courierID, err := kernel.UUIDFromBytes(courierId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid courier id",
		})
	}

	query, err := queries.NewGetCourierNotificationsQuery(courierID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid courier id",
		})
	}

	notifications, err := s.getCourierNotificationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, servers.Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve notifications",
		})
	}

	response := make([]servers.Notification, len(notifications))
	for i, n := range notifications {
		response[i] = servers.Notification{
			Id:             n.ID.Bytes(),
			AnnouncementId: n.AnnouncementID.Bytes(),
			Kind:           n.Kind,
			Title:          n.Title,
			Message:        n.Message,
			Status:         n.Status,
			CreatedAt:      n.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// StreamCourierNotifications handles GET /api/v1/couriers/{courierId}/notifications/stream.
// Streams the courier's notifications as server-sent events until the client
// disconnects or the hub shuts down.
func (s *Server) StreamCourierNotifications(ctx echo.Context, courierId openapi_types.UUID) error {
	courierID, err := kernel.UUIDFromBytes(courierId[:])
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, servers.Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid courier id",
		})
	}

	stream, err := s.hub.Subscribe(courierID)
	if err != nil {
		return ctx.JSON(http.StatusServiceUnavailable, servers.Error{
			Code:    http.StatusServiceUnavailable,
			Message: "Notification stream is unavailable",
		})
	}
	defer stream.Cancel()

	res := ctx.Response()
	res.Header().Set(echo.HeaderContentType, "text/event-stream")
	res.Header().Set(echo.HeaderCacheControl, "no-cache")
	res.Header().Set(echo.HeaderConnection, "keep-alive")
	res.WriteHeader(http.StatusOK)
	res.Flush()

	for {
		select {
		case <-ctx.Request().Context().Done():
			return nil

		case n, ok := <-stream.C:
			if !ok {
				return nil
			}

			event := servers.Notification{
				Id:             n.ID().Bytes(),
				AnnouncementId: n.AnnouncementID().Bytes(),
				Kind:           string(n.Kind()),
				Title:          n.Title(),
				Message:        n.Message(),
				Status:         n.Status().String(),
				CreatedAt:      n.CreatedAt(),
			}

			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}

			if _, err := fmt.Fprintf(res, "event: notification\ndata: %s\n\n", payload); err != nil {
				return nil
			}
			res.Flush()
		}
	}
}

func geoPointResponse(point *kernel.GeoPoint) *servers.GeoPoint {
	if point == nil {
		return nil
	}

	return &servers.GeoPoint{
		Latitude:  point.Latitude(),
		Longitude: point.Longitude(),
	}
}

func routeFromRequest(pickup *servers.GeoPoint, delivery *servers.GeoPoint) (*kernel.GeoPoint, *kernel.GeoPoint, error) {
	if pickup == nil && delivery == nil {
		return nil, nil, nil
	}
	if pickup == nil || delivery == nil {
		return nil, nil, errors.New("pickup and delivery must be provided together")
	}

	pickupPoint, err := kernel.NewGeoPoint(pickup.Latitude, pickup.Longitude)
	if err != nil {
		return nil, nil, err
	}

	deliveryPoint, err := kernel.NewGeoPoint(delivery.Latitude, delivery.Longitude)
	if err != nil {
		return nil, nil, err
	}

	return &pickupPoint, &deliveryPoint, nil
}
