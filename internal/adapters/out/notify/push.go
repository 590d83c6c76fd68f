package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"parcelmatch/internal/core/domain/model/kernel"
	"parcelmatch/internal/core/domain/model/notification"
)

const defaultPushTimeout = 5 * time.Second

// pushPayload is the JSON body posted to the push gateway.
type pushPayload struct {
	CourierID      string `json:"courier_id"`
	AnnouncementID string `json:"announcement_id"`
	Kind           string `json:"kind"`
	Title          string `json:"title"`
	Message        string `json:"message"`
}

// WebhookPushSender posts notifications to a push gateway endpoint.
type WebhookPushSender struct {
	client *http.Client
	url    string
}

// NewWebhookPushSender creates a push sender for the given gateway URL.
// A nil client gets a default one with a short timeout.
func NewWebhookPushSender(client *http.Client, url string) (*WebhookPushSender, error) {
	if url == "" {
		return nil, fmt.Errorf("push gateway url is required")
	}
	if client == nil {
		client = &http.Client{Timeout: defaultPushTimeout}
	}

	return &WebhookPushSender{client: client, url: url}, nil
}

// Push posts the notification to the gateway. Any non-2xx response is an error.
func (s *WebhookPushSender) Push(ctx context.Context, courierID kernel.UUID, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	payload := pushPayload{
		CourierID:      courierID.String(),
		AnnouncementID: n.AnnouncementID().String(),
		Kind:           string(n.Kind()),
		Title:          n.Title(),
		Message:        n.Message(),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push to courier %s: %w", courierID.String(), err)
	}
	defer res.Body.Close()

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("push to courier %s: gateway returned %s", courierID.String(), res.Status)
	}

	return nil
}
