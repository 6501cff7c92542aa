package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/core/httpclient"
	"github.com/impimediavillage/tree-sub001/internal/features/shipping/ports"
)

// WebhookNotifier mirrors status events to an HTTP endpoint.
type WebhookNotifier struct {
	client *http.Client
	url    string
}

// NewWebhookNotifier creates a new WebhookNotifier posting to the given URL.
func NewWebhookNotifier(url string) *WebhookNotifier {
	return &WebhookNotifier{
		client: httpclient.NewClient(10 * time.Second),
		url:    url,
	}
}

// StatusChanged POSTs the event as JSON.
func (n *WebhookNotifier) StatusChanged(ctx context.Context, event ports.StatusEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status: %d", resp.StatusCode)
	}
	return nil
}

// FanoutNotifier delivers each event to every wrapped notifier. Failures are
// collected so one slow target does not hide the others.
type FanoutNotifier struct {
	targets []ports.Notifier
}

// NewFanoutNotifier creates a FanoutNotifier over the given targets.
func NewFanoutNotifier(targets ...ports.Notifier) *FanoutNotifier {
	return &FanoutNotifier{targets: targets}
}

// StatusChanged delivers the event to all targets, returning the first error.
func (n *FanoutNotifier) StatusChanged(ctx context.Context, event ports.StatusEvent) error {
	var firstErr error
	for _, target := range n.targets {
		if err := target.StatusChanged(ctx, event); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
