package notifications

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"eduvoyage-service/internal/app/config"
	"eduvoyage-service/internal/app/contracts"
	"eduvoyage-service/internal/pkg/constvars"
	"eduvoyage-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
)

// Sender POSTs notification envelopes to the configured webhook endpoint.
// Both the direct notifier and the queue worker deliver through it.
type Sender struct {
	notifyURL string
	client    *http.Client
}

func NewSender(webhookConfig config.Webhook) *Sender {
	timeout := time.Duration(webhookConfig.HTTPTimeoutInSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Sender{
		notifyURL: webhookConfig.NotifyURL,
		client:    &http.Client{Timeout: timeout},
	}
}

func (s *Sender) Send(ctx context.Context, envelope contracts.NotificationEnvelope) error {
	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, constvars.MethodPost, s.notifyURL, bytes.NewReader(body))
	if err != nil {
		return exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)

	resp, err := s.client.Do(req)
	if err != nil {
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}
