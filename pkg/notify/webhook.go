/*
 * Copyright 2025 Carver Automation Corporation.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/carverauto/lumberjill/pkg/logger"
	"github.com/carverauto/lumberjill/pkg/models"
)

const defaultWebhookTimeout = 10 * time.Second

// WebhookSender posts rendered messages as JSON to an HTTP endpoint,
// e.g. a mail-API gateway or a chat integration.
type WebhookSender struct {
	url     string
	token   string
	enabled bool
	client  *http.Client
	logger  zerolog.Logger
}

// NewWebhookSender creates an HTTP transport. When enabled is false the
// sender logs messages instead of posting them.
func NewWebhookSender(cfg *models.WebhookConfig, enabled bool, log logger.Logger) *WebhookSender {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}

	return &WebhookSender{
		url:     cfg.URL,
		token:   cfg.Token,
		enabled: enabled,
		client:  &http.Client{Timeout: timeout},
		logger:  log.WithComponent("webhook"),
	}
}

// Send implements Sender.
func (w *WebhookSender) Send(ctx context.Context, msg *models.Message) error {
	if !w.enabled {
		logHeaders(w.logger, msg, "Notifications are off, not posting")
		return nil
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	if w.token != "" {
		req.Header.Set("Authorization", "Bearer "+w.token)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook post failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	logHeaders(w.logger, msg, "Notification posted")

	return nil
}
