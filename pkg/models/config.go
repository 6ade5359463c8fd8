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

package models

// NotifyConfig controls outbound notifications. When Enabled is false
// every transport logs the message headers instead of transmitting.
type NotifyConfig struct {
	Enabled bool           `json:"enabled"`
	From    string         `json:"from"`
	To      []string       `json:"to"`
	History int            `json:"history"`
	SMTP    *SMTPConfig    `json:"smtp,omitempty"`
	Webhook *WebhookConfig `json:"webhook,omitempty"`
}

// SMTPConfig configures the SMTP delivery backend.
type SMTPConfig struct {
	Addr     string `json:"addr"` // host:port
	Username string `json:"username"`
	Password string `json:"password"`
}

// WebhookConfig configures the HTTP delivery backend.
type WebhookConfig struct {
	URL            string `json:"url"`
	Token          string `json:"token,omitempty"`
	TimeoutSeconds int    `json:"timeout_seconds,omitempty"`
}
