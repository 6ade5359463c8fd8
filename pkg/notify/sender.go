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

// Package notify implements the outbound notification transports. Each
// transport delivers a rendered message and honors a global enabled
// toggle: when notifications are off, transports log the message
// headers instead of transmitting. Transport failures are returned to
// the caller and must never abort the admission chain that produced
// the message.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/carverauto/lumberjill/pkg/models"
)

// Sender delivers one rendered notification.
type Sender interface {
	Send(ctx context.Context, msg *models.Message) error
}

// logHeaders reports the message headers when a transport declines to
// transmit.
func logHeaders(log zerolog.Logger, msg *models.Message, note string) {
	log.Info().
		Str("message_id", msg.ID).
		Str("from", msg.From).
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Msg(note)
}
