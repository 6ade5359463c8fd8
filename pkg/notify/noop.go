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
	"context"

	"github.com/rs/zerolog"

	"github.com/carverauto/lumberjill/pkg/logger"
	"github.com/carverauto/lumberjill/pkg/models"
)

// NoopSender logs messages instead of delivering them. Useful in
// development and as a safe default when no transport is configured.
type NoopSender struct {
	logger zerolog.Logger
}

// NewNoopSender creates the logging stub transport.
func NewNoopSender(log logger.Logger) *NoopSender {
	return &NoopSender{logger: log.WithComponent("noop")}
}

// Send implements Sender.
func (n *NoopSender) Send(_ context.Context, msg *models.Message) error {
	logHeaders(n.logger, msg, "NoopSender didn't send this")
	return nil
}
