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
	"errors"
	"fmt"

	"github.com/carverauto/lumberjill/pkg/models"
)

var errFailedToSend = errors.New("failed to send notification")

// MultiSender fans one message out to every configured transport. All
// transports are attempted even when earlier ones fail; failures are
// aggregated.
type MultiSender struct {
	senders []Sender
}

// NewMultiSender wraps the given transports.
func NewMultiSender(senders ...Sender) *MultiSender {
	return &MultiSender{senders: senders}
}

// Send implements Sender.
func (m *MultiSender) Send(ctx context.Context, msg *models.Message) error {
	var errs []error

	for _, s := range m.senders {
		if err := s.Send(ctx, msg); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", errFailedToSend, errors.Join(errs...))
	}

	return nil
}
