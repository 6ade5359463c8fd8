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
	"net/smtp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/carverauto/lumberjill/pkg/logger"
	"github.com/carverauto/lumberjill/pkg/models"
)

var errInvalidSMTPAddr = errors.New("invalid SMTP address, expected host:port")

// SMTPSender delivers messages over SMTP with PLAIN auth.
type SMTPSender struct {
	addr     string
	username string
	password string
	enabled  bool
	logger   zerolog.Logger

	// sendMail is swapped out in tests.
	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPSender creates an SMTP transport. When enabled is false the
// sender logs messages instead of transmitting them.
func NewSMTPSender(cfg *models.SMTPConfig, enabled bool, log logger.Logger) *SMTPSender {
	return &SMTPSender{
		addr:     cfg.Addr,
		username: cfg.Username,
		password: cfg.Password,
		enabled:  enabled,
		logger:   log.WithComponent("smtp"),
		sendMail: smtp.SendMail,
	}
}

// Send implements Sender.
func (s *SMTPSender) Send(_ context.Context, msg *models.Message) error {
	if !s.enabled {
		logHeaders(s.logger, msg, "Notifications are off, not sending")
		return nil
	}

	host, _, ok := strings.Cut(s.addr, ":")
	if !ok || host == "" {
		return fmt.Errorf("%w: %q", errInvalidSMTPAddr, s.addr)
	}

	payload := []byte("To: " + strings.Join(msg.To, "; ") +
		"\r\nFrom: " + msg.From +
		"\r\nSubject: " + msg.Subject +
		"\r\nContent-Type: text/plain\r\n\r\n" +
		msg.Body)

	auth := smtp.PlainAuth("", s.username, s.password, host)

	if err := s.sendMail(s.addr, auth, msg.From, msg.To, payload); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	logHeaders(s.logger, msg, "Email sent")

	return nil
}
