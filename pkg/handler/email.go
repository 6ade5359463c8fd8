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

// Package handler turns admitted log records into outbound
// notifications.
package handler

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/carverauto/lumberjill/pkg/logger"
	"github.com/carverauto/lumberjill/pkg/models"
	"github.com/carverauto/lumberjill/pkg/notify"
)

const (
	defaultHistoryLen = 10

	subjectStampLayout = "2006-01-02 15:04:05"
	bodyStampLayout    = "Monday, January 2, 2006 at 15:04:05"
)

// EmailHandler renders admitted records into notifications and forwards
// them through a Sender. It keeps a bounded rolling history of
// previously rendered records so each alert body carries recent
// context. The history is unrelated to the admission chain's own
// rate-limiting state.
type EmailHandler struct {
	sender notify.Sender
	from   string
	to     []string
	logger zerolog.Logger

	// hostFacts is swapped out in tests.
	hostFacts func() []string

	mu      sync.Mutex
	history []string
	maxHist int
}

// NewEmailHandler creates a handler sending from the given address to
// the given recipients. historyLen bounds the rolling context included
// in alert bodies.
func NewEmailHandler(sender notify.Sender, from string, to []string, historyLen int, log logger.Logger) *EmailHandler {
	if historyLen <= 0 {
		historyLen = defaultHistoryLen
	}

	return &EmailHandler{
		sender:    sender,
		from:      from,
		to:        to,
		logger:    log.WithComponent("email_handler"),
		hostFacts: systemHostFacts,
		maxHist:   historyLen,
	}
}

// Handle renders and forwards one admitted record. The formatted record
// joins the rolling history whether or not delivery succeeds. Send
// failures are reported and returned; they never panic and must not
// abort the dispatch loop that admitted the record.
func (h *EmailHandler) Handle(ctx context.Context, rec *models.Record) error {
	line := formatRecord(rec)

	h.mu.Lock()
	recent := make([]string, len(h.history))
	copy(recent, h.history)

	h.history = append(h.history, line)
	if len(h.history) > h.maxHist {
		h.history = h.history[len(h.history)-h.maxHist:]
	}
	h.mu.Unlock()

	msg := &models.Message{
		ID:      uuid.NewString(),
		From:    h.from,
		To:      h.to,
		Subject: h.subject(rec),
		Body:    h.body(rec, recent, line),
	}

	if err := h.sender.Send(ctx, msg); err != nil {
		h.logger.Error().
			Err(err).
			Str("message_id", msg.ID).
			Str("subject", msg.Subject).
			Msg("Failed to deliver notification")

		return err
	}

	return nil
}

// History returns a copy of the rolling history, oldest first.
func (h *EmailHandler) History() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.history))
	copy(out, h.history)

	return out
}

func (h *EmailHandler) subject(rec *models.Record) string {
	seen := "?"
	if rec.SeenCount > 0 {
		seen = fmt.Sprintf("%d", rec.SeenCount)
	}

	return fmt.Sprintf("(Seen %s times) %s - [%s] - %s",
		seen, rec.Message, rec.Level, rec.Created.Format(subjectStampLayout))
}

func (h *EmailHandler) body(rec *models.Record, recent []string, line string) string {
	body := h.hostFacts()

	body = append(body,
		rec.Created.Format(bodyStampLayout),
		fmt.Sprintf("Record level: %s", rec.Level),
		fmt.Sprintf("Record name: %s", rec.Logger),
		fmt.Sprintf("Record path: %s", rec.SourceFile),
		fmt.Sprintf("Process name and pid: %s [%s]", rec.ProcessName, rec.ProcessID),
		"",
	)

	body = append(body, recent...)
	body = append(body, "", line)

	return strings.Join(body, "\n")
}

func formatRecord(rec *models.Record) string {
	line := fmt.Sprintf("%s [%s] %s (%s:%d)",
		rec.Created.UTC().Format(subjectStampLayout),
		rec.Level, rec.Message, rec.SourceFile, rec.SourceLine)

	if rec.Err != nil {
		line += " error: " + rec.Err.Error()
	}

	return line
}

func systemHostFacts() []string {
	info, err := host.Info()
	if err != nil {
		return []string{"hostname: unknown"}
	}

	return []string{
		fmt.Sprintf("hostname: %s", info.Hostname),
		fmt.Sprintf("platform: %s %s", info.Platform, info.PlatformVersion),
	}
}
