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

package handler

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/lumberjill/pkg/logger"
	"github.com/carverauto/lumberjill/pkg/models"
)

type stubSender struct {
	sent []*models.Message
	err  error
}

func (s *stubSender) Send(_ context.Context, msg *models.Message) error {
	s.sent = append(s.sent, msg)
	return s.err
}

func handlerRecord(msg string, count uint64) *models.Record {
	return &models.Record{
		Level:       models.LevelError,
		Logger:      "app.worker",
		Message:     msg,
		SourceFile:  "/srv/app/worker.go",
		SourceLine:  42,
		Created:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ProcessID:   "314",
		ProcessName: "worker",
		SeenCount:   count,
	}
}

func newTestHandler(sender *stubSender, historyLen int) *EmailHandler {
	h := NewEmailHandler(sender, "alerts@example.com", []string{"oncall@example.com"}, historyLen, logger.NewTestLogger())
	h.hostFacts = func() []string { return []string{"hostname: testhost"} }

	return h
}

func TestHandleRendersSubjectWithSeenCount(t *testing.T) {
	sender := &stubSender{}
	h := newTestHandler(sender, 5)

	require.NoError(t, h.Handle(context.Background(), handlerRecord("disk full", 37)))
	require.Len(t, sender.sent, 1)
	require.Equal(t, "(Seen 37 times) disk full - [ERROR] - 2025-06-01 12:00:00", sender.sent[0].Subject)
	require.NotEmpty(t, sender.sent[0].ID)
}

func TestHandleSubjectWithoutCount(t *testing.T) {
	sender := &stubSender{}
	h := newTestHandler(sender, 5)

	require.NoError(t, h.Handle(context.Background(), handlerRecord("disk full", 0)))
	require.Contains(t, sender.sent[0].Subject, "(Seen ? times)")
}

func TestHandleHistoryIsBounded(t *testing.T) {
	sender := &stubSender{}
	h := newTestHandler(sender, 3)

	for i := 0; i < 10; i++ {
		require.NoError(t, h.Handle(context.Background(), handlerRecord(fmt.Sprintf("event %d", i), 1)))
	}

	hist := h.History()
	require.Len(t, hist, 3)
	require.Contains(t, hist[0], "event 7")
	require.Contains(t, hist[2], "event 9")
}

func TestHandleBodyCarriesHistoryAndHostFacts(t *testing.T) {
	sender := &stubSender{}
	h := newTestHandler(sender, 5)

	require.NoError(t, h.Handle(context.Background(), handlerRecord("first", 1)))
	require.NoError(t, h.Handle(context.Background(), handlerRecord("second", 2)))

	body := sender.sent[1].Body
	require.Contains(t, body, "hostname: testhost")
	require.Contains(t, body, "first")
	require.Contains(t, body, "second")
	require.Contains(t, body, "Record level: ERROR")
}

func TestHandleSendFailureStillRecordsHistory(t *testing.T) {
	sender := &stubSender{err: errors.New("smtp down")}
	h := newTestHandler(sender, 5)

	err := h.Handle(context.Background(), handlerRecord("unreachable", 1))
	require.Error(t, err)
	require.Len(t, h.History(), 1)
}
