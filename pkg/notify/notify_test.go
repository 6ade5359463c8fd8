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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/lumberjill/pkg/logger"
	"github.com/carverauto/lumberjill/pkg/models"
)

func testMessage() *models.Message {
	return &models.Message{
		ID:      "msg-1",
		From:    "alerts@example.com",
		To:      []string{"oncall@example.com"},
		Subject: "(Seen 3 times) disk full - [ERROR] - 2025-06-01 12:00:00",
		Body:    "hostname: testhost\n\ndisk full",
	}
}

func TestNoopSenderNeverFails(t *testing.T) {
	s := NewNoopSender(logger.NewTestLogger())

	require.NoError(t, s.Send(context.Background(), testMessage()))
}

func TestSMTPSenderDisabledSkipsTransport(t *testing.T) {
	s := NewSMTPSender(&models.SMTPConfig{Addr: "mail.example.com:25"}, false, logger.NewTestLogger())

	dialed := false
	s.sendMail = func(_ string, _ smtp.Auth, _ string, _ []string, _ []byte) error {
		dialed = true
		return nil
	}

	require.NoError(t, s.Send(context.Background(), testMessage()))
	require.False(t, dialed)
}

func TestSMTPSenderBuildsMessage(t *testing.T) {
	s := NewSMTPSender(&models.SMTPConfig{
		Addr:     "mail.example.com:25",
		Username: "user",
		Password: "pass",
	}, true, logger.NewTestLogger())

	var gotAddr, gotFrom string

	var gotTo []string

	var gotPayload []byte

	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr = addr
		gotFrom = from
		gotTo = to
		gotPayload = msg

		return nil
	}

	msg := testMessage()
	require.NoError(t, s.Send(context.Background(), msg))
	require.Equal(t, "mail.example.com:25", gotAddr)
	require.Equal(t, msg.From, gotFrom)
	require.Equal(t, msg.To, gotTo)
	require.Contains(t, string(gotPayload), "Subject: "+msg.Subject)
	require.Contains(t, string(gotPayload), msg.Body)
}

func TestSMTPSenderRejectsBadAddr(t *testing.T) {
	s := NewSMTPSender(&models.SMTPConfig{Addr: "no-port"}, true, logger.NewTestLogger())

	require.Error(t, s.Send(context.Background(), testMessage()))
}

func TestWebhookSenderPostsJSON(t *testing.T) {
	var got models.Message

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.Equal(t, "Bearer sekrit", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewWebhookSender(&models.WebhookConfig{URL: srv.URL, Token: "sekrit"}, true, logger.NewTestLogger())

	msg := testMessage()
	require.NoError(t, s.Send(context.Background(), msg))
	require.Equal(t, msg.Subject, got.Subject)
}

func TestWebhookSenderReportsBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewWebhookSender(&models.WebhookConfig{URL: srv.URL}, true, logger.NewTestLogger())

	require.Error(t, s.Send(context.Background(), testMessage()))
}

func TestWebhookSenderDisabledSkipsTransport(t *testing.T) {
	hit := false

	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hit = true
	}))
	defer srv.Close()

	s := NewWebhookSender(&models.WebhookConfig{URL: srv.URL}, false, logger.NewTestLogger())

	require.NoError(t, s.Send(context.Background(), testMessage()))
	require.False(t, hit)
}
