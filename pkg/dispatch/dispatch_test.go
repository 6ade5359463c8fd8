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

package dispatch

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/lumberjill/pkg/filters"
	"github.com/carverauto/lumberjill/pkg/logger"
	"github.com/carverauto/lumberjill/pkg/models"
)

type captureHandler struct {
	records []*models.Record
	err     error
}

func (c *captureHandler) Handle(_ context.Context, rec *models.Record) error {
	c.records = append(c.records, rec)
	return c.err
}

func dispatchRecord(level models.Level) *models.Record {
	return &models.Record{
		Level:      level,
		Message:    "dispatch test",
		SourceFile: "/srv/app/worker.go",
		SourceLine: 42,
		Created:    time.Unix(1, 0),
		ProcessID:  "1",
	}
}

func TestDispatchFiltersRecords(t *testing.T) {
	sink := &captureHandler{}
	d := NewDispatcher(filters.MinLevel(models.LevelError), sink, logger.NewTestLogger())

	require.False(t, d.Dispatch(context.Background(), dispatchRecord(models.LevelInfo)))
	require.True(t, d.Dispatch(context.Background(), dispatchRecord(models.LevelError)))
	require.Len(t, sink.records, 1)
}

func TestDispatchNilFilterAdmitsAll(t *testing.T) {
	sink := &captureHandler{}
	d := NewDispatcher(nil, sink, logger.NewTestLogger())

	require.True(t, d.Dispatch(context.Background(), dispatchRecord(models.LevelDebug)))
}

func TestDispatchHandlerErrorDoesNotStopFlow(t *testing.T) {
	sink := &captureHandler{err: errors.New("transport down")}
	d := NewDispatcher(nil, sink, logger.NewTestLogger())

	require.True(t, d.Dispatch(context.Background(), dispatchRecord(models.LevelError)))
	require.True(t, d.Dispatch(context.Background(), dispatchRecord(models.LevelError)))
	require.Len(t, sink.records, 2)
}

func TestRunReadsNDJSON(t *testing.T) {
	input := strings.Join([]string{
		`{"level":"ERROR","message":"boom","source_file":"/a.go","source_line":1,"created":"2025-06-01T12:00:00Z","process_id":"1"}`,
		`not json`,
		`{"level":"INFO","message":"fine","source_file":"/a.go","source_line":2,"created":"2025-06-01T12:00:01Z","process_id":"1"}`,
		``,
	}, "\n")

	sink := &captureHandler{}
	d := NewDispatcher(filters.MinLevel(models.LevelError), sink, logger.NewTestLogger())

	require.NoError(t, d.Run(context.Background(), strings.NewReader(input)))
	require.Len(t, sink.records, 1)
	require.Equal(t, "boom", sink.records[0].Message)
}
