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

// Package dispatch runs log records through the admission chain and
// hands admitted records to a downstream handler.
package dispatch

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/carverauto/lumberjill/pkg/filters"
	"github.com/carverauto/lumberjill/pkg/logger"
	"github.com/carverauto/lumberjill/pkg/models"
)

// Handler consumes records the chain admitted.
type Handler interface {
	Handle(ctx context.Context, rec *models.Record) error
}

// Dispatcher evaluates each record against a filter and forwards
// admitted records. Filter evaluation is synchronous and unguarded
// here: stateful filters serialize their own mutations.
type Dispatcher struct {
	filter  filters.Filter
	handler Handler
	logger  zerolog.Logger

	admitted   uint64
	suppressed uint64
}

// NewDispatcher wires a filter chain to a handler. A nil filter admits
// every record.
func NewDispatcher(filter filters.Filter, h Handler, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		filter:  filter,
		handler: h,
		logger:  log.WithComponent("dispatch"),
	}
}

// Dispatch runs one record through the chain. Handler errors are
// reported but do not stop subsequent dispatches; filter panics
// propagate so a misconfigured filter cannot silently disable logging.
func (d *Dispatcher) Dispatch(ctx context.Context, rec *models.Record) bool {
	if d.filter != nil && !d.filter.Evaluate(rec) {
		d.suppressed++
		return false
	}

	d.admitted++

	if err := d.handler.Handle(ctx, rec); err != nil {
		d.logger.Error().Err(err).
			Str("message", rec.Message).
			Msg("Handler failed for admitted record")
	}

	return true
}

// Run reads newline-delimited JSON records until EOF or context
// cancellation, dispatching each one. Undecodable lines are reported
// and skipped.
func (d *Dispatcher) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var rec models.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			d.logger.Warn().Err(err).Msg("Skipping undecodable record")
			continue
		}

		d.Dispatch(ctx, &rec)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("record stream failed: %w", err)
	}

	d.logger.Info().
		Uint64("admitted", d.admitted).
		Uint64("suppressed", d.suppressed).
		Msg("Record stream drained")

	return nil
}
