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

package filters

import (
	"sync"

	"github.com/carverauto/lumberjill/pkg/models"
)

// ProcessRate limits each process to a bounded number of admitted
// records over a trailing time period. One TimeWindow is created lazily
// per process identifier and kept for the filter's lifetime; the map
// never shrinks, so unbounded process churn grows it without bound.
type ProcessRate struct {
	period float64
	limit  int

	mu        sync.Mutex
	processes map[string]*TimeWindow
}

// NewProcessRate creates a per-process rate gate admitting at most
// limit records per period seconds for each process identifier.
func NewProcessRate(period float64, limit int) *ProcessRate {
	return &ProcessRate{
		period:    period,
		limit:     limit,
		processes: make(map[string]*TimeWindow),
	}
}

// Evaluate delegates to the window owned by the record's process,
// creating it on first sight.
func (p *ProcessRate) Evaluate(rec *models.Record) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.processes[rec.ProcessID]
	if !ok {
		w = NewTimeWindow(p.period, p.limit)
		p.processes[rec.ProcessID] = w
	}

	return w.Add(rec.CreatedSeconds())
}
