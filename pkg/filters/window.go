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

// Time unit helpers for configuring window periods in seconds.
const (
	SecondsInMinute float64 = 60
	SecondsInHour           = 60 * SecondsInMinute
	SecondsInDay            = 24 * SecondsInHour
)

// TimeWindow is a bounded floating window used to limit the rate of
// acceptance over a trailing period. It is approximate: admission is
// decided against the single oldest retained timestamp rather than by
// evicting everything older than the period. That bounds memory to
// limit entries and keeps Add O(1), at the cost of short bursts
// transiently exceeding limit/period right after an eviction.
//
// TimeWindow is not safe for concurrent use; callers own the locking.
type TimeWindow struct {
	period float64
	limit  int
	window []float64
	head   int
}

// NewTimeWindow creates a window admitting at most limit timestamps per
// period. The period is unit-agnostic as long as it matches the unit of
// the timestamps passed to Add.
func NewTimeWindow(period float64, limit int) *TimeWindow {
	return &TimeWindow{
		period: period,
		limit:  limit,
		window: make([]float64, 0, limit),
	}
}

// Add reports whether ts was admitted. Timestamps below the limit are
// always admitted. At capacity, ts is admitted only when it is more
// than period away from the oldest held timestamp, which is then
// evicted. The comparison is strictly greater-than.
func (w *TimeWindow) Add(ts float64) bool {
	if w.Len() < w.limit {
		w.window = append(w.window, ts)
		return true
	}

	if ts-w.window[w.head] > w.period {
		// Reuse the evicted slot as the newest entry.
		w.window[w.head] = ts
		w.head = (w.head + 1) % len(w.window)

		return true
	}

	return false
}

// Len returns the number of timestamps currently held.
func (w *TimeWindow) Len() int {
	return len(w.window)
}
