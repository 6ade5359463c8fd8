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
	"fmt"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/carverauto/lumberjill/pkg/models"
)

const dateKeyLayout = "2006-01-02"

// ErrorClass matches records against a configured family of errors.
// Classes are evaluated in registry order and the first match wins, so
// the behavior stays deterministic when an error could match more than
// one class.
type ErrorClass struct {
	Name    string
	Matches func(err error) bool
}

// Frequency samples records by how often their sampling key has been
// seen today (UTC). Records matching a configured error class are
// admitted every Nth occurrence; everything else follows a logarithmic
// backoff suited to noisy repeated warnings: counts 1, 10, 100 and
// every multiple of 1000. Counters clear at each UTC day rollover.
//
// The derived sampling key and running count are written back onto the
// record so a downstream handler can report "seen N times".
type Frequency struct {
	classes []ErrorClass
	every   uint64
	clock   Clock

	mu       sync.Mutex
	counts   map[string]uint64
	resetDay string
}

// NewFrequency creates a frequency sampler. Matched error classes are
// admitted every exceptionEvery occurrences. A nil clock means the
// system clock.
func NewFrequency(classes []ErrorClass, exceptionEvery uint64, clock Clock) *Frequency {
	if clock == nil {
		clock = SystemClock()
	}

	return &Frequency{
		classes:  classes,
		every:    exceptionEvery,
		clock:    clock,
		counts:   make(map[string]uint64),
		resetDay: clock.Now().UTC().Format(dateKeyLayout),
	}
}

// sample is the count taken for one record: the key it was grouped
// under, today's occurrence number, and whether an error class matched.
type sample struct {
	key        string
	count      uint64
	classified bool
}

// Evaluate counts the record under its sampling key and reports whether
// this occurrence should be admitted.
func (f *Frequency) Evaluate(rec *models.Record) bool {
	s := f.take(rec)

	// Explicit metadata patch for downstream consumers.
	rec.SamplingKey = s.key
	rec.SeenCount = s.count

	if s.classified {
		return s.count%f.every == 0
	}

	return s.count == 1 || s.count == 10 || s.count == 100 || s.count%1000 == 0
}

// take derives the record's key and increments its counter, clearing
// all counters first if the UTC day has rolled over since the last
// call.
func (f *Frequency) take(rec *models.Record) sample {
	f.mu.Lock()
	defer f.mu.Unlock()

	today := f.clock.Now().UTC().Format(dateKeyLayout)
	if today != f.resetDay {
		f.counts = make(map[string]uint64)
		f.resetDay = today
	}

	class, classified := f.match(rec)

	key := f.key(rec, class, classified)
	f.counts[key]++

	return sample{key: key, count: f.counts[key], classified: classified}
}

// match returns the first configured class matching the record's error.
func (f *Frequency) match(rec *models.Record) (ErrorClass, bool) {
	if rec.Err == nil {
		return ErrorClass{}, false
	}

	for _, class := range f.classes {
		if class.Matches(rec.Err) {
			return class, true
		}
	}

	return ErrorClass{}, false
}

// key derives the sampling key. Classified records group by class name
// and call site; everything else groups by level and call site. Message
// text is deliberately not part of the key: distinct messages from the
// same call site share one sampling budget.
func (f *Frequency) key(rec *models.Record, class ErrorClass, classified bool) string {
	location := rec.SourceFile + "." + strconv.Itoa(rec.SourceLine)

	if classified {
		return fmt.Sprintf("%s.%016x", class.Name, xxhash.Sum64String(location))
	}

	return fmt.Sprintf("%016x", xxhash.Sum64String(string(rec.Level)+"."+location))
}
