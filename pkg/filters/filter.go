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

// Package filters implements admission control over log records: a set
// of composable predicates deciding, per record, whether it passes
// through to a downstream handler.
package filters

import (
	"sort"

	"github.com/carverauto/lumberjill/pkg/models"
)

// Filter decides whether a log record is admitted. Implementations may
// mutate record metadata (sampling key, seen count) and their own
// internal state as a side effect of evaluation.
type Filter interface {
	Evaluate(rec *models.Record) bool
}

// Func adapts a plain predicate into a Filter.
type Func func(rec *models.Record) bool

// Evaluate calls f.
func (f Func) Evaluate(rec *models.Record) bool {
	return f(rec)
}

// MinLevel returns a filter admitting records at or above the given
// severity.
func MinLevel(level models.Level) Func {
	return func(rec *models.Record) bool {
		return rec.Level.Severity() >= level.Severity()
	}
}

type namedFilter struct {
	name   string
	filter Filter
}

// And evaluates an ordered collection of filters with short-circuiting
// logic: the first child returning false stops evaluation, and children
// after it see no side effects for that record. Children run in
// ascending lexicographic order of their configured names; the sort
// happens once at construction because evaluation order matters when
// children have side effects.
type And struct {
	children []namedFilter
}

// NewAnd builds an And filter from named children.
func NewAnd(children map[string]Filter) *And {
	names := make([]string, 0, len(children))
	for name := range children {
		names = append(names, name)
	}

	sort.Strings(names)

	ordered := make([]namedFilter, 0, len(names))
	for _, name := range names {
		ordered = append(ordered, namedFilter{name: name, filter: children[name]})
	}

	return &And{children: ordered}
}

// Evaluate returns true only if every child admitted the record.
func (a *And) Evaluate(rec *models.Record) bool {
	for i := range a.children {
		if !a.children[i].filter.Evaluate(rec) {
			return false
		}
	}

	return true
}

// Names returns the child names in evaluation order.
func (a *And) Names() []string {
	names := make([]string, len(a.children))
	for i := range a.children {
		names[i] = a.children[i].name
	}

	return names
}
