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
	"errors"
	"fmt"

	"github.com/carverauto/lumberjill/pkg/filters"
	"github.com/carverauto/lumberjill/pkg/logger"
	"github.com/carverauto/lumberjill/pkg/models"
)

var (
	errRateLimitInvalid     = errors.New("rate_limit requires positive period_seconds and limit")
	errFrequencyInvalid     = errors.New("frequency requires positive exception_every")
	errUnknownErrorClass    = errors.New("frequency references an unregistered error class")
	errNotifyNeedsAddress   = errors.New("notify requires from and at least one to address")
	errNotifyNeedsBackend   = errors.New("notify enabled but no smtp or webhook backend configured")
	errMinLevelUnrecognized = errors.New("unrecognized min_level")
)

// RateLimitConfig configures the per-process rate gate.
type RateLimitConfig struct {
	PeriodSeconds float64 `json:"period_seconds"`
	Limit         int     `json:"limit"`
}

// FrequencyConfig configures the frequency sampler. Classes name
// entries in the error-class registry supplied at build time.
type FrequencyConfig struct {
	ExceptionEvery uint64   `json:"exception_every"`
	Classes        []string `json:"classes,omitempty"`
}

// Config is the dispatcher configuration: which filters to assemble
// and where admitted records go.
type Config struct {
	Logging   *logger.Config      `json:"logging,omitempty"`
	MinLevel  models.Level        `json:"min_level,omitempty"`
	RateLimit *RateLimitConfig    `json:"rate_limit,omitempty"`
	Frequency *FrequencyConfig    `json:"frequency,omitempty"`
	Notify    models.NotifyConfig `json:"notify"`
}

// Validate implements config.Validator.
func (c *Config) Validate() error {
	if c.MinLevel != "" && c.MinLevel.Severity() == 0 {
		return fmt.Errorf("%w: %q", errMinLevelUnrecognized, c.MinLevel)
	}

	if c.RateLimit != nil && (c.RateLimit.PeriodSeconds <= 0 || c.RateLimit.Limit <= 0) {
		return errRateLimitInvalid
	}

	if c.Frequency != nil && c.Frequency.ExceptionEvery == 0 {
		return errFrequencyInvalid
	}

	if c.Notify.Enabled {
		if c.Notify.From == "" || len(c.Notify.To) == 0 {
			return errNotifyNeedsAddress
		}

		if c.Notify.SMTP == nil && c.Notify.Webhook == nil {
			return errNotifyNeedsBackend
		}
	}

	return nil
}

// BuildFilter assembles the admission chain described by the config.
// Children evaluate in ascending lexicographic order of their names
// ("frequency", "min_level", "rate_limit"); the ordering is part of the
// contract because sampler side effects depend on which children ran.
// registry maps class names referenced by the frequency section to
// matchers; a nil clock means the system clock.
func (c *Config) BuildFilter(registry map[string]filters.ErrorClass, clock filters.Clock) (*filters.And, error) {
	children := make(map[string]filters.Filter)

	if c.MinLevel != "" {
		children["min_level"] = filters.MinLevel(c.MinLevel)
	}

	if c.RateLimit != nil {
		children["rate_limit"] = filters.NewProcessRate(c.RateLimit.PeriodSeconds, c.RateLimit.Limit)
	}

	if c.Frequency != nil {
		classes := make([]filters.ErrorClass, 0, len(c.Frequency.Classes))

		for _, name := range c.Frequency.Classes {
			class, ok := registry[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", errUnknownErrorClass, name)
			}

			classes = append(classes, class)
		}

		children["frequency"] = filters.NewFrequency(classes, c.Frequency.ExceptionEvery, clock)
	}

	return filters.NewAnd(children), nil
}
