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

package models

import "time"

// Level is the severity of a log record.
type Level string

const (
	LevelDebug    Level = "DEBUG"
	LevelInfo     Level = "INFO"
	LevelWarning  Level = "WARNING"
	LevelError    Level = "ERROR"
	LevelCritical Level = "CRITICAL"
)

// Severity returns a numeric rank for level comparisons. Unknown levels
// rank below DEBUG.
func (l Level) Severity() int {
	switch l {
	case LevelDebug:
		return 10
	case LevelInfo:
		return 20
	case LevelWarning:
		return 30
	case LevelError:
		return 40
	case LevelCritical:
		return 50
	default:
		return 0
	}
}

// Record is one structured log event flowing through the admission
// chain. Filters read its attributes and the frequency sampler writes
// SamplingKey and SeenCount back onto it so that downstream handlers
// can report "seen N times" without recomputing.
type Record struct {
	Level       Level     `json:"level"`
	Logger      string    `json:"logger,omitempty"`
	Message     string    `json:"message"`
	SourceFile  string    `json:"source_file"`
	SourceLine  int       `json:"source_line"`
	Created     time.Time `json:"created"`
	ProcessID   string    `json:"process_id"`
	ProcessName string    `json:"process_name,omitempty"`

	// Err is the error chain associated with the record, if any. It is
	// carried in-process only and never serialized.
	Err error `json:"-"`

	// Sampler write-back. Zero until a frequency filter has seen the
	// record.
	SamplingKey string `json:"sampling_key,omitempty"`
	SeenCount   uint64 `json:"seen_count,omitempty"`
}

// CreatedSeconds returns the record creation time as seconds since the
// Unix epoch, the unit the sliding window operates in.
func (r *Record) CreatedSeconds() float64 {
	return float64(r.Created.UnixNano()) / float64(time.Second)
}
