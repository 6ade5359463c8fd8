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
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/carverauto/lumberjill/pkg/models"
)

func rateRecord(pid string, created time.Time) *models.Record {
	return &models.Record{
		Level:      models.LevelWarning,
		Message:    "rate test",
		SourceFile: "/srv/app/worker.go",
		SourceLine: 42,
		Created:    created,
		ProcessID:  pid,
	}
}

func TestProcessRateTwoProcesses(t *testing.T) {
	gate := NewProcessRate(10, 2)

	// 50 records per process, timestamps t/2 for t in 0..99.
	admitted := 0

	for i := 0; i < 100; i++ {
		rec := rateRecord(strconv.Itoa(i%2), time.Unix(int64(i/2), 0))
		if gate.Evaluate(rec) {
			admitted++
		}
	}

	require.Equal(t, 20, admitted)
}

func TestProcessRateWindowsAreIndependent(t *testing.T) {
	gate := NewProcessRate(10, 1)

	// Same timestamp admitted once per process.
	require.True(t, gate.Evaluate(rateRecord("a", time.Unix(0, 0))))
	require.True(t, gate.Evaluate(rateRecord("b", time.Unix(0, 0))))
	require.False(t, gate.Evaluate(rateRecord("a", time.Unix(5, 0))))
	require.False(t, gate.Evaluate(rateRecord("b", time.Unix(5, 0))))
}

func TestProcessRateConcurrentCallers(t *testing.T) {
	gate := NewProcessRate(1, 10)

	var wg sync.WaitGroup

	var mu sync.Mutex

	admitted := 0

	for g := 0; g < 8; g++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := 0; i < 100; i++ {
				if gate.Evaluate(rateRecord("shared", time.Unix(0, 0))) {
					mu.Lock()
					admitted++
					mu.Unlock()
				}
			}
		}()
	}

	wg.Wait()

	// All callers share one window; exactly limit admissions at a
	// fixed timestamp regardless of interleaving.
	require.Equal(t, 10, admitted)
}
