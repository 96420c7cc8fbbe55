/*
Copyright 2022 Codenotary Inc. All rights reserved.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package benchmarks

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHWStatsGatherer(t *testing.T) {
	gatherer, err := NewHWStatsGatherer()
	if err != nil {
		t.Skipf("procfs not available: %v", err)
	}

	stats, err := gatherer.GetHWStats()
	require.NoError(t, err)
	require.Greater(t, stats.RSS, uint64(0))
	require.Greater(t, stats.VMM, uint64(0))
	require.GreaterOrEqual(t, stats.CPUTime, 0.0)

	require.Contains(t, stats.String(), "RSS:")
}
