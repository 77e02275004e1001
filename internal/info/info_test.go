// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package info

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVersionInformation(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		version   string
		buildDate string
		expected  string
	}{
		"with build date": {
			version:   "1.2.3",
			buildDate: "2024-06-01",
			expected:  "1.2.3 (2024-06-01), Go Version: go1.24.0",
		},
		"without build date": {
			version:  "DEV",
			expected: "DEV, Go Version: go1.24.0",
		},
	}

	for testName, test := range testCases {
		t.Run(testName, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, VersionInformation(test.version, test.buildDate, "go1.24.0"))
		})
	}
}
