// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package levels

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterUnknownLevels(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	names := map[Level]string{
		7:  "SEVEN-LVL",
		25: "TWENTY-FIVE-LVL",
	}

	choices := registry.Register(names)
	for level, name := range names {
		assert.Equal(t, name, choices[level])
		assert.Equal(t, name, registry.Name(level))
	}
	assert.Contains(t, registry.Levels(), Level(7))
}

func TestRegisterOverridesKnownLevels(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	names := map[Level]string{
		Debug: "DEBUG-LVL",
		Info:  "INFO-LVL",
	}
	for level, name := range names {
		require.NotEqual(t, name, registry.Name(level))
	}

	registry.Register(names)
	for level, name := range names {
		assert.Equal(t, name, registry.Name(level))
	}

	level, err := registry.Parse("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, Debug, level, "previous names keep resolving")
}

func TestRegisterDefaultsWhenEmpty(t *testing.T) {
	t.Parallel()

	testCases := map[string]map[Level]string{
		"nil map":   nil,
		"empty map": {},
	}

	for name, names := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			registry := NewRegistry()
			registry.Register(map[Level]string{Info: "OTHER"})
			choices := registry.Register(names)
			for level, name := range DefaultNames() {
				assert.Equal(t, name, choices[level])
				assert.Equal(t, name, registry.Name(level))
			}
		})
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		input         string
		expectedLevel Level
		expectedError error
	}{
		"registered name":         {input: "INFO", expectedLevel: Info},
		"lower case name":         {input: "success", expectedLevel: Success},
		"warn alias":              {input: "WARN", expectedLevel: Warning},
		"digits":                  {input: "42", expectedLevel: 42},
		"digits with spaces":      {input: " 10 ", expectedLevel: Debug},
		"unknown name":            {input: "LOUD", expectedError: ErrUnknownLevel},
		"empty string":            {input: "", expectedError: ErrUnknownLevel},
		"negative is not a digit": {input: "-1", expectedError: ErrUnknownLevel},
	}

	registry := NewRegistry()
	for name, test := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			level, err := registry.Parse(test.input)
			if test.expectedError != nil {
				assert.ErrorIs(t, err, test.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expectedLevel, level)
		})
	}
}

func TestNameOfUnregisteredLevel(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	assert.Equal(t, "Level 13", registry.Name(13))
	assert.Equal(t, "INFO", Info.String())
	assert.Equal(t, "20", Info.Spec())
}

func TestNamesAreOrderedByLevel(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	assert.Equal(t, []string{
		TraceName, DebugName, InfoName, SuccessName, NoticeName,
		CmdName, WarningName, ErrorName, CriticalName, FatalName,
	}, registry.Names())
}
