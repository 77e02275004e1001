// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package warn

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/logician/internal/logger"
)

func TestLoggerWarner(t *testing.T) {
	t.Parallel()

	buffer := new(bytes.Buffer)
	warner := NewLoggerWarner(logger.NewTextLogger(buffer, logger.WARN))
	warner.Warn("level is odd")

	assert.Contains(t, buffer.String(), "UserWarning: level is odd")
}

func TestRecorderAndHelpers(t *testing.T) {
	t.Parallel()

	recorder := new(Recorder)
	recorder.Warn("first")
	recorder.Warn("second")
	messages := recorder.Messages()
	assert.Equal(t, []string{"first", "second"}, messages)

	messages[0] = "changed"
	assert.Equal(t, "first", recorder.Messages()[0])

	assert.NotNil(t, OrDefault(nil))
	assert.Same(t, recorder, OrDefault(recorder))
	assert.NotPanics(t, func() { Discard.Warn("nothing") })

	assert.Equal(t, "cannot provide both 'a' and 'b': choose one", NotAllowedTogether("a", "b"))
}

func TestWarningWithDefault(t *testing.T) {
	t.Parallel()

	t.Run("warn only returns the default", func(t *testing.T) {
		t.Parallel()

		recorder := new(Recorder)
		handler := WarningWithDefault[int]{WarnOnly: true, Warner: recorder}
		value, err := handler.HandleKeyError("vvvv", 30, "verbosity", []string{"v", "vv"})
		require.NoError(t, err)
		assert.Equal(t, 30, value)
		assert.Equal(t, []string{"unexpected verbosity: 'vvvv', choose from [v vv]; using default '30'"}, recorder.Messages())
	})

	t.Run("error when not warn only", func(t *testing.T) {
		t.Parallel()

		recorder := new(Recorder)
		handler := WarningWithDefault[int]{Warner: recorder}
		value, err := handler.HandleKeyError("qqqq", 30, "quietness", []string{"q"})
		require.ErrorIs(t, err, ErrKeyNotFound)
		assert.Zero(t, value)
		assert.Empty(t, recorder.Messages())

		var keyErr *KeyError
		require.ErrorAs(t, err, &keyErr)
		assert.Equal(t, "qqqq", keyErr.Key)
	})
}
