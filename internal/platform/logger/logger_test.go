package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quizgen/quizgen/internal/config"
)

// TestSetupLevels verifies that the configured level filters records and that
// emitted records are valid JSON.
func TestSetupLevels(t *testing.T) {
	testCases := []struct {
		name       string
		level      string
		debugShown bool
		infoShown  bool
	}{
		{name: "debug level shows everything", level: "debug", debugShown: true, infoShown: true},
		{name: "info level hides debug", level: "info", debugShown: false, infoShown: true},
		{name: "warn level hides info", level: "warn", debugShown: false, infoShown: false},
		{name: "error level hides info", level: "error", debugShown: false, infoShown: false},
		{name: "unknown level falls back to info", level: "chatty", debugShown: false, infoShown: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := setup(config.LogConfig{Level: tc.level}, &buf)

			log.Debug("debug message")
			assert.Equal(t, tc.debugShown, buf.Len() > 0, "debug record visibility mismatch")

			buf.Reset()
			log.Info("info message")
			assert.Equal(t, tc.infoShown, buf.Len() > 0, "info record visibility mismatch")

			buf.Reset()
			log.Error("error message", "attempt", 1)
			require.Positive(t, buf.Len(), "error records are always emitted")

			var record map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &record), "records must be valid JSON")
			assert.Equal(t, "error message", record["msg"])
			assert.EqualValues(t, 1, record["attempt"])
		})
	}
}
