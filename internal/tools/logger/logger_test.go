package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name          string
		level         string
		expectedLevel zerolog.Level
	}{
		{"empty", "", zerolog.InfoLevel},
		{"debug", "debug", zerolog.DebugLevel},
		{"warn", "warn", zerolog.WarnLevel},
		{"garbage", "shouting", zerolog.InfoLevel},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out := &bytes.Buffer{}
			log := NewWithWriter(out, test.level)

			assert.Equal(t, test.expectedLevel, log.GetLevel())
		})
	}

	t.Run("should write json lines with service name", func(t *testing.T) {
		out := &bytes.Buffer{}
		log := NewWithWriter(out, "info")

		log.Info().Str("label", "trace").Msg("hello")

		line := map[string]any{}
		assert.NoError(t, json.Unmarshal(out.Bytes(), &line))
		assert.Equal(t, "travel-planner", line["service"])
		assert.Equal(t, "trace", line["label"])
		assert.Equal(t, "hello", line["message"])
	})
}
