package logging

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, parseLevel(in), "level %q", in)
	}
}

func TestParseTimeFormat(t *testing.T) {
	assert.Equal(t, time.Kitchen, parseTimeFormat("kitchen"))
	assert.Equal(t, time.RFC3339, parseTimeFormat("rfc3339"))
	assert.Equal(t, "", parseTimeFormat("unix"))
	assert.Equal(t, "2006-01-02", parseTimeFormat("2006-01-02"))
	assert.Equal(t, time.Kitchen, parseTimeFormat("whatever"))
}

func TestParseFields(t *testing.T) {
	fields := parseFields("env=dev, region = eu ,broken")
	assert.Equal(t, map[string]any{"env": "dev", "region": "eu"}, fields)
	assert.Empty(t, parseFields(""))
}
