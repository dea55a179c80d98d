package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	var testCases = []struct {
		input   string
		expect  slog.Level
		wantErr bool
	}{
		{input: "debug", expect: slog.LevelDebug},
		{input: "", expect: slog.LevelInfo},
		{input: "WARN", expect: slog.LevelWarn},
		{input: "error", expect: slog.LevelError},
		{input: "verbose", wantErr: true},
	}
	for _, testCase := range testCases {
		actual, err := ParseLevel(testCase.input)
		if testCase.wantErr {
			assert.Error(t, err, testCase.input)
			continue
		}
		assert.NoError(t, err, testCase.input)
		assert.Equal(t, testCase.expect, actual, testCase.input)
	}
}

func TestSetup(t *testing.T) {
	buffer := &bytes.Buffer{}
	logger := Setup(buffer, slog.LevelInfo, "json")
	logger.Debug("hidden")
	logger.Info("annotated", slog.String("file", "A.tsx"))
	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), `"file":"A.tsx"`)
}
