package core

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogOutput(&buf)
	t.Cleanup(func() { SetLogOutput(os.Stderr) })
	return &buf
}

func TestLogErrorKeepsPercentInArguments(t *testing.T) {
	buf := captureLog(t)

	LogError("%s", errors.New("open /tmp/100%done/basic.wgsl: no such file"))

	assert.Contains(t, buf.String(), "/tmp/100%done/basic.wgsl")
	assert.NotContains(t, buf.String(), "%!")
}

func TestLogLevelFiltersOutput(t *testing.T) {
	buf := captureLog(t)
	prev := GetLogLevel()
	t.Cleanup(func() { SetLogLevel(prev) })

	SetLogLevel(WarnLevel)
	LogInfo("hidden")
	LogWarn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
