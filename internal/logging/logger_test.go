package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewLoggerDefaultConfig(t *testing.T) {
	logger := NewLogger(nil)
	require.NotNil(t, logger)
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelWarn, Output: &buf})

	logger.Debug("should not appear")
	logger.Info("should not appear either")
	require.Empty(t, buf.String())

	logger.Warn("junction downgraded", "from", "continuous", "to", "exact-path")
	require.Contains(t, buf.String(), "junction downgraded")
	require.Contains(t, buf.String(), "from=continuous")
	require.Contains(t, buf.String(), "to=exact-path")
}

func TestLoggerPrintfStyle(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{Level: LevelDebug, Output: &buf})

	logger.Debugf("region solve: head=%.3f body=%.3f tail=%.3f", 1.0, 2.0, 3.0)
	require.Contains(t, buf.String(), "region solve: head=1.000 body=2.000 tail=3.000")
}

func TestDefaultLoggerIsSingleton(t *testing.T) {
	a := Default()
	b := Default()
	require.Same(t, a, b)

	var buf bytes.Buffer
	custom := NewLogger(&Config{Level: LevelDebug, Output: &buf})
	SetDefault(custom)
	require.Same(t, custom, Default())

	Info("buffer-pool initialized")
	require.Contains(t, buf.String(), "buffer-pool initialized")
}
