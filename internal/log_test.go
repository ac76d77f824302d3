package internal

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, LogLevelDebug, ParseLogLevel("debug"))
	assert.Equal(t, LogLevelError, ParseLogLevel(" ERROR "))
	assert.Equal(t, LogLevelInfo, ParseLogLevel("verbose"))
	assert.Equal(t, LogLevelInfo, ParseLogLevel(""))
}

func TestLoggerLevelsAndNames(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelInfo).WithOutput(log.New(&buf, "", 0))

	logger.Named("pivot").Info("built %d columns", 3)
	logger.Debug("hidden")
	logger.Named("api").Named("tables").Warn("slow")

	assert.Equal(t, "[INFO] [pivot] built 3 columns\n[WARN] [api] [tables] slow\n", buf.String())
	assert.Equal(t, LogLevelInfo, logger.GetLevel())
}
