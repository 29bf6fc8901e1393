package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"channel-insights/infrastructure/logger"
)

func TestGetLogger_AnnotatesCaller(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stdout)
	logger.Configure("json", "debug")

	logger.GetLogger().WithField("channel", "UC123").Info("channel loaded")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "channel loaded", line["msg"])
	assert.Equal(t, "UC123", line["channel"])
	assert.Contains(t, line["function"], "TestGetLogger_AnnotatesCaller")
	assert.Contains(t, line["file"], "logger_test.go")
}

func TestConfigure_TextAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer func() {
		logger.SetOutput(os.Stdout)
		logger.Configure("json", "debug")
	}()

	logger.Configure("text", "warn")
	logger.GetLogger().Info("hidden")
	assert.Empty(t, buf.String())

	logger.GetLogger().Warn("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}
