package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("d")
	l.Info("i")
	l.Warn("w")
	l.Error("e")
	assert.Equal(t, NopLogger{}, l.With("k", "v"))
}

func TestSetup_TextRespectsVerbosity(t *testing.T) {
	var buf bytes.Buffer
	quiet := Setup(FormatText, false, &buf)
	quiet.Debug("hidden")
	quiet.Warn("shown", "path", "/tmp/x")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "path=/tmp/x")
	assert.Contains(t, out, "app=openapi-glue")
	assert.False(t, quiet.Enabled(slog.LevelDebug))

	buf.Reset()
	verbose := Setup(FormatText, true, &buf)
	verbose.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.True(t, verbose.Enabled(slog.LevelDebug))
}

func TestSetup_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := Setup(FormatJSON, true, &buf).With("stage", "load")
	l.Info("loaded", "paths", 2)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "loaded", record["msg"])
	assert.Equal(t, "load", record["stage"])
	assert.EqualValues(t, 2, record["paths"])
}

func TestLogError(t *testing.T) {
	t.Run("plain error", func(t *testing.T) {
		var buf bytes.Buffer
		LogError(Setup(FormatText, false, &buf), "failed", errors.New("boom"))
		assert.Contains(t, buf.String(), "error=boom")
	})

	t.Run("oops error carries code and context", func(t *testing.T) {
		var buf bytes.Buffer
		err := oops.Code("PLUGIN_START").With("path", "/opt/plugin").Errorf("handshake failed")
		LogError(Setup(FormatText, false, &buf), "failed", err)

		out := buf.String()
		assert.True(t, strings.Contains(out, "code=PLUGIN_START"), out)
		assert.Contains(t, out, "/opt/plugin")
		assert.Contains(t, out, "handshake failed")
	})
}
