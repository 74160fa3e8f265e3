package logx_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/fischedule/logx"
)

func TestNew_JSONCarriesFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logx.New("debug", "json", &buf).With(logx.String("component", "cli"))
	log.Info("generated",
		logx.Int("dates", 5),
		logx.Bool("array", true),
		logx.Duration("elapsed", 1500*time.Millisecond),
		logx.Err(errors.New("boom")),
		logx.Err(nil))

	var ev map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &ev))
	assert.Equal(t, "info", ev["level"])
	assert.Equal(t, "generated", ev["message"])
	assert.Equal(t, "cli", ev["component"])
	assert.EqualValues(t, 5, ev["dates"])
	assert.Equal(t, true, ev["array"])
	assert.EqualValues(t, 1500, ev["elapsed"])
	assert.Equal(t, "boom", ev["error"])
}

func TestNew_LevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := logx.New("warn", "console", &buf)
	assert.False(t, log.Enabled(logx.LevelInfo))
	assert.True(t, log.Enabled(logx.LevelError))

	log.Debug("hidden")
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown", logx.String("calendar", "TARGET"))
	assert.True(t, strings.Contains(buf.String(), "shown"))
	assert.True(t, strings.Contains(buf.String(), "calendar=TARGET"))
}

func TestZeroAndNopDiscard(t *testing.T) {
	t.Parallel()

	var zero logx.Logger
	zero.Error("nothing")
	logx.Nop().Error("nothing")
	assert.Equal(t, logx.LevelWarn, logx.ParseLevel("WARNING", logx.LevelInfo))
	assert.Equal(t, logx.LevelInfo, logx.ParseLevel("loud", logx.LevelInfo))
	assert.Equal(t, logx.LevelDebug, logx.ParseLevel(" debug ", logx.LevelInfo))
}
