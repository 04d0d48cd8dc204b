package profiler

import (
	"bytes"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-audioviz/engine/config"
	"github.com/Carmen-Shannon/oxy-audioviz/engine/logging"
	"github.com/stretchr/testify/assert"
)

func TestTick_LogsOncePerInterval(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(config.LoggingConfig{Level: "info", Format: "text"}, "test", &buf)
	p := NewProfiler(logger)
	p.updateInterval = time.Hour

	assert.False(t, p.Tick())
	assert.False(t, p.Tick())
	assert.Empty(t, buf.String())

	p.lastTime = time.Now().Add(-2 * time.Hour)
	assert.True(t, p.Tick())
	assert.Contains(t, buf.String(), "component=profiler")
	assert.Contains(t, buf.String(), "tps=")
	assert.Equal(t, 0, p.tickCount)
}

func TestNewProfiler_NilLogger(t *testing.T) {
	p := NewProfiler(nil)
	p.updateInterval = 0
	assert.True(t, p.Tick())
}
