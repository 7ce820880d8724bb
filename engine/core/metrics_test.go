package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsFrameTimeAverage(t *testing.T) {
	m := NewMetrics()
	m.Update(0.010)
	m.Update(0.020)
	assert.InDelta(t, 15.0, m.FrameTime(), 1e-9)
}

func TestMetricsAverageWindow(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < AVG_COUNT; i++ {
		m.Update(1.0 / 1000.0)
	}
	for i := 0; i < AVG_COUNT; i++ {
		m.Update(4.0 / 1000.0)
	}
	assert.InDelta(t, 4.0, m.FrameTime(), 1e-9)
}

func TestMetricsFPS(t *testing.T) {
	m := NewMetrics()
	// ~16.67ms frames cross the one second mark around the 60th frame.
	for i := 0; i < 61; i++ {
		m.Update(1.0 / 60.0)
	}
	fps, _ := m.Frame()
	assert.InDelta(t, 60.0, fps, 1.0)
}

func TestClock(t *testing.T) {
	now := time.Unix(100, 0)
	c := &Clock{now: func() time.Time { return now }}

	c.Update()
	assert.Zero(t, c.Elapsed(), "unstarted clock does not advance")

	c.Start()
	now = now.Add(1500 * time.Millisecond)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9)

	c.Stop()
	now = now.Add(time.Second)
	c.Update()
	assert.InDelta(t, 1.5, c.Elapsed(), 1e-9)
}

func TestParseLogLevel(t *testing.T) {
	lvl, err := ParseLogLevel("debug")
	assert.NoError(t, err)
	assert.Equal(t, DebugLevel, lvl)

	_, err = ParseLogLevel("loud")
	assert.Error(t, err)
}
