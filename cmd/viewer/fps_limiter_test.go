package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mini-render/internal/config"
)

func TestFPSLimiterUncapped(t *testing.T) {
	t.Cleanup(config.ResetRenderSettings)
	config.SetFPSLimit(0)

	var f FPSLimiter
	start := time.Now()
	for range 100 {
		f.Wait()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
	assert.True(t, f.next.IsZero())
}

func TestFPSLimiterPaces(t *testing.T) {
	t.Cleanup(config.ResetRenderSettings)
	config.SetFPSLimit(200)

	var f FPSLimiter
	start := time.Now()
	for range 4 {
		f.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
