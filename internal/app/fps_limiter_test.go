package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFPSLimiterDisabled(t *testing.T) {
	f := NewFPSLimiter(0)
	start := time.Now()
	for i := 0; i < 100; i++ {
		f.Wait()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}

func TestFPSLimiterPaces(t *testing.T) {
	f := NewFPSLimiter(200)
	start := time.Now()
	for i := 0; i < 10; i++ {
		f.Wait()
	}
	// ten frames at 5ms each
	assert.GreaterOrEqual(t, time.Since(start), 45*time.Millisecond)

	f.SetLimit(0)
	assert.Equal(t, 0, f.Limit())
}
