package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoolRunsAllJobs(t *testing.T) {
	p := NewPool(4)
	var n atomic.Int64
	for i := 0; i < 100; i++ {
		p.Submit(func() { n.Add(1) })
	}
	p.Stop()
	assert.Equal(t, int64(100), n.Load())
}

func TestStopWaitsForInFlight(t *testing.T) {
	p := NewPool(1)
	done := false
	p.Submit(func() { done = true })
	p.Stop()
	assert.True(t, done)
}
