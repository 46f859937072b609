// ABOUTME: Progress tracking and update management for the multi-start driver
// ABOUTME: Adapts tsp.Driver's OnWave callback into a non-blocking update channel

package main

import (
	"sync"
	"time"
)

// WaveUpdate is one progress sample forwarded from a driver wave.
type WaveUpdate struct {
	Wave    int
	Elapsed time.Duration
	Cost    float64
}

// progressTracker adapts tsp.Driver.OnWave into a buffered, non-blocking
// channel send so CLI and visual modes can both subscribe without the
// driver blocking on a slow consumer.
type progressTracker struct {
	updateChan chan WaveUpdate
	closeOnce  sync.Once
}

// onWave is wired to tsp.Driver.OnWave.
func (pt *progressTracker) onWave(wave int, elapsed time.Duration, cost float64) {
	if pt.updateChan == nil {
		return
	}

	select {
	case pt.updateChan <- WaveUpdate{Wave: wave, Elapsed: elapsed, Cost: cost}:
	default:
		// Don't block the driver if the consumer is behind.
	}
}

// close ensures the update channel is closed exactly once.
func (pt *progressTracker) close() {
	if pt.updateChan != nil {
		pt.closeOnce.Do(func() { close(pt.updateChan) })
	}
}
