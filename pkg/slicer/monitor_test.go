package slicer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitCompletion_SuccessAfterPolls(t *testing.T) {
	page := newFakePage()
	checks := 0
	page.visibleFn = func(selector string) (bool, error) {
		if selector == resultsLinkSelector {
			checks++
			return checks > 3, nil
		}
		return false, nil
	}

	monitor := &Monitor{Interval: 5 * time.Millisecond}
	state, err := monitor.AwaitCompletion(context.Background(), page, time.Second)

	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)
	assert.True(t, state.Terminal())
}

func TestAwaitCompletion_Failure(t *testing.T) {
	page := newFakePage()
	page.visible[errorLinkSelector] = true
	page.htmls[errorMessageSelector] = "<p>Region <b>too large</b> for slicing</p>"

	monitor := &Monitor{Interval: 5 * time.Millisecond}
	state, err := monitor.AwaitCompletion(context.Background(), page, time.Second)

	assert.Equal(t, StateFailed, state)
	var failed *JobFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "Region too large for slicing", failed.Message)
}

func TestAwaitCompletion_Timeout(t *testing.T) {
	page := newFakePage() // nothing ever becomes visible

	interval := 10 * time.Millisecond
	timeout := 50 * time.Millisecond
	monitor := &Monitor{Interval: interval}

	started := time.Now()
	state, err := monitor.AwaitCompletion(context.Background(), page, timeout)
	elapsed := time.Since(started)

	assert.Equal(t, StateTimedOut, state)
	var timedOut *JobTimedOutError
	require.ErrorAs(t, err, &timedOut)
	assert.Equal(t, timeout, timedOut.Timeout)

	// Must not poll past the deadline by more than one interval.
	assert.Less(t, elapsed, timeout+2*interval)
	assert.GreaterOrEqual(t, elapsed, timeout)
}

func TestAwaitCompletion_SuccessBeatsDeadline(t *testing.T) {
	page := newFakePage()
	page.visible[resultsLinkSelector] = true

	monitor := &Monitor{Interval: time.Hour}
	state, err := monitor.AwaitCompletion(context.Background(), page, time.Second)

	// An immediately-complete job must be seen on the first check, before
	// any sleep.
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)
}

func TestAwaitCompletion_CancelledContext(t *testing.T) {
	page := newFakePage()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	monitor := &Monitor{Interval: time.Hour}
	started := time.Now()
	state, err := monitor.AwaitCompletion(ctx, page, time.Hour)

	assert.Equal(t, StateTimedOut, state)
	var timedOut *JobTimedOutError
	require.ErrorAs(t, err, &timedOut)
	assert.Less(t, time.Since(started), time.Second)
}

func TestJobStateTerminal(t *testing.T) {
	assert.False(t, StateSubmitted.Terminal())
	assert.False(t, StatePending.Terminal())
	assert.True(t, StateCompleted.Terminal())
	assert.True(t, StateFailed.Terminal())
	assert.True(t, StateTimedOut.Terminal())
}
