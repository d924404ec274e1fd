package circuit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type step struct {
	fail     bool
	wantOpen bool
	// signal is the first return value of the Record call.
	signal   bool
	opened   bool
	closed   bool
}

func run(t *testing.T, b *Breaker, steps []step) {
	t.Helper()
	for i, st := range steps {
		var signal bool
		var change StateChange
		if st.fail {
			signal, change = b.RecordFailure()
		} else {
			signal, change = b.RecordSuccess()
		}
		assert.Equal(t, st.signal, signal, "step %d signal", i)
		assert.Equal(t, st.opened, change.Opened, "step %d opened", i)
		assert.Equal(t, st.closed, change.Closed, "step %d closed", i)
		assert.Equal(t, st.wantOpen, b.IsOpen(), "step %d state", i)
	}
}

func TestBreaker_Defaults(t *testing.T) {
	b := New("lookup:unilag")
	assert.Equal(t, "lookup:unilag", b.Name())
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}

func TestBreaker_Transitions(t *testing.T) {
	tests := []struct {
		name  string
		opts  []Option
		steps []step
	}{
		{
			name: "opens on the threshold failure",
			opts: []Option{WithFailureThreshold(3)},
			steps: []step{
				{fail: true},
				{fail: true},
				{fail: true, wantOpen: true, signal: true, opened: true},
				{fail: true, wantOpen: true, signal: true},
			},
		},
		{
			name: "a success in between resets the failure run",
			opts: []Option{WithFailureThreshold(2)},
			steps: []step{
				{fail: true},
				{signal: true},
				{fail: true},
				{fail: true, wantOpen: true, signal: true, opened: true},
			},
		},
		{
			name: "closes after consecutive successes",
			opts: []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			steps: []step{
				{fail: true, wantOpen: true, signal: true, opened: true},
				{wantOpen: true},
				{signal: true, closed: true},
			},
		},
		{
			name: "a failure while open restarts the success run",
			opts: []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			steps: []step{
				{fail: true, wantOpen: true, signal: true, opened: true},
				{wantOpen: true},
				{fail: true, wantOpen: true, signal: true},
				{wantOpen: true},
				{signal: true, closed: true},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run(t, New("lookup", tt.opts...), tt.steps)
		})
	}
}

func TestBreaker_ProbeAfterCooldown(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	b := New("lookup", WithFailureThreshold(1), WithCooldown(time.Minute), WithClock(func() time.Time { return now }))

	b.RecordFailure()
	assert.False(t, b.Allow())

	now = now.Add(59 * time.Second)
	assert.False(t, b.Allow())

	now = now.Add(time.Second)
	assert.True(t, b.Allow(), "cooldown boundary is inclusive")

	// A failed probe restarts the cooldown.
	b.RecordFailure()
	assert.False(t, b.Allow())
}

func TestBreaker_Reset(t *testing.T) {
	b := New("lookup", WithFailureThreshold(1))
	b.RecordFailure()
	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.True(t, b.Allow())
}
