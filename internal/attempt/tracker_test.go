package attempt

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fixedClock lets tests move time forward deterministically
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }

func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTracker() (*Tracker, *fixedClock) {
	clock := &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	tr := NewTracker()
	tr.now = clock.now
	return tr, clock
}

func TestTracker_RecordFailure(t *testing.T) {
	tr, _ := newTestTracker()

	count, warned := tr.RecordFailure("a@b.com")
	require.Equal(t, 1, count)
	require.False(t, warned)

	count, _ = tr.RecordFailure("a@b.com")
	require.Equal(t, 2, count)

	count, _ = tr.RecordFailure("a@b.com")
	require.Equal(t, 3, count)
}

func TestTracker_IdentifierNormalization(t *testing.T) {
	tr, _ := newTestTracker()

	tr.RecordFailure("A@B.com")
	count, _ := tr.RecordFailure("a@b.com ")
	require.Equal(t, 2, count, "case and whitespace variants share a window")
}

func TestTracker_WindowPruning(t *testing.T) {
	tr, clock := newTestTracker()

	// Three failures spaced 20 minutes apart never accumulate
	for i := 0; i < 3; i++ {
		count, _ := tr.RecordFailure("12345678")
		require.Equal(t, 1, count)
		clock.advance(20 * time.Minute)
	}

	// Failures inside the window do accumulate
	tr.RecordFailure("12345678")
	clock.advance(14 * time.Minute)
	count, _ := tr.RecordFailure("12345678")
	require.Equal(t, 3, count, "20-minute-old attempt pruned, recent two remain")
}

func TestTracker_MarkWarned(t *testing.T) {
	tr, _ := newTestTracker()

	// No-op for unknown identifier
	tr.MarkWarned("nobody@example.com")

	tr.RecordFailure("a@b.com")
	tr.RecordFailure("a@b.com")
	tr.RecordFailure("a@b.com")
	tr.MarkWarned("a@b.com")

	_, warned := tr.RecordFailure("a@b.com")
	require.True(t, warned, "fourth failure in the window sees the warned flag")
}

func TestTracker_Reset(t *testing.T) {
	tr, _ := newTestTracker()

	tr.RecordFailure("a@b.com")
	tr.RecordFailure("a@b.com")
	tr.MarkWarned("a@b.com")
	tr.Reset("a@b.com")

	count, warned := tr.RecordFailure("a@b.com")
	require.Equal(t, 1, count, "counting restarts after reset")
	require.False(t, warned, "warned flag cleared with the record")
}

func TestTracker_ConcurrentAccess(t *testing.T) {
	tr := NewTracker()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				tr.RecordFailure("shared@example.com")
			}
		}()
	}
	wg.Wait()

	count, _ := tr.RecordFailure("shared@example.com")
	require.Equal(t, 1001, count, "count reflects all prior attempts")
}
