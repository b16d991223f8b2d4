package timesync

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSignal_DispatchOrder(t *testing.T) {
	var sig signal
	var order []int

	sig.add(func(Row) { order = append(order, 1) })
	sig.add(func(Row) { order = append(order, 2) })
	sig.add(func(Row) { order = append(order, 3) })

	sig.dispatch(discardLogger(), Row{time: at(1)})
	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestSignal_Remove(t *testing.T) {
	var sig signal
	var calls []string

	sig.add(func(Row) { calls = append(calls, "a") })
	id := sig.add(func(Row) { calls = append(calls, "b") })
	sig.add(func(Row) { calls = append(calls, "c") })

	sig.remove(id)
	sig.dispatch(discardLogger(), Row{})
	assert.Equal(t, []string{"a", "c"}, calls)

	// Removing an unknown id is a no-op.
	sig.remove(999)
	sig.dispatch(discardLogger(), Row{})
	assert.Equal(t, []string{"a", "c", "a", "c"}, calls)
}

func TestSignal_Clear(t *testing.T) {
	var sig signal
	n := 0
	sig.add(func(Row) { n++ })
	sig.clear()
	sig.dispatch(discardLogger(), Row{})
	assert.Zero(t, n)
}

func TestSignal_DispatchAllRowOrder(t *testing.T) {
	var sig signal
	var seen []time.Time
	sig.add(func(r Row) { seen = append(seen, r.Time()) })

	rows := []*Row{{time: at(1)}, {time: at(2)}, {time: at(3)}}
	sig.dispatchAll(discardLogger(), rows)
	require.Equal(t, []time.Time{at(1), at(2), at(3)}, seen)
}

func TestSignal_PanicDoesNotStopDispatch(t *testing.T) {
	var sig signal
	var calls []string

	sig.add(func(Row) { calls = append(calls, "before") })
	sig.add(func(Row) { panic("boom") })
	sig.add(func(Row) { calls = append(calls, "after") })

	require.NotPanics(t, func() { sig.dispatch(discardLogger(), Row{}) })
	assert.Equal(t, []string{"before", "after"}, calls)
}
