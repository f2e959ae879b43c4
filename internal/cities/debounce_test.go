package cities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDebounceOnlyLastCallFires(t *testing.T) {
	fired := make(chan string, 8)
	call, stop := Debounce(func(q string) { fired <- q }, 40*time.Millisecond)
	defer stop()

	call("r")
	call("ri")
	call("rio")

	select {
	case got := <-fired:
		assert.Equal(t, "rio", got)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced function never fired")
	}

	// No earlier call leaks through afterwards.
	select {
	case got := <-fired:
		t.Fatalf("unexpected extra invocation with %q", got)
	case <-time.After(120 * time.Millisecond):
	}
}

func TestDebounceStopCancelsPending(t *testing.T) {
	fired := make(chan string, 1)
	call, stop := Debounce(func(q string) { fired <- q }, 40*time.Millisecond)

	call("beijing")
	stop()

	select {
	case got := <-fired:
		t.Fatalf("call fired after stop with %q", got)
	case <-time.After(120 * time.Millisecond):
	}

	// The debouncer stays usable after a stop.
	call("tokyo")
	select {
	case got := <-fired:
		require.Equal(t, "tokyo", got)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced function never fired after restart")
	}
}
