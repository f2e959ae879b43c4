package cities

import (
	"sync"
	"time"
)

// Debounce wraps fn so that it only runs after interval of inactivity.
// Each call supersedes any pending one, so a burst of keystrokes results in
// a single invocation with the last query. stop cancels a pending call
// outright. Both returned functions are safe for concurrent use.
func Debounce(fn func(query string), interval time.Duration) (call func(string), stop func()) {
	var (
		mu    sync.Mutex
		timer *time.Timer
	)

	call = func(query string) {
		mu.Lock()
		defer mu.Unlock()

		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(interval, func() {
			fn(query)
		})
	}

	stop = func() {
		mu.Lock()
		defer mu.Unlock()

		if timer != nil {
			timer.Stop()
			timer = nil
		}
	}

	return call, stop
}
