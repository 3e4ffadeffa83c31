package decorator

import (
	"time"

	"taskrunner/internal/metrics"
)

// DefaultDelay is the fixed pause enforced by SlowDown before every invocation.
const DefaultDelay = time.Second

// DelayOpts formalizes configuration options for the delay decorator.
type DelayOpts struct {
	// Delay overrides DefaultDelay. Non-positive values select DefaultDelay.
	Delay time.Duration

	// Hook, if non-nil, receives the enforced delay before each invocation.
	Hook metrics.MethodHook
}

// SlowDown decorates method so that each invocation first blocks the calling goroutine for the
// configured delay, and only then calls through. The delay always runs to completion.
func SlowDown[A any, R any](method Method[A, R], opts DelayOpts) Method[A, R] {
	delay := opts.Delay
	if delay <= 0 {
		delay = DefaultDelay
	}

	return method.wrap(func(args A) (R, error) {
		time.Sleep(delay)

		if opts.Hook != nil {
			opts.Hook.EmitDelay(method.Name, delay)
		}

		return method.Invoke(args)
	})
}
