package decorator

import (
	"fmt"
	"io"
	"os"

	"lib.kevinlin.info/aperture/lib"

	"taskrunner/internal/metrics"
)

// TimingOpts formalizes configuration options for the timing decorator.
type TimingOpts struct {
	// Output receives one line per successful invocation reporting its elapsed time. Defaults to
	// standard output.
	Output io.Writer

	// Hook, if non-nil, additionally receives the measured latency of each successful invocation.
	Hook metrics.MethodHook
}

// Timeit decorates method so that each invocation measures its elapsed wall clock time and
// reports it as
//
//	Method <name> took <elapsed> seconds to complete.
//
// The result of the underlying call is returned unmodified. If the call returns an error, the error
// is returned unchanged and nothing is reported.
func Timeit[A any, R any](method Method[A, R], opts TimingOpts) Method[A, R] {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	return method.wrap(func(args A) (R, error) {
		stopwatch := lib.NewStopwatch()
		result, err := method.Invoke(args)
		elapsed := stopwatch.Elapsed()

		if err != nil {
			return result, err
		}

		fmt.Fprintf(out, "Method %s took %v seconds to complete.\n", method.Name, elapsed.Seconds())

		if opts.Hook != nil {
			opts.Hook.EmitLatency(method.Name, elapsed)
		}

		return result, nil
	})
}
