package decorator

import (
	"taskrunner/internal/metrics"
	"taskrunner/internal/sentry"
)

// Report decorates method so that any error it returns is passed to reporter, and counted by hook
// if one is supplied, before being returned to the caller unchanged.
func Report[A any, R any](method Method[A, R], reporter sentry.Reporter, hook metrics.MethodHook) Method[A, R] {
	return method.wrap(func(args A) (R, error) {
		result, err := method.Invoke(args)
		if err != nil {
			reporter.Report(method.Name, err)

			if hook != nil {
				hook.EmitError(method.Name)
			}
		}

		return result, err
	})
}
