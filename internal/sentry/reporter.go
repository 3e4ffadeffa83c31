// Package sentry reports errors returned by decorated methods to an external error tracker.
package sentry

import (
	"github.com/getsentry/raven-go"
)

// Reporter defines a sink for errors that should be surfaced to operators.
type Reporter interface {
	// Report records an error returned by the named method.
	Report(method string, err error)
}

// RavenReporter is an implementation of Reporter that captures errors with the process-wide
// raven client.
type RavenReporter struct{}

// NoopReporter implements the Reporter interface but discards all errors.
type NoopReporter struct{}

// NewRavenReporter configures the global raven client with the specified DSN and release, and
// creates a Reporter backed by it.
func NewRavenReporter(dsn string, release string) (Reporter, error) {
	if err := raven.SetDSN(dsn); err != nil {
		return nil, err
	}

	raven.SetRelease(release)

	return &RavenReporter{}, nil
}

// Report captures the error, tagged with the method name, and blocks until it is delivered.
func (r *RavenReporter) Report(method string, err error) {
	raven.CaptureErrorAndWait(err, map[string]string{
		"method": method,
	})
}

// NewNoopReporter creates a noop implementation of Reporter.
func NewNoopReporter() Reporter {
	return &NoopReporter{}
}

// Report noops.
func (r *NoopReporter) Report(method string, err error) {}
