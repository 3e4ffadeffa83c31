// Package metrics contains abstractions for measuring and emitting metrics about decorated method
// invocations. Currently, the only supported metrics output engine is statsd.
//
// Metrics are structured around the notion of hooks: a hook interface defines methods that
// decorators invoke at fixed points of a method call, such as after the call returns or after an
// enforced delay. Implementations of hook interfaces ship the metrics to a backend engine; this
// responsibility is decoupled from the decorators themselves.
package metrics
