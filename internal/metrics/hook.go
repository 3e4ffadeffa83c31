package metrics

import (
	"os"
	"sync"
	"time"
)

// MethodHook is a metrics hook interface for reporting events and latencies related to the
// invocation of a decorated method.
type MethodHook interface {
	// EmitLatency reports the wall clock duration of a single successful method invocation.
	EmitLatency(method string, latency time.Duration)

	// EmitDelay reports a delay deliberately enforced before a method invocation.
	EmitDelay(method string, delay time.Duration)

	// EmitError reports that a method invocation returned an error.
	EmitError(method string)

	// Close blocks until all pending emissions are shipped and releases the backend. No emissions
	// are permitted after Close.
	Close() error
}

// AsyncStatsdMethodHook is an implementation of MethodHook that outputs metrics asynchronously to
// statsd.
type AsyncStatsdMethodHook struct {
	client  *StatsdClient
	pending sync.WaitGroup
}

// NoopMethodHook implements the MethodHook interface but noops on all emissions.
type NoopMethodHook struct{}

// NewAsyncStatsdMethodHook creates a new hook with the specified statsd address and sample rate.
func NewAsyncStatsdMethodHook(addr string, sampleRate float32) (MethodHook, error) {
	client, err := statsdClientFactory(addr, sampleRate)
	if err != nil {
		return nil, err
	}

	return &AsyncStatsdMethodHook{client: client}, nil
}

// EmitLatency statsd implementation
func (h *AsyncStatsdMethodHook) EmitLatency(method string, latency time.Duration) {
	h.async(func() {
		tags := map[string]string{"method": method}

		h.client.Count("event.method.call", 1, tags)
		h.client.Timing("latency.method.call", latency, tags)
	})
}

// EmitDelay statsd implementation
func (h *AsyncStatsdMethodHook) EmitDelay(method string, delay time.Duration) {
	h.async(func() {
		h.client.Timing("latency.method.delay", delay, map[string]string{
			"method": method,
		})
	})
}

// EmitError statsd implementation
func (h *AsyncStatsdMethodHook) EmitError(method string) {
	h.async(func() {
		h.client.Count("event.method.error", 1, map[string]string{
			"method": method,
		})
	})
}

// Close waits for in-flight emissions and closes the statsd client.
func (h *AsyncStatsdMethodHook) Close() error {
	h.pending.Wait()

	return h.client.Close()
}

// async runs emit in its own goroutine, tracked so that Close can wait for it.
func (h *AsyncStatsdMethodHook) async(emit func()) {
	h.pending.Add(1)

	go func() {
		defer h.pending.Done()
		emit()
	}()
}

// NewNoopMethodHook creates a noop implementation of MethodHook.
func NewNoopMethodHook() MethodHook {
	return &NoopMethodHook{}
}

// EmitLatency noops.
func (h *NoopMethodHook) EmitLatency(method string, latency time.Duration) {}

// EmitDelay noops.
func (h *NoopMethodHook) EmitDelay(method string, delay time.Duration) {}

// EmitError noops.
func (h *NoopMethodHook) EmitError(method string) {}

// Close noops.
func (h *NoopMethodHook) Close() error {
	return nil
}

// statsdClientFactory creates a configured StatsdClient with reasonable defaults for the given
// statsd server address and sample rate.
func statsdClientFactory(addr string, sampleRate float32) (*StatsdClient, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return nil, err
	}

	defaultTags := map[string]string{
		"host": hostname,
	}

	return NewStatsdClient(addr, "taskrunner", defaultTags, sampleRate)
}
