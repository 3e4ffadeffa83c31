package main

import (
	"bytes"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	return path
}

func TestRunFastTask(t *testing.T) {
	var out bytes.Buffer

	assert.Equal(t, 0, run([]string{"-task", "fast"}, &out))
	assert.Equal(t, 1, strings.Count(out.String(), "Fast task is executed."))
	assert.Contains(t, out.String(), "Method fast_task took")
	assert.NotContains(t, out.String(), "Slow task is executed.")
}

func TestRunAllTasks(t *testing.T) {
	var out bytes.Buffer

	start := time.Now()
	assert.Equal(t, 0, run([]string{"-task", "all"}, &out))

	assert.GreaterOrEqual(t, time.Since(start), time.Second)
	assert.Contains(t, out.String(), "Fast task is executed.")
	assert.Contains(t, out.String(), "Slow task is executed.")
}

func TestRunUnknownTask(t *testing.T) {
	var out bytes.Buffer

	assert.Equal(t, 2, run([]string{"-task", "medium"}, &out))
	assert.Contains(t, out.String(), "main: unknown task: task=medium")
	assert.NotContains(t, out.String(), "is executed.")
}

func TestRunUnknownFlag(t *testing.T) {
	assert.Equal(t, 2, run([]string{"-bogus"}, &bytes.Buffer{}))
}

func TestRunRepeatFlagOverridesConfig(t *testing.T) {
	path := writeConfig(t, "runner:\n  repeat: 2\n")

	var fromConfig bytes.Buffer
	assert.Equal(t, 0, run([]string{"-config", path, "-task", "fast"}, &fromConfig))
	assert.Equal(t, 2, strings.Count(fromConfig.String(), "Method fast_task took"))

	var fromFlag bytes.Buffer
	assert.Equal(t, 0, run([]string{"-config", path, "-task", "fast", "-repeat", "4"}, &fromFlag))
	assert.Equal(t, 4, strings.Count(fromFlag.String(), "Method fast_task took"))
}

func TestRunInvalidConfig(t *testing.T) {
	var out bytes.Buffer
	path := writeConfig(t, "runner:\n  repeat: 0\n")

	assert.Equal(t, 1, run([]string{"-config", path}, &out))
	assert.Contains(t, out.String(), "config: runner repeat must be positive")
}

func TestRunList(t *testing.T) {
	var out bytes.Buffer

	assert.Equal(t, 0, run([]string{"-list"}, &out))
	assert.Equal(
		t,
		"fast_task\tA fast task that completes instantly for demonstration.\n"+
			"slow_task\tA slow task that requires deliberate slowing down.\n",
		out.String(),
	)
}

func TestRunVersion(t *testing.T) {
	var out bytes.Buffer

	assert.Equal(t, 0, run([]string{"-version"}, &out))
	assert.True(t, strings.HasPrefix(out.String(), "taskrunner/"))
}

func TestRunFlushesMetricsBeforeReturning(t *testing.T) {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	defer conn.Close()

	path := writeConfig(t, "metrics:\n  statsd:\n    addr: "+conn.LocalAddr().String()+"\n    sample_rate: 1\n")

	assert.Equal(t, 0, run([]string{"-config", path, "-task", "fast", "-repeat", "2"}, &bytes.Buffer{}))

	// Every emission has been sent by the time run returns
	var packets []string
	buf := make([]byte, 1024)
	for len(packets) < 4 {
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

		n, _, err := conn.ReadFrom(buf)
		require.NoError(t, err)
		packets = append(packets, string(buf[:n]))
	}

	calls := 0
	latencies := 0
	for _, packet := range packets {
		switch {
		case strings.HasPrefix(packet, "taskrunner.event.method.call,"):
			calls++
		case strings.HasPrefix(packet, "taskrunner.latency.method.call,"):
			latencies++
		}
		assert.Contains(t, packet, "method=fast_task")
	}
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, latencies)
}
