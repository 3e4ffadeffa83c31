package metrics

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listenStatsd opens a loopback UDP listener standing in for a statsd server.
func listenStatsd(t *testing.T) net.PacketConn {
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	return conn
}

// readPacket reads a single statsd datagram from the listener.
func readPacket(t *testing.T, conn net.PacketConn) string {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))

	buf := make([]byte, 1024)
	n, _, err := conn.ReadFrom(buf)
	require.NoError(t, err)

	return string(buf[:n])
}

func TestFormatMetric(t *testing.T) {
	client := &StatsdClient{defaultTags: map[string]string{"host": "box"}}

	assert.Equal(
		t,
		"latency.method.call,host=box,method=fast_task",
		client.formatMetric("latency.method.call", map[string]string{"method": "fast_task"}),
	)

	bare := &StatsdClient{}
	assert.Equal(t, "event%3Aa", bare.formatMetric("event:a", nil))
}

func TestStatsdClientCount(t *testing.T) {
	conn := listenStatsd(t)

	client, err := NewStatsdClient(conn.LocalAddr().String(), "taskrunner", nil, 1)
	require.NoError(t, err)
	defer client.Close()

	require.NoError(t, client.Count("event.method.call", 1, map[string]string{"method": "slow_task"}))
	assert.Equal(t, "taskrunner.event.method.call,method=slow_task:1|c", readPacket(t, conn))
}

func TestAsyncStatsdMethodHook(t *testing.T) {
	conn := listenStatsd(t)

	hook, err := NewAsyncStatsdMethodHook(conn.LocalAddr().String(), 1)
	require.NoError(t, err)
	t.Cleanup(func() { hook.Close() })

	hook.EmitError("fast_task")

	packet := readPacket(t, conn)
	assert.True(t, strings.HasPrefix(packet, "taskrunner.event.method.error,host="))
	assert.Contains(t, packet, "method=fast_task")
	assert.True(t, strings.HasSuffix(packet, ":1|c"))
}

func TestAsyncStatsdMethodHookDelay(t *testing.T) {
	conn := listenStatsd(t)

	hook, err := NewAsyncStatsdMethodHook(conn.LocalAddr().String(), 1)
	require.NoError(t, err)
	t.Cleanup(func() { hook.Close() })

	hook.EmitDelay("slow_task", time.Second)

	packet := readPacket(t, conn)
	assert.True(t, strings.HasPrefix(packet, "taskrunner.latency.method.delay,host="))
	assert.True(t, strings.HasSuffix(packet, "|ms"))
	assert.Contains(t, packet, ":1000")
}

func TestAsyncStatsdMethodHookCloseFlushesPending(t *testing.T) {
	conn := listenStatsd(t)

	hook, err := NewAsyncStatsdMethodHook(conn.LocalAddr().String(), 1)
	require.NoError(t, err)

	hook.EmitLatency("fast_task", 3*time.Millisecond)
	require.NoError(t, hook.Close())

	packets := []string{readPacket(t, conn), readPacket(t, conn)}
	assert.True(t, strings.HasPrefix(packets[0], "taskrunner.event.method.call,host="))
	assert.True(t, strings.HasPrefix(packets[1], "taskrunner.latency.method.call,host="))
}

func TestNoopMethodHook(t *testing.T) {
	hook := NewNoopMethodHook()

	assert.NotPanics(t, func() {
		hook.EmitLatency("fast_task", time.Millisecond)
		hook.EmitDelay("slow_task", time.Second)
		hook.EmitError("fast_task")
	})
	assert.NoError(t, hook.Close())
}
