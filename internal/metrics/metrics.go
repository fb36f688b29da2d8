// Package metrics holds the process-wide Prometheus counters shared
// across the concurrency surface, kept dependency-free (no internal
// imports beyond client_golang) so both internal/builtin's top-level
// functions and internal/eval/methods' per-kind method bodies can
// record against it without closing an import cycle between them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

var (
	tasksSpawnedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hemlock_tasks_spawned_total",
		Help: "Total tasks spawned via the spawn/detach builtins.",
	})
	tasksCompletedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hemlock_tasks_completed_total",
		Help: "Total tasks whose join/wait_all observed completion.",
	})
	channelSendsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "hemlock_channel_sends_total",
		Help: "Total successful channel.send calls.",
	})
)

func init() {
	prometheus.MustRegister(tasksSpawnedTotal, tasksCompletedTotal, channelSendsTotal)
}

// RecordTaskSpawned/RecordTaskCompleted/RecordChannelSend increment
// the corresponding counter. Called from internal/builtin (spawn,
// detach, join, wait_all) and from internal/eval/methods/channel.go's
// channelSend, the only path channel.send reaches.
func RecordTaskSpawned()   { tasksSpawnedTotal.Inc() }
func RecordTaskCompleted() { tasksCompletedTotal.Inc() }
func RecordChannelSend()   { channelSendsTotal.Inc() }

// Snapshot returns the current value of each counter, read with
// testutil.ToFloat64 since these are never scraped over HTTP.
func Snapshot() (tasksSpawned, tasksCompleted, channelSends float64) {
	return testutil.ToFloat64(tasksSpawnedTotal),
		testutil.ToFloat64(tasksCompletedTotal),
		testutil.ToFloat64(channelSendsTotal)
}
