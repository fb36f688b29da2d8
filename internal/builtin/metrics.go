package builtin

import (
	"github.com/nbeerbower/hemlock/internal/metrics"
	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	Register(&Info{Name: "metrics_snapshot", Call: biMetricsSnapshot})
}

// metrics_snapshot exposes the process-wide counters recorded in
// internal/metrics as an object, rather than a Prometheus scrape
// endpoint.
func biMetricsSnapshot(args []value.Value, ctx interface{}) (value.Value, error) {
	tasksSpawned, tasksCompleted, channelSends := metrics.Snapshot()
	out := value.NewObject()
	out.Set("tasks_spawned", value.F64(tasksSpawned))
	out.Set("tasks_completed", value.F64(tasksCompleted))
	out.Set("channel_sends", value.F64(channelSends))
	return value.Heap(out), nil
}
