package atclient

import (
	"time"

	"github.com/atsign-foundation/atclientgo/metrics"
	"github.com/atsign-foundation/atclientgo/tasks"
)

// NewHeartbeatTask builds a tasks.Task that runs every interval and
// records this client's liveness through metrics.PublishHeartbeat: a
// gauge carrying the connection's uptime and a counter ticking once per
// beat, both tagged with the connection's atSign as the service. Pass
// the result as Config.HeartbeatTask to have Dial schedule it; nil
// leaves heartbeating disabled.
func NewHeartbeatTask(c *Client, interval uint64, unit tasks.TimeUnit) tasks.Task {
	start := time.Now()
	return tasks.NewTaskAtIntervals(interval, unit).Do("atclient-heartbeat", func() {
		metrics.PublishHeartbeat(c.atSign.WithoutPrefix(), time.Since(start))
		logger.Tracef("atsign=%s heartbeat", c.atSign)
	})
}
