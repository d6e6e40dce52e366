/*
Package monitor samples the occupancy of circular buffers on a cron schedule.

A network service usually runs a handful of hand-off buffers (ingress frames, parsed requests,
outbound writes). A Monitor watches them by name and periodically records size, capacity,
utilization and sealed state:

	mon, err := monitor.New(monitor.Config{
		Schedule:      "@every 15s",
		HighWatermark: 0.8,
		Metrics:       metrics.DefaultRegistry,
	})
	mon.Watch("ingress", ingress)
	mon.Watch("egress", egress)
	mon.Start()
	defer mon.Stop(ctx)

Schedules use robfig/cron syntax with a leading seconds field ("0 * * * * *") or a descriptor
("@every 5s", "@hourly"). Samples at or above the high watermark are logged as warnings and
counted in circbuf_monitor_high_watermark_total.

Sample takes an on-demand reading outside the schedule.
*/
package monitor
