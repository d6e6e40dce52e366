// Package metrics provides Prometheus instrumentation for circbuf components.
//
// A single Registry holds the metric vectors for buffers, occupancy monitors,
// worker pools and spill stores. Components take a *Registry in their Config
// and bind their own label values, so one Registry serves any number of
// component instances. A nil *Registry disables instrumentation.
//
// # Quick Start
//
//	reg := prometheus.NewRegistry()
//	m := metrics.NewRegistry(reg)
//
//	buf := circular.NewWithConfig[Frame](circular.Config{
//		Capacity: 512,
//		Name:     "ingress",
//		Metrics:  m,
//	})
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// # Available Metrics
//
// ## Buffer Metrics
//
//   - circbuf_buffer_enqueued_total: Items admitted
//   - circbuf_buffer_dequeued_total: Items removed one at a time
//   - circbuf_buffer_drained_total: Items removed by bulk drains
//   - circbuf_buffer_rejected_total: Writes refused, by reason ("full" or "sealed")
//   - circbuf_buffer_wait_outcomes_total: Parked operations, by side and outcome
//   - circbuf_buffer_wait_duration_seconds: Time parked operations spent waiting
//   - circbuf_buffer_size: Items present
//   - circbuf_buffer_capacity: Fixed capacity
//   - circbuf_buffer_sealed: 1 once sealed
//
// ## Monitor Metrics
//
//   - circbuf_monitor_samples_total: Occupancy samples taken
//   - circbuf_monitor_utilization: Last sampled utilization
//   - circbuf_monitor_high_watermark_total: Samples at or above the watermark
//
// ## Worker Pool Metrics
//
//   - circbuf_workerpool_items_total: Items handled, by result
//   - circbuf_workerpool_active_workers: Running workers
//   - circbuf_workerpool_handle_duration_seconds: Time spent per item
//
// ## Spill Store Metrics
//
//   - circbuf_spill_items_total: Items spilled or restored, by direction
//   - circbuf_spill_errors_total: Failed store operations, by operation
//
// # Labels
//
//   - buffer_name: Config.Name of the buffer
//   - side: "producer" or "consumer"
//   - outcome: "ready", "expired", "timeout" or "canceled"
//   - pool_name: Config.Name of the worker pool
//   - result: "success", "error" or "panic"
//   - store_key: Redis key of the spill store
//
// # Configuration
//
//	config := metrics.Config{
//		Enabled:   true,
//		Registry:  prometheus.DefaultRegisterer,
//		Namespace: "myapp",                             // overrides "circbuf"
//		Labels:    prometheus.Labels{"version": "1.0"}, // added to every metric
//	}
//	m := config.Build() // nil when Enabled is false
package metrics
