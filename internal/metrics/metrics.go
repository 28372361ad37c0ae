// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// User cache metrics
	IncUserCacheHit()
	IncUserCacheMiss()

	// Entity management metrics
	IncUserCreated()
	IncUserUpdated()
	IncUserDeleted()
	IncOrderCreated()
	IncOrderDeleted()

	// Maintenance metrics
	IncUserRepaired()
	IncOrphanRemoved()
	ObserveWorkflowDuration(duration time.Duration)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
