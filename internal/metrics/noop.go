package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncUserCacheHit is a no-op.
func (n *NoopRecorder) IncUserCacheHit() {}

// IncUserCacheMiss is a no-op.
func (n *NoopRecorder) IncUserCacheMiss() {}

// IncUserCreated is a no-op.
func (n *NoopRecorder) IncUserCreated() {}

// IncUserUpdated is a no-op.
func (n *NoopRecorder) IncUserUpdated() {}

// IncUserDeleted is a no-op.
func (n *NoopRecorder) IncUserDeleted() {}

// IncOrderCreated is a no-op.
func (n *NoopRecorder) IncOrderCreated() {}

// IncOrderDeleted is a no-op.
func (n *NoopRecorder) IncOrderDeleted() {}

// IncUserRepaired is a no-op.
func (n *NoopRecorder) IncUserRepaired() {}

// IncOrphanRemoved is a no-op.
func (n *NoopRecorder) IncOrphanRemoved() {}

// ObserveWorkflowDuration is a no-op.
func (n *NoopRecorder) ObserveWorkflowDuration(duration time.Duration) {}
