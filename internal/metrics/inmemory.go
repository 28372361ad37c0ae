package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	UserCacheHits           uint64
	UserCacheMisses         uint64
	UsersCreated            uint64
	UsersUpdated            uint64
	UsersDeleted            uint64
	OrdersCreated           uint64
	OrdersDeleted           uint64
	UsersRepaired           uint64
	OrphansRemoved          uint64
	WorkflowDurationCount   uint64
	WorkflowDurationTotalNs int64
}

// InMemoryRecorder stores metrics in memory for tests.
type InMemoryRecorder struct {
	userCacheHits           uint64
	userCacheMisses         uint64
	usersCreated            uint64
	usersUpdated            uint64
	usersDeleted            uint64
	ordersCreated           uint64
	ordersDeleted           uint64
	usersRepaired           uint64
	orphansRemoved          uint64
	workflowDurationCount   uint64
	workflowDurationTotalNs int64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		UserCacheHits:           atomic.LoadUint64(&m.userCacheHits),
		UserCacheMisses:         atomic.LoadUint64(&m.userCacheMisses),
		UsersCreated:            atomic.LoadUint64(&m.usersCreated),
		UsersUpdated:            atomic.LoadUint64(&m.usersUpdated),
		UsersDeleted:            atomic.LoadUint64(&m.usersDeleted),
		OrdersCreated:           atomic.LoadUint64(&m.ordersCreated),
		OrdersDeleted:           atomic.LoadUint64(&m.ordersDeleted),
		UsersRepaired:           atomic.LoadUint64(&m.usersRepaired),
		OrphansRemoved:          atomic.LoadUint64(&m.orphansRemoved),
		WorkflowDurationCount:   atomic.LoadUint64(&m.workflowDurationCount),
		WorkflowDurationTotalNs: atomic.LoadInt64(&m.workflowDurationTotalNs),
	}
}

// IncUserCacheHit increments the cache hit counter.
func (m *InMemoryRecorder) IncUserCacheHit() {
	atomic.AddUint64(&m.userCacheHits, 1)
}

// IncUserCacheMiss increments the cache miss counter.
func (m *InMemoryRecorder) IncUserCacheMiss() {
	atomic.AddUint64(&m.userCacheMisses, 1)
}

// IncUserCreated increments the user created counter.
func (m *InMemoryRecorder) IncUserCreated() {
	atomic.AddUint64(&m.usersCreated, 1)
}

// IncUserUpdated increments the user updated counter.
func (m *InMemoryRecorder) IncUserUpdated() {
	atomic.AddUint64(&m.usersUpdated, 1)
}

// IncUserDeleted increments the user deleted counter.
func (m *InMemoryRecorder) IncUserDeleted() {
	atomic.AddUint64(&m.usersDeleted, 1)
}

// IncOrderCreated increments the order created counter.
func (m *InMemoryRecorder) IncOrderCreated() {
	atomic.AddUint64(&m.ordersCreated, 1)
}

// IncOrderDeleted increments the order deleted counter.
func (m *InMemoryRecorder) IncOrderDeleted() {
	atomic.AddUint64(&m.ordersDeleted, 1)
}

// IncUserRepaired increments the malformed-user repair counter.
func (m *InMemoryRecorder) IncUserRepaired() {
	atomic.AddUint64(&m.usersRepaired, 1)
}

// IncOrphanRemoved increments the orphaned-order removal counter.
func (m *InMemoryRecorder) IncOrphanRemoved() {
	atomic.AddUint64(&m.orphansRemoved, 1)
}

// ObserveWorkflowDuration records a batch workflow duration.
func (m *InMemoryRecorder) ObserveWorkflowDuration(duration time.Duration) {
	atomic.AddUint64(&m.workflowDurationCount, 1)
	atomic.AddInt64(&m.workflowDurationTotalNs, duration.Nanoseconds())
}
