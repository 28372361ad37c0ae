package batch

import (
	"time"

	"github.com/storewarden/storewarden/internal/model"
)

// LegacyUser is a record exported from the legacy system.
type LegacyUser struct {
	Name  string
	Email string
}

// MigrationReport summarizes a legacy migration run.
type MigrationReport struct {
	SuccessCount int
	ErrorCount   int
	Skipped      []string
}

// CleanupReport summarizes a cleanup run.
type CleanupReport struct {
	DeletedUsers  int
	DeletedOrders int
	ErrorCount    int
}

// IntegrityReport summarizes an integrity validation run.
type IntegrityReport struct {
	RepairedUsers  int
	RemovedOrphans int
}

// Statistics is a point-in-time aggregate over users and orders.
type Statistics struct {
	TotalUsers   int
	ActiveUsers  int
	TotalOrders  int
	ActivityRate float64
	OrdersByUser map[string]int
	GeneratedAt  time.Time
}

// WelcomeRegistration reports the outcome of registering a user with a
// welcome bonus. BonusOrder is nil and BonusError set when the bonus
// order could not be created; the user creation is never rolled back.
type WelcomeRegistration struct {
	User       *model.User
	BonusOrder *model.Order
	BonusError string
}

// MergeReport summarizes a user merge.
type MergeReport struct {
	PrimaryID        string
	SecondaryID      string
	ReassignedOrders int
}

// Backup is a point-in-time copy of a user and their orders, not a
// live reference.
type Backup struct {
	User       *model.User
	Orders     []*model.Order
	BackupDate time.Time
}

// RestoreReport summarizes a backup restore.
type RestoreReport struct {
	SuccessCount int
	ErrorCount   int
}

// BulkEmailReport summarizes a bulk email domain rewrite.
type BulkEmailReport struct {
	UpdatedCount int
	ErrorCount   int
}

// BatchUpdateReport summarizes a targeted batch update over user IDs.
type BatchUpdateReport struct {
	UpdatedCount int
	SkippedCount int
	ErrorCount   int
}
