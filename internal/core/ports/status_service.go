package ports

import (
	"context"
	"time"
)

// StoreStatus describes backing store connectivity and record counts.
type StoreStatus struct {
	Connected   bool
	Error       string
	Users       int64
	Posts       int64
	LastChecked time.Time
}

// StatusService reports on the backing store.
type StatusService interface {
	Check(ctx context.Context) *StoreStatus
}
