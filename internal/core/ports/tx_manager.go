package ports

import "context"

// TxManager runs fn inside a single store transaction. Repository calls made with the ctx passed
// to fn take part in that transaction; the transaction commits when fn returns nil and rolls back
// otherwise.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger checks connectivity to the backing store.
type Pinger interface {
	Ping(ctx context.Context) error
}
