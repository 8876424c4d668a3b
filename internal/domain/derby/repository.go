package derby

import "context"

// Repository describes the single read the dashboard needs from the backing store.
type Repository interface {
	ListMatchStats(ctx context.Context) (Table, error)
}
