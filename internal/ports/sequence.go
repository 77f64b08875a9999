package ports

import "context"

// SequenceCounter hands out diploma serial numbers: last issued value plus one.
//
// Next returns the computed number even when persisting the new value fails;
// in that case the error is non-nil and the caller decides whether to proceed.
// The read-then-write is not atomic across processes or concurrent calls.
type SequenceCounter interface {
	Next(ctx context.Context) (int, error)
}
