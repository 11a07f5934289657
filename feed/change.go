package feed

import (
	"context"

	"github.com/google/uuid"
)

// Change is one optimistic interaction record. Rollback is a pure function
// of the record: Previous is restored verbatim, never re-derived, so
// concurrent unrelated updates cannot compound into drift.
type Change[T any] struct {
	ID       string
	TargetID string
	Previous T
	Pending  T
}

func NewChange[T any](targetID string, previous, pending T) Change[T] {
	return Change[T]{
		ID:       uuid.NewString(),
		TargetID: targetID,
		Previous: previous,
		Pending:  pending,
	}
}

// Apply runs one optimistic interaction lifecycle:
//
//  1. the pending state is applied locally, before any network I/O;
//  2. the remote call is issued;
//  3. on success the pending state stands;
//  4. on failure the previous state is restored exactly and refetch is
//     triggered to reconcile against the authoritative copy.
//
// The error from the remote call is returned so the caller can surface it;
// a refetch failure is the caller's to observe on the next refresh.
func Apply[T any](ctx context.Context, ch Change[T], set func(T), call func(context.Context) error, refetch func(context.Context) error) error {
	set(ch.Pending)

	if err := call(ctx); err != nil {
		set(ch.Previous)
		if refetch != nil {
			_ = refetch(ctx)
		}
		return err
	}
	return nil
}
