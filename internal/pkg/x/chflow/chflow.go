// Package chflow provides context-aware helpers for receiving from Go
// channels and for waiting. It helps ensure that blocking operations
// respect cancellation and deadlines via context.Context.
package chflow

import (
	"context"
	"time"
)

// Receive waits to receive a value from the provided channel or for the context to be canceled.
// It returns the value (zero value if canceled) and a boolean indicating if the receive was successful.
func Receive[T any](ctx context.Context, ch <-chan T) (T, bool) {
	var data T
	select {
	case <-ctx.Done():
		return data, false
	case data, ok := <-ch:
		return data, ok
	}
}

// Sleep pauses for d or until ctx is done, whichever happens first.
// It returns false if the context ended the wait. A non-positive d
// returns immediately, reporting whether ctx is still alive.
func Sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	_, ok := Receive(ctx, timer.C)
	return ok
}
