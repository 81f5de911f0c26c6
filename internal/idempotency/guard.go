package idempotency

import "context"

// Guard claims an order for the duration of one fulfillment attempt so that
// two concurrent deliveries of the same event cannot both reach the courier
// before either has written its note.
type Guard interface {
	// Acquire claims the order. False means another in-flight attempt holds it.
	Acquire(ctx context.Context, orderID int64) (bool, error)
	// Release frees the claim so a redelivery can run the pipeline again.
	Release(ctx context.Context, orderID int64) error
}
