package domain

import "time"

// FulfillmentRecord is one journal entry describing how a webhook invocation
// ended for an order. Records are audit data: writing one never influences
// the invocation's outcome.
type FulfillmentRecord struct {
	ID            string
	OrderID       int64
	OrderName     string
	CorrelationID string
	Outcome       Outcome
	TrackingID    *string
	City          *string
	SubDivision   *string
	Detail        *string
	CreatedAt     time.Time
}
