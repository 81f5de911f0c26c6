package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// PhoneLength is the number of trailing digits a deliverable local phone
// number carries after stripping prefixes and formatting.
const PhoneLength = 8

// ShippingAddress is the free-text destination block of an order event.
type ShippingAddress struct {
	City     string `json:"city"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	Phone    string `json:"phone"`
}

// Customer carries the recipient name parts of an order event.
type Customer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// OrderEvent is the order snapshot delivered by the order store's
// orders/create webhook. It is read-only input to the pipeline; field names
// follow the store's snake_case wire format.
type OrderEvent struct {
	ID              int64            `json:"id"`
	Name            string           `json:"name"`
	TotalPrice      string           `json:"total_price"`
	Note            string           `json:"note"`
	Phone           string           `json:"phone"`
	Customer        Customer         `json:"customer"`
	ShippingAddress *ShippingAddress `json:"shipping_address"`
}

// ParseOrderEvent decodes and validates a raw webhook body. Anything that
// cannot be decoded, or that lacks the order id needed for write-back, is
// rejected here as ErrMalformedEvent rather than propagating zero values
// downstream.
func ParseOrderEvent(raw []byte) (*OrderEvent, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedEvent)
	}

	var event OrderEvent
	if err := json.Unmarshal(raw, &event); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if event.ID <= 0 {
		return nil, fmt.Errorf("%w: order id is required", ErrMalformedEvent)
	}

	return &event, nil
}

// RecipientName joins the customer name parts, trimming surrounding space.
func (e *OrderEvent) RecipientName() string {
	return strings.TrimSpace(strings.TrimSpace(e.Customer.FirstName) + " " + strings.TrimSpace(e.Customer.LastName))
}

// RawCity returns the free-text shipping city, or "" when the event carries
// no shipping address.
func (e *OrderEvent) RawCity() string {
	if e.ShippingAddress == nil {
		return ""
	}
	return strings.TrimSpace(e.ShippingAddress.City)
}

// AddressText joins the free-text address lines into one line.
func (e *OrderEvent) AddressText() string {
	if e.ShippingAddress == nil {
		return ""
	}

	parts := make([]string, 0, 2)
	for _, line := range []string{e.ShippingAddress.Address1, e.ShippingAddress.Address2} {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return strings.Join(parts, ", ")
}

// PhoneDigits extracts the candidate local phone number: all non-digits are
// stripped from the address-level phone (preferred) or the order-level phone,
// and the last PhoneLength digits are kept. The result may be shorter than
// PhoneLength; validation of the length is the pipeline's job.
func (e *OrderEvent) PhoneDigits() string {
	source := ""
	if e.ShippingAddress != nil {
		source = strings.TrimSpace(e.ShippingAddress.Phone)
	}
	if source == "" {
		source = strings.TrimSpace(e.Phone)
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, source)

	if len(digits) > PhoneLength {
		return digits[len(digits)-PhoneLength:]
	}
	return digits
}

// CODAmount parses the order total into the cash-on-delivery amount.
// Unparseable totals default to 0 so a bad amount never blocks a shipment.
func (e *OrderEvent) CODAmount() float64 {
	amount, err := strconv.ParseFloat(strings.TrimSpace(e.TotalPrice), 64)
	if err != nil {
		return 0
	}
	return amount
}
