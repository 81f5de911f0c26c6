package domain

import (
	"fmt"
	"strings"
)

// TrackingMarker is the substring a successful fulfillment writes into the
// order note. Existing order data already carries this literal text, so it
// must never change.
const TrackingMarker = "Intigo NID:"

// IsAlreadyProcessed reports whether an order note records a prior successful
// fulfillment. The whole idempotency convention lives behind this predicate.
func IsAlreadyProcessed(note string) bool {
	return strings.Contains(note, TrackingMarker)
}

// ReviewNote is the operator-facing note flagging an order whose address or
// phone could not be validated, carrying the raw values to correct.
func ReviewNote(rawCity string, phone string) string {
	return fmt.Sprintf(`ADRESSE_A_VERIFIER | city="%s" | phone="%s"`, rawCity, phone)
}

// RejectionNote is the operator-facing note for a parcel the courier declined
// to register, carrying the resolved geography that was submitted.
func RejectionNote(city string, subDivision string) string {
	return fmt.Sprintf("INTIGO_ERREUR | mapped=%s/%s", city, subDivision)
}

// SuccessNote records the courier tracking id and the canonical geography the
// parcel was registered under. Its first line doubles as the idempotency
// marker checked by IsAlreadyProcessed.
func SuccessNote(trackingID string, city string, subDivision string) string {
	return fmt.Sprintf("%s %s\nVille_norme: %s\nGouvernorat_norme: %s", TrackingMarker, trackingID, subDivision, city)
}
