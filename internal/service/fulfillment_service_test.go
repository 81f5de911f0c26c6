package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kursadbilgin/fulfillment-bridge/internal/domain"
	"github.com/kursadbilgin/fulfillment-bridge/internal/geo"
	"github.com/kursadbilgin/fulfillment-bridge/internal/intigo"
	"github.com/kursadbilgin/fulfillment-bridge/internal/repository"
)

func orderBody() []byte {
	return []byte(`{
		"id": 450789469,
		"name": "#1001",
		"total_price": "149.900",
		"note": "",
		"customer": {"first_name": "Ahmed", "last_name": "Ben Salah"},
		"shipping_address": {
			"city": "Le Bardo",
			"address1": "12 rue de la Liberte",
			"address2": "",
			"phone": "21612345678"
		}
	}`)
}

func pickupFixture() PickupOrigin {
	return PickupOrigin{
		Address:     "Zone industrielle lot 4",
		City:        "Ariana",
		SubDivision: "Ariana Ville",
	}
}

func bardoResolver() *fakeResolver {
	return &fakeResolver{
		resolveFn: func(ctx context.Context, inputCity string) (*geo.Match, error) {
			return &geo.Match{City: "Tunis", SubDivision: "Le Bardo"}, nil
		},
	}
}

type serviceDeps struct {
	verifier  *fakeVerifier
	resolver  *fakeResolver
	courier   *fakeCourier
	annotator *fakeAnnotator
	guard     *fakeGuard
	journal   *fakeJournal
}

func newTestFulfillmentService(t *testing.T, deps serviceDeps) *FulfillmentService {
	t.Helper()

	if deps.verifier == nil {
		deps.verifier = &fakeVerifier{}
	}
	if deps.resolver == nil {
		deps.resolver = bardoResolver()
	}
	if deps.courier == nil {
		deps.courier = &fakeCourier{}
	}
	if deps.annotator == nil {
		deps.annotator = &fakeAnnotator{}
	}
	if deps.guard == nil {
		deps.guard = &fakeGuard{}
	}
	if deps.journal == nil {
		deps.journal = &fakeJournal{}
	}

	svc, err := NewFulfillmentService(
		deps.verifier,
		deps.resolver,
		deps.courier,
		deps.annotator,
		deps.guard,
		deps.journal,
		pickupFixture(),
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("NewFulfillmentService() error = %v", err)
	}
	return svc
}

func TestFulfillmentServiceProcessHappyPath(t *testing.T) {
	t.Parallel()

	var gotRequest intigo.ParcelRequest
	courier := &fakeCourier{
		createFn: func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
			gotRequest = request
			return &intigo.ParcelResult{NID: "ABC", StatusCode: 201}, nil
		},
	}

	var gotNote string
	var gotOrderID int64
	annotator := &fakeAnnotator{
		updateFn: func(ctx context.Context, orderID int64, text string) error {
			gotOrderID = orderID
			gotNote = text
			return nil
		},
	}

	released := false
	guard := &fakeGuard{
		releaseFn: func(ctx context.Context, orderID int64) error {
			released = true
			return nil
		},
	}

	var gotRecord *domain.FulfillmentRecord
	journal := &fakeJournal{
		recordFn: func(ctx context.Context, rec *domain.FulfillmentRecord) error {
			gotRecord = rec
			return nil
		},
	}

	svc := newTestFulfillmentService(t, serviceDeps{
		courier:   courier,
		annotator: annotator,
		guard:     guard,
		journal:   journal,
	})

	result := svc.Process(context.Background(), orderBody(), "")

	if result.Outcome != domain.OutcomeProcessed {
		t.Fatalf("Outcome = %s, want %s (err=%v)", result.Outcome, domain.OutcomeProcessed, result.Err)
	}
	if result.TrackingID != "ABC" {
		t.Fatalf("TrackingID = %q, want %q", result.TrackingID, "ABC")
	}

	if gotRequest.City != "Tunis" || gotRequest.SubDivision != "Le Bardo" {
		t.Fatalf("parcel destination = %s/%s, want Tunis/Le Bardo", gotRequest.City, gotRequest.SubDivision)
	}
	if gotRequest.PhoneNumber != "12345678" {
		t.Fatalf("parcel phone = %q, want %q", gotRequest.PhoneNumber, "12345678")
	}
	if gotRequest.FullName != "Ahmed Ben Salah" {
		t.Fatalf("parcel full name = %q, want %q", gotRequest.FullName, "Ahmed Ben Salah")
	}
	if gotRequest.CODAmount != 149.9 {
		t.Fatalf("parcel cod amount = %v, want 149.9", gotRequest.CODAmount)
	}
	if gotRequest.Address != "12 rue de la Liberte" {
		t.Fatalf("parcel address = %q, want %q", gotRequest.Address, "12 rue de la Liberte")
	}
	if gotRequest.Designation != "Order #1001" {
		t.Fatalf("parcel designation = %q, want %q", gotRequest.Designation, "Order #1001")
	}
	if gotRequest.ParcelType != intigo.ParcelTypeCOD || gotRequest.NbPieces != 1 {
		t.Fatalf("parcel attributes = %s/%d, want COD/1", gotRequest.ParcelType, gotRequest.NbPieces)
	}
	if gotRequest.PickupCity != "Ariana" || gotRequest.PickupSubDivision != "Ariana Ville" {
		t.Fatalf("pickup = %s/%s, want Ariana/Ariana Ville", gotRequest.PickupCity, gotRequest.PickupSubDivision)
	}

	if gotOrderID != 450789469 {
		t.Fatalf("annotated order id = %d, want 450789469", gotOrderID)
	}
	wantNote := "Intigo NID: ABC\nVille_norme: Le Bardo\nGouvernorat_norme: Tunis"
	if gotNote != wantNote {
		t.Fatalf("note = %q, want %q", gotNote, wantNote)
	}

	if !released {
		t.Fatal("guard should be released after a durable success note")
	}

	if gotRecord == nil {
		t.Fatal("expected a journal record")
	}
	if gotRecord.Outcome != domain.OutcomeProcessed {
		t.Fatalf("journal outcome = %s, want %s", gotRecord.Outcome, domain.OutcomeProcessed)
	}
	if gotRecord.TrackingID == nil || *gotRecord.TrackingID != "ABC" {
		t.Fatalf("journal tracking id = %v, want ABC", gotRecord.TrackingID)
	}
	if gotRecord.City == nil || *gotRecord.City != "Tunis" {
		t.Fatalf("journal city = %v, want Tunis", gotRecord.City)
	}
}

func TestFulfillmentServiceProcessUnauthorized(t *testing.T) {
	t.Parallel()

	resolverCalled := false
	courierCalled := false
	annotatorCalled := false
	journalCalled := false

	svc := newTestFulfillmentService(t, serviceDeps{
		verifier: &fakeVerifier{
			verifyFn: func(rawBody []byte, signature string) bool { return false },
		},
		resolver: &fakeResolver{
			resolveFn: func(ctx context.Context, inputCity string) (*geo.Match, error) {
				resolverCalled = true
				return nil, nil
			},
		},
		courier: &fakeCourier{
			createFn: func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
				courierCalled = true
				return nil, nil
			},
		},
		annotator: &fakeAnnotator{
			updateFn: func(ctx context.Context, orderID int64, text string) error {
				annotatorCalled = true
				return nil
			},
		},
		journal: &fakeJournal{
			recordFn: func(ctx context.Context, rec *domain.FulfillmentRecord) error {
				journalCalled = true
				return nil
			},
		},
	})

	result := svc.Process(context.Background(), orderBody(), "bad-signature")

	if result.Outcome != domain.OutcomeUnauthorized {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeUnauthorized)
	}
	if resolverCalled || courierCalled || annotatorCalled || journalCalled {
		t.Fatal("rejected delivery must produce no side effects")
	}
}

func TestFulfillmentServiceProcessMalformedPayload(t *testing.T) {
	t.Parallel()

	courierCalled := false
	annotatorCalled := false

	svc := newTestFulfillmentService(t, serviceDeps{
		courier: &fakeCourier{
			createFn: func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
				courierCalled = true
				return nil, nil
			},
		},
		annotator: &fakeAnnotator{
			updateFn: func(ctx context.Context, orderID int64, text string) error {
				annotatorCalled = true
				return nil
			},
		},
	})

	result := svc.Process(context.Background(), []byte(`{"id": "not a number"`), "")

	if result.Outcome != domain.OutcomeInternalError {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeInternalError)
	}
	if result.Err == nil {
		t.Fatal("expected parse error on result")
	}
	if courierCalled || annotatorCalled {
		t.Fatal("malformed payload must not reach any remote system")
	}
}

func TestFulfillmentServiceProcessAlreadyProcessedNote(t *testing.T) {
	t.Parallel()

	acquireCalled := false
	resolverCalled := false
	courierCalled := false
	annotatorCalled := false

	var gotRecord *domain.FulfillmentRecord

	svc := newTestFulfillmentService(t, serviceDeps{
		resolver: &fakeResolver{
			resolveFn: func(ctx context.Context, inputCity string) (*geo.Match, error) {
				resolverCalled = true
				return nil, nil
			},
		},
		courier: &fakeCourier{
			createFn: func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
				courierCalled = true
				return nil, nil
			},
		},
		annotator: &fakeAnnotator{
			updateFn: func(ctx context.Context, orderID int64, text string) error {
				annotatorCalled = true
				return nil
			},
		},
		guard: &fakeGuard{
			acquireFn: func(ctx context.Context, orderID int64) (bool, error) {
				acquireCalled = true
				return true, nil
			},
		},
		journal: &fakeJournal{
			recordFn: func(ctx context.Context, rec *domain.FulfillmentRecord) error {
				gotRecord = rec
				return nil
			},
		},
	})

	body := []byte(`{"id": 42, "name": "#77", "note": "Intigo NID: 123", "shipping_address": {"city": "Tunis", "phone": "21612345678"}}`)
	result := svc.Process(context.Background(), body, "")

	if result.Outcome != domain.OutcomeAlreadyProcessed {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeAlreadyProcessed)
	}
	if resolverCalled || courierCalled || annotatorCalled {
		t.Fatal("replay must perform no calls beyond the signature check")
	}
	if acquireCalled {
		t.Fatal("replay must not claim the order guard")
	}
	if gotRecord == nil || gotRecord.Outcome != domain.OutcomeAlreadyProcessed {
		t.Fatalf("journal record = %+v, want ALREADY_PROCESSED", gotRecord)
	}
}

func TestFulfillmentServiceProcessNeedsReviewUnresolvedCity(t *testing.T) {
	t.Parallel()

	courierCalled := false
	var gotNote string
	released := false

	svc := newTestFulfillmentService(t, serviceDeps{
		resolver: &fakeResolver{
			resolveFn: func(ctx context.Context, inputCity string) (*geo.Match, error) {
				return nil, nil
			},
		},
		courier: &fakeCourier{
			createFn: func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
				courierCalled = true
				return nil, nil
			},
		},
		annotator: &fakeAnnotator{
			updateFn: func(ctx context.Context, orderID int64, text string) error {
				gotNote = text
				return nil
			},
		},
		guard: &fakeGuard{
			releaseFn: func(ctx context.Context, orderID int64) error {
				released = true
				return nil
			},
		},
	})

	body := []byte(`{"id": 42, "name": "#77", "shipping_address": {"city": "Gotham", "phone": "21612345678"}}`)
	result := svc.Process(context.Background(), body, "")

	if result.Outcome != domain.OutcomeNeedsReview {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeNeedsReview)
	}
	if !strings.Contains(result.Reason, "city") {
		t.Fatalf("Reason = %q, want city mentioned", result.Reason)
	}
	if courierCalled {
		t.Fatal("review path must not submit a parcel")
	}
	if want := `ADRESSE_A_VERIFIER | city="Gotham" | phone="12345678"`; gotNote != want {
		t.Fatalf("note = %q, want %q", gotNote, want)
	}
	if !released {
		t.Fatal("guard should be released so a corrected replay can run")
	}
}

func TestFulfillmentServiceProcessNeedsReviewShortPhone(t *testing.T) {
	t.Parallel()

	var gotNote string

	svc := newTestFulfillmentService(t, serviceDeps{
		annotator: &fakeAnnotator{
			updateFn: func(ctx context.Context, orderID int64, text string) error {
				gotNote = text
				return nil
			},
		},
	})

	body := []byte(`{"id": 42, "name": "#77", "shipping_address": {"city": "Le Bardo", "phone": "1 23 45"}}`)
	result := svc.Process(context.Background(), body, "")

	if result.Outcome != domain.OutcomeNeedsReview {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeNeedsReview)
	}
	if !strings.Contains(result.Reason, "phone") {
		t.Fatalf("Reason = %q, want phone mentioned", result.Reason)
	}
	if want := `ADRESSE_A_VERIFIER | city="Le Bardo" | phone="12345"`; gotNote != want {
		t.Fatalf("note = %q, want %q", gotNote, want)
	}
}

func TestFulfillmentServiceProcessReviewNoteWriteFailure(t *testing.T) {
	t.Parallel()

	released := false

	svc := newTestFulfillmentService(t, serviceDeps{
		resolver: &fakeResolver{
			resolveFn: func(ctx context.Context, inputCity string) (*geo.Match, error) {
				return nil, nil
			},
		},
		annotator: &fakeAnnotator{
			updateFn: func(ctx context.Context, orderID int64, text string) error {
				return errors.New("store unavailable")
			},
		},
		guard: &fakeGuard{
			releaseFn: func(ctx context.Context, orderID int64) error {
				released = true
				return nil
			},
		},
	})

	result := svc.Process(context.Background(), orderBody(), "")

	if result.Outcome != domain.OutcomeInternalError {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeInternalError)
	}
	if !released {
		t.Fatal("guard should be released when no parcel was created")
	}
}

func TestFulfillmentServiceProcessRemoteRejected(t *testing.T) {
	t.Parallel()

	var gotNote string
	released := false
	var gotRecord *domain.FulfillmentRecord

	svc := newTestFulfillmentService(t, serviceDeps{
		courier: &fakeCourier{
			createFn: func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
				return &intigo.ParcelResult{StatusCode: 422, Body: `{"error":"unknown area"}`}, nil
			},
		},
		annotator: &fakeAnnotator{
			updateFn: func(ctx context.Context, orderID int64, text string) error {
				gotNote = text
				return nil
			},
		},
		guard: &fakeGuard{
			releaseFn: func(ctx context.Context, orderID int64) error {
				released = true
				return nil
			},
		},
		journal: &fakeJournal{
			recordFn: func(ctx context.Context, rec *domain.FulfillmentRecord) error {
				gotRecord = rec
				return nil
			},
		},
	})

	result := svc.Process(context.Background(), orderBody(), "")

	if result.Outcome != domain.OutcomeRemoteRejected {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeRemoteRejected)
	}
	if want := "INTIGO_ERREUR | mapped=Tunis/Le Bardo"; gotNote != want {
		t.Fatalf("note = %q, want %q", gotNote, want)
	}
	if !released {
		t.Fatal("guard should be released so a replay can retry the courier")
	}
	if gotRecord == nil || gotRecord.Detail == nil || !strings.Contains(*gotRecord.Detail, "unknown area") {
		t.Fatalf("journal record = %+v, want courier response detail", gotRecord)
	}
}

func TestFulfillmentServiceProcessCourierFailure(t *testing.T) {
	t.Parallel()

	annotatorCalled := false
	released := false

	svc := newTestFulfillmentService(t, serviceDeps{
		courier: &fakeCourier{
			createFn: func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
				return nil, &intigo.APIError{StatusCode: 503, Message: "courier down", Transient: true}
			},
		},
		annotator: &fakeAnnotator{
			updateFn: func(ctx context.Context, orderID int64, text string) error {
				annotatorCalled = true
				return nil
			},
		},
		guard: &fakeGuard{
			releaseFn: func(ctx context.Context, orderID int64) error {
				released = true
				return nil
			},
		},
	})

	result := svc.Process(context.Background(), orderBody(), "")

	if result.Outcome != domain.OutcomeInternalError {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeInternalError)
	}
	if annotatorCalled {
		t.Fatal("transport failure must not attempt an annotation")
	}
	if !released {
		t.Fatal("guard should be released so redelivery can run")
	}
}

func TestFulfillmentServiceProcessSuccessNoteFailureKeepsClaim(t *testing.T) {
	t.Parallel()

	released := false
	var gotRecord *domain.FulfillmentRecord

	svc := newTestFulfillmentService(t, serviceDeps{
		courier: &fakeCourier{
			createFn: func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
				return &intigo.ParcelResult{NID: "ABC", StatusCode: 201}, nil
			},
		},
		annotator: &fakeAnnotator{
			updateFn: func(ctx context.Context, orderID int64, text string) error {
				return errors.New("store unavailable")
			},
		},
		guard: &fakeGuard{
			releaseFn: func(ctx context.Context, orderID int64) error {
				released = true
				return nil
			},
		},
		journal: &fakeJournal{
			recordFn: func(ctx context.Context, rec *domain.FulfillmentRecord) error {
				gotRecord = rec
				return nil
			},
		},
	})

	result := svc.Process(context.Background(), orderBody(), "")

	if result.Outcome != domain.OutcomeInternalError {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeInternalError)
	}
	if result.TrackingID != "ABC" {
		t.Fatalf("TrackingID = %q, want ABC preserved for the journal", result.TrackingID)
	}
	if released {
		t.Fatal("guard must stay held: a parcel exists but the note marker does not")
	}
	if gotRecord == nil || gotRecord.TrackingID == nil || *gotRecord.TrackingID != "ABC" {
		t.Fatalf("journal record = %+v, want tracking id ABC", gotRecord)
	}
}

func TestFulfillmentServiceProcessConcurrentDeliverySkips(t *testing.T) {
	t.Parallel()

	courierCalled := false
	releaseCalled := false

	svc := newTestFulfillmentService(t, serviceDeps{
		courier: &fakeCourier{
			createFn: func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
				courierCalled = true
				return nil, nil
			},
		},
		guard: &fakeGuard{
			acquireFn: func(ctx context.Context, orderID int64) (bool, error) {
				return false, nil
			},
			releaseFn: func(ctx context.Context, orderID int64) error {
				releaseCalled = true
				return nil
			},
		},
	})

	result := svc.Process(context.Background(), orderBody(), "")

	if result.Outcome != domain.OutcomeAlreadyProcessed {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeAlreadyProcessed)
	}
	if courierCalled {
		t.Fatal("contended order must not reach the courier")
	}
	if releaseCalled {
		t.Fatal("the other delivery owns the claim, it must not be released here")
	}
}

func TestFulfillmentServiceProcessGuardFailureContinues(t *testing.T) {
	t.Parallel()

	courierCalled := false

	svc := newTestFulfillmentService(t, serviceDeps{
		courier: &fakeCourier{
			createFn: func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
				courierCalled = true
				return &intigo.ParcelResult{NID: "ABC", StatusCode: 201}, nil
			},
		},
		guard: &fakeGuard{
			acquireFn: func(ctx context.Context, orderID int64) (bool, error) {
				return false, errors.New("redis down")
			},
		},
	})

	result := svc.Process(context.Background(), orderBody(), "")

	if result.Outcome != domain.OutcomeProcessed {
		t.Fatalf("Outcome = %s, want %s (guard errors fail open)", result.Outcome, domain.OutcomeProcessed)
	}
	if !courierCalled {
		t.Fatal("expected the pipeline to continue unguarded")
	}
}

func TestFulfillmentServiceProcessResolverFailure(t *testing.T) {
	t.Parallel()

	annotatorCalled := false
	released := false

	svc := newTestFulfillmentService(t, serviceDeps{
		resolver: &fakeResolver{
			resolveFn: func(ctx context.Context, inputCity string) (*geo.Match, error) {
				return nil, errors.New("failed to fetch region catalog")
			},
		},
		annotator: &fakeAnnotator{
			updateFn: func(ctx context.Context, orderID int64, text string) error {
				annotatorCalled = true
				return nil
			},
		},
		guard: &fakeGuard{
			releaseFn: func(ctx context.Context, orderID int64) error {
				released = true
				return nil
			},
		},
	})

	result := svc.Process(context.Background(), orderBody(), "")

	if result.Outcome != domain.OutcomeInternalError {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeInternalError)
	}
	if annotatorCalled {
		t.Fatal("catalog failure must not attempt an annotation")
	}
	if !released {
		t.Fatal("guard should be released so redelivery can run")
	}
}

func TestFulfillmentServiceProcessJournalFailureKeepsOutcome(t *testing.T) {
	t.Parallel()

	svc := newTestFulfillmentService(t, serviceDeps{
		courier: &fakeCourier{
			createFn: func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
				return &intigo.ParcelResult{NID: "ABC", StatusCode: 201}, nil
			},
		},
		journal: &fakeJournal{
			recordFn: func(ctx context.Context, rec *domain.FulfillmentRecord) error {
				return errors.New("database down")
			},
		},
	})

	result := svc.Process(context.Background(), orderBody(), "")

	if result.Outcome != domain.OutcomeProcessed {
		t.Fatalf("Outcome = %s, want %s (journal is an audit, not a gate)", result.Outcome, domain.OutcomeProcessed)
	}
}

func TestFulfillmentServiceProcessWithoutGuardOrJournal(t *testing.T) {
	t.Parallel()

	svc, err := NewFulfillmentService(
		&fakeVerifier{},
		bardoResolver(),
		&fakeCourier{},
		&fakeAnnotator{},
		nil,
		nil,
		pickupFixture(),
		nil,
	)
	if err != nil {
		t.Fatalf("NewFulfillmentService() error = %v", err)
	}

	result := svc.Process(context.Background(), orderBody(), "")

	if result.Outcome != domain.OutcomeProcessed {
		t.Fatalf("Outcome = %s, want %s", result.Outcome, domain.OutcomeProcessed)
	}
}

func TestNewFulfillmentServiceValidatesPickup(t *testing.T) {
	t.Parallel()

	_, err := NewFulfillmentService(
		&fakeVerifier{},
		bardoResolver(),
		&fakeCourier{},
		&fakeAnnotator{},
		nil,
		nil,
		PickupOrigin{},
		nil,
	)
	if err == nil {
		t.Fatal("expected error for empty pickup origin")
	}
}

type fakeVerifier struct {
	verifyFn func(rawBody []byte, signature string) bool
}

func (f *fakeVerifier) Verify(rawBody []byte, signature string) bool {
	if f.verifyFn != nil {
		return f.verifyFn(rawBody, signature)
	}
	return true
}

type fakeResolver struct {
	resolveFn func(ctx context.Context, inputCity string) (*geo.Match, error)
}

func (f *fakeResolver) Resolve(ctx context.Context, inputCity string) (*geo.Match, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, inputCity)
	}
	return nil, nil
}

type fakeCourier struct {
	createFn func(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error)
}

func (f *fakeCourier) CreateParcel(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error) {
	if f.createFn != nil {
		return f.createFn(ctx, request)
	}
	return &intigo.ParcelResult{NID: "NID-FAKE", StatusCode: 201}, nil
}

type fakeAnnotator struct {
	updateFn func(ctx context.Context, orderID int64, text string) error
}

func (f *fakeAnnotator) UpdateOrderNote(ctx context.Context, orderID int64, text string) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, orderID, text)
	}
	return nil
}

type fakeGuard struct {
	acquireFn func(ctx context.Context, orderID int64) (bool, error)
	releaseFn func(ctx context.Context, orderID int64) error
}

func (f *fakeGuard) Acquire(ctx context.Context, orderID int64) (bool, error) {
	if f.acquireFn != nil {
		return f.acquireFn(ctx, orderID)
	}
	return true, nil
}

func (f *fakeGuard) Release(ctx context.Context, orderID int64) error {
	if f.releaseFn != nil {
		return f.releaseFn(ctx, orderID)
	}
	return nil
}

type fakeJournal struct {
	recordFn  func(ctx context.Context, rec *domain.FulfillmentRecord) error
	getByIDFn func(ctx context.Context, id string) (*domain.FulfillmentRecord, error)
	listFn    func(ctx context.Context, params repository.ListParams) ([]domain.FulfillmentRecord, int64, error)
}

func (f *fakeJournal) Record(ctx context.Context, rec *domain.FulfillmentRecord) error {
	if f.recordFn != nil {
		return f.recordFn(ctx, rec)
	}
	return nil
}

func (f *fakeJournal) GetByID(ctx context.Context, id string) (*domain.FulfillmentRecord, error) {
	if f.getByIDFn != nil {
		return f.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeJournal) List(ctx context.Context, params repository.ListParams) ([]domain.FulfillmentRecord, int64, error) {
	if f.listFn != nil {
		return f.listFn(ctx, params)
	}
	return nil, 0, nil
}
