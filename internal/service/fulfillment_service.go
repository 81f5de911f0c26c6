package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kursadbilgin/fulfillment-bridge/internal/domain"
	"github.com/kursadbilgin/fulfillment-bridge/internal/geo"
	"github.com/kursadbilgin/fulfillment-bridge/internal/idempotency"
	"github.com/kursadbilgin/fulfillment-bridge/internal/intigo"
	"github.com/kursadbilgin/fulfillment-bridge/internal/observability"
	"github.com/kursadbilgin/fulfillment-bridge/internal/repository"
)

const parcelPieces = 1

// CourierGateway creates parcels with the courier system.
type CourierGateway interface {
	CreateParcel(ctx context.Context, request intigo.ParcelRequest) (*intigo.ParcelResult, error)
}

// OrderAnnotator replaces the operator-visible note on an order.
type OrderAnnotator interface {
	UpdateOrderNote(ctx context.Context, orderID int64, text string) error
}

// AddressResolver maps free-text city input to the courier's canonical geography.
type AddressResolver interface {
	Resolve(ctx context.Context, inputCity string) (*geo.Match, error)
}

// WebhookVerifier authenticates a raw webhook delivery.
type WebhookVerifier interface {
	Verify(rawBody []byte, signature string) bool
}

// PickupOrigin is the fixed sender side of every parcel.
type PickupOrigin struct {
	Address     string
	City        string
	SubDivision string
}

func (p PickupOrigin) validate() error {
	if strings.TrimSpace(p.Address) == "" {
		return fmt.Errorf("pickup address is required")
	}
	if strings.TrimSpace(p.City) == "" {
		return fmt.Errorf("pickup city is required")
	}
	if strings.TrimSpace(p.SubDivision) == "" {
		return fmt.Errorf("pickup sub division is required")
	}
	return nil
}

// FulfillmentService turns one verified order event into exactly one parcel
// or one operator-visible note. Single pass, no retries; redelivery is the
// calling store's responsibility.
type FulfillmentService struct {
	verifier  WebhookVerifier
	resolver  AddressResolver
	courier   CourierGateway
	annotator OrderAnnotator
	guard     idempotency.Guard
	journal   repository.JournalRepository
	pickup    PickupOrigin
	logger    *zap.Logger
	metrics   *observability.Metrics
	now       func() time.Time
}

func NewFulfillmentService(
	verifier WebhookVerifier,
	resolver AddressResolver,
	courier CourierGateway,
	annotator OrderAnnotator,
	guard idempotency.Guard,
	journal repository.JournalRepository,
	pickup PickupOrigin,
	logger *zap.Logger,
) (*FulfillmentService, error) {
	if err := pickup.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &FulfillmentService{
		verifier:  verifier,
		resolver:  resolver,
		courier:   courier,
		annotator: annotator,
		guard:     guard,
		journal:   journal,
		pickup:    pickup,
		logger:    logger,
		now:       time.Now,
	}, nil
}

func (s *FulfillmentService) SetMetrics(metrics *observability.Metrics) {
	if s == nil {
		return
	}
	s.metrics = metrics
}

// GetRecord fetches one journaled fulfillment attempt by its record id.
func (s *FulfillmentService) GetRecord(ctx context.Context, id string) (*domain.FulfillmentRecord, error) {
	if s.journal == nil {
		return nil, fmt.Errorf("%w: fulfillment journal is not configured", domain.ErrNotFound)
	}
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: record id is required", domain.ErrValidation)
	}
	return s.journal.GetByID(ctx, strings.TrimSpace(id))
}

// ListRecords pages through the fulfillment journal.
func (s *FulfillmentService) ListRecords(
	ctx context.Context,
	params repository.ListParams,
) ([]domain.FulfillmentRecord, int64, error) {
	if s.journal == nil {
		return nil, 0, nil
	}
	return s.journal.List(ctx, params)
}

// Process runs the fulfillment state machine over one raw webhook delivery
// and returns its single terminal outcome.
func (s *FulfillmentService) Process(ctx context.Context, rawBody []byte, signature string) domain.Result {
	if ctx == nil {
		ctx = context.Background()
	}
	log := observability.WithContextLogger(s.logger, ctx)

	if !s.verifier.Verify(rawBody, signature) {
		log.Warn("webhook signature rejected")
		return domain.Result{Outcome: domain.OutcomeUnauthorized, Reason: "invalid signature"}
	}

	order, err := domain.ParseOrderEvent(rawBody)
	if err != nil {
		log.Error("failed to parse order event", zap.Error(err))
		return domain.Result{Outcome: domain.OutcomeInternalError, Err: err}
	}

	log = log.With(
		zap.Int64("orderId", order.ID),
		zap.String("orderName", order.Name),
	)

	if domain.IsAlreadyProcessed(order.Note) {
		log.Info("order note already carries a tracking marker, skipping")
		return s.finish(ctx, log, order, nil, domain.Result{Outcome: domain.OutcomeAlreadyProcessed})
	}

	guardHeld, contended := s.acquireGuard(ctx, log, order.ID)
	if contended {
		log.Info("order claimed by another in-flight delivery, skipping")
		return s.finish(ctx, log, order, nil, domain.Result{
			Outcome: domain.OutcomeAlreadyProcessed,
			Reason:  "delivery already in flight",
		})
	}

	rawCity := order.RawCity()
	phone := order.PhoneDigits()

	match, err := s.resolver.Resolve(ctx, rawCity)
	if err != nil {
		s.releaseGuard(ctx, log, guardHeld, order.ID)
		log.Error("failed to resolve destination", zap.String("city", rawCity), zap.Error(err))
		return s.finish(ctx, log, order, nil, domain.Result{Outcome: domain.OutcomeInternalError, Err: err})
	}

	if reason := validationGap(match, phone); reason != "" {
		note := domain.ReviewNote(rawCity, phone)
		if err := s.annotator.UpdateOrderNote(ctx, order.ID, note); err != nil {
			s.releaseGuard(ctx, log, guardHeld, order.ID)
			log.Error("failed to write review note", zap.Error(err))
			return s.finish(ctx, log, order, match, domain.Result{Outcome: domain.OutcomeInternalError, Err: err})
		}

		s.releaseGuard(ctx, log, guardHeld, order.ID)
		log.Info("order flagged for manual review",
			zap.String("reason", reason),
			zap.String("city", rawCity),
			zap.String("phone", phone),
		)
		return s.finish(ctx, log, order, match, domain.Result{Outcome: domain.OutcomeNeedsReview, Reason: reason})
	}

	request := s.buildParcelRequest(order, match, phone)

	submitStart := s.now()
	parcel, err := s.courier.CreateParcel(ctx, request)
	if s.metrics != nil {
		s.metrics.ObserveParcelSubmitDuration(s.now().Sub(submitStart))
	}
	if err != nil {
		s.releaseGuard(ctx, log, guardHeld, order.ID)
		log.Error("parcel submission failed", zap.Error(err))
		return s.finish(ctx, log, order, match, domain.Result{Outcome: domain.OutcomeInternalError, Err: err})
	}

	if parcel == nil || parcel.NID == "" {
		return s.handleRejection(ctx, log, order, match, parcel, guardHeld)
	}

	note := domain.SuccessNote(parcel.NID, match.City, match.SubDivision)
	if err := s.annotator.UpdateOrderNote(ctx, order.ID, note); err != nil {
		// The parcel exists but the marker is not durable. Keep the claim so
		// a redelivery inside the guard TTL cannot create a second parcel.
		log.Error("failed to write success note",
			zap.String("trackingId", parcel.NID),
			zap.Error(err),
		)
		return s.finish(ctx, log, order, match, domain.Result{
			Outcome:    domain.OutcomeInternalError,
			TrackingID: parcel.NID,
			Err:        err,
		})
	}

	s.releaseGuard(ctx, log, guardHeld, order.ID)
	log.Info("order fulfilled",
		zap.String("trackingId", parcel.NID),
		zap.String("city", match.City),
		zap.String("subDivision", match.SubDivision),
	)
	return s.finish(ctx, log, order, match, domain.Result{
		Outcome:    domain.OutcomeProcessed,
		TrackingID: parcel.NID,
	})
}

func (s *FulfillmentService) handleRejection(
	ctx context.Context,
	log *zap.Logger,
	order *domain.OrderEvent,
	match *geo.Match,
	parcel *intigo.ParcelResult,
	guardHeld bool,
) domain.Result {
	detail := ""
	statusCode := 0
	if parcel != nil {
		detail = strings.TrimSpace(parcel.Body)
		statusCode = parcel.StatusCode
	}

	note := domain.RejectionNote(match.City, match.SubDivision)
	if err := s.annotator.UpdateOrderNote(ctx, order.ID, note); err != nil {
		s.releaseGuard(ctx, log, guardHeld, order.ID)
		log.Error("failed to write rejection note", zap.Error(err))
		return s.finish(ctx, log, order, match, domain.Result{Outcome: domain.OutcomeInternalError, Err: err})
	}

	s.releaseGuard(ctx, log, guardHeld, order.ID)
	log.Warn("courier declined parcel",
		zap.Int("statusCode", statusCode),
		zap.String("response", detail),
	)
	return s.finish(ctx, log, order, match, domain.Result{Outcome: domain.OutcomeRemoteRejected, Reason: detail})
}

func (s *FulfillmentService) buildParcelRequest(order *domain.OrderEvent, match *geo.Match, phone string) intigo.ParcelRequest {
	return intigo.ParcelRequest{
		FullName:          order.RecipientName(),
		PhoneNumber:       phone,
		CODAmount:         order.CODAmount(),
		City:              match.City,
		SubDivision:       match.SubDivision,
		Address:           order.AddressText(),
		Designation:       fmt.Sprintf("Order %s", order.Name),
		ParcelType:        intigo.ParcelTypeCOD,
		NbPieces:          parcelPieces,
		PickupAddress:     s.pickup.Address,
		PickupCity:        s.pickup.City,
		PickupSubDivision: s.pickup.SubDivision,
	}
}

func (s *FulfillmentService) acquireGuard(ctx context.Context, log *zap.Logger, orderID int64) (held, contended bool) {
	if s.guard == nil {
		return false, false
	}

	acquired, err := s.guard.Acquire(ctx, orderID)
	if err != nil {
		// The note marker stays the source of truth; a broken guard must not
		// take order intake down with it.
		log.Warn("order guard unavailable, continuing unguarded", zap.Error(err))
		return false, false
	}
	if !acquired {
		return false, true
	}

	return true, false
}

func (s *FulfillmentService) releaseGuard(ctx context.Context, log *zap.Logger, held bool, orderID int64) {
	if !held || s.guard == nil {
		return
	}

	if err := s.guard.Release(ctx, orderID); err != nil {
		log.Warn("failed to release order guard", zap.Error(err))
	}
}

func (s *FulfillmentService) finish(
	ctx context.Context,
	log *zap.Logger,
	order *domain.OrderEvent,
	match *geo.Match,
	result domain.Result,
) domain.Result {
	if s.journal == nil {
		return result
	}

	rec := &domain.FulfillmentRecord{
		ID:        uuid.NewString(),
		OrderID:   order.ID,
		OrderName: order.Name,
		Outcome:   result.Outcome,
		CreatedAt: s.now().UTC(),
	}
	if correlationID, ok := observability.CorrelationIDFromContext(ctx); ok {
		rec.CorrelationID = correlationID
	}
	if result.TrackingID != "" {
		trackingID := result.TrackingID
		rec.TrackingID = &trackingID
	}
	if match != nil {
		city := match.City
		subDivision := match.SubDivision
		rec.City = &city
		rec.SubDivision = &subDivision
	}
	if detail := resultDetail(result); detail != "" {
		rec.Detail = &detail
	}

	if err := s.journal.Record(ctx, rec); err != nil {
		log.Error("failed to record fulfillment attempt", zap.Error(err))
	}

	return result
}

func validationGap(match *geo.Match, phone string) string {
	reasons := make([]string, 0, 2)
	if match == nil {
		reasons = append(reasons, "city not resolved")
	}
	if len(phone) != domain.PhoneLength {
		reasons = append(reasons, fmt.Sprintf("phone is not %d digits", domain.PhoneLength))
	}
	return strings.Join(reasons, ", ")
}

func resultDetail(result domain.Result) string {
	if reason := strings.TrimSpace(result.Reason); reason != "" {
		return reason
	}
	if result.Err != nil {
		return result.Err.Error()
	}
	return ""
}
