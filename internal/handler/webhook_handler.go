package handler

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/kursadbilgin/fulfillment-bridge/internal/domain"
	"github.com/kursadbilgin/fulfillment-bridge/internal/observability"
	"github.com/kursadbilgin/fulfillment-bridge/internal/shopify"
)

// FulfillmentPipeline drives one webhook delivery to its terminal outcome.
type FulfillmentPipeline interface {
	Process(ctx context.Context, rawBody []byte, signature string) domain.Result
}

type WebhookHandler struct {
	pipeline FulfillmentPipeline
	metrics  *observability.Metrics
}

func NewWebhookHandler(pipeline FulfillmentPipeline) (*WebhookHandler, error) {
	if pipeline == nil {
		return nil, fmt.Errorf("fulfillment pipeline is required")
	}
	return &WebhookHandler{pipeline: pipeline}, nil
}

func (h *WebhookHandler) SetMetrics(metrics *observability.Metrics) {
	if h == nil {
		return
	}
	h.metrics = metrics
}

func RegisterWebhookRoutes(router fiber.Router, pipeline FulfillmentPipeline, metrics *observability.Metrics) error {
	h, err := NewWebhookHandler(pipeline)
	if err != nil {
		return fmt.Errorf("failed to create webhook handler: %w", err)
	}
	h.SetMetrics(metrics)

	webhooks := router.Group("/webhooks")
	webhooks.Post("/orders/create", h.OrderCreated)

	return nil
}

// OrderCreated ingests one order-creation delivery. The store retries on
// non-2xx, so only outcomes that a retry could repair (unauthorized, internal
// error) map to error statuses; every settled outcome answers 200.
func (h *WebhookHandler) OrderCreated(c *fiber.Ctx) error {
	ctx := observability.WithCorrelationID(c.Context(), requestCorrelationID(c))

	// The signature covers the request body byte for byte, so the payload
	// has to reach the pipeline unparsed.
	result := h.pipeline.Process(ctx, c.Body(), c.Get(shopify.SignatureHeader))

	if h.metrics != nil {
		h.metrics.IncOutcome(result.Outcome.String())
	}

	status, text := webhookResponse(result.Outcome)
	return c.Status(status).SendString(text)
}

func webhookResponse(outcome domain.Outcome) (int, string) {
	switch outcome {
	case domain.OutcomeProcessed:
		return fiber.StatusOK, "processed"
	case domain.OutcomeAlreadyProcessed:
		return fiber.StatusOK, "already processed"
	case domain.OutcomeNeedsReview:
		return fiber.StatusOK, "flagged for review"
	case domain.OutcomeRemoteRejected:
		return fiber.StatusOK, "rejected by courier"
	case domain.OutcomeUnauthorized:
		return fiber.StatusUnauthorized, "unauthorized"
	default:
		return fiber.StatusInternalServerError, "internal error"
	}
}

func requestCorrelationID(c *fiber.Ctx) string {
	if headerID := strings.TrimSpace(c.Get(fiber.HeaderXRequestID)); headerID != "" {
		return headerID
	}
	if localsID, ok := c.Locals("requestid").(string); ok {
		if trimmed := strings.TrimSpace(localsID); trimmed != "" {
			return trimmed
		}
	}
	return uuid.NewString()
}
