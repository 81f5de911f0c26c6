package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/kursadbilgin/fulfillment-bridge/internal/domain"
	"github.com/kursadbilgin/fulfillment-bridge/internal/repository"
)

const (
	defaultPage     = 1
	defaultPageSize = 50
	maxPageSize     = 100
)

type FulfillmentService interface {
	GetRecord(ctx context.Context, id string) (*domain.FulfillmentRecord, error)
	ListRecords(ctx context.Context, params repository.ListParams) ([]domain.FulfillmentRecord, int64, error)
}

type FulfillmentHandler struct {
	service FulfillmentService
}

func NewFulfillmentHandler(service FulfillmentService) (*FulfillmentHandler, error) {
	if service == nil {
		return nil, fmt.Errorf("fulfillment service is required")
	}
	return &FulfillmentHandler{service: service}, nil
}

func RegisterFulfillmentRoutes(router fiber.Router, service FulfillmentService) error {
	h, err := NewFulfillmentHandler(service)
	if err != nil {
		return err
	}

	v1 := router.Group("/v1")
	v1.Get("/fulfillments", h.ListFulfillments)
	v1.Get("/fulfillments/:id", h.GetFulfillment)

	return nil
}

type fulfillmentResponse struct {
	ID            string    `json:"id"`
	OrderID       int64     `json:"orderId"`
	OrderName     string    `json:"orderName,omitempty"`
	CorrelationID string    `json:"correlationId,omitempty"`
	Outcome       string    `json:"outcome"`
	TrackingID    *string   `json:"trackingId,omitempty"`
	City          *string   `json:"city,omitempty"`
	SubDivision   *string   `json:"subDivision,omitempty"`
	Detail        *string   `json:"detail,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type listFulfillmentsResponse struct {
	Data []fulfillmentResponse `json:"data"`
	Meta listMeta              `json:"meta"`
}

type listMeta struct {
	Page     int   `json:"page"`
	PageSize int   `json:"pageSize"`
	Total    int64 `json:"total"`
}

func (h *FulfillmentHandler) GetFulfillment(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	record, err := h.service.GetRecord(c.Context(), id)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(toFulfillmentResponse(record))
}

func (h *FulfillmentHandler) ListFulfillments(c *fiber.Ctx) error {
	params, err := parseListParams(c)
	if err != nil {
		return toHTTPError(err)
	}

	records, total, err := h.service.ListRecords(c.Context(), params)
	if err != nil {
		return toHTTPError(err)
	}

	return c.Status(fiber.StatusOK).JSON(listFulfillmentsResponse{
		Data: toFulfillmentResponses(records),
		Meta: listMeta{
			Page:     params.Page,
			PageSize: params.PageSize,
			Total:    total,
		},
	})
}

func parseListParams(c *fiber.Ctx) (repository.ListParams, error) {
	params := repository.ListParams{
		Page:     c.QueryInt("page", defaultPage),
		PageSize: c.QueryInt("pageSize", defaultPageSize),
	}

	if params.Page < 1 {
		return repository.ListParams{}, fmt.Errorf("%w: page must be >= 1", domain.ErrValidation)
	}
	if params.PageSize < 1 || params.PageSize > maxPageSize {
		return repository.ListParams{}, fmt.Errorf("%w: pageSize must be between 1 and %d", domain.ErrValidation, maxPageSize)
	}

	if rawOrderID := strings.TrimSpace(c.Query("orderId")); rawOrderID != "" {
		orderID, err := strconv.ParseInt(rawOrderID, 10, 64)
		if err != nil || orderID <= 0 {
			return repository.ListParams{}, fmt.Errorf("%w: orderId must be a positive integer", domain.ErrValidation)
		}
		params.OrderID = &orderID
	}

	if rawOutcome := strings.TrimSpace(c.Query("outcome")); rawOutcome != "" {
		outcome, err := domain.ParseOutcomeFromString(rawOutcome)
		if err != nil {
			return repository.ListParams{}, err
		}
		params.Outcome = &outcome
	}

	from, err := parseRFC3339Query(c.Query("from"), "from")
	if err != nil {
		return repository.ListParams{}, err
	}
	to, err := parseRFC3339Query(c.Query("to"), "to")
	if err != nil {
		return repository.ListParams{}, err
	}
	if from != nil && to != nil && from.After(*to) {
		return repository.ListParams{}, fmt.Errorf("%w: from must not be after to", domain.ErrValidation)
	}
	params.From = from
	params.To = to

	return params, nil
}

func parseRFC3339Query(value string, field string) (*time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be RFC3339", domain.ErrValidation, field)
	}
	return &t, nil
}

func toFulfillmentResponses(records []domain.FulfillmentRecord) []fulfillmentResponse {
	responses := make([]fulfillmentResponse, 0, len(records))
	for _, record := range records {
		r := record
		responses = append(responses, toFulfillmentResponse(&r))
	}
	return responses
}

func toFulfillmentResponse(record *domain.FulfillmentRecord) fulfillmentResponse {
	if record == nil {
		return fulfillmentResponse{}
	}

	return fulfillmentResponse{
		ID:            record.ID,
		OrderID:       record.OrderID,
		OrderName:     record.OrderName,
		CorrelationID: record.CorrelationID,
		Outcome:       record.Outcome.String(),
		TrackingID:    record.TrackingID,
		City:          record.City,
		SubDivision:   record.SubDivision,
		Detail:        record.Detail,
		CreatedAt:     record.CreatedAt,
	}
}

func toHTTPError(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return err
	}
}
