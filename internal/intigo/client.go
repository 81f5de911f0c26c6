package intigo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/kursadbilgin/fulfillment-bridge/internal/geo"
)

const defaultTimeout = 10 * time.Second

// ParcelType for cash-on-delivery shipments, the only kind this bridge creates.
const ParcelTypeCOD = "COD"

// ParcelRequest is the normalized shipment payload sent to the courier.
type ParcelRequest struct {
	FullName          string  `json:"fullName"`
	PhoneNumber       string  `json:"phoneNumber"`
	CODAmount         float64 `json:"codAmount"`
	City              string  `json:"city"`
	SubDivision       string  `json:"subDivision"`
	Address           string  `json:"address"`
	Designation       string  `json:"designation"`
	ParcelType        string  `json:"parcelType"`
	NbPieces          int     `json:"nbPieces"`
	PickupAddress     string  `json:"pickupAddress"`
	PickupCity        string  `json:"pickupCity"`
	PickupSubDivision string  `json:"pickupSubDivision"`
}

func (r ParcelRequest) Validate() error {
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return fmt.Errorf("phone number is required")
	}
	if strings.TrimSpace(r.City) == "" {
		return fmt.Errorf("city is required")
	}
	if strings.TrimSpace(r.SubDivision) == "" {
		return fmt.Errorf("sub division is required")
	}
	return nil
}

// ParcelResult stores courier call metadata for audit and persistence.
// An empty NID on a non-5xx response means the courier declined the parcel.
type ParcelResult struct {
	NID        string
	StatusCode int
	Body       string
}

type parcelResponse struct {
	NID string `json:"nid"`
}

type regionEntry struct {
	City         string   `json:"city"`
	SubDivisions []string `json:"subDivisions"`
}

// Client talks to the Intigo courier API for region catalogs and parcel creation.
type Client struct {
	client     *resty.Client
	baseURL    string
	authHeader string
}

func NewClient(baseURL, apiKey string) (*Client, error) {
	client := resty.New()
	client.SetTimeout(defaultTimeout)
	client.SetRetryCount(0)

	return NewClientWithClient(baseURL, apiKey, client)
}

func NewClientWithClient(baseURL, apiKey string, client *resty.Client) (*Client, error) {
	trimmedBase := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmedBase == "" {
		return nil, fmt.Errorf("intigo base url is required")
	}
	if _, err := url.ParseRequestURI(trimmedBase); err != nil {
		return nil, fmt.Errorf("invalid intigo base url: %w", err)
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("intigo api key is required")
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultTimeout)
	}
	client.SetRetryCount(0)

	return &Client{
		client:     client,
		baseURL:    trimmedBase,
		authHeader: buildAuthHeader(apiKey),
	}, nil
}

// buildAuthHeader produces the non-standard Authorization value the courier
// expects: a JSON object embedding the key, not a bearer/basic scheme.
func buildAuthHeader(apiKey string) string {
	raw, _ := json.Marshal(struct {
		APIKey string `json:"apiKey"`
	}{APIKey: apiKey})
	return string(raw)
}

// FetchRegions downloads the full region catalog. Entries without a city name
// are dropped so the resolver never matches against blank canonical values.
func (c *Client) FetchRegions(ctx context.Context) ([]geo.Region, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("intigo client is not initialized")
	}

	response, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", c.authHeader).
		Get(c.baseURL + "/regions")
	if err != nil {
		return nil, &APIError{
			Message:   "region catalog request failed",
			Transient: !errors.Is(err, context.Canceled),
			Cause:     err,
		}
	}

	statusCode := response.StatusCode()
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		return nil, &APIError{
			StatusCode: statusCode,
			Message:    remoteErrorMessage("region catalog", statusCode, response.String()),
			Transient:  isTransientHTTPStatus(statusCode),
		}
	}

	var entries []regionEntry
	if err := json.Unmarshal(response.Body(), &entries); err != nil {
		return nil, fmt.Errorf("failed to decode region catalog: %w", err)
	}

	regions := make([]geo.Region, 0, len(entries))
	for _, entry := range entries {
		if strings.TrimSpace(entry.City) == "" {
			continue
		}
		regions = append(regions, geo.Region{
			City:         entry.City,
			SubDivisions: entry.SubDivisions,
		})
	}

	return regions, nil
}

// CreateParcel submits one shipment. Statuses below 500 are a normal remote
// answer: the caller decides by NID presence, not by status class.
func (c *Client) CreateParcel(ctx context.Context, request ParcelRequest) (*ParcelResult, error) {
	if c == nil || c.client == nil {
		return nil, fmt.Errorf("intigo client is not initialized")
	}
	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parcel request: %w", err)
	}

	response, err := c.client.R().
		SetContext(ctx).
		SetHeader("Authorization", c.authHeader).
		SetHeader("Content-Type", "application/json").
		SetBody(request).
		Post(c.baseURL + "/parcels")
	if err != nil {
		return nil, &APIError{
			Message:   "parcel request failed",
			Transient: !errors.Is(err, context.Canceled),
			Cause:     err,
		}
	}

	statusCode := response.StatusCode()
	responseBody := strings.TrimSpace(response.String())

	if statusCode >= http.StatusInternalServerError {
		return nil, &APIError{
			StatusCode: statusCode,
			Message:    remoteErrorMessage("parcel creation", statusCode, responseBody),
			Transient:  true,
		}
	}

	var parsed parcelResponse
	if err := json.Unmarshal(response.Body(), &parsed); err != nil {
		// A declined parcel often comes back as a non-JSON error page; treat
		// it as a rejection, not a transport fault.
		parsed.NID = ""
	}

	return &ParcelResult{
		NID:        strings.TrimSpace(parsed.NID),
		StatusCode: statusCode,
		Body:       responseBody,
	}, nil
}

func isTransientHTTPStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || (statusCode >= http.StatusInternalServerError && statusCode <= 599)
}

func remoteErrorMessage(operation string, statusCode int, body string) string {
	base := fmt.Sprintf("%s returned status %d", operation, statusCode)
	if body == "" {
		return base
	}
	return fmt.Sprintf("%s: %s", base, body)
}
