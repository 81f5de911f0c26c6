package shopify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout = 10 * time.Second
	apiVersion     = "2024-01"

	accessTokenHeader = "X-Shopify-Access-Token"
)

type orderNoteBody struct {
	ID   int64  `json:"id"`
	Note string `json:"note"`
}

type orderNotePayload struct {
	Order orderNoteBody `json:"order"`
}

// Client writes order annotations back to the store's admin API.
type Client struct {
	client  *resty.Client
	baseURL string
	token   string
}

func NewClient(baseURL, token string) (*Client, error) {
	client := resty.New()
	client.SetTimeout(defaultTimeout)
	client.SetRetryCount(0)

	return NewClientWithClient(baseURL, token, client)
}

func NewClientWithClient(baseURL, token string, client *resty.Client) (*Client, error) {
	trimmedBase := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmedBase == "" {
		return nil, fmt.Errorf("shopify base url is required")
	}
	if _, err := url.ParseRequestURI(trimmedBase); err != nil {
		return nil, fmt.Errorf("invalid shopify base url: %w", err)
	}
	trimmedToken := strings.TrimSpace(token)
	if trimmedToken == "" {
		return nil, fmt.Errorf("shopify admin token is required")
	}
	if client == nil {
		return nil, fmt.Errorf("resty client is required")
	}

	if client.GetClient().Timeout == 0 {
		client.SetTimeout(defaultTimeout)
	}
	client.SetRetryCount(0)

	return &Client{
		client:  client,
		baseURL: trimmedBase,
		token:   trimmedToken,
	}, nil
}

// UpdateOrderNote replaces the order's note with text. The admin API is a
// full-field replace, so text must be the complete desired note.
func (c *Client) UpdateOrderNote(ctx context.Context, orderID int64, text string) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("shopify client is not initialized")
	}
	if orderID <= 0 {
		return fmt.Errorf("order id must be positive")
	}

	payload := orderNotePayload{
		Order: orderNoteBody{
			ID:   orderID,
			Note: text,
		},
	}

	endpoint := fmt.Sprintf("%s/admin/api/%s/orders/%s.json", c.baseURL, apiVersion, strconv.FormatInt(orderID, 10))

	response, err := c.client.R().
		SetContext(ctx).
		SetHeader(accessTokenHeader, c.token).
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Put(endpoint)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return fmt.Errorf("order note update canceled: %w", err)
		}
		return fmt.Errorf("order note update failed: %w", err)
	}

	statusCode := response.StatusCode()
	if statusCode < http.StatusOK || statusCode >= http.StatusMultipleChoices {
		body := strings.TrimSpace(response.String())
		if body == "" {
			return fmt.Errorf("order note update returned status %d", statusCode)
		}
		return fmt.Errorf("order note update returned status %d: %s", statusCode, body)
	}

	return nil
}
