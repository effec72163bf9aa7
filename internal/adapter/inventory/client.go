package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/srgjo27/seat_hold/internal/core/domain"
)

const maxErrorBody = 4 << 10

// APIError is a non-2xx answer from the inventory.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("inventory responded %d", e.StatusCode)
	}
	return fmt.Sprintf("inventory responded %d: %s", e.StatusCode, e.Message)
}

// UserMessage is the text the inventory wants shown to the user.
func (e *APIError) UserMessage() string {
	return e.Message
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithToken sends token as a bearer credential on every call.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// Client talks to the inventory gateway over JSON/HTTP.
type Client struct {
	baseURL  string
	http     *http.Client
	token    string
	logger   *slog.Logger
	validate *validator.Validate
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     &http.Client{Timeout: 10 * time.Second},
		logger:   slog.Default(),
		validate: newValidator(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) GetSeats(ctx context.Context, eventID string) (*domain.Snapshot, error) {
	var resp seatMapResponse
	if err := c.do(ctx, http.MethodGet, "/api/seats/"+url.PathEscape(eventID), nil, &resp); err != nil {
		return nil, err
	}

	if err := c.validate.Struct(resp); err != nil {
		return nil, fmt.Errorf("invalid seat map: %w", err)
	}

	return resp.toDomain()
}

func (c *Client) Hold(ctx context.Context, eventID string, seats []domain.SeatKey) (*domain.HoldGrant, error) {
	var resp holdResponse
	if err := c.do(ctx, http.MethodPost, "/api/hold", newSeatsRequest(eventID, seats), &resp); err != nil {
		return nil, err
	}

	if err := c.validate.Struct(resp); err != nil {
		return nil, fmt.Errorf("invalid hold response: %w", err)
	}

	return resp.toDomain()
}

func (c *Client) Purchase(ctx context.Context, eventID string, seats []domain.SeatKey) ([]domain.Ticket, error) {
	var resp purchaseResponse
	if err := c.do(ctx, http.MethodPost, "/api/purchase", newSeatsRequest(eventID, seats), &resp); err != nil {
		return nil, err
	}

	if err := c.validate.Struct(resp); err != nil {
		return nil, fmt.Errorf("invalid purchase response: %w", err)
	}

	return resp.toDomain()
}

func (c *Client) Release(ctx context.Context, eventID string, seats []domain.SeatKey) error {
	return c.do(ctx, http.MethodPost, "/api/release", newSeatsRequest(eventID, seats), nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("inventory call",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(start),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}

	return nil
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var body errorResponse
	if json.Unmarshal(raw, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	} else {
		apiErr.Message = strings.TrimSpace(string(raw))
	}

	return apiErr
}
