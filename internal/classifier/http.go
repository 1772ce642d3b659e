package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPClient calls a categorization service over JSON/HTTP.
//
// Batch requests POST {"transactions":[{"id","description"}]} and expect
// [{"id","category"}]. Single requests POST {"description"} and expect
// {"category"}.
type HTTPClient struct {
	Endpoint   string
	HTTPClient *http.Client
}

// NewHTTPClient creates a client for endpoint. Every request is bounded by
// timeout.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		Endpoint:   endpoint,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type batchRequest struct {
	Transactions []Item `json:"transactions"`
}

type singleRequest struct {
	Description string `json:"description"`
}

type singleResponse struct {
	Category string `json:"category"`
}

// Categorize sends items in one request.
func (c *HTTPClient) Categorize(ctx context.Context, items []Item) ([]Result, error) {
	var out []Result
	if err := c.post(ctx, batchRequest{Transactions: items}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CategorizeOne categorizes a single description.
func (c *HTTPClient) CategorizeOne(ctx context.Context, description string) (string, error) {
	var out singleResponse
	if err := c.post(ctx, singleRequest{Description: description}, &out); err != nil {
		return "", err
	}
	return out.Category, nil
}

func (c *HTTPClient) post(ctx context.Context, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return unexpectedStatus(resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return badResponse(err)
	}
	return nil
}
