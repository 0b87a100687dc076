// Package submit delivers a finished consultation request to the form
// endpoint and translates the outcome into the small error taxonomy the
// wizard can display.
package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/juaenergy/solar-platform/internal/consultation"
	"github.com/juaenergy/solar-platform/pkg/logging"
)

const defaultTimeout = 15 * time.Second

var _ consultation.Submitter = (*Client)(nil)

// Client posts consultation requests to a single server endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	logger     *logging.Logger
}

// NewClient constructs a submission client for the given endpoint URL.
func NewClient(endpoint string, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		endpoint:   endpoint,
		logger:     logger,
	}
}

// Submit sends the request and interprets the server's response. The request
// is assumed already validated; no rules are re-checked here. Non-2xx
// statuses are failures regardless of body content.
func (c *Client) Submit(ctx context.Context, req *consultation.ConsultationRequest) (*consultation.Receipt, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("submit: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("submit: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit: http request: %w", err)
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("submit: read response: %w", err)
	}

	var resp consultation.Response
	if err := json.Unmarshal(body, &resp); err != nil {
		if httpResp.StatusCode >= 200 && httpResp.StatusCode <= 299 {
			return nil, fmt.Errorf("submit: decode response: %w", err)
		}
		return nil, fmt.Errorf("submit: server returned status %d", httpResp.StatusCode)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 || !resp.Success {
		c.logger.Warn("submission rejected", "status", httpResp.StatusCode, "error_code", resp.ErrorCode)
		return nil, classify(resp.ErrorCode, resp.Error, httpResp.StatusCode)
	}

	return &consultation.Receipt{
		TestMode:       resp.TestMode,
		RecipientEmail: resp.RecipientEmail,
	}, nil
}

// classify maps a server failure to the wizard's error taxonomy. The
// structured errorCode is authoritative; substring matching on the message
// text is kept only for servers that predate the code field.
func classify(code, message string, status int) error {
	if message == "" {
		message = fmt.Sprintf("server returned status %d", status)
	}

	switch code {
	case consultation.CodeEmailUnavailable:
		return fmt.Errorf("%s: %w", message, consultation.ErrEmailUnavailable)
	case consultation.CodeEmailMisconfigured:
		return fmt.Errorf("%s: %w", message, consultation.ErrEmailMisconfigured)
	case "":
		lower := strings.ToLower(message)
		switch {
		case strings.Contains(lower, "api key") ||
			strings.Contains(lower, "unauthorized") ||
			strings.Contains(lower, "invalid credential"):
			return fmt.Errorf("%s: %w", message, consultation.ErrEmailUnavailable)
		case strings.Contains(lower, "misconfigured") ||
			strings.Contains(lower, "not configured"):
			return fmt.Errorf("%s: %w", message, consultation.ErrEmailMisconfigured)
		}
	}

	return errors.New(message)
}
