// Package apiclient is the typed client of the portfolio API used by the site
// front end and the admin tools.
//
// List calls never fail: on a transport error or a non-2xx status they log and
// return an empty slice. Single-item calls report failure to the caller: nil for
// fetch and create, false for update and delete, and an error carrying the
// server's message for newsletter subscribe.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"portfolio-api/dto"
	"portfolio-api/httpclient"
	"portfolio-api/internal/logger"
)

// Client calls the blog, contact and newsletter endpoints under a base URL such
// as http://localhost:8080/api.
type Client struct {
	base *httpclient.BaseClient
}

// New reads the base URL from PORTFOLIO_API_BASE_URL, defaulting to the local API.
func New() *Client {
	base := os.Getenv("PORTFOLIO_API_BASE_URL")
	if base == "" {
		base = "http://localhost:8080/api"
	}
	return NewWithBaseURL(base, nil)
}

// NewWithBaseURL uses httpClient, or the logging default when it is nil.
func NewWithBaseURL(baseURL string, httpClient *http.Client) *Client {
	return &Client{base: httpclient.NewBaseClientWithClient(httpClient, baseURL)}
}

// APIError is a non-2xx answer. Message is the server's "error" field when it sent one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// do sends body as JSON (when non-nil) and decodes a 2xx answer into out.
func (c *Client) do(ctx context.Context, method, relPath string, query url.Values, body, out any) error {
	var r io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(buf)
	}

	req, err := c.base.NewRequest(ctx, method, relPath, query, r)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		apiErr := &APIError{Status: resp.StatusCode}
		var e dto.ErrorResponseDTO
		if json.Unmarshal(b, &e) == nil && e.Error != "" {
			apiErr.Message = e.Error
		} else {
			apiErr.Message = fmt.Sprintf("%s %s: status %d", method, relPath, resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func logFailure(op string, err error) {
	logger.ErrorWithFields("apiclient call failed", logger.Fields{
		"operation": op,
		"error":     err.Error(),
	})
}
