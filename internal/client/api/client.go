// Package api is the HTTP client for the CloudChest REST API: one method per
// endpoint, translating responses into domain records. Methods return errors;
// the blanket catch-log-default policy lives a layer up in services, so tests
// here can tell an empty result from a failed request.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/cloudchest/cloudchest-cli/internal/logging"
)

// Client talks to one CloudChest server. The bearer token is attached as a
// default header once via SetToken and reused for every request.
type Client struct {
	rc      *resty.Client
	httpc   *http.Client
	baseURL string
	token   string
	log     logging.Logger
}

func New(baseURL string, timeout time.Duration, log logging.Logger) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &Client{
		rc:      rc,
		httpc:   &http.Client{}, // uploads manage their own lifetime via context
		baseURL: baseURL,
		log:     log,
	}
}

// SetToken installs the bearer token used by all subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
	c.rc.SetAuthToken(token)
}

// Token returns the currently installed bearer token ("" when logged out).
func (c *Client) Token() string {
	return c.token
}

// check maps a finished resty exchange onto the error taxonomy: transport
// failure, 401, other non-2xx. A nil return means a 2xx response whose body
// (if requested) decoded cleanly.
func (c *Client) check(resp *resty.Response, err error) error {
	if err != nil {
		if resp == nil || resp.RawResponse == nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		return fmt.Errorf("%w: %v", ErrUnexpectedResponse, err)
	}
	if resp.StatusCode() == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.IsError() {
		return &StatusError{Code: resp.StatusCode()}
	}
	return nil
}

// Ping reports whether the server is reachable at all. Any HTTP response,
// including an error status, counts as reachable; only transport failures do
// not.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.rc.R().SetContext(ctx).Get("/"); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
