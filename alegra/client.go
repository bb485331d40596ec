package alegra

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the production Alegra REST endpoint.
	DefaultBaseURL = "https://api.alegra.com/api/v1"

	pageSize   = 30
	pagePause  = 500 * time.Millisecond
	retryWait  = 2 * time.Second
	retryCount = 5
)

// ErrNotFound is returned when the API responds with HTTP 404 for a record
// that has been deleted (or never existed) on the Alegra side.
var ErrNotFound = errors.New("record not found")

// Client is a thin wrapper around the Alegra REST API, authenticated with
// the account email and API token (HTTP basic auth). Rate limited requests
// (HTTP 429) are retried after a fixed wait.
type Client struct {
	rest *resty.Client
	log  zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at an alternative API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.rest.SetBaseURL(url)
	}
}

func NewClient(email, token string, log zerolog.Logger, options ...Option) *Client {
	rest := resty.New().
		SetBaseURL(DefaultBaseURL).
		SetBasicAuth(email, token).
		SetHeader("Accept", "application/json").
		SetTimeout(90 * time.Second).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWait).
		SetRetryMaxWaitTime(retryWait).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return r != nil && r.StatusCode() == http.StatusTooManyRequests
		}).
		AddRetryHook(func(r *resty.Response, err error) {
			log.Warn().Str("url", r.Request.URL).Msg("rate limit reached, waiting before retry")
		})

	client := Client{
		rest: rest,
		log:  log,
	}

	for _, option := range options {
		option(&client)
	}

	return &client
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	response, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(query).
		SetResult(out).
		Get(path)

	if err != nil {
		return fmt.Errorf("querying %s: %w", path, err)
	}

	if response.StatusCode() == http.StatusNotFound {
		return ErrNotFound
	}

	if response.IsError() {
		return fmt.Errorf("alegra API returned %s for %s: %s", response.Status(), path, response.Body())
	}

	return nil
}
