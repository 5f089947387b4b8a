package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client so adapters can extend it without touching
// the upstream type.
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOptions configures NewHTTPClient.
type HTTPClientOptions struct {
	BaseURL string
	Timeout time.Duration
	// RetryCount is the number of extra attempts for 5xx and 429 responses.
	RetryCount   int
	RetryWait    time.Duration
	RetryMaxWait time.Duration
}

// NewHTTPClient returns a resty client configured from opts. Requests are
// retried on transport errors, 429 and 5xx responses.
func NewHTTPClient(opts HTTPClientOptions) *HTTPClient {
	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetHeader("Accept", "application/json")

	if opts.Timeout > 0 {
		client.SetTimeout(opts.Timeout)
	}
	if opts.RetryCount > 0 {
		client.SetRetryCount(opts.RetryCount).
			AddRetryCondition(func(resp *resty.Response, err error) bool {
				if err != nil {
					return true
				}
				code := resp.StatusCode()
				return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
			})
		if opts.RetryWait > 0 {
			client.SetRetryWaitTime(opts.RetryWait)
		}
		if opts.RetryMaxWait > 0 {
			client.SetRetryMaxWaitTime(opts.RetryMaxWait)
		}
	}

	return &HTTPClient{Client: client}
}
