package httpclient

import (
	"io"
	"net/http"
	"time"
)

// Client is the outbound HTTP transport behind webhook delivery. Services
// take the interface so tests can substitute a mock transport.
type Client interface {
	Post(url, contentType string, body io.Reader) (*http.Response, error)
	Get(url string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

// StandardHTTPClient is the production transport backed by net/http
type StandardHTTPClient struct {
	client *http.Client
}

// NewStandardClient returns the default transport with a 30s request timeout
func NewStandardClient() Client {
	return &StandardHTTPClient{
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Post sends a POST request with the given body
func (c *StandardHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	return c.client.Post(url, contentType, body)
}

// Get sends a GET request
func (c *StandardHTTPClient) Get(url string) (*http.Response, error) {
	return c.client.Get(url)
}

// Do executes a prepared request
func (c *StandardHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req)
}
