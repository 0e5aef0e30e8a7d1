package httpclient

import (
	"context"
	"net/http"
)

// Response is a minimal HTTP response contract. The body is returned
// unmodified; interpreting it is the caller's job.
type Response interface {
	Body() []byte
	StatusCode() int
	Header() http.Header
	IsError() bool
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Get(ctx context.Context, url string, query map[string]string, headers map[string]string) (Response, error)
}
