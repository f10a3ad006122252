// Package netx contains the raw HTTP PUT used to push bytes to a presigned
// object-storage URL.
package netx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBody caps how much of the storage response is kept.
const maxResponseBody = 64 << 10

// ErrUnexpectedStatus is returned when the store answers with a non-2xx code.
var ErrUnexpectedStatus = errors.New("unexpected status")

// PutResponse is what the object store answered.
type PutResponse struct {
	StatusCode int
	Status     string
	ETag       string
	Body       []byte
}

// PutPresigned streams body to url with an explicit Content-Type and
// Content-Length. size must equal the number of bytes body will yield; the
// store rejects mismatches. On a non-2xx answer both the response and an
// error wrapping ErrUnexpectedStatus are returned.
func PutPresigned(ctx context.Context, c *http.Client, url string, body io.Reader, size int64, contentType string) (*PutResponse, error) {
	if size < 0 {
		return nil, fmt.Errorf("invalid content length %d", size)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return nil, err
	}
	// An empty non-nil body would otherwise be sent chunked.
	if size == 0 {
		req.Body = http.NoBody
		req.GetBody = func() (io.ReadCloser, error) { return http.NoBody, nil }
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", contentType)

	resp, err := c.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	out := &PutResponse{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		ETag:       resp.Header.Get("ETag"),
		Body:       b,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return out, fmt.Errorf("%w: %s", ErrUnexpectedStatus, resp.Status)
	}
	return out, nil
}
