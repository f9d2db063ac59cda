package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout = 15 * time.Second
	userAgent      = "creditmeter/1.0"

	// Generation stats are a few hundred bytes; anything past this is not a
	// response we know how to read.
	maxBodyBytes = 1 << 20
)

var (
	ErrFailedCloseResponseBody = errors.New("failed close response body")
	ErrBodyTooLarge            = errors.New("response body too large")
)

//go:generate mockgen -source=http_client.go -destination=mock_http_client.go -package=clients
type HTTPClientI interface {
	Get(ctx context.Context, url string, headers http.Header) (statusCode int, respBody []byte, respHeaders http.Header, err error)
}

type HTTPClient struct {
	client  *http.Client
	maxBody int64
}

func NewHTTPClient() *HTTPClient {
	return NewHTTPClientWithTimeout(defaultTimeout)
}

func NewHTTPClientWithTimeout(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		maxBody: maxBodyBytes,
	}
}

// Get performs a GET and reads the whole body. Non-2xx statuses are not
// errors; callers decide what a status means.
func (h *HTTPClient) Get(ctx context.Context, url string, headers http.Header) (statusCode int, respBody []byte, respHeaders http.Header, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("build request: %w", err)
	}
	if headers != nil {
		req.Header = headers.Clone()
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer func() {
		if e := resp.Body.Close(); e != nil {
			err = errors.Join(err, ErrFailedCloseResponseBody)
		}
	}()

	respBody, err = io.ReadAll(io.LimitReader(resp.Body, h.maxBody+1))
	if err != nil {
		return 0, nil, nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(respBody)) > h.maxBody {
		return resp.StatusCode, nil, resp.Header, ErrBodyTooLarge
	}
	return resp.StatusCode, respBody, resp.Header, nil
}
