package sanctions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	defaultFetchTimeout  = 2 * time.Minute
	defaultFetchAttempts = 3
	// Upper bound of a downloaded document.
	maxDocumentSize = 256 << 20
)

// HTTPSource downloads a list document over HTTP.
type HTTPSource struct {
	url        string
	httpClient *http.Client
	attempts   int
	newBackOff func() backoff.BackOff
}

// NewHTTPSource creates a source for url. A zero timeout uses the default.
func NewHTTPSource(url string, timeout time.Duration) (*HTTPSource, error) {
	if url == "" {
		return nil, errors.New("sanctions list url is required")
	}
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &HTTPSource{
		url:        url,
		httpClient: &http.Client{Timeout: timeout},
		attempts:   defaultFetchAttempts,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = time.Second
			b.MaxInterval = 30 * time.Second
			b.MaxElapsedTime = 0
			return b
		},
	}, nil
}

// Fetch downloads the document, retrying network errors and 5xx responses.
func (s *HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	var body []byte
	operation := func() error {
		data, retry, err := s.get(ctx)
		if err != nil {
			if retry {
				return err
			}
			return backoff.Permanent(err)
		}
		body = data
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(s.newBackOff(), uint64(s.attempts-1)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return body, nil
}

func (s *HTTPSource) get(ctx context.Context) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("build request for %s: %w", s.url, err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("fetch %s: %w", s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		retry := resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError
		return nil, retry, fmt.Errorf("fetch %s: http status %d", s.url, resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize+1))
	if err != nil {
		return nil, true, fmt.Errorf("read %s: %w", s.url, err)
	}
	if len(data) > maxDocumentSize {
		return nil, false, fmt.Errorf("fetch %s: document exceeds %d bytes", s.url, maxDocumentSize)
	}
	return data, false, nil
}
