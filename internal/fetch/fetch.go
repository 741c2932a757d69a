package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

const (
	// DefaultUserAgent identifies the aggregator to the institutions it polls.
	DefaultUserAgent = "nycculturemap/1.0 (github.com/clawdiard/ps-nycculturemap)"

	// DefaultTimeout bounds a whole fetch, connection through body read.
	DefaultTimeout = 15 * time.Second

	// DefaultMaxRedirects is the longest redirect chain followed before the
	// fetch fails with ErrTooManyRedirects.
	DefaultMaxRedirects = 10
)

var (
	// ErrTimeout marks a fetch that did not complete within the timeout.
	ErrTimeout = errors.New("request timed out")

	// ErrTooManyRedirects marks a redirect chain longer than the hop limit.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrNetwork marks any other transport failure (DNS, refused connection,
	// broken transfer).
	ErrNetwork = errors.New("network error")
)

// Options configures a Fetcher. Zero values select the defaults above;
// MaxBodySize of zero means the response body is read without a cap.
type Options struct {
	Timeout      time.Duration
	UserAgent    string
	MaxRedirects int
	MaxBodySize  int64
}

// Fetcher performs single-shot GETs against calendar URLs.
type Fetcher struct {
	client      *http.Client
	userAgent   string
	maxBodySize int64
}

// New creates a Fetcher with the given options.
func New(opts Options) *Fetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	maxRedirects := opts.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = DefaultMaxRedirects
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return ErrTooManyRedirects
				}
				return nil
			},
		},
		userAgent:   userAgent,
		maxBodySize: opts.MaxBodySize,
	}
}

// Fetch GETs the URL and returns the full response body as text. Redirects
// are followed transparently up to the hop limit; a redirect status without
// a Location header is terminal and its body is returned like any other.
// Non-redirect statuses are never errors: an error page's body simply
// extracts to zero events downstream.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", classify(err)
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if f.maxBodySize > 0 {
		body = io.LimitReader(resp.Body, f.maxBodySize)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", classify(err)
	}

	return string(data), nil
}

// classify maps transport errors onto the package's error taxonomy while
// keeping the original cause in the chain. Context cancellation passes
// through untouched so an interrupted run aborts instead of skipping.
func classify(err error) error {
	if errors.Is(err, ErrTooManyRedirects) {
		return err
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
