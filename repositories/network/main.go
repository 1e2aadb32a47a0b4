package network

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fedvlm/api/models"
	qk "fedvlm/api/models/constants/query-kind"
	"fedvlm/api/models/results"

	"github.com/cenkalti/backoff"
	"golang.org/x/time/rate"
)

// Fetcher obtains the raw federated payload for one query key.
type Fetcher interface {
	Fetch(ctx context.Context, key results.QueryKey) ([]byte, error)
}

var ErrUnknownQueryKind = errors.New("no endpoint for query kind")

type StatusError struct {
	Url        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d %s", e.Url, e.StatusCode, http.StatusText(e.StatusCode))
}

// statuses worth another attempt when retries are enabled
var retryOnStatus = []int{http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout, http.StatusTooManyRequests}

type HttpFetcher struct {
	client               *http.Client
	variantEndpoint      string
	geneEndpoint         string
	maxRetries           int
	retryInitialInterval time.Duration
	limiter              *rate.Limiter // nil when unlimited
}

func NewHttpFetcher(cfg *models.Config, client *http.Client) *HttpFetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Network.RequestTimeout}
	}
	f := &HttpFetcher{
		client:               client,
		variantEndpoint:      strings.TrimRight(cfg.Network.VariantEndpoint, "/"),
		geneEndpoint:         strings.TrimRight(cfg.Network.GeneEndpoint, "/"),
		maxRetries:           cfg.Network.MaxRetries,
		retryInitialInterval: cfg.Network.RetryInitialInterval,
	}
	if cfg.Network.RequestsPerSecond > 0 {
		burst := cfg.Network.RequestBurst
		if burst < 1 {
			burst = 1
		}
		f.limiter = rate.NewLimiter(rate.Limit(cfg.Network.RequestsPerSecond), burst)
	}
	return f
}

func (f *HttpFetcher) Url(key results.QueryKey) (string, error) {
	switch key.Kind {
	case qk.Variant:
		return fmt.Sprintf("%s/%s", f.variantEndpoint, url.PathEscape(key.Term)), nil
	case qk.Gene:
		return fmt.Sprintf("%s/%s", f.geneEndpoint, url.PathEscape(key.Term)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownQueryKind, key.Kind)
	}
}

func (f *HttpFetcher) Fetch(ctx context.Context, key results.QueryKey) ([]byte, error) {
	requestUrl, err := f.Url(key)
	if err != nil {
		return nil, err
	}

	if f.maxRetries <= 0 {
		return f.get(ctx, requestUrl)
	}

	retryBackoff := backoff.NewExponentialBackOff()
	if f.retryInitialInterval > 0 {
		retryBackoff.InitialInterval = f.retryInitialInterval
	}

	var body []byte
	operation := func() error {
		b, getErr := f.get(ctx, requestUrl)
		if getErr != nil {
			var statusErr *StatusError
			if errors.As(getErr, &statusErr) && isRetryable(statusErr.StatusCode) {
				return getErr
			}
			return backoff.Permanent(getErr)
		}
		body = b
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(retryBackoff, uint64(f.maxRetries)), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

func (f *HttpFetcher) get(ctx context.Context, requestUrl string) ([]byte, error) {
	// every attempt, retries included, takes a token
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("waiting to fetch %s: %w", requestUrl, err)
		}
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", requestUrl, err)
	}
	request.Header.Set("Accept", "application/json")

	response, err := f.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", requestUrl, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, response.Body)
		return nil, &StatusError{Url: requestUrl, StatusCode: response.StatusCode}
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body from %s: %w", requestUrl, err)
	}
	return body, nil
}

func isRetryable(status int) bool {
	for _, s := range retryOnStatus {
		if s == status {
			return true
		}
	}
	return false
}
