package network

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"fedvlm/api/models"
	qk "fedvlm/api/models/constants/query-kind"
	"fedvlm/api/models/results"
	"fedvlm/api/tests/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var scenarioKey = results.NewQueryKey(qk.Variant, common.ScenarioVariantId)

func configFor(serverUrl string) *models.Config {
	cfg := common.InitConfig()
	cfg.Network.VariantEndpoint = serverUrl + "/variant/"
	cfg.Network.GeneEndpoint = serverUrl + "/gene"
	return cfg
}

func TestHttpFetcherUrl(t *testing.T) {
	cfg := common.InitConfig()
	cfg.Network.VariantEndpoint = "https://vlm.example.org/variant/"
	cfg.Network.GeneEndpoint = "https://vlm.example.org/gene"
	fetcher := NewHttpFetcher(cfg, nil)

	u, err := fetcher.Url(scenarioKey)
	require.NoError(t, err)
	assert.Equal(t, "https://vlm.example.org/variant/13-42298583-A-G", u)

	u, err = fetcher.Url(results.NewQueryKey(qk.Gene, "brca1"))
	require.NoError(t, err)
	assert.Equal(t, "https://vlm.example.org/gene/BRCA1", u)

	u, err = fetcher.Url(results.NewQueryKey(qk.Gene, "A/B"))
	require.NoError(t, err)
	assert.Equal(t, "https://vlm.example.org/gene/A%2FB", u)

	_, err = fetcher.Url(results.QueryKey{Kind: qk.Unknown, Term: "X"})
	assert.ErrorIs(t, err, ErrUnknownQueryKind)
}

func TestHttpFetcherFetch(t *testing.T) {
	payload := common.LoadFixture(t, "variant_three_nodes.json")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/variant/13-42298583-A-G", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	body, err := NewHttpFetcher(configFor(server.URL), server.Client()).Fetch(context.Background(), scenarioKey)
	require.NoError(t, err)
	assert.JSONEq(t, string(payload), string(body))
}

func TestHttpFetcherStatusError(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewHttpFetcher(configFor(server.URL), server.Client()).Fetch(context.Background(), scenarioKey)

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	// retries are disabled unless configured
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestHttpFetcherRetries(t *testing.T) {
	t.Run("retryable statuses are retried", func(t *testing.T) {
		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&hits, 1) < 3 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			_, _ = w.Write([]byte(`{"exists": false}`))
		}))
		defer server.Close()

		cfg := configFor(server.URL)
		cfg.Network.MaxRetries = 3
		cfg.Network.RetryInitialInterval = time.Millisecond

		body, err := NewHttpFetcher(cfg, server.Client()).Fetch(context.Background(), scenarioKey)
		require.NoError(t, err)
		assert.JSONEq(t, `{"exists": false}`, string(body))
		assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
	})

	t.Run("other statuses fail immediately", func(t *testing.T) {
		var hits int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&hits, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		cfg := configFor(server.URL)
		cfg.Network.MaxRetries = 3
		cfg.Network.RetryInitialInterval = time.Millisecond

		_, err := NewHttpFetcher(cfg, server.Client()).Fetch(context.Background(), scenarioKey)
		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
	})
}

func TestHttpFetcherRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"exists": false}`))
	}))
	defer server.Close()

	cfg := configFor(server.URL)
	cfg.Network.RequestsPerSecond = 0.001
	cfg.Network.RequestBurst = 1
	fetcher := NewHttpFetcher(cfg, server.Client())

	_, err := fetcher.Fetch(context.Background(), scenarioKey)
	require.NoError(t, err)

	// the single token is spent; the next request cannot fit in the deadline
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = fetcher.Fetch(ctx, scenarioKey)
	assert.Error(t, err)
}

func TestHttpFetcherNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	cfg := configFor(server.URL)
	server.Close()

	_, err := NewHttpFetcher(cfg, nil).Fetch(context.Background(), scenarioKey)
	assert.Error(t, err)
}

func TestMockFetcher(t *testing.T) {
	mock := NewMockFetcher()

	body, err := mock.Fetch(context.Background(), scenarioKey)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"13-42298583-A-G"`)
	assert.Equal(t, 1, mock.Calls(scenarioKey))

	mock.Set(scenarioKey, []byte(`{"exists": false}`))
	body, err = mock.Fetch(context.Background(), scenarioKey)
	require.NoError(t, err)
	assert.Equal(t, `{"exists": false}`, string(body))

	_, err = mock.Fetch(context.Background(), results.QueryKey{Kind: qk.Unknown})
	assert.ErrorIs(t, err, ErrUnknownQueryKind)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = mock.Fetch(ctx, scenarioKey)
	assert.ErrorIs(t, err, context.Canceled)
}
