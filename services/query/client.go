package query

import (
	"container/list"
	"context"
	"sync"

	"fedvlm/api/models/results"
	"fedvlm/api/repositories/network"
	"fedvlm/api/services/aggregation"
	"fedvlm/api/services/metrics"
	"fedvlm/api/services/parsing"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultCapacity = 256

// Client is the request-caching layer in front of the network. Identical
// in-flight queries share one fetch, successful aggregates are cached until
// evicted or invalidated, and failures are never cached. The federated
// data changes slowly enough that entries never go stale by age.
type Client struct {
	fetcher network.Fetcher
	logger  *zap.SugaredLogger
	group   singleflight.Group

	mu       sync.Mutex
	capacity int
	list     *list.List // front = most recent
	entries  map[results.QueryKey]*list.Element
}

type cacheEntry struct {
	key       results.QueryKey
	aggregate results.AggregateResponse
}

func NewClient(fetcher network.Fetcher, capacity int, logger *zap.SugaredLogger) *Client {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Client{
		fetcher:  fetcher,
		logger:   logger,
		capacity: capacity,
		list:     list.New(),
		entries:  make(map[results.QueryKey]*list.Element, capacity),
	}
}

// Query returns the aggregate for key, fetching it at most once per key
// while cached.
func (c *Client) Query(ctx context.Context, key results.QueryKey) (results.AggregateResponse, error) {
	if aggregate, ok := c.Cached(key); ok {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return aggregate, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	// the shared fetch outlives any single caller; each caller only stops
	// waiting when its own ctx ends
	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key.String(), func() (interface{}, error) {
		return c.fetch(fetchCtx, key)
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		c.logger.Debugw("stopped waiting for federated query", "key", key.String(), "error", ctx.Err())
		return results.AggregateResponse{}, ctx.Err()
	}

	v, err, shared := res.Val, res.Err, res.Shared
	if err != nil {
		metrics.QueriesTotal.WithLabelValues(string(key.Kind), "error").Inc()
		c.logger.Warnw("federated query failed", "key", key.String(), "error", err)
		return results.AggregateResponse{}, err
	}
	if shared {
		c.logger.Debugw("federated query shared an in-flight fetch", "key", key.String())
	}

	metrics.QueriesTotal.WithLabelValues(string(key.Kind), "success").Inc()
	return v.(results.AggregateResponse), nil
}

func (c *Client) fetch(ctx context.Context, key results.QueryKey) (results.AggregateResponse, error) {
	raw, err := c.fetcher.Fetch(ctx, key)
	if err != nil {
		return results.AggregateResponse{}, err
	}

	parsed, err := parsing.ParseResponse(raw, key)
	if err != nil {
		return results.AggregateResponse{}, err
	}

	aggregate := aggregation.Aggregate(parsed)
	for _, fault := range aggregate.Faults {
		metrics.NodeFaultsTotal.WithLabelValues(string(key.Kind)).Inc()
		c.logger.Warnw("dropped node entry", "key", key.String(), "fault", fault.Error())
	}

	c.store(key, aggregate)
	return aggregate, nil
}

func (c *Client) Cached(key results.QueryKey) (results.AggregateResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.list.MoveToFront(el)
		return el.Value.(cacheEntry).aggregate, true
	}
	return results.AggregateResponse{}, false
}

// Invalidate drops the cached answer for key so the next query refetches.
func (c *Client) Invalidate(key results.QueryKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.list.Remove(el)
		delete(c.entries, key)
	}
}

func (c *Client) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list.Len()
}

func (c *Client) store(key results.QueryKey, aggregate results.AggregateResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		el.Value = cacheEntry{key: key, aggregate: aggregate}
		c.list.MoveToFront(el)
		return
	}
	c.entries[key] = c.list.PushFront(cacheEntry{key: key, aggregate: aggregate})
	if c.list.Len() > c.capacity {
		if oldest := c.list.Back(); oldest != nil {
			delete(c.entries, oldest.Value.(cacheEntry).key)
			c.list.Remove(oldest)
		}
	}
}
