package network

import (
	"context"
	"fmt"
	"sync"

	qk "fedvlm/api/models/constants/query-kind"
	"fedvlm/api/models/results"
)

const mockVariantPayload = `{
	"exists": true,
	"resultSets": [
		{
			"exists": true,
			"id": "1",
			"results": [{"id": %[1]q}],
			"resultsCount": 1,
			"type": "dataset",
			"info": {
				"ac": 123,
				"consequence": "missense_variant",
				"associations": [
					{"id": 1, "p_value": 0.0004, "phenotype_id": "HP:0001250", "phenotype_description": "Seizure"}
				]
			}
		},
		{
			"exists": true,
			"id": "3",
			"results": [{"id": %[1]q}],
			"resultsCount": 1,
			"type": "dataset",
			"info": {
				"ac": 456,
				"consequence": "pLof",
				"associations": []
			}
		},
		{
			"exists": true,
			"id": "4",
			"results": [{"id": %[1]q}],
			"resultsCount": 1,
			"type": "dataset",
			"info": {
				"ac": 789,
				"associations": [
					{"id": 2, "p_value": null, "phenotype_id": null, "phenotype_description": "Epilepsy"}
				]
			}
		}
	]
}`

const mockGenePayload = `{
	"exists": true,
	"resultSets": [
		{
			"id": "1",
			"info": {
				"gene_symbol": %[1]q,
				"variants": [
					{"results": [{"id": "13-42298583-A-G"}], "info": {"ac": 12, "consequence": "3_prime_UTR_variant", "associations": []}},
					{"results": [{"id": "13-42298590-C-T"}], "info": {"ac": 3, "consequence": "stop_gained", "associations": []}}
				],
				"exons": [
					{"start": 42298000, "stop": 42298120, "feature_type": "UTR"},
					{"start": 42298121, "stop": 42298400, "feature_type": "CDS"},
					{"start": 42298401, "stop": 42298700, "feature_type": "exon"}
				]
			}
		},
		{
			"id": "4",
			"info": {
				"gene_symbol": %[1]q,
				"variants": [
					{"results": [{"id": "13-42298583-A-G"}], "info": {"ac": 7, "consequence": "3_prime_UTR_variant", "associations": []}}
				],
				"exons": [
					{"start": 42298121, "stop": 42298400, "feature_type": "CDS"}
				]
			}
		}
	]
}`

// MockFetcher serves canned payloads, keyed by query, for local development
// without a running network. Keys without an override get the canned
// three-node variant answer or two-node gene answer.
type MockFetcher struct {
	mu        sync.Mutex
	overrides map[results.QueryKey][]byte
	calls     map[results.QueryKey]int
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		overrides: map[results.QueryKey][]byte{},
		calls:     map[results.QueryKey]int{},
	}
}

func (m *MockFetcher) Set(key results.QueryKey, payload []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.overrides[key] = payload
}

func (m *MockFetcher) Calls(key results.QueryKey) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[key]
}

func (m *MockFetcher) Fetch(ctx context.Context, key results.QueryKey) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[key]++

	if payload, ok := m.overrides[key]; ok {
		return payload, nil
	}

	switch key.Kind {
	case qk.Variant:
		return []byte(fmt.Sprintf(mockVariantPayload, key.Term)), nil
	case qk.Gene:
		return []byte(fmt.Sprintf(mockGenePayload, key.Term)), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQueryKind, key.Kind)
	}
}
