package aggregation

import (
	"errors"
	"testing"

	qk "fedvlm/api/models/constants/query-kind"
	"fedvlm/api/models/results"
	"fedvlm/api/services/parsing"
	"fedvlm/api/tests/common"

	. "github.com/ahmetb/go-linq"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var variantKey = results.NewQueryKey(qk.Variant, common.ScenarioVariantId)

func parseFixture(t *testing.T, name string, key results.QueryKey) parsing.Parsed {
	parsed, err := parsing.ParseResponse(common.LoadFixture(t, name), key)
	require.NoError(t, err)
	return parsed
}

func nodeIdsOf(rows []results.ResultSet) []string {
	var ids []string
	From(rows).SelectT(func(rs results.ResultSet) string {
		return rs.PeerNodeId
	}).ToSlice(&ids)
	return ids
}

func TestAggregateKeepsPayloadOrder(t *testing.T) {
	aggregate := Aggregate(parseFixture(t, "variant_three_nodes.json", variantKey))

	assert.Equal(t, variantKey, aggregate.Key)
	assert.True(t, aggregate.Exists)
	assert.False(t, Faulted(aggregate))
	assert.Equal(t, []string{"1", "3", "4"}, nodeIdsOf(aggregate.ResultSets))
	assert.Nil(t, aggregate.Genes)
}

func TestAggregateNotExists(t *testing.T) {
	parsed := parsing.Parsed{
		Key:    variantKey,
		Exists: false,
		Nodes: []parsing.NodeOutcome{
			{Index: 0, PeerNodeId: "1", ResultSet: &results.ResultSet{VariantId: "x", PeerNodeId: "1"}},
		},
	}

	aggregate := Aggregate(parsed)
	assert.False(t, aggregate.Exists)
	assert.NotNil(t, aggregate.ResultSets)
	assert.Empty(t, aggregate.ResultSets)
	assert.True(t, aggregate.IsEmpty())
}

func TestAggregateExistsWithoutRows(t *testing.T) {
	aggregate := Aggregate(parsing.Parsed{Key: variantKey, Exists: true})
	assert.True(t, aggregate.Exists)
	assert.Empty(t, aggregate.ResultSets)
	assert.True(t, aggregate.IsEmpty())
}

func TestAggregateRecordsFaults(t *testing.T) {
	aggregate := Aggregate(parseFixture(t, "variant_partial_fault.json", variantKey))

	assert.Equal(t, []string{"1", "4"}, nodeIdsOf(aggregate.ResultSets))
	assert.Equal(t, 7, aggregate.ResultSets[1].AlleleCount)

	require.Len(t, aggregate.Faults, 3)
	assert.Equal(t, 1, aggregate.Faults[0].Index)
	assert.Equal(t, "2", aggregate.Faults[0].PeerNodeId)
	assert.ErrorIs(t, aggregate.Faults[0], parsing.ErrMissingField)

	assert.Equal(t, "3", aggregate.Faults[1].PeerNodeId)
	assert.ErrorIs(t, aggregate.Faults[1], parsing.ErrInvalidField)

	assert.Equal(t, 4, aggregate.Faults[2].Index)
	assert.Equal(t, "4", aggregate.Faults[2].PeerNodeId)
	assert.True(t, errors.Is(aggregate.Faults[2], ErrDuplicateResultSet))
}

func TestAggregateUniquePairs(t *testing.T) {
	aggregate := Aggregate(parseFixture(t, "variant_partial_fault.json", variantKey))

	seen := map[string]bool{}
	for _, rs := range aggregate.ResultSets {
		k := rs.VariantId + "|" + rs.PeerNodeId
		assert.False(t, seen[k], "duplicate pair %s", k)
		seen[k] = true
	}
}

func TestAggregateGenes(t *testing.T) {
	geneKey := results.NewQueryKey(qk.Gene, "BRCA1")
	aggregate := Aggregate(parseFixture(t, "gene_brca1.json", geneKey))

	require.Len(t, aggregate.Genes, 2)
	assert.Equal(t, "1", aggregate.Genes[0].PeerNodeId)
	assert.Equal(t, "5", aggregate.Genes[1].PeerNodeId)

	// gene rows are flattened in order so the filter treats both kinds alike
	assert.Equal(t, []string{"1", "1", "5"}, nodeIdsOf(aggregate.ResultSets))
	assert.Equal(t, "17-43045712-T-C", aggregate.ResultSets[2].VariantId)
	assert.Len(t, aggregate.Genes[0].Exons, 4)
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	geneKey := results.NewQueryKey(qk.Gene, "BRCA1")
	parsed := parseFixture(t, "gene_brca1.json", geneKey)
	pristine := parseFixture(t, "gene_brca1.json", geneKey)

	aggregate := Aggregate(parsed)
	if diff := cmp.Diff(pristine, parsed); diff != "" {
		t.Errorf("Aggregate modified its input (-want +got):\n%s", diff)
	}

	aggregate.Genes[0].ResultSets[0].AlleleCount = 1000
	aggregate.Genes[0].Exons[0].Start = -1

	assert.Equal(t, 5, parsed.Nodes[0].Gene.ResultSets[0].AlleleCount)
	assert.Equal(t, 43044295, parsed.Nodes[0].Gene.Exons[0].Start)

	again := Aggregate(parsed)
	assert.Equal(t, 5, again.ResultSets[0].AlleleCount)
}
