package filtering

import (
	"encoding/json"
	"testing"

	qk "fedvlm/api/models/constants/query-kind"
	"fedvlm/api/models/nodes"
	"fedvlm/api/models/results"
	"fedvlm/api/services/aggregation"
	"fedvlm/api/services/parsing"
	"fedvlm/api/tests/common"

	. "github.com/ahmetb/go-linq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioAggregate(t *testing.T) results.AggregateResponse {
	key := results.NewQueryKey(qk.Variant, common.ScenarioVariantId)
	parsed, err := parsing.ParseVariantResponse(common.LoadFixture(t, "variant_three_nodes.json"), key)
	require.NoError(t, err)
	return aggregation.Aggregate(parsed)
}

func rows(ids ...string) []results.ResultSet {
	all := make([]results.ResultSet, 0, len(ids))
	for i, id := range ids {
		all = append(all, results.ResultSet{VariantId: "1-1-A-T", PeerNodeId: id, AlleleCount: i})
	}
	return all
}

func TestScenarioExcludeNodeThree(t *testing.T) {
	aggregate := scenarioAggregate(t)

	visible := Visible(aggregate.ResultSets, NewExclusionSet("3"))

	var acs []int
	From(visible).SelectT(func(rs results.ResultSet) int {
		return rs.AlleleCount
	}).ToSlice(&acs)
	assert.Equal(t, []int{123, 789}, acs)
	assert.Equal(t, HasResults, Display(aggregate, NewExclusionSet("3")))

	// the aggregate is untouched
	assert.Len(t, aggregate.ResultSets, 3)
}

func TestBulkExclusionIsIdempotent(t *testing.T) {
	registry := nodes.DefaultRegistry()
	all := rows("1", "2", "9", "4")

	once := ExcludeAll(registry)
	twice := ExcludeAll(registry)
	assert.True(t, once.Equal(twice))
	assert.Equal(t, registry.Ids(), once.Ids())

	// node 9 is not in the registry, so it stays visible
	visible := Visible(all, once)
	require.Len(t, visible, 1)
	assert.Equal(t, "9", visible[0].PeerNodeId)

	assert.True(t, ExcludeNone().Equal(ExcludeNone()))
	assert.Equal(t, all, Visible(all, ExcludeNone()))
}

func TestToggleIsAnInvolution(t *testing.T) {
	sets := []ExclusionSet{
		{},
		ExcludeNone(),
		NewExclusionSet("1"),
		NewExclusionSet("1", "3", "4"),
		NewExclusionSet("unknown"),
	}

	for _, set := range sets {
		for _, id := range []string{"1", "3", "7", "unknown"} {
			twice := Toggle(Toggle(set, id), id)
			assert.True(t, set.Equal(twice), "set %v id %s", set.Ids(), id)
		}
	}
}

func TestToggleLeavesOriginalUntouched(t *testing.T) {
	original := NewExclusionSet("1")
	toggled := Toggle(original, "3")

	assert.Equal(t, []string{"1"}, original.Ids())
	assert.Equal(t, []string{"1", "3"}, toggled.Ids())
	assert.Equal(t, []string{"3"}, Toggle(toggled, "1").Ids())
}

func TestVisiblePreservesOrder(t *testing.T) {
	all := rows("4", "1", "3", "1", "2")

	cases := []ExclusionSet{
		ExcludeNone(),
		NewExclusionSet("1"),
		NewExclusionSet("3", "2"),
		NewExclusionSet("4", "1", "3", "2"),
	}

	for _, excluded := range cases {
		visible := Visible(all, excluded)
		assert.NotNil(t, visible)

		// visible must be a subsequence of all; allele counts are unique here
		j := 0
		for _, rs := range all {
			if j < len(visible) && visible[j].AlleleCount == rs.AlleleCount {
				j++
			}
		}
		assert.Equal(t, len(visible), j, "excluded %v", excluded.Ids())

		for _, rs := range visible {
			assert.False(t, excluded.Contains(rs.PeerNodeId))
		}
	}
}

func TestDisplayStates(t *testing.T) {
	aggregate := scenarioAggregate(t)

	assert.Equal(t, HasResults, Display(aggregate, ExcludeNone()))
	assert.Equal(t, NoUnfilteredResults, Display(aggregate, NewExclusionSet("1", "3", "4")))
	assert.Equal(t, NoUnfilteredResults, Display(aggregate, ExcludeAll(nodes.DefaultRegistry())))

	notFound := results.AggregateResponse{Exists: false, ResultSets: []results.ResultSet{}}
	assert.Equal(t, NoResults, Display(notFound, ExcludeNone()))

	noRows := results.AggregateResponse{Exists: true, ResultSets: []results.ResultSet{}}
	assert.Equal(t, NoResults, Display(noRows, NewExclusionSet("1")))
}

func TestVisibleGenes(t *testing.T) {
	genes := []results.GeneResult{
		{PeerNodeId: "1", GeneSymbol: "BRCA1"},
		{PeerNodeId: "5", GeneSymbol: "BRCA1"},
	}

	visible := VisibleGenes(genes, NewExclusionSet("1"))
	require.Len(t, visible, 1)
	assert.Equal(t, "5", visible[0].PeerNodeId)
	assert.Empty(t, VisibleGenes(nil, ExcludeNone()))
}

func TestExclusionSetMarshalJSON(t *testing.T) {
	raw, err := json.Marshal(NewExclusionSet("4", "1"))
	require.NoError(t, err)
	assert.JSONEq(t, `["1","4"]`, string(raw))

	raw, err = json.Marshal(ExclusionSet{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}
