package mvc

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fedvlm/api/contexts"
	qk "fedvlm/api/models/constants/query-kind"
	"fedvlm/api/models/nodes"
	"fedvlm/api/models/results"
	"fedvlm/api/repositories/network"
	"fedvlm/api/services/aggregation"
	"fedvlm/api/services/filtering"
	"fedvlm/api/services/parsing"
	"fedvlm/api/tests/common"

	"github.com/labstack/echo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func geneAggregate(t *testing.T) results.AggregateResponse {
	parsed, err := parsing.ParseGeneResponse(common.LoadFixture(t, "gene_brca1.json"), results.NewQueryKey(qk.Gene, "BRCA1"))
	require.NoError(t, err)
	return aggregation.Aggregate(parsed)
}

func TestBuildSearchResponseGenes(t *testing.T) {
	response := BuildSearchResponse(geneAggregate(t), filtering.ExcludeNone(), nodes.DefaultRegistry())

	assert.Equal(t, "HasResults", response.Display)
	assert.Equal(t, 3, response.VisibleCount)
	require.Len(t, response.Genes, 2)

	first := response.Genes[0]
	assert.Equal(t, "gnomAD", first.Node.Name)
	assert.Len(t, first.Variants, 2)
	require.NotNil(t, first.Track)
	assert.Equal(t, 43044295, first.Track.Start)
	assert.Equal(t, 43049194, first.Track.Stop)
	assert.Len(t, first.Track.CodingExons, 2)

	// node 5 reported no exons, so there is nothing to draw
	assert.Equal(t, "Schema", response.Genes[1].Node.Name)
	assert.Nil(t, response.Genes[1].Track)
}

func TestBuildSearchResponseUnknownNode(t *testing.T) {
	aggregate := results.AggregateResponse{
		Exists:     true,
		ResultSets: []results.ResultSet{{VariantId: "1-1-A-T", PeerNodeId: "77", AlleleCount: 1}},
	}

	response := BuildSearchResponse(aggregate, filtering.ExcludeNone(), nodes.DefaultRegistry())
	require.Len(t, response.Results, 1)
	assert.Equal(t, "Peer 77", response.Results[0].Node.Name)
	assert.Empty(t, response.Results[0].Node.HostingInstitutionName)
	assert.NotNil(t, response.Results[0].Associations)
}

func TestRespondQueryError(t *testing.T) {
	key := results.NewQueryKey(qk.Variant, common.ScenarioVariantId)

	tests := []struct {
		err  error
		code int
	}{
		{errors.New("connection reset"), http.StatusBadGateway},
		{&network.StatusError{Url: "http://x", StatusCode: http.StatusInternalServerError}, http.StatusBadGateway},
		{parsing.ErrMalformedResponse, http.StatusBadGateway},
		{network.ErrUnknownQueryKind, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			gc := &contexts.VlmContext{Context: c, Log: zap.NewNop().Sugar()}

			require.NoError(t, RespondQueryError(gc, key, tt.err))
			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
