package mvc

import (
	"errors"
	"fmt"
	"net/http"

	"fedvlm/api/contexts"
	"fedvlm/api/models/dtos"
	e "fedvlm/api/models/dtos/errors"
	"fedvlm/api/models/nodes"
	"fedvlm/api/models/results"
	"fedvlm/api/repositories/network"
	"fedvlm/api/services/filtering"
	"fedvlm/api/services/tracks"

	"github.com/labstack/echo"
)

func NodeToDto(peer nodes.PeerNode) dtos.NodeDTO {
	return dtos.NodeDTO{
		Id:                     peer.Id,
		Name:                   peer.DisplayName(),
		HostingInstitutionName: peer.HostingInstitutionName,
	}
}

func ResultSetToDto(rs results.ResultSet, registry *nodes.Registry) dtos.ResultSetDTO {
	dto := dtos.ResultSetDTO{
		Node:         NodeToDto(registry.Lookup(rs.PeerNodeId)),
		VariantId:    rs.VariantId,
		AlleleCount:  rs.AlleleCount,
		Associations: rs.Associations,
	}
	if dto.Associations == nil {
		dto.Associations = []results.Association{}
	}
	if rs.Consequence != nil {
		dto.Consequence = rs.Consequence.Raw
		dto.ConsequenceLabel = rs.Consequence.Label
	}
	return dto
}

// BuildSearchResponse renders an aggregate with the given exclusions
// applied. The aggregate itself is left untouched.
func BuildSearchResponse(aggregate results.AggregateResponse, excluded filtering.ExclusionSet, registry *nodes.Registry) dtos.SearchResponseDTO {
	visible := filtering.Visible(aggregate.ResultSets, excluded)

	response := dtos.SearchResponseDTO{
		Kind:          aggregate.Key.Kind,
		Term:          aggregate.Key.Term,
		Exists:        aggregate.Exists,
		Display:       string(filtering.Display(aggregate, excluded)),
		ExcludedNodes: excluded.Ids(),
		TotalCount:    len(aggregate.ResultSets),
		VisibleCount:  len(visible),
		Results:       make([]dtos.ResultSetDTO, 0, len(visible)),
	}

	for _, rs := range visible {
		response.Results = append(response.Results, ResultSetToDto(rs, registry))
	}

	for _, gene := range filtering.VisibleGenes(aggregate.Genes, excluded) {
		geneDto := dtos.GeneDTO{
			Node:       NodeToDto(registry.Lookup(gene.PeerNodeId)),
			GeneSymbol: gene.GeneSymbol,
			Variants:   make([]dtos.ResultSetDTO, 0, len(gene.ResultSets)),
			Exons:      gene.Exons,
		}
		for _, rs := range filtering.Visible(gene.ResultSets, excluded) {
			geneDto.Variants = append(geneDto.Variants, ResultSetToDto(rs, registry))
		}
		if track, ok := tracks.Build(gene.Exons); ok {
			geneDto.Track = &dtos.TrackDTO{Start: track.Start, Stop: track.Stop, CodingExons: track.CodingExons}
		}
		response.Genes = append(response.Genes, geneDto)
	}

	for _, fault := range aggregate.Faults {
		response.Faults = append(response.Faults, dtos.NodeFaultDTO{
			Index:      fault.Index,
			PeerNodeId: fault.PeerNodeId,
			Message:    fault.Err.Error(),
		})
	}

	return response
}

func BuildSessionResponse(gc *contexts.VlmContext) dtos.SessionResponseDTO {
	session := gc.Session
	state := session.State()
	excluded := session.Excluded()

	response := dtos.SessionResponseDTO{
		SessionId:     session.Id.String(),
		Phase:         state.Phase,
		Kind:          state.Key.Kind,
		Term:          state.Key.Term,
		ExcludedNodes: excluded.Ids(),
	}
	if state.Err != nil {
		response.Error = RetryLaterMessage(state.Key)
	}
	if state.Response != nil {
		search := BuildSearchResponse(*state.Response, excluded, gc.Registry)
		response.Search = &search
	}
	return response
}

func RetryLaterMessage(key results.QueryKey) string {
	return fmt.Sprintf("There was an error looking up %s %s, please try again later.", key.Kind, key.Term)
}

// RespondQueryError maps a failed federated query onto an HTTP response;
// everything coming back from the network side is a bad gateway.
func RespondQueryError(c echo.Context, key results.QueryKey, err error) error {
	gc := c.(*contexts.VlmContext)
	gc.Log.Errorw("federated query failed", "key", key.String(), "error", err)

	if errors.Is(err, network.ErrUnknownQueryKind) {
		return c.JSON(http.StatusInternalServerError, e.CreateSimpleInternalServerError(err.Error()))
	}
	return c.JSON(http.StatusBadGateway, e.CreateSimpleBadGateway(RetryLaterMessage(key)))
}
