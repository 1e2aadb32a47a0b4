package aggregation

import (
	"errors"
	"fmt"

	"fedvlm/api/models/results"
	"fedvlm/api/services/parsing"
)

var ErrDuplicateResultSet = errors.New("duplicate result set for variant and node")

type rowKey struct {
	variantId  string
	peerNodeId string
}

// Aggregate merges the parsed node entries of one query into a fresh
// AggregateResponse. Node order is kept as it appeared in the payload and
// answers from different nodes are never merged; a second row for the same
// variant and node is dropped and reported as a fault. Failed entries become
// faults without affecting the other nodes.
func Aggregate(parsed parsing.Parsed) results.AggregateResponse {
	aggregate := results.AggregateResponse{
		Key:        parsed.Key,
		Exists:     parsed.Exists,
		ResultSets: []results.ResultSet{},
	}
	if !parsed.Exists {
		return aggregate
	}

	seen := make(map[rowKey]bool)
	admit := func(index int, rs results.ResultSet) bool {
		k := rowKey{variantId: rs.VariantId, peerNodeId: rs.PeerNodeId}
		if seen[k] {
			aggregate.Faults = append(aggregate.Faults, results.NodeFault{
				Index:      index,
				PeerNodeId: rs.PeerNodeId,
				Err:        fmt.Errorf("%w: %s", ErrDuplicateResultSet, rs.VariantId),
			})
			return false
		}
		seen[k] = true
		aggregate.ResultSets = append(aggregate.ResultSets, rs)
		return true
	}

	for _, node := range parsed.Nodes {
		switch {
		case node.Failed():
			aggregate.Faults = append(aggregate.Faults, results.NodeFault{
				Index:      node.Index,
				PeerNodeId: node.PeerNodeId,
				Err:        node.Err,
			})

		case node.Gene != nil:
			gene := *node.Gene
			gene.ResultSets = make([]results.ResultSet, 0, len(node.Gene.ResultSets))
			for _, rs := range node.Gene.ResultSets {
				if admit(node.Index, rs) {
					gene.ResultSets = append(gene.ResultSets, rs)
				}
			}
			gene.Exons = append([]results.Exon{}, node.Gene.Exons...)
			aggregate.Genes = append(aggregate.Genes, gene)

		case node.ResultSet != nil:
			admit(node.Index, *node.ResultSet)
		}
	}

	return aggregate
}

// Faulted reports whether any node entry was dropped while aggregating.
func Faulted(aggregate results.AggregateResponse) bool {
	return len(aggregate.Faults) > 0
}
