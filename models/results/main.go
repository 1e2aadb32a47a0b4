package results

import (
	"fedvlm/api/models/constants"
	qk "fedvlm/api/models/constants/query-kind"
	"fmt"
)

// QueryKey identifies one logical query; equal keys share cache entries.
type QueryKey struct {
	Kind constants.QueryKind `json:"kind"`
	Term string              `json:"term"`
}

// NewQueryKey normalizes the raw term for the given kind.
func NewQueryKey(kind constants.QueryKind, term string) QueryKey {
	return QueryKey{Kind: kind, Term: qk.Normalize(term)}
}

// KeyForSearchTerm classifies and normalizes a free-text term.
func KeyForSearchTerm(term string) QueryKey {
	return NewQueryKey(qk.Classify(term), term)
}

func (k QueryKey) String() string {
	return fmt.Sprintf("%s/%s", k.Kind, k.Term)
}

type Association struct {
	Id                   int      `json:"id" mapstructure:"id"`
	PValue               *float64 `json:"p_value" mapstructure:"p_value"`
	PhenotypeId          *string  `json:"phenotype_id,omitempty" mapstructure:"phenotype_id"`
	PhenotypeDescription string   `json:"phenotype_description" mapstructure:"phenotype_description"`
}

type Exon struct {
	Start       int                   `json:"start" mapstructure:"start"`
	Stop        int                   `json:"stop" mapstructure:"stop"`
	FeatureType constants.FeatureType `json:"feature_type" mapstructure:"feature_type"`
}

// Consequence keeps the raw code for stable comparisons next to its label.
type Consequence struct {
	Raw   string `json:"raw"`
	Label string `json:"label"`
}

type ResultSet struct {
	VariantId    string        `json:"variantId"`
	PeerNodeId   string        `json:"peerNodeId"`
	AlleleCount  int           `json:"ac"`
	Consequence  *Consequence  `json:"consequence,omitempty"` // nil when the node reported none
	Associations []Association `json:"associations"`
}

// GeneResult is one node's answer to a gene query.
type GeneResult struct {
	PeerNodeId string      `json:"peerNodeId"`
	GeneSymbol string      `json:"geneSymbol"`
	ResultSets []ResultSet `json:"variants"`
	Exons      []Exon      `json:"exons"`
	HasExons   bool        `json:"hasExons"`
}

// NodeFault records a node entry that could not be parsed or aggregated.
// The remaining entries of the same response are unaffected.
type NodeFault struct {
	Index      int    `json:"index"`
	PeerNodeId string `json:"peerNodeId,omitempty"`
	Err        error  `json:"-"`
}

func (f NodeFault) Error() string {
	if f.PeerNodeId == "" {
		return fmt.Sprintf("result set %d: %v", f.Index, f.Err)
	}
	return fmt.Sprintf("result set %d (node %s): %v", f.Index, f.PeerNodeId, f.Err)
}

func (f NodeFault) Unwrap() error {
	return f.Err
}

type AggregateResponse struct {
	Key    QueryKey `json:"key"`
	Exists bool     `json:"exists"`
	// every variant row, in payload order; for gene queries this is the
	// concatenation of each GeneResult's rows
	ResultSets []ResultSet  `json:"resultSets"`
	Genes      []GeneResult `json:"genes,omitempty"`
	Faults     []NodeFault  `json:"-"`
}

// IsEmpty reports "the query itself found nothing", which covers both an
// entity no node knows about and an answer with zero rows.
func (a AggregateResponse) IsEmpty() bool {
	return !a.Exists || len(a.ResultSets) == 0
}
