package dtos

import (
	"fedvlm/api/models/constants"
	"fedvlm/api/models/results"
	"time"
)

type GeneralErrorResponseDto struct {
	Code      int            `json:"code"`
	Message   string         `json:"message"`
	Timestamp time.Time      `json:"timestamp"`
	Errors    []GeneralError `json:"errors"`
}
type GeneralError struct {
	Message string `json:"message"`
}

// -- search results

type NodeDTO struct {
	Id                     string `json:"id"`
	Name                   string `json:"name"`
	HostingInstitutionName string `json:"hostingInstitutionName,omitempty"`
}

type ResultSetDTO struct {
	Node             NodeDTO               `json:"node"`
	VariantId        string                `json:"variantId"`
	AlleleCount      int                   `json:"ac"`
	Consequence      string                `json:"consequence,omitempty"` // raw code
	ConsequenceLabel string                `json:"consequenceLabel,omitempty"`
	Associations     []results.Association `json:"associations"`
}

type TrackDTO struct {
	Start       int            `json:"start"`
	Stop        int            `json:"stop"`
	CodingExons []results.Exon `json:"codingExons"`
}

type GeneDTO struct {
	Node       NodeDTO        `json:"node"`
	GeneSymbol string         `json:"geneSymbol"`
	Variants   []ResultSetDTO `json:"variants"`
	Exons      []results.Exon `json:"exons"`
	Track      *TrackDTO      `json:"track,omitempty"`
}

type NodeFaultDTO struct {
	Index      int    `json:"index"`
	PeerNodeId string `json:"peerNodeId,omitempty"`
	Message    string `json:"message"`
}

type SearchResponseDTO struct {
	Kind          constants.QueryKind `json:"kind"`
	Term          string              `json:"term"`
	Exists        bool                `json:"exists"`
	Display       string              `json:"display"`
	ExcludedNodes []string            `json:"excludedNodes"`
	TotalCount    int                 `json:"totalCount"`
	VisibleCount  int                 `json:"visibleCount"`
	Results       []ResultSetDTO      `json:"results"`
	Genes         []GeneDTO           `json:"genes,omitempty"`
	Faults        []NodeFaultDTO      `json:"faults,omitempty"`
}

// -- sessions

type SessionResponseDTO struct {
	SessionId     string              `json:"sessionId"`
	Phase         constants.Phase     `json:"phase"`
	Kind          constants.QueryKind `json:"kind,omitempty"`
	Term          string              `json:"term,omitempty"`
	ExcludedNodes []string            `json:"excludedNodes"`
	Error         string              `json:"error,omitempty"`
	Search        *SearchResponseDTO  `json:"search,omitempty"`
}

type NodesResponseDTO struct {
	Count int       `json:"count"`
	Nodes []NodeDTO `json:"nodes"`
}
