package filtering

import (
	"encoding/json"
	"sort"

	"fedvlm/api/models/nodes"
	"fedvlm/api/models/results"

	linq "github.com/ahmetb/go-linq"
)

type DisplayState string

const (
	// the query itself found nothing
	NoResults DisplayState = "NoResults"
	// results exist but every row belongs to an excluded node
	NoUnfilteredResults DisplayState = "NoUnfilteredResults"
	HasResults          DisplayState = "HasResults"
)

// ExclusionSet is an immutable set of excluded peer node ids. Ids need not
// be present in the registry. The zero value excludes nothing.
type ExclusionSet struct {
	ids map[string]struct{}
}

func NewExclusionSet(ids ...string) ExclusionSet {
	s := ExclusionSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s ExclusionSet) Contains(id string) bool {
	_, ok := s.ids[id]
	return ok
}

func (s ExclusionSet) Len() int {
	return len(s.ids)
}

func (s ExclusionSet) Ids() []string {
	ids := make([]string, 0, len(s.ids))
	for id := range s.ids {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s ExclusionSet) Equal(other ExclusionSet) bool {
	if s.Len() != other.Len() {
		return false
	}
	for id := range s.ids {
		if !other.Contains(id) {
			return false
		}
	}
	return true
}

func (s ExclusionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Ids())
}

// Toggle removes id when present and adds it otherwise. The receiver set
// is left untouched.
func Toggle(excluded ExclusionSet, id string) ExclusionSet {
	next := NewExclusionSet(excluded.Ids()...)
	if next.Contains(id) {
		delete(next.ids, id)
	} else {
		next.ids[id] = struct{}{}
	}
	return next
}

// ExcludeAll excludes every node known to the registry.
func ExcludeAll(registry *nodes.Registry) ExclusionSet {
	return NewExclusionSet(registry.Ids()...)
}

func ExcludeNone() ExclusionSet {
	return NewExclusionSet()
}

// Visible keeps the rows of nodes that are not excluded, in their original
// relative order.
func Visible(all []results.ResultSet, excluded ExclusionSet) []results.ResultSet {
	visible := make([]results.ResultSet, 0, len(all))
	linq.From(all).WhereT(func(rs results.ResultSet) bool {
		return !excluded.Contains(rs.PeerNodeId)
	}).ToSlice(&visible)
	return visible
}

// VisibleGenes applies the same rule to gene answers, by answering node.
func VisibleGenes(genes []results.GeneResult, excluded ExclusionSet) []results.GeneResult {
	visible := make([]results.GeneResult, 0, len(genes))
	linq.From(genes).WhereT(func(gr results.GeneResult) bool {
		return !excluded.Contains(gr.PeerNodeId)
	}).ToSlice(&visible)
	return visible
}

func Display(aggregate results.AggregateResponse, excluded ExclusionSet) DisplayState {
	if aggregate.IsEmpty() {
		return NoResults
	}
	if len(Visible(aggregate.ResultSets, excluded)) == 0 {
		return NoUnfilteredResults
	}
	return HasResults
}
