package nodes

import (
	"fmt"
	"os"
	"sort"

	yaml "gopkg.in/yaml.v2"
)

type PeerNode struct {
	Id                     string `json:"id" yaml:"id"`
	NodeName               string `json:"nodeName,omitempty" yaml:"nodeName"`
	HostingInstitutionName string `json:"hostingInstitutionName,omitempty" yaml:"hostingInstitutionName"`
}

// DisplayName falls back to a synthesized "Peer {id}" label for nodes
// without a configured name.
func (p PeerNode) DisplayName() string {
	if p.NodeName == "" {
		return fmt.Sprintf("Peer %s", p.Id)
	}
	return p.NodeName
}

func (p PeerNode) HasHostingInstitution() bool {
	return p.HostingInstitutionName != ""
}

// Registry is the immutable node-identity table. It is built once and
// injected wherever node metadata is needed.
type Registry struct {
	entries map[string]PeerNode
}

type registryFile struct {
	Nodes []PeerNode `yaml:"nodes"`
}

func NewRegistry(peers ...PeerNode) *Registry {
	r := &Registry{entries: make(map[string]PeerNode, len(peers))}
	for _, p := range peers {
		r.entries[p.Id] = p
	}
	return r
}

func DefaultRegistry() *Registry {
	return NewRegistry(
		PeerNode{Id: "1", NodeName: "gnomAD", HostingInstitutionName: "Broad Institute"},
		PeerNode{Id: "2", NodeName: "Autism Sequencing Consortium", HostingInstitutionName: "Broad Institute"},
		PeerNode{Id: "3", NodeName: "BipEx", HostingInstitutionName: "Broad Institute"},
		PeerNode{Id: "4", NodeName: "Epi25", HostingInstitutionName: "Epi25 Collaborative"},
		PeerNode{Id: "5", NodeName: "Schema", HostingInstitutionName: "Broad Institute"},
	)
}

// LoadRegistry reads a YAML document of the form
//
//	nodes:
//	  - id: "1"
//	    nodeName: gnomAD
//	    hostingInstitutionName: Broad Institute
func LoadRegistry(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening node registry %s: %w", path, err)
	}
	defer f.Close()

	var doc registryFile
	if err := yaml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding node registry %s: %w", path, err)
	}

	for i, p := range doc.Nodes {
		if p.Id == "" {
			return nil, fmt.Errorf("node registry %s: entry %d has no id", path, i)
		}
	}

	return NewRegistry(doc.Nodes...), nil
}

// Lookup never fails; unknown ids yield a node carrying only its id.
func (r *Registry) Lookup(id string) PeerNode {
	if p, ok := r.entries[id]; ok {
		return p
	}
	return PeerNode{Id: id}
}

func (r *Registry) Has(id string) bool {
	_, ok := r.entries[id]
	return ok
}

func (r *Registry) Ids() []string {
	ids := make([]string, 0, len(r.entries))
	for id := range r.entries {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *Registry) Nodes() []PeerNode {
	peers := make([]PeerNode, 0, len(r.entries))
	for _, id := range r.Ids() {
		peers = append(peers, r.entries[id])
	}
	return peers
}
