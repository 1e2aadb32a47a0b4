package parsing

import (
	"errors"
	"fmt"
	"math"
	"strconv"

	qk "fedvlm/api/models/constants/query-kind"
	"fedvlm/api/models/results"
	"fedvlm/api/services/consequence"

	"github.com/Jeffail/gabs"
	"github.com/mitchellh/mapstructure"
)

var (
	// ErrMalformedResponse is returned when the payload as a whole cannot be
	// interpreted; it is a transport-class failure.
	ErrMalformedResponse = errors.New("malformed federated response")

	// per-node failures, always wrapped in a NodeOutcome
	ErrMissingField = errors.New("missing required field")
	ErrInvalidField = errors.New("invalid field")
)

// NodeOutcome is the result of parsing one entry of `resultSets`.
// Exactly one of ResultSet, Gene or Err is set.
type NodeOutcome struct {
	Index      int
	PeerNodeId string
	ResultSet  *results.ResultSet
	Gene       *results.GeneResult
	Err        error
}

func (o NodeOutcome) Failed() bool {
	return o.Err != nil
}

type Parsed struct {
	Key    results.QueryKey
	Exists bool
	Nodes  []NodeOutcome
}

// ParseResponse dispatches on the kind of the query key.
func ParseResponse(raw []byte, key results.QueryKey) (Parsed, error) {
	switch key.Kind {
	case qk.Variant:
		return ParseVariantResponse(raw, key)
	case qk.Gene:
		return ParseGeneResponse(raw, key)
	default:
		return Parsed{}, fmt.Errorf("%w: unknown query kind %q", ErrMalformedResponse, key.Kind)
	}
}

func ParseVariantResponse(raw []byte, key results.QueryKey) (Parsed, error) {
	return parseEnvelope(raw, key, func(node *gabs.Container) NodeOutcome {
		nodeId, err := peerNodeId(node, "")
		if err != nil {
			return NodeOutcome{Err: err}
		}
		rs, err := ParseVariantResultSet(node, nodeId, key.Term)
		if err != nil {
			return NodeOutcome{PeerNodeId: nodeId, Err: err}
		}
		return NodeOutcome{PeerNodeId: nodeId, ResultSet: &rs}
	})
}

func ParseGeneResponse(raw []byte, key results.QueryKey) (Parsed, error) {
	return parseEnvelope(raw, key, func(node *gabs.Container) NodeOutcome {
		nodeId, err := peerNodeId(node, "")
		if err != nil {
			return NodeOutcome{Err: err}
		}
		gr, err := ParseGeneResultSet(node, nodeId)
		if err != nil {
			return NodeOutcome{PeerNodeId: nodeId, Err: err}
		}
		return NodeOutcome{PeerNodeId: nodeId, Gene: &gr}
	})
}

func parseEnvelope(raw []byte, key results.QueryKey, parseNode func(*gabs.Container) NodeOutcome) (Parsed, error) {
	jsonParsed, err := gabs.ParseJSON(raw)
	if err != nil {
		return Parsed{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if _, isObject := jsonParsed.Data().(map[string]interface{}); !isObject {
		return Parsed{}, fmt.Errorf("%w: top level is not an object", ErrMalformedResponse)
	}

	parsed := Parsed{Key: key, Exists: true}

	// beacon-style envelopes report existence under responseSummary
	existsNode := jsonParsed.Search("exists")
	if existsNode.Data() == nil {
		existsNode = jsonParsed.Search("responseSummary", "exists")
	}
	if existsNode.Data() != nil {
		exists, isBool := existsNode.Data().(bool)
		if !isBool {
			return Parsed{}, fmt.Errorf("%w: 'exists' is not a boolean", ErrMalformedResponse)
		}
		parsed.Exists = exists
	}

	if !parsed.Exists {
		return parsed, nil
	}

	resultSetsNode := jsonParsed.Search("resultSets")
	if resultSetsNode.Data() == nil {
		if existsNode.Data() == nil {
			return Parsed{}, fmt.Errorf("%w: neither 'exists' nor 'resultSets' present", ErrMalformedResponse)
		}
		return parsed, nil
	}
	if _, isArray := resultSetsNode.Data().([]interface{}); !isArray {
		return Parsed{}, fmt.Errorf("%w: 'resultSets' is not an array", ErrMalformedResponse)
	}

	children, _ := resultSetsNode.Children()
	parsed.Nodes = make([]NodeOutcome, 0, len(children))
	for i, child := range children {
		outcome := parseNode(child)
		outcome.Index = i
		parsed.Nodes = append(parsed.Nodes, outcome)
	}

	return parsed, nil
}

// ParseVariantResultSet applies the per-result rule to one variant-shaped
// record. The record's own `id` wins over defaultNodeId, and the first
// `results[].id` wins over defaultVariantId.
func ParseVariantResultSet(node *gabs.Container, defaultNodeId string, defaultVariantId string) (results.ResultSet, error) {
	nodeId, err := peerNodeId(node, defaultNodeId)
	if err != nil {
		return results.ResultSet{}, err
	}

	info, err := infoObject(node)
	if err != nil {
		return results.ResultSet{}, err
	}

	rs := results.ResultSet{
		PeerNodeId:   nodeId,
		Associations: []results.Association{},
	}

	rs.VariantId = firstResultId(node)
	if rs.VariantId == "" {
		rs.VariantId = defaultVariantId
	}
	if rs.VariantId == "" {
		return results.ResultSet{}, fmt.Errorf("%w: results[].id", ErrMissingField)
	}

	acData := info.Search("ac").Data()
	if acData == nil {
		return results.ResultSet{}, fmt.Errorf("%w: info.ac", ErrMissingField)
	}
	ac, isNumber := acData.(float64)
	if !isNumber || ac < 0 || ac != math.Trunc(ac) {
		return results.ResultSet{}, fmt.Errorf("%w: info.ac must be a non-negative integer, got %v", ErrInvalidField, acData)
	}
	rs.AlleleCount = int(ac)

	if consequenceData := info.Search("consequence").Data(); consequenceData != nil {
		rawConsequence, isString := consequenceData.(string)
		if !isString {
			return results.ResultSet{}, fmt.Errorf("%w: info.consequence is not a string", ErrInvalidField)
		}
		rs.Consequence = &results.Consequence{
			Raw:   rawConsequence,
			Label: consequence.Translate(rawConsequence),
		}
	}

	if associationsData := info.Search("associations").Data(); associationsData != nil {
		if err := decodeList(associationsData, &rs.Associations); err != nil {
			return results.ResultSet{}, fmt.Errorf("%w: info.associations: %v", ErrInvalidField, err)
		}
	}

	return rs, nil
}

// ParseGeneResultSet yields the gene symbol, the node's variant records and
// its exon list. All exon feature types are retained.
func ParseGeneResultSet(node *gabs.Container, defaultNodeId string) (results.GeneResult, error) {
	nodeId, err := peerNodeId(node, defaultNodeId)
	if err != nil {
		return results.GeneResult{}, err
	}

	info, err := infoObject(node)
	if err != nil {
		return results.GeneResult{}, err
	}

	symbol, isString := info.Search("gene_symbol").Data().(string)
	if !isString || symbol == "" {
		return results.GeneResult{}, fmt.Errorf("%w: info.gene_symbol", ErrMissingField)
	}

	gr := results.GeneResult{
		PeerNodeId: nodeId,
		GeneSymbol: symbol,
		ResultSets: []results.ResultSet{},
		Exons:      []results.Exon{},
	}

	if variantsData := info.Search("variants").Data(); variantsData != nil {
		if _, isArray := variantsData.([]interface{}); !isArray {
			return results.GeneResult{}, fmt.Errorf("%w: info.variants is not an array", ErrInvalidField)
		}
		variants, _ := info.Search("variants").Children()
		for i, variant := range variants {
			rs, err := ParseVariantResultSet(variant, nodeId, "")
			if err != nil {
				return results.GeneResult{}, fmt.Errorf("info.variants[%d]: %w", i, err)
			}
			gr.ResultSets = append(gr.ResultSets, rs)
		}
	}

	if exonsData := info.Search("exons").Data(); exonsData != nil {
		if err := decodeList(exonsData, &gr.Exons); err != nil {
			return results.GeneResult{}, fmt.Errorf("%w: info.exons: %v", ErrInvalidField, err)
		}
		gr.HasExons = true
	}

	return gr, nil
}

func peerNodeId(node *gabs.Container, fallback string) (string, error) {
	if _, isObject := node.Data().(map[string]interface{}); !isObject {
		return "", fmt.Errorf("%w: result set is not an object", ErrInvalidField)
	}

	switch id := node.Search("id").Data().(type) {
	case string:
		if id != "" {
			return id, nil
		}
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64), nil
	case nil:
	default:
		return "", fmt.Errorf("%w: id has unsupported type %T", ErrInvalidField, id)
	}

	if fallback != "" {
		return fallback, nil
	}
	return "", fmt.Errorf("%w: id", ErrMissingField)
}

func infoObject(node *gabs.Container) (*gabs.Container, error) {
	info := node.Search("info")
	if info.Data() == nil {
		return nil, fmt.Errorf("%w: info", ErrMissingField)
	}
	if _, isObject := info.Data().(map[string]interface{}); !isObject {
		return nil, fmt.Errorf("%w: info is not an object", ErrInvalidField)
	}
	return info, nil
}

func firstResultId(node *gabs.Container) string {
	resultsNode := node.Search("results")
	if _, isArray := resultsNode.Data().([]interface{}); !isArray {
		return ""
	}
	children, _ := resultsNode.Children()
	for _, child := range children {
		if id, isString := child.Search("id").Data().(string); isString && id != "" {
			return id
		}
	}
	return ""
}

func decodeList(input interface{}, out interface{}) error {
	if _, isArray := input.([]interface{}); !isArray {
		return fmt.Errorf("expected an array, got %T", input)
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result: out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}
