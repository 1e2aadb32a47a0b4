package queryKind

import (
	"fedvlm/api/models/constants"
	"regexp"
	"strings"
)

const (
	Unknown constants.QueryKind = ""

	Variant constants.QueryKind = "variant"
	Gene    constants.QueryKind = "gene"
)

// <chromosome>-<position>-<ref>-<alt>, i.e. 13-42298583-A-G
var variantIdPattern = regexp.MustCompile(`^[^-\s]+-\d+-[^-\s]+-[^-\s]+$`)

func CastToQueryKind(text string) constants.QueryKind {
	switch strings.ToLower(text) {
	case "variant":
		return Variant
	case "gene":
		return Gene
	default:
		return Unknown
	}
}

// LooksLikeVariantId reports whether the (trimmed) term has the shape of a
// hyphen-delimited variant identifier with a numeric position segment.
func LooksLikeVariantId(term string) bool {
	return variantIdPattern.MatchString(strings.TrimSpace(term))
}

// Classify routes a free-text search term: anything that is not shaped like
// a variant identifier is treated as a gene symbol.
func Classify(term string) constants.QueryKind {
	if LooksLikeVariantId(term) {
		return Variant
	}
	return Gene
}

func Normalize(term string) string {
	return strings.ToUpper(strings.TrimSpace(term))
}
