package featureType

import (
	"fedvlm/api/models/constants"
	"strings"
)

const (
	CDS  constants.FeatureType = "CDS"
	UTR  constants.FeatureType = "UTR"
	Exon constants.FeatureType = "exon"
)

// IsCoding reports whether an exon descriptor belongs on a coding track.
// Feature types are matched case-insensitively; anything unrecognised is
// treated as non-coding.
func IsCoding(ft constants.FeatureType) bool {
	return strings.EqualFold(string(ft), string(CDS))
}
