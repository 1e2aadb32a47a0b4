package tracks

import (
	ft "fedvlm/api/models/constants/feature-type"
	"fedvlm/api/models/results"
)

// Track is what a gene visualization needs: the span of every exon the node
// reported, and the coding exons drawn inside that span.
type Track struct {
	Start       int            `json:"start"`
	Stop        int            `json:"stop"`
	CodingExons []results.Exon `json:"codingExons"`
}

// CodingExons keeps the coding entries only, in their original order.
func CodingExons(exons []results.Exon) []results.Exon {
	coding := make([]results.Exon, 0, len(exons))
	for _, e := range exons {
		if ft.IsCoding(e.FeatureType) {
			coding = append(coding, e)
		}
	}
	return coding
}

// Build sizes the track from all exons, coding or not. ok is false when
// there is nothing to draw.
func Build(exons []results.Exon) (track Track, ok bool) {
	if len(exons) == 0 {
		return Track{CodingExons: []results.Exon{}}, false
	}

	track.Start, track.Stop = exons[0].Start, exons[0].Stop
	for _, e := range exons[1:] {
		if e.Start < track.Start {
			track.Start = e.Start
		}
		if e.Stop > track.Stop {
			track.Stop = e.Stop
		}
	}
	track.CodingExons = CodingExons(exons)

	return track, true
}
