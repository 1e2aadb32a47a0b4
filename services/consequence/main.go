// Package consequence turns raw variant consequence codes (VEP-style
// ontology terms and the network's own category codes) into display labels.
package consequence

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var labels = map[string]string{
	// loss-of-function categories
	"pLof":   "pLoF",
	"pLoF":   "pLoF",
	"lof":    "pLoF",
	"lc_lof": "LC pLoF",

	"transcript_ablation":                "Transcript ablation",
	"splice_acceptor_variant":            "Splice acceptor",
	"splice_donor_variant":               "Splice donor",
	"stop_gained":                        "Stop gained",
	"frameshift_variant":                 "Frameshift",
	"stop_lost":                          "Stop lost",
	"start_lost":                         "Start lost",
	"initiator_codon_variant":            "Start lost",
	"transcript_amplification":           "Transcript amplification",
	"inframe_insertion":                  "In-frame insertion",
	"inframe_deletion":                   "In-frame deletion",
	"missense_variant":                   "Missense",
	"protein_altering_variant":           "Protein altering",
	"splice_region_variant":              "Splice region",
	"incomplete_terminal_codon_variant":  "Incomplete terminal codon",
	"start_retained_variant":             "Start retained",
	"stop_retained_variant":              "Stop retained",
	"synonymous_variant":                 "Synonymous",
	"coding_sequence_variant":            "Coding sequence",
	"mature_miRNA_variant":               "Mature miRNA",
	"5_prime_UTR_variant":                "5' UTR variant",
	"3_prime_UTR_variant":                "3' UTR variant",
	"non_coding_transcript_exon_variant": "Non-coding transcript exon",
	"intron_variant":                     "Intron",
	"NMD_transcript_variant":             "NMD transcript",
	"non_coding_transcript_variant":      "Non-coding transcript",
	"upstream_gene_variant":              "Upstream gene",
	"downstream_gene_variant":            "Downstream gene",
	"TFBS_ablation":                      "TFBS ablation",
	"TFBS_amplification":                 "TFBS amplification",
	"TF_binding_site_variant":            "TF binding site",
	"regulatory_region_ablation":         "Regulatory region ablation",
	"regulatory_region_amplification":    "Regulatory region amplification",
	"feature_elongation":                 "Feature elongation",
	"regulatory_region_variant":          "Regulatory region",
	"feature_truncation":                 "Feature truncation",
	"intergenic_variant":                 "Intergenic",
}

// Translate returns the curated label for a known code. Unknown codes fall
// back to Humanize, which is a best-effort heuristic and is not guaranteed
// to produce correct biological terminology.
func Translate(raw string) string {
	if label, ok := labels[raw]; ok {
		return label
	}
	return Humanize(raw)
}

// IsKnown reports whether raw has a curated label.
func IsKnown(raw string) bool {
	_, ok := labels[raw]
	return ok
}

// Humanize splits raw on underscores, upper-cases the first letter of the
// first segment only and joins the segments with single spaces.
func Humanize(raw string) string {
	segments := strings.Split(raw, "_")
	first, size := utf8.DecodeRuneInString(segments[0])
	if first != utf8.RuneError {
		segments[0] = string(unicode.ToUpper(first)) + segments[0][size:]
	}
	return strings.Join(segments, " ")
}
