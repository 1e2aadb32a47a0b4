package queryKind

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		term string
		want string
	}{
		{"13-42298583-A-G", "variant"},
		{"  13-42298583-A-G  ", "variant"},
		{"X-100-AT-A", "variant"},
		{"chr1-55051215-G-GA", "variant"},
		{"BRCA1", "gene"},
		{"brca1", "gene"},
		{"HLA-DRB1", "gene"},
		{"13-ABC-A-G", "gene"},
		{"13-42298583-A", "gene"},
		{"13-42298583-A-G-T", "gene"},
		{"13--A-G", "gene"},
		{"", "gene"},
	}

	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			assert.Equal(t, tt.want, string(Classify(tt.term)))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "BRCA1", Normalize("  brca1\n"))
	assert.Equal(t, "13-42298583-A-G", Normalize("13-42298583-a-g"))
}

func TestCastToQueryKind(t *testing.T) {
	assert.Equal(t, Variant, CastToQueryKind("VARIANT"))
	assert.Equal(t, Gene, CastToQueryKind("gene"))
	assert.Equal(t, Unknown, CastToQueryKind("sample"))
}
