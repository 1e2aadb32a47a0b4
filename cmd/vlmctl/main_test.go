package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"fedvlm/api/models/dtos"
	"fedvlm/api/tests/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		useMock, registryPath, asJson = false, "", false
		excludeNodes, excludeAll = "", false
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestSearchCommand(t *testing.T) {
	out, err := execute(t, "search", common.ScenarioVariantId, "--mock", "--exclude", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "gnomAD")
	assert.Contains(t, out, "Epi25")
	assert.NotContains(t, out, "BipEx")
	assert.Contains(t, out, "Missense")
	assert.Contains(t, out, "2 of 3 results shown")
}

func TestSearchCommandExcludeAll(t *testing.T) {
	out, err := execute(t, "search", common.ScenarioVariantId, "--mock", "--exclude-all")
	require.NoError(t, err)
	assert.Contains(t, out, "All 3 results are hidden by the node filter")
}

func TestSearchCommandGeneJson(t *testing.T) {
	out, err := execute(t, "search", "brca1", "--mock", "--json")
	require.NoError(t, err)

	var response dtos.SearchResponseDTO
	require.NoError(t, json.Unmarshal([]byte(out), &response))
	assert.Equal(t, "BRCA1", response.Term)
	assert.Len(t, response.Genes, 2)
}

func TestNodesCommand(t *testing.T) {
	out, err := execute(t, "nodes", "--registry", common.FixturePath("registry.yml"))
	require.NoError(t, err)
	assert.Contains(t, out, "Test Node")
	assert.Contains(t, out, "Broad Institute")
}

func TestWriteSearchTableNoResults(t *testing.T) {
	var out bytes.Buffer
	err := writeSearchTable(&out, dtos.SearchResponseDTO{Kind: "variant", Term: "1-1-A-T", Display: "NoResults"})
	require.NoError(t, err)
	assert.Equal(t, "No variant 1-1-A-T was found.\n", out.String())
}
