package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fedvlm/api/models/constants/phase"
	"fedvlm/api/models/dtos"
	"fedvlm/api/models/results"
	"fedvlm/api/mvc"
	"fedvlm/api/services/filtering"
	"fedvlm/api/services/query"
	"fedvlm/api/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	excludeNodes string
	excludeAll   bool
)

var searchCmd = &cobra.Command{
	Use:   "search <gene-symbol|variant-id>",
	Short: "Query every node for a gene or variant",
	Long: `Classifies the term (chrom-pos-ref-alt is a variant id, anything else a
gene symbol), queries the network once and prints the visible rows.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "List the known peer nodes",
	RunE:  runNodes,
}

func init() {
	searchCmd.Flags().StringVar(&excludeNodes, "exclude", "", "comma separated peer node ids to hide")
	searchCmd.Flags().BoolVar(&excludeAll, "exclude-all", false, "hide every node known to the registry")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	zl := zap.NewNop()
	if cfg.Debug {
		if zl, err = zap.NewDevelopment(); err != nil {
			return err
		}
	}
	defer zl.Sync()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Network.RequestTimeout)
	defer cancel()

	client := query.NewClient(newFetcher(cfg), 1, zl.Sugar())
	orchestrator := query.NewOrchestrator(client)

	key := results.KeyForSearchTerm(args[0])
	fmt.Fprintf(cmd.ErrOrStderr(), "Searching for %s...\n", key.Term)

	state := orchestrator.Run(ctx, key)
	switch state.Phase {
	case phase.Success:
	case phase.Error:
		return fmt.Errorf("%s: %w", mvc.RetryLaterMessage(key), state.Err)
	default:
		return fmt.Errorf("search for %s did not complete: %w", key.Term, ctx.Err())
	}

	excluded := filtering.NewExclusionSet(utils.SplitCommaSeparated(excludeNodes)...)
	if excludeAll {
		excluded = filtering.ExcludeAll(registry)
	}

	response := mvc.BuildSearchResponse(*state.Response, excluded, registry)
	if asJson {
		return writeJson(cmd.OutOrStdout(), response)
	}
	return writeSearchTable(cmd.OutOrStdout(), response)
}

func runNodes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry, err := loadRegistry(cfg)
	if err != nil {
		return err
	}

	nodes := make([]dtos.NodeDTO, 0, len(registry.Ids()))
	for _, peer := range registry.Nodes() {
		nodes = append(nodes, mvc.NodeToDto(peer))
	}
	if asJson {
		return writeJson(cmd.OutOrStdout(), dtos.NodesResponseDTO{Count: len(nodes), Nodes: nodes})
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tHOSTED BY")
	for _, n := range nodes {
		fmt.Fprintf(w, "%s\t%s\t%s\n", n.Id, n.Name, n.HostingInstitutionName)
	}
	return w.Flush()
}

func writeJson(out io.Writer, v interface{}) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeSearchTable(out io.Writer, response dtos.SearchResponseDTO) error {
	switch filtering.DisplayState(response.Display) {
	case filtering.NoResults:
		_, err := fmt.Fprintf(out, "No %s %s was found.\n", response.Kind, response.Term)
		return err
	case filtering.NoUnfilteredResults:
		_, err := fmt.Fprintf(out, "All %d results are hidden by the node filter (%s).\n",
			response.TotalCount, strings.Join(response.ExcludedNodes, ","))
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NODE\tHOSTED BY\tVARIANT\tAC\tCONSEQUENCE\tASSOCIATIONS")
	for _, rs := range response.Results {
		phenotypes := make([]string, 0, len(rs.Associations))
		for _, a := range rs.Associations {
			phenotypes = append(phenotypes, a.PhenotypeDescription)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\n",
			rs.Node.Name, rs.Node.HostingInstitutionName, rs.VariantId, rs.AlleleCount,
			rs.ConsequenceLabel, strings.Join(phenotypes, "; "))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, gene := range response.Genes {
		if gene.Track == nil {
			continue
		}
		fmt.Fprintf(out, "%s track from %s: %d-%d, %d coding exons\n",
			gene.GeneSymbol, gene.Node.Name, gene.Track.Start, gene.Track.Stop, len(gene.Track.CodingExons))
	}
	for _, fault := range response.Faults {
		fmt.Fprintf(out, "warning: skipped result set %d (node %s): %s\n", fault.Index, fault.PeerNodeId, fault.Message)
	}
	fmt.Fprintf(out, "%d of %d results shown\n", response.VisibleCount, response.TotalCount)
	return nil
}
