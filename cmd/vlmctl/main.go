// Command vlmctl queries the federated network from a terminal and prints
// the aggregated, node-filtered answer.
package main

import (
	"fmt"
	"os"

	"fedvlm/api/models"
	"fedvlm/api/models/nodes"
	"fedvlm/api/repositories/network"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/cobra"
)

var (
	useMock      bool
	registryPath string
	asJson       bool
)

var rootCmd = &cobra.Command{
	Use:   "vlmctl",
	Short: "Search the federated variant network",
	Long: `vlmctl submits a gene symbol or variant id to the federated
network and prints every node's answer.

Configuration is read from the same VLM_* environment variables as the API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&useMock, "mock", false, "serve canned payloads instead of calling the network")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "YAML node registry (defaults to VLM_REGISTRY_PATH or the built-in table)")
	rootCmd.PersistentFlags().BoolVar(&asJson, "json", false, "print JSON instead of a table")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(nodesCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*models.Config, error) {
	var cfg models.Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("reading configuration: %w", err)
	}
	if useMock {
		cfg.Network.UseMock = true
	}
	if registryPath != "" {
		cfg.Registry.Path = registryPath
	}
	return &cfg, nil
}

func loadRegistry(cfg *models.Config) (*nodes.Registry, error) {
	if cfg.Registry.Path == "" {
		return nodes.DefaultRegistry(), nil
	}
	return nodes.LoadRegistry(cfg.Registry.Path)
}

func newFetcher(cfg *models.Config) network.Fetcher {
	if cfg.Network.UseMock {
		return network.NewMockFetcher()
	}
	return network.NewHttpFetcher(cfg, nil)
}
