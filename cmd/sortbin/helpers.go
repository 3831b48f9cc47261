package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/sortbin/internal/cli"
	"github.com/Veraticus/sortbin/internal/config"
	"github.com/Veraticus/sortbin/internal/demo"
	"github.com/Veraticus/sortbin/internal/gateway"
	"github.com/Veraticus/sortbin/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// newGateway returns the demo service with --demo, otherwise a client for
// the configured remote service.
func newGateway() (service.Gateway, error) {
	if viper.GetBool("demo") {
		slog.Debug("Using demo service")
		return demo.New(), nil
	}

	cfg, err := config.LoadGatewayConfig(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("invalid gateway configuration: %w", err)
	}

	client, err := gateway.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create gateway client: %w", err)
	}

	slog.Debug("Using remote service", "base_url", cfg.BaseURL, "api_prefix", cfg.APIPrefix)
	return client, nil
}

// addOutputFlag registers --output on cmd.
func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "table", "output format (table, json, yaml)")
}

func outputFormat(cmd *cobra.Command) (cli.Format, error) {
	raw, _ := cmd.Flags().GetString("output")
	return cli.ParseFormat(raw)
}
