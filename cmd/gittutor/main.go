package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kurobon/gittutor/internal/config"
	"github.com/kurobon/gittutor/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "gittutor",
		Short:        "An interactive Git tutorial backed by a simulated repository",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	root.AddCommand(newShellCmd())
	return root
}

func buildLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.LogLevel, cfg.Dev())
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}
