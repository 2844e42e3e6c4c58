// Package cli wires the stashlog command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/stashlog/internal/config"
)

const annotationSkipConfig = "skip-config"

// Runner carries the actions that need the full application graph.
type Runner struct {
	Serve func(ctx context.Context, cfg config.Config) error
	Seed  func(ctx context.Context, cfg config.Config) (int, error)
	Stdin *os.File
	Now   func() time.Time
}

// NewRootCommand builds the command tree. Running the root without a
// subcommand starts the server.
func NewRootCommand(runner Runner) *cobra.Command {
	if runner.Stdin == nil {
		runner.Stdin = os.Stdin
	}
	if runner.Now == nil {
		runner.Now = time.Now
	}

	var (
		configFile string
		cfg        config.Config
	)

	rootCmd := &cobra.Command{
		Use:           "stashlog",
		Short:         "Personal cannabis and psychedelic product and session tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !commandNeedsConfig(cmd) {
				return nil
			}
			loaded, err := config.Load(configFile)
			if err != nil {
				return err
			}
			cfg = loaded
			printWarnings(cmd.ErrOrStderr(), cfg.Warnings)
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to a YAML config file")

	loadedConfig := func() config.Config { return cfg }
	serveCmd := serveCommand(runner, loadedConfig)
	rootCmd.RunE = serveCmd.RunE

	rootCmd.AddCommand(
		serveCmd,
		seedCommand(runner, loadedConfig),
		hashPassphraseCommand(runner),
		tokenCommand(runner, loadedConfig),
	)
	return rootCmd
}

func commandNeedsConfig(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationSkipConfig] != "true"
}

func printWarnings(out io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}
}

func serveCommand(runner Runner, cfg func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner.Serve == nil {
				return fmt.Errorf("serve is not available")
			}
			return runner.Serve(cmd.Context(), cfg())
		},
	}
}

func seedCommand(runner Runner, cfg func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample products when the catalog is empty",
		RunE: func(cmd *cobra.Command, args []string) error {
			if runner.Seed == nil {
				return fmt.Errorf("seed is not available")
			}
			inserted, err := runner.Seed(cmd.Context(), cfg())
			if err != nil {
				return fmt.Errorf("seed products: %w", err)
			}
			if inserted == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Catalog is not empty, nothing seeded.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d sample products.\n", inserted)
			return nil
		},
	}
}
