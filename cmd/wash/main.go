package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wippyai/wash/header"
)

var version = "0.1.0-dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "wash",
		Short:         "Parse and inspect WebAssembly interface headers",
		Long:          `wash reads (header ...) interface files and core WebAssembly modules and prints their function imports and exports.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, _ := cmd.Flags().GetBool("verbose")
			if !verbose {
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return fmt.Errorf("create logger: %w", err)
			}
			header.SetLogger(l)
			return nil
		},
	}

	root.PersistentFlags().String("color", "", "colorize output (auto|on|off)")
	root.PersistentFlags().String("config", "", "path to wash.toml (default: search upward from the working directory)")
	root.PersistentFlags().BoolP("verbose", "v", false, "log parser activity to stderr")

	root.AddCommand(newParseCmd())
	root.AddCommand(newInspectCmd())
	root.AddCommand(newBrowseCmd())
	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := newRootCmd()
	err := root.ExecuteContext(ctx)
	_ = header.Logger().Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
