package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wippyai/wash/errors"
	"github.com/wippyai/wash/extract"
	"github.com/wippyai/wash/header/ast"
)

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [flags] MODULE.wasm",
		Short: "Print the header of a core WebAssembly module",
		Long:  `inspect compiles a core WebAssembly module and lists its function imports and exports as a header.`,
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}
	cmd.Flags().String("format", formatPretty, "output format (pretty|json|msgpack)")
	return cmd
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	hdr, err := inspectFile(cmd, path)
	if err != nil {
		return err
	}

	pal := newPalette(useColor(cfg.Output.Color, cmd.OutOrStdout()))
	return writeDocuments(cmd.OutOrStdout(), []document{{Path: path, Header: hdr}}, cfg.Output.Format, pal)
}

func inspectFile(cmd *cobra.Command, path string) (*ast.Header, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read "+path, err)
	}
	return extract.Header(cmd.Context(), data)
}
