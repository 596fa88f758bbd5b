package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/wippyai/wash/errors"
	"github.com/wippyai/wash/header"
	"github.com/wippyai/wash/header/ast"
)

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] FILE...",
		Short: "Parse header files and print their imports and exports",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runParse,
	}
	cmd.Flags().String("format", formatPretty, "output format (pretty|json|msgpack)")
	cmd.Flags().Int("jobs", 0, "files parsed in parallel (default: number of CPUs)")
	return cmd
}

type parseResult struct {
	err  error
	hdr  *ast.Header
	path string
	src  []byte
}

// parseFiles parses every file on its own goroutine, at most jobs at a
// time. Parse failures are recorded per file; read failures abort.
func parseFiles(cmd *cobra.Command, paths []string, jobs int) ([]parseResult, error) {
	results := make([]parseResult, len(paths))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src, err := os.ReadFile(path)
			if err != nil {
				return errors.Load("read "+path, err)
			}
			hdr, err := header.ParseBytes(src)
			results[i] = parseResult{err: err, hdr: hdr, path: path, src: src}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := parseFiles(cmd, args, cfg.Parse.Jobs)
	if err != nil {
		return err
	}

	errPal := newPalette(useColor(cfg.Output.Color, cmd.ErrOrStderr()))
	var docs []document
	failed := 0
	for _, r := range results {
		if r.err != nil {
			writeDiagnostic(cmd.ErrOrStderr(), r.path, r.src, r.err, errPal)
			failed++
			continue
		}
		docs = append(docs, document{Path: r.path, Header: r.hdr})
	}

	if len(docs) > 0 {
		outPal := newPalette(useColor(cfg.Output.Color, cmd.OutOrStdout()))
		if err := writeDocuments(cmd.OutOrStdout(), docs, cfg.Output.Format, outPal); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) failed to parse", failed, len(results))
	}
	return nil
}
