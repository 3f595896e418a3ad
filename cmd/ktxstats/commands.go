package main

import (
	"context"
	"fmt"

	"github.com/mauv0809/qwstats/internal/output"
	"github.com/mauv0809/qwstats/internal/processor"
	"github.com/spf13/cobra"
)

type runFunc func(cmd *cobra.Command, args []string) error

// withMetrics runs fn and writes the metrics textfile afterwards, also when
// fn fails.
func (a *app) withMetrics(fn runFunc) runFunc {
	return func(cmd *cobra.Command, args []string) (err error) {
		defer func() {
			if ferr := a.flushMetrics(); err == nil {
				err = ferr
			}
		}()
		return fn(cmd, args)
	}
}

func (a *app) processor() *processor.Processor {
	return processor.New(a.decoder, a.metrics, processor.WithWorkers(a.cfg.Workers))
}

func newDecodeCmd(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "decode FILE...",
		Short: "Decode stats files and re-encode them as JSON or MessagePack",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.Flags().StringVar(&format, "format", string(output.FormatJSON), "Output format: json, msgpack or text")
	cmd.RunE = a.withMetrics(func(cmd *cobra.Command, args []string) error {
		f, err := output.ParseFormat(format)
		if err != nil {
			return err
		}
		return a.decodeFiles(cmd, args, func(doc any) error {
			return output.Write(cmd.OutOrStdout(), f, doc)
		})
	})
	return cmd
}

func newSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "summary FILE...",
		Short: "Print a per-player overview of each match",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.withMetrics(func(cmd *cobra.Command, args []string) error {
			first := true
			return a.decodeFiles(cmd, args, func(doc any) error {
				if !first {
					fmt.Fprintln(cmd.OutOrStdout())
				}
				first = false
				return output.WriteSummary(cmd.OutOrStdout(), doc)
			})
		}),
	}
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version FILE...",
		Short: "Print the version field of each stats file",
		Args:  cobra.MinimumNArgs(1),
		RunE: a.withMetrics(func(cmd *cobra.Command, args []string) error {
			results, err := a.processor().Versions(commandContext(cmd), args)
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Err == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", r.Path, r.Document)
				}
			}
			return report(cmd, results)
		}),
	}
}

// decodeFiles decodes args with the configured revision and passes each
// document to write in input order. Failed files are reported after the
// successful ones have been written.
func (a *app) decodeFiles(cmd *cobra.Command, args []string, write func(doc any) error) error {
	results, err := a.processor().Decode(commandContext(cmd), args, a.cfg.Revision)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if err := write(r.Document); err != nil {
			return fmt.Errorf("writing %s: %w", r.Path, err)
		}
	}
	return report(cmd, results)
}

func report(cmd *cobra.Command, results []processor.Result) error {
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "error: %s\n", r.Err)
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
