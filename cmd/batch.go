// File: cmd/batch.go
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xkilldash9x/boxflow/internal/observability"
	"github.com/xkilldash9x/boxflow/internal/pipeline"
)

func newBatchCmd() *cobra.Command {
	var (
		concurrency int
		outputDir   string
	)

	cmd := &cobra.Command{
		Use:   "batch <file.html>...",
		Short: "Lay out several HTML documents in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("concurrency") {
				cfg.SetBatchConcurrency(concurrency)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := observability.GetLogger()
			p := pipeline.New(cfg.Layout(), logger)
			docs, err := p.LayoutFiles(cmd.Context(), args, cfg.Batch().Concurrency)
			if err != nil {
				return err
			}

			for _, doc := range docs {
				payload := documentOutput{ID: doc.ID, Source: doc.Source, Box: doc.Tree.View()}
				if outputDir == "" {
					if err := writeDocument(cmd.OutOrStdout(), payload); err != nil {
						return err
					}
					continue
				}
				path := filepath.Join(outputDir, outputName(doc.Source))
				if err := writeDocumentFile(path, payload); err != nil {
					return err
				}
				logger.Info("Wrote layout", zap.String("source", doc.Source), zap.String("path", path))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "documents laid out in parallel (overrides batch.concurrency)")
	cmd.Flags().StringVarP(&outputDir, "output-dir", "o", "", "write one <name>.layout.json per input into this directory")
	return cmd
}

func writeDocumentFile(path string, payload documentOutput) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := writeDocument(f, payload); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func outputName(source string) string {
	base := filepath.Base(source)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".layout.json"
}
