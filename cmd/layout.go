// File: cmd/layout.go
package cmd

import (
	"fmt"
	"io"
	"os"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/xkilldash9x/boxflow/internal/config"
	"github.com/xkilldash9x/boxflow/internal/layout"
	"github.com/xkilldash9x/boxflow/internal/observability"
	"github.com/xkilldash9x/boxflow/internal/pipeline"
)

// documentOutput is the JSON written for one document.
type documentOutput struct {
	ID     string         `json:"id"`
	Source string         `json:"source"`
	Box    layout.BoxView `json:"box"`
}

func newLayoutCmd() *cobra.Command {
	var (
		viewportWidth  float64
		viewportHeight float64
		selector       string
		outputPath     string
	)

	cmd := &cobra.Command{
		Use:   "layout <file.html>",
		Short: "Lay out an HTML document and print its box tree as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := configFrom(cmd)
			if err != nil {
				return err
			}
			applyViewportFlags(cmd, cfg, viewportWidth, viewportHeight)
			layoutCfg := cfg.Layout()
			if err := layoutCfg.Validate(); err != nil {
				return err
			}

			p := pipeline.New(layoutCfg, observability.GetLogger())
			doc, err := p.LayoutFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			box := doc.Tree
			if selector != "" {
				if box, err = doc.Select(selector); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if outputPath != "" {
				f, err := os.Create(outputPath)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer f.Close()
				out = f
			}
			return writeDocument(out, documentOutput{ID: doc.ID, Source: doc.Source, Box: box.View()})
		},
	}

	cmd.Flags().Float64Var(&viewportWidth, "viewport-width", 0, "viewport width in pixels (overrides layout.viewport_width)")
	cmd.Flags().Float64Var(&viewportHeight, "viewport-height", 0, "viewport height in pixels (overrides layout.viewport_height)")
	cmd.Flags().StringVarP(&selector, "select", "s", "", "XPath expression selecting a single element to print")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write JSON to this file instead of stdout")
	return cmd
}

func applyViewportFlags(cmd *cobra.Command, cfg config.Interface, width, height float64) {
	w, h := cfg.Layout().ViewportWidth, cfg.Layout().ViewportHeight
	if cmd.Flags().Changed("viewport-width") {
		w = width
	}
	if cmd.Flags().Changed("viewport-height") {
		h = height
	}
	cfg.SetViewport(w, h)
}

func writeDocument(w io.Writer, payload documentOutput) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
