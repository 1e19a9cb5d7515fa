// -- cmd/render.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	json "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xkilldash9x/ordinal/api/schemas"
	"github.com/xkilldash9x/ordinal/internal/config"
	"github.com/xkilldash9x/ordinal/internal/observability"
	"github.com/xkilldash9x/ordinal/internal/rendering"
	"github.com/xkilldash9x/ordinal/internal/rendering/layout"
)

// newRenderCmd creates and configures the `render` command. The config
// pointer is populated by the root command's PersistentPreRunE before RunE
// fires.
func newRenderCmd(appConfig *config.Interface) *cobra.Command {
	renderCmd := &cobra.Command{
		Use:   "render [files...]",
		Short: "Parses, styles, and lays out the given HTML documents",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Use the context passed from main.go (signal-aware).
			ctx := cmd.Context()
			logger := observability.GetLogger()
			cfg := *appConfig

			// 1. Apply flag overrides onto the resolved configuration.
			flags := cmd.Flags()
			if flags.Changed("viewport") {
				spec, _ := flags.GetString("viewport")
				width, height, err := parseViewport(spec)
				if err != nil {
					return err
				}
				cfg.SetViewport(width, height)
			}
			if flags.Changed("concurrency") {
				n, _ := flags.GetInt("concurrency")
				if n <= 0 {
					return fmt.Errorf("concurrency must be a positive integer, got %d", n)
				}
				cfg.SetRenderConcurrency(n)
			}
			if noDefaults, _ := flags.GetBool("no-default-styles"); noDefaults {
				cfg.SetUserAgentStyles(false)
			}

			format := cfg.Output().Format
			if jsonOut, _ := flags.GetBool("json"); jsonOut {
				format = "json"
			}
			if treeOut, _ := flags.GetBool("tree"); treeOut {
				format = "tree"
			}
			cfg.SetOutputFormat(format)

			// 2. Populate the job from arguments and final flag values.
			stylesheets, _ := flags.GetStringSlice("css")
			outputPath, _ := flags.GetString("out")
			selector, _ := flags.GetString("selector")

			cfg.SetJob(config.JobConfig{
				Inputs:      args,
				Stylesheets: stylesheets,
				Output:      outputPath,
				Format:      format,
				Selector:    selector,
			})

			return runRender(ctx, cfg, cmd.OutOrStdout(), logger)
		},
	}

	// Input flags
	renderCmd.Flags().StringSliceP("css", "s", nil, "External stylesheet applied to every document. May be repeated.")
	renderCmd.Flags().String("selector", "", "Report only the first box matching this selector.")

	// Render configuration override flags.
	renderCmd.Flags().String("viewport", "", "Viewport size as WIDTHxHEIGHT, e.g. 1280x720. (Overrides config/env)")
	renderCmd.Flags().IntP("concurrency", "j", 0, "Number of documents rendered in parallel. (Overrides config/env)")
	renderCmd.Flags().Bool("no-default-styles", false, "Render with author styles only, skipping the built-in user agent sheet.")

	// Output flags
	renderCmd.Flags().StringP("out", "o", "", "Output file path. If unset, results go to stdout.")
	renderCmd.Flags().Bool("json", false, "Emit reports as a JSON array.")
	renderCmd.Flags().Bool("tree", false, "Dump the DOM and layout trees instead of box reports.")

	renderCmd.MarkFlagsMutuallyExclusive("json", "tree")
	renderCmd.MarkFlagsMutuallyExclusive("tree", "selector")

	return renderCmd
}

// renderedDoc holds one document's rendered output, kept in input order.
type renderedDoc struct {
	report     *schemas.RenderReport
	domDump    string
	layoutDump string
}

// runRender executes the render job described by cfg and writes the results
// to stdout or the configured output file.
func runRender(ctx context.Context, cfg config.Interface, stdout io.Writer, logger *zap.Logger) error {
	job := cfg.Job()

	// 1. Load shared stylesheets once; every document gets the same author CSS.
	var sheets []string
	for _, path := range job.Stylesheets {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading stylesheet %s: %w", path, err)
		}
		sheets = append(sheets, string(data))
	}
	cssSrc := strings.Join(sheets, "\n")

	opts := rendering.OptionsFromConfig(cfg.Render())
	opts.Logger = logger

	logger.Info("Rendering documents",
		zap.Int("documents", len(job.Inputs)),
		zap.Int("stylesheets", len(job.Stylesheets)),
		zap.Float64("viewport_width", cfg.Render().ViewportWidth),
		zap.Float64("viewport_height", cfg.Render().ViewportHeight),
		zap.Int("concurrency", cfg.Render().Concurrency),
	)

	// 2. Render every input in parallel, keeping results in input order.
	docs := make([]renderedDoc, len(job.Inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Render().Concurrency)
	for i, path := range job.Inputs {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading document %s: %w", path, err)
			}
			res, err := rendering.Render(string(data), cssSrc, opts)
			if err != nil {
				return fmt.Errorf("rendering %s: %w", path, err)
			}

			doc := renderedDoc{report: rendering.BuildReport(res, path)}
			if job.Selector != "" {
				geo, err := layout.GeometryFor(res.LayoutRoot, job.Selector)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				doc.report.Boxes = []schemas.BoxGeometry{*geo}
			}
			if job.Format == "tree" {
				doc.domDump = rendering.DumpDOM(res.Document)
				doc.layoutDump = rendering.DumpLayout(res.LayoutRoot)
			}
			docs[i] = doc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Warn("Render aborted gracefully")
			return fmt.Errorf("render aborted by user signal")
		}
		logger.Error("Render failed", zap.Error(err))
		return err
	}

	// 3. Write the results.
	out := stdout
	if job.Output != "" {
		f, err := os.Create(job.Output)
		if err != nil {
			return fmt.Errorf("creating output file %s: %w", job.Output, err)
		}
		defer func() {
			if err := f.Close(); err != nil {
				logger.Error("Failed to close output file", zap.Error(err))
			}
		}()
		out = f
	}

	if err := writeResults(out, docs, cfg.Output()); err != nil {
		return err
	}

	if job.Output != "" {
		logger.Info("Report written", zap.String("path", job.Output))
		fmt.Fprintf(stdout, "Rendered %d document(s) to %s\n", len(docs), job.Output)
	}
	return nil
}

// writeResults serializes the rendered documents in the configured format.
func writeResults(w io.Writer, docs []renderedDoc, out config.OutputConfig) error {
	switch out.Format {
	case "json":
		reports := make([]schemas.RenderReport, len(docs))
		for i, d := range docs {
			reports[i] = *d.report
		}
		var (
			data []byte
			err  error
		)
		if out.Pretty {
			data, err = json.MarshalIndent(reports, "", "  ")
		} else {
			data, err = json.Marshal(reports)
		}
		if err != nil {
			return fmt.Errorf("encoding reports: %w", err)
		}
		data = append(data, '\n')
		_, err = w.Write(data)
		return err

	case "tree":
		for _, d := range docs {
			fmt.Fprintf(w, "== %s ==\n", d.report.Source)
			fmt.Fprint(w, d.domDump)
			fmt.Fprintln(w)
			fmt.Fprint(w, d.layoutDump)
			fmt.Fprintln(w)
		}
		return nil

	default:
		for _, d := range docs {
			writeTextReport(w, d.report)
		}
		return nil
	}
}

// writeTextReport prints the human-readable summary for one document.
func writeTextReport(w io.Writer, r *schemas.RenderReport) {
	fmt.Fprintf(w, "%s\n", r.Source)
	if r.DocumentTitle != "" {
		fmt.Fprintf(w, "  title: %s\n", r.DocumentTitle)
	}
	fmt.Fprintf(w, "  nodes: %d  boxes: %d\n", r.NodeCount, r.BoxCount)
	for _, e := range r.HTMLErrors {
		fmt.Fprintf(w, "  html error: %s\n", e)
	}
	for _, e := range r.CSSErrors {
		fmt.Fprintf(w, "  css error: %s\n", e)
	}
	for _, b := range r.Boxes {
		fmt.Fprintf(w, "  %-28s x=%g y=%g w=%g h=%g\n", b.Selector, b.X, b.Y, b.Width, b.Height)
	}
}

// parseViewport splits a WIDTHxHEIGHT spec like "1280x720" into dimensions.
func parseViewport(spec string) (float64, float64, error) {
	parts := strings.SplitN(strings.ToLower(spec), "x", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("viewport must be WIDTHxHEIGHT, got %q", spec)
	}
	width, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || width <= 0 {
		return 0, 0, fmt.Errorf("viewport width must be a positive number, got %q", parts[0])
	}
	height, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || height <= 0 {
		return 0, 0, fmt.Errorf("viewport height must be a positive number, got %q", parts[1])
	}
	return width, height, nil
}
