// Package reporter renders folding results as text, tables, JSON or summaries.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/indentfold/pkg/analysis"
	"github.com/yaklabco/indentfold/pkg/runner"
)

// Compile-time interface checks.
var (
	_ Reporter = (*reporterFacade)(nil)
	_ Reporter = (*TextReporter)(nil)
)

// Reporter formats and writes folding results.
type Reporter interface {
	// Report writes formatted output for the given result.
	// It returns the number of ranges reported and any write errors.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// reporterFacade bridges the Reporter interface to Renderer implementations.
type reporterFacade struct {
	renderer     Renderer
	analysisOpts analysis.Options
}

// Report implements Reporter by analyzing the result and rendering it.
func (f *reporterFacade) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, f.analysisOpts)
	if err := f.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Ranges, nil
}

// newRendererFacade creates a facade wrapping a Renderer.
func newRendererFacade(renderer Renderer, opts Options, includeRanges bool) *reporterFacade {
	return &reporterFacade{
		renderer: renderer,
		analysisOpts: analysis.Options{
			IncludeRanges:     includeRanges,
			IncludeByLanguage: true,
			SortBy:            opts.SortBy,
			SortDesc:          opts.SortBy != analysis.SortByAlpha,
			WorkingDir:        opts.WorkingDir,
			OmitTimestamp:     opts.OmitTimestamp,
		},
	}
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if opts.SortBy != "" && !opts.SortBy.IsValid() {
		return nil, fmt.Errorf("unsupported sort field: %s", opts.SortBy)
	}

	switch format {
	case FormatJSON:
		return newRendererFacade(NewJSONRenderer(opts), opts, true), nil
	case FormatTable:
		return newRendererFacade(NewTableRenderer(opts), opts, false), nil
	case FormatSummary:
		return newRendererFacade(NewSummaryRenderer(opts), opts, false), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
