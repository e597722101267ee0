// Package cmd: convert command.
// Orchestrates the pipeline for one page or a whole JXR tree:
// fetch → parse → convert → render → write.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/gaurav-prasanna/jxrprism/core"
	"github.com/gaurav-prasanna/jxrprism/core/config"
	"github.com/gaurav-prasanna/jxrprism/core/convert"
	"github.com/gaurav-prasanna/jxrprism/core/dom"
	"github.com/gaurav-prasanna/jxrprism/core/fetch"
	"github.com/gaurav-prasanna/jxrprism/core/highlight"
	"github.com/gaurav-prasanna/jxrprism/core/output"
	"github.com/gaurav-prasanna/jxrprism/core/render"
	"github.com/gaurav-prasanna/jxrprism/crawl"
)

// Flag variables.
var (
	flagAll            bool
	flagHTML           bool
	flagMarkdown       bool
	flagJSON           bool
	flagPDF            bool
	flagOutputDir      string
	flagLanguage       string
	flagAnchors        string
	flagBlockSelector  string
	flagAnchorSelector string
)

var convertCmd = &cobra.Command{
	Use:   "convert <file|dir|url>",
	Short: "Convert JXR source pages to Prism-style highlighting",
	Long: `Convert loads a JXR source page, replaces its source block with
Prism-style token markup and a line-number column, and writes the result in
the chosen format (converted HTML, Markdown, a JSON report, or a PDF listing).

Examples:
  jxrprism convert target/site/xref/com/example/Foo.html --html
  jxrprism convert target/site/xref --all --json --output_dir ./out
  jxrprism convert https://example.com/xref/index.html --all --markdown
  jxrprism convert Foo.html --html --anchors preserve`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Mode flags.
	convertCmd.Flags().BoolVar(&flagAll, "all", false, "Convert every source page below a directory or site")

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagHTML, "html", false, "Output the converted HTML page")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output a JSON conversion report")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output a PDF listing")

	// Conversion flags; these override the configuration file.
	convertCmd.Flags().StringVar(&flagLanguage, "language", convert.DefaultLanguage, "Grammar used to highlight the source")
	convertCmd.Flags().StringVar(&flagAnchors, "anchors", string(convert.AnchorsSequential), "Line anchor naming: sequential or preserve")
	convertCmd.Flags().StringVar(&flagBlockSelector, "block_selector", dom.DefaultBlockSelector, "CSS selector of the source block")
	convertCmd.Flags().StringVar(&flagAnchorSelector, "anchor_selector", dom.DefaultAnchorSelector, "CSS selector of the line anchors")

	// Output directory.
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	src := args[0]

	if err := validateFlags(); err != nil {
		return err
	}

	cfg := configFromContext(cmd.Context())
	overlayConvertFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	engine := highlight.New()
	if !engine.Supports(cfg.Language) {
		return fmt.Errorf("no grammar for language %q", cfg.Language)
	}

	ctx := cmd.Context()
	logger := loggerFromContext(ctx)
	p := &pipeline{
		fetcher:   fetch.New(),
		converter: convert.New(engine, logger, cfg.ConvertOptions()),
		renderer:  renderer,
		docOpts:   cfg.DocumentOptions(),
		language:  cfg.Language,
		logger:    logger,
	}

	if flagAll {
		return runAll(ctx, src, p, writer)
	}
	return runOnly(ctx, src, p, writer)
}

// overlayConvertFlags copies explicitly set flags over the loaded settings.
func overlayConvertFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("language") {
		cfg.Language = flagLanguage
	}
	if flags.Changed("anchors") {
		cfg.Anchors = flagAnchors
	}
	if flags.Changed("block_selector") {
		cfg.Selectors.Block = flagBlockSelector
	}
	if flags.Changed("anchor_selector") {
		cfg.Selectors.Anchor = flagAnchorSelector
	}
	if flags.Changed("output_dir") {
		cfg.OutputDir = flagOutputDir
	}
}

// pipeline holds the components shared by every page of a run.
type pipeline struct {
	fetcher   core.Fetcher
	converter *convert.Converter
	renderer  core.Renderer
	docOpts   dom.Options
	language  string
	logger    *log.Logger
}

// runOnly processes a single page.
func runOnly(ctx context.Context, src string, p *pipeline, writer *output.Writer) error {
	if !fetch.IsURL(src) {
		if info, err := os.Stat(src); err == nil && info.IsDir() {
			return fmt.Errorf("%s is a directory; use --all to convert every page below it", src)
		}
	}

	data, _, err := p.process(ctx, src)
	if err != nil {
		return err
	}

	path, err := writer.WriteOnly(src, data, p.renderer.Extension())
	if err != nil {
		return err
	}
	p.logger.Info("Written", "path", path)
	return nil
}

// runAll discovers every source page below src and processes each one.
// Failing pages are reported together once the run completes.
func runAll(ctx context.Context, src string, p *pipeline, writer *output.Writer) error {
	sources, root, err := discover(ctx, src, p.fetcher)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	p.logger.Info("Found source pages", "count", len(sources), "root", src)

	start := time.Now()
	var errs error
	var failed int
	for i, s := range sources {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		p.logger.Debug("Processing", "page", fmt.Sprintf("%d/%d", i+1, len(sources)), "source", s)

		data, _, err := p.process(ctx, s)
		if err == nil {
			var path string
			path, err = writer.WriteAll(s, root, data, p.renderer.Extension())
			if err == nil {
				p.logger.Debug("Written", "path", path)
			}
		}
		if err != nil {
			p.logger.Error("Page failed", "source", s, "err", err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", s, err))
			failed++
		}
	}

	p.logger.Info("Done", "pages", len(sources), "failed", failed,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return errs
}

// discover lists the source pages of a site URL or a local directory. root is
// the directory output paths are made relative to; empty for URLs.
func discover(ctx context.Context, src string, fetcher core.Fetcher) ([]string, string, error) {
	if fetch.IsURL(src) {
		urls, err := crawl.DiscoverAll(ctx, src, fetcher)
		return urls, "", err
	}

	info, err := os.Stat(src)
	if err != nil {
		return nil, "", err
	}
	if !info.IsDir() {
		return []string{src}, filepath.Dir(src), nil
	}

	files, err := crawl.DiscoverFiles(src)
	if err != nil {
		return nil, "", err
	}
	var sources []string
	for _, f := range files {
		if crawl.IsXrefSource(f) {
			sources = append(sources, f)
		}
	}
	return sources, src, nil
}

// process runs a single page through the pipeline.
func (p *pipeline) process(ctx context.Context, src string) ([]byte, *core.Page, error) {
	// 1. Fetch
	fetched, err := p.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch: %w", err)
	}

	// 2. Parse
	doc, err := dom.Parse(strings.NewReader(fetched.HTML), p.docOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("parse: %w", err)
	}

	// 3. Convert
	res := p.converter.Convert(ctx, doc)
	if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(res.Reason, ctxErr) {
		return nil, nil, ctxErr
	}

	serialized, err := doc.HTML()
	if err != nil {
		return nil, nil, fmt.Errorf("serialize: %w", err)
	}
	page := &core.Page{
		Meta:    buildMetadata(src, doc, p.language),
		HTML:    serialized,
		Charset: fetched.Charset,
		Result:  res,
	}

	// 4. Render
	data, err := p.renderer.Render(page)
	if err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}
	return data, page, nil
}

// buildMetadata describes a processed page.
func buildMetadata(src string, doc *dom.Document, language string) core.PageMetadata {
	return core.PageMetadata{
		Source:      src,
		Title:       doc.Title(),
		Language:    language,
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// validateFlags checks that exactly one output format is chosen.
func validateFlags() error {
	formatCount := 0
	for _, set := range []bool{flagHTML, flagMarkdown, flagJSON, flagPDF} {
		if set {
			formatCount++
		}
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --html, --markdown, --json, or --pdf")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagHTML:
		return render.NewHTMLRenderer(), nil
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}
