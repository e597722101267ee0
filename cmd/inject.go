package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/gaurav-prasanna/jxrprism/core"
	"github.com/gaurav-prasanna/jxrprism/core/charsets"
	"github.com/gaurav-prasanna/jxrprism/core/convert"
	"github.com/gaurav-prasanna/jxrprism/core/decorate"
	"github.com/gaurav-prasanna/jxrprism/core/dom"
	"github.com/gaurav-prasanna/jxrprism/core/highlight"
	"github.com/gaurav-prasanna/jxrprism/core/inject"
	"github.com/gaurav-prasanna/jxrprism/core/output"
	"github.com/gaurav-prasanna/jxrprism/crawl"
)

var (
	flagStylesDir string
	flagHighlight bool
	flagNoConvert bool
	flagSkip      bool
)

var injectCmd = &cobra.Command{
	Use:   "inject <build-dir>",
	Short: "Theme a generated Maven site in place",
	Long: `Inject walks the generated site below a build directory (staging/ when
present, otherwise site/), converts JXR source pages, and adds the theme
stylesheet and script to every page. Pages keep their encoding. Pages
injected by an earlier run are not injected again; a JXR page themed with
--no_convert is converted by a later run without the flag.

Examples:
  jxrprism inject target
  jxrprism inject target --highlight --styles_dir theme`,
	Args: cobra.ExactArgs(1),
	RunE: runInject,
}

func init() {
	rootCmd.AddCommand(injectCmd)

	injectCmd.Flags().StringVar(&flagStylesDir, "styles_dir", inject.DefaultStylesDir, "Theme directory relative to the site root")
	injectCmd.Flags().BoolVar(&flagHighlight, "highlight", false, "Also highlight every other code block")
	injectCmd.Flags().BoolVar(&flagNoConvert, "no_convert", false, "Inject assets without converting JXR pages")
	injectCmd.Flags().BoolVar(&flagSkip, "skip", false, "Do nothing")
}

func runInject(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg := configFromContext(ctx)
	flags := cmd.Flags()
	if flags.Changed("styles_dir") {
		cfg.Inject.StylesDir = flagStylesDir
	}
	if flags.Changed("highlight") {
		cfg.Inject.Highlight = flagHighlight
	}
	if flags.Changed("no_convert") {
		cfg.Inject.NoConvert = flagNoConvert
	}
	if flags.Changed("skip") {
		cfg.Inject.Skip = flagSkip
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Inject.Skip {
		logger.Info("Skipping theme injection")
		return nil
	}

	root, ok := inject.SiteRoot(args[0])
	if !ok {
		root = args[0]
	}
	if info, err := os.Stat(root); err != nil || !info.IsDir() {
		return fmt.Errorf("site directory not found: %s", root)
	}

	engine := highlight.New()
	if !cfg.Inject.NoConvert && !engine.Supports(cfg.Language) {
		return fmt.Errorf("no grammar for language %q", cfg.Language)
	}
	si := &siteInjector{
		injector:  inject.New(cfg.Inject.StylesDir),
		engine:    engine,
		docOpts:   cfg.DocumentOptions(),
		highlight: cfg.Inject.Highlight,
		logger:    logger,
	}
	if !cfg.Inject.NoConvert {
		si.converter = convert.New(engine, logger, cfg.ConvertOptions())
	}

	logger.Info("Injecting theme", "root", root)
	n, err := si.run(ctx, root)
	logger.Info("Done", "pages", n)
	return err
}

// siteInjector themes the pages of one site.
type siteInjector struct {
	injector  *inject.Injector
	converter *convert.Converter // nil leaves JXR pages unconverted
	engine    core.Highlighter
	docOpts   dom.Options
	highlight bool
	logger    *log.Logger
}

// run processes every page below root and returns how many were rewritten.
func (s *siteInjector) run(ctx context.Context, root string) (int, error) {
	pages, err := crawl.DiscoverFiles(root, s.injector.StylesDir)
	if err != nil {
		return 0, err
	}

	var (
		count int
		errs  error
	)
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return count, multierr.Append(errs, err)
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		written, err := s.page(ctx, p, filepath.ToSlash(rel))
		if err != nil {
			s.logger.Error("Page failed", "page", rel, "err", err)
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", rel, err))
			continue
		}
		if written {
			count++
		}
	}
	return count, errs
}

// page themes a single file and rewrites it in its own encoding. A page
// injected by an earlier run is not injected again, but its JXR block is
// still converted when it was left unconverted. It reports whether the file
// was rewritten.
func (s *siteInjector) page(ctx context.Context, path, rel string) (bool, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	text, cs, err := charsets.Decode(raw, "")
	if err != nil {
		return false, err
	}
	injected := inject.Injected(text)

	doc, err := dom.ParseString(text, s.docOpts)
	if err != nil {
		return false, err
	}

	modified := false
	pt := inject.DetectPageType(rel)
	if s.converter != nil && pt == inject.JXR && crawl.IsXrefSource(rel) {
		res := s.converter.Convert(ctx, doc)
		s.logger.Debug("Converted", "page", rel, "status", res.Status, "reason", res.Reason)
		modified = res.Modified()
	}

	if s.highlight {
		decorate.Prepare(doc)
		n, err := decorate.HighlightAll(ctx, doc, s.engine)
		if err != nil {
			s.logger.Warn("Some code blocks kept their markup", "page", rel, "err", err)
		}
		s.logger.Debug("Highlighted", "page", rel, "blocks", n)
		modified = modified || n > 0
	}

	if !injected {
		if _, err := s.injector.Inject(doc, rel); err != nil {
			return false, err
		}
		modified = true
	}
	if !modified {
		s.logger.Debug("Already injected", "page", rel)
		return false, nil
	}

	serialized, err := doc.HTML()
	if err != nil {
		return false, err
	}
	data, err := charsets.Encode(serialized, cs)
	if err != nil {
		return false, err
	}
	if err := output.WriteInPlace(path, data); err != nil {
		return false, err
	}
	s.logger.Debug("Rewritten", "page", rel, "type", pt, "charset", cs)
	return true, nil
}
