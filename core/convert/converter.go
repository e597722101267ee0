// Package convert re-renders a pre-highlighted JXR source block with a
// Prism-style highlighter and rebuilds its line-number column.
//
// Conversion is best effort. Every failure leaves the document as it was,
// is logged, and is reported through core.Result; nothing is returned as an
// error to the caller.
package convert

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/gaurav-prasanna/jxrprism/core"
)

// AnchorMode selects how the generated line anchors are named.
type AnchorMode string

const (
	// AnchorsSequential names every line L<n>, discarding the captured anchors.
	AnchorsSequential AnchorMode = "sequential"
	// AnchorsPreserve reuses the captured anchor names and hrefs when there
	// is one per rendered line.
	AnchorsPreserve AnchorMode = "preserve"
)

// DefaultLanguage is the grammar JXR pages are highlighted with.
const DefaultLanguage = "java"

// Options configures a Converter.
type Options struct {
	Language string
	Anchors  AnchorMode
}

// Converter replaces the first source block of a document with a
// re-highlighted, line-numbered block.
type Converter struct {
	engine core.Highlighter
	logger *log.Logger
	opts   Options
}

// New creates a Converter. A nil engine is allowed: Convert then reports
// core.ErrMissingDependency and leaves documents untouched.
func New(engine core.Highlighter, logger *log.Logger, opts Options) *Converter {
	if opts.Language == "" {
		opts.Language = DefaultLanguage
	}
	if opts.Anchors == "" {
		opts.Anchors = AnchorsSequential
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Converter{engine: engine, logger: logger, opts: opts}
}

// Convert runs one conversion over doc.
func (c *Converter) Convert(ctx context.Context, doc core.Document) core.Result {
	if c.engine == nil {
		c.logger.Warn("Prism not loaded, falling back to JXR highlighting")
		return skipped(core.ErrMissingDependency)
	}

	block, ok := doc.FindBlock()
	if !ok {
		c.logger.Warn("No source block found")
		return skipped(core.ErrMissingTarget)
	}
	if block.Processed() {
		c.logger.Debug("Source block already processed")
		return skipped(core.ErrAlreadyProcessed)
	}

	anchors := block.Anchors()
	source := core.NormalizeNewlines(block.Text())
	want := core.CountLines(source)
	if len(anchors) > 0 && len(anchors) != want {
		c.logger.Debug("Line anchors do not match source lines", "anchors", len(anchors), "lines", want)
	}

	el := &core.CodeElement{Language: c.opts.Language, Text: source}
	if err := c.engine.HighlightElement(ctx, el); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return c.fail(source, anchors, ctxErr)
		}
		return c.fail(source, anchors, fmt.Errorf("%w: %w", core.ErrMissingDependency, err))
	}

	converted := &core.ConvertedBlock{
		Language: c.opts.Language,
		Lines:    core.SplitLines(el.InnerHTML),
	}
	result := core.Result{
		Status:  core.StatusConverted,
		Source:  source,
		Anchors: anchors,
		Block:   converted,
	}

	if got := len(converted.Lines); got != want {
		result.Status = core.StatusUnnumbered
		result.Reason = fmt.Errorf("%w: source has %d lines, highlighted output has %d",
			core.ErrLineCountMismatch, want, got)
		c.logger.Warn("Rendering without line numbers", "reason", result.Reason)
	} else {
		converted.Index = c.lineIndex(got, anchors)
	}

	if err := doc.Replace(block, converted); err != nil {
		return c.fail(source, anchors, fmt.Errorf("replacing source block: %w", err))
	}

	c.logger.Info("JXR source converted to Prism highlighting",
		"lines", len(converted.Lines), "numbered", converted.Numbered())
	return result
}

func (c *Converter) fail(source string, anchors []core.Anchor, err error) core.Result {
	c.logger.Warn("Conversion skipped, keeping JXR highlighting", "reason", err)
	r := skipped(err)
	r.Source = source
	r.Anchors = anchors
	return r
}

// lineIndex numbers n lines. In preserve mode the captured anchors supply
// the names when there is exactly one per line.
func (c *Converter) lineIndex(n int, anchors []core.Anchor) []core.LineEntry {
	preserve := c.opts.Anchors == AnchorsPreserve && len(anchors) == n
	if c.opts.Anchors == AnchorsPreserve && !preserve {
		c.logger.Debug("Cannot preserve line anchors, numbering sequentially",
			"anchors", len(anchors), "lines", n)
	}

	index := make([]core.LineEntry, n)
	for i := range index {
		num := i + 1
		id := "L" + strconv.Itoa(num)
		href := "#" + id
		if preserve {
			if name := anchors[i].Name; name != "" {
				id = name
				href = "#" + name
			}
			if anchors[i].Href != "" {
				href = anchors[i].Href
			}
		}
		index[i] = core.LineEntry{
			Number: num,
			Label:  strconv.Itoa(num),
			ID:     id,
			Href:   href,
		}
	}
	return index
}

func skipped(reason error) core.Result {
	return core.Result{Status: core.StatusSkipped, Reason: reason}
}
