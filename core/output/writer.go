// Package output handles file naming and writing for jxrprism outputs.
// Single pages get a flat name derived from their source; directory and
// crawl runs mirror the source tree under the output directory.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// WriteOnly writes the output of a single page.
// https://example.com/xref/com/example/A.html → example_com_xref_com_example_A.ext,
// target/site/xref/com/example/A.html → A.ext.
func (w *Writer) WriteOnly(src string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, flatName(src)+ext)
	return path, writeFile(path, data)
}

// WriteAll writes the output of one page of a multi-page run, mirroring the
// URL path for remote sources or the path relative to root for local ones.
// https://site.com/xref/com/A.html → ./xref/com/A.ext
func (w *Writer) WriteAll(src, root string, data []byte, ext string) (string, error) {
	rel, err := relativePath(src, root)
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.OutputDir, rel+ext)
	return path, writeFile(path, data)
}

// WriteInPlace overwrites a local source page.
func WriteInPlace(src string, data []byte) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("stat %s: %w", src, err)
	}
	if err := os.WriteFile(src, data, info.Mode().Perm()); err != nil {
		return fmt.Errorf("writing file %s: %w", src, err)
	}
	return nil
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// relativePath returns the extension-less output path of src.
func relativePath(src, root string) (string, error) {
	if parsed, err := url.Parse(src); err == nil && parsed.Host != "" {
		p := strings.Trim(parsed.Path, "/")
		if p == "" {
			p = "index"
		}
		return strings.TrimSuffix(p, filepath.Ext(p)), nil
	}

	rel, err := filepath.Rel(root, src)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is not below %s", src, root)
	}
	return strings.TrimSuffix(rel, filepath.Ext(rel)), nil
}

// flatName converts a source into a flat filename.
func flatName(src string) string {
	parsed, err := url.Parse(src)
	if err != nil || parsed.Host == "" {
		base := filepath.Base(src)
		return sanitize(strings.TrimSuffix(base, filepath.Ext(base)))
	}

	parts := []string{sanitize(parsed.Host)}
	p := strings.Trim(parsed.Path, "/")
	p = strings.TrimSuffix(p, filepath.Ext(p))
	if p != "" {
		for _, seg := range strings.Split(p, "/") {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces non-alphanumeric characters with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
