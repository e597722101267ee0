// Package landing writes the site pages that link to the per-module coverage
// and source cross-reference reports of a multi-module Maven build.
package landing

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/gaurav-prasanna/jxrprism/core/inject"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templatesFS, "templates/landing.html"))

// Report is a kind of per-module report a landing page lists.
type Report struct {
	Name     string
	Index    string // report entry page, relative to a module's site root
	Page     string // landing page file name
	Title    string
	LinkText string
}

var (
	// Coverage lists JaCoCo reports.
	Coverage = Report{
		Name:     "coverage",
		Index:    "jacoco/index.html",
		Page:     "coverage.html",
		Title:    "Code Coverage",
		LinkText: "View Coverage →",
	}
	// Xref lists JXR source cross-references.
	Xref = Report{
		Name:     "xref",
		Index:    "xref/index.html",
		Page:     "source-xref.html",
		Title:    "Source Cross-Reference",
		LinkText: "Browse Source →",
	}
)

// Reports are the landing pages Generate can write.
var Reports = []Report{Coverage, Xref}

// Module is one module of a reactor build.
type Module struct {
	ArtifactID  string
	Description string
	BuildDir    string
}

// Has reports whether the module generated r, looking in staging/ first and
// then site/.
func (m Module) Has(r Report) bool {
	for _, dir := range []string{"staging", "site"} {
		if fi, err := os.Stat(filepath.Join(m.BuildDir, dir, filepath.FromSlash(r.Index))); err == nil && !fi.IsDir() {
			return true
		}
	}
	return false
}

// Render returns the landing page for r listing modules.
func Render(r Report, project string, modules []Module) ([]byte, error) {
	var buf bytes.Buffer
	err := pageTmpl.Execute(&buf, struct {
		Report  Report
		Project string
		Modules []Module
	}{r, project, modules})
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", r.Page, err)
	}
	return buf.Bytes(), nil
}

// OutputDir returns the directory landing pages are written to: the site
// root of buildDir, or a new site/ directory when there is none.
func OutputDir(buildDir string) (string, error) {
	if root, ok := inject.SiteRoot(buildDir); ok {
		return root, nil
	}
	dir := filepath.Join(buildDir, "site")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	return dir, nil
}

// Generator writes landing pages for a project.
type Generator struct {
	// ProjectName overrides the name read from the project descriptor.
	ProjectName string
	Logger      *log.Logger
}

// Generate scans the modules of p and writes one landing page for each
// report at least one module has. Projects that do not aggregate modules
// are skipped. It returns the written paths.
func (g *Generator) Generate(p *Project) ([]string, error) {
	logger := g.Logger
	if logger == nil {
		logger = log.Default()
	}
	if !p.Aggregator() {
		logger.Debug("Skipping landing page generation: not a POM project", "packaging", p.Packaging)
		return nil, nil
	}

	name := g.ProjectName
	if name == "" {
		name = p.Name
	}

	logger.Info("Scanning reactor projects for reports", "count", len(p.Modules))
	found := make(map[string][]Module, len(Reports))
	for _, m := range p.Modules {
		for _, r := range Reports {
			if m.Has(r) {
				logger.Info("Found report", "report", r.Name, "module", m.ArtifactID)
				found[r.Name] = append(found[r.Name], m)
			}
		}
	}

	out, err := OutputDir(p.BuildDir)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, r := range Reports {
		modules := found[r.Name]
		if len(modules) == 0 {
			continue
		}
		data, err := Render(r, name, modules)
		if err != nil {
			return written, err
		}
		path := filepath.Join(out, r.Page)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return written, fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Info("Generated landing page", "path", path)
		written = append(written, path)
	}

	if len(written) == 0 {
		logger.Info("No modules with coverage or xref reports found")
	}
	return written, nil
}
