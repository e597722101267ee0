package landing

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/gaurav-prasanna/jxrprism/core/inject"
)

const parentPOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <modelVersion>4.0.0</modelVersion>
  <groupId>com.example</groupId>
  <artifactId>example-parent</artifactId>
  <name>Example Platform</name>
  <packaging>pom</packaging>
  <modules>
    <module>core</module>
    <module>api</module>
  </modules>
</project>`

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func modulePOM(artifactID, description string) string {
	return "<project>\n  <artifactId>" + artifactID + "</artifactId>\n  <description>" +
		description + "</description>\n</project>"
}

// newProject lays out a parent with the core and api modules.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pom.xml"), parentPOM)
	writeFile(t, filepath.Join(dir, "core", "pom.xml"), modulePOM("example-core", "Core library"))
	writeFile(t, filepath.Join(dir, "api", "pom.xml"), modulePOM("example-api", "Public API &amp; client"))
	return dir
}

func generate(t *testing.T, dir, name string) []string {
	t.Helper()
	p, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	g := &Generator{ProjectName: name, Logger: log.New(io.Discard)}
	written, err := g.Generate(p)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	return written
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestLoadProject(t *testing.T) {
	p, err := LoadProject(newProject(t))
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if p.Name != "Example Platform" || !p.Aggregator() {
		t.Errorf("project = %q packaging %q", p.Name, p.Packaging)
	}
	if len(p.Modules) != 2 {
		t.Fatalf("modules = %d, want 2", len(p.Modules))
	}
	if m := p.Modules[1]; m.ArtifactID != "example-api" || m.Description != "Public API & client" {
		t.Errorf("module = %+v", m)
	}
}

func TestLoadProjectNameFallsBackToArtifactID(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pom.xml"), modulePOM("lonely", ""))
	p, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	if p.Name != "lonely" || p.Packaging != "jar" || p.Aggregator() {
		t.Errorf("project = %+v", p)
	}
}

func TestLoadProjectNestedModules(t *testing.T) {
	dir := newProject(t)
	writeFile(t, filepath.Join(dir, "core", "pom.xml"), `<project>
  <artifactId>example-core</artifactId>
  <packaging>pom</packaging>
  <modules><module>engine</module></modules>
</project>`)
	writeFile(t, filepath.Join(dir, "core", "engine", "pom.xml"), modulePOM("example-engine", "Engine"))

	p, err := LoadProject(dir)
	if err != nil {
		t.Fatalf("LoadProject() error = %v", err)
	}
	var ids []string
	for _, m := range p.Modules {
		ids = append(ids, m.ArtifactID)
	}
	if got := strings.Join(ids, ","); got != "example-core,example-engine,example-api" {
		t.Errorf("modules = %s", got)
	}
}

func TestLoadProjectMissingDescriptor(t *testing.T) {
	if _, err := LoadProject(t.TempDir()); err == nil {
		t.Error("LoadProject() without pom.xml should fail")
	}
}

func TestGenerateSkipsNonAggregator(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "pom.xml"), modulePOM("single", "One module"))

	if written := generate(t, dir, ""); len(written) != 0 {
		t.Errorf("written = %v, want none", written)
	}
	if _, err := os.Stat(filepath.Join(dir, "target")); !os.IsNotExist(err) {
		t.Errorf("target created for a jar project: %v", err)
	}
}

func TestGenerateWithoutReportsCreatesSiteDir(t *testing.T) {
	dir := newProject(t)

	if written := generate(t, dir, ""); len(written) != 0 {
		t.Errorf("written = %v, want none", written)
	}
	if fi, err := os.Stat(filepath.Join(dir, "target", "site")); err != nil || !fi.IsDir() {
		t.Errorf("site directory not created: %v", err)
	}
}

func TestGenerateWritesLandingPages(t *testing.T) {
	dir := newProject(t)
	writeFile(t, filepath.Join(dir, "core", "target", "site", "jacoco", "index.html"), "<html></html>")
	writeFile(t, filepath.Join(dir, "core", "target", "staging", "xref", "index.html"), "<html></html>")
	writeFile(t, filepath.Join(dir, "api", "target", "site", "xref", "index.html"), "<html></html>")

	written := generate(t, dir, "")
	if len(written) != 2 {
		t.Fatalf("written = %v, want coverage and xref pages", written)
	}

	site := filepath.Join(dir, "target", "site")
	coverage := readFile(t, filepath.Join(site, "coverage.html"))
	for _, want := range []string{
		"<title>Code Coverage - Example Platform</title>",
		"example-core",
		"Core library",
		`href="./example-core/jacoco/index.html"`,
		"View Coverage →",
	} {
		if !strings.Contains(coverage, want) {
			t.Errorf("coverage.html missing %q", want)
		}
	}
	if strings.Contains(coverage, "example-api") {
		t.Error("coverage.html lists a module without coverage")
	}

	xref := readFile(t, filepath.Join(site, "source-xref.html"))
	for _, want := range []string{
		`href="./example-core/xref/index.html"`,
		`href="./example-api/xref/index.html"`,
		"Public API &amp; client",
		"Browse Source →",
	} {
		if !strings.Contains(xref, want) {
			t.Errorf("source-xref.html missing %q", want)
		}
	}
}

func TestGeneratePrefersStaging(t *testing.T) {
	dir := newProject(t)
	writeFile(t, filepath.Join(dir, "core", "target", "site", "xref", "index.html"), "<html></html>")
	if err := os.MkdirAll(filepath.Join(dir, "target", "staging"), 0o755); err != nil {
		t.Fatal(err)
	}

	written := generate(t, dir, "")
	want := filepath.Join(dir, "target", "staging", "source-xref.html")
	if len(written) != 1 || written[0] != want {
		t.Errorf("written = %v, want %s", written, want)
	}
}

func TestGenerateProjectNameOverride(t *testing.T) {
	dir := newProject(t)
	writeFile(t, filepath.Join(dir, "api", "target", "site", "jacoco", "index.html"), "<html></html>")

	generate(t, dir, "Tools <beta> & Co")
	page := readFile(t, filepath.Join(dir, "target", "site", "coverage.html"))
	if !strings.Contains(page, "Tools &lt;beta&gt; &amp; Co") {
		t.Errorf("project name not escaped:\n%s", page)
	}
	if strings.Contains(page, "Example Platform") {
		t.Error("descriptor name used despite the override")
	}
}

func TestRenderedPagesAreLandingPages(t *testing.T) {
	for _, r := range Reports {
		if got := inject.DetectPageType(r.Page); got != inject.Landing {
			t.Errorf("DetectPageType(%q) = %v, want Landing", r.Page, got)
		}
		data, err := Render(r, "Example", []Module{{ArtifactID: "m", Description: "<script>x</script>"}})
		if err != nil {
			t.Fatalf("Render() error = %v", err)
		}
		if strings.Contains(string(data), "<script>x") {
			t.Errorf("%s: description not escaped", r.Page)
		}
	}
}
