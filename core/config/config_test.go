package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gaurav-prasanna/jxrprism/core/convert"
	"github.com/gaurav-prasanna/jxrprism/core/dom"
	"github.com/gaurav-prasanna/jxrprism/core/inject"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jxrprism.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language != convert.DefaultLanguage {
		t.Errorf("Language = %q", cfg.Language)
	}
	if cfg.Anchors != string(convert.AnchorsSequential) {
		t.Errorf("Anchors = %q", cfg.Anchors)
	}
	if cfg.Selectors.Block != dom.DefaultBlockSelector || cfg.Selectors.Anchor != dom.DefaultAnchorSelector {
		t.Errorf("Selectors = %+v", cfg.Selectors)
	}
	if cfg.Inject.StylesDir != inject.DefaultStylesDir {
		t.Errorf("StylesDir = %q", cfg.Inject.StylesDir)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
anchors: preserve
selectors:
  block: pre.source
inject:
  highlight: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Anchors != "preserve" {
		t.Errorf("Anchors = %q", cfg.Anchors)
	}
	if cfg.Selectors.Block != "pre.source" {
		t.Errorf("Block = %q", cfg.Selectors.Block)
	}
	// Keys absent from the file keep their defaults.
	if cfg.Selectors.Anchor != dom.DefaultAnchorSelector {
		t.Errorf("Anchor = %q", cfg.Selectors.Anchor)
	}
	if cfg.Language != convert.DefaultLanguage {
		t.Errorf("Language = %q", cfg.Language)
	}
	if !cfg.Inject.Highlight || cfg.Inject.StylesDir != inject.DefaultStylesDir {
		t.Errorf("Inject = %+v", cfg.Inject)
	}

	opts := cfg.ConvertOptions()
	if opts.Anchors != convert.AnchorsPreserve || opts.Language != "java" {
		t.Errorf("ConvertOptions = %+v", opts)
	}
	if cfg.DocumentOptions().BlockSelector != "pre.source" {
		t.Errorf("DocumentOptions = %+v", cfg.DocumentOptions())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Language != convert.DefaultLanguage {
		t.Errorf("Language = %q", cfg.Language)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown key", "langauge: java\n", "langauge"},
		{"bad anchor mode", "anchors: numbered\n", "unknown anchor mode"},
		{"empty block selector", "selectors:\n  block: \"\"\n", "block selector"},
		{"empty language", "language: \" \"\n", "language must not be empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error")
	}
}

func TestValidateReportsAll(t *testing.T) {
	cfg := Default()
	cfg.Anchors = "x"
	cfg.Selectors = Selectors{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"anchor mode", "block selector", "anchor selector"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestDump(t *testing.T) {
	data, err := Dump(Default())
	if err != nil {
		t.Fatalf("Dump: %v", err)
	}
	out := string(data)
	for _, want := range []string{"language: java", "anchors: sequential", "styles_dir: terminal-styles"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump missing %q:\n%s", want, out)
		}
	}
}
