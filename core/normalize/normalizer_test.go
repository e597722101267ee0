package normalize

import (
	"strings"
	"testing"
)

func TestCodeBlock(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		language string
		want     []string
	}{
		{"java", "int a = 1;\nreturn a;\n", "java", []string{"```java", "int a = 1;\nreturn a;", "```"}},
		{"escaped", "if (a < b && c > d) {}", "java", []string{"if (a < b && c > d) {}"}},
		{"no language", "plain text", "", []string{"```", "plain text"}},
	}
	n := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := n.CodeBlock(tt.source, tt.language)
			if err != nil {
				t.Fatalf("CodeBlock() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(got, want) {
					t.Errorf("CodeBlock() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	got, err := New().Normalize("<h1>Title</h1><p>Some <strong>bold</strong> text.</p>")
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	for _, want := range []string{"# Title", "**bold**"} {
		if !strings.Contains(got, want) {
			t.Errorf("Normalize() = %q, missing %q", got, want)
		}
	}
}
