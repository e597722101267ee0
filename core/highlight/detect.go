package highlight

import (
	"regexp"
	"strings"
)

var (
	xmlDeclPattern  = regexp.MustCompile(`^<\?xml`)
	pomTagPattern   = regexp.MustCompile(`^<(dependency|plugin|project|groupId|artifactId)`)
	javaPattern     = regexp.MustCompile(`(?m)^(package|import|public\s+class|public\s+interface|@\w+)`)
	shellPattern    = regexp.MustCompile(`(?m)^(\$|#!/bin/(ba)?sh|mvn |npm |git )`)
	jsonOpenPattern = regexp.MustCompile(`^\s*[\[{]`)
	jsonEndPattern  = regexp.MustCompile(`[\]}]\s*$`)
)

// Detect guesses the language of a code block, first from its class names
// and then from its content. It returns "" when nothing matches.
func Detect(content, className string) string {
	if className != "" {
		switch {
		case strings.Contains(className, "java"):
			return "java"
		case strings.Contains(className, "xml"):
			return "xml"
		case strings.Contains(className, "bash"), strings.Contains(className, "shell"):
			return "bash"
		case strings.Contains(className, "json"):
			return "json"
		}
	}

	trimmed := strings.TrimSpace(content)
	switch {
	case xmlDeclPattern.MatchString(trimmed), pomTagPattern.MatchString(trimmed):
		return "xml"
	case javaPattern.MatchString(trimmed):
		return "java"
	case shellPattern.MatchString(trimmed):
		return "bash"
	case jsonOpenPattern.MatchString(trimmed) && jsonEndPattern.MatchString(trimmed):
		return "json"
	}
	return ""
}
