package agents

import "strings"

// Provider responses are asked to be pure JSON or a single fenced code block,
// but models wrap output in prose and fences often enough that every consumer
// goes through these extractors.

// extractJSON returns the first balanced top-level JSON object in s, or ""
// when none is found. Brace counting ignores braces inside strings.
func extractJSON(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1]
				}
			}
		}
	}
	return ""
}

// extractFencedCode returns the contents of the first fenced code block,
// tolerating a language tag after the opening fence. Without a fence the
// whole input is returned trimmed.
func extractFencedCode(s string) string {
	open := strings.Index(s, "```")
	if open < 0 {
		return strings.TrimSpace(s)
	}
	rest := s[open+3:]
	// Skip the language tag line ("python", "py", or empty).
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		rest = rest[nl+1:]
	}
	if close := strings.Index(rest, "```"); close >= 0 {
		rest = rest[:close]
	}
	return strings.TrimSpace(rest)
}
