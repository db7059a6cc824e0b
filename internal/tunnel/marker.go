package tunnel

import "strings"

// Marker delimits the public URL inside the client output.
type Marker struct {
	Prefix string
	Suffix string
}

// Find returns the URL in content, if any. See ExtractURL.
func (m Marker) Find(content string) (string, bool) {
	return ExtractURL(content, m.Prefix, m.Suffix)
}

// ExtractURL returns the span of content starting at the first occurrence of
// prefix and ending after the first occurrence of suffix that follows it.
// A suffix with no prefix before it does not match.
func ExtractURL(content, prefix, suffix string) (string, bool) {
	if prefix == "" || suffix == "" {
		return "", false
	}
	start := strings.Index(content, prefix)
	if start < 0 {
		return "", false
	}
	rest := content[start+len(prefix):]
	end := strings.Index(rest, suffix)
	if end < 0 {
		return "", false
	}
	return content[start : start+len(prefix)+end+len(suffix)], true
}
