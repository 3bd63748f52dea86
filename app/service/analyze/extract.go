package analyze

import "strings"

// ExtractJSON pulls a JSON document out of a model response, which may wrap
// it in a fenced code block. Tries a "```json" fence first, then a bare "```"
// fence, else returns the trimmed text as-is.
func ExtractJSON(text string) string {
	if body, ok := fencedBlock(text, "```json"); ok {
		return body
	}

	if body, ok := fencedBlock(text, "```"); ok {
		return body
	}

	return strings.TrimSpace(text)
}

func fencedBlock(text, fence string) (string, bool) {
	start := strings.Index(text, fence)
	if start < 0 {
		return "", false
	}
	start += len(fence)

	end := strings.Index(text[start:], "```")
	if end < 0 {
		return "", false
	}

	return strings.TrimSpace(text[start : start+end]), true
}
