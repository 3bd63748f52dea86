package diagram

import (
	"regexp"
	"strings"
)

var (
	htmlTagPattern = regexp.MustCompile(`<[^>]*>`)
	labelPattern   = regexp.MustCompile(`(?s)<strong>(.*?)</strong>`)
)

func stripHTML(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, " "))
}

// itemLabel recovers the label from rendered item content: the first
// <strong> block when present, else the whole content with tags removed.
func itemLabel(content string) string {
	if match := labelPattern.FindStringSubmatch(content); match != nil {
		return stripHTML(match[1])
	}

	return stripHTML(content)
}

func tokenSet(s string) map[string]struct{} {
	result := make(map[string]struct{})

	for _, token := range strings.Fields(strings.ToLower(s)) {
		result[token] = struct{}{}
	}

	return result
}

// Jaccard computes word-set similarity between two labels: |A∩B| / |A∪B|
// over lower-cased whitespace tokens. Two empty sets score 0.
func Jaccard(a, b string) float64 {
	aTokens := tokenSet(a)
	bTokens := tokenSet(b)

	if len(aTokens) == 0 || len(bTokens) == 0 {
		return 0
	}

	intersection := 0
	for token := range aTokens {
		if _, ok := bTokens[token]; ok {
			intersection++
		}
	}

	union := len(aTokens) + len(bTokens) - intersection

	return float64(intersection) / float64(union)
}
