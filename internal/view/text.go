package view

import "strings"

// Paragraphs splits article content on blank lines. Blank paragraphs
// are dropped; empty content yields nil.
func Paragraphs(content string) []string {
	var out []string
	for _, p := range strings.Split(content, "\n\n") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// WordCount counts whitespace-separated runs. This is deliberately not
// language-aware; it feeds the reading-time heuristic only.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

const wordsPerMinute = 200

// ReadingTime estimates minutes to read W words: ceil(W/200).
func ReadingTime(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + wordsPerMinute - 1) / wordsPerMinute
}

// Truncate shortens s to n runes, ellipsized.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

// DisplayURL is the fixed-width URL shown in the list; the full URL
// stays the navigation target.
func DisplayURL(u string) string {
	return Truncate(u, 50)
}
