package view

import (
	"encoding/json"
	"fmt"
	"strings"
)

type KeywordsKind int

const (
	// KeywordsAbsent: blank field, an empty JSON array, or valid JSON
	// that is not an array of values.
	KeywordsAbsent KeywordsKind = iota
	// KeywordsList: a JSON array of tags.
	KeywordsList
	// KeywordsRaw: a non-JSON freeform string, kept as a single tag.
	KeywordsRaw
)

// Keywords is the decoded meta_keywords field. The backend stores a
// JSON-encoded list but legacy rows hold freeform strings, so both
// representations are preserved behind one tagged value.
type Keywords struct {
	Kind   KeywordsKind
	Values []string
}

// ParseKeywords decodes the raw field once for every renderer.
func ParseKeywords(raw string) Keywords {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Keywords{Kind: KeywordsAbsent}
	}

	if json.Valid([]byte(trimmed)) {
		var items []any
		if err := json.Unmarshal([]byte(trimmed), &items); err != nil || len(items) == 0 {
			return Keywords{Kind: KeywordsAbsent}
		}
		values := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok {
				values = append(values, s)
			} else {
				values = append(values, fmt.Sprint(item))
			}
		}
		return Keywords{Kind: KeywordsList, Values: values}
	}

	return Keywords{Kind: KeywordsRaw, Values: []string{trimmed}}
}

// Tags returns at most max display tags plus the overflow count.
// max <= 0 means no limit.
func (k Keywords) Tags(max int) (tags []string, overflow int) {
	if k.Kind == KeywordsAbsent {
		return nil, 0
	}
	if max <= 0 || len(k.Values) <= max {
		return k.Values, 0
	}
	return k.Values[:max], len(k.Values) - max
}
