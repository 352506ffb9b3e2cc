package view

import "strings"

// Unspecified is the placeholder for absent optional fields.
const Unspecified = "unspecified"

var languageNames = map[string]string{
	"tr": "Turkish",
	"en": "English",
	"ar": "Arabic",
	"he": "Hebrew",
	"fr": "French",
	"de": "German",
	"es": "Spanish",
	"it": "Italian",
	"ru": "Russian",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
}

// LanguageName maps an ISO-ish code to a display name. Unknown codes are
// shown upper-cased as-is; an empty code is "unspecified".
func LanguageName(code string) string {
	if code == "" {
		return Unspecified
	}
	if name, ok := languageNames[code]; ok {
		return name
	}
	return strings.ToUpper(code)
}
