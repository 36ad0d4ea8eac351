// internal/models/common.go
package models

// Language codes used across the site. The wire format keeps the literal
// "en"/"vi" keys for compatibility with the upstream API.
const (
	LangEnglish    = "en"
	LangVietnamese = "vi"
)

// SupportedLanguages lists the languages every LocalizedText must carry.
var SupportedLanguages = []string{LangEnglish, LangVietnamese}

// LocalizedText maps a language code to its display string.
type LocalizedText map[string]string

// Get returns the text for lang, falling back to English.
func (t LocalizedText) Get(lang string) string {
	if t == nil {
		return ""
	}
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	return t[LangEnglish]
}

// Clone returns an independent copy with every supported language present.
func (t LocalizedText) Clone() LocalizedText {
	out := make(LocalizedText, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		out[lang] = t[lang]
	}
	return out
}

func emptyLocalizedText() LocalizedText {
	out := make(LocalizedText, len(SupportedLanguages))
	for _, lang := range SupportedLanguages {
		out[lang] = ""
	}
	return out
}
