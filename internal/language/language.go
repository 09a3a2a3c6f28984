// Package language normalizes the language identifiers users put in config
// files (codes, full names, BCP-47 tags) into display names for the review
// prompt.
package language

import (
	"strings"

	"golang.org/x/text/cases"
	xlang "golang.org/x/text/language"
)

type entry struct {
	code2   string // ISO 639-1 (2-letter)
	code3   string // ISO 639-2 primary (3-letter)
	alt3    string // ISO 639-2 alternate (e.g. "fre" vs "fra")
	display string
	word    string // full word form
}

var languages = []entry{
	{"en", "eng", "", "English", "english"},
	{"es", "spa", "", "Spanish", "spanish"},
	{"fr", "fra", "fre", "French", "french"},
	{"de", "deu", "ger", "German", "german"},
	{"it", "ita", "", "Italian", "italian"},
	{"pt", "por", "", "Portuguese", "portuguese"},
	{"ja", "jpn", "", "Japanese", "japanese"},
	{"ko", "kor", "", "Korean", "korean"},
	{"zh", "zho", "chi", "Chinese", "chinese"},
	{"ru", "rus", "", "Russian", "russian"},
	{"ar", "ara", "", "Arabic", "arabic"},
	{"hi", "hin", "", "Hindi", "hindi"},
	{"nl", "nld", "dut", "Dutch", "dutch"},
	{"pl", "pol", "", "Polish", "polish"},
	{"sv", "swe", "", "Swedish", "swedish"},
	{"da", "dan", "", "Danish", "danish"},
	{"no", "nor", "", "Norwegian", "norwegian"},
	{"fi", "fin", "", "Finnish", "finnish"},
}

var byKey = func() map[string]*entry {
	m := make(map[string]*entry, len(languages)*4)
	for i := range languages {
		e := &languages[i]
		m[e.code2] = e
		m[e.code3] = e
		if e.alt3 != "" {
			m[e.alt3] = e
		}
		m[e.word] = e
	}
	return m
}()

// DisplayName resolves a user-supplied language identifier to a human
// readable name. Known codes and words hit the table; anything else is
// parsed as a BCP-47 tag and title-cased, and input that parses as nothing
// comes back trimmed and title-cased as given. Empty input stays empty.
func DisplayName(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	key := strings.ToLower(trimmed)
	if e, ok := byKey[key]; ok {
		return e.display
	}
	if tag, err := xlang.Parse(key); err == nil {
		base, conf := tag.Base()
		if conf >= xlang.High {
			if e, ok := byKey[base.String()]; ok {
				return e.display
			}
		}
	}
	return cases.Title(xlang.Und).String(trimmed)
}

// Known reports whether the identifier resolves to a table entry.
func Known(value string) bool {
	key := strings.ToLower(strings.TrimSpace(value))
	if key == "" {
		return false
	}
	if _, ok := byKey[key]; ok {
		return true
	}
	if tag, err := xlang.Parse(key); err == nil {
		base, conf := tag.Base()
		if conf >= xlang.High {
			_, ok := byKey[base.String()]
			return ok
		}
	}
	return false
}
