package subtitles

import (
	"regexp"
	"strings"
)

var overrideTagRe = regexp.MustCompile(`\{[^}]+\}`)

var escapeReplacer = strings.NewReplacer(`\N`, " ", `\n`, " ", `\h`, " ")

// CleanText strips ASS/SSA override tags and escape sequences from cue text
// and collapses runs of whitespace, leaving plain dialogue suitable for
// alignment and review.
func CleanText(text string) string {
	text = overrideTagRe.ReplaceAllString(text, "")
	text = escapeReplacer.Replace(text)
	text = strings.ReplaceAll(text, "\n", " ")
	return strings.Join(strings.Fields(text), " ")
}
