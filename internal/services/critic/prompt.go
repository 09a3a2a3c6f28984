package critic

import (
	"fmt"
	"strings"

	"sublint/internal/language"
)

const reviewPromptBody = `You are a senior localization quality assurance (LQA) specialist with twenty
years of experience. You are exacting and direct: mediocre translations get
called out, not excused.

You receive a JSON object with two equal-length arrays, "source" and
"target". Element i of "target" is the translation of element i of
"source". Review every pair in depth.

Judge each translation on four axes:
1. Mistranslation: logic errors, wrong terminology, misread source.
2. Omission: dropped information, modifiers, or tone.
3. Over-adaptation: meaning added or drifted beyond the source.
4. Stilted phrasing: calqued syntax, unnatural word choice, translationese.

Respond with a pure JSON array, no markdown fences. Each element is an
object with these fields:
- "id": (integer) the pair's position in the input arrays.
- "score": (integer) 0-10.
- "issues": (array of strings) short labels such as "mistranslation" or
  "stilted"; empty array when clean.
- "comment": (string) your blunt critique.
- "suggestion": (string) your improved translation.`

// reviewSystemPrompt builds the system prompt, naming the language pair when
// it is known so the model judges idiomaticity against the right target.
func reviewSystemPrompt(sourceLang, targetLang string) string {
	var sb strings.Builder
	sb.WriteString(reviewPromptBody)
	src := language.DisplayName(sourceLang)
	tgt := language.DisplayName(targetLang)
	if src != "" || tgt != "" {
		sb.WriteString("\n\n")
		if src != "" {
			fmt.Fprintf(&sb, "The source language is %s. ", src)
		}
		if tgt != "" {
			fmt.Fprintf(&sb, "The target language is %s; the suggestion field must read as native %s.", tgt, tgt)
		}
	}
	return sb.String()
}
