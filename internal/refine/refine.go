// Package refine normalizes raw speech-to-text output before it is
// summarized. The pipeline does not enable it by default; it is wired
// in through configuration as an optional stage.
package refine

import (
	"regexp"
	"strings"
)

// Filler words and phrases carried over from speech that add no
// meaning to a transcript.
var fillerWords = []string{
	"um", "uh", "so", "actually", "basically",
	"i mean", "right", "well", "okay", "hmm", "ah", "er", "oh", "huh",
	"yeah", "alright", "got it", "maybe", "ok", "nice", "i see",
}

// Polite or empty phrases that don't affect meaning. Longer phrases
// come first so alternation matches them before their prefixes.
var politePhrases = []string{
	"thank you very much", "thank you", "please", "kindly",
	"i think", "i guess", "in my opinion",
}

var (
	fillerRe = regexp.MustCompile(`(?i)\b(?:` + joinEscaped(fillerWords) + `)\b`)
	politeRe = regexp.MustCompile(`(?i)\b(?:` + joinEscaped(politePhrases) + `)\b`)
	wordRe   = regexp.MustCompile(`[0-9A-Za-z_']+`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

func joinEscaped(words []string) string {
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}
	return strings.Join(escaped, "|")
}

// Refine cleans a transcript in a fixed order: lowercase, drop filler
// words, drop polite phrases, collapse immediately repeated words,
// then collapse all whitespace runs. Pure and idempotent on already
// refined text.
func Refine(text string) string {
	text = strings.ToLower(text)
	text = fillerRe.ReplaceAllString(text, "")
	text = politeRe.ReplaceAllString(text, "")
	text = collapseRepeats(text)
	text = spaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// collapseRepeats drops each word that immediately repeats the
// previous one across whitespace ("i i i am" -> "i am"), scanning
// left to right without overlap. RE2 has no backreferences, so this is
// a token walk rather than a single regex pass.
func collapseRepeats(s string) string {
	matches := wordRe.FindAllStringIndex(s, -1)
	if len(matches) == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	prevWord := ""
	last := 0
	for _, m := range matches {
		word := s[m[0]:m[1]]
		sep := s[last:m[0]]
		if word == prevWord && sep != "" && strings.TrimSpace(sep) == "" {
			last = m[1]
			continue
		}
		b.WriteString(sep)
		b.WriteString(word)
		prevWord = word
		last = m[1]
	}
	b.WriteString(s[last:])
	return b.String()
}
