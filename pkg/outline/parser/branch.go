package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TableCode derives a short table identifier from a title cell such as
// "Филиал Юго-Западный": the second word is lower-cased and split on '-',
// and the first letter of each part is kept ("юз"). It reports false when
// the cell has no second word.
func TableCode(title string) (string, bool) {
	words := strings.Fields(title)
	if len(words) < 2 {
		return "", false
	}

	var b strings.Builder
	for _, part := range strings.Split(strings.ToLower(words[1]), "-") {
		r, _ := utf8.DecodeRuneInString(part)
		if r == utf8.RuneError || !unicode.IsLetter(r) {
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}
