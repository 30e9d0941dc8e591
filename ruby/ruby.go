// Package ruby parses Aozora Bunko style reading annotations (漢字《かな》)
// and counts phonetic units with the annotated readings taken into account.
package ruby

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/T-towa/tsukiuta-ai/kana"
)

// Span pairs a written surface with its phonetic reading. Surface == Reading
// means the text carried no annotation and is read literally.
type Span struct {
	Surface string `json:"surface"`
	Reading string `json:"reading"`
}

// Annotated reports whether the span carries a reading distinct from its
// surface.
func (s Span) Annotated() bool {
	return s.Surface != s.Reading
}

var (
	annotationRe = regexp.MustCompile(`([一-龥々]+)《([ぁ-ん]+)》`)
	bracketRe    = regexp.MustCompile(`《[^》]*》`)
)

// Parse scans text left to right for kanji runs followed by a bracketed
// hiragana reading and returns the gapless span sequence covering the whole
// input. Text between matches becomes unannotated spans, and input with no
// matches yields a single unannotated span equal to the whole input.
// Unterminated or otherwise malformed brackets are not recognized as
// annotations; they pass through inside unannotated spans.
func Parse(text string) []Span {
	var spans []Span
	last := 0
	for _, m := range annotationRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			plain := text[last:m[0]]
			spans = append(spans, Span{Surface: plain, Reading: plain})
		}
		spans = append(spans, Span{Surface: text[m[2]:m[3]], Reading: text[m[4]:m[5]]})
		last = m[1]
	}
	if last < len(text) || len(spans) == 0 {
		plain := text[last:]
		spans = append(spans, Span{Surface: plain, Reading: plain})
	}
	return spans
}

// Strip removes every 《…》 reading group, leaving the display text.
func Strip(text string) string {
	return bracketRe.ReplaceAllString(text, "")
}

// Count sums the phonetic units of a span sequence. Annotated spans count
// their reading with the positional kana walk. Unannotated spans count kana
// with the same positional rule plus a fixed estimate of two units per
// kanji; everything else contributes nothing. The kanji estimate is a
// deliberate approximation, real readings run from one to three or more
// units.
func Count(spans []Span) int {
	total := 0
	for _, sp := range spans {
		if sp.Annotated() {
			total += kana.CountReading(cleanReading(sp.Reading))
		} else {
			total += countMixed(sp.Surface)
		}
	}
	return total
}

// countMixed walks an unannotated span with the positional kana rule,
// charging two units for each kanji it passes.
func countMixed(s string) int {
	runes := []rune(s)
	count := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case kana.IsYouon(r):
			if i == 0 {
				count++
			}
		case r == 'っ' || r == 'ッ' || r == 'ん' || r == 'ン':
			count++
		case r == 'ー':
			count++
		case kana.IsHiragana(r) || kana.IsKatakana(r):
			count++
			if i+1 < len(runes) && kana.IsYouon(runes[i+1]) {
				i++
			}
		case kana.IsKanji(r):
			count += 2
		}
	}
	return count
}

// CountText is the parse-then-count convenience for a raw annotated line.
func CountText(text string) int {
	return Count(Parse(text))
}

func cleanReading(reading string) string {
	return strings.Map(func(r rune) rune {
		if r == '、' || r == '。' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, reading)
}
