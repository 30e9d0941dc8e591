package haiku

import (
	"strings"
	"unicode/utf8"

	"github.com/T-towa/tsukiuta-ai/model"
	"github.com/T-towa/tsukiuta-ai/ruby"
)

// Classifier scores lines against a Lexicon. Safe for concurrent use; it
// holds no mutable state.
type Classifier struct {
	lex *Lexicon
}

// NewClassifier wraps lex, falling back to the default lexicon when nil.
func NewClassifier(lex *Lexicon) *Classifier {
	if lex == nil {
		lex = NewLexicon()
	}
	return &Classifier{lex: lex}
}

// IsCandidate applies the acceptance rules in order: the unit count must be
// near 17 (15..19 inclusive) and no exclusion pattern may match; then any
// positive cue accepts: exactly three whitespace-separated parts, a trailing
// cutting particle or a season word anywhere, a terminal inflection ending,
// or an exact count of 17.
func (c *Classifier) IsCandidate(text string, mora int) bool {
	if mora < 15 || mora > 19 {
		return false
	}
	if c.lex.excluded(text) {
		return false
	}
	if len(strings.Fields(text)) == 3 {
		return true
	}
	if c.lex.EndsWithKireji(text) || c.lex.Season(text) != model.SeasonNone {
		return true
	}
	if endsWithTerminal(text) {
		return true
	}
	return mora == 17
}

// DetectSeason returns the season of the first matching season word, checking
// spring, summer, autumn, winter in that order.
func (c *Classifier) DetectSeason(text string) model.Season {
	return c.lex.Season(text)
}

// Confidence scores text in [0,1]: 0.5 base, +0.3 at exactly 17 units or
// +0.1 inside 16..18, +0.1 for a trailing cutting particle, +0.1 for a
// season word, capped at 1.0.
func (c *Classifier) Confidence(text string, mora int) float64 {
	conf := 0.5
	if mora == 17 {
		conf += 0.3
	} else if mora >= 16 && mora <= 18 {
		conf += 0.1
	}
	if c.lex.EndsWithKireji(text) {
		conf += 0.1
	}
	if c.lex.Season(text) != model.SeasonNone {
		conf += 0.1
	}
	if conf > 1.0 {
		conf = 1.0
	}
	return conf
}

// Classify produces the full verdict for one raw line: ruby-aware unit
// count, display text with annotations stripped, candidate check, season,
// and confidence.
func (c *Classifier) Classify(text string) model.Classification {
	mora := ruby.CountText(text)
	plain := ruby.Strip(text)
	return model.Classification{
		Text:        plain,
		MoraCount:   mora,
		Is575:       mora == 17,
		IsCandidate: c.IsCandidate(plain, mora),
		Season:      c.DetectSeason(plain),
		Confidence:  c.Confidence(plain, mora),
	}
}

// endsWithTerminal reports the 体言止め heuristic: the line ends on one of
// the inflection runes きくしすむる.
func endsWithTerminal(text string) bool {
	r, _ := utf8.DecodeLastRuneInString(text)
	switch r {
	case 'き', 'く', 'し', 'す', 'む', 'る':
		return true
	}
	return false
}
