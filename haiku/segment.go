// Package haiku segments lines into the 5-7-5 structure and scores arbitrary
// lines for how likely they are to be a well-formed haiku.
package haiku

import (
	"strings"
	"unicode"

	"github.com/T-towa/tsukiuta-ai/kana"
)

// Segmentation is a 5-7-5 split: kami (upper), naka (middle), shimo (lower)
// phrase.
type Segmentation struct {
	Kami  string
	Naka  string
	Shimo string
}

// String returns the three phrases joined by single spaces.
func (s *Segmentation) String() string {
	return s.Kami + " " + s.Naka + " " + s.Shimo
}

// Split575 normalizes text, strips all whitespace and scans rune boundaries
// for a 5/7/5 partition, moving the first boundary outward and the second
// within it. It returns nil unless the whole line counts exactly 17 units.
// Several valid partitions may exist; the scan order is the tie-break, so
// identical input always yields the identical split.
func Split575(text string) *Segmentation {
	s := stripSpace(kana.Normalize(text))
	if kana.Count(s) != 17 {
		return nil
	}
	runes := []rune(s)
	for i := 1; i < len(runes); i++ {
		kami := string(runes[:i])
		if kana.Count(kami) != 5 {
			continue
		}
		for j := i + 1; j < len(runes); j++ {
			naka := string(runes[i:j])
			if kana.Count(naka) != 7 {
				continue
			}
			if shimo := string(runes[j:]); kana.Count(shimo) == 5 {
				return &Segmentation{Kami: kami, Naka: naka, Shimo: shimo}
			}
		}
	}
	return nil
}

// Validate575 reports whether text splits into 5-7-5.
func Validate575(text string) bool {
	return Split575(text) != nil
}

// Format575 returns the space-joined 5-7-5 phrases, or the input unchanged
// when no split exists.
func Format575(text string) string {
	if seg := Split575(text); seg != nil {
		return seg.String()
	}
	return text
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
