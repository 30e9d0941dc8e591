// Package generate composes tsukiuta, 5-7-5 moon poems, from fixed phrase
// banks steered by keywords found in the user's impression.
package generate

import (
	"log/slog"
	"math/rand"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/T-towa/tsukiuta-ai/kana"
)

// Phrase banks. Every entry counts exactly 5 or 7 units; the composer
// depends on that and the bank test enforces it.
var (
	kamiBank = []string{
		"つきあかり", "あきのよの", "しずかなる", "つきかげが", "よるのにわ",
		"いしだたみ", "かぜすずし", "つきをみて", "こころにも", "ひとりきて",
	}
	nakaBank = []string{
		"こころにしみる", "しずかにてらす", "かがやきわたる", "ひかりをあびて", "そらにうかびて",
		"にわをてらして", "おもいをはせる", "ときをわすれて", "ゆめみるごとく", "よかぜとともに",
	}
	shimoBank = []string{
		"あきのよる", "しずかなり", "うつくしき", "こころあり", "ときながる",
		"かぜぞふく", "つきのかげ", "よるふけて", "おもいあり", "ひとりかな",
	}
)

// keywordPhrases maps impression keywords to phrase fragments that steer
// bank selection.
var keywordPhrases = map[string][]string{
	"綺麗":  {"うつくしき", "かがやきわたる", "こころにしみる"},
	"美しい": {"うつくしき", "かがやきわたる", "みとれけり"},
	"感動":  {"こころにしみる", "おもいをはせる", "むねにひびく"},
	"静か":  {"しずかなる", "しずかなり", "しずかにてらす"},
	"落ち着": {"こころやすらぐ", "おだやかなり", "ときをわすれて"},
	"月":   {"つきあかり", "つきかげが", "つきをみて", "つきのかげ"},
	"光":   {"ひかりをあびて", "かがやきわたる", "てらしけり"},
	"夜":   {"よるのにわ", "あきのよる", "よるふけて"},
	"秋":   {"あきのよの", "あきかぜに", "あきのよる"},
	"風":   {"かぜすずし", "かぜとともに", "かぜぞふく"},
	"庭":   {"にわをてらして", "よるのにわ", "にわにたつ"},
	"石":   {"いしだたみ", "いしにつもる", "いわのうえ"},
	"時":   {"ときながる", "ときをわすれて", "ときすぎて"},
	"今":   {"いまここに", "このときを", "いまをいきる"},
}

// mappingKeys fixes the scan order over keywordPhrases; map iteration order
// would make selection nondeterministic for a given seed.
var mappingKeys = []string{
	"綺麗", "美しい", "感動", "静か", "落ち着",
	"月", "光", "夜", "秋", "風",
	"庭", "石", "時", "今",
}

var fallbackWordRe = regexp.MustCompile(`[ぁ-んァ-ン一-龥]{2,4}`)

// Generator picks phrases deterministically for a given seed, so callers
// can pin outputs.
type Generator struct {
	rng *rand.Rand
	ext *KeywordExtractor
	log *slog.Logger
}

// New builds a Generator. ext may be nil, in which case only the mapping
// table and the fallback scan drive selection.
func New(seed int64, ext *KeywordExtractor, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
		ext: ext,
		log: log,
	}
}

// Keywords returns the impression's steering keywords: mapping keys found in
// the text, the extractor's content words, then raw Japanese word runs,
// first seen first, deduplicated.
func (g *Generator) Keywords(impression string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(k string) {
		if k == "" {
			return
		}
		if _, ok := seen[k]; ok {
			return
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	for _, key := range mappingKeys {
		if strings.Contains(impression, key) {
			add(key)
		}
	}
	if g.ext != nil {
		for _, k := range g.ext.Extract(impression) {
			add(k)
		}
	}
	for _, k := range fallbackWordRe.FindAllString(impression, -1) {
		add(k)
	}
	return out
}

func relatedFragments(keywords []string) []string {
	var related []string
	for _, k := range keywords {
		related = append(related, keywordPhrases[k]...)
	}
	return related
}

// selectPhrase narrows bank to phrases containing any related fragment and
// picks one at random, falling back to the whole bank.
func (g *Generator) selectPhrase(bank, related []string) string {
	var candidates []string
	for _, p := range bank {
		for _, e := range related {
			if strings.Contains(p, e) {
				candidates = append(candidates, p)
				break
			}
		}
	}
	if len(candidates) == 0 {
		candidates = bank
	}
	return candidates[g.rng.Intn(len(candidates))]
}

// withKeyword occasionally places a short non-hiragana keyword into a fixed
// frame. Each instantiation is re-counted before use; a keyword of the wrong
// length fails every frame and composition falls back to bank selection.
func (g *Generator) withKeyword(keywords []string) string {
	var short []string
	for _, k := range keywords {
		n := utf8.RuneCountInString(k)
		if n < 2 || n > 3 {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(k); kana.IsHiragana(r) {
			continue
		}
		short = append(short, k)
	}
	if len(short) == 0 || g.rng.Float64() >= 0.3 {
		return ""
	}
	k := short[g.rng.Intn(len(short))]
	frames := [][3]string{
		{k + "のよる", "しずかにてらす", "つきあかり"},
		{"つきあかり", k + "をてらして", "しずかなり"},
		{k + "みて", "こころおだやか", "あきのよる"},
	}
	for _, f := range frames {
		if kana.Count(f[0]) == 5 && kana.Count(f[1]) == 7 && kana.Count(f[2]) == 5 {
			return f[0] + " " + f[1] + " " + f[2]
		}
	}
	return ""
}

// Compose returns one 5-7-5 poem for the impression, parts joined by
// spaces.
func (g *Generator) Compose(impression string) string {
	keywords := g.Keywords(impression)
	g.log.Debug("composing", "keywords", keywords)
	if poem := g.withKeyword(keywords); poem != "" {
		return poem
	}
	related := relatedFragments(keywords)
	kami := g.selectPhrase(kamiBank, related)
	naka := g.selectPhrase(nakaBank, related)
	shimo := g.selectPhrase(shimoBank, related)
	return kami + " " + naka + " " + shimo
}

// ComposeN returns up to n distinct poems for the impression, bank
// selection only.
func (g *Generator) ComposeN(impression string, n int) []string {
	related := relatedFragments(g.Keywords(impression))
	seen := make(map[string]struct{})
	var out []string
	for attempt := 0; attempt < n*3 && len(out) < n; attempt++ {
		poem := g.selectPhrase(kamiBank, related) + " " +
			g.selectPhrase(nakaBank, related) + " " +
			g.selectPhrase(shimoBank, related)
		if _, ok := seen[poem]; ok {
			continue
		}
		seen[poem] = struct{}{}
		out = append(out, poem)
	}
	return out
}
