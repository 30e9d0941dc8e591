package haiku

import (
	"regexp"
	"strings"

	"github.com/T-towa/tsukiuta-ai/model"
)

// Lexicon bundles the static classification resources: cutting particles,
// season words, and exclusion patterns. Build it once at startup and share it
// read-only; nothing mutates it after construction.
type Lexicon struct {
	kireji     []string
	seasons    []seasonEntry
	exclusions []*regexp.Regexp
}

type seasonEntry struct {
	season model.Season
	words  []string
}

// NewLexicon returns the default lexicon: the classical cutting particles, a
// small representative season-word table, and the prose exclusion patterns.
func NewLexicon() *Lexicon {
	return &Lexicon{
		kireji: []string{"や", "かな", "けり", "よ", "ぞ", "か", "らん", "し", "つ", "ぬ", "へ", "れ", "なり"},
		seasons: []seasonEntry{
			{model.SeasonSpring, []string{"春", "桜", "梅", "鶯", "霞", "陽炎", "蝶", "菜の花", "雛", "彼岸"}},
			{model.SeasonSummer, []string{"夏", "蝉", "蛍", "向日葵", "雷", "夕立", "梅雨", "青葉", "汗", "蚊"}},
			{model.SeasonAutumn, []string{"秋", "月", "紅葉", "虫", "露", "霧", "稲", "萩", "芒", "栗"}},
			{model.SeasonWinter, []string{"冬", "雪", "霜", "氷", "寒", "炬燵", "餅", "年の瀬", "枯", "冴"}},
		},
		exclusions: []*regexp.Regexp{
			// clause punctuation and polite endings mark prose
			regexp.MustCompile(`[。、]が[。、]`),
			regexp.MustCompile(`です|ます|である|だった`),
			// digit runs and chapter numbering mark apparatus
			regexp.MustCompile(`[0-9０-９]{2,}`),
			regexp.MustCompile(`第[一二三四五六七八九十]+`),
			// quoted dialogue and connective phrasing
			regexp.MustCompile(`^[「『]`),
			regexp.MustCompile(`という|ような|などの`),
		},
	}
}

// EndsWithKireji reports whether text ends with any cutting particle.
func (l *Lexicon) EndsWithKireji(text string) bool {
	for _, k := range l.kireji {
		if strings.HasSuffix(text, k) {
			return true
		}
	}
	return false
}

// Season returns the first season, checked in spring, summer, autumn,
// winter order, with a word contained in text, or SeasonNone.
func (l *Lexicon) Season(text string) model.Season {
	for _, e := range l.seasons {
		for _, w := range e.words {
			if strings.Contains(text, w) {
				return e.season
			}
		}
	}
	return model.SeasonNone
}

func (l *Lexicon) excluded(text string) bool {
	for _, re := range l.exclusions {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
