package generate

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome-dict/uni"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// KeywordExtractor pulls content words out of an impression with a
// morphological analyzer, widening the steering beyond the fixed mapping
// table.
type KeywordExtractor struct {
	tok *tokenizer.Tokenizer
}

// NewKeywordExtractor builds an extractor over the named system dictionary,
// "ipa" (the default) or "uni".
func NewKeywordExtractor(dictName string) (*KeywordExtractor, error) {
	var d *dict.Dict
	switch dictName {
	case "", "ipa":
		d = ipa.Dict()
	case "uni":
		d = uni.Dict()
	default:
		return nil, fmt.Errorf("unknown dictionary %q", dictName)
	}
	t, err := tokenizer.New(d, tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("init tokenizer: %w", err)
	}
	return &KeywordExtractor{tok: t}, nil
}

// Extract returns the content words of text: surface and base form of every
// noun, verb and adjective, first seen first.
func (e *KeywordExtractor) Extract(text string) []string {
	if e == nil || e.tok == nil || text == "" {
		return nil
	}
	var out []string
	seen := make(map[string]struct{})
	add := func(w string) {
		w = strings.TrimSpace(w)
		if w == "" {
			return
		}
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	for _, tk := range e.tok.Tokenize(text) {
		if tk.Class == tokenizer.DUMMY {
			continue
		}
		pos := tk.POS()
		if len(pos) == 0 {
			continue
		}
		switch pos[0] {
		case "名詞", "動詞", "形容詞":
			add(tk.Surface)
			if base, ok := tk.BaseForm(); ok {
				add(base)
			}
		}
	}
	return out
}
