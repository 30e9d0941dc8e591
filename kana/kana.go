// Package kana implements the phonetic-unit (mora) counting rules shared by
// the rest of the project: half-width to full-width normalization, the global
// youon-subtraction count for plain text, and the positional walk used for
// kana readings.
package kana

// IsYouon reports whether r is a small vowel kana (ゃゅょ / ャュョ) that folds
// into the preceding kana as a single phonetic unit.
func IsYouon(r rune) bool {
	switch r {
	case 'ゃ', 'ゅ', 'ょ', 'ャ', 'ュ', 'ョ':
		return true
	}
	return false
}

// IsHiragana reports whether r is in the ぁ..ん block.
func IsHiragana(r rune) bool {
	return r >= 0x3041 && r <= 0x3093
}

// IsKatakana reports whether r is in the ァ..ン block. The long-vowel mark ー
// and ヴヵヶ sit outside the block; the counting rules treat them separately.
func IsKatakana(r rune) bool {
	return r >= 0x30A1 && r <= 0x30F3
}

// IsKanji reports whether r is a CJK ideograph in the 一..龥 range or the
// iteration mark 々, the character class Aozora ruby annotations attach to.
func IsKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FA5) || r == '々'
}

// hankaku maps each half-width form of the JIS X 0201 katakana block,
// punctuation included, to its full-width equivalent.
var hankaku = map[rune]rune{
	'｡': '。', '｢': '「', '｣': '」', '､': '、', '･': '・',
	'ｦ': 'ヲ', 'ｧ': 'ァ', 'ｨ': 'ィ', 'ｩ': 'ゥ', 'ｪ': 'ェ', 'ｫ': 'ォ',
	'ｬ': 'ャ', 'ｭ': 'ュ', 'ｮ': 'ョ', 'ｯ': 'ッ', 'ｰ': 'ー',
	'ｱ': 'ア', 'ｲ': 'イ', 'ｳ': 'ウ', 'ｴ': 'エ', 'ｵ': 'オ',
	'ｶ': 'カ', 'ｷ': 'キ', 'ｸ': 'ク', 'ｹ': 'ケ', 'ｺ': 'コ',
	'ｻ': 'サ', 'ｼ': 'シ', 'ｽ': 'ス', 'ｾ': 'セ', 'ｿ': 'ソ',
	'ﾀ': 'タ', 'ﾁ': 'チ', 'ﾂ': 'ツ', 'ﾃ': 'テ', 'ﾄ': 'ト',
	'ﾅ': 'ナ', 'ﾆ': 'ニ', 'ﾇ': 'ヌ', 'ﾈ': 'ネ', 'ﾉ': 'ノ',
	'ﾊ': 'ハ', 'ﾋ': 'ヒ', 'ﾌ': 'フ', 'ﾍ': 'ヘ', 'ﾎ': 'ホ',
	'ﾏ': 'マ', 'ﾐ': 'ミ', 'ﾑ': 'ム', 'ﾒ': 'メ', 'ﾓ': 'モ',
	'ﾔ': 'ヤ', 'ﾕ': 'ユ', 'ﾖ': 'ヨ',
	'ﾗ': 'ラ', 'ﾘ': 'リ', 'ﾙ': 'ル', 'ﾚ': 'レ', 'ﾛ': 'ロ',
	'ﾜ': 'ワ', 'ﾝ': 'ン',
}

// dakuten maps a full-width kana to its voiced form for combining a trailing
// half-width ﾞ mark.
var dakuten = map[rune]rune{
	'ウ': 'ヴ',
	'カ': 'ガ', 'キ': 'ギ', 'ク': 'グ', 'ケ': 'ゲ', 'コ': 'ゴ',
	'サ': 'ザ', 'シ': 'ジ', 'ス': 'ズ', 'セ': 'ゼ', 'ソ': 'ゾ',
	'タ': 'ダ', 'チ': 'ヂ', 'ツ': 'ヅ', 'テ': 'デ', 'ト': 'ド',
	'ハ': 'バ', 'ヒ': 'ビ', 'フ': 'ブ', 'ヘ': 'ベ', 'ホ': 'ボ',
	'ワ': 'ヷ', 'ヲ': 'ヺ',
}

var handakuten = map[rune]rune{
	'ハ': 'パ', 'ヒ': 'ピ', 'フ': 'プ', 'ヘ': 'ペ', 'ホ': 'ポ',
}

// Normalize converts half-width katakana (combining trailing voicing marks
// into the preceding kana) and half-width digits to their full-width forms.
// Everything else passes through unchanged, so Normalize is idempotent.
func Normalize(text string) string {
	out := make([]rune, 0, len(text))
	for _, r := range text {
		switch {
		case r >= '0' && r <= '9':
			out = append(out, r+0xFEE0)
		case r == 'ﾞ':
			if n := len(out); n > 0 {
				if v, ok := dakuten[out[n-1]]; ok {
					out[n-1] = v
					continue
				}
			}
			out = append(out, '゛')
		case r == 'ﾟ':
			if n := len(out); n > 0 {
				if v, ok := handakuten[out[n-1]]; ok {
					out[n-1] = v
					continue
				}
			}
			out = append(out, '゜')
		default:
			if z, ok := hankaku[r]; ok {
				out = append(out, z)
			} else {
				out = append(out, r)
			}
		}
	}
	return string(out)
}

// Count returns the phonetic-unit count of text. The input is normalized
// first; the count is the rune count minus every small vowel occurrence,
// wherever it appears. っ, ん and ー already contribute exactly one unit each
// through the raw rune count. This position-free approximation is the rule
// for plain text; CountReading is the positional rule for kana readings.
func Count(text string) int {
	n, youon := 0, 0
	for _, r := range Normalize(text) {
		n++
		if IsYouon(r) {
			youon++
		}
	}
	return n - youon
}

// CountReading counts phonetic units in a kana reading, walking rune by rune.
// A small vowel past the first position contributes nothing, っッんン and the
// long-vowel mark ー contribute one each, and any other kana contributes one
// and skips a small vowel directly after it. Non-kana runes are ignored.
func CountReading(reading string) int {
	runes := []rune(reading)
	count := 0
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case IsYouon(r):
			if i == 0 {
				count++
			}
		case r == 'っ' || r == 'ッ' || r == 'ん' || r == 'ン':
			count++
		case r == 'ー':
			count++
		case IsHiragana(r) || IsKatakana(r):
			count++
			if i+1 < len(runes) && IsYouon(runes[i+1]) {
				i++
			}
		}
	}
	return count
}
