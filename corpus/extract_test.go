package corpus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/T-towa/tsukiuta-ai/model"
)

func TestCleanText(t *testing.T) {
	in := "----------------------------------------\n" +
		"【テキスト中に現れる記号について】\n" +
		"----------------------------------------\n" +
		"\n" +
		"｜月《つき》の句［＃改ページ］\n" +
		"※のしるし\n" +
		"\n" +
		"底本：「テスト句集」テスト書房\n" +
		"ここは消える\n"

	got := CleanText(in)
	assert.NotContains(t, got, "----------")
	assert.NotContains(t, got, "記号について")
	assert.NotContains(t, got, "［＃改ページ］")
	assert.NotContains(t, got, "｜")
	assert.NotContains(t, got, "※")
	assert.NotContains(t, got, "底本")
	assert.NotContains(t, got, "ここは消える")
	// ruby annotations survive cleaning
	assert.Contains(t, got, "月《つき》の句")
}

func TestParagraphs(t *testing.T) {
	got := paragraphs("一句目\n二句目\n\n\n三句目\n")
	require.Len(t, got, 2)
	assert.Equal(t, "一句目\n二句目", got[0])
	assert.Equal(t, "三句目", got[1])
}

const sampleText = "----------------------------------------\n" +
	"【テキスト中に現れる記号について】\n" +
	"----------------------------------------\n" +
	"\n" +
	"俳句集\n" +
	"\n" +
	"名月《めいげつ》や池《いけ》をめぐりて夜《よ》もすがら\n" +
	"\n" +
	"つきあかりいしにしみいるあきのおと\n" +
	"\n" +
	"これは俳句についての長い説明の段落です。俳句とは五七五の十七音から成る定型詩で、季語を含むことが求められます。\n" +
	"\n" +
	"五　月の句\n" +
	"\n" +
	"（三）秋の部\n" +
	"\n" +
	"底本：「テスト句集」テスト書房\n"

func TestExtract(t *testing.T) {
	e := NewExtractor(nil, 4)
	got := e.Extract(CleanText(sampleText), "高浜虚子", "五百句")
	require.Len(t, got, 2)

	// document order survives the worker pool
	assert.Equal(t, "名月や池をめぐりて夜もすがら", got[0].Text)
	assert.Equal(t, "名月《めいげつ》や池《いけ》をめぐりて夜《よ》もすがら", got[0].TextWithRuby)
	assert.Equal(t, "高浜虚子", got[0].Author)
	assert.Equal(t, "五百句", got[0].Source)
	assert.Equal(t, 17, got[0].MoraCount)
	assert.True(t, got[0].Is575)
	assert.Equal(t, model.SeasonAutumn, got[0].Season)
	assert.InDelta(t, 0.9, got[0].Confidence, 1e-9)
	assert.True(t, got[0].HasMoon)
	assert.True(t, got[0].HasAutumn)

	assert.Equal(t, "つきあかりいしにしみいるあきのおと", got[1].Text)
	assert.Equal(t, 17, got[1].MoraCount)
	assert.Equal(t, model.SeasonNone, got[1].Season)
	assert.InDelta(t, 0.8, got[1].Confidence, 1e-9)
	assert.False(t, got[1].HasMoon)
	assert.False(t, got[1].HasAutumn)
}

func TestCandidateLinesFilters(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{"number heading", "五　月の句", 0},
		{"paren number", "（三）秋の部", 0},
		{"arabic paren number", "(12)付録", 0},
		{"too long line", "この行は三十五文字の上限を超えるほどとてもとても長い一行なので抽出の対象から外れます", 0},
		{"short verse", "つきあかりいしにしみいるあきのおと", 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Len(t, candidateLines(c.in), c.want)
		})
	}
}

func TestDedupe(t *testing.T) {
	haikus := []model.Haiku{
		{Text: "名月や池をめぐりて夜もすがら", Author: "芭蕉"},
		{Text: "つきあかりいしにしみいるあきのおと", Author: "子規"},
		{Text: "名月や池をめぐりて夜もすがら", Author: "虚子"},
	}
	got := Dedupe(haikus)
	require.Len(t, got, 2)
	assert.Equal(t, "芭蕉", got[0].Author)
	assert.Equal(t, "子規", got[1].Author)
}

func TestSummarize(t *testing.T) {
	haikus := []model.Haiku{
		{Text: "名月や池をめぐりて夜もすがら", Author: "芭蕉", Is575: true, Season: model.SeasonAutumn, Confidence: 0.9, HasMoon: true, HasAutumn: true},
		{Text: "つきあかりいしにしみいるあきのおと", Author: "子規", Is575: true, Confidence: 0.8},
		{Text: "あきのよのつきはしずかにてらしけり", Author: "子規", Is575: true, Confidence: 0.95},
	}
	s := Summarize(haikus)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Authors)
	assert.Equal(t, 3, s.Is575)
	assert.Equal(t, 1, s.HasMoon)
	assert.Equal(t, map[string]int{"秋": 1}, s.BySeason)
	assert.Equal(t, 2, s.ConfidenceBins["0.9-1.0"])
	assert.Equal(t, 1, s.ConfidenceBins["0.8-0.9"])
	assert.Equal(t, []string{"名月や池をめぐりて夜もすがら", "あきのよのつきはしずかにてらしけり"}, s.Examples)
}
