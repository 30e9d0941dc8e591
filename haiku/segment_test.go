package haiku

import "testing"

func TestSplit575(t *testing.T) {
	tests := []struct {
		text string
		want Segmentation
	}{
		{
			"ふるいけやかわずとびこむみずのおと",
			Segmentation{"ふるいけや", "かわずとびこむ", "みずのおと"},
		},
		{
			"つきあかりいしにしみいるあきのおと",
			Segmentation{"つきあかり", "いしにしみいる", "あきのおと"},
		},
		{
			"あきのよのつきはしずかにてらしけり",
			Segmentation{"あきのよの", "つきはしずかに", "てらしけり"},
		},
		// 空白は分割前に取り除かれる
		{
			"ふるいけや　かわずとびこむ みずのおと",
			Segmentation{"ふるいけや", "かわずとびこむ", "みずのおと"},
		},
		// 拗音を含む境界: きょうのつき で5音
		{
			"きょうのつきしずかにてらすよるのにわ",
			Segmentation{"きょうのつき", "しずかにてらす", "よるのにわ"},
		},
	}
	for _, tt := range tests {
		got := Split575(tt.text)
		if got == nil {
			t.Errorf("Split575(%q) = nil, want %v", tt.text, tt.want)
			continue
		}
		if *got != tt.want {
			t.Errorf("Split575(%q) = %v, want %v", tt.text, *got, tt.want)
		}
	}
}

func TestSplit575RejectsNon17(t *testing.T) {
	inputs := []string{
		"",
		"つきあかり",
		"ちょっとまってよゆうびんきたよ",
		"ふるいけやかわずとびこむみずのお",
		"ふるいけやかわずとびこむみずのおとと",
	}
	for _, text := range inputs {
		if got := Split575(text); got != nil {
			t.Errorf("Split575(%q) = %v, want nil", text, got)
		}
	}
}

func TestSplit575RoundTrip(t *testing.T) {
	inputs := []string{
		"ふるいけやかわずとびこむみずのおと",
		"きょうのつきしずかにてらすよるのにわ",
		"つきあかり　いしにしみいる　あきのおと",
	}
	for _, text := range inputs {
		seg := Split575(text)
		if seg == nil {
			t.Fatalf("Split575(%q) = nil", text)
		}
		stripped := stripSpace(text)
		if joined := seg.Kami + seg.Naka + seg.Shimo; joined != stripped {
			t.Errorf("split of %q does not reconstruct input: %q != %q", text, joined, stripped)
		}
	}
}

func TestSplit575Deterministic(t *testing.T) {
	const text = "ふるいけやかわずとびこむみずのおと"
	first := Split575(text)
	for i := 0; i < 10; i++ {
		if got := Split575(text); *got != *first {
			t.Fatalf("Split575 unstable: %v != %v", got, first)
		}
	}
}

func TestValidate575(t *testing.T) {
	if !Validate575("ふるいけやかわずとびこむみずのおと") {
		t.Error("17-unit line should validate")
	}
	if Validate575("ちょっとまってよゆうびんきたよ") {
		t.Error("14-unit line should not validate")
	}
}

func TestFormat575(t *testing.T) {
	if got, want := Format575("ふるいけやかわずとびこむみずのおと"), "ふるいけや かわずとびこむ みずのおと"; got != want {
		t.Errorf("Format575 = %q, want %q", got, want)
	}
	// 分割できない入力はそのまま返す
	for _, text := range []string{"こんにちは", "", "ちょっとまってよゆうびんきたよ"} {
		if got := Format575(text); got != text {
			t.Errorf("Format575(%q) = %q, want input unchanged", text, got)
		}
	}
}
