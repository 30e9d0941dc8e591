package model

// Season identifies the seasonal tag a line is classified under.
type Season string

const (
	SeasonNone   Season = ""
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
	SeasonWinter Season = "winter"
)

// Label returns the conventional Japanese label for the season, or the empty
// string for SeasonNone.
func (s Season) Label() string {
	switch s {
	case SeasonSpring:
		return "春"
	case SeasonSummer:
		return "夏"
	case SeasonAutumn:
		return "秋"
	case SeasonWinter:
		return "冬"
	}
	return ""
}

// Classification is the classifier's verdict on a single line.
type Classification struct {
	Text        string  `json:"text"`
	MoraCount   int     `json:"mora_count"`
	Is575       bool    `json:"is_575"`
	IsCandidate bool    `json:"is_candidate"`
	Season      Season  `json:"season,omitempty"`
	Confidence  float64 `json:"confidence"`
}

// Haiku is one collected corpus record. Text is the display form with ruby
// stripped; TextWithRuby keeps the annotated original line.
type Haiku struct {
	Text         string  `json:"text"`
	TextWithRuby string  `json:"text_with_ruby"`
	Author       string  `json:"author"`
	Source       string  `json:"source"`
	MoraCount    int     `json:"mora_count"`
	Is575        bool    `json:"is_575"`
	Season       Season  `json:"season,omitempty"`
	Confidence   float64 `json:"confidence"`
	HasMoon      bool    `json:"has_moon"`
	HasAutumn    bool    `json:"has_autumn"`
}
