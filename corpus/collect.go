package corpus

import (
	"context"
	"log/slog"
	"time"

	"github.com/T-towa/tsukiuta-ai/model"
)

// Collector drives the whole harvest: fetch each work, extract candidates,
// filter by confidence and deduplicate.
type Collector struct {
	fetcher   *Fetcher
	extractor *Extractor
	works     []Work
	minConf   float64
	delay     time.Duration
	log       *slog.Logger
}

func NewCollector(f *Fetcher, e *Extractor, works []Work, minConf float64, delay time.Duration, log *slog.Logger) *Collector {
	if log == nil {
		log = slog.Default()
	}
	return &Collector{
		fetcher:   f,
		extractor: e,
		works:     works,
		minConf:   minConf,
		delay:     delay,
		log:       log,
	}
}

// Collect harvests every work in order. Failed downloads are logged and
// skipped. The politeness delay runs between works; cancellation returns
// whatever was harvested so far together with the context error.
func (c *Collector) Collect(ctx context.Context) ([]model.Haiku, error) {
	var all []model.Haiku
	for i, w := range c.works {
		if i > 0 && c.delay > 0 {
			select {
			case <-ctx.Done():
				return Dedupe(all), ctx.Err()
			case <-time.After(c.delay):
			}
		}
		text, err := c.fetcher.FetchText(ctx, w)
		if err != nil {
			if ctx.Err() != nil {
				return Dedupe(all), ctx.Err()
			}
			c.log.Warn("fetch failed", "title", w.Title, "error", err)
			continue
		}
		found := c.extractor.Extract(CleanText(text), w.Author, w.Title)
		kept := 0
		for _, h := range found {
			if h.Confidence >= c.minConf {
				all = append(all, h)
				kept++
			}
		}
		c.log.Info("work harvested", "title", w.Title, "candidates", len(found), "kept", kept)
	}
	return Dedupe(all), nil
}

// Dedupe drops records whose text was already seen, keeping the first.
func Dedupe(haikus []model.Haiku) []model.Haiku {
	seen := make(map[string]struct{}, len(haikus))
	out := make([]model.Haiku, 0, len(haikus))
	for _, h := range haikus {
		if _, ok := seen[h.Text]; ok {
			continue
		}
		seen[h.Text] = struct{}{}
		out = append(out, h)
	}
	return out
}

// Stats summarizes a harvest.
type Stats struct {
	Total          int            `json:"total"`
	Authors        int            `json:"authors"`
	Is575          int            `json:"is_575"`
	HasMoon        int            `json:"has_moon"`
	BySeason       map[string]int `json:"by_season,omitempty"`
	ConfidenceBins map[string]int `json:"confidence_bins,omitempty"`
	Examples       []string       `json:"examples,omitempty"`
}

// Summarize aggregates harvest statistics: author and season breakdowns,
// 5-7-5 share, confidence buckets and a few high-confidence examples.
func Summarize(haikus []model.Haiku) Stats {
	s := Stats{
		BySeason:       make(map[string]int),
		ConfidenceBins: make(map[string]int),
	}
	authors := make(map[string]struct{})
	for _, h := range haikus {
		s.Total++
		authors[h.Author] = struct{}{}
		if h.Is575 {
			s.Is575++
		}
		if h.HasMoon {
			s.HasMoon++
		}
		if h.Season != model.SeasonNone {
			s.BySeason[h.Season.Label()]++
		}
		s.ConfidenceBins[confidenceBin(h.Confidence)]++
		if h.Confidence >= 0.9 && len(s.Examples) < 5 {
			s.Examples = append(s.Examples, h.Text)
		}
	}
	s.Authors = len(authors)
	return s
}

func confidenceBin(c float64) string {
	switch {
	case c >= 0.9:
		return "0.9-1.0"
	case c >= 0.8:
		return "0.8-0.9"
	case c >= 0.7:
		return "0.7-0.8"
	default:
		return "0.6-0.7"
	}
}
