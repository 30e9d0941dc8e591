package llm

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/T-towa/tsukiuta-ai/haiku"
)

// Source values reported by Compose.
const (
	SourceLLM     = "llm"
	SourcePattern = "pattern"
)

// buildPrompt wraps the impression in an instruction with two worked
// examples.
func buildPrompt(impression string) string {
	var b strings.Builder
	b.WriteString("5-7-5の俳句を作ってください。必ず5音、7音、5音の3つの部分に分けてください。\n\n")
	b.WriteString("例：\n")
	b.WriteString("ふるいけや（5音） かわずとびこむ（7音） みずのおと（5音）\n")
	b.WriteString("つきあかり（5音） いしにしみいる（7音） あきのかぜ（5音）\n\n")
	b.WriteString("感想: " + impression + "\n")
	b.WriteString("俳句:")
	return b.String()
}

var punctRe = regexp.MustCompile(`[。、！？「」『』（）()　 ]`)

// ExtractCandidates pulls poem candidates out of a completion: per line,
// punctuation and spaces dropped, kept when 10 to 25 runes long, at most
// five.
func ExtractCandidates(completion string) []string {
	var out []string
	for _, line := range strings.Split(completion, "\n") {
		cleaned := punctRe.ReplaceAllString(strings.TrimSpace(line), "")
		if n := utf8.RuneCountInString(cleaned); n < 10 || n > 25 {
			continue
		}
		out = append(out, cleaned)
		if len(out) == 5 {
			break
		}
	}
	return out
}

// PatternFallback answers when the model yields nothing usable.
type PatternFallback interface {
	Compose(impression string) string
}

// Composer asks the model for a poem and validates every candidate against
// the 5-7-5 counter.
type Composer struct {
	client   *Client
	fallback PatternFallback
	attempts int
	log      *slog.Logger
}

func NewComposer(client *Client, fallback PatternFallback, attempts int, log *slog.Logger) *Composer {
	if attempts < 1 {
		attempts = 3
	}
	if log == nil {
		log = slog.Default()
	}
	return &Composer{client: client, fallback: fallback, attempts: attempts, log: log}
}

// Compose returns a poem and its source. The first candidate validating as
// 5-7-5 wins and is returned segmented. With none, the first candidate of
// the first successful attempt is kept as a degraded result. With no
// candidates at all, or a dead endpoint, the pattern composer answers.
func (c *Composer) Compose(ctx context.Context, impression string) (poem, source string) {
	if c.client != nil {
		prompt := buildPrompt(impression)
		var leftovers []string
		for attempt := 0; attempt < c.attempts; attempt++ {
			completion, err := c.client.Chat(ctx, prompt)
			if err != nil {
				c.log.Warn("chat attempt failed", "attempt", attempt+1, "error", err)
				break
			}
			candidates := ExtractCandidates(completion)
			for _, cand := range candidates {
				if haiku.Validate575(cand) {
					return haiku.Format575(cand), SourceLLM
				}
			}
			leftovers = append(leftovers, candidates...)
		}
		if len(leftovers) > 0 {
			c.log.Warn("no exact 5-7-5 candidate, keeping first", "candidates", len(leftovers))
			return leftovers[0], SourceLLM
		}
	}
	if c.fallback != nil {
		return c.fallback.Compose(impression), SourcePattern
	}
	return "", SourcePattern
}
