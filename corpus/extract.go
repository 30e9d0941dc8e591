package corpus

import (
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/T-towa/tsukiuta-ai/haiku"
	"github.com/T-towa/tsukiuta-ai/model"
)

var (
	// editorial apparatus stripped by CleanText
	annotationRe = regexp.MustCompile(`［[^］]*］`)
	colophonRe   = regexp.MustCompile(`(?s)底本：.*`)
	markRe       = regexp.MustCompile(`[｜※×]`)
	headerRe     = regexp.MustCompile(`(?s)-{10,}.*?-{10,}`)

	// structural skips applied per line
	numberHeadingRe = regexp.MustCompile(`^[一二三四五六七八九十百千万]+[、\s　]`)
	parenNumberRe   = regexp.MustCompile(`^[（(][一二三四五六七八九十0-9]+[）)]`)
)

// CleanText strips Aozora editorial apparatus while keeping ruby: the
// ［…］ annotations, the 底本 colophon, the ｜※× marks and the dashed
// header block.
func CleanText(text string) string {
	text = annotationRe.ReplaceAllString(text, "")
	text = colophonRe.ReplaceAllString(text, "")
	text = markRe.ReplaceAllString(text, "")
	text = headerRe.ReplaceAllString(text, "")
	return text
}

// Extractor pulls candidate lines out of a cleaned text. Classification of
// each line is independent, so it fans out over a small worker pool.
type Extractor struct {
	classifier *haiku.Classifier
	workers    int
}

func NewExtractor(c *haiku.Classifier, workers int) *Extractor {
	if c == nil {
		c = haiku.NewClassifier(nil)
	}
	if workers < 1 {
		workers = 1
	}
	return &Extractor{classifier: c, workers: workers}
}

// Extract returns every candidate line of text, in document order, as
// records attributed to author and title.
func (e *Extractor) Extract(text, author, title string) []model.Haiku {
	lines := candidateLines(text)
	results := make([]*model.Haiku, len(lines))

	jobs := make(chan int, len(lines))
	var wg sync.WaitGroup
	for w := 0; w < e.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = e.examine(lines[idx], author, title)
			}
		}()
	}
	for i := range lines {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	out := make([]model.Haiku, 0, len(lines))
	for _, h := range results {
		if h != nil {
			out = append(out, *h)
		}
	}
	return out
}

// candidateLines applies the structural filters. Paragraphs over 50 runes
// are prose, lines must be short and non-empty, numbered headings are
// skipped.
func candidateLines(text string) []string {
	var out []string
	for _, para := range paragraphs(text) {
		if utf8.RuneCountInString(para) > 50 {
			continue
		}
		for _, line := range strings.Split(para, "\n") {
			if utf8.RuneCountInString(line) > 35 {
				continue
			}
			if numberHeadingRe.MatchString(line) || parenNumberRe.MatchString(line) {
				continue
			}
			out = append(out, line)
		}
	}
	return out
}

// paragraphs groups non-blank lines, splitting on blank lines.
func paragraphs(text string) []string {
	var paras []string
	var cur []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			cur = append(cur, line)
			continue
		}
		if len(cur) > 0 {
			paras = append(paras, strings.Join(cur, "\n"))
			cur = nil
		}
	}
	if len(cur) > 0 {
		paras = append(paras, strings.Join(cur, "\n"))
	}
	return paras
}

func (e *Extractor) examine(line, author, title string) *model.Haiku {
	verdict := e.classifier.Classify(line)
	if !verdict.IsCandidate {
		return nil
	}
	return &model.Haiku{
		Text:         verdict.Text,
		TextWithRuby: line,
		Author:       author,
		Source:       title,
		MoraCount:    verdict.MoraCount,
		Is575:        verdict.Is575,
		Season:       verdict.Season,
		Confidence:   verdict.Confidence,
		HasMoon:      strings.Contains(verdict.Text, "月"),
		HasAutumn:    verdict.Season == model.SeasonAutumn,
	}
}
