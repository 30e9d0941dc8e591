package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/T-towa/tsukiuta-ai/config"
	"github.com/T-towa/tsukiuta-ai/corpus"
	"github.com/T-towa/tsukiuta-ai/generate"
	"github.com/T-towa/tsukiuta-ai/haiku"
	"github.com/T-towa/tsukiuta-ai/history"
	"github.com/T-towa/tsukiuta-ai/kana"
	"github.com/T-towa/tsukiuta-ai/llm"
	"github.com/T-towa/tsukiuta-ai/logger"
	"github.com/T-towa/tsukiuta-ai/model"
)

const maxImpressionRunes = 50

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config error:", err)
		return 1
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	if len(args) == 0 {
		usage()
		return 2
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "interactive":
		return cmdInteractive(cfg, log)
	case "generate":
		return cmdGenerate(cfg, log, rest)
	case "collect":
		return cmdCollect(cfg, log, rest)
	case "classify":
		return cmdClassify(rest)
	case "demo":
		return cmdDemo(rest)
	case "help", "-h", "--help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		usage()
		return 2
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `tsukiuta - 感想から5-7-5の月歌を生成するツール

Usage:
  tsukiuta interactive                対話モードで月歌を生成
  tsukiuta generate [flags] <感想>    単発で月歌を生成
  tsukiuta collect [flags]            青空文庫から俳句を収集
  tsukiuta classify <テキスト>        1行を俳句として判定
  tsukiuta demo [flags]               サンプル感想でデモ生成`)
}

// newPatternGenerator wires the bank composer, degrading to mapping-only
// steering when the analyzer dictionary cannot be loaded.
func newPatternGenerator(cfg *config.Config, log *slog.Logger, seed int64) *generate.Generator {
	ext, err := generate.NewKeywordExtractor(cfg.Generate.Dict)
	if err != nil {
		log.Warn("keyword extractor unavailable", "error", err)
		ext = nil
	}
	return generate.New(seed, ext, log)
}

// newComposer returns the model-backed composer, or nil when no endpoint is
// configured.
func newComposer(cfg *config.Config, log *slog.Logger, gen *generate.Generator) *llm.Composer {
	if !cfg.LLMEnabled() {
		return nil
	}
	client := llm.NewClient(llm.Config{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, log)
	return llm.NewComposer(client, gen, cfg.LLM.Attempts, log)
}

func compose(ctx context.Context, composer *llm.Composer, gen *generate.Generator, impression string) (string, string) {
	if composer != nil {
		return composer.Compose(ctx, impression)
	}
	return gen.Compose(impression), llm.SourcePattern
}

func displayPoem(w io.Writer, poem, impression string) {
	line := strings.Repeat("=", 50)
	fmt.Fprintln(w)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w, "🌙 生成された月歌 🌙")
	fmt.Fprintln(w, line)
	fmt.Fprintf(w, "\n%s\n\n", poem)
	parts := strings.Fields(poem)
	counts := make([]string, 0, len(parts))
	for _, p := range parts {
		counts = append(counts, strconv.Itoa(kana.Count(p)))
	}
	if len(counts) > 0 {
		fmt.Fprintf(w, "音数: %s\n", strings.Join(counts, "-"))
	}
	fmt.Fprintf(w, "\n元の感想: %s\n", impression)
	fmt.Fprintln(w, line)
	fmt.Fprintln(w)
}

func cmdInteractive(cfg *config.Config, log *slog.Logger) int {
	gen := newPatternGenerator(cfg, log, time.Now().UnixNano())
	composer := newComposer(cfg, log, gen)
	store := history.NewStore(cfg.History.Path)
	ctx := context.Background()

	fmt.Println("🌙 月歌生成システム 🌙")
	fmt.Println("感想を入力すると、5-7-5形式の月歌を生成します。")
	fmt.Println()
	fmt.Println("コマンド:")
	fmt.Println("  quit/exit/q - 終了")
	fmt.Println("  history - 生成履歴を表示")
	fmt.Println("  save - 履歴を保存")
	fmt.Println("  multi - 複数候補を生成")
	fmt.Println()

	var session []history.Entry
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("感想を入力してください > ")
		if !sc.Scan() {
			break
		}
		input := strings.TrimSpace(sc.Text())

		switch strings.ToLower(input) {
		case "quit", "exit", "q":
			if len(session) > 0 {
				fmt.Print("\n履歴を保存しますか？ (y/n): ")
				if sc.Scan() && strings.EqualFold(strings.TrimSpace(sc.Text()), "y") {
					saveSession(store, session)
				}
			}
			fmt.Println("\n月歌生成システムを終了します。")
			return 0
		case "history":
			showHistory(session)
			continue
		case "save":
			if len(session) == 0 {
				fmt.Println("\n保存する履歴がありません。")
				fmt.Println()
				continue
			}
			saveSession(store, session)
			continue
		case "multi":
			fmt.Print("感想を入力してください（複数候補） > ")
			if !sc.Scan() {
				return 0
			}
			sub := strings.TrimSpace(sc.Text())
			if sub == "" {
				continue
			}
			fmt.Println("\n生成中...")
			results := gen.ComposeN(sub, cfg.Generate.Candidates)
			fmt.Printf("\n=== 生成候補（%d件）===\n", len(results))
			for i, poem := range results {
				fmt.Printf("%d. %s\n", i+1, poem)
			}
			fmt.Println()
			continue
		}

		if input == "" {
			fmt.Println("\n感想を入力してください。")
			fmt.Println()
			continue
		}
		if utf8.RuneCountInString(input) > maxImpressionRunes {
			fmt.Println("\n感想は50文字以内で入力してください。")
			fmt.Println()
			continue
		}

		fmt.Println("\n月歌を生成中...")
		poem, source := compose(ctx, composer, gen, input)
		displayPoem(os.Stdout, poem, input)
		session = append(session, history.NewEntry(input, poem, source))
	}
	return 0
}

func showHistory(entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Println("\nまだ月歌を生成していません。")
		fmt.Println()
		return
	}
	fmt.Printf("\n=== 生成履歴 (%d件) ===\n", len(entries))
	for i, e := range entries {
		fmt.Printf("\n%d. %s\n", i+1, e.Poem)
		fmt.Printf("   感想: %s\n", e.Input)
		fmt.Printf("   時刻: %s\n", e.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Println()
}

func saveSession(store *history.Store, session []history.Entry) {
	if err := store.Save(session); err != nil {
		fmt.Println("履歴の保存に失敗しました:", err)
		return
	}
	fmt.Printf("\n履歴を保存しました: %s\n", store.Path())
}

func cmdGenerate(cfg *config.Config, log *slog.Logger, args []string) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	seed := fs.Int64("seed", time.Now().UnixNano(), "random seed for phrase selection")
	save := fs.Bool("save", false, "append the result to the history file")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	impression := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if impression == "" {
		fmt.Fprintln(os.Stderr, "usage: tsukiuta generate [-seed n] [-save] <感想>")
		return 2
	}
	if utf8.RuneCountInString(impression) > maxImpressionRunes {
		fmt.Fprintln(os.Stderr, "感想は50文字以内で入力してください。")
		return 2
	}

	gen := newPatternGenerator(cfg, log, *seed)
	composer := newComposer(cfg, log, gen)

	fmt.Printf("感想: %s\n", impression)
	fmt.Println("月歌を生成中...")
	poem, source := compose(context.Background(), composer, gen, impression)
	displayPoem(os.Stdout, poem, impression)

	if *save {
		entry := history.NewEntry(impression, poem, source)
		if err := history.NewStore(cfg.History.Path).Append(entry); err != nil {
			log.Warn("history append failed", "error", err)
		}
	}
	return 0
}

func cmdCollect(cfg *config.Config, log *slog.Logger, args []string) int {
	fs := flag.NewFlagSet("collect", flag.ContinueOnError)
	out := fs.String("out", cfg.Corpus.OutputDir, "output directory")
	minConf := fs.Float64("min-confidence", cfg.Corpus.MinConfidence, "confidence cutoff")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fetcher := corpus.NewFetcher(cfg.Corpus.FetchTimeout, log)
	extractor := corpus.NewExtractor(haiku.NewClassifier(nil), cfg.Corpus.Workers)
	collector := corpus.NewCollector(fetcher, extractor, corpus.DefaultWorks, *minConf, cfg.Corpus.FetchDelay, log)

	fmt.Printf("青空文庫から俳句を収集します（対象: %d作品）\n", len(corpus.DefaultWorks))
	haikus, err := collector.Collect(ctx)
	if err != nil {
		log.Warn("collection interrupted", "error", err, "collected", len(haikus))
	}
	if len(haikus) == 0 {
		fmt.Println("俳句が抽出できませんでした。")
		return 1
	}

	store := corpus.NewStore(*out)
	csvPath, err := store.SaveCSV(haikus)
	if err != nil {
		log.Error("save csv failed", "error", err)
		return 1
	}
	jsonPath, err := store.SaveJSON(haikus)
	if err != nil {
		log.Error("save json failed", "error", err)
		return 1
	}
	stats := corpus.Summarize(haikus)
	if err := store.SaveStats(stats); err != nil {
		log.Warn("save stats failed", "error", err)
	}

	printStats(stats)
	fmt.Printf("\nCSV: %s\nJSON: %s\n", csvPath, jsonPath)
	return 0
}

func printStats(s corpus.Stats) {
	fmt.Println("\n=== 収集結果の統計 ===")
	fmt.Printf("総俳句数: %d\n", s.Total)
	fmt.Printf("作者数: %d\n", s.Authors)
	if s.Total > 0 {
		fmt.Printf("5-7-5形式: %d (%.1f%%)\n", s.Is575, float64(s.Is575)/float64(s.Total)*100)
	}
	fmt.Printf("月を含む句: %d\n", s.HasMoon)
	if len(s.BySeason) > 0 {
		fmt.Println("\n季節別:")
		for _, season := range []string{"春", "夏", "秋", "冬"} {
			if n := s.BySeason[season]; n > 0 {
				fmt.Printf("  %s: %d句\n", season, n)
			}
		}
	}
	if len(s.ConfidenceBins) > 0 {
		fmt.Println("\n信頼度分布:")
		for _, bin := range []string{"0.6-0.7", "0.7-0.8", "0.8-0.9", "0.9-1.0"} {
			if n := s.ConfidenceBins[bin]; n > 0 {
				fmt.Printf("  %s: %d句\n", bin, n)
			}
		}
	}
	if len(s.Examples) > 0 {
		fmt.Println("\n高品質な俳句の例（信頼度0.9以上）:")
		for _, ex := range s.Examples {
			fmt.Printf("  %s\n", ex)
		}
	}
}

func cmdClassify(args []string) int {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		fmt.Fprintln(os.Stderr, "usage: tsukiuta classify <テキスト>")
		return 2
	}
	verdict := haiku.NewClassifier(nil).Classify(text)
	fmt.Printf("テキスト: %s\n", verdict.Text)
	fmt.Printf("音数: %d\n", verdict.MoraCount)
	fmt.Printf("俳句候補: %v\n", verdict.IsCandidate)
	if verdict.Season != model.SeasonNone {
		fmt.Printf("季節: %s\n", verdict.Season.Label())
	}
	fmt.Printf("信頼度: %.2f\n", verdict.Confidence)
	if seg := haiku.Split575(verdict.Text); seg != nil {
		fmt.Printf("分割: %s(%d) / %s(%d) / %s(%d)\n",
			seg.Kami, kana.Count(seg.Kami),
			seg.Naka, kana.Count(seg.Naka),
			seg.Shimo, kana.Count(seg.Shimo))
	}
	return 0
}

func cmdDemo(args []string) int {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	count := fs.Int("count", 5, "number of samples")
	seed := fs.Int64("seed", time.Now().UnixNano(), "random seed")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	impressions := []string{
		"月がとても綺麗で感動しました",
		"静かな夜に心が落ち着きます",
		"幻想的な光景に包まれています",
		"秋の風が心地よいです",
		"月明かりが石畳を照らしています",
		"時間がゆっくり流れているようです",
		"日本の美を感じます",
		"心が洗われるようです",
	}
	// no analyzer here, the demo stays instant
	gen := generate.New(*seed, nil, nil)

	fmt.Println("🌙 月歌生成デモ 🌙")
	fmt.Println()
	n := *count
	if n > len(impressions) {
		n = len(impressions)
	}
	for i := 0; i < n; i++ {
		fmt.Printf("--- サンプル %d ---\n", i+1)
		fmt.Printf("感想: %s\n", impressions[i])
		fmt.Printf("月歌: %s\n\n", gen.Compose(impressions[i]))
	}
	fmt.Println("実際の使用には 'tsukiuta interactive' を実行してください。")
	return 0
}
