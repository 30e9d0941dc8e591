// Package corpus harvests candidate haiku from Aozora Bunko e-texts:
// download, decode, clean, extract, classify and persist.
package corpus

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"

	"github.com/T-towa/tsukiuta-ai/kana"
)

// Work identifies one Aozora Bunko e-text.
type Work struct {
	Author string
	Title  string
	URL    string
}

// DefaultWorks lists the harvested e-texts, classical haiku collections with
// ruby annotations.
var DefaultWorks = []Work{
	{"松尾芭蕉", "俳句集（芭蕉翁古池真伝）", "https://www.aozora.gr.jp/cards/002240/files/61619_ruby_78129.zip"},
	{"正岡子規", "寒山落木 巻一", "https://www.aozora.gr.jp/cards/000305/files/1896_ruby.zip"},
	{"正岡子規", "牡丹句録", "https://www.aozora.gr.jp/cards/000305/files/59088_ruby_76370.zip"},
	{"正岡子規", "夜寒十句", "https://www.aozora.gr.jp/cards/000305/files/42168_ruby_12296.zip"},
	{"内藤鳴雪", "鳴雪句集", "https://www.aozora.gr.jp/cards/000684/files/55833_txt_63814.zip"},
	{"高浜虚子", "五百句", "https://www.aozora.gr.jp/cards/001310/files/51837_ruby_59424.zip"},
	{"高浜虚子", "五百五十句", "https://www.aozora.gr.jp/cards/001310/files/51838_ruby_59505.zip"},
	{"高浜虚子", "六百句", "https://www.aozora.gr.jp/cards/001310/files/51840_ruby_59583.zip"},
	{"高浜虚子", "六百五十句", "https://www.aozora.gr.jp/cards/001310/files/51841_ruby_77134.zip"},
	{"高浜虚子", "七百五十句", "https://www.aozora.gr.jp/cards/001310/files/51839_ruby_77843.zip"},
	{"高浜虚子", "俳句への道", "https://www.aozora.gr.jp/cards/001310/files/55609_ruby_53015.zip"},
	{"前田普羅", "普羅句集", "https://www.aozora.gr.jp/cards/001719/files/55258_ruby_64312.zip"},
	{"萩原朔太郎", "俳句", "https://www.aozora.gr.jp/cards/000067/files/53521_ruby_43535.zip"},
	{"川端茅舎", "川端茅舎句集", "https://www.aozora.gr.jp/cards/000369/files/55239_ruby_65169.zip"},
	{"松本たかし", "松本たかし句集", "https://www.aozora.gr.jp/cards/001720/files/55259_ruby_66667.zip"},
}

// Fetcher downloads and decodes Aozora zip archives.
type Fetcher struct {
	hc  *http.Client
	log *slog.Logger
}

func NewFetcher(timeout time.Duration, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	return &Fetcher{
		hc:  &http.Client{Timeout: timeout},
		log: log,
	}
}

// FetchText downloads the work's archive and returns the decoded content of
// its first .txt member, ruby annotations intact.
func (f *Fetcher) FetchText(ctx context.Context, w Work) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.URL, nil)
	if err != nil {
		return "", fmt.Errorf("build request for %s: %w", w.Title, err)
	}
	resp, err := f.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", w.Title, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: unexpected status %s", w.Title, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body for %s: %w", w.Title, err)
	}
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	if err != nil {
		return "", fmt.Errorf("open archive for %s: %w", w.Title, err)
	}
	for _, zf := range zr.File {
		if !strings.HasSuffix(strings.ToLower(zf.Name), ".txt") {
			continue
		}
		rc, err := zf.Open()
		if err != nil {
			return "", fmt.Errorf("open %s in archive: %w", zf.Name, err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read %s in archive: %w", zf.Name, err)
		}
		f.log.Debug("fetched work", "title", w.Title, "file", zf.Name, "bytes", len(raw))
		return decodeText(raw)
	}
	return "", fmt.Errorf("no .txt entry in archive for %s", w.Title)
}

// decodeText decodes Aozora bytes. UTF-8 that already contains Japanese
// passes through, everything else is treated as Shift_JIS.
func decodeText(raw []byte) (string, error) {
	if utf8.Valid(raw) && containsJapanese(string(raw)) {
		return string(raw), nil
	}
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(raw), japanese.ShiftJIS.NewDecoder()))
	if err != nil {
		return "", fmt.Errorf("decode shift_jis: %w", err)
	}
	return string(decoded), nil
}

func containsJapanese(s string) bool {
	for _, r := range s {
		if kana.IsHiragana(r) || kana.IsKatakana(r) || kana.IsKanji(r) {
			return true
		}
	}
	return false
}
