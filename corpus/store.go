package corpus

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/T-towa/tsukiuta-ai/logger"
	"github.com/T-towa/tsukiuta-ai/model"
)

// TrainingRecord is the JSON shape consumed by downstream training jobs.
type TrainingRecord struct {
	Text     string           `json:"text"`
	Metadata TrainingMetadata `json:"metadata"`
}

type TrainingMetadata struct {
	Author     string  `json:"author"`
	Source     string  `json:"source"`
	MoraCount  int     `json:"mora_count"`
	Is575      bool    `json:"is_575"`
	Season     string  `json:"season"`
	HasMoon    bool    `json:"has_moon"`
	HasAutumn  bool    `json:"has_autumn"`
	Confidence float64 `json:"confidence"`
}

// Store writes harvest artifacts into one output directory.
type Store struct {
	dir string
}

func NewStore(dir string) *Store { return &Store{dir: dir} }

// SaveCSV writes the flat record table as UTF-8 CSV and returns its path.
func (s *Store) SaveCSV(haikus []model.Haiku) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(s.dir, "aozora_haiku.csv")
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"text", "text_with_ruby", "author", "source", "mora_count", "is_575", "season", "confidence", "has_moon", "has_autumn"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("write header: %w", err)
	}
	for _, h := range haikus {
		rec := []string{
			h.Text,
			h.TextWithRuby,
			h.Author,
			h.Source,
			strconv.Itoa(h.MoraCount),
			strconv.FormatBool(h.Is575),
			h.Season.Label(),
			strconv.FormatFloat(h.Confidence, 'g', -1, 64),
			strconv.FormatBool(h.HasMoon),
			strconv.FormatBool(h.HasAutumn),
		}
		if err := w.Write(rec); err != nil {
			return "", fmt.Errorf("write record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}
	return path, nil
}

// SaveJSON writes the nested training records and returns the file path.
func (s *Store) SaveJSON(haikus []model.Haiku) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	records := make([]TrainingRecord, 0, len(haikus))
	for _, h := range haikus {
		records = append(records, TrainingRecord{
			Text: h.Text,
			Metadata: TrainingMetadata{
				Author:     h.Author,
				Source:     h.Source,
				MoraCount:  h.MoraCount,
				Is575:      h.Is575,
				Season:     h.Season.Label(),
				HasMoon:    h.HasMoon,
				HasAutumn:  h.HasAutumn,
				Confidence: h.Confidence,
			},
		})
	}
	if err := logger.LogJSON(s.dir, "aozora_haiku_training", records); err != nil {
		return "", fmt.Errorf("write training json: %w", err)
	}
	return filepath.Join(s.dir, "aozora_haiku_training.json"), nil
}

// SaveStats writes the harvest summary next to the data files.
func (s *Store) SaveStats(stats Stats) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := logger.LogJSON(s.dir, "aozora_haiku_stats", stats); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}
