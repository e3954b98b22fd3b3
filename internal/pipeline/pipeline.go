// Package pipeline runs one dataset build from located files to written CSVs.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"StockDataset/internal/aggregator"
	"StockDataset/internal/collector"
	"StockDataset/internal/fundamentals"
	"StockDataset/internal/loader"
	"StockDataset/internal/locator"
	"StockDataset/internal/metadata"
	"StockDataset/internal/model"
	"StockDataset/internal/notifier"
	"StockDataset/internal/output"
	"StockDataset/internal/recorder"
)

// Summary describes a finished build.
type Summary = model.RunSummary

// Pipeline holds what a build needs. Nil Profiles, Recorder and Notifier
// are treated as disabled.
type Pipeline struct {
	Dirs      []string
	OutputDir string
	Profiles  collector.ProfileSource
	Recorder  recorder.Recorder
	Notifier  notifier.Notifier

	now func() time.Time
}

// New returns a pipeline reading dirs and writing into outputDir.
func New(dirs []string, outputDir string, profiles collector.ProfileSource, rec recorder.Recorder, n notifier.Notifier) *Pipeline {
	return &Pipeline{
		Dirs:      dirs,
		OutputDir: outputDir,
		Profiles:  profiles,
		Recorder:  rec,
		Notifier:  n,
	}
}

func (p *Pipeline) clock() time.Time {
	if p.now != nil {
		return p.now()
	}
	return time.Now()
}

// Run executes one build. Only a missing input, an input with no readable
// file, or a failed write stops it; everything else is logged and skipped.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	s := &Summary{RunID: uuid.NewString(), StartedAt: p.clock()}
	log.Printf("[INFO] build %s started", s.RunID)

	if err := p.build(ctx, s); err != nil {
		log.Printf("[ERROR] build %s failed: %v", s.RunID, err)
		p.notify(ctx, notifier.FormatFailure(s.RunID, err))
		return s, err
	}
	s.FinishedAt = p.clock()

	p.record(s)
	p.notify(ctx, notifier.FormatRunSummary(s))
	log.Printf("[INFO] build %s finished: %d rows, %d symbols, %d skipped files",
		s.RunID, s.Rows, s.Symbols, len(s.Skipped))
	return s, nil
}

func (p *Pipeline) build(ctx context.Context, s *Summary) error {
	files, err := locator.Locate(p.Dirs)
	if err != nil {
		return err
	}
	s.Files = len(files)

	res, err := loader.Load(files)
	for _, sk := range res.Skipped {
		s.Skipped = append(s.Skipped, sk.File)
	}
	s.Loaded = len(res.Loaded)
	if err != nil {
		return err
	}

	combined := aggregator.Combine(res.Tables)
	adjusted, src := aggregator.SplitAdjusted(combined)
	s.Rows = len(combined.Rows)
	s.Symbols = len(combined.Symbols())
	s.AdjustedSource = string(src.Kind)
	s.AdjustedColumn = src.Column

	secs := metadata.BuildSecurities(files)
	profiles := p.Profiles
	if profiles == nil {
		profiles = collector.NewNoopSource()
	}
	s.Enriched = metadata.Enrich(ctx, profiles, secs)
	s.Securities = len(secs)

	funds := fundamentals.Compute(combined)
	s.Fundamentals = len(funds)

	w, err := output.NewWriter(p.OutputDir)
	if err != nil {
		return err
	}
	path, err := w.Prices(output.PricesFile, combined)
	if err != nil {
		return err
	}
	s.Outputs = append(s.Outputs, path)
	path, err = w.Prices(output.SplitAdjustedPricesFile, adjusted)
	if err != nil {
		return err
	}
	s.Outputs = append(s.Outputs, path)
	path, err = w.Securities(secs, s.Enriched)
	if err != nil {
		return err
	}
	s.Outputs = append(s.Outputs, path)
	path, err = w.Fundamentals(funds)
	if err != nil {
		return err
	}
	s.Outputs = append(s.Outputs, path)

	if p.Recorder != nil {
		if err := p.Recorder.RecordPrices(s.RunID, recorder.PriceRecords(adjusted)); err != nil {
			log.Printf("[ERROR] record prices: %v", err)
		}
		if err := p.Recorder.RecordSecurities(s.RunID, secs); err != nil {
			log.Printf("[ERROR] record securities: %v", err)
		}
		if err := p.Recorder.RecordFundamentals(s.RunID, funds); err != nil {
			log.Printf("[ERROR] record fundamentals: %v", err)
		}
	}
	return nil
}

func (p *Pipeline) record(s *Summary) {
	if p.Recorder == nil {
		return
	}
	if err := p.Recorder.RecordRun(s); err != nil {
		log.Printf("[ERROR] record run: %v", err)
	}
}

func (p *Pipeline) notify(ctx context.Context, text string) {
	if p.Notifier == nil {
		return
	}
	if err := p.Notifier.Send(ctx, text); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}

// Describe locates the input files and the securities a build would list
// for them, without reading any file.
func Describe(dirs []string) ([]string, []model.Security, error) {
	files, err := locator.Locate(dirs)
	if err != nil {
		return nil, nil, fmt.Errorf("locate: %w", err)
	}
	return files, metadata.BuildSecurities(files), nil
}
