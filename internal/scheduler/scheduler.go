// Package scheduler runs resume documents through the processing pipeline in
// rate-limited groups.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"resume-screener/internal/ai"
	"resume-screener/internal/experience"
	"resume-screener/internal/logger"
	"resume-screener/internal/match"
	"resume-screener/internal/resume"
	"resume-screener/internal/utils"
)

const (
	DefaultGroupSize     = 4
	DefaultRatePerMinute = 12
)

// Config controls batch sizing, pacing and failure policy.
type Config struct {
	// GroupSize is how many documents are processed concurrently.
	GroupSize int
	// RatePerMinute caps how many documents may start per minute. The pause
	// between groups is derived from it.
	RatePerMinute int
	// FailFast stops scheduling new groups once any document in a finished
	// group has failed. Documents never scheduled are not reported as errors.
	FailFast bool
	// KeepFiles disables the removal of input files after processing.
	KeepFiles bool
}

func DefaultConfig() Config {
	return Config{
		GroupSize:     DefaultGroupSize,
		RatePerMinute: DefaultRatePerMinute,
		FailFast:      true,
	}
}

func (c Config) normalized() Config {
	if c.GroupSize <= 0 {
		c.GroupSize = DefaultGroupSize
	}
	if c.RatePerMinute <= 0 {
		c.RatePerMinute = DefaultRatePerMinute
	}
	return c
}

// groupDelay is the pause inserted between consecutive groups so that at
// most RatePerMinute documents start per minute.
func (c Config) groupDelay() time.Duration {
	ms := 60000 * c.GroupSize / c.RatePerMinute
	return time.Duration(ms) * time.Millisecond
}

// TextExtractor turns a stored document into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, doc resume.Document) (string, error)
}

// Scheduler fans documents out to the AI backend in groups. Each document
// independently yields either a Record or a ProcessingError.
type Scheduler struct {
	cfg       Config
	extractor TextExtractor
	backend   ai.Backend
	calc      *experience.Calculator
	logger    *zap.Logger

	wait func(ctx context.Context, d time.Duration) error
}

func New(cfg Config, extractor TextExtractor, backend ai.Backend, log *zap.Logger) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}

	return &Scheduler{
		cfg:       cfg.normalized(),
		extractor: extractor,
		backend:   backend,
		calc:      experience.NewCalculator(),
		logger:    log,
		wait:      utils.WaitFor,
	}
}

type outcome struct {
	index   int
	record  *resume.Record
	procErr *resume.ProcessingError
}

// Run processes the documents and returns the successful records and the
// per-document failures, both in input order. When jobDescription is empty
// the scoring stage is skipped entirely. The returned error covers run-level
// conditions only, an empty input or a canceled context; individual document
// failures land in the second return value.
func (s *Scheduler) Run(ctx context.Context, docs []resume.Document, jobDescription string) ([]resume.Record, []resume.ProcessingError, error) {
	if len(docs) == 0 {
		return nil, nil, resume.ErrNoDocuments
	}

	runLog := s.logger.With(zap.String("run_id", uuid.NewString()))
	runLog.Info("starting batch run",
		zap.Int("documents", len(docs)),
		zap.Int("group_size", s.cfg.GroupSize),
		zap.Int("rate_per_minute", s.cfg.RatePerMinute),
		zap.Bool("scoring", jobDescription != ""),
	)

	records := make([]*resume.Record, len(docs))
	procErrs := make([]*resume.ProcessingError, len(docs))
	delay := s.cfg.groupDelay()

	var runErr error

groups:
	for start := 0; start < len(docs); start += s.cfg.GroupSize {
		end := start + s.cfg.GroupSize
		if end > len(docs) {
			end = len(docs)
		}

		results := make(chan outcome, end-start)
		for i := start; i < end; i++ {
			go func(index int, doc resume.Document) {
				record, procErr := s.processOne(ctx, runLog, doc, jobDescription)
				results <- outcome{index: index, record: record, procErr: procErr}
			}(i, docs[i])
		}

		groupFailed := false
		for range docs[start:end] {
			out := <-results
			records[out.index] = out.record
			procErrs[out.index] = out.procErr
			if out.procErr != nil {
				groupFailed = true
			}
		}

		if groupFailed && s.cfg.FailFast {
			runLog.Warn("halting batch after failed group",
				zap.Int("processed", end),
				zap.Int("remaining", len(docs)-end),
			)
			break groups
		}

		if end < len(docs) {
			if err := s.wait(ctx, delay); err != nil {
				runErr = fmt.Errorf("waiting between groups: %w", err)
				break groups
			}
		}
	}

	succeeded := make([]resume.Record, 0, len(docs))
	failed := make([]resume.ProcessingError, 0)
	for i := range docs {
		if records[i] != nil {
			succeeded = append(succeeded, *records[i])
		}
		if procErrs[i] != nil {
			failed = append(failed, *procErrs[i])
		}
	}

	runLog.Info("batch run finished",
		zap.Int("succeeded", len(succeeded)),
		zap.Int("failed", len(failed)),
	)

	return succeeded, failed, runErr
}

// processOne runs one document through extract, parse and optionally score.
// The input file is removed exactly once when the document finishes,
// regardless of outcome, unless KeepFiles is set.
func (s *Scheduler) processOne(ctx context.Context, runLog *zap.Logger, doc resume.Document, jobDescription string) (*resume.Record, *resume.ProcessingError) {
	docLog := logger.WithFields(runLog, logger.StringFields(logger.StringField{Key: logger.FieldFile, Value: doc.FileName})...)
	docLog.Info("processing document", zap.String("format", string(doc.Format)))

	defer func() {
		if s.cfg.KeepFiles {
			return
		}
		if err := os.Remove(doc.Path); err != nil && !os.IsNotExist(err) {
			docLog.Warn("removing input file", zap.Error(err))
		}
	}()

	text, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		docLog.Error("text extraction failed", zap.Error(err))
		return nil, &resume.ProcessingError{FileName: doc.FileName, Message: err.Error()}
	}

	structured, err := s.backend.Parse(ctx, text)
	if err != nil {
		docLog.Error("resume parsing failed", zap.Error(err))
		return nil, &resume.ProcessingError{FileName: doc.FileName, Message: err.Error()}
	}

	record := &resume.Record{
		FileName:        doc.FileName,
		Structured:      *structured,
		TotalExperience: s.calc.Total(structured.Experience),
		ModelType:       s.backend.Name(),
	}

	if jobDescription != "" {
		score, err := s.backend.Score(ctx, text, jobDescription)
		if err != nil {
			docLog.Error("resume scoring failed", zap.Error(err))
			return nil, &resume.ProcessingError{FileName: doc.FileName, Message: err.Error()}
		}

		record.AIScore = score.AIScore
		record.MatchReasons = score.MatchReasons
		record.MismatchReasons = score.MismatchReasons
		// The model's verdict and the literal token comparison reconcile
		// in the candidate's favor.
		record.PositionMatch = score.PositionMatch || match.Positions(structured.PostAppliedFor, jobDescription)
	}

	docLog.Info("document processed", zap.Int("ai_score", record.AIScore))
	return record, nil
}
