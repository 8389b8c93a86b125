// Package extract turns stored resume documents into plain text.
package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"code.sajari.com/docconv"
	"github.com/otiai10/gosseract/v2"
	"go.uber.org/zap"

	"resume-screener/internal/resume"
)

// Config carries the fixed OCR settings applied to image documents. The
// values are set once at process start and shared by every batch run.
type Config struct {
	// Language is the tesseract language code, e.g. "eng".
	Language string
	// PageSegMode is the tesseract page segmentation mode. Mode 3 is fully
	// automatic full-page segmentation.
	PageSegMode int
}

func DefaultConfig() Config {
	return Config{Language: "eng", PageSegMode: int(gosseract.PSM_AUTO)}
}

// Extractor converts a document into raw text. No post-processing is applied;
// downstream components receive the extracted text verbatim.
type Extractor struct {
	cfg    Config
	logger *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Extractor {
	if strings.TrimSpace(cfg.Language) == "" {
		cfg.Language = "eng"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{cfg: cfg, logger: logger}
}

// Extract reads the document's file and returns its textual content. PDF and
// DOCX documents go through docconv; image formats are recognized with
// tesseract. Read and conversion failures are reported as ExtractionError
// tagged with the document path.
func (e *Extractor) Extract(ctx context.Context, doc resume.Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	switch doc.Format {
	case resume.FormatPDF, resume.FormatDOCX:
		return e.convertDocument(doc)
	case resume.FormatPNG, resume.FormatJPG, resume.FormatJPEG:
		return e.recognizeImage(doc)
	default:
		return "", &resume.UnsupportedFormatError{Ext: string(doc.Format)}
	}
}

func (e *Extractor) convertDocument(doc resume.Document) (string, error) {
	if _, err := os.Stat(doc.Path); err != nil {
		return "", &resume.ExtractionError{Path: doc.Path, Err: err}
	}

	res, err := docconv.ConvertPath(doc.Path)
	if err != nil {
		return "", &resume.ExtractionError{Path: doc.Path, Err: err}
	}

	e.logger.Debug("document converted",
		zap.String("file_name", doc.FileName),
		zap.String("format", string(doc.Format)),
		zap.Int("text_length", len(res.Body)),
	)

	return res.Body, nil
}

func (e *Extractor) recognizeImage(doc resume.Document) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.cfg.Language); err != nil {
		return "", &resume.ExtractionError{Path: doc.Path, Err: fmt.Errorf("set ocr language: %w", err)}
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(e.cfg.PageSegMode)); err != nil {
		return "", &resume.ExtractionError{Path: doc.Path, Err: fmt.Errorf("set page segmentation mode: %w", err)}
	}
	if err := client.SetImage(doc.Path); err != nil {
		return "", &resume.ExtractionError{Path: doc.Path, Err: err}
	}

	text, err := client.Text()
	if err != nil {
		return "", &resume.ExtractionError{Path: doc.Path, Err: err}
	}

	e.logger.Debug("image recognized",
		zap.String("file_name", doc.FileName),
		zap.String("ocr_language", e.cfg.Language),
		zap.Int("text_length", len(text)),
	)

	return text, nil
}
