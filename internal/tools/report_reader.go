package tools

import (
	"context"
	"strings"

	"github.com/BerylCAtieno/blood-report-analyzer/internal/extractor"
)

const (
	ReportReaderName = "blood_test_report_reader"

	// NoExtractableTextMessage is returned instead of an empty report so that
	// reviewers can tell the user the document could not be read.
	NoExtractableTextMessage = "The PDF was readable but contains no extractable text. " +
		"It may be scanned images without OCR. Please upload a text-based PDF."
)

// ReportReader reads a lab report PDF from disk and returns its normalized
// text. It keeps no state between calls and is safe for concurrent use.
type ReportReader struct {
	pages       extractor.PageExtractor
	defaultPath string
}

// NewReportReader fails with extractor.ErrDependencyUnavailable when no page
// extractor is supplied.
func NewReportReader(pages extractor.PageExtractor, defaultPath string) (*ReportReader, error) {
	if pages == nil {
		return nil, extractor.ErrDependencyUnavailable
	}
	return &ReportReader{pages: pages, defaultPath: defaultPath}, nil
}

func (r *ReportReader) Name() string {
	return ReportReaderName
}

func (r *ReportReader) Description() string {
	return "Read a blood-test PDF from disk and return a cleaned, plain-text version " +
		"for analysis. Input is a file path."
}

func (r *ReportReader) Run(ctx context.Context, input string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return r.Read(input)
}

// Read returns the normalized text of the PDF at path, or of the default path
// when path is empty. A whitespace-only path is not defaulted. A document without any extractable text yields
// NoExtractableTextMessage rather than an error.
func (r *ReportReader) Read(path string) (string, error) {
	if path == "" {
		path = r.defaultPath
	}
	path = strings.TrimSpace(path)

	if err := extractor.ValidatePath(path); err != nil {
		return "", err
	}

	pages, err := r.pages.ExtractPages(path)
	if err != nil {
		return "", err
	}

	text := extractor.JoinPages(pages)
	if strings.TrimSpace(text) == "" {
		return NoExtractableTextMessage, nil
	}

	return text, nil
}
