package extractor

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Inspector checks that an uploaded file is a structurally valid PDF before
// any reviewer reads it.
type Inspector interface {
	PageCount(path string) (int, error)
}

// PDFInspector validates files with pdfcpu in relaxed mode.
type PDFInspector struct {
	conf *model.Configuration
}

func NewPDFInspector() *PDFInspector {
	api.DisableConfigDir()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	return &PDFInspector{conf: conf}
}

func (i *PDFInspector) PageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	n, err := api.PageCount(f, i.conf)
	if err != nil {
		return 0, fmt.Errorf("invalid PDF: %w", err)
	}
	return n, nil
}
