package extractor

import (
	"fmt"
	"os"
	"sync"

	"guideline-rag/internal/models"

	"github.com/ledongthuc/pdf"
	"github.com/rs/zerolog/log"
	"github.com/unidoc/unipdf/v3/common/license"
	"github.com/unidoc/unipdf/v3/extractor"
	"github.com/unidoc/unipdf/v3/model"
)

// ExtractPDF attempts the primary extractor and, when it errors or yields
// no text (likely a scanned document), falls back to the unipdf extractor.
// Both failing is not an error here: the caller decides to skip the file
// when the result is empty. Scanned PDFs need external OCR before ingestion.
func (e *Extractor) ExtractPDF(path string) ([]models.Page, error) {
	pages, err := e.extractPDF(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("Primary PDF extraction failed")
		pages = nil
	}
	if TotalChars(pages) == 0 {
		fallback, err := e.extractPDFFallback(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Fallback PDF extraction failed")
		} else {
			pages = fallback
		}
	}
	return pages, nil
}

func (e *Extractor) extractPDF(filePath string) ([]models.Page, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	reader, err := pdf.NewReader(f, stat.Size())
	if err != nil {
		return nil, err
	}

	var pages []models.Page
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return nil, err
		}
		pages = append(pages, models.Page{
			Source: filePath,
			Number: i,
			Text:   pageText,
		})
	}
	return pages, nil
}

var (
	licenseOnce sync.Once
	licenseErr  error
)

func setupUniDocLicense() error {
	licenseOnce.Do(func() {
		key := os.Getenv("UNIDOC_LICENSE_KEY")
		if key == "" {
			licenseErr = fmt.Errorf("UNIDOC_LICENSE_KEY is not set")
			return
		}
		licenseErr = license.SetMeteredKey(key)
	})
	return licenseErr
}

func (e *Extractor) extractPDFFallback(filePath string) ([]models.Page, error) {
	if err := setupUniDocLicense(); err != nil {
		return nil, fmt.Errorf("unipdf license: %w", err)
	}

	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	pdfReader, err := model.NewPdfReader(f)
	if err != nil {
		return nil, err
	}

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		return nil, err
	}

	var pages []models.Page
	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			return nil, err
		}

		ex, err := extractor.New(page)
		if err != nil {
			return nil, err
		}

		text, err := ex.ExtractText()
		if err != nil {
			return nil, err
		}
		pages = append(pages, models.Page{
			Source: filePath,
			Number: i,
			Text:   text,
		})
	}
	return pages, nil
}
