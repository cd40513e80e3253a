package extractor

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"guideline-rag/internal/models"

	"github.com/nguyenthenguyen/docx"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Extractor turns a source document into a sequence of pages.
// PDF is the primary format; office and plain-text formats are
// reachable when the scan pattern is widened in config.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

const defaultPageNumber = 1

// ExtractFile dispatches on the file extension and returns extracted pages.
// An empty (but non-nil-error) result means the file had no extractable text.
func (e *Extractor) ExtractFile(path string) ([]models.Page, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".pdf":
		return e.ExtractPDF(path)
	case ".docx":
		return parseDOCX(path)
	case ".pptx":
		return parsePPTX(path)
	case ".xlsx":
		return parseXLSX(path)
	case ".ods":
		return parseODS(path)
	case ".txt", ".md":
		return parseText(path)
	default:
		return nil, fmt.Errorf("unsupported file format: %s", ext)
	}
}

// TotalChars sums the trimmed text length across pages. Zero means the
// document has no extractable text and should be skipped.
func TotalChars(pages []models.Page) int {
	total := 0
	for _, p := range pages {
		total += len(strings.TrimSpace(p.Text))
	}
	return total
}

func parseDOCX(filePath string) ([]models.Page, error) {
	r, err := docx.ReadDocxFile(filePath)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	doc := r.Editable()
	content := doc.GetContent()
	paragraphs := strings.Split(content, "\n")
	var pages []models.Page
	var text strings.Builder
	for _, p := range paragraphs {
		if p == "" {
			continue
		}
		text.WriteString(p + "\n")
	}
	markdown, err := convertToMarkdown(text.String())
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(markdown) != "" {
		pages = append(pages, models.Page{
			Source: filePath,
			Number: defaultPageNumber, // DOCX has no page numbers
			Text:   markdown,
		})
	}
	return pages, nil
}

func parsePPTX(filePath string) ([]models.Page, error) {
	f, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []models.Page
	for slideNum, file := range f.File {
		if strings.HasPrefix(file.Name, "ppt/slides/slide") {
			rc, err := file.Open()
			if err != nil {
				continue
			}
			data, err := io.ReadAll(rc)
			rc.Close()
			if err != nil {
				continue
			}
			slideText := extractTextFromXML(string(data))
			markdown, err := convertToMarkdown(slideText)
			if err != nil {
				return nil, err
			}
			if strings.TrimSpace(markdown) != "" {
				pages = append(pages, models.Page{
					Source: filePath,
					Number: slideNum + 1, // 1-based indexing
					Text:   markdown,
				})
			}
		}
	}
	return pages, nil
}

func parseXLSX(filePath string) ([]models.Page, error) {
	f, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, err
	}

	var pages []models.Page
	for sheetNum, sheet := range f.Sheets {
		var text strings.Builder
		text.WriteString(fmt.Sprintf("## Sheet: %s\n", sheet.Name))
		for _, row := range sheet.Rows {
			for _, cell := range row.Cells {
				text.WriteString(cell.String() + "\t")
			}
			text.WriteString("\n")
		}
		markdown, err := convertToMarkdown(text.String())
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(markdown) != "" {
			pages = append(pages, models.Page{
				Source: filePath,
				Number: sheetNum + 1, // sheets stand in for pages
				Text:   markdown,
			})
		}
	}
	return pages, nil
}

func parseODS(filePath string) ([]models.Page, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pages []models.Page
	for sheetNum, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			continue
		}
		var text strings.Builder
		text.WriteString(fmt.Sprintf("## Sheet: %s\n", sheetName))
		for _, row := range rows {
			for _, cell := range row {
				text.WriteString(cell + "\t")
			}
			text.WriteString("\n")
		}
		markdown, err := convertToMarkdown(text.String())
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(markdown) != "" {
			pages = append(pages, models.Page{
				Source: filePath,
				Number: sheetNum + 1,
				Text:   markdown,
			})
		}
	}
	return pages, nil
}

func parseText(filePath string) ([]models.Page, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	markdown, err := convertToMarkdown(string(data))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(markdown) == "" {
		return nil, nil
	}
	return []models.Page{{
		Source: filePath,
		Number: defaultPageNumber,
		Text:   markdown,
	}}, nil
}

func convertToMarkdown(text string) (string, error) {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}
	return strings.Trim(buf.String(), " \t\n\r"), nil
}

func extractTextFromXML(xmlContent string) string {
	var text strings.Builder
	parts := strings.Split(xmlContent, "<a:t>")
	for i, part := range parts {
		if i == 0 {
			continue
		}
		endIdx := strings.Index(part, "</a:t>")
		if endIdx >= 0 {
			text.WriteString(part[:endIdx] + " ")
		}
	}
	return text.String()
}
