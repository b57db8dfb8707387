package parser

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"unicode/utf8"

	"github.com/dgallion1/navtree/internal/doctree"
	pdflib "github.com/ledongthuc/pdf"
)

const maxPageTitle = 80

// PDFParser lists a PDF's pages, titled by their first line of text and
// anchored with the "page=N" fragment PDF viewers understand. It tries the
// Go library first, then falls back to pdftotext if enabled.
type PDFParser struct {
	FallbackPdftotext bool
}

func (p *PDFParser) Parse(r io.Reader, filename string) (*doctree.DocTree, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "navtree-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if err != nil && p.FallbackPdftotext {
		text, err = extractPdftotext(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf text: %w", err)
	}

	return pageOutline(trimExt(filename, ".pdf"), text), nil
}

// pageOutline turns form-feed separated page text into one entry per
// non-empty page.
func pageOutline(title, text string) *doctree.DocTree {
	tree := &doctree.DocTree{Title: title}
	for i, page := range strings.Split(text, "\f") {
		line := firstLine(page)
		if line == "" {
			continue
		}
		tree.Children = append(tree.Children, &doctree.DocNode{
			Title:  fmt.Sprintf("Page %d: %s", i+1, line),
			Anchor: fmt.Sprintf("page=%d", i+1),
			Page:   i + 1,
		})
	}
	return tree
}

func firstLine(page string) string {
	for _, line := range strings.Split(page, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		if utf8.RuneCountInString(line) > maxPageTitle {
			runes := []rune(line)
			line = strings.TrimSpace(string(runes[:maxPageTitle])) + "…"
		}
		return line
	}
	return ""
}

func extractPDFText(path string) (string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var buf strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		if i > 1 {
			buf.WriteString("\f") // Form feed as page separator.
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}

func extractPdftotext(path string) (string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return string(out), nil
}
