package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mandolyte/mdtopdf"
)

// pdfPath returns the PDF written next to a Markdown report.
func pdfPath(markdownPath string) (string, error) {
	if filepath.Ext(markdownPath) != ".md" {
		return "", fmt.Errorf("report must have .md extension: %s", markdownPath)
	}
	return strings.TrimSuffix(markdownPath, ".md") + ".pdf", nil
}

// WritePDF renders the Markdown file of a written report into a PDF with
// the same base name and returns paths with PDF set.
func (w *Writer) WritePDF(report SessionReport, paths Paths) (Paths, error) {
	output, err := pdfPath(paths.Markdown)
	if err != nil {
		return paths, err
	}
	content, err := os.ReadFile(paths.Markdown)
	if err != nil {
		return paths, fmt.Errorf("os.ReadFile(%s) > %w", paths.Markdown, err)
	}

	renderer := mdtopdf.NewPdfRenderer("P", "A4", output, "", nil, mdtopdf.LIGHT)
	renderer.Pdf.SetTitle(pdfTitle(report), true)
	renderer.Pdf.SetSubject(fmt.Sprintf("session %s", report.SessionID), true)
	if err := renderer.Process(content); err != nil {
		return paths, fmt.Errorf("renderer.Process() > %w", err)
	}

	if abs, err := filepath.Abs(output); err == nil {
		output = abs
	}
	paths.PDF = output
	return paths, nil
}

func pdfTitle(report SessionReport) string {
	kind := "Review session"
	if report.IsNewWordSession {
		kind = "New word session"
	}
	return fmt.Sprintf("%s %s", kind, report.StartTime.Format("2006-01-02 15:04"))
}
