package convert

import (
	"os"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
)

// convertPDF extracts plain text from a PDF upload and rebuilds it as a
// LaTeX resume source.
func convertPDF(data []byte) (*Result, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so we write to a temp file.
	tmp, err := os.CreateTemp("", "resume-upload-*.pdf")
	if err != nil {
		return nil, &ConversionError{Kind: KindPDF, Message: "create temp file", Cause: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, &ConversionError{Kind: KindPDF, Message: "write temp file", Cause: err}
	}
	tmp.Close()

	text, err := extractPDFText(tmpPath)
	if err != nil {
		return nil, &ConversionError{Kind: KindPDF, Message: "extract text", Cause: err}
	}
	if len(strings.TrimSpace(text)) < 50 {
		return nil, &ConversionError{
			Kind:    KindPDF,
			Message: "conversion produced minimal output, the PDF may be image-based (scanned) or corrupted",
		}
	}

	source := assembleLaTeX(strings.Split(text, "\n"))
	return &Result{
		LaTeX:    source,
		Kind:     KindPDF,
		Warnings: conversionWarnings(source),
	}, nil
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
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if i > 1 {
			buf.WriteString("\n")
		}
		buf.WriteString(text)
	}
	return buf.String(), nil
}
