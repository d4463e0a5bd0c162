// Package convert turns uploaded PDF, DOCX and TEX files into LaTeX
// resume sources the rest of the application can edit.
package convert

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Kind identifies a supported upload format.
type Kind string

// Supported upload formats
const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
	KindTEX  Kind = "tex"
)

// Result holds a successful conversion plus non-fatal warnings about
// content the conversion may have degraded.
type Result struct {
	LaTeX    string
	Kind     Kind
	Warnings []string
}

// KindFromFilename infers the upload format from the file extension.
func KindFromFilename(filename string) (Kind, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	case ".tex":
		return KindTEX, nil
	default:
		return "", &ConversionError{
			Kind:    Kind(strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")),
			Message: fmt.Sprintf("unsupported file format %q, supported formats: .pdf, .docx, .tex", filepath.Ext(filename)),
		}
	}
}

// Convert converts raw file bytes of the given kind into a LaTeX source.
func Convert(data []byte, kind Kind) (*Result, error) {
	if len(data) == 0 {
		return nil, &ConversionError{Kind: kind, Message: "empty file"}
	}
	switch kind {
	case KindPDF:
		return convertPDF(data)
	case KindDOCX:
		return convertDOCX(data)
	case KindTEX:
		return readTeX(data)
	default:
		return nil, &ConversionError{Kind: kind, Message: "unsupported file format"}
	}
}

// readTeX decodes a .tex upload without transforming it. Non-UTF-8 input
// is treated as Latin-1.
func readTeX(data []byte) (*Result, error) {
	var source string
	if utf8.Valid(data) {
		source = string(data)
	} else {
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}
		source = string(runes)
	}
	return &Result{
		LaTeX:    source,
		Kind:     KindTEX,
		Warnings: conversionWarnings(source),
	}, nil
}

// conversionWarnings flags likely trouble spots in converted LaTeX.
func conversionWarnings(source string) []string {
	var warnings []string
	if strings.Contains(source, `\includegraphics`) {
		warnings = append(warnings, "Document contains images. Images may not display correctly and might need manual adjustment.")
	}
	if strings.Contains(source, `\begin{table}`) {
		warnings = append(warnings, "Document contains tables. Table formatting may need adjustment.")
	}
	if len(source) < 200 {
		warnings = append(warnings, "Converted content is very short. Some content may not have been extracted properly.")
	}
	open := strings.Count(source, "{")
	closed := strings.Count(source, "}")
	if open != closed {
		warnings = append(warnings, fmt.Sprintf("Unbalanced braces detected (%d open, %d close). LaTeX may have compilation errors.", open, closed))
	}
	return warnings
}
