package convert

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"
)

// convertDOCX extracts paragraph text from a DOCX upload and rebuilds it
// as a LaTeX resume source. Heading-styled paragraphs become sections.
func convertDOCX(data []byte) (*Result, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "resume-upload-*.docx")
	if err != nil {
		return nil, &ConversionError{Kind: KindDOCX, Message: "create temp file", Cause: err}
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, bytes.NewReader(data))
	if err != nil {
		tmp.Close()
		return nil, &ConversionError{Kind: KindDOCX, Message: "write temp file", Cause: err}
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, &ConversionError{Kind: KindDOCX, Message: "seek temp file", Cause: err}
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, &ConversionError{Kind: KindDOCX, Message: "parse docx", Cause: err}
	}

	var lines []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := paragraphText(para)
		if text == "" {
			lines = append(lines, "")
			continue
		}
		if isHeadingStyle(para) {
			// Normalize to the plain-heading shape assembleLaTeX detects.
			lines = append(lines, "", strings.ToUpper(text), "")
		} else {
			lines = append(lines, text)
		}
	}
	if len(lines) == 0 {
		return nil, &ConversionError{Kind: KindDOCX, Message: "no text content found"}
	}

	source := assembleLaTeX(lines)
	return &Result{
		LaTeX:    source,
		Kind:     KindDOCX,
		Warnings: conversionWarnings(source),
	}, nil
}

func isHeadingStyle(para *docx.Paragraph) bool {
	if para.Properties == nil || para.Properties.Style == nil {
		return false
	}
	style := strings.ToLower(para.Properties.Style.Val)
	return strings.HasPrefix(style, "heading")
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
