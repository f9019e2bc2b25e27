// Package cvparser extracts plain text from uploaded CV documents.
package cvparser

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MimePDF  = "application/pdf"
	MimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText = "text/plain"
)

var ErrUnsupportedType = errors.New("cvparser: unsupported file type")

// DetectType resolves the document type from the extension, falling back to the declared mime type.
func DetectType(fileName, declared string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	case ".txt":
		return MimeText
	}
	if i := strings.IndexByte(declared, ';'); i >= 0 {
		declared = declared[:i]
	}
	return strings.TrimSpace(strings.ToLower(declared))
}

// ExtractText returns the document's text with whitespace collapsed.
func ExtractText(mime string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch mime {
	case MimeText:
		text = string(data)
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
	if err != nil {
		return "", err
	}
	return normalizeWhitespace(text), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("cvparser: read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

var (
	paragraphEnd = regexp.MustCompile(`</w:p>`)
	xmlTag       = regexp.MustCompile(`<[^>]+>`)
)

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("cvparser: read docx: %w", err)
	}
	defer doc.Close()

	content := doc.Editable().GetContent()
	content = paragraphEnd.ReplaceAllString(content, "\n")
	content = xmlTag.ReplaceAllString(content, "")
	return xmlUnescape(content), nil
}

func xmlUnescape(s string) string {
	return strings.NewReplacer("&amp;", "&", "&lt;", "<", "&gt;", ">", "&quot;", `"`, "&apos;", "'").Replace(s)
}

var (
	spaceRun = regexp.MustCompile(`[ \t\r\f\v]+`)
	lineRun  = regexp.MustCompile(`\n{3,}`)
)

func normalizeWhitespace(s string) string {
	s = spaceRun.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, " \n", "\n")
	s = lineRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
