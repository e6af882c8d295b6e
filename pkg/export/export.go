// Package export renders story text as a downloadable file.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type Format string

const (
	FormatText     Format = "txt"
	FormatDocument Format = "docx"
	FormatPDF      Format = "pdf"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat accepts the file extension, case-insensitively. An empty value
// selects docx.
func ParseFormat(raw string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case FormatText:
		return FormatText, nil
	case FormatDocument, "":
		return FormatDocument, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, raw)
	}
}

// Export converts content into the byte stream of the requested format.
func Export(content string, format Format) ([]byte, error) {
	switch format {
	case FormatText:
		return []byte(content), nil
	case FormatDocument:
		return renderDocument(content)
	case FormatPDF:
		return renderPDF(content)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// FileName returns story_YYYYMMDD_HHMMSS.<ext>.
func FileName(format Format, now time.Time) string {
	return fmt.Sprintf("story_%s.%s", now.Format("20060102_150405"), format)
}

func ContentType(format Format) string {
	switch format {
	case FormatText:
		return "text/plain; charset=utf-8"
	case FormatDocument:
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
