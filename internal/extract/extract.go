package extract

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"mailtriage/internal/model"
	"mailtriage/internal/pkg/pdfextract"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptyContent      = errors.New("no readable content")
)

// Content normalizes a triage input into a single text blob. A file always
// wins over inline text. Returns ErrUnsupportedFormat for extensions outside
// .txt/.pdf and ErrEmptyContent when the result is empty after trimming.
func Content(in model.Input) (string, error) {
	var content string
	if in.HasFile() {
		extracted, err := fromFile(in.File)
		if err != nil {
			return "", err
		}
		content = extracted
	} else {
		content = in.Text
	}

	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	return content, nil
}

func fromFile(file *model.FileUpload) (string, error) {
	switch strings.ToLower(filepath.Ext(file.Filename)) {
	case ".txt":
		return decodeText(file.Data), nil
	case ".pdf":
		pages, err := pdfextract.ExtractPages(bytes.NewReader(file.Data))
		if err != nil {
			return "", fmt.Errorf("read pdf %q: %w", file.Filename, err)
		}
		var sb strings.Builder
		for _, page := range pages {
			sb.WriteString(page)
			sb.WriteByte('\n')
		}
		return sb.String(), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, file.Filename)
	}
}

// decodeText decodes raw bytes as UTF-8, replacing undecodable sequences
// instead of failing.
func decodeText(data []byte) string {
	text := string(data)
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, string(utf8.RuneError))
}
