// Package extract pulls plain text out of uploaded resume files.
package extract

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"

	"resumeiq/internal/errors"
)

// AllowedExtensions lists the upload formats the service accepts.
var AllowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".txt":  true,
}

var (
	xmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
	trailingWS  = regexp.MustCompile(`[ \t]+\n`)
	excessSpace = regexp.MustCompile(`[ \t]{2,}`)
)

// Extract dispatches on the file extension and returns the plain text
// content of the document. The extension check is case-insensitive.
func Extract(filename string, data []byte) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !AllowedExtensions[ext] {
		return "", errors.NewValidationError(errors.ErrCodeUnsupportedFormat,
			"unsupported file type", nil).WithContext("extension", ext)
	}

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDOCX(data)
	case ".doc":
		// Some .doc uploads are really OOXML archives. Try that first,
		// then fall back to scraping printable bytes.
		text, err = extractDOCX(data)
		if err != nil {
			text, err = scrapePrintable(data), nil
		}
	case ".txt":
		text, err = extractTXT(data)
	}
	if err != nil {
		return "", err
	}

	text = cleanText(text)
	if strings.TrimSpace(text) == "" {
		return "", errors.NewExtractionError(errors.ErrCodeEmptyDocument,
			"no text could be extracted from the document", nil).WithContext("filename", filename)
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"failed to open PDF", err)
	}

	rs, err := reader.GetPlainText()
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"failed to read PDF text", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, rs); err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"failed to read PDF text", err)
	}
	return buf.String(), nil
}

// extractDOCX reads word/document.xml from the OOXML archive and strips
// the markup, keeping paragraph and tab boundaries.
func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
			"failed to open DOCX archive", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
				"failed to open document body", err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
				"failed to read document body", err)
		}

		text := string(raw)
		text = strings.ReplaceAll(text, "</w:p>", "\n")
		text = strings.ReplaceAll(text, "<w:tab/>", "\t")
		text = xmlTagRe.ReplaceAllString(text, "")
		return text, nil
	}

	return "", errors.NewExtractionError(errors.ErrCodeExtractionFailed,
		"archive has no document body", nil)
}

// extractTXT decodes the bytes as UTF-8, falling back to Latin-1 when
// the content is not valid UTF-8.
func extractTXT(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes), nil
}

// scrapePrintable keeps runs of printable ASCII from a legacy binary
// .doc file. Crude, but enough for the classifier to work with.
func scrapePrintable(data []byte) string {
	var b strings.Builder
	run := 0
	for _, c := range data {
		if c >= 0x20 && c < 0x7f {
			b.WriteByte(c)
			run++
			continue
		}
		if c == '\n' || c == '\r' || c == '\t' {
			b.WriteByte('\n')
			run = 0
			continue
		}
		if run > 0 {
			b.WriteByte('\n')
			run = 0
		}
	}
	return b.String()
}

func cleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = trailingWS.ReplaceAllString(text, "\n")
	text = excessSpace.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
