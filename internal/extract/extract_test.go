package extract

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"

	apperrors "resumeiq/internal/errors"
)

func TestExtractTXT(t *testing.T) {
	text, err := Extract("resume.txt", []byte("John Doe\njohn@example.com\n"))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "John Doe\njohn@example.com" {
		t.Errorf("unexpected text: %q", text)
	}
}

func TestExtractTXTLatin1Fallback(t *testing.T) {
	// "résumé" encoded as Latin-1, not valid UTF-8.
	data := []byte{'r', 0xe9, 's', 'u', 'm', 0xe9}
	text, err := Extract("resume.txt", data)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if text != "résumé" {
		t.Errorf("expected Latin-1 fallback decode, got %q", text)
	}
}

func TestExtractUnsupportedExtension(t *testing.T) {
	for _, name := range []string{"resume.png", "resume.html", "resume", "resume.exe"} {
		_, err := Extract(name, []byte("content"))
		if err == nil {
			t.Errorf("Extract(%q): expected error, got none", name)
			continue
		}
		appErr, ok := err.(*apperrors.AppError)
		if !ok || appErr.Code != apperrors.ErrCodeUnsupportedFormat {
			t.Errorf("Extract(%q): expected %s, got %v", name, apperrors.ErrCodeUnsupportedFormat, err)
		}
	}
}

func TestExtractExtensionCaseInsensitive(t *testing.T) {
	if _, err := Extract("RESUME.TXT", []byte("John Doe")); err != nil {
		t.Errorf("expected upper-case extension to be accepted, got %v", err)
	}
}

func TestExtractEmptyDocument(t *testing.T) {
	_, err := Extract("resume.txt", []byte("   \n\n  "))
	if err == nil {
		t.Fatal("expected error for empty document")
	}
	appErr, ok := err.(*apperrors.AppError)
	if !ok || appErr.Code != apperrors.ErrCodeEmptyDocument {
		t.Errorf("expected %s, got %v", apperrors.ErrCodeEmptyDocument, err)
	}
}

func TestExtractDOCX(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document><w:body>` +
		`<w:p><w:r><w:t>John Doe</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>Engineer</w:t><w:tab/><w:t>Boston</w:t></w:r></w:p>` +
		`</w:body></w:document>`

	text, err := Extract("resume.docx", buildDOCX(t, doc))
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(text, "John Doe") {
		t.Errorf("expected paragraph text, got %q", text)
	}
	if !strings.Contains(text, "Engineer\tBoston") {
		t.Errorf("expected tab to survive, got %q", text)
	}
	if strings.Contains(text, "<w:") {
		t.Errorf("markup leaked into output: %q", text)
	}
}

func TestExtractDOCXMissingBody(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/styles.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("<styles/>")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}

	_, err = Extract("resume.docx", buf.Bytes())
	if err == nil {
		t.Fatal("expected error for archive without document body")
	}
}

func TestExtractDOCXCorrupt(t *testing.T) {
	_, err := Extract("resume.docx", []byte("not a zip archive"))
	if err == nil {
		t.Fatal("expected error for corrupt archive")
	}
}

func TestExtractDOCFallsBackToScrape(t *testing.T) {
	// A legacy .doc is not a zip; the printable scrape should still
	// recover embedded text runs.
	data := append([]byte{0xd0, 0xcf, 0x11, 0xe0, 0x00, 0x00}, []byte("John Doe resume text")...)
	data = append(data, 0x00, 0x01)

	text, err := Extract("resume.doc", data)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if !strings.Contains(text, "John Doe resume text") {
		t.Errorf("expected scraped text, got %q", text)
	}
}

func buildDOCX(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}
