package layout

import (
	"bytes"
	"strings"
	"testing"
)

const sampleResume = `John Doe
john@example.com | (555) 123-4567

PROFESSIONAL SUMMARY
Seasoned engineer with a decade of backend experience.

WORK EXPERIENCE
Acme Corp | Senior Engineer | Jan 2020 - Present
• Led migration of billing platform to event-driven architecture
• Cut p99 latency by 40%`

func TestRenderProducesPDF(t *testing.T) {
	out, err := Render(sampleResume)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty output")
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Errorf("output does not start with PDF magic, got %q", out[:min(8, len(out))])
	}
}

func TestRenderEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\n\t\n"} {
		out, err := Render(input)
		if err != nil {
			t.Fatalf("Render(%q) failed: %v", input, err)
		}
		if !bytes.HasPrefix(out, []byte("%PDF-")) {
			t.Errorf("Render(%q): expected a valid empty document", input)
		}
	}
}

func TestRenderSingleLine(t *testing.T) {
	out, err := Render("John Doe")
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("expected non-empty output")
	}
}

func TestRenderHandlesLongDocuments(t *testing.T) {
	var b strings.Builder
	b.WriteString("John Doe\na@b.c\n\nEXPERIENCE\n")
	for i := 0; i < 200; i++ {
		b.WriteString("• Accomplished a measurable outcome against a meaningful baseline\n")
	}

	out, err := Render(b.String())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF-")) {
		t.Error("expected a valid multi-page document")
	}
}
