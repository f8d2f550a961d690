package layout

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"

	"resumeiq/internal/errors"
)

const (
	fontFamily = "Helvetica"
	marginPt   = 72 // 1 inch
	bulletHang = 18 // 0.25 inch hanging indent
)

type rgb struct{ r, g, b int }

var (
	colorInk      = rgb{0x11, 0x11, 0x11}
	colorContact  = rgb{0x44, 0x44, 0x44}
	colorEntryDim = rgb{0x55, 0x55, 0x55}
	colorEntrySep = rgb{0x77, 0x77, 0x77}
	colorBody     = rgb{0x22, 0x22, 0x22}
	colorRule     = rgb{0xAA, 0xAA, 0xAA}
)

type style struct {
	size   float64
	bold   bool
	color  rgb
	before float64
	after  float64
	center bool
}

var styles = map[Role]style{
	RoleName:          {size: 18, bold: true, color: colorInk, before: 0, after: 4, center: true},
	RoleContact:       {size: 10, color: colorContact, before: 0, after: 8, center: true},
	RoleSectionHeader: {size: 11, bold: true, color: colorInk, before: 10, after: 3},
	RoleEntry:         {size: 10.5, color: colorInk, before: 5, after: 1},
	RoleBullet:        {size: 10.5, color: colorBody, before: 1, after: 1},
	RoleBody:          {size: 10.5, color: colorBody, before: 1, after: 1},
	RoleBlank:         {size: 10.5, color: colorBody},
}

// Render runs the full pipeline on raw resume text and returns the
// bytes of a finished PDF document.
func Render(text string) ([]byte, error) {
	return RenderLines(Classify(Normalize(text)))
}

// RenderLines renders already classified lines. Identical input always
// produces identical layout decisions.
func RenderLines(lines []Line) ([]byte, error) {
	doc := fpdf.New("P", "pt", "Letter", "")
	doc.SetMargins(marginPt, marginPt, marginPt)
	doc.SetAutoPageBreak(true, marginPt)
	doc.AddPage()

	tr := doc.UnicodeTranslatorFromDescriptor("")
	pageW, _ := doc.GetPageSize()
	colW := pageW - 2*marginPt

	for _, line := range lines {
		st := styles[line.Role]
		lineH := st.size * 1.2

		if st.before > 0 {
			doc.SetY(doc.GetY() + st.before)
		}

		switch line.Role {
		case RoleBlank:
			doc.Ln(lineH * 0.5)

		case RoleName, RoleContact, RoleSectionHeader, RoleBody:
			text := line.Text
			if line.Role == RoleContact {
				text = NormalizeContactSeparators(strings.TrimSpace(text))
			}
			if line.Role == RoleSectionHeader {
				text = strings.ToUpper(strings.TrimSpace(text))
			}
			applyStyle(doc, st)
			align := "L"
			if st.center {
				align = "C"
			}
			doc.MultiCell(colW, lineH, tr(text), "", align, false)
			if line.Role == RoleSectionHeader {
				drawRule(doc, pageW)
			}

		case RoleEntry:
			renderEntry(doc, tr, st, lineH, line.Text)

		case RoleBullet:
			applyStyle(doc, st)
			doc.SetX(marginPt + bulletHang)
			doc.CellFormat(12, lineH, tr("•"), "", 0, "L", false, 0, "")
			doc.MultiCell(colW-bulletHang-12, lineH, tr(StripBulletPrefix(line.Text)), "", "L", false)
		}

		if st.after > 0 {
			doc.SetY(doc.GetY() + st.after)
		}
	}

	if doc.Err() {
		return nil, errors.NewRenderError(errors.ErrCodeRenderFailed, "document assembly failed", doc.Error())
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, errors.NewRenderError(errors.ErrCodeRenderFailed, "failed to write document", err)
	}
	return buf.Bytes(), nil
}

func applyStyle(doc *fpdf.Fpdf, st style) {
	variant := ""
	if st.bold {
		variant = "B"
	}
	doc.SetFont(fontFamily, variant, st.size)
	doc.SetTextColor(st.color.r, st.color.g, st.color.b)
}

func drawRule(doc *fpdf.Fpdf, pageW float64) {
	y := doc.GetY() + 1
	doc.SetDrawColor(colorRule.r, colorRule.g, colorRule.b)
	doc.SetLineWidth(0.5)
	doc.Line(marginPt, y, pageW-marginPt, y)
	doc.SetY(y + 1)
}

// renderEntry draws an entry line segment by segment: the first
// segment bold, the rest dimmed, with grey separators between them.
func renderEntry(doc *fpdf.Fpdf, tr func(string) string, st style, lineH float64, text string) {
	segments := SplitEntry(text)
	doc.SetX(marginPt)
	for i, seg := range segments {
		if i > 0 {
			doc.SetFont(fontFamily, "", st.size)
			doc.SetTextColor(colorEntrySep.r, colorEntrySep.g, colorEntrySep.b)
			doc.Write(lineH, tr("  |  "))
		}
		if i == 0 {
			doc.SetFont(fontFamily, "B", st.size)
			doc.SetTextColor(colorInk.r, colorInk.g, colorInk.b)
		} else {
			doc.SetFont(fontFamily, "", st.size)
			doc.SetTextColor(colorEntryDim.r, colorEntryDim.g, colorEntryDim.b)
		}
		doc.Write(lineH, tr(seg))
	}
	doc.Ln(lineH)
}
