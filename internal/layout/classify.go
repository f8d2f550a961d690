package layout

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Role identifies the typographic role of a single resume line.
type Role int

const (
	RoleBlank Role = iota
	RoleName
	RoleContact
	RoleSectionHeader
	RoleEntry
	RoleBullet
	RoleBody
)

func (r Role) String() string {
	switch r {
	case RoleBlank:
		return "Blank"
	case RoleName:
		return "Name"
	case RoleContact:
		return "Contact"
	case RoleSectionHeader:
		return "SectionHeader"
	case RoleEntry:
		return "Entry"
	case RoleBullet:
		return "Bullet"
	case RoleBody:
		return "Body"
	default:
		return "Unknown"
	}
}

// Line is one normalized input line together with its classified role.
type Line struct {
	Text string
	Role Role
}

const maxHeaderLen = 45

var (
	phoneRe      = regexp.MustCompile(`\+?\d[\d\s\-().]{7,}`)
	bulletRe     = regexp.MustCompile(`^\s*[•\-–*·▪◦○]`)
	indentRe     = regexp.MustCompile(`^\s{2,}[•\-–*]`)
	dateRe       = regexp.MustCompile(`(?i)(19|20)\d{2}|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec|Present|Current`)
	bulletStrip  = regexp.MustCompile(`^[\s•\-–*·▪◦○]+`)
	contactSepRe = regexp.MustCompile(`\s*[|•·✦]\s*`)
)

// Classify assigns a role to every normalized line in a single forward
// pass. The first non-blank line is always the name; the first line
// afterwards that carries contact signals is the contact line. Both
// roles are emitted at most once per document.
func Classify(lines []string) []Line {
	out := make([]Line, 0, len(lines))

	nameSeen := false
	contactSeen := false

	for _, text := range lines {
		out = append(out, Line{Text: text, Role: classifyLine(text, &nameSeen, &contactSeen)})
	}

	return out
}

func classifyLine(text string, nameSeen, contactSeen *bool) Role {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return RoleBlank
	}

	if !*nameSeen {
		*nameSeen = true
		return RoleName
	}

	if !*contactSeen && isContact(trimmed) {
		*contactSeen = true
		return RoleContact
	}

	if isSectionHeader(trimmed) {
		return RoleSectionHeader
	}

	if bulletRe.MatchString(text) || indentRe.MatchString(text) {
		return RoleBullet
	}

	if strings.Contains(trimmed, "|") && dateRe.MatchString(trimmed) {
		return RoleEntry
	}

	return RoleBody
}

func isContact(trimmed string) bool {
	if strings.Contains(trimmed, "@") {
		return true
	}
	if phoneRe.MatchString(trimmed) {
		return true
	}
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "linkedin") || strings.Contains(lower, "github") {
		return true
	}
	return strings.Contains(trimmed, "|") || strings.Contains(trimmed, " • ")
}

// isSectionHeader reports whether a short line is written entirely in
// upper case. Only ASCII letters count toward the all-caps check, so
// headers like "WORK EXPERIENCE (2020-2024)" still qualify while
// non-Latin text falls through to Body.
func isSectionHeader(trimmed string) bool {
	if utf8.RuneCountInString(trimmed) > maxHeaderLen {
		return false
	}

	letters := 0
	for _, r := range trimmed {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
		case r >= 'a' && r <= 'z':
			return false
		}
	}
	return letters >= 3
}

// StripBulletPrefix removes the leading glyph run from a bullet line.
func StripBulletPrefix(text string) string {
	return bulletStrip.ReplaceAllString(text, "")
}

// NormalizeContactSeparators rewrites any separator run in a contact
// line to the canonical "  |  " form.
func NormalizeContactSeparators(text string) string {
	return contactSepRe.ReplaceAllString(text, "  |  ")
}

// SplitEntry splits an entry line on "|" into at most three trimmed
// segments. Extra separators stay inside the final segment.
func SplitEntry(text string) []string {
	parts := strings.SplitN(text, "|", 3)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		segments = append(segments, strings.TrimSpace(p))
	}
	return segments
}
