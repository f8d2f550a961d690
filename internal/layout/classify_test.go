package layout

import (
	"reflect"
	"strings"
	"testing"
)

func TestClassifyResume(t *testing.T) {
	input := strings.Join([]string{
		"John Doe",
		"john@example.com | (555) 123-4567 | linkedin.com/in/johndoe",
		"",
		"PROFESSIONAL SUMMARY",
		"Seasoned engineer with a decade of backend experience.",
		"",
		"WORK EXPERIENCE",
		"Acme Corp | Senior Engineer | Jan 2020 - Present",
		"• Led migration of billing platform to event-driven architecture",
	}, "\n")

	expected := []Role{
		RoleName,
		RoleContact,
		RoleBlank,
		RoleSectionHeader,
		RoleBody,
		RoleBlank,
		RoleSectionHeader,
		RoleEntry,
		RoleBullet,
	}

	lines := Classify(Normalize(input))
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d", len(expected), len(lines))
	}
	for i, line := range lines {
		if line.Role != expected[i] {
			t.Errorf("line %d (%q): expected %v, got %v", i, line.Text, expected[i], line.Role)
		}
	}
}

func TestClassifyPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		expected []Role
	}{
		{
			name:     "first non-blank line is always the name",
			lines:    []string{"JOHN DOE"},
			expected: []Role{RoleName},
		},
		{
			name:     "all-caps first line beats header rule",
			lines:    []string{"EXPERIENCE", "EXPERIENCE"},
			expected: []Role{RoleName, RoleSectionHeader},
		},
		{
			name:     "contact by email",
			lines:    []string{"John Doe", "john@example.com"},
			expected: []Role{RoleName, RoleContact},
		},
		{
			name:     "contact by phone",
			lines:    []string{"John Doe", "+1 555 123 4567"},
			expected: []Role{RoleName, RoleContact},
		},
		{
			name:     "contact by profile link",
			lines:    []string{"John Doe", "GitHub.com/johndoe"},
			expected: []Role{RoleName, RoleContact},
		},
		{
			name:     "contact by separator",
			lines:    []string{"John Doe", "Boston • Remote"},
			expected: []Role{RoleName, RoleContact},
		},
		{
			name:     "pipe without date is body after contact consumed",
			lines:    []string{"John Doe", "a@b.c", "Skills | Tools"},
			expected: []Role{RoleName, RoleContact, RoleBody},
		},
		{
			name:     "pipe with year is entry",
			lines:    []string{"John Doe", "a@b.c", "Acme | 2019 - 2021"},
			expected: []Role{RoleName, RoleContact, RoleEntry},
		},
		{
			name:     "entry by month name",
			lines:    []string{"John Doe", "a@b.c", "Acme | Jan - Present"},
			expected: []Role{RoleName, RoleContact, RoleEntry},
		},
		{
			name:     "bullet beats entry",
			lines:    []string{"John Doe", "a@b.c", "- Shipped v2 | 2021"},
			expected: []Role{RoleName, RoleContact, RoleBullet},
		},
		{
			name:     "glyph alone marks a bullet, no space required",
			lines:    []string{"John Doe", "a@b.c", "-led the team"},
			expected: []Role{RoleName, RoleContact, RoleBullet},
		},
		{
			name:     "all-caps non-latin line is body",
			lines:    []string{"John Doe", "a@b.c", "ОПЫТ РАБОТЫ"},
			expected: []Role{RoleName, RoleContact, RoleBody},
		},
		{
			name:     "long all-caps line is body",
			lines:    []string{"John Doe", "a@b.c", strings.Repeat("A", 46)},
			expected: []Role{RoleName, RoleContact, RoleBody},
		},
		{
			name:     "mixed case short line is body",
			lines:    []string{"John Doe", "a@b.c", "Experience"},
			expected: []Role{RoleName, RoleContact, RoleBody},
		},
		{
			name:     "header with digits and punctuation",
			lines:    []string{"John Doe", "a@b.c", "EDUCATION & CERTS (2024)"},
			expected: []Role{RoleName, RoleContact, RoleSectionHeader},
		},
		{
			name:     "fewer than three letters is not a header",
			lines:    []string{"John Doe", "a@b.c", "GO"},
			expected: []Role{RoleName, RoleContact, RoleBody},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := Classify(tt.lines)
			got := make([]Role, len(lines))
			for i, l := range lines {
				got[i] = l.Role
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestClassifyAtMostOneNameAndContact(t *testing.T) {
	input := []string{
		"John Doe",
		"john@example.com",
		"jane@example.com | 555-123-4567",
		"linkedin.com/in/other",
	}

	lines := Classify(input)
	names, contacts := 0, 0
	for _, l := range lines {
		switch l.Role {
		case RoleName:
			names++
		case RoleContact:
			contacts++
		}
	}
	if names != 1 {
		t.Errorf("expected exactly one Name, got %d", names)
	}
	if contacts != 1 {
		t.Errorf("expected exactly one Contact, got %d", contacts)
	}
}

func TestClassifyDeterministic(t *testing.T) {
	input := Normalize("John Doe\na@b.c\n\nSKILLS\n• Go\n• SQL")
	first := Classify(input)
	for i := 0; i < 5; i++ {
		if !reflect.DeepEqual(Classify(input), first) {
			t.Fatal("classification is not deterministic")
		}
	}
}

func TestStripBulletPrefix(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"• Led the team", "Led the team"},
		{"- Built the pipeline", "Built the pipeline"},
		{"– Shipped v2", "Shipped v2"},
		{"  * Wrote docs", "Wrote docs"},
		{"▪ Item", "Item"},
		{"◦ Item", "Item"},
		{"○ Item", "Item"},
		{"·  Item", "Item"},
		{"no glyph", "no glyph"},
	}

	for _, tt := range tests {
		if got := StripBulletPrefix(tt.input); got != tt.expected {
			t.Errorf("StripBulletPrefix(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestNormalizeContactSeparators(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a@b.c | 555-1234", "a@b.c  |  555-1234"},
		{"a@b.c•555-1234", "a@b.c  |  555-1234"},
		{"a@b.c · github.com/a", "a@b.c  |  github.com/a"},
		{"a@b.c ✦ Boston", "a@b.c  |  Boston"},
		{"no separators here", "no separators here"},
	}

	for _, tt := range tests {
		if got := NormalizeContactSeparators(tt.input); got != tt.expected {
			t.Errorf("NormalizeContactSeparators(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestSplitEntry(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
	}{
		{"Acme | Engineer | 2020 - Present", []string{"Acme", "Engineer", "2020 - Present"}},
		{"Acme | 2020", []string{"Acme", "2020"}},
		{"Acme | Engineer | Boston | 2020", []string{"Acme", "Engineer", "Boston | 2020"}},
		{"Acme", []string{"Acme"}},
	}

	for _, tt := range tests {
		if got := SplitEntry(tt.input); !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("SplitEntry(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
