// Package layout turns plain resume text into a styled PDF document.
//
// The pipeline is a pure forward pass: Normalize splits and cleans the
// raw text, Classify assigns a role to every line using a small state
// machine, and Render maps each classified line to fixed typography.
package layout

import "strings"

// Normalize splits raw text into lines, trims trailing whitespace from
// each line, and collapses runs of blank lines to a single blank line.
// Blank-run collapsing is the only blank-line rule: leading and
// trailing blank lines survive as single blanks.
func Normalize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	raw := strings.Split(text, "\n")

	lines := make([]string, 0, len(raw))
	prevBlank := false
	for _, line := range raw {
		line = strings.TrimRight(line, " \t\r")
		blank := line == ""
		if blank && prevBlank {
			continue
		}
		lines = append(lines, line)
		prevBlank = blank
	}

	return lines
}
