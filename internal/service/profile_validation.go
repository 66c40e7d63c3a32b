package service

import (
	"regexp"
	"strings"
)

var namePartPattern = regexp.MustCompile(`^[A-Z][a-zA-Z]*$`)

// hasRepeatedRun reports whether s contains a run of four or more
// identical runes — the check `(.)\1{3,}` expresses in PCRE. Go's RE2
// engine has no backreferences, so the run is detected by scanning.
func hasRepeatedRun(s string) bool {
	var prev rune
	count := 0
	for _, r := range s {
		if count > 0 && r == prev {
			count++
			if count >= 4 {
				return true
			}
		} else {
			prev = r
			count = 1
		}
	}
	return false
}

// validateFullName enforces the profile name rules: at least first and
// last name, each part 2-20 alphabetic characters starting with a
// capital, no digits or symbols, no runs of four identical characters.
func validateFullName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrInvalidInput
	}
	parts := strings.Fields(trimmed)
	if len(parts) < 2 {
		return ErrInvalidInput
	}
	for _, part := range parts {
		if len(part) < 2 || len(part) > 20 {
			return ErrInvalidInput
		}
		if !namePartPattern.MatchString(part) {
			return ErrInvalidInput
		}
	}
	if hasRepeatedRun(trimmed) {
		return ErrInvalidInput
	}
	return nil
}
