package utils

import "strings"

// NormalizeSpace collapses repeated whitespace into a single space.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// SplitSeatList splits comma/semicolon separated seat strings into cleaned
// uppercase slices.
func SplitSeatList(raw string) []string {
	out := []string{}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n'
	})
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, strings.ToUpper(p))
	}
	return out
}

// JoinSeatList is the storage counterpart of SplitSeatList.
func JoinSeatList(seats []string) string {
	clean := make([]string, 0, len(seats))
	for _, s := range seats {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			clean = append(clean, s)
		}
	}
	return strings.Join(clean, ",")
}

// SplitCSV splits a comma separated list, trimming blanks.
func SplitCSV(raw string) []string {
	out := []string{}
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
