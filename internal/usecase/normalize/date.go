package normalize

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// spanishMonths maps lowercase month names and their common abbreviations to
// month numbers. Abbreviations appear with and without a trailing dot on the
// source sites; dots are stripped before lookup.
var spanishMonths = map[string]int{
	"enero": 1, "febrero": 2, "marzo": 3, "abril": 4,
	"mayo": 5, "junio": 6, "julio": 7, "agosto": 8,
	"septiembre": 9, "octubre": 10, "noviembre": 11, "diciembre": 12,
	"ene": 1, "feb": 2, "mar": 3, "abr": 4, "may": 5, "jun": 6,
	"jul": 7, "ago": 8, "sep": 9, "sept": 9, "oct": 10,
	"nov": 11, "dic": 12,
}

// fillerWords are tokens that carry no date information in long-form Spanish
// dates ("lunes, 13 de enero de 2024"). Weekday names include the unaccented
// spellings seen in hand-authored pages.
var fillerWords = map[string]bool{
	"de": true, "del": true,
	"lunes": true, "martes": true, "miércoles": true, "miercoles": true,
	"jueves": true, "viernes": true, "sábado": true, "sabado": true,
	"domingo": true,
}

// datePattern is one pure parse attempt over the date fields.
// Patterns are tried in order; the first that yields a calendar-valid
// date wins. Keeping them as data makes each testable in isolation.
type datePattern struct {
	name  string
	parse func(fields []string) (year, month, day int, ok bool)
}

// buildPatterns returns the ordered pattern list for this normalizer.
func (n *Normalizer) buildPatterns() []datePattern {
	return []datePattern{
		{
			// 2024-03-15 and separator variants; year leads.
			name: "year-month-day",
			parse: func(f []string) (int, int, int, bool) {
				year, ok := parseYear(f[0])
				if !ok {
					return 0, 0, 0, false
				}
				month, ok := parseNumber(f[1], 1, 12)
				if !ok {
					return 0, 0, 0, false
				}
				day, ok := parseNumber(f[2], 1, 31)
				if !ok {
					return 0, 0, 0, false
				}
				return year, month, day, true
			},
		},
		{
			// 13 enero 2024, 13-Ene.-2024, including fuzzy month names.
			name: "day-monthname-year",
			parse: func(f []string) (int, int, int, bool) {
				day, ok := parseNumber(f[0], 1, 31)
				if !ok {
					return 0, 0, 0, false
				}
				month, ok := n.matchMonth(f[1])
				if !ok {
					return 0, 0, 0, false
				}
				year, ok := parseYear(f[2])
				if !ok {
					return 0, 0, 0, false
				}
				return year, month, day, true
			},
		},
		{
			// All-numeric 13/01/2024; field order by configured locale.
			name: "numeric-locale-order",
			parse: func(f []string) (int, int, int, bool) {
				first, ok := parseNumber(f[0], 1, 31)
				if !ok {
					return 0, 0, 0, false
				}
				second, ok := parseNumber(f[1], 1, 31)
				if !ok {
					return 0, 0, 0, false
				}
				year, ok := parseYear(f[2])
				if !ok {
					return 0, 0, 0, false
				}
				if n.cfg.DayFirst {
					return year, second, first, true
				}
				return year, first, second, true
			},
		},
	}
}

// ParseDate parses free-form date text into a timestamp at noon in the
// configured location. It tries the ordered pattern list and accepts the
// first pattern producing a calendar-valid date. When every pattern fails
// the entry-level *DateParseError carries the offending text.
func (n *Normalizer) ParseDate(raw string) (time.Time, error) {
	fields := splitDateFields(raw)
	if len(fields) == 3 {
		for _, p := range n.patterns {
			year, month, day, ok := p.parse(fields)
			if !ok {
				continue
			}
			if t, valid := calendarDate(year, month, day, n.cfg.Location); valid {
				return t, nil
			}
		}
	}
	return time.Time{}, &DateParseError{Raw: raw}
}

// splitDateFields normalizes separators to spaces and drops filler words,
// leaving only the tokens that carry date information.
func splitDateFields(raw string) []string {
	normalized := strings.Map(func(r rune) rune {
		switch r {
		case '/', '-', ',':
			return ' '
		}
		return r
	}, raw)

	// Dots both separate fields ("15.03.2024") and end abbreviations
	// ("Ene."). Only treat a dot as a separator between two digits.
	var b strings.Builder
	runes := []rune(normalized)
	for i, r := range runes {
		if r == '.' && i > 0 && i+1 < len(runes) &&
			unicode.IsDigit(runes[i-1]) && unicode.IsDigit(runes[i+1]) {
			b.WriteRune(' ')
			continue
		}
		b.WriteRune(r)
	}

	var fields []string
	for _, f := range strings.Fields(b.String()) {
		if fillerWords[strings.ToLower(f)] {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// matchMonth resolves a month token against the Spanish month set.
// Exact matches (case-insensitive, trailing dot stripped) win outright;
// otherwise a fuzzy match within the configured edit distance is accepted
// only when a single month is the unambiguous closest candidate.
func (n *Normalizer) matchMonth(token string) (int, bool) {
	name := strings.ToLower(strings.TrimSuffix(token, "."))
	if m, ok := spanishMonths[name]; ok {
		return m, true
	}
	if n.cfg.MonthDistance <= 0 {
		return 0, false
	}

	best, bestMonth, ties := n.cfg.MonthDistance+1, 0, 0
	for candidate, m := range spanishMonths {
		d := editDistance(name, candidate)
		switch {
		case d < best:
			best, bestMonth, ties = d, m, 1
		case d == best && m != bestMonth:
			ties++
		}
	}
	if best > n.cfg.MonthDistance || ties > 1 {
		return 0, false
	}
	return bestMonth, true
}

// calendarDate builds a noon timestamp and verifies the components round-trip,
// rejecting impossible dates like February 30 that time.Date would normalize.
func calendarDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	t := time.Date(year, time.Month(month), day, 12, 0, 0, 0, loc)
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// parseYear accepts only 4-digit years; anything else is too ambiguous
// for hand-authored text.
func parseYear(s string) (int, bool) {
	if len(s) != 4 {
		return 0, false
	}
	return parseNumber(s, 1000, 9999)
}

// parseNumber parses a decimal token within [min, max].
// Missing leading zeros are fine; "3" and "03" both parse.
func parseNumber(s string, min, max int) (int, bool) {
	v, err := strconv.Atoi(s)
	if err != nil || v < min || v > max {
		return 0, false
	}
	return v, true
}

// editDistance computes the Levenshtein distance between two strings,
// counting runes so accented month names compare correctly.
func editDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
