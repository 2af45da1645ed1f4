// =============================================================================
// PaymentMaker - Address/Route Resolver
// =============================================================================
//
// This module extracts an ordered list of destination cities out of the
// free-text "Адрес выгрузки" cell. Address cells are multi-line and loosely
// formatted: lines mix full addresses, bare city names, abbreviations and
// misspellings ("с.посад", "иево-посадск"), so extraction is done in two
// passes per line:
//
//   1. A correction dictionary of known abbreviations/misspellings, matched
//      case-insensitively on word boundaries. A hit records the canonical
//      city at the highest priority.
//   2. An ordered list of extraction patterns (administrative prefix, known
//      city allow-list, district suffix, settlement prefix). Patterns carry
//      descending priorities; only the first matching pattern per line
//      contributes, so a line yields at most one pattern-derived city.
//
// Cities accumulate in a priority map across lines. A later, lower-priority
// mention never demotes a city that was already found at a higher priority.
// The fixed origin city is excluded even when a pattern matches it. The final
// route is sorted by descending priority; ties keep first-seen order.
//
// The correction dictionary and the pattern list are static process-wide
// data compiled once at package load; the resolver itself is stateless.
//
// =============================================================================

package processor

import (
	"regexp"
	"strings"
)

// OriginCity is the fixed origin every route starts from.
const OriginCity = "Дмитров"

// UnknownPoint is the destination sentinel used when no city can be resolved
// from an address cell.
const UnknownPoint = "Неизвестный пункт"

// maxDestinations caps the number of resolved destinations kept in a route.
const maxDestinations = 3

// topPriority is the rank assigned to correction-dictionary hits and to the
// first extraction pattern.
const topPriority = 3

// =============================================================================
// STATIC EXTRACTION TABLES
// =============================================================================

// cityCorrection maps one known abbreviation or misspelling to its canonical
// city. The entries are kept in a slice, not a map: tie-breaking between
// equal-priority cities relies on a deterministic evaluation order.
type cityCorrection struct {
	abbr string
	city string
	re   *regexp.Regexp
}

// cityCorrections is the correction dictionary. Matching is done against the
// lower-cased line, so the abbreviations are spelled in lower case.
var cityCorrections = buildCorrections([]struct{ abbr, city string }{
	{"о", "Одинцово"},
	{"иево", "Сергиев Посад"},
	{"иево-посадск", "Сергиев Посад"},
	{"с. посад", "Сергиев Посад"},
	{"с.посад", "Сергиев Посад"},
	{"серг посад", "Сергиев Посад"},
	{"серг. посад", "Сергиев Посад"},
	{"сергиево", "Сергиев Посад"},
	{"сергиев", "Сергиев Посад"},
	{"киржачск", "Киржач"},
})

// buildCorrections compiles the word-boundary pattern for every dictionary
// entry. Go's \b only covers ASCII word characters, so the boundary is
// spelled out as "not a letter or digit" around the quoted abbreviation.
func buildCorrections(entries []struct{ abbr, city string }) []cityCorrection {
	corrections := make([]cityCorrection, 0, len(entries))
	for _, e := range entries {
		pattern := `(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(e.abbr) + `(?:[^\p{L}\p{N}]|$)`
		corrections = append(corrections, cityCorrection{
			abbr: e.abbr,
			city: e.city,
			re:   regexp.MustCompile(pattern),
		})
	}
	return corrections
}

// extractionPatterns is the ordered pattern list. Index i carries priority
// topPriority-i, so the administrative-prefix form outranks the allow-list,
// which outranks the suffix and settlement forms.
var extractionPatterns = []*regexp.Regexp{
	// "го Дмитров", "г. Клин", "город Клин", "городской округ Клин"
	regexp.MustCompile(`(?i)(?:го\s+|г\.\s*|город\s+|городской округ\s+)([А-Яа-я\-]+)`),
	// Explicit allow-list of known cities, matched as whole words.
	regexp.MustCompile(`(?i)(?:^|\s)(Волоколамск|Одинцово|Сергиев\s*Посад|Киржач|Аленино)(?:\s|$|,)`),
	// "Клин муниципальный округ", "Клин район", "Клин го"
	regexp.MustCompile(`(?i)([А-Яа-я\-]+)(?:\s+(?:муниципальный округ|район|го))`),
	// "с. Аленино", "деревня Аленино", "п.Аленино"
	regexp.MustCompile(`(?i)(?:с\.|д\.|п\.|село|деревня|поселок)\s*([А-Яа-я\-]+)`),
}

// regionPattern recognizes the regional qualifier ("Московская обл").
var regionPattern = regexp.MustCompile(`([А-Яа-я]+)\s+обл`)

// =============================================================================
// RESOLVER
// =============================================================================

// rankedCity is one priority-map entry. Entries live in a slice in insertion
// order so that equal priorities sort first-seen-first.
type rankedCity struct {
	name     string
	priority int
}

// ResolveDestinations parses an address cell into destination city names,
// highest relevance first, excluding the origin city. At most one layer of
// enclosing quotes is stripped before the text is split on newlines.
//
// The resolver holds no state between calls: resolving the same text twice
// yields the same route.
func ResolveDestinations(addressText string) []string {
	lines := strings.Split(strings.Trim(addressText, `"`), "\n")

	var found []rankedCity

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		lowered := strings.ToLower(line)

		// Pass 1: correction dictionary. Every hit records the canonical
		// city at the top priority, regardless of what else is on the line.
		for _, c := range cityCorrections {
			if c.re.MatchString(lowered) {
				found = raise(found, c.city, topPriority)
			}
		}

		// Pass 2: extraction patterns, first match per line wins.
		for i, pattern := range extractionPatterns {
			m := pattern.FindStringSubmatch(line)
			if m == nil {
				continue
			}

			city := strings.TrimSpace(m[1])
			if !strings.EqualFold(city, OriginCity) {
				found = raise(found, city, topPriority-i)
			}
			break
		}

		// The regional qualifier is recognized but routing does not use it;
		// matched here so the behavior stays explicit instead of silently
		// dropped.
		_ = regionPattern.FindStringSubmatch(line)
	}

	sortByPriority(found)

	cities := make([]string, 0, len(found))
	for _, rc := range found {
		cities = append(cities, rc.name)
	}
	return cities
}

// raise records a city at the given priority, never demoting an existing
// higher or equal rank.
func raise(found []rankedCity, city string, priority int) []rankedCity {
	for i := range found {
		if found[i].name == city {
			if found[i].priority < priority {
				found[i].priority = priority
			}
			return found
		}
	}
	return append(found, rankedCity{name: city, priority: priority})
}

// sortByPriority orders entries by descending priority, keeping insertion
// order for ties (stable insertion sort; the slice holds at most a handful
// of cities).
func sortByPriority(found []rankedCity) {
	for i := 1; i < len(found); i++ {
		for j := i; j > 0 && found[j].priority > found[j-1].priority; j-- {
			found[j], found[j-1] = found[j-1], found[j]
		}
	}
}
