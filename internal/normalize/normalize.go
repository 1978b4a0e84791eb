// Package normalize canonicalizes skill names, date strings, and bullet
// text on the internal resume record. Everything in this package is pure
// and deterministic: unrecognized input passes through unchanged rather
// than raising an error.
package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/jonathan/resume-formatter/internal/types"
)

// fuzzyThreshold is the minimum PartialRatio score (0-100) at which a skill
// is snapped to a synonym-table key that did not match exactly.
const fuzzyThreshold = 90

// minFuzzyLength guards the fuzzy pass against very short inputs: a one- or
// two-letter skill (for example "C" or "Go") is a substring of too many
// keys for a partial ratio to mean anything.
const minFuzzyLength = 3

// skillSynonyms maps lowercased skill variants to canonical names
var skillSynonyms = map[string]string{
	"node":     "Node.js",
	"nodejs":   "Node.js",
	"node.js":  "Node.js",
	"postgres": "PostgreSQL",
	"gcp":      "GCP",
	"ms sql":   "SQL Server",
	"mongo":    "MongoDB",
}

// synonymKeys holds the table keys in sorted order so the fuzzy pass scans
// them deterministically.
var synonymKeys = sortedKeys(skillSynonyms)

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// monthNumbers maps lowercased month names and abbreviations to two-digit
// month strings.
var monthNumbers = map[string]string{
	"jan": "01", "january": "01",
	"feb": "02", "february": "02",
	"mar": "03", "march": "03",
	"apr": "04", "april": "04",
	"may": "05",
	"jun": "06", "june": "06",
	"jul": "07", "july": "07",
	"aug": "08", "august": "08",
	"sep": "09", "sept": "09", "september": "09",
	"oct": "10", "october": "10",
	"nov": "11", "november": "11",
	"dec": "12", "december": "12",
}

// presentTerms is the closed set of phrases treated as the "Present"
// sentinel, compared after lowercasing and trimming.
var presentTerms = map[string]bool{
	"present":      true,
	"current":      true,
	"now":          true,
	"till now":     true,
	"till date":    true,
	"to date":      true,
	"until now":    true,
	"till present": true,
	"ongoing":      true,
}

var (
	trailingPunctRe = regexp.MustCompile(`[.,]$`)
	yearFirstRe     = regexp.MustCompile(`^(\d{4})[-/](\d{1,2})(?:[-/]\d{1,2})?$`)
	monthFirstRe    = regexp.MustCompile(`^(\d{1,2})[-/](\d{2,4})$`)
	monthNameRe     = regexp.MustCompile(`^(\w{3,9})\s+(\d{4})$`)
	bareYearRe      = regexp.MustCompile(`^(\d{4})$`)
	anyMonthRe      = regexp.MustCompile(`(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`)
	anyYearRe       = regexp.MustCompile(`(\d{4})`)
)

// Skill canonicalizes one skill name: exact synonym lookup first, then a
// fuzzy pass over the synonym table, else the trimmed original.
func Skill(s string) string {
	trimmed := strings.TrimSpace(s)
	key := strings.ToLower(trimmed)
	if canonical, ok := skillSynonyms[key]; ok {
		return canonical
	}

	if len(key) >= minFuzzyLength {
		best, bestScore := "", -1
		for _, k := range synonymKeys {
			if score := fuzzy.PartialRatio(key, k); score > bestScore {
				best, bestScore = k, score
			}
		}
		if bestScore >= fuzzyThreshold {
			return skillSynonyms[best]
		}
	}

	return trimmed
}

// Skills canonicalizes a skill list and deduplicates it case-insensitively,
// keeping first occurrence and original relative order. Empty entries are
// dropped.
func Skills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	deduped := make([]string, 0, len(skills))
	for _, s := range skills {
		canonical := Skill(s)
		if canonical == "" {
			continue
		}
		key := strings.ToLower(canonical)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, canonical)
	}
	return deduped
}

// Date canonicalizes a date string to "MM/YYYY", the sentinel "Present",
// or returns the original string when no known format matches.
func Date(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return s
	}
	low := strings.ToLower(s)
	if presentTerms[low] {
		return "Present"
	}

	clean := trailingPunctRe.ReplaceAllString(low, "")

	// YYYY-MM, YYYY/MM, YYYY-MM-DD
	if m := yearFirstRe.FindStringSubmatch(clean); m != nil {
		month, _ := strconv.Atoi(m[2])
		return fmt.Sprintf("%02d/%s", clampMonth(month), m[1])
	}

	// MM-YYYY, M/YYYY, MM/YY
	if m := monthFirstRe.FindStringSubmatch(clean); m != nil {
		month, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		if len(m[2]) != 4 {
			// Two-digit years pivot at 50.
			if year < 50 {
				year += 2000
			} else {
				year += 1900
			}
		}
		return fmt.Sprintf("%02d/%d", clampMonth(month), year)
	}

	// "Month YYYY" or "Mon YYYY"
	if m := monthNameRe.FindStringSubmatch(clean); m != nil {
		if month := lookupMonth(m[1]); month != "" {
			return fmt.Sprintf("%s/%s", month, m[2])
		}
	}

	// Bare year defaults to January.
	if m := bareYearRe.FindStringSubmatch(clean); m != nil {
		return fmt.Sprintf("01/%s", m[1])
	}

	// Fallback scan: any month name plus any 4-digit year anywhere.
	monthMatch := anyMonthRe.FindStringSubmatch(clean)
	yearMatch := anyYearRe.FindStringSubmatch(clean)
	if monthMatch != nil && yearMatch != nil {
		if month := lookupMonth(monthMatch[1]); month != "" {
			return fmt.Sprintf("%s/%s", month, yearMatch[1])
		}
	}

	if strings.Contains(low, "present") {
		return "Present"
	}
	return s
}

func clampMonth(m int) int {
	if m < 1 {
		return 1
	}
	if m > 12 {
		return 12
	}
	return m
}

func lookupMonth(name string) string {
	if month, ok := monthNumbers[name]; ok {
		return month
	}
	if len(name) >= 3 {
		if month, ok := monthNumbers[name[:3]]; ok {
			return month
		}
	}
	return ""
}

// Bullet strips whitespace and leading bullet glyphs from one bullet line.
func Bullet(b string) string {
	b = strings.TrimSpace(b)
	b = strings.TrimLeft(b, "-•· ")
	return strings.TrimSpace(b)
}

// Record returns a normalized copy of the record: canonical deduplicated
// skills, canonical experience dates, and cleaned bullets with empties
// dropped. The input record is not mutated, and skill order is preserved
// (never reordered here).
func Record(r types.Resume) types.Resume {
	out := r
	out.CoreSkills = Skills(r.CoreSkills)

	out.Experience = make([]types.ExperienceItem, len(r.Experience))
	for i, item := range r.Experience {
		norm := item
		norm.StartDate = Date(item.StartDate)
		norm.EndDate = Date(item.EndDate)
		norm.Bullets = make([]string, 0, len(item.Bullets))
		for _, b := range item.Bullets {
			if cleaned := Bullet(b); cleaned != "" {
				norm.Bullets = append(norm.Bullets, cleaned)
			}
		}
		out.Experience[i] = norm
	}
	return out
}
