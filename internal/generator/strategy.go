package generator

import (
	"strings"
	"time"
	"unicode"

	"github.com/brianvoe/gofakeit/v7"
	"golang.org/x/text/cases"

	"github.com/roach88/mockingbird/internal/ir"
)

// DefaultThreshold is the minimum name similarity for a candidate to be
// used.
const DefaultThreshold = 0.5

// Candidate is a named value source for heuristic generation.
type Candidate struct {
	// Names are the field names the candidate answers to, e.g. "email",
	// "emailAddress". Matching is fuzzy.
	Names []string

	// Type is the field type the candidate produces.
	Type ir.FieldType

	// Generate produces a value. now is the generator's clock.
	Generate func(f *gofakeit.Faker, now time.Time) any
}

// Strategy picks a heuristic candidate for a field name and type.
type Strategy interface {
	Find(name string, t ir.FieldType) (Candidate, bool)
}

type indexedCandidate struct {
	cand     Candidate
	norms    []string
	stripped []string
}

// FuzzyStrategy matches field names against candidate names by normalized
// Levenshtein similarity. Only candidates of the requested type compete;
// ties go to the earlier candidate.
type FuzzyStrategy struct {
	Threshold float64
	index     []indexedCandidate
}

// NewFuzzyStrategy indexes catalog for matching.
func NewFuzzyStrategy(catalog []Candidate) *FuzzyStrategy {
	s := &FuzzyStrategy{Threshold: DefaultThreshold}
	for _, c := range catalog {
		ic := indexedCandidate{cand: c}
		for _, n := range c.Names {
			ic.norms = append(ic.norms, NormalizeName(n))
			ic.stripped = append(ic.stripped, normalizeStripped(n))
		}
		s.index = append(s.index, ic)
	}
	return s
}

// Find returns the best scoring candidate for name, if it reaches the
// threshold.
func (s *FuzzyStrategy) Find(name string, t ir.FieldType) (Candidate, bool) {
	norm := NormalizeName(name)
	if norm == "" {
		return Candidate{}, false
	}
	stripped := normalizeStripped(name)

	best, bestScore := -1, 0.0
	for i, ic := range s.index {
		if ic.cand.Type != t {
			continue
		}
		for j := range ic.norms {
			score := max(
				Similarity(norm, ic.norms[j]),
				Similarity(stripped, ic.stripped[j]),
			)
			if score > bestScore {
				best, bestScore = i, score
			}
		}
	}
	if best < 0 || bestScore < s.Threshold {
		return Candidate{}, false
	}
	return s.index[best].cand, true
}

// NormalizeName folds an identifier for fuzzy matching: CamelCase and
// separators are collapsed and the result is case folded, so "firstName",
// "first_name" and "FIRST-NAME" normalize alike.
func NormalizeName(s string) string {
	return cases.Fold().String(strings.Join(tokenize(s), ""))
}

// normalizeStripped also drops a trailing identifier suffix ("userId" and
// "user" compare equal).
func normalizeStripped(s string) string {
	n := NormalizeName(s)
	for _, suffix := range []string{"timestamp", "ids", "utc", "id", "at"} {
		if strings.HasSuffix(n, suffix) && len(n) > len(suffix) {
			return strings.TrimSuffix(n, suffix)
		}
	}
	return n
}

// tokenize splits CamelCase and separator delimited identifiers.
//
//	"OrderID"         -> ["Order", "ID"]
//	"XMLParser"       -> ["XML", "Parser"]
//	"zip_code"        -> ["zip", "code"]
func tokenize(s string) []string {
	var (
		tokens  []string
		current strings.Builder
	)
	runes := []rune(s)
	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}
		if i > 0 && startsToken(runes, i) {
			flush()
		}
		current.WriteRune(r)
	}
	flush()
	return tokens
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

func startsToken(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}
	if !unicode.IsUpper(prev) {
		return true
	}
	// end of an acronym: "XMLParser" splits before 'P'
	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

// Similarity is 1 minus the Levenshtein distance over the longer length,
// computed on runes. Identical strings score 1.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 && len(rb) == 0 {
		return 1
	}
	return 1 - float64(Levenshtein(a, b))/float64(max(len(ra), len(rb)))
}

// Levenshtein returns the edit distance between a and b in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for i := range prev {
		prev[i] = i
	}
	for j := 1; j <= len(rb); j++ {
		curr[0] = j
		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}
