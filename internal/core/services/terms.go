package services

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// supplementAliases maps supplement slugs to known synonyms that are not
// derivable from the name or slug. Extend when authors introduce a
// supplement whose common names diverge from its canonical one.
var supplementAliases = map[string][]string{
	"coq10":       {"ubiquinol", "coenzyme q10"},
	"omega-3":     {"fish oil", "epa", "dha"},
	"vitamin-d3":  {"cholecalciferol", "vitamin d"},
	"ashwagandha": {"withania somnifera"},
	"nad-booster": {"nad", "nicotinamide riboside", "nmn"},
	"curcumin":    {"turmeric"},
	"l-theanine":  {"theanine"},
	"5-htp":       {"hydroxytryptophan"},
}

// conditionStopwords are short or noisy tokens excluded from condition
// keyword extraction.
var conditionStopwords = map[string]struct{}{
	"and":  {},
	"the":  {},
	"risk": {},
	"load": {},
	"with": {},
	"for":  {},
	"into": {},
	"from": {},
}

// slugWords converts a slug into a space-separated phrase
// ("adrenal-fatigue" -> "adrenal fatigue").
func slugWords(slug string) string {
	return strings.ReplaceAll(slug, "-", " ")
}

// normaliseTerm lowercases and trims a term for matching.
func normaliseTerm(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// appendTerm appends a normalised, non-empty, not-yet-seen term.
func appendTerm(terms []string, seen map[string]struct{}, term string) []string {
	term = normaliseTerm(term)
	if term == "" {
		return terms
	}
	if _, ok := seen[term]; ok {
		return terms
	}
	seen[term] = struct{}{}
	return append(terms, term)
}

// supplementTerms derives the matchable terms for a supplement: canonical
// name, slug as words, the raw slug, and any declared aliases.
func supplementTerms(name, slug string) []string {
	seen := make(map[string]struct{})
	terms := make([]string, 0, 4)
	terms = appendTerm(terms, seen, name)
	terms = appendTerm(terms, seen, slugWords(slug))
	terms = appendTerm(terms, seen, slug)
	for _, alias := range supplementAliases[strings.ToLower(slug)] {
		terms = appendTerm(terms, seen, alias)
	}
	return terms
}

// conditionTerms derives the matchable terms for a condition: canonical
// name, slug as words, every declared keyword phrase, plus individual
// tokens from the name and keywords. Tokens shorter than four characters
// and stopwords are discarded.
func conditionTerms(name, slug string, keywords []string) []string {
	seen := make(map[string]struct{})
	terms := make([]string, 0, 2+len(keywords))
	terms = appendTerm(terms, seen, name)
	terms = appendTerm(terms, seen, slugWords(slug))
	for _, kw := range keywords {
		terms = appendTerm(terms, seen, kw)
	}

	tokenSource := name + " " + strings.Join(keywords, " ")
	for _, tok := range tokenize(tokenSource) {
		if utf8.RuneCountInString(tok) < 4 {
			continue
		}
		if _, stop := conditionStopwords[tok]; stop {
			continue
		}
		terms = appendTerm(terms, seen, tok)
	}
	return terms
}

// tokenize splits text on non-alphanumeric boundaries and lowercases the
// resulting tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// containsTerm reports whether a term matches the given text. A multi-word
// term (one containing a space) matches by plain substring containment.
// A single-word term must be delimited by word boundaries so that short
// terms never match inside a longer word ("nad" must not hit
// "denadification").
func containsTerm(text, term string) bool {
	if term == "" {
		return false
	}
	lowered := strings.ToLower(text)
	if strings.Contains(term, " ") {
		return strings.Contains(lowered, term)
	}
	return containsWord(lowered, term)
}

// containsAnyTerm reports whether any of the terms matches the text.
func containsAnyTerm(text string, terms []string) bool {
	for _, term := range terms {
		if containsTerm(text, term) {
			return true
		}
	}
	return false
}

// containsWord reports whether word occurs in text delimited by
// non-word runes (or the text edges). Both arguments must already be
// lowercased.
func containsWord(text, word string) bool {
	for start := 0; start <= len(text)-len(word); {
		i := strings.Index(text[start:], word)
		if i < 0 {
			return false
		}
		i += start
		if boundaryBefore(text, i) && boundaryAfter(text, i+len(word)) {
			return true
		}
		start = i + 1
	}
	return false
}

func boundaryBefore(text string, i int) bool {
	if i == 0 {
		return true
	}
	r, _ := utf8.DecodeLastRuneInString(text[:i])
	return !isWordRune(r)
}

func boundaryAfter(text string, i int) bool {
	if i >= len(text) {
		return true
	}
	r, _ := utf8.DecodeRuneInString(text[i:])
	return !isWordRune(r)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
