package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsTermWordBoundary(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want bool
	}{
		{"single word match", "boost your nad levels", "nad", true},
		{"no match inside larger word", "the denadification process", "nad", false},
		{"no match at word end", "a trip to grenada", "nad", false},
		{"match at text start", "nad declines with age", "nad", true},
		{"match at text end", "restoring cellular nad", "nad", true},
		{"punctuation is a boundary", "low nad, low energy", "nad", true},
		{"case insensitive", "NAD precursors", "nad", true},
		{"digit blocks boundary", "model nad5 output", "nad", false},
		{"empty term never matches", "anything", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, containsTerm(tt.text, tt.term))
		})
	}
}

func TestContainsTermMultiWord(t *testing.T) {
	// Multi-word terms match by plain substring containment, even inside
	// larger words at the edges.
	assert.True(t, containsTerm("benefits of coenzyme q10 for the heart", "coenzyme q10"))
	assert.False(t, containsTerm("coenzyme levels", "coenzyme q10"))
	assert.True(t, containsTerm("Fish Oil supplements", "fish oil"))
}

func TestSupplementTerms(t *testing.T) {
	terms := supplementTerms("CoQ10", "coq10")

	assert.Contains(t, terms, "coq10")
	assert.Contains(t, terms, "ubiquinol")
	assert.Contains(t, terms, "coenzyme q10")
	// Name, slug-as-words and raw slug collapse into one entry here.
	assert.Len(t, terms, 3)
}

func TestSupplementTermsSlugWords(t *testing.T) {
	terms := supplementTerms("Vitamin D3", "vitamin-d3")

	assert.Contains(t, terms, "vitamin d3")
	assert.Contains(t, terms, "vitamin-d3")
	assert.Contains(t, terms, "cholecalciferol")
	assert.Contains(t, terms, "vitamin d")
}

func TestConditionTerms(t *testing.T) {
	terms := conditionTerms("Sleep & Stress", "sleep-stress", []string{"poor sleep", "cortisol"})

	assert.Contains(t, terms, "sleep & stress")
	assert.Contains(t, terms, "sleep stress")
	assert.Contains(t, terms, "poor sleep")
	assert.Contains(t, terms, "cortisol")
	// Tokens extracted from name and keywords.
	assert.Contains(t, terms, "sleep")
	assert.Contains(t, terms, "stress")
	assert.Contains(t, terms, "poor")
}

func TestConditionTermsFiltering(t *testing.T) {
	terms := conditionTerms("Risk and Load", "risk-load", []string{"the load with it"})

	// Stopwords and short tokens never survive extraction.
	assert.NotContains(t, terms, "risk")
	assert.NotContains(t, terms, "load")
	assert.NotContains(t, terms, "the")
	assert.NotContains(t, terms, "and")
	assert.NotContains(t, terms, "with")
	assert.NotContains(t, terms, "it")
	// The full phrases remain matchable.
	assert.Contains(t, terms, "risk and load")
	assert.Contains(t, terms, "the load with it")
}

func TestConditionTermsDeduplicated(t *testing.T) {
	terms := conditionTerms("Insomnia", "insomnia", []string{"insomnia", "Insomnia"})

	count := 0
	for _, term := range terms {
		if term == "insomnia" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
