package service

import (
	"strings"
	"unicode"
)

// KeywordOverlapScore is the deterministic local fallback used when the
// scoring collaborator is unavailable. It measures what fraction of the
// job description's distinct significant words appear in the resume and
// maps that to 0-100.
func KeywordOverlapScore(resumeText, jobText string) int {
	jobWords := significantWords(jobText)
	if len(jobWords) == 0 {
		return 0
	}

	resumeWords := make(map[string]bool)
	for _, w := range tokenize(resumeText) {
		resumeWords[w] = true
	}

	matched := 0
	for w := range jobWords {
		if resumeWords[w] {
			matched++
		}
	}
	return matched * 100 / len(jobWords)
}

// StrengthFor maps a 0-100 score to a profile strength classification.
func StrengthFor(score int) string {
	switch {
	case score >= 70:
		return "strong"
	case score >= 40:
		return "moderate"
	default:
		return "weak"
	}
}

// stopwords carry no signal for keyword overlap.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "you": true,
	"are": true, "our": true, "will": true, "have": true, "that": true,
	"this": true, "from": true, "your": true, "all": true, "who": true,
	"can": true, "not": true, "but": true, "has": true, "was": true,
}

func significantWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range tokenize(text) {
		if len(w) >= 3 && !stopwords[w] {
			words[w] = true
		}
	}
	return words
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
