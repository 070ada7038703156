// Package terms turns free text into normalized index terms.
//
// The same normalization is applied when building the TF-IDF index and when
// tokenizing queries.
package terms

import (
	"regexp"
	"strings"
)

// MaxTermLength is the longest token kept as a term.
const MaxTermLength = 32

// minStemLength is the shortest stem a suffix may be stripped down to.
const minStemLength = 2

var splitPattern = regexp.MustCompile(`[^a-z0-9_-]+`)

// suffixes are ordered shortest first so the shortest matching suffix wins.
var suffixes = []string{"s", "es", "ed", "er", "ing"}

// Terms splits text into lowercase, stemmed terms with stopwords removed.
func Terms(text string) []string {
	tokens := splitPattern.Split(strings.ToLower(text), -1)
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.Trim(tok, "-_")
		if tok == "" || len(tok) > MaxTermLength || IsStopword(tok) {
			continue
		}
		out = append(out, Stem(tok))
	}
	return out
}

// Stem removes the shortest matching inflectional suffix from a lowercase word.
func Stem(word string) string {
	for _, suf := range suffixes {
		if strings.HasSuffix(word, suf) && len(word)-len(suf) >= minStemLength {
			return word[:len(word)-len(suf)]
		}
	}
	return word
}

var wordPattern = regexp.MustCompile(`[A-Za-z_]+`)

// WithoutCodeStopwords removes programming-language keywords from text,
// leaving everything else (including punctuation and layout) intact.
func WithoutCodeStopwords(text string) string {
	return wordPattern.ReplaceAllStringFunc(text, func(w string) string {
		if _, ok := codeStopwords[strings.ToLower(w)]; ok {
			return ""
		}
		return w
	})
}

// IsStopword reports whether a lowercase token is an English or code stopword.
func IsStopword(token string) bool {
	if _, ok := englishStopwords[token]; ok {
		return true
	}
	_, ok := codeStopwords[token]
	return ok
}
