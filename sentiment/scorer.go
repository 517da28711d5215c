package sentiment

import (
	"math"
	"strings"
	"unicode"
)

// windowRadius is how many words on each side of a keyword hit are searched
// for polarity words.
const windowRadius = 5

// mentionScore is returned when a bucket is mentioned without any polarity word.
const mentionScore = 0.1

// tokenize lowercases text, drops everything that is not an ASCII letter or
// whitespace (without inserting a separator, so "don't" becomes "dont") and
// splits on whitespace.
func tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(r)
		}
	}
	return strings.Fields(b.String())
}

// KeywordSentiment scores text against one bucket's keyword set.
//
// Every word within windowRadius of any keyword hit is pooled into a single
// set, so overlapping windows count a polarity word once. It returns
// (0, false) when no keyword occurs, (0.1, true) for a mention without
// polarity words, and otherwise (pos-neg)/(pos+neg) rounded to two decimals.
func KeywordSentiment(text string, keywords map[string]struct{}) (float64, bool) {
	words := tokenize(text)

	window := make(map[string]struct{})
	found := false
	for i, w := range words {
		if _, ok := keywords[w]; !ok {
			continue
		}
		found = true
		start := max(0, i-windowRadius)
		end := min(len(words), i+windowRadius+1)
		for _, ww := range words[start:end] {
			window[ww] = struct{}{}
		}
	}
	if !found {
		return 0, false
	}

	var pos, neg int
	for w := range window {
		if positiveWords.has(w) {
			pos++
		}
		if negativeWords.has(w) {
			neg++
		}
	}
	total := pos + neg
	if total == 0 {
		return mentionScore, true
	}

	score := float64(pos-neg) / float64(total)
	return Round2(Clamp(score)), true
}

// Clamp bounds a score to [-1, 1].
func Clamp(score float64) float64 {
	return math.Max(-1, math.Min(1, score))
}

// Round2 rounds half to even at two decimals.
func Round2(v float64) float64 {
	return math.RoundToEven(v*100) / 100
}
