package classify

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vectorizer maps text to a sparse TF-IDF vector over a fixed vocabulary of
// single terms and adjacent term pairs. Fitted offline; read-only at serving
// time, so it is safe for unsynchronized concurrent use.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
	NgramMax   int            `json:"ngram_max"`
}

// Feature is one non-zero component of a transformed vector.
type Feature struct {
	Index int
	Value float64
}

// Transform builds the L2-normalized TF-IDF vector for text, sorted by
// vocabulary index so downstream dot products are order-stable. Terms outside
// the vocabulary are ignored.
func (v *Vectorizer) Transform(text string) []Feature {
	counts := make(map[int]float64)
	for _, term := range v.terms(text) {
		idx, ok := v.Vocabulary[term]
		if !ok {
			continue
		}
		counts[idx]++
	}

	indices := make([]int, 0, len(counts))
	for idx := range counts {
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	features := make([]Feature, 0, len(indices))
	var norm float64
	for _, idx := range indices {
		value := counts[idx] * v.IDF[idx]
		features = append(features, Feature{Index: idx, Value: value})
		norm += value * value
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range features {
			features[i].Value /= norm
		}
	}
	return features
}

// terms tokenizes text and expands tokens into n-grams up to NgramMax.
func (v *Vectorizer) terms(text string) []string {
	tokens := tokenize(text)
	max := v.NgramMax
	if max < 1 {
		max = 1
	}

	out := make([]string, 0, len(tokens)*max)
	for n := 1; n <= max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			out = append(out, strings.Join(tokens[i:i+n], " "))
		}
	}
	return out
}

// tokenize lowercases text, splits it into runs of letters and digits
// (accented letters included), and drops stopwords.
func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder
	flush := func() {
		if b.Len() == 0 {
			return
		}
		token := b.String()
		b.Reset()
		if !isStopword(token) {
			tokens = append(tokens, token)
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		flush()
	}
	flush()
	return tokens
}
