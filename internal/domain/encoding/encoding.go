// Package encoding builds TF-IDF vector representations for course
// descriptions and preference queries over a shared vocabulary.
package encoding

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vector is a term-weight vector. Its dimensionality equals the size of
// the vocabulary it was encoded against; all entries are non-negative.
type Vector []float64

// IsZero reports whether the vector carries no lexical signal.
func (v Vector) IsZero() bool {
	for _, w := range v {
		if w != 0 {
			return false
		}
	}
	return true
}

// Magnitude returns the Euclidean norm of the vector.
func (v Vector) Magnitude() float64 {
	var sum float64
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Vectorizer holds a vocabulary fitted on a document corpus and the
// per-term inverse document frequencies. A Vectorizer is immutable after
// construction; queries and documents encoded by the same Vectorizer
// share term indices, so their vectors are directly comparable.
type Vectorizer struct {
	terms       []string
	index       map[string]int
	idf         []float64
	stopWords   map[string]struct{}
	maxFeatures int
}

// NewVectorizer fits a vocabulary and IDF weights on the given documents.
// Term order is lexicographic, so two fits on the same corpus produce
// identical vector layouts.
func NewVectorizer(docs []string, opts ...Option) *Vectorizer {
	v := &Vectorizer{
		stopWords:   defaultStopWords(),
		maxFeatures: defaultMaxFeatures,
	}

	// Apply all options
	for _, opt := range opts {
		opt(v)
	}

	v.fit(docs)
	return v
}

// Default vocabulary bound, matching the catalog-sized corpora this
// engine targets.
const defaultMaxFeatures = 5000

// fit builds the vocabulary and IDF table from the corpus.
func (v *Vectorizer) fit(docs []string) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, term := range v.tokenize(doc) {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	// Bound the vocabulary by document frequency, preferring common
	// terms; ties resolve lexicographically so the cut is stable.
	if v.maxFeatures > 0 && len(terms) > v.maxFeatures {
		sort.SliceStable(terms, func(i, j int) bool {
			if df[terms[i]] != df[terms[j]] {
				return df[terms[i]] > df[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.maxFeatures]
		sort.Strings(terms)
	}

	v.terms = terms
	v.index = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(docs))
	for i, term := range terms {
		v.index[term] = i
		// Smoothed IDF keeps every weight strictly positive, so the
		// non-negativity invariant holds for all encoded vectors.
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
}

// Encode produces the TF-IDF vector for a single text in vocabulary space.
// Out-of-vocabulary terms contribute nothing; an empty or all-stop-word
// text yields a zero vector.
func (v *Vectorizer) Encode(text string) Vector {
	vec := make(Vector, len(v.terms))
	for _, term := range v.tokenize(text) {
		if i, ok := v.index[term]; ok {
			vec[i] += v.idf[i]
		}
	}
	return vec
}

// EncodeAll encodes every document, preserving order.
func (v *Vectorizer) EncodeAll(docs []string) []Vector {
	out := make([]Vector, len(docs))
	for i, doc := range docs {
		out[i] = v.Encode(doc)
	}
	return out
}

// VocabularySize returns the number of terms in the fitted vocabulary.
func (v *Vectorizer) VocabularySize() int {
	return len(v.terms)
}

// Vocabulary returns the fitted terms in index order.
func (v *Vectorizer) Vocabulary() []string {
	out := make([]string, len(v.terms))
	copy(out, v.terms)
	return out
}

// tokenize case-folds, splits on non-alphanumeric boundaries, and drops
// stop words and single-character tokens.
func (v *Vectorizer) tokenize(text string) []string {
	raw := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	tokens := raw[:0]
	for _, t := range raw {
		if len(t) < 2 {
			continue
		}
		if _, stop := v.stopWords[t]; stop {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// defaultStopWords returns the built-in English stop-word set.
func defaultStopWords() map[string]struct{} {
	words := []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for", "from",
		"has", "have", "in", "is", "it", "its", "of", "on", "or", "that",
		"the", "this", "to", "was", "were", "will", "with", "you", "your",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
