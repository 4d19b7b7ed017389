package encoding

// Option applies a configuration option to the Vectorizer.
type Option func(*Vectorizer)

// WithMaxFeatures bounds the vocabulary size. Zero or negative disables
// the bound.
func WithMaxFeatures(n int) Option {
	return func(v *Vectorizer) {
		v.maxFeatures = n
	}
}

// WithExtraStopWords adds terms to the built-in stop-word set.
func WithExtraStopWords(words ...string) Option {
	return func(v *Vectorizer) {
		for _, w := range words {
			v.stopWords[w] = struct{}{}
		}
	}
}
