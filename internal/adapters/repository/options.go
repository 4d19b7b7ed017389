package repository

import "github.com/okian/courserec/internal/domain/encoding"

// Option applies a configuration option to the SnapshotStore.
type Option func(*SnapshotStore)

// WithEncodingOptions forwards vectorizer options to snapshot fitting.
func WithEncodingOptions(opts ...encoding.Option) Option {
	return func(s *SnapshotStore) {
		s.encodingOpts = append(s.encodingOpts, opts...)
	}
}
