// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compression

import (
	"compress/gzip"
	"log/slog"

	"github.com/andybalholm/brotli"

	"rivaas.dev/accepts"
)

// WithGzipLevel sets the gzip level. Levels outside
// [gzip.HuffmanOnly, gzip.BestCompression] are clamped to that range.
// Default: gzip.DefaultCompression
//
//	compression.New(compression.WithGzipLevel(gzip.BestSpeed))
func WithGzipLevel(level int) Option {
	return func(cfg *config) {
		cfg.gzipLevel = max(gzip.HuffmanOnly, min(level, gzip.BestCompression))
	}
}

// WithBrotliLevel sets the Brotli level, clamped to [0, 11].
// Default: 4
func WithBrotliLevel(level int) Option {
	return func(cfg *config) {
		cfg.brotliLevel = max(brotli.BestSpeed, min(level, brotli.BestCompression))
	}
}

// WithBrotliDisabled removes "br" from the offered codings. Clients that
// only accept br then receive identity, or 406 if they refuse identity.
func WithBrotliDisabled() Option {
	return func(cfg *config) {
		cfg.enableBrotli = false
	}
}

// WithGzipDisabled removes "gzip" from the offered codings.
func WithGzipDisabled() Option {
	return func(cfg *config) {
		cfg.enableGzip = false
	}
}

// WithMinSize sets the minimum response size to compress (in bytes).
// Responses are buffered until the threshold is reached; shorter responses
// are sent uncompressed. A flush commits to compression early.
// Default: 0 (compress every eligible response)
func WithMinSize(size int) Option {
	return func(cfg *config) {
		cfg.minSize = max(0, size)
	}
}

// WithPreferred sets the coding order used when the client accepts several
// codings with the same quality. It never overrides the client's q-values.
// Default: "br", "gzip"
//
//	compression.New(compression.WithPreferred("gzip", "br"))
func WithPreferred(encodings ...string) Option {
	return func(cfg *config) {
		cfg.preferred = encodings
	}
}

// WithNegotiator sets the negotiator used to read Accept-Encoding.
// Default: a negotiator sharing the middleware logger
//
//	n := accepts.MustNew(accepts.WithMaxEntries(32))
//	compression.New(compression.WithNegotiator(n))
func WithNegotiator(n *accepts.Negotiator) Option {
	return func(cfg *config) {
		cfg.negotiator = n
	}
}

// WithExcludePaths lists request paths that bypass the middleware
// entirely: Accept-Encoding is not negotiated, no Vary header is added and
// a request refusing identity is not answered with 406.
func WithExcludePaths(paths ...string) Option {
	return func(cfg *config) {
		for _, path := range paths {
			cfg.excludePaths[path] = true
		}
	}
}

// WithExcludeExtensions lists path suffixes, such as ".png", that bypass
// the middleware the same way as [WithExcludePaths].
func WithExcludeExtensions(extensions ...string) Option {
	return func(cfg *config) {
		for _, ext := range extensions {
			cfg.excludeExtensions[ext] = true
		}
	}
}

// WithExcludeContentTypes lists response content types sent uncompressed.
// Unlike path exclusions the coding is still negotiated first, so these
// responses carry Vary and can still end in 406.
// Matching is a case-insensitive substring test.
func WithExcludeContentTypes(contentTypes ...string) Option {
	return func(cfg *config) {
		for _, ct := range contentTypes {
			cfg.excludeContentTypes[ct] = true
		}
	}
}

// WithLogger sets the logger for 406 decisions (debug) and writer
// finalization errors. A nil logger keeps the default, which discards.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}
