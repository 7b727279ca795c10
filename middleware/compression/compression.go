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
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/andybalholm/brotli"

	"rivaas.dev/accepts"
)

// Content codings produced by the middleware.
const (
	encodingBrotli   = "br"
	encodingGzip     = "gzip"
	encodingIdentity = "identity"
)

// Option defines functional options for compression middleware configuration.
type Option func(*config)

// config holds the configuration for the compression middleware.
type config struct {
	// logger receives finalization errors and 406 decisions
	logger *slog.Logger

	// negotiator selects the content coding from Accept-Encoding
	negotiator *accepts.Negotiator

	// preferred breaks ties between codings the client accepts equally
	preferred []string

	// gzipLevel is the gzip compression level, clamped to [gzip.HuffmanOnly, gzip.BestCompression]
	gzipLevel int

	// brotliLevel is the Brotli compression level (0-11)
	// For dynamic content (JSON/text), use 4-5. Higher levels are CPU-expensive.
	brotliLevel int

	// minSize is the minimum response size to compress (in bytes)
	minSize int

	enableGzip   bool
	enableBrotli bool

	excludePaths        map[string]bool
	excludeExtensions   map[string]bool
	excludeContentTypes map[string]bool
}

// defaultConfig returns the default configuration for compression middleware.
func defaultConfig() *config {
	return &config{
		logger:              slog.New(slog.DiscardHandler),
		preferred:           []string{encodingBrotli, encodingGzip},
		gzipLevel:           gzip.DefaultCompression,
		brotliLevel:         4, // Conservative for dynamic content
		minSize:             0, // 0 = no threshold, compress all supported responses
		enableGzip:          true,
		enableBrotli:        true,
		excludePaths:        make(map[string]bool),
		excludeExtensions:   make(map[string]bool),
		excludeContentTypes: make(map[string]bool),
	}
}

// offers returns the codings the middleware can produce, identity last.
func (cfg *config) offers() []string {
	offers := make([]string, 0, 3)
	if cfg.enableBrotli {
		offers = append(offers, encodingBrotli)
	}
	if cfg.enableGzip {
		offers = append(offers, encodingGzip)
	}

	return append(offers, encodingIdentity)
}

// excluded reports whether the request path opts out of compression.
func (cfg *config) excluded(path string) bool {
	if cfg.excludePaths[path] {
		return true
	}
	for ext := range cfg.excludeExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}

	return false
}

// compressWriter wraps the response writer to compress the response body.
// It buffers data up to the threshold before deciding whether to compress.
type compressWriter struct {
	http.ResponseWriter
	writer              io.WriteCloser
	pool                *sync.Pool
	encoding            string
	excludeContentTypes map[string]bool
	threshold           int

	buffer        []byte // Buffer for threshold check
	statusCode    int
	headerChecked bool // WriteHeader has been intercepted
	headersSent   bool // WriteHeader has reached the underlying writer
	decided       bool
	compress      bool
}

// Write buffers data and decides on compression based on threshold.
func (cw *compressWriter) Write(data []byte) (int, error) {
	if !cw.headerChecked {
		cw.WriteHeader(http.StatusOK)
	}

	// Sniff before compressing, the server cannot sniff compressed bytes.
	if !cw.headersSent && cw.Header().Get("Content-Type") == "" {
		ct := http.DetectContentType(data)
		cw.Header().Set("Content-Type", ct)
		if shouldSkipContentType(ct, cw.excludeContentTypes) {
			cw.passThrough()
		}
	}

	if cw.decided {
		if cw.compress {
			return cw.writer.Write(data)
		}
		return cw.ResponseWriter.Write(data)
	}

	if len(cw.buffer)+len(data) < cw.threshold {
		cw.buffer = append(cw.buffer, data...)
		return len(data), nil
	}

	cw.decided = true
	cw.startCompression()
	if err := cw.flushBuffer(cw.writer); err != nil {
		return 0, err
	}

	return cw.writer.Write(data)
}

// WriteHeader captures the status code and checks if compression should be skipped.
func (cw *compressWriter) WriteHeader(code int) {
	if cw.headerChecked {
		return
	}
	cw.headerChecked = true
	cw.statusCode = code

	h := cw.Header()
	if shouldSkipStatus(code) ||
		h.Get("Content-Encoding") != "" ||
		shouldSkipContentType(h.Get("Content-Type"), cw.excludeContentTypes) {
		cw.passThrough()
	}

	// Otherwise headers wait for the compression decision.
}

// passThrough commits to an uncompressed response.
func (cw *compressWriter) passThrough() {
	cw.decided = true
	cw.compress = false
	cw.sendHeaders()
}

// Flush sends buffered data to the client, compressing from here on.
func (cw *compressWriter) Flush() {
	if !cw.headerChecked {
		cw.WriteHeader(http.StatusOK)
	}
	if !cw.decided {
		cw.decided = true
		cw.startCompression()
		_ = cw.flushBuffer(cw.writer)
	}
	if cw.compress {
		if f, ok := cw.writer.(interface{ Flush() error }); ok {
			_ = f.Flush()
		}
	}
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying writer for http.ResponseController.
func (cw *compressWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

// sendHeaders writes the captured status code once.
func (cw *compressWriter) sendHeaders() {
	if cw.headersSent {
		return
	}
	cw.headersSent = true
	cw.ResponseWriter.WriteHeader(cw.statusCode)
}

// startCompression sets the encoding headers and takes a writer from the pool.
func (cw *compressWriter) startCompression() {
	cw.compress = true

	h := cw.Header()
	h.Del("Content-Length")
	h.Set("Content-Encoding", cw.encoding)
	cw.sendHeaders()

	switch cw.encoding {
	case encodingBrotli:
		w := cw.pool.Get().(*brotli.Writer)
		w.Reset(cw.ResponseWriter)
		cw.writer = w
	case encodingGzip:
		w := cw.pool.Get().(*gzip.Writer)
		w.Reset(cw.ResponseWriter)
		cw.writer = w
	}
}

// flushBuffer writes and clears the threshold buffer.
func (cw *compressWriter) flushBuffer(w io.Writer) error {
	if len(cw.buffer) == 0 {
		return nil
	}
	_, err := w.Write(cw.buffer)
	cw.buffer = cw.buffer[:0]

	return err
}

// Close finalizes compression and returns writers to pools.
func (cw *compressWriter) Close() error {
	if !cw.decided {
		// Small response that never reached the threshold
		cw.decided = true
		if !cw.headerChecked {
			return nil
		}
		cw.sendHeaders()
		return cw.flushBuffer(cw.ResponseWriter)
	}

	if !cw.compress || cw.writer == nil {
		return nil
	}

	err := cw.writer.Close()
	// Reset before returning to pool to reduce holding references
	switch w := cw.writer.(type) {
	case *brotli.Writer:
		w.Reset(nil)
	case *gzip.Writer:
		w.Reset(nil)
	}
	cw.pool.Put(cw.writer)
	cw.writer = nil

	return err
}

// shouldSkipStatus returns true if the status code should not be compressed.
func shouldSkipStatus(code int) bool {
	return code == http.StatusNoContent ||
		code == http.StatusNotModified ||
		code == http.StatusPartialContent ||
		code < http.StatusOK
}

// shouldSkipContentType returns true if the content type should not be compressed.
func shouldSkipContentType(ct string, excludes map[string]bool) bool {
	if ct == "" {
		return false
	}

	// Always skip these
	ctLower := strings.ToLower(ct)
	if strings.Contains(ctLower, "text/event-stream") ||
		strings.Contains(ctLower, "application/grpc") ||
		strings.Contains(ctLower, "application/octet-stream") {
		return true
	}

	for excluded := range excludes {
		if strings.Contains(ctLower, strings.ToLower(excluded)) {
			return true
		}
	}

	return false
}

var (
	gzipWriterPools   = make(map[int]*sync.Pool)
	brotliWriterPools = make(map[int]*sync.Pool)
	poolsMutex        sync.RWMutex
)

// getGzipWriterPool returns a pool for the specified compression level.
func getGzipWriterPool(level int) *sync.Pool {
	poolsMutex.RLock()
	pool, exists := gzipWriterPools[level]
	poolsMutex.RUnlock()

	if exists {
		return pool
	}

	poolsMutex.Lock()
	defer poolsMutex.Unlock()

	// Double-check after acquiring write lock
	if pool, exists := gzipWriterPools[level]; exists {
		return pool
	}

	pool = &sync.Pool{
		New: func() any {
			w, err := gzip.NewWriterLevel(io.Discard, level)
			if err != nil {
				return gzip.NewWriter(io.Discard)
			}
			return w
		},
	}
	gzipWriterPools[level] = pool

	return pool
}

// getBrotliWriterPool returns a pool for the specified Brotli compression level.
func getBrotliWriterPool(level int) *sync.Pool {
	poolsMutex.RLock()
	pool, exists := brotliWriterPools[level]
	poolsMutex.RUnlock()

	if exists {
		return pool
	}

	poolsMutex.Lock()
	defer poolsMutex.Unlock()

	if pool, exists := brotliWriterPools[level]; exists {
		return pool
	}

	pool = &sync.Pool{
		New: func() any {
			return brotli.NewWriterLevel(io.Discard, level)
		},
	}
	brotliWriterPools[level] = pool

	return pool
}

// New returns a middleware that compresses HTTP responses using gzip and/or Brotli.
//
// The content coding is negotiated from Accept-Encoding with q-values
// honored; codings the client accepts equally are resolved in favor of
// Brotli, then gzip. When the client rules out every coding the middleware
// can produce, including identity, the request is answered with
// 406 Not Acceptable (RFC 7231 Section 5.3.4).
//
// Basic usage:
//
//	mux := http.NewServeMux()
//	http.ListenAndServe(":8080", compression.New()(mux))
//
// With custom compression levels:
//
//	compression.New(
//	    compression.WithGzipLevel(gzip.BestCompression),
//	    compression.WithBrotliLevel(5),
//	)
//
// Exclude already compressed formats:
//
//	compression.New(
//	    compression.WithExcludeExtensions(".jpg", ".png", ".gif", ".zip"),
//	    compression.WithExcludeContentTypes("image/jpeg", "image/png"),
//	)
func New(opts ...Option) func(http.Handler) http.Handler {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.negotiator == nil {
		cfg.negotiator = accepts.MustNew(accepts.WithLogger(cfg.logger))
	}
	offers := cfg.offers()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.excluded(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "Accept-Encoding")

			encoding, ok := cfg.negotiator.Request(r).EncodingPreferred(cfg.preferred, offers...)
			if !ok {
				cfg.logger.Debug("no acceptable content coding",
					"path", r.URL.Path,
					"accept_encoding", r.Header.Get("Accept-Encoding"),
				)
				http.Error(w, http.StatusText(http.StatusNotAcceptable), http.StatusNotAcceptable)
				return
			}

			var pool *sync.Pool
			switch encoding {
			case encodingBrotli:
				pool = getBrotliWriterPool(cfg.brotliLevel)
			case encodingGzip:
				pool = getGzipWriterPool(cfg.gzipLevel)
			default:
				next.ServeHTTP(w, r)
				return
			}

			// Only allocate buffer if threshold is set (> 0)
			var buf []byte
			if cfg.minSize > 0 {
				buf = make([]byte, 0, cfg.minSize)
			}
			cw := &compressWriter{
				ResponseWriter:      w,
				encoding:            encoding,
				excludeContentTypes: cfg.excludeContentTypes,
				threshold:           cfg.minSize,
				buffer:              buf,
				pool:                pool,
			}

			next.ServeHTTP(cw, r)

			if err := cw.Close(); err != nil {
				cfg.logger.Error("compression finalization failed",
					"encoding", encoding,
					"error", err,
				)
			}
		})
	}
}
