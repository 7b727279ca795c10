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

package accepts

import "log/slog"

// Option configures a [Negotiator].
type Option func(*Negotiator)

// WithLookup sets the function used to resolve file extensions passed to
// [Accepts.Type] and [Accepts.Types] into media types.
// Default: [DefaultLookup].
//
// Example:
//
//	accepts.New(accepts.WithLookup(func(ext string) (string, bool) {
//	    if ext == "geojson" {
//	        return "application/geo+json", true
//	    }
//	    return accepts.DefaultLookup(ext)
//	}))
func WithLookup(fn LookupFunc) Option {
	return func(n *Negotiator) { n.lookup = fn }
}

// WithMaxEntries caps the number of elements parsed from each header.
// Elements past the cap are ignored. Default: 256.
func WithMaxEntries(limit int) Option {
	return func(n *Negotiator) { n.maxEntries = limit }
}

// WithLogger sets the logger used for debug records about truncated headers
// and unresolved extensions. Default: a logger that discards everything.
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	accepts.New(accepts.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(n *Negotiator) { n.logger = logger }
}
