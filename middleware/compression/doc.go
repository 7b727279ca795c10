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

// Package compression provides net/http middleware for response compression.
//
// The content coding is negotiated from the client's Accept-Encoding header
// with rivaas.dev/accepts, so q-values, wildcards and explicit refusals
// such as "identity;q=0" are honored instead of substring matching.
//
// # Basic Usage
//
//	import "rivaas.dev/accepts/middleware/compression"
//
//	mux := http.NewServeMux()
//	http.ListenAndServe(":8080", compression.New()(mux))
//
// # Supported Algorithms
//
//   - br: Brotli compression (better ratio, preferred on ties)
//   - gzip: Standard gzip compression (widely supported)
//   - identity: no compression, used when the client prefers it
//
// Codings the client accepts with equal quality are resolved with the
// preferred order set by WithPreferred ("br", then "gzip" by default).
// A request that refuses every available coding, identity included,
// receives 406 Not Acceptable.
//
// # Skipped Responses
//
// Responses are passed through unchanged when the status is 1xx, 204, 206
// or 304, when the handler already set Content-Encoding, and for
// text/event-stream, application/grpc and application/octet-stream bodies.
// Paths, extensions and content types can be excluded with options.
//
// Every negotiated response carries "Vary: Accept-Encoding".
package compression
