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

// Package accepts implements HTTP proactive content negotiation
// (RFC 7231 Section 5.3) over the Accept, Accept-Encoding, Accept-Charset
// and Accept-Language request headers.
//
// # Basic Usage
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    a := accepts.FromRequest(r)
//	    switch typ, _ := a.Type("json", "html"); typ {
//	    case "json":
//	        // render JSON
//	    case "html":
//	        // render HTML
//	    default:
//	        http.Error(w, "Not Acceptable", http.StatusNotAcceptable)
//	    }
//	}
//
// # Ranking
//
// Client preferences are ranked by quality value, highest first. When
// offers are given, each offer is scored by the most specific preference
// that matches it; ties on quality are broken by specificity and then by
// the order of the offers. Preferences with q=0 exclude the offers they
// match.
//
// For media types, "text/html" is more specific than "text/*", which is
// more specific than "*/*", and matching media type parameters add
// specificity. Languages use basic filtering: "en" accepts "en-US" but
// "en-US" does not accept "en".
//
// # Missing and Empty Headers
//
// A header that was not sent means the client accepts anything: [Accepts.Type]
// returns the first offer and charset or language negotiation behaves as if
// "*" had been sent. Accept-Encoding is the exception: without it only
// identity is acceptable.
//
// A header sent with an empty value accepts nothing, except that
// Accept-Encoding still allows identity unless it is excluded with
// "identity;q=0" or "*;q=0".
//
// # Configuration
//
// [New] builds a [Negotiator] with a custom extension lookup, entry limit
// or logger. [FromRequest] and [FromHeaders] use a default Negotiator.
//
//	n := accepts.MustNew(accepts.WithMaxEntries(32))
//	a := n.Request(r)
//
// Parsing is lenient and never fails: malformed quality values count as
// q=1 and empty list elements are ignored.
package accepts
