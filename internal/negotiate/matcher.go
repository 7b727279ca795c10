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

// Package negotiate ranks parsed Accept-* preferences and selects the best
// matching candidates for each kind of proactive negotiation (RFC 7231
// Section 5.3): media types, content codings, charsets and languages.
package negotiate

import "rivaas.dev/accepts/internal/qvalue"

// Preference is a parsed element of an Accept-* header.
type Preference = qvalue.Preference

// Matcher is the capability set a negotiation kind provides to the engine.
type Matcher interface {
	// Preferences parses a raw header value. present is false when the
	// header was not sent at all. limit caps the number of parsed elements.
	Preferences(raw string, present bool, limit int) (prefs []Preference, truncated bool)

	// Match reports whether pref accepts candidate, and how specifically.
	// Higher specificity means a more exact match.
	Match(pref Preference, candidate string) (specificity int, ok bool)

	// Format renders pref as a value for ranked list output.
	Format(pref Preference) string
}

// Wildcard is the "any value" element for tokens and language ranges.
const Wildcard = "*"

var (
	// MediaTypes negotiates the Accept header.
	MediaTypes Matcher = mediaTypeMatcher{}

	// Charsets negotiates the Accept-Charset header.
	Charsets Matcher = tokenMatcher{}

	// Encodings negotiates the Accept-Encoding header.
	Encodings Matcher = encodingMatcher{}

	// Languages negotiates the Accept-Language header.
	Languages Matcher = languageMatcher{}
)
