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

import (
	"slices"
	"strings"
	"sync"

	"rivaas.dev/accepts/internal/negotiate"
)

// kind identifies one of the four Accept headers.
type kind int

const (
	kindType kind = iota
	kindEncoding
	kindCharset
	kindLanguage
	kindCount
)

var kinds = [kindCount]struct {
	header  string
	matcher negotiate.Matcher
}{
	kindType:     {HeaderAccept, negotiate.MediaTypes},
	kindEncoding: {HeaderAcceptEncoding, negotiate.Encodings},
	kindCharset:  {HeaderAcceptCharset, negotiate.Charsets},
	kindLanguage: {HeaderAcceptLanguage, negotiate.Languages},
}

// parsedHeader caches the preferences of one header for a session.
type parsedHeader struct {
	once  sync.Once
	prefs []negotiate.Preference
}

// Accepts is a negotiation session over one request's headers.
//
// Each header is parsed on first use and cached. A session is safe for
// concurrent use.
//
// Every negotiation kind has a list method and a best-match method:
//
//   - The list method without arguments returns the client's acceptable
//     values, best first. With offers it returns the acceptable offers,
//     best first.
//   - The best-match method returns the single best offer exactly as
//     passed, and false when none is acceptable (respond with 406).
//
// Offers may be passed one by one or as a spread slice:
//
//	a.Type("json", "html")
//	a.Type(offers...)
type Accepts struct {
	negotiator *Negotiator
	headers    HeaderSet
	parsed     [kindCount]parsedHeader
}

// Types returns the acceptable media types.
//
// Without offers it lists the media ranges of the Accept header, without
// parameters, highest quality first:
//
//	// Accept: application/*;q=0.2, image/jpeg;q=0.8, text/html, text/plain
//	a.Types() // ["text/html", "text/plain", "image/jpeg", "application/*"]
//
// Offers may be media types or file extensions ("json", ".html"), which
// are resolved with the configured [LookupFunc]. When the request has no
// Accept header all offers are returned in the given order.
func (a *Accepts) Types(offers ...string) []string {
	if len(offers) == 0 {
		return a.list(kindType)
	}
	if !a.present(kindType) {
		return slices.Clone(offers)
	}

	return pick(offers, negotiate.Rank(negotiate.MediaTypes, a.preferences(kindType), a.resolve(offers), nil))
}

// Type returns the best of offers according to the Accept header.
//
// The offer is returned as passed, so an extension stays an extension:
//
//	// Accept: text/*, application/json
//	a.Type("html")             // "html", true
//	a.Type("text/html")        // "text/html", true
//	a.Type("json", "text")     // "json", true
//	a.Type("png")              // "", false
//
// When the request has no Accept header the first offer is returned.
// Without offers Type returns the client's most preferred media range.
func (a *Accepts) Type(offers ...string) (string, bool) {
	if len(offers) == 0 {
		return first(a.list(kindType))
	}
	if !a.present(kindType) {
		return offers[0], true
	}

	idx, ok := negotiate.Best(negotiate.MediaTypes, a.preferences(kindType), a.resolve(offers), nil)
	if !ok {
		return "", false
	}

	return offers[idx], true
}

// Encodings returns the acceptable content codings.
//
// Without offers it lists the codings of the Accept-Encoding header,
// highest quality first. Unless the header mentions identity or "*",
// identity is included:
//
//	// Accept-Encoding: gzip, compress;q=0.2
//	a.Encodings() // ["gzip", "compress", "identity"]
//
// A request without Accept-Encoding accepts identity only.
func (a *Accepts) Encodings(offers ...string) []string {
	if len(offers) == 0 {
		return a.list(kindEncoding)
	}

	return a.rank(kindEncoding, offers, nil)
}

// Encoding returns the best of offers according to Accept-Encoding.
//
//	// Accept-Encoding: gzip, compress;q=0.2
//	a.Encoding("compress", "gzip") // "gzip", true
func (a *Accepts) Encoding(offers ...string) (string, bool) {
	return a.EncodingPreferred(nil, offers...)
}

// EncodingPreferred is like [Accepts.Encoding] but breaks ties between
// offers of equal quality and specificity in favor of the codings listed in
// preferred, in preferred order. It never overrides the client's qualities.
//
//	// Accept-Encoding: gzip, br
//	a.EncodingPreferred([]string{"br"}, "gzip", "br", "identity") // "br", true
func (a *Accepts) EncodingPreferred(preferred []string, offers ...string) (string, bool) {
	if len(offers) == 0 {
		return first(a.list(kindEncoding))
	}

	return a.best(kindEncoding, offers, preferred)
}

// Charsets returns the acceptable charsets.
//
//	// Accept-Charset: utf-8, iso-8859-1;q=0.2, utf-7;q=0.5
//	a.Charsets() // ["utf-8", "utf-7", "iso-8859-1"]
//
// A request without Accept-Charset accepts any charset ("*").
func (a *Accepts) Charsets(offers ...string) []string {
	if len(offers) == 0 {
		return a.list(kindCharset)
	}

	return a.rank(kindCharset, offers, nil)
}

// Charset returns the best of offers according to Accept-Charset.
func (a *Accepts) Charset(offers ...string) (string, bool) {
	if len(offers) == 0 {
		return first(a.list(kindCharset))
	}

	return a.best(kindCharset, offers, nil)
}

// Languages returns the acceptable languages.
//
//	// Accept-Language: en;q=0.8, es, pt
//	a.Languages() // ["es", "pt", "en"]
//
// A range matches offers equal to it or starting with it followed by "-",
// so "en" accepts "en-US". A request without Accept-Language accepts any
// language ("*").
func (a *Accepts) Languages(offers ...string) []string {
	if len(offers) == 0 {
		return a.list(kindLanguage)
	}

	return a.rank(kindLanguage, offers, nil)
}

// Langs is an alias for [Accepts.Languages].
func (a *Accepts) Langs(offers ...string) []string {
	return a.Languages(offers...)
}

// Language returns the best of offers according to Accept-Language.
//
//	// Accept-Language: en;q=0.8, es, pt
//	a.Language("es", "en") // "es", true
//	a.Language("fr", "au") // "", false
func (a *Accepts) Language(offers ...string) (string, bool) {
	if len(offers) == 0 {
		return first(a.list(kindLanguage))
	}

	return a.best(kindLanguage, offers, nil)
}

// Lang is an alias for [Accepts.Language].
func (a *Accepts) Lang(offers ...string) (string, bool) {
	return a.Language(offers...)
}

// present reports whether the header of k was sent.
func (a *Accepts) present(k kind) bool {
	_, ok := a.headers[kinds[k].header]
	return ok
}

// preferences returns the parsed header of k, parsing it on first use.
func (a *Accepts) preferences(k kind) []negotiate.Preference {
	p := &a.parsed[k]
	p.once.Do(func() {
		name := kinds[k].header
		raw, present := a.headers[name]

		prefs, truncated := kinds[k].matcher.Preferences(raw, present, a.negotiator.maxEntries)
		if truncated {
			a.negotiator.logger.Debug("accept header truncated",
				"header", name,
				"max_entries", a.negotiator.maxEntries,
			)
		}
		p.prefs = prefs
	})

	return p.prefs
}

func (a *Accepts) list(k kind) []string {
	return negotiate.List(kinds[k].matcher, a.preferences(k))
}

func (a *Accepts) rank(k kind, offers, preferred []string) []string {
	return pick(offers, negotiate.Rank(kinds[k].matcher, a.preferences(k), offers, preferred))
}

func (a *Accepts) best(k kind, offers, preferred []string) (string, bool) {
	idx, ok := negotiate.Best(kinds[k].matcher, a.preferences(k), offers, preferred)
	if !ok {
		return "", false
	}

	return offers[idx], true
}

// resolve maps extension offers to media types. Unknown extensions are
// kept verbatim and will not match any media range.
func (a *Accepts) resolve(offers []string) []string {
	resolved := make([]string, len(offers))
	for i, offer := range offers {
		resolved[i] = offer
		if strings.Contains(offer, "/") {
			continue
		}
		if mediaType, ok := a.negotiator.lookup(offer); ok {
			resolved[i] = mediaType
			continue
		}
		a.negotiator.logger.Debug("unknown extension in type offers", "offer", offer)
	}

	return resolved
}

func pick(values []string, indexes []int) []string {
	out := make([]string, len(indexes))
	for i, idx := range indexes {
		out[i] = values[idx]
	}

	return out
}

func first(values []string) (string, bool) {
	if len(values) == 0 {
		return "", false
	}

	return values[0], true
}
