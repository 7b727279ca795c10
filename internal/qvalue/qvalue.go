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

// Package qvalue parses comma-separated, quality-weighted preference lists
// as found in the Accept family of HTTP headers (RFC 7231 Section 5.3).
//
// Parsing is lenient: malformed quality values default to 1, empty list
// elements are dropped and unknown parameters are kept verbatim. Parse never
// fails.
package qvalue

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang/gddo/httputil/header"
)

// DefaultLimit is the default maximum number of list elements parsed from a
// single header value. Elements past the limit are ignored.
const DefaultLimit = 256

// listKey is the header name used to hand a raw value to the gddo tokenizer.
const listKey = "Accept"

// Preference is a single element of a quality-weighted preference list.
type Preference struct {
	// Value is the element value as written, without parameters
	// (e.g. "text/html", "gzip", "en-US").
	Value string

	// Quality is the q parameter clamped to [0, 1]. Zero means "not acceptable".
	Quality float64

	// Order is the position of the element in the header, starting at 0.
	Order int

	// Params holds every parameter except q, keyed by lower-cased name.
	// Nil when the element carries no parameters.
	Params map[string]string
}

// Parse splits raw into preferences, keeping at most limit elements
// (DefaultLimit when limit <= 0). It reports whether elements were dropped
// because of the limit.
//
// An empty raw value yields no preferences.
func Parse(raw string, limit int) (prefs []Preference, truncated bool) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	start, end := trimWhitespace(raw)
	if start >= end {
		return nil, false
	}

	h := make(http.Header, 1)
	h.Set(listKey, raw)
	parts := header.ParseList(h, listKey)

	prefs = make([]Preference, 0, min(len(parts), limit))
	for _, part := range parts {
		pref, ok := ParseElement(part)
		if !ok {
			continue
		}
		if len(prefs) == limit {
			return prefs, true
		}
		pref.Order = len(prefs)
		prefs = append(prefs, pref)
	}

	return prefs, false
}

// ParseElement parses a single list element (the text between commas).
// It reports false when the element has no value. Order is left at zero.
func ParseElement(part string) (Preference, bool) {
	pref := Preference{Quality: 1.0}

	start, end := trimWhitespace(part)
	if start >= end {
		return pref, false
	}

	semicolon := strings.IndexByte(part[start:end], ';')
	if semicolon == -1 {
		pref.Value = part[start:end]
		return pref, true
	}
	semicolon += start

	valStart, valEnd := trimWhitespace(part[start:semicolon])
	if valStart >= valEnd {
		return pref, false
	}
	pref.Value = part[start+valStart : start+valEnd]

	// Semicolons inside quoted strings belong to the parameter value.
	paramStart := semicolon + 1
	quoted := false
	for i := paramStart; i <= end; i++ {
		if i < end {
			switch c := part[i]; {
			case quoted && c == '\\':
				if i+1 < end {
					i++
				}
				continue
			case c == '"':
				quoted = !quoted
				continue
			case c != ';' || quoted:
				continue
			}
		}
		if i > paramStart {
			parseParam(part[paramStart:i], &pref)
		}
		paramStart = i + 1
	}

	return pref, true
}

// parseParam parses a key=value parameter and stores it on pref.
// The q parameter sets the quality; anything else goes to Params.
func parseParam(param string, pref *Preference) {
	key, value, found := strings.Cut(param, "=")
	if !found {
		return
	}

	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return
	}

	value = strings.TrimSpace(value)
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = unquote(value[1 : len(value)-1])
	}

	if key == "q" {
		pref.Quality = ParseQuality(value)
		return
	}

	if pref.Params == nil {
		pref.Params = make(map[string]string, 2)
	}
	pref.Params[key] = value
}

// ParseQuality parses a qvalue. Well-formed values ("1", "0.8", "0.125")
// take a fast path. Anything else goes through strconv.ParseFloat and is
// clamped to [0, 1]; unparseable input yields 1.
//
//	qvalue = ( "0" [ "." 0*3DIGIT ] ) / ( "1" [ "." 0*3("0") ] )
func ParseQuality(s string) float64 {
	if q := parseThousandths(s); q >= 0 {
		return float64(q) / 1000.0
	}

	q, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(q) {
		return 1.0
	}

	return max(0, min(q, 1))
}

// parseThousandths parses a strict qvalue into integer thousandths.
// Returns -1 when s is not a strict qvalue.
func parseThousandths(s string) int {
	if len(s) == 0 || len(s) > 5 {
		return -1
	}

	switch s[0] {
	case '1':
		if len(s) == 1 {
			return 1000
		}
		if len(s) < 3 || s[1] != '.' {
			return -1
		}
		for i := 2; i < len(s); i++ {
			if s[i] != '0' {
				return -1
			}
		}
		return 1000

	case '0':
		if len(s) == 1 {
			return 0
		}
		if len(s) < 3 || s[1] != '.' {
			return -1
		}
		result := 0
		multiplier := 100
		for i := 2; i < len(s); i++ {
			if s[i] < '0' || s[i] > '9' {
				return -1
			}
			result += int(s[i]-'0') * multiplier
			multiplier /= 10
		}
		return result
	}

	return -1
}

// unquote removes quoted-pair escapes from the inside of a quoted-string.
func unquote(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}
		b.WriteByte(s[i])
	}

	return b.String()
}

// trimWhitespace returns start and end indices of non-whitespace content.
func trimWhitespace(s string) (start, end int) {
	end = len(s)
	for start < end && (s[start] == ' ' || s[start] == '\t') {
		start++
	}
	for end > start && (s[end-1] == ' ' || s[end-1] == '\t') {
		end--
	}

	return start, end
}
