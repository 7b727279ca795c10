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
	"net/http"
	"strings"
)

// Header names consulted during negotiation, in HeaderSet key form.
const (
	HeaderAccept         = "accept"
	HeaderAcceptEncoding = "accept-encoding"
	HeaderAcceptCharset  = "accept-charset"
	HeaderAcceptLanguage = "accept-language"
)

// HeaderSet maps lower-case header names to raw header values.
//
// A missing key means the header was not sent, which negotiation treats as
// "anything is acceptable". A key mapped to "" means the header was sent
// empty, which accepts nothing (except identity for Accept-Encoding).
type HeaderSet map[string]string

// HeaderSetFromHTTP converts h into a HeaderSet. Multiple field lines of
// the same header are combined with ", " (RFC 7230 Section 3.2.2).
func HeaderSetFromHTTP(h http.Header) HeaderSet {
	set := make(HeaderSet, len(h))
	for name, values := range h {
		set[strings.ToLower(name)] = strings.Join(values, ", ")
	}

	return set
}

// normalize returns a copy of s with lower-cased keys.
func (s HeaderSet) normalize() HeaderSet {
	out := make(HeaderSet, len(s))
	for name, value := range s {
		out[strings.ToLower(name)] = value
	}

	return out
}
