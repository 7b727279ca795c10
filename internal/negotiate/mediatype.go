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

package negotiate

import (
	"strings"

	"rivaas.dev/accepts/internal/qvalue"
)

// AnyMediaType is the media range matching every media type.
const AnyMediaType = "*/*"

// Media type specificity bits.
const (
	bitParams  = 1 << iota // a preference parameter matched a candidate parameter
	bitSubtype             // exact subtype
	bitType                // exact type
)

// mediaTypeMatcher matches media ranges from the Accept header.
//
// Specificity: exact type and subtype with matching parameters (7) >
// exact type and subtype (6) > type/* (4) > */* (0).
type mediaTypeMatcher struct{}

func (mediaTypeMatcher) Preferences(raw string, present bool, limit int) ([]Preference, bool) {
	if !present {
		return []Preference{{Value: AnyMediaType, Quality: 1}}, false
	}

	prefs, truncated := qvalue.Parse(raw, limit)

	n := 0
	for _, pref := range prefs {
		// A bare "*" is sent by some clients in place of "*/*".
		if pref.Value == Wildcard {
			pref.Value = AnyMediaType
		}
		typ, subtype, ok := splitMediaType(pref.Value)
		if !ok {
			continue
		}
		pref.Value = typ + "/" + subtype
		prefs[n] = pref
		n++
	}

	return prefs[:n], truncated
}

func (mediaTypeMatcher) Match(pref Preference, candidate string) (int, bool) {
	offer, ok := qvalue.ParseElement(candidate)
	if !ok {
		return 0, false
	}
	offerType, offerSubtype, ok := splitMediaType(offer.Value)
	if !ok {
		return 0, false
	}
	specType, specSubtype, ok := splitMediaType(pref.Value)
	if !ok {
		return 0, false
	}

	specificity := 0

	switch {
	case strings.EqualFold(specType, offerType):
		specificity |= bitType
	case specType != Wildcard:
		return 0, false
	}

	switch {
	case strings.EqualFold(specSubtype, offerSubtype):
		specificity |= bitSubtype
	case specSubtype != Wildcard:
		return 0, false
	}

	// Parameters only constrain the match when both sides carry them.
	matched := false
	for key, want := range pref.Params {
		got, ok := offer.Params[key]
		if !ok {
			continue
		}
		if want != Wildcard && !strings.EqualFold(want, got) {
			return 0, false
		}
		matched = true
	}
	if matched {
		specificity |= bitParams
	}

	return specificity, true
}

func (mediaTypeMatcher) Format(pref Preference) string {
	return pref.Value
}

// splitMediaType splits "type/subtype" into its trimmed halves.
// It reports false when either half is missing.
func splitMediaType(mediaType string) (typ, subtype string, ok bool) {
	typ, subtype, found := strings.Cut(mediaType, "/")
	if !found {
		return "", "", false
	}

	typ = strings.TrimSpace(typ)
	subtype = strings.TrimSpace(subtype)
	if typ == "" || subtype == "" {
		return "", "", false
	}

	return typ, subtype, true
}
