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

// Identity is the "no transformation" content coding.
const Identity = "identity"

// encodingMatcher matches content codings from Accept-Encoding.
//
// Unless the header names identity or "*", identity is implicitly
// acceptable. The implicit entry sorts after every listed coding and takes
// the lowest positive quality found in the header (1 when there is none).
// A missing header therefore accepts identity only.
type encodingMatcher struct{}

func (encodingMatcher) Preferences(raw string, present bool, limit int) ([]Preference, bool) {
	var (
		prefs     []Preference
		truncated bool
	)
	if present {
		prefs, truncated = qvalue.Parse(raw, limit)
	}

	minQuality := 1.0
	for _, pref := range prefs {
		if strings.EqualFold(pref.Value, Identity) || pref.Value == Wildcard {
			return prefs, truncated
		}
		if pref.Quality > 0 {
			minQuality = min(minQuality, pref.Quality)
		}
	}

	return append(prefs, Preference{
		Value:   Identity,
		Quality: minQuality,
		Order:   len(prefs),
	}), truncated
}

func (encodingMatcher) Match(pref Preference, candidate string) (int, bool) {
	return matchToken(pref.Value, candidate)
}

func (encodingMatcher) Format(pref Preference) string {
	return pref.Value
}
