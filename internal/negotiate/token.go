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

// tokenMatcher matches case-insensitive tokens (charsets). An exact token
// has specificity 1, the "*" wildcard 0.
type tokenMatcher struct{}

func (tokenMatcher) Preferences(raw string, present bool, limit int) ([]Preference, bool) {
	if !present {
		return []Preference{{Value: Wildcard, Quality: 1}}, false
	}

	return qvalue.Parse(raw, limit)
}

func (tokenMatcher) Match(pref Preference, candidate string) (int, bool) {
	return matchToken(pref.Value, candidate)
}

func (tokenMatcher) Format(pref Preference) string {
	return pref.Value
}

// matchToken matches offer against a token preference. The wildcard
// accepts any offer, an empty one included.
func matchToken(spec, offer string) (int, bool) {
	if spec == Wildcard {
		return 0, true
	}

	offer = strings.TrimSpace(offer)
	if offer != "" && strings.EqualFold(spec, offer) {
		return 1, true
	}

	return 0, false
}
