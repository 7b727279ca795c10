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

// Language range specificity.
const (
	langWildcard = 0
	langPrefix   = 2
	langExact    = 4
)

// languageMatcher implements basic filtering of language ranges
// (RFC 4647 Section 3.3.1). A range matches a tag equal to it or a tag that
// starts with it followed by "-": "en" matches "en-US", while "en-US"
// matches neither "en" nor "en-GB".
type languageMatcher struct{}

func (languageMatcher) Preferences(raw string, present bool, limit int) ([]Preference, bool) {
	if !present {
		return []Preference{{Value: Wildcard, Quality: 1}}, false
	}

	return qvalue.Parse(raw, limit)
}

func (languageMatcher) Match(pref Preference, candidate string) (int, bool) {
	rng := pref.Value
	if rng == Wildcard {
		return langWildcard, true
	}

	tag := strings.TrimSpace(candidate)
	if tag == "" {
		return 0, false
	}

	switch {
	case strings.EqualFold(rng, tag):
		return langExact, true
	case len(tag) > len(rng) && tag[len(rng)] == '-' && strings.EqualFold(tag[:len(rng)], rng):
		return langPrefix, true
	}

	return 0, false
}

func (languageMatcher) Format(pref Preference) string {
	return pref.Value
}
