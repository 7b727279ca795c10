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
	"cmp"
	"slices"
	"strings"
)

// List returns the acceptable preferences (quality > 0) formatted by m,
// highest quality first. Equal qualities keep header order.
func List(m Matcher, prefs []Preference) []string {
	accepted := make([]Preference, 0, len(prefs))
	for _, pref := range prefs {
		if pref.Quality > 0 {
			accepted = append(accepted, pref)
		}
	}

	slices.SortStableFunc(accepted, func(a, b Preference) int {
		if c := cmp.Compare(b.Quality, a.Quality); c != 0 {
			return c
		}
		return cmp.Compare(a.Order, b.Order)
	})

	values := make([]string, len(accepted))
	for i, pref := range accepted {
		values[i] = m.Format(pref)
	}

	return values
}

// match is the outcome of matching one candidate against a preference list.
type match struct {
	index       int     // candidate position
	quality     float64 // quality of the best matching preference
	specificity int     // specificity of the best matching preference
	order       int     // header position of the best matching preference
	preferred   int     // position in the preferred list, -1 if absent
}

// Rank returns the positions of the acceptable candidates, best first.
//
// Each candidate is scored by its most specific matching preference (ties
// broken by higher quality, then earlier header position). Candidates whose
// score has quality 0 are not acceptable. The rest are ordered by quality,
// then specificity, then their position in preferred, then candidate order.
func Rank(m Matcher, prefs []Preference, candidates, preferred []string) []int {
	matches := make([]match, 0, len(candidates))
	for i, candidate := range candidates {
		mt, ok := bestMatch(m, prefs, candidate)
		if !ok || mt.quality <= 0 {
			continue
		}
		mt.index = i
		mt.preferred = indexFold(preferred, candidate)
		matches = append(matches, mt)
	}

	slices.SortStableFunc(matches, compareMatches)

	indexes := make([]int, len(matches))
	for i, mt := range matches {
		indexes[i] = mt.index
	}

	return indexes
}

// Best returns the position of the best acceptable candidate.
// It reports false when no candidate is acceptable.
func Best(m Matcher, prefs []Preference, candidates, preferred []string) (int, bool) {
	ranked := Rank(m, prefs, candidates, preferred)
	if len(ranked) == 0 {
		return -1, false
	}

	return ranked[0], true
}

// bestMatch finds the preference that applies to candidate.
func bestMatch(m Matcher, prefs []Preference, candidate string) (match, bool) {
	var (
		best  match
		found bool
	)

	for _, pref := range prefs {
		specificity, ok := m.Match(pref, candidate)
		if !ok {
			continue
		}

		better := !found ||
			specificity > best.specificity ||
			(specificity == best.specificity && pref.Quality > best.quality) ||
			(specificity == best.specificity && pref.Quality == best.quality && pref.Order < best.order)
		if better {
			best = match{
				quality:     pref.Quality,
				specificity: specificity,
				order:       pref.Order,
			}
			found = true
		}
	}

	return best, found
}

func compareMatches(a, b match) int {
	if c := cmp.Compare(b.quality, a.quality); c != 0 {
		return c
	}
	if c := cmp.Compare(b.specificity, a.specificity); c != 0 {
		return c
	}

	switch {
	case a.preferred >= 0 && b.preferred >= 0:
		if c := cmp.Compare(a.preferred, b.preferred); c != 0 {
			return c
		}
	case a.preferred >= 0:
		return -1
	case b.preferred >= 0:
		return 1
	}

	return cmp.Compare(a.index, b.index)
}

// indexFold returns the position of value in list, compared
// case-insensitively, or -1.
func indexFold(list []string, value string) int {
	value = strings.TrimSpace(value)
	return slices.IndexFunc(list, func(s string) bool {
		return strings.EqualFold(s, value)
	})
}
