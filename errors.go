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

import "errors"

// Configuration errors returned by [New]. Negotiation itself never fails;
// an unacceptable request is reported through the boolean result of the
// best-match methods.
var (
	// ErrNilLookup indicates a nil function was passed to [WithLookup].
	ErrNilLookup = errors.New("mime lookup function is nil")

	// ErrInvalidMaxEntries indicates a non-positive limit was passed to [WithMaxEntries].
	ErrInvalidMaxEntries = errors.New("max entries must be positive")

	// ErrNilLogger indicates a nil logger was passed to [WithLogger].
	ErrNilLogger = errors.New("logger is nil")
)
