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
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"rivaas.dev/accepts/internal/qvalue"
)

// Negotiator holds the configuration shared by negotiation sessions.
// It is immutable after [New] and safe for concurrent use.
type Negotiator struct {
	lookup     LookupFunc
	maxEntries int
	logger     *slog.Logger
}

// defaultNegotiator backs [FromHeaders] and [FromRequest].
var defaultNegotiator = MustNew()

func defaultNegotiatorConfig() *Negotiator {
	return &Negotiator{
		lookup:     DefaultLookup,
		maxEntries: qvalue.DefaultLimit,
		logger:     slog.New(slog.DiscardHandler),
	}
}

// New creates a Negotiator with the given options.
//
// Example:
//
//	n, err := accepts.New(
//	    accepts.WithMaxEntries(64),
//	    accepts.WithLogger(logger),
//	)
func New(opts ...Option) (*Negotiator, error) {
	n := defaultNegotiatorConfig()
	for _, opt := range opts {
		opt(n)
	}

	if err := n.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return n, nil
}

// MustNew creates a Negotiator or panics on invalid options.
func MustNew(opts ...Option) *Negotiator {
	n, err := New(opts...)
	if err != nil {
		panic("accepts initialization failed: " + err.Error())
	}
	return n
}

// Validate checks the configuration. All problems are reported at once.
func (n *Negotiator) Validate() error {
	var errs []error

	if n.lookup == nil {
		errs = append(errs, ErrNilLookup)
	}
	if n.maxEntries <= 0 {
		errs = append(errs, fmt.Errorf("%w: got %d", ErrInvalidMaxEntries, n.maxEntries))
	}
	if n.logger == nil {
		errs = append(errs, ErrNilLogger)
	}

	return errors.Join(errs...)
}

// Headers starts a negotiation session over headers. Keys are matched
// case-insensitively; a missing key means the header was not sent.
// The set is copied, so later changes to headers have no effect.
func (n *Negotiator) Headers(headers HeaderSet) *Accepts {
	return &Accepts{
		negotiator: n,
		headers:    headers.normalize(),
	}
}

// Request starts a negotiation session over the headers of r.
func (n *Negotiator) Request(r *http.Request) *Accepts {
	return &Accepts{
		negotiator: n,
		headers:    HeaderSetFromHTTP(r.Header),
	}
}

// FromHeaders starts a negotiation session with the default configuration.
func FromHeaders(headers HeaderSet) *Accepts {
	return defaultNegotiator.Headers(headers)
}

// FromRequest starts a negotiation session over the headers of r with the
// default configuration.
func FromRequest(r *http.Request) *Accepts {
	return defaultNegotiator.Request(r)
}
