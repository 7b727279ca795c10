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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withHeader returns a session where name is set to value.
func withHeader(name, value string) *Accepts {
	return FromHeaders(HeaderSet{name: value})
}

// withoutHeaders returns a session where no header was sent.
func withoutHeaders() *Accepts {
	return FromHeaders(HeaderSet{})
}

func TestTypes(t *testing.T) {
	t.Parallel()

	t.Run("list when Accept is populated", func(t *testing.T) {
		t.Parallel()

		a := withHeader(HeaderAccept, "application/*;q=0.2, image/jpeg;q=0.8, text/html, text/plain")
		assert.Equal(t, []string{"text/html", "text/plain", "image/jpeg", "application/*"}, a.Types())
	})

	t.Run("list when Accept is not sent", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []string{"*/*"}, withoutHeaders().Types())
	})

	t.Run("list when Accept is empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, withHeader(HeaderAccept, "").Types())
	})

	t.Run("ranked offers", func(t *testing.T) {
		t.Parallel()

		a := withHeader(HeaderAccept, "text/html;q=0.5, application/json")
		assert.Equal(t, []string{"json", "html"}, a.Types("png", "html", "json"))
		assert.Equal(t, []string{"png", "html"}, withoutHeaders().Types("png", "html"))
	})
}

func TestType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		accept      *string
		offers      []string
		expected    string
		ok          bool
		description string
	}{
		{
			name:        "no valid types",
			accept:      ptr("application/*;q=0.2, image/jpeg;q=0.8, text/html, text/plain"),
			offers:      []string{"image/png", "image/tiff"},
			ok:          false,
			description: "should report no match when no offer is acceptable",
		},
		{
			name:        "no accept header returns first",
			accept:      nil,
			offers:      []string{"text/html", "text/plain", "image/jpeg", "application/*"},
			expected:    "text/html",
			ok:          true,
			description: "should return the first offer when Accept is not sent",
		},
		{
			name:        "no accept header returns unresolvable first",
			accept:      nil,
			offers:      []string{"bogus", "html"},
			expected:    "bogus",
			ok:          true,
			description: "should return the first offer verbatim even if it is not a media type",
		},
		{
			name:        "empty accept header accepts nothing",
			accept:      ptr(""),
			offers:      []string{"html", "json"},
			ok:          false,
			description: "should treat an empty Accept header as accepting nothing",
		},
		{
			name:        "extension html",
			accept:      ptr("text/plain, text/html"),
			offers:      []string{"html"},
			expected:    "html",
			ok:          true,
			description: "should resolve the extension and echo it",
		},
		{
			name:        "extension with dot",
			accept:      ptr("text/plain, text/html"),
			offers:      []string{".html"},
			expected:    ".html",
			ok:          true,
			description: "should resolve a dotted extension and echo it",
		},
		{
			name:        "extension txt",
			accept:      ptr("text/plain, text/html"),
			offers:      []string{"txt"},
			expected:    "txt",
			ok:          true,
			description: "should resolve txt to text/plain",
		},
		{
			name:        "extension .txt",
			accept:      ptr("text/plain, text/html"),
			offers:      []string{".txt"},
			expected:    ".txt",
			ok:          true,
			description: "should resolve .txt to text/plain",
		},
		{
			name:        "extension png not acceptable",
			accept:      ptr("text/plain, text/html"),
			offers:      []string{"png"},
			ok:          false,
			description: "should not match image/png",
		},
		{
			name:        "unknown extension",
			accept:      ptr("text/plain, text/html"),
			offers:      []string{"bogus"},
			ok:          false,
			description: "should never match an unresolvable extension",
		},
		{
			name:        "first match among extensions",
			accept:      ptr("text/plain, text/html"),
			offers:      []string{"png", "text", "html"},
			expected:    "text",
			ok:          true,
			description: "should return the first acceptable offer at equal quality",
		},
		{
			name:        "skip png",
			accept:      ptr("text/plain, text/html"),
			offers:      []string{"png", "html"},
			expected:    "html",
			ok:          true,
			description: "should skip the unacceptable offer",
		},
		{
			name:        "skip bogus",
			accept:      ptr("text/plain, text/html"),
			offers:      []string{"bogus", "html"},
			expected:    "html",
			ok:          true,
			description: "should skip the unresolvable offer",
		},
		{
			name:        "exact match",
			accept:      ptr("text/plain, text/html"),
			offers:      []string{"text/plain"},
			expected:    "text/plain",
			ok:          true,
			description: "should return an exactly matching media type",
		},
		{
			name:        "type match via */*",
			accept:      ptr("application/json, */*"),
			offers:      []string{"image/png"},
			expected:    "image/png",
			ok:          true,
			description: "should accept anything through */*",
		},
		{
			name:        "subtype match",
			accept:      ptr("application/json, text/*"),
			offers:      []string{"text/html"},
			expected:    "text/html",
			ok:          true,
			description: "should accept text/html through text/*",
		},
		{
			name:        "subtype mismatch",
			accept:      ptr("application/json, text/*"),
			offers:      []string{"image/png"},
			ok:          false,
			description: "should reject image/png when only text/* and json are accepted",
		},
		{
			name:        "quality beats order",
			accept:      ptr("text/*;q=.5, application/json"),
			offers:      []string{"html", "json"},
			expected:    "json",
			ok:          true,
			description: "should prefer the higher quality offer",
		},
		{
			name:        "specificity beats order",
			accept:      ptr("text/*, text/html"),
			offers:      []string{"txt", "html"},
			expected:    "html",
			ok:          true,
			description: "should prefer the exact range over the wildcard",
		},
		{
			name:        "parameters add specificity",
			accept:      ptr("application/json, application/json;version=2"),
			offers:      []string{"application/json;version=1", "application/json;version=2"},
			expected:    "application/json;version=2",
			ok:          true,
			description: "should prefer the offer whose parameters match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			a := withoutHeaders()
			if tt.accept != nil {
				a = withHeader(HeaderAccept, *tt.accept)
			}

			got, ok := a.Type(tt.offers...)
			assert.Equal(t, tt.ok, ok, "Type()\nDescription: %s\nOffers: %v", tt.description, tt.offers)
			assert.Equal(t, tt.expected, got, "Type()\nDescription: %s\nOffers: %v", tt.description, tt.offers)
		})
	}
}

func TestType_NoOffers(t *testing.T) {
	t.Parallel()

	got, ok := withHeader(HeaderAccept, "text/plain;q=0.5, text/html").Type()
	require.True(t, ok)
	assert.Equal(t, "text/html", got)

	_, ok = withHeader(HeaderAccept, "").Type()
	assert.False(t, ok)
}

func TestType_SliceAndVariadicAgree(t *testing.T) {
	t.Parallel()

	a := withHeader(HeaderAccept, "text/plain, text/html")
	offers := []string{"png", "text", "html"}

	fromSlice, okSlice := a.Type(offers...)
	fromArgs, okArgs := a.Type("png", "text", "html")
	assert.Equal(t, okArgs, okSlice)
	assert.Equal(t, fromArgs, fromSlice)
}

func TestEncodings(t *testing.T) {
	t.Parallel()

	t.Run("populated", func(t *testing.T) {
		t.Parallel()

		a := withHeader(HeaderAcceptEncoding, "gzip, compress;q=0.2")
		assert.Equal(t, []string{"gzip", "compress", "identity"}, a.Encodings())

		got, ok := a.Encoding("gzip", "compress")
		require.True(t, ok)
		assert.Equal(t, "gzip", got)

		got, ok = a.Encoding("compress", "gzip")
		require.True(t, ok)
		assert.Equal(t, "gzip", got)

		offers := []string{"compress", "gzip"}
		got, ok = a.Encoding(offers...)
		require.True(t, ok)
		assert.Equal(t, "gzip", got)
	})

	t.Run("not sent", func(t *testing.T) {
		t.Parallel()

		a := withoutHeaders()
		assert.Equal(t, []string{"identity"}, a.Encodings())

		got, ok := a.Encoding("gzip", "deflate", "identity")
		require.True(t, ok)
		assert.Equal(t, "identity", got)

		_, ok = a.Encoding("gzip", "deflate")
		assert.False(t, ok)
	})

	t.Run("empty", func(t *testing.T) {
		t.Parallel()

		a := withHeader(HeaderAcceptEncoding, "")
		assert.Equal(t, []string{"identity"}, a.Encodings())

		got, ok := a.Encoding("gzip", "deflate", "identity")
		require.True(t, ok)
		assert.Equal(t, "identity", got)

		_, ok = a.Encoding("gzip", "deflate")
		assert.False(t, ok)
	})

	t.Run("identity excluded", func(t *testing.T) {
		t.Parallel()

		a := withHeader(HeaderAcceptEncoding, "gzip, identity;q=0")
		assert.Equal(t, []string{"gzip"}, a.Encodings())

		_, ok := a.Encoding("identity")
		assert.False(t, ok)
	})

	t.Run("ranked offers", func(t *testing.T) {
		t.Parallel()

		a := withHeader(HeaderAcceptEncoding, "br;q=0.9, gzip, identity;q=0.1")
		assert.Equal(t, []string{"gzip", "br", "identity"}, a.Encodings("identity", "br", "gzip", "zstd"))
	})
}

func TestEncodingPreferred(t *testing.T) {
	t.Parallel()

	a := withHeader(HeaderAcceptEncoding, "gzip, br, compress")

	got, ok := a.EncodingPreferred([]string{"br"}, "gzip", "br", "identity")
	require.True(t, ok)
	assert.Equal(t, "br", got)

	got, ok = a.EncodingPreferred([]string{"br"}, "gzip", "identity", "br")
	require.True(t, ok)
	assert.Equal(t, "br", got)

	a = withHeader(HeaderAcceptEncoding, "gzip, br")
	got, ok = a.EncodingPreferred([]string{"br"}, []string{"br", "gzip", "identity"}...)
	require.True(t, ok)
	assert.Equal(t, "br", got)

	a = withHeader(HeaderAcceptEncoding, "gzip, br;q=0.8")
	got, ok = a.EncodingPreferred([]string{"br"}, "br", "gzip")
	require.True(t, ok)
	assert.Equal(t, "gzip", got, "preferred must not override quality")
}

func TestCharsets(t *testing.T) {
	t.Parallel()

	populated := "utf-8, iso-8859-1;q=0.2, utf-7;q=0.5"

	assert.Equal(t, []string{"utf-8", "utf-7", "iso-8859-1"}, withHeader(HeaderAcceptCharset, populated).Charsets())
	assert.Equal(t, []string{"*"}, withoutHeaders().Charsets())
	assert.Empty(t, withHeader(HeaderAcceptCharset, "").Charsets())

	got, ok := withHeader(HeaderAcceptCharset, populated).Charset("utf-7", "utf-8")
	require.True(t, ok)
	assert.Equal(t, "utf-8", got)

	_, ok = withHeader(HeaderAcceptCharset, populated).Charset("utf-16")
	assert.False(t, ok)

	got, ok = withoutHeaders().Charset("utf-7", "utf-8")
	require.True(t, ok)
	assert.Equal(t, "utf-7", got)

	got, ok = withHeader(HeaderAcceptCharset, populated).Charset([]string{"utf-7", "utf-8"}...)
	require.True(t, ok)
	assert.Equal(t, "utf-8", got)

	_, ok = withHeader(HeaderAcceptCharset, "").Charset("utf-8")
	assert.False(t, ok)
}

func TestLanguages(t *testing.T) {
	t.Parallel()

	populated := "en;q=0.8, es, pt"

	assert.Equal(t, []string{"es", "pt", "en"}, withHeader(HeaderAcceptLanguage, populated).Languages())
	assert.Equal(t, []string{"es", "pt", "en"}, withHeader(HeaderAcceptLanguage, populated).Langs())
	assert.Equal(t, []string{"*"}, withoutHeaders().Languages())
	assert.Empty(t, withHeader(HeaderAcceptLanguage, "").Languages())

	a := withHeader(HeaderAcceptLanguage, populated)

	got, ok := a.Language("es", "en")
	require.True(t, ok)
	assert.Equal(t, "es", got)

	got, ok = a.Lang([]string{"es", "en"}...)
	require.True(t, ok)
	assert.Equal(t, "es", got)

	_, ok = a.Language("fr", "au")
	assert.False(t, ok)

	got, ok = withoutHeaders().Language("es", "en")
	require.True(t, ok)
	assert.Equal(t, "es", got)

	got, ok = withHeader(HeaderAcceptLanguage, "en").Language("en-US", "fr")
	require.True(t, ok)
	assert.Equal(t, "en-US", got)

	_, ok = withHeader(HeaderAcceptLanguage, "en-US").Language("en-GB")
	assert.False(t, ok)
}

func TestAbsentHeaderReturnsFirstOffer(t *testing.T) {
	t.Parallel()

	a := withoutHeaders()
	offers := []string{"zz-first", "aa-second"}

	for name, fn := range map[string]func(...string) (string, bool){
		"type":     a.Type,
		"charset":  a.Charset,
		"language": a.Language,
	} {
		got, ok := fn(offers...)
		require.True(t, ok, name)
		assert.Equal(t, offers[0], got, name)
	}
}

func TestAbsentHeaderReturnsEmptyFirstOffer(t *testing.T) {
	t.Parallel()

	a := withoutHeaders()

	charset, ok := a.Charset("", "utf-8")
	require.True(t, ok)
	assert.Empty(t, charset)

	lang, ok := a.Language("", "en")
	require.True(t, ok)
	assert.Empty(t, lang)

	assert.Equal(t, []string{"", "utf-8"}, a.Charsets("", "utf-8"))
}

func TestTopPreferenceRoundTrips(t *testing.T) {
	t.Parallel()

	a := FromHeaders(HeaderSet{
		HeaderAccept:         "text/plain;q=0.3, application/json",
		HeaderAcceptEncoding: "gzip;q=0.4, br",
		HeaderAcceptCharset:  "latin1;q=0.1, utf-8",
		HeaderAcceptLanguage: "de;q=0.5, fr-CA",
	})

	for _, tc := range []struct {
		list func(...string) []string
		best func(...string) (string, bool)
	}{
		{a.Types, a.Type},
		{a.Encodings, a.Encoding},
		{a.Charsets, a.Charset},
		{a.Languages, a.Language},
	} {
		top := tc.list()[0]
		got, ok := tc.best(top)
		require.True(t, ok, top)
		assert.Equal(t, top, got)
	}
}

func ptr(s string) *string { return &s }
