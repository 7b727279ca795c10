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
	"mime"
	"strings"
)

// LookupFunc resolves a file extension ("html", ".json") to a media type
// without parameters ("text/html"). It reports false for unknown extensions.
type LookupFunc func(ext string) (mediaType string, ok bool)

// commonTypes covers the extensions handlers most often negotiate with.
// Lookups fall back to the mime package for everything else.
var commonTypes = map[string]string{
	"html":  "text/html",
	"htm":   "text/html",
	"json":  "application/json",
	"xml":   "application/xml",
	"text":  "text/plain",
	"txt":   "text/plain",
	"csv":   "text/csv",
	"md":    "text/markdown",
	"css":   "text/css",
	"js":    "application/javascript",
	"mjs":   "application/javascript",
	"yaml":  "application/yaml",
	"yml":   "application/yaml",
	"toml":  "application/toml",
	"proto": "application/x-protobuf",
	"pb":    "application/x-protobuf",
	"mpk":   "application/msgpack",
	"png":   "image/png",
	"jpg":   "image/jpeg",
	"jpeg":  "image/jpeg",
	"gif":   "image/gif",
	"webp":  "image/webp",
	"avif":  "image/avif",
	"svg":   "image/svg+xml",
	"ico":   "image/vnd.microsoft.icon",
	"pdf":   "application/pdf",
	"zip":   "application/zip",
	"gz":    "application/gzip",
	"wasm":  "application/wasm",
	"mp4":   "video/mp4",
	"webm":  "video/webm",
	"mp3":   "audio/mpeg",
	"wav":   "audio/wav",
	"woff":  "font/woff",
	"woff2": "font/woff2",
}

// DefaultLookup resolves ext using a built-in table of common web types,
// then the system MIME tables through [mime.TypeByExtension]. A leading dot
// is optional and the lookup is case-insensitive. Parameters such as
// charset are stripped from the result.
//
// Only the built-in table is the same on every host. Extensions outside it
// depend on the MIME files of the machine (/etc/mime.types and friends, or
// the registry on Windows); pass a [LookupFunc] with [WithLookup] when
// resolution must be reproducible.
func DefaultLookup(ext string) (string, bool) {
	ext = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	if ext == "" {
		return "", false
	}

	if mediaType, ok := commonTypes[ext]; ok {
		return mediaType, true
	}

	typ := mime.TypeByExtension("." + ext)
	if typ == "" {
		return "", false
	}

	mediaType, _, err := mime.ParseMediaType(typ)
	if err != nil {
		return "", false
	}

	return mediaType, true
}
