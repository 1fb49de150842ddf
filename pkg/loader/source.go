package loader

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// SourceKind enumerates where a document can be read from.
type SourceKind string

const (
	SourceKindFile SourceKind = "file"
	SourceKindFS   SourceKind = "fs"
	SourceKindURL  SourceKind = "url"
)

// Source names a metadata document.
type Source struct {
	Kind     SourceKind
	Location string
}

// FileSource points at a path on disk.
func FileSource(path string) Source {
	return Source{Kind: SourceKindFile, Location: filepath.Clean(path)}
}

// FSSource points at a path inside the loader's fs.FS.
func FSSource(name string) Source {
	return Source{Kind: SourceKindFS, Location: path.Clean(name)}
}

// URLSource points at an HTTP(S) endpoint.
func URLSource(raw string) (Source, error) {
	if raw == "" {
		return Source{}, fmt.Errorf("loader: empty URL source")
	}
	parsed, err := url.ParseRequestURI(raw)
	if err != nil {
		return Source{}, fmt.Errorf("loader: invalid URL %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return Source{}, fmt.Errorf("loader: unsupported URL scheme %q", parsed.Scheme)
	}
	return Source{Kind: SourceKindURL, Location: raw}, nil
}

// SourceFor guesses the kind from the location: http(s) URLs become URL
// sources, everything else a file.
func SourceFor(location string) (Source, error) {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return URLSource(location)
	}
	return FileSource(location), nil
}

func (s Source) String() string {
	return string(s.Kind) + ":" + s.Location
}
