package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-dynform/pkg/model"
)

// Format is a document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the encoding from the file extension, falling back to
// sniffing the first non-blank byte.
func DetectFormat(data []byte, name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	}
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

func decodeGeneric(data []byte, name string) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyDocument, displayName(name))
	}

	var raw any
	switch DetectFormat(data, name) {
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("loader: parse %s: invalid JSON: %w", displayName(name), err)
		}
	default:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("loader: parse %s: invalid YAML: %w", displayName(name), err)
		}
	}
	return raw, nil
}

// decodeMeta projects a generic document onto the typed tree through JSON so
// both encodings share one set of field names.
func decodeMeta(raw any) (model.FormMeta, error) {
	payload, err := json.Marshal(raw)
	if err != nil {
		return model.FormMeta{}, err
	}
	var meta model.FormMeta
	if err := json.Unmarshal(payload, &meta); err != nil {
		return model.FormMeta{}, err
	}
	return meta, nil
}
