package tree

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Format selects the decoder used for raw input.
type Format string

const (
	FormatAuto Format = "auto"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// Parse decodes data with the decoder selected by format. FormatAuto picks
// JSON when the first significant byte opens an object, array or string,
// and YAML otherwise.
func Parse(data []byte, format Format) (Value, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	case FormatYAML:
		return ParseYAML(data)
	case FormatAuto, "":
		if looksLikeJSON(data) {
			return ParseJSON(data)
		}
		return ParseYAML(data)
	default:
		return nil, fmt.Errorf("tree: unknown input format %q", format)
	}
}

// DetectFormat guesses the format from a file name, falling back to
// FormatAuto for unknown extensions and stdin.
func DetectFormat(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonc":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

func looksLikeJSON(data []byte) bool {
	trimmed := bytes.TrimSpace(StripComments(data))
	if len(trimmed) == 0 {
		return true
	}
	switch trimmed[0] {
	case '{', '[', '"':
		return true
	default:
		return false
	}
}
