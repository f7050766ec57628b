package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

// MetadataKey is the document metadata entry holding per-document configuration.
const MetadataKey = "semtheme"

// FromMetadata reads configuration from decoded document metadata. It returns
// nil when the document carries none.
func FromMetadata(meta map[string]any) (*Config, error) {
	raw, ok := meta[MetadataKey]
	if !ok || raw == nil {
		return nil, nil
	}
	if _, isMap := raw.(map[string]any); !isMap {
		return nil, semerrors.NewValidationError(MetadataKey, fmt.Sprintf("metadata %q must be a mapping, got %T", MetadataKey, raw), nil)
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return nil, semerrors.NewParseError("metadata", 0, err)
	}
	return Parse("metadata", data, FormatYAML)
}
