package pandoc

import (
	"fmt"

	json "github.com/goccy/go-json"

	semerrors "github.com/alexisbeaulieu97/semtheme/pkg/errors"
)

// decodeMeta converts pandoc metadata into plain values: MetaMap becomes
// map[string]any, MetaList []any, MetaBool bool and every textual variant a
// string.
func decodeMeta(raw json.RawMessage) (map[string]any, error) {
	out := map[string]any{}
	if len(raw) == 0 || string(raw) == "null" {
		return out, nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, semerrors.NewStructuralError("meta", "metadata is not an object", err)
	}
	for key, value := range entries {
		decoded, err := decodeMetaValue(value, "meta."+key)
		if err != nil {
			return nil, err
		}
		out[key] = decoded
	}
	return out, nil
}

func decodeMetaValue(raw json.RawMessage, path string) (any, error) {
	n, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}

	switch n.T {
	case "MetaMap":
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(n.C, &entries); err != nil {
			return nil, semerrors.NewStructuralError(path, "MetaMap content is not an object", err)
		}
		out := make(map[string]any, len(entries))
		for key, value := range entries {
			decoded, err := decodeMetaValue(value, path+"."+key)
			if err != nil {
				return nil, err
			}
			out[key] = decoded
		}
		return out, nil

	case "MetaList":
		var items []json.RawMessage
		if err := json.Unmarshal(n.C, &items); err != nil {
			return nil, semerrors.NewStructuralError(path, "MetaList content is not an array", err)
		}
		out := make([]any, 0, len(items))
		for i, item := range items {
			decoded, err := decodeMetaValue(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out = append(out, decoded)
		}
		return out, nil

	case "MetaBool":
		var b bool
		if err := json.Unmarshal(n.C, &b); err != nil {
			return nil, semerrors.NewStructuralError(path, "MetaBool content is not a boolean", err)
		}
		return b, nil

	case "MetaString":
		var s string
		if err := json.Unmarshal(n.C, &s); err != nil {
			return nil, semerrors.NewStructuralError(path, "MetaString content is not a string", err)
		}
		return s, nil
	}

	// MetaInlines and MetaBlocks.
	return stringifyRaw(n.C), nil
}
