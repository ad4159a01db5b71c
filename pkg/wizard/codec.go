package wizard

import (
	"encoding/json"
	"fmt"
)

// EncodeValues serialises values as a JSON object. Only string and bool
// entries are written.
func EncodeValues(values Values) ([]byte, error) {
	out := make(map[string]any, len(values))
	for name, value := range values {
		switch value.(type) {
		case string, bool:
			out[name] = value
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("wizard: encode values: %w", err)
	}
	return data, nil
}

// DecodeValues parses a persisted blob. The payload must be a JSON object;
// entries that are neither strings nor booleans are dropped.
func DecodeValues(data []byte) (Values, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("wizard: decode values: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("wizard: decode values: payload is not an object")
	}
	out := make(Values, len(raw))
	for name, value := range raw {
		switch value.(type) {
		case string, bool:
			out[name] = value
		}
	}
	return out, nil
}
