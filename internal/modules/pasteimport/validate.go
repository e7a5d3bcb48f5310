package pasteimport

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// extractItems parses the generated text value and returns its items.
// A string value is parsed as JSON; a structured value is used as is.
func extractItems(text json.RawMessage) ([]json.RawMessage, *Error) {
	value := bytes.TrimSpace(text)
	if isNull(value) {
		value = []byte(`""`)
	}

	if value[0] == '"' {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return nil, internalError(KindMalformedPayload, err)
		}
		cleaned := cleanJSONString(s)
		var v json.RawMessage
		if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
			return nil, internalError(KindMalformedPayload, err)
		}
		value = bytes.TrimSpace(v)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(value, &obj); err != nil {
		return nil, internalError(KindInvalidShape, ErrInvalidShape)
	}
	raw, ok := obj["items"]
	raw = bytes.TrimSpace(raw)
	if !ok || len(raw) == 0 || raw[0] != '[' {
		return nil, internalError(KindInvalidShape, ErrInvalidShape)
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, internalError(KindInvalidShape, ErrInvalidShape)
	}
	if items == nil {
		items = []json.RawMessage{}
	}
	return items, nil
}

// cleanJSONString removes markdown code blocks if present (e.g. ```json ... ```)
func cleanJSONString(input string) string {
	input = strings.TrimSpace(input)
	input = strings.TrimPrefix(input, "```json")
	input = strings.TrimPrefix(input, "```")
	input = strings.TrimSuffix(input, "```")
	return strings.TrimSpace(input)
}

// checkDuplicateLocations reports the first location repeated within items or already
// present in existing. Items without a location are ignored.
func checkDuplicateLocations(items []json.RawMessage, existing json.RawMessage) *Error {
	seen := make(map[string]struct{})

	var prior []json.RawMessage
	if err := json.Unmarshal(existing, &prior); err == nil {
		for _, raw := range prior {
			if key := locationKey(raw); key != "" {
				seen[key] = struct{}{}
			}
		}
	}

	for _, raw := range items {
		key := locationKey(raw)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			return internalError(KindInvalidShape, fmt.Errorf("%w: %s", ErrDuplicateLocation, key))
		}
		seen[key] = struct{}{}
	}
	return nil
}

func locationKey(raw json.RawMessage) string {
	var item struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return ""
	}
	return strings.ToLower(strings.Join(strings.Fields(item.Location), " "))
}
