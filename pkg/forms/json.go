package forms

import (
	"encoding/json"
	"fmt"
)

func cloneRaw(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		out[k] = append(json.RawMessage(nil), v...)
	}
	return out
}

func mustString(s string) json.RawMessage {
	b, _ := json.Marshal(s) // strings always marshal
	return b
}

// takeString moves a string-valued key out of raw into dst. null and absent
// keys leave dst empty.
func takeString(raw map[string]json.RawMessage, key string, dst *string) error {
	v, ok := raw[key]
	if !ok {
		return nil
	}
	delete(raw, key)
	var s *string
	if err := json.Unmarshal(v, &s); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	if s != nil {
		*dst = *s
	}
	return nil
}

// takeOptionalString is takeString for fields where absence matters.
func takeOptionalString(raw map[string]json.RawMessage, key string) (*string, error) {
	if _, ok := raw[key]; !ok {
		return nil, nil
	}
	var s string
	if err := takeString(raw, key, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
