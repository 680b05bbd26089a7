package enhancer

import (
	"encoding/json"
	"strings"

	"github.com/agentstation/zonemeta/pkg/errors"
)

var (
	errNoBackend = errors.New("no text-generation backend configured")
	errNoObject  = errors.New("response contains no JSON object")
)

// Extract pulls a Suggestion out of free text. The backend gives no schema
// guarantee, so the text between the first '{' and the last '}' is decoded
// and must carry a non-empty string businessName and a string description.
func Extract(text string) (Suggestion, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return Suggestion{}, errNoObject
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text[start:end+1]), &raw); err != nil {
		return Suggestion{}, errors.WrapParse("json", "generated response", err)
	}

	var s Suggestion
	if err := requireString(raw, "businessName", &s.BusinessName); err != nil {
		return Suggestion{}, err
	}
	if err := requireString(raw, "description", &s.Description); err != nil {
		return Suggestion{}, err
	}
	s.BusinessName = strings.TrimSpace(s.BusinessName)
	s.Description = strings.TrimSpace(s.Description)
	if s.BusinessName == "" {
		return Suggestion{}, errors.NewValidationError("businessName", "", "generated business name is empty")
	}
	return s, nil
}

func requireString(raw map[string]json.RawMessage, key string, dst *string) error {
	v, ok := raw[key]
	if !ok {
		return errors.NewValidationError(key, nil, "missing from generated response")
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return errors.NewValidationError(key, string(v), "not a string in generated response")
	}
	return nil
}
