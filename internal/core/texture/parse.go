package texture

import (
	"encoding/json"
	"strings"
)

const (
	fence     = "```"
	fenceJSON = "```json"
)

// StripFence removes a leading ```json (or bare ```) marker and a trailing
// ``` marker when present. Whatever sits between them is returned as is.
func StripFence(text string) string {
	s := strings.TrimSpace(text)
	switch {
	case strings.HasPrefix(s, fenceJSON):
		s = s[len(fenceJSON):]
	case strings.HasPrefix(s, fence):
		s = s[len(fence):]
	}
	if strings.HasSuffix(s, fence) {
		s = s[:len(s)-len(fence)]
	}
	return s
}

// Decode parses a schema-constrained answer.
func Decode(text string) (Result, error) {
	var r Result
	if err := json.Unmarshal([]byte(text), &r); err != nil {
		return Result{}, err
	}
	r.Raw = ""
	return r, nil
}

// DecodeLenient parses free-text model output. Anything that is not a JSON
// object carrying the required keys becomes a Fallback record. Values are
// not range-checked.
func DecodeLenient(text string) Result {
	body := []byte(StripFence(text))

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return Fallback(text)
	}
	for _, key := range RequiredKeys {
		if _, ok := fields[key]; !ok {
			return Fallback(text)
		}
	}

	var r Result
	if err := json.Unmarshal(body, &r); err != nil {
		return Fallback(text)
	}
	r.Raw = ""
	return r
}

// Fallback is the sentinel record for undecodable output. raw is kept verbatim.
func Fallback(raw string) Result {
	return Result{
		Status:    StatusError,
		Chewiness: DefaultChewiness,
		Firmness:  DefaultFirmness,
		Raw:       raw,
	}
}
