package texture

import (
	"bytes"
	"encoding/json"
)

// Request is the user payload: the query and the candidate list, verbatim.
type Request struct {
	Query      string      `json:"query"`
	Candidates []Candidate `json:"candidates"`
}

// NewRequest builds a payload without touching its inputs. Normalization and
// filtering are left to the model.
func NewRequest(query string, candidates []Candidate) Request {
	if candidates == nil {
		candidates = []Candidate{}
	}
	return Request{Query: query, Candidates: candidates}
}

// Marshal encodes the payload as compact JSON with non-ASCII and HTML
// characters left unescaped.
func (r Request) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
