package texture

import "context"

// Status classifies how sure the model was about its pick.
type Status string

const (
	StatusOK     Status = "ok"
	StatusReview Status = "review"
	// StatusError is only produced locally, when a free-text reply cannot be decoded.
	StatusError Status = "error"
)

// Placeholder attribute values carried by a fallback result.
const (
	DefaultChewiness = 5
	DefaultFirmness  = 5
)

// MaxTopNames is the longest short-list the model is asked for.
const MaxTopNames = 3

// Candidate is a reference food. Only the name is sent; the model infers its texture.
type Candidate struct {
	Name string `json:"name"`
}

// Result is the decoded model answer.
type Result struct {
	Status    Status   `json:"status"`
	Chewiness int      `json:"chewiness"`
	Firmness  int      `json:"firmness"`
	BestName  string   `json:"best_name,omitempty"`
	TopNames  []string `json:"top_names,omitempty"`
	// Raw holds the undecodable model output when Status is StatusError.
	Raw string `json:"raw,omitempty"`
}

// Matcher estimates the query's texture and picks the closest candidate.
type Matcher interface {
	Match(ctx context.Context, query string, candidates []Candidate) (Result, error)
}

// Names returns the candidate names in order.
func Names(candidates []Candidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Name)
	}
	return out
}

// FromNames wraps plain names as candidates.
func FromNames(names []string) []Candidate {
	out := make([]Candidate, 0, len(names))
	for _, n := range names {
		out = append(out, Candidate{Name: n})
	}
	return out
}
