package texture

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// Violation is one place where an answer departs from the output contract.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

type contract struct {
	Status    Status   `json:"status" validate:"oneof=ok review"`
	Chewiness int      `json:"chewiness" validate:"min=1,max=10"`
	Firmness  int      `json:"firmness" validate:"min=1,max=10"`
	TopNames  []string `json:"top_names" validate:"max=3"`
}

var contractValidator = newContractValidator()

func newContractValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.Split(f.Tag.Get("json"), ",")[0]
	})
	return v
}

// Check reports contract violations in r without changing it. Candidate
// membership is compared on folded names, so ﾊﾞﾅﾅ matches バナナ.
func Check(r Result, candidates []Candidate) []Violation {
	if r.Status == StatusError {
		return []Violation{{Field: KeyStatus, Message: "model output could not be decoded"}}
	}

	var out []Violation
	err := contractValidator.Struct(contract{
		Status:    r.Status,
		Chewiness: r.Chewiness,
		Firmness:  r.Firmness,
		TopNames:  r.TopNames,
	})
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			out = append(out, Violation{
				Field:   e.Field(),
				Message: fmt.Sprintf("failed '%s=%s' (value: %v)", e.Tag(), e.Param(), e.Value()),
			})
		}
	}

	known := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		known[Fold(c.Name)] = struct{}{}
	}
	isKnown := func(name string) bool {
		_, ok := known[Fold(name)]
		return ok
	}

	switch r.Status {
	case StatusOK:
		if r.BestName == "" {
			out = append(out, Violation{Field: KeyBestName, Message: "missing for status ok"})
		} else if !isKnown(r.BestName) {
			out = append(out, Violation{Field: KeyBestName, Message: fmt.Sprintf("%q is not a candidate", r.BestName)})
		}
	case StatusReview:
		if len(r.TopNames) == 0 {
			out = append(out, Violation{Field: KeyTopNames, Message: "empty for status review"})
		}
		for _, name := range r.TopNames {
			if !isKnown(name) {
				out = append(out, Violation{Field: KeyTopNames, Message: fmt.Sprintf("%q is not a candidate", name)})
			}
		}
	}
	return out
}

// Fold maps width, case, hiragana/katakana and spacing variants of a name to one key.
func Fold(s string) string {
	s = width.Fold.String(norm.NFKC.String(s))
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			continue
		case r >= 'ぁ' && r <= 'ゖ':
			r += 'ァ' - 'ぁ'
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
