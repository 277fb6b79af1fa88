package texture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFence(t *testing.T) {
	inner := "\n{\"status\":\"ok\",\"best_name\":\"a ``` b\"}\n"

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"json fence", "```json" + inner + "```", inner},
		{"bare fence", "```" + inner + "```", inner},
		{"surrounding whitespace", "  \n```json" + inner + "```\n ", inner},
		{"no fence", `{"status":"ok"}`, `{"status":"ok"}`},
		{"no fence trimmed", "  {\"status\":\"ok\"}\n", `{"status":"ok"}`},
		{"opening only", "```json\n{\"a\":1}", "\n{\"a\":1}"},
		{"closing only", "{\"a\":1}\n```", "{\"a\":1}\n"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripFence(tt.in))
		})
	}
}

func TestDecode(t *testing.T) {
	r, err := Decode(`{"status":"review","chewiness":6,"firmness":4,"top_names":["バナナ","マシュマロ"]}`)
	require.NoError(t, err)

	assert.Equal(t, Result{
		Status:    StatusReview,
		Chewiness: 6,
		Firmness:  4,
		TopNames:  []string{"バナナ", "マシュマロ"},
	}, r)
}

func TestDecode_InvalidJSON(t *testing.T) {
	_, err := Decode("not json")
	assert.Error(t, err)
}

func TestDecodeLenient_FencedObject(t *testing.T) {
	text := "```json\n{\"status\":\"ok\",\"chewiness\":8,\"firmness\":7,\"best_name\":\"カルパス\"}\n```"

	r := DecodeLenient(text)
	assert.Equal(t, Result{Status: StatusOK, Chewiness: 8, Firmness: 7, BestName: "カルパス"}, r)
}

func TestDecodeLenient_FallbackKeepsRawText(t *testing.T) {
	inputs := []string{
		"I think the answer is バナナ.",
		"```json\n{\"status\":\"ok\",\"chewiness\":8",
		`{"status":"ok","firmness":3}`,
		`{"status":"ok","chewiness":"eight","firmness":3}`,
		`["ok", 1, 2]`,
		"",
	}
	for _, in := range inputs {
		r := DecodeLenient(in)
		assert.Equal(t, StatusError, r.Status, in)
		assert.Equal(t, DefaultChewiness, r.Chewiness, in)
		assert.Equal(t, DefaultFirmness, r.Firmness, in)
		assert.Equal(t, in, r.Raw, "raw text must be preserved verbatim")
		assert.Empty(t, r.BestName)
		assert.Empty(t, r.TopNames)
	}
}

func TestDecodeLenient_OutOfRangePassesThrough(t *testing.T) {
	r := DecodeLenient(`{"status":"ok","chewiness":42,"firmness":0,"best_name":"存在しない食品"}`)

	assert.Equal(t, StatusOK, r.Status)
	assert.Equal(t, 42, r.Chewiness)
	assert.Equal(t, 0, r.Firmness)
	assert.Equal(t, "存在しない食品", r.BestName)
}

func TestDecodeLenient_DropsModelSuppliedRaw(t *testing.T) {
	r := DecodeLenient(`{"status":"ok","chewiness":2,"firmness":2,"best_name":"バナナ","raw":"x"}`)
	assert.Empty(t, r.Raw)
}

func TestDecodeLenient_NullRequiredKeyCountsAsPresent(t *testing.T) {
	r := DecodeLenient(`{"status":null,"chewiness":null,"firmness":null}`)

	assert.Equal(t, Result{}, r, "null values decode to zero values, not the fallback")
}
