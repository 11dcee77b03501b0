package conv

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIndent(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "object", raw: `{"a":1,"b":[true]}`, expected: "{\n  \"a\": 1,\n  \"b\": [\n    true\n  ]\n}"},
		{name: "scalar", raw: `42`, expected: "42"},
		{name: "empty", raw: ``, expected: ""},
		{name: "invalid", raw: `{oops`, expected: "{oops"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Indent(json.RawMessage(tc.raw)))
		})
	}
}

func TestDereference(t *testing.T) {
	assert.Equal(t, "", Dereference[string](nil))
	assert.Equal(t, "look", Dereference(Pointer("look")))
}
