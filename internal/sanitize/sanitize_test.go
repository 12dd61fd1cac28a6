package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlace(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`'New York"`, "New York"},
		{"  Paris  ", "Paris"},
		{`<script>alert('x')</script>`, "scriptalert(x)/script"},
		{`{"city": "Rome"}`, "city: Rome"},
		{`S"a'o {P}a<u>lo`, "Sao Paulo"},
		{"Zürich", "Zürich"},
		{"\t\n", ""},
		{"", ""},
		{`"'{}<>`, ""},
		{` " Lisbon " `, "Lisbon"},
	}

	for _, test := range tests {
		t.Run(test.input, func(t *testing.T) {
			result := Place(test.input)
			assert.Equal(t, test.expected, result)
			assert.NotContainsf(t, result, `"`, "quotes left in %q", result)
		})
	}
}

func TestPlacePreservesOrder(t *testing.T) {
	input := `a"b'c{d}e<f>g`

	assert.Equal(t, "abcdefg", Place(input))
}

func TestEmpty(t *testing.T) {
	assert.True(t, Empty(Place("  <>  ")))
	assert.False(t, Empty(Place("Oslo")))
}
