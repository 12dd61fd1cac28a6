package converting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnwrap(t *testing.T) {
	assert.Equal(t, "", Unwrap[string](nil))
	assert.Equal(t, 3, Unwrap(PointerToValue(3)))
}

func TestValueOr(t *testing.T) {
	assert.Equal(t, "PAR", ValueOr("", "PAR"))
	assert.Equal(t, "NYC", ValueOr("NYC", "PAR"))
	assert.Equal(t, 1, ValueOr(0, 1))
}

func TestConvertMap(t *testing.T) {
	converted := ConvertMap(map[string][]string{"Content-Type": {"application/json"}})

	assert.Equal(t, map[string]any{"Content-Type": []string{"application/json"}}, converted)
}
