package level2

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProduct(t *testing.T) {
	for _, name := range []string{"ref", "vel", "sw", "zdr", "phi", "rho", "cfp"} {
		p, err := ParseProduct(name)
		require.NoError(t, err)
		assert.Equal(t, Product(name), p)
	}

	_, err := ParseProduct("dbz")
	assert.Error(t, err)
}

func TestProductBlockType(t *testing.T) {
	bt, ok := ProductSpectrumWidth.BlockType()
	require.True(t, ok)
	assert.Equal(t, BlockSw, bt)

	bt, ok = ProductReflectivity.BlockType()
	require.True(t, ok)
	assert.Equal(t, BlockRef, bt)

	_, ok = Product("bogus").BlockType()
	assert.False(t, ok)
}
