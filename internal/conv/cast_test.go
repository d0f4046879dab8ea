package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitsInt32(t *testing.T) {
	assert.True(t, FitsInt32(0))
	assert.True(t, FitsInt32(math.MaxInt32+1))
	assert.False(t, FitsInt32(math.MaxInt32+2))
	assert.False(t, FitsInt32(-1))
}

func TestUint64ToInt(t *testing.T) {
	i, err := Uint64ToInt(9)
	require.NoError(t, err)
	assert.Equal(t, 9, i)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.Error(t, err)
}
