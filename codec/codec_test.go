package codec

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/manifold/csr"
	"github.com/hupe1980/manifold/model"
)

// banded returns a compressible graph: every vertex links to itself and its
// two successors with small repeating weights.
func banded(n int) *csr.Graph {
	g := &csr.Graph{RowPtr: make([]int, n+1)}
	for r := range n {
		for d := range 3 {
			g.ColInd = append(g.ColInd, int32((r+d)%n))
			g.Data = append(g.Data, float32(d))
		}
		g.RowPtr[r+1] = len(g.ColInd)
	}
	return g
}

func TestEncodeDecode(t *testing.T) {
	g := banded(500)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			data, err := Encode(g, c)
			require.NoError(t, err)

			got, err := Decode(data)
			require.NoError(t, err)
			assert.Equal(t, g.RowPtr, got.RowPtr)
			assert.Equal(t, g.ColInd, got.ColInd)
			assert.Equal(t, g.Data, got.Data)
		})
	}
}

func TestEncode_CompressionShrinks(t *testing.T) {
	g := banded(2000)

	raw, err := Encode(g, CompressionNone)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), raw[7], "uncompressed payload is stored")

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		data, err := Encode(g, c)
		require.NoError(t, err)
		assert.Less(t, len(data), len(raw), c.String())
		assert.Equal(t, uint8(0), data[7], c.String())
	}
}

func TestEncode_EmptyGraph(t *testing.T) {
	g := &csr.Graph{RowPtr: []int{0}}

	data, err := Encode(g, CompressionZSTD)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Rows())
	assert.Equal(t, 0, got.NNZ())
}

func TestEncode_RejectsMalformedGraph(t *testing.T) {
	g := &csr.Graph{RowPtr: []int{0, 1}, ColInd: []int32{3}, Data: []float32{1}}
	_, err := Encode(g, CompressionNone)

	var oob *model.IndexOutOfRangeError
	assert.ErrorAs(t, err, &oob)
}

func TestDecode_Corruption(t *testing.T) {
	data, err := Encode(banded(50), CompressionNone)
	require.NoError(t, err)

	t.Run("truncated header", func(t *testing.T) {
		_, err := Decode(data[:10])
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("truncated payload", func(t *testing.T) {
		_, err := Decode(data[:len(data)-4])
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[0] = 'X'
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("version", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		binary.LittleEndian.PutUint16(bad[4:], 99)
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("flipped payload bit", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		bad[len(bad)-1] ^= 0x01
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("inconsistent sizes", func(t *testing.T) {
		bad := append([]byte(nil), data...)
		binary.LittleEndian.PutUint64(bad[16:], 7)
		_, err := Decode(bad)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}

func TestDecode_UnknownCompression(t *testing.T) {
	data, err := Encode(banded(2000), CompressionLZ4)
	require.NoError(t, err)
	require.Equal(t, uint8(0), data[7])

	bad := append([]byte(nil), data...)
	bad[6] = 9
	_, err = Decode(bad)
	assert.ErrorIs(t, err, ErrUnsupportedCompression)
}

func TestParseCompression(t *testing.T) {
	for s, want := range map[string]Compression{
		"":     CompressionNone,
		"none": CompressionNone,
		"lz4":  CompressionLZ4,
		"zstd": CompressionZSTD,
	} {
		got, err := ParseCompression(s)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnsupportedCompression)
	assert.Equal(t, "unknown(7)", Compression(7).String())
}
