package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/hupe1980/manifold/csr"
	"github.com/hupe1980/manifold/internal/conv"
)

// Version is the format version written by Encode.
const Version uint16 = 1

const headerSize = 4 + 2 + 1 + 1 + 8 + 8 + 8 + 8 + 4

var magic = [4]byte{'M', 'F', 'L', 'D'}

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

var (
	// ErrCorrupt is returned when encoded bytes are truncated or inconsistent.
	ErrCorrupt = errors.New("corrupt graph encoding")
	// ErrChecksumMismatch is returned when the payload checksum does not match.
	ErrChecksumMismatch = errors.New("graph checksum mismatch")
	// ErrUnsupportedVersion is returned for an unknown format version.
	ErrUnsupportedVersion = errors.New("unsupported graph encoding version")
	// ErrUnsupportedCompression is returned for an unknown compression id.
	ErrUnsupportedCompression = errors.New("unsupported compression")
)

// Encode serializes g with the given compression.
func Encode(g *csr.Graph, c Compression) ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	raw := encodePayload(g)
	payload, err := compress(raw, c)
	if err != nil {
		return nil, err
	}
	stored := payload == nil
	if stored {
		payload = raw
	}

	out := make([]byte, headerSize+len(payload))
	copy(out, magic[:])
	binary.LittleEndian.PutUint16(out[4:], Version)
	out[6] = byte(c)
	if stored {
		out[7] = 1
	}
	binary.LittleEndian.PutUint64(out[8:], uint64(g.Rows()))
	binary.LittleEndian.PutUint64(out[16:], uint64(g.NNZ()))
	binary.LittleEndian.PutUint64(out[24:], uint64(len(raw)))
	binary.LittleEndian.PutUint64(out[32:], uint64(len(payload)))
	binary.LittleEndian.PutUint32(out[40:], crc32.Checksum(raw, castagnoli))
	copy(out[headerSize:], payload)
	return out, nil
}

// Decode parses bytes produced by Encode into a freshly allocated graph.
func Decode(data []byte) (*csr.Graph, error) {
	if len(data) < headerSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", ErrCorrupt, len(data))
	}
	if [4]byte(data[:4]) != magic {
		return nil, fmt.Errorf("%w: bad magic %q", ErrCorrupt, data[:4])
	}
	if v := binary.LittleEndian.Uint16(data[4:]); v != Version {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	c := Compression(data[6])
	stored := data[7] == 1
	rows, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(data[8:]))
	if err != nil {
		return nil, fmt.Errorf("%w: rows: %w", ErrCorrupt, err)
	}
	nnz, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(data[16:]))
	if err != nil {
		return nil, fmt.Errorf("%w: nnz: %w", ErrCorrupt, err)
	}
	rawSize, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(data[24:]))
	if err != nil {
		return nil, fmt.Errorf("%w: raw size: %w", ErrCorrupt, err)
	}
	payloadSize, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(data[32:]))
	if err != nil {
		return nil, fmt.Errorf("%w: payload size: %w", ErrCorrupt, err)
	}
	sum := binary.LittleEndian.Uint32(data[40:])

	if rows >= rawSize/8 || nnz > rawSize/8 || payloadBytes(rows, nnz) != rawSize {
		return nil, fmt.Errorf("%w: payload of %d bytes does not fit %d rows and %d edges", ErrCorrupt, rawSize, rows, nnz)
	}
	if len(data)-headerSize != payloadSize {
		return nil, fmt.Errorf("%w: payload is %d bytes, header says %d", ErrCorrupt, len(data)-headerSize, payloadSize)
	}

	raw := data[headerSize:]
	if !stored {
		if raw, err = decompress(raw, c, rawSize); err != nil {
			return nil, err
		}
	} else if payloadSize != rawSize {
		return nil, fmt.Errorf("%w: stored payload is %d bytes, want %d", ErrCorrupt, payloadSize, rawSize)
	}

	if got := crc32.Checksum(raw, castagnoli); got != sum {
		return nil, fmt.Errorf("%w: got %08x, want %08x", ErrChecksumMismatch, got, sum)
	}

	g := decodePayload(raw, rows, nnz)
	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return g, nil
}

func payloadBytes(rows, nnz int) int {
	return (rows+1)*8 + nnz*8
}

func encodePayload(g *csr.Graph) []byte {
	rows, nnz := g.Rows(), g.NNZ()
	buf := make([]byte, payloadBytes(rows, nnz))

	off := 0
	for _, p := range g.RowPtr[:rows+1] {
		binary.LittleEndian.PutUint64(buf[off:], uint64(p))
		off += 8
	}
	for _, c := range g.ColInd[:nnz] {
		binary.LittleEndian.PutUint32(buf[off:], uint32(c))
		off += 4
	}
	for _, d := range g.Data[:nnz] {
		binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(d))
		off += 4
	}
	return buf
}

func decodePayload(raw []byte, rows, nnz int) *csr.Graph {
	g := &csr.Graph{
		RowPtr: make([]int, rows+1),
		ColInd: make([]int32, nnz),
		Data:   make([]float32, nnz),
	}

	off := 0
	for i := range g.RowPtr {
		g.RowPtr[i] = int(binary.LittleEndian.Uint64(raw[off:]))
		off += 8
	}
	for i := range g.ColInd {
		g.ColInd[i] = int32(binary.LittleEndian.Uint32(raw[off:]))
		off += 4
	}
	for i := range g.Data {
		g.Data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[off:]))
		off += 4
	}
	return g
}
