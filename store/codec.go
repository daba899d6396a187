package store

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/klauspost/compress/zstd"
	"gonum.org/v1/gonum/mat"

	"github.com/ChadGueli/bigboost/pkg/errors"
)

// codecName is recorded in array metadata so a future format change can be
// detected on read.
const codecName = "zstd"

// Encoder/decoder pools; zstd contexts are expensive to build and safe to
// reuse between blocks.
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// encodeBlock serializes a block as little-endian float64 values and
// compresses it. The transform is lossless: NaN and Inf payloads round-trip
// bit-exact.
func encodeBlock(m *mat.Dense) []byte {
	r, c := m.Dims()
	raw := make([]byte, r*c*8)
	idx := 0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			binary.LittleEndian.PutUint64(raw[idx:], math.Float64bits(m.At(i, j)))
			idx += 8
		}
	}

	enc := getEncoder()
	defer putEncoder(enc)
	return enc.EncodeAll(raw, nil)
}

// decodeBlock decompresses a chunk and checks that it holds exactly
// rows*cols values.
func decodeBlock(data []byte, rows, cols int) ([]float64, error) {
	dec := getDecoder()
	defer putDecoder(dec)

	raw, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, errors.Wrap(err, "decompressing chunk")
	}
	if len(raw) != rows*cols*8 {
		return nil, errors.Newf("chunk holds %d bytes, want %d", len(raw), rows*cols*8)
	}

	vals := make([]float64, rows*cols)
	for i := range vals {
		vals[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
	}
	return vals, nil
}
