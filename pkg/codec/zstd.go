package codec

import (
	"github.com/cockroachdb/errors"
	"github.com/klauspost/compress/zstd"
)

// DefaultMaxDecodedSize bounds the memory a single Zstd decode may use.
const DefaultMaxDecodedSize = 64 << 20

// Zstd compresses the output of another codec. It is safe for concurrent
// use; call Close to release the decoder.
type Zstd[T any] struct {
	inner Codec[T]
	enc   *zstd.Encoder
	dec   *zstd.Decoder
}

// NewZstd wraps inner with zstd compression.
func NewZstd[T any](inner Codec[T]) (*Zstd[T], error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, errors.Wrap(err, "create zstd encoder")
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(DefaultMaxDecodedSize))
	if err != nil {
		_ = enc.Close()
		return nil, errors.Wrap(err, "create zstd decoder")
	}
	return &Zstd[T]{inner: inner, enc: enc, dec: dec}, nil
}

func (z *Zstd[T]) Marshal(v T) ([]byte, error) {
	raw, err := z.inner.Marshal(v)
	if err != nil {
		return nil, err
	}
	return z.enc.EncodeAll(raw, nil), nil
}

func (z *Zstd[T]) Unmarshal(data []byte) (T, error) {
	raw, err := z.dec.DecodeAll(data, nil)
	if err != nil {
		var zero T
		return zero, errors.Wrap(err, "zstd decode")
	}
	return z.inner.Unmarshal(raw)
}

// Close releases encoder and decoder resources.
func (z *Zstd[T]) Close() error {
	z.dec.Close()
	return z.enc.Close()
}
