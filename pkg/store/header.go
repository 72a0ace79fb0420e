package store

import (
	"encoding/binary"

	"github.com/ssargent/recordstore/pkg/status"
)

const (
	// HeaderMagic identifies a record file. It reads "otor" on disk.
	HeaderMagic int32 = 0x726f746f

	// HeaderSize is the encoded length of Header.
	HeaderSize = 8

	// DefaultMaxPayloadSize is the largest payload a store accepts unless
	// configured otherwise.
	DefaultMaxPayloadSize = 1 << 20
)

// Header precedes the payload in every record file.
type Header struct {
	Magic    int32
	Checksum uint32 // checksum.Sum of the payload
}

// Encode returns the little-endian encoding of h.
func (h Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(h.Magic))
	binary.LittleEndian.PutUint32(buf[4:8], h.Checksum)
	return buf
}

// DecodeHeader parses the first HeaderSize bytes of data. The magic is not
// validated here.
func DecodeHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, status.Newf(status.Internal, "truncated header: %d of %d bytes", len(data), HeaderSize)
	}
	return Header{
		Magic:    int32(binary.LittleEndian.Uint32(data[0:4])),
		Checksum: binary.LittleEndian.Uint32(data[4:8]),
	}, nil
}
