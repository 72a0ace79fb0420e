package store

import (
	"fmt"

	"github.com/ssargent/recordstore/pkg/checksum"
	"github.com/ssargent/recordstore/pkg/filestore"
	"github.com/ssargent/recordstore/pkg/status"
)

// HeaderInfo describes a record file without decoding its payload.
type HeaderInfo struct {
	Path             string `json:"path"`
	FileSize         int64  `json:"file_size"`
	Magic            int32  `json:"magic"`
	StoredChecksum   uint32 `json:"stored_checksum"`
	ComputedChecksum uint32 `json:"computed_checksum"`
	PayloadSize      int64  `json:"payload_size"`
	Valid            bool   `json:"valid"`
	Problem          string `json:"problem,omitempty"`
}

// Inspect reads the file at path and checks its header and checksum.
// I/O failures are returned as errors; a damaged record is reported through
// Valid and Problem. Files larger than maxFileSize are not read.
func Inspect(storage filestore.Storage, path string, maxFileSize int64) (*HeaderInfo, error) {
	size, err := storage.GetFileSize(path)
	if err != nil {
		return nil, err
	}

	info := &HeaderInfo{Path: path, FileSize: size}
	if size < HeaderSize {
		info.Problem = fmt.Sprintf("truncated header: file is %d bytes", size)
		return info, nil
	}
	info.PayloadSize = size - HeaderSize
	if maxFileSize > 0 && size > maxFileSize {
		info.Problem = fmt.Sprintf("file size %d exceeds maximum %d", size, maxFileSize)
		return info, nil
	}

	in, err := storage.OpenForRead(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	buf := make([]byte, size)
	data, err := in.Read(int(size), buf)
	if err != nil {
		if !status.Is(err, status.OutOfRange) {
			return nil, err
		}
		// the file shrank after the size check
		info.Problem = fmt.Sprintf("truncated: read %d of %d bytes", len(data), size)
		return info, nil
	}

	header, err := DecodeHeader(data)
	if err != nil {
		return nil, err
	}
	info.Magic = header.Magic
	info.StoredChecksum = header.Checksum
	info.ComputedChecksum = checksum.Sum(data[HeaderSize:])

	switch {
	case header.Magic != HeaderMagic:
		info.Problem = fmt.Sprintf("bad magic %#x", uint32(header.Magic))
	case info.StoredChecksum != info.ComputedChecksum:
		info.Problem = "checksum mismatch"
	default:
		info.Valid = true
	}
	return info, nil
}
