package filestore

import (
	"bufio"
	"io"
	"runtime"

	"github.com/ssargent/recordstore/pkg/status"
)

func ioError(name string, err error) error {
	return status.FromError(err, name)
}

// inputStream owns rc until Close.
type inputStream struct {
	name   string
	rc     io.ReadCloser
	r      *bufio.Reader
	closed bool
}

// NewInputStream wraps rc with the InputStream contract. The stream takes
// ownership of rc; if the stream is dropped without Close, rc is closed
// when the stream is garbage collected.
func NewInputStream(name string, rc io.ReadCloser) InputStream {
	s := &inputStream{
		name: name,
		rc:   rc,
		r:    bufio.NewReader(rc),
	}
	runtime.SetFinalizer(s, (*inputStream).finalize)
	return s
}

func (s *inputStream) Read(n int, scratch []byte) ([]byte, error) {
	if s.closed {
		return scratch[:0], status.Newf(status.FailedPrecondition, "read from closed stream: %s", s.name)
	}
	if n < 0 || n > len(scratch) {
		return scratch[:0], status.Newf(status.InvalidArgument,
			"cannot read %d bytes into a %d byte buffer: %s", n, len(scratch), s.name)
	}

	read := 0
	for read < n {
		m, err := s.r.Read(scratch[read:n])
		read += m
		switch {
		case err == nil:
		case err == io.EOF:
			if read < n {
				return scratch[:read], status.Wrapf(status.OutOfRange, io.ErrUnexpectedEOF,
					"%s: read %d of %d bytes", s.name, read, n)
			}
		case status.Retryable(err):
			// interrupted before any progress, try again
		default:
			return scratch[:read], ioError(s.name, err)
		}
	}
	return scratch[:n], nil
}

func (s *inputStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	runtime.SetFinalizer(s, nil)
	return ioError(s.name, s.rc.Close())
}

func (s *inputStream) finalize() {
	_ = s.Close()
}

// outputStream owns wc until Close.
type outputStream struct {
	name     string
	wc       io.WriteCloser
	w        *bufio.Writer
	closed   bool
	closeErr error
}

// NewOutputStream wraps wc with the OutputStream contract. If wc has a
// Sync() error method it is called after the final flush. The stream takes
// ownership of wc; a stream dropped without Close is flushed and closed when
// garbage collected and any error from that is lost.
func NewOutputStream(name string, wc io.WriteCloser) OutputStream {
	return newOutputStream(name, wc, defaultBufferSize)
}

func newOutputStream(name string, wc io.WriteCloser, bufferSize int) *outputStream {
	s := &outputStream{
		name: name,
		wc:   wc,
		w:    bufio.NewWriterSize(wc, bufferSize),
	}
	runtime.SetFinalizer(s, (*outputStream).finalize)
	return s
}

func (s *outputStream) Append(data []byte) error {
	if s.closed {
		return status.Newf(status.FailedPrecondition, "append to closed stream: %s", s.name)
	}
	n, err := s.w.Write(data)
	if err != nil {
		return ioError(s.name, err)
	}
	if n != len(data) {
		return ioError(s.name, io.ErrShortWrite)
	}
	return nil
}

func (s *outputStream) Close() error {
	if s.closed {
		return s.closeErr
	}
	s.closed = true
	runtime.SetFinalizer(s, nil)
	s.closeErr = s.close()
	return s.closeErr
}

// close releases wc even when the flush fails; the first error wins.
func (s *outputStream) close() error {
	err := s.w.Flush()
	if err == nil {
		if syncer, ok := s.wc.(interface{ Sync() error }); ok {
			err = syncer.Sync()
		}
	}
	if errClose := s.wc.Close(); err == nil {
		err = errClose
	}
	return ioError(s.name, err)
}

func (s *outputStream) finalize() {
	_ = s.Close()
}
