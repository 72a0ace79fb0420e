package status

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"syscall"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	assert.Equal(t, "not-found", NotFound.String())
	assert.Equal(t, "internal", Internal.Error())
	assert.Equal(t, "out-of-range", OutOfRange.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
}

func TestError_Format(t *testing.T) {
	err := New(Internal, "checksum of file does not match: /tmp/x")
	assert.Equal(t, "internal: checksum of file does not match: /tmp/x", err.Error())

	wrapped := Wrap(NotFound, syscall.ENOENT, "/tmp/y")
	assert.Equal(t, "not-found: /tmp/y: no such file or directory", wrapped.Error())

	assert.Nil(t, Wrap(Internal, nil, "ignored"))
	assert.Nil(t, Wrapf(Internal, nil, "ignored %d", 1))
}

func TestErrorsIsKind(t *testing.T) {
	err := Newf(InvalidArgument, "record too large. size: %d; limit: %d", 10, 5)

	assert.True(t, errors.Is(err, InvalidArgument))
	assert.False(t, errors.Is(err, Internal))

	outer := fmt.Errorf("write settings: %w", err)
	assert.True(t, errors.Is(outer, InvalidArgument))
	assert.Equal(t, InvalidArgument, KindOf(outer))
}

func TestWrapReclassifies(t *testing.T) {
	short := Wrapf(OutOfRange, io.ErrUnexpectedEOF, "settings: read %d of %d bytes", 3, 10)
	err := Wrap(Internal, fmt.Errorf("reading payload: %w", short), "settings: corrupt record")

	assert.Equal(t, Internal, KindOf(err))
	assert.True(t, errors.Is(err, Internal))
	assert.False(t, errors.Is(err, OutOfRange), "inner kind must not leak through")
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Contains(t, err.Error(), "out-of-range: settings: read 3 of 10 bytes")

	var se *Error
	require.True(t, errors.As(err, &se))
	assert.Equal(t, Internal, se.Kind)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, OK, KindOf(nil))
	assert.Equal(t, Unknown, KindOf(io.ErrUnexpectedEOF))
	assert.Equal(t, NotFound, KindOf(NotFound))
	assert.Equal(t, Internal, KindOf(errors.Wrap(New(Internal, "bad magic"), "read")))
	assert.True(t, Is(New(Aborted, "stale"), Aborted))
}

func TestFromError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.NoError(t, FromError(nil, "ctx"))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := os.Open("/definitely/not/here/file.rec")
		require.Error(t, err)

		classified := FromError(err, "file.rec")
		assert.Equal(t, NotFound, KindOf(classified))
		assert.True(t, errors.Is(classified, fs.ErrNotExist))
		assert.Contains(t, classified.Error(), "file.rec")
	})

	t.Run("bare errno", func(t *testing.T) {
		assert.Equal(t, PermissionDenied, KindOf(FromError(syscall.EACCES, "x")))
		assert.Equal(t, ResourceExhausted, KindOf(FromError(syscall.ENOSPC, "x")))
	})

	t.Run("zero errno is success", func(t *testing.T) {
		assert.NoError(t, FromError(syscall.Errno(0), "x"))
	})

	t.Run("already classified passes through", func(t *testing.T) {
		orig := New(Internal, "bad magic")
		assert.Same(t, orig, FromError(orig, "other"))
	})

	t.Run("fs sentinels without errno", func(t *testing.T) {
		assert.Equal(t, NotFound, KindOf(FromError(fs.ErrNotExist, "x")))
		assert.Equal(t, AlreadyExists, KindOf(FromError(fs.ErrExist, "x")))
		assert.Equal(t, FailedPrecondition, KindOf(FromError(os.ErrClosed, "x")))
	})

	t.Run("unclassified", func(t *testing.T) {
		assert.Equal(t, Unknown, KindOf(FromError(io.ErrShortWrite, "x")))
	})
}

func TestRetryable(t *testing.T) {
	assert.True(t, Retryable(syscall.EINTR))
	assert.True(t, Retryable(&os.PathError{Op: "read", Path: "f", Err: syscall.EAGAIN}))
	assert.False(t, Retryable(syscall.EIO))
	assert.False(t, Retryable(io.EOF))
}
