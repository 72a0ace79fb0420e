package status

import (
	"io/fs"
	"syscall"

	"github.com/cockroachdb/errors"
)

// FromErrno maps an operating system error number to a Kind. The mapping is
// total: zero is OK and every code missing from the table is Unknown.
func FromErrno(errno syscall.Errno) Kind {
	if errno == 0 {
		return OK
	}
	if k, ok := errnoKinds[errno]; ok {
		return k
	}
	return Unknown
}

// FromError classifies an I/O error returned by the os package. context is
// usually the file name and becomes the message. A nil err returns nil and an
// already classified error is returned unchanged.
func FromError(err error, context string) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	kind := Unknown
	var errno syscall.Errno
	if errors.As(err, &errno) {
		kind = FromErrno(errno)
		if kind == OK {
			return nil
		}
	}
	if kind == Unknown {
		kind = kindFromFS(err)
	}
	return &Error{Kind: kind, Msg: context, Err: err}
}

// kindFromFS covers errors without a known errno, such as those from
// platforms whose codes are not in the table.
func kindFromFS(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return NotFound
	case errors.Is(err, fs.ErrPermission):
		return PermissionDenied
	case errors.Is(err, fs.ErrExist):
		return AlreadyExists
	case errors.Is(err, fs.ErrInvalid):
		return InvalidArgument
	case errors.Is(err, fs.ErrClosed):
		return FailedPrecondition
	}
	return Unknown
}

// Retryable reports whether err is a transient interruption that a read
// loop should retry without surfacing it.
func Retryable(err error) bool {
	return errors.Is(err, syscall.EINTR) || errors.Is(err, syscall.EAGAIN)
}
