//go:build linux

package status

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// Codes not listed here (EIO, ELOOP, EBADMSG, EPROTO, ...) have no agreed
// mapping and fall into Unknown.
var errnoKinds = map[syscall.Errno]Kind{
	unix.EINVAL:       InvalidArgument,
	unix.ENAMETOOLONG: InvalidArgument,
	unix.E2BIG:        InvalidArgument,
	unix.EDESTADDRREQ: InvalidArgument,
	unix.EDOM:         InvalidArgument,
	unix.EFAULT:       InvalidArgument,
	unix.EILSEQ:       InvalidArgument,
	unix.ENOPROTOOPT:  InvalidArgument,
	unix.ENOSTR:       InvalidArgument,
	unix.ENOTSOCK:     InvalidArgument,
	unix.ENOTTY:       InvalidArgument,
	unix.EPROTOTYPE:   InvalidArgument,
	unix.ESPIPE:       InvalidArgument,

	unix.ETIMEDOUT: DeadlineExceeded,
	unix.ETIME:     DeadlineExceeded,

	unix.ENODEV: NotFound,
	unix.ENOENT: NotFound,
	unix.ENXIO:  NotFound,
	unix.ESRCH:  NotFound,

	unix.EEXIST:        AlreadyExists,
	unix.EADDRNOTAVAIL: AlreadyExists,
	unix.EALREADY:      AlreadyExists,

	unix.EPERM:  PermissionDenied,
	unix.EACCES: PermissionDenied,
	unix.EROFS:  PermissionDenied,

	unix.ENOTEMPTY:  FailedPrecondition,
	unix.EISDIR:     FailedPrecondition,
	unix.ENOTDIR:    FailedPrecondition,
	unix.EADDRINUSE: FailedPrecondition,
	unix.EBADF:      FailedPrecondition,
	unix.EBUSY:      FailedPrecondition,
	unix.ECHILD:     FailedPrecondition,
	unix.EISCONN:    FailedPrecondition,
	unix.ENOTBLK:    FailedPrecondition,
	unix.ENOTCONN:   FailedPrecondition,
	unix.EPIPE:      FailedPrecondition,
	unix.ESHUTDOWN:  FailedPrecondition,
	unix.ETXTBSY:    FailedPrecondition,

	unix.ENOSPC:  ResourceExhausted,
	unix.EDQUOT:  ResourceExhausted,
	unix.EMFILE:  ResourceExhausted,
	unix.EMLINK:  ResourceExhausted,
	unix.ENFILE:  ResourceExhausted,
	unix.ENOBUFS: ResourceExhausted,
	unix.ENODATA: ResourceExhausted,
	unix.ENOMEM:  ResourceExhausted,
	unix.ENOSR:   ResourceExhausted,
	unix.EUSERS:  ResourceExhausted,

	unix.EFBIG:     OutOfRange,
	unix.EOVERFLOW: OutOfRange,
	unix.ERANGE:    OutOfRange,

	unix.ENOSYS:          Unimplemented,
	unix.ENOTSUP:         Unimplemented,
	unix.EAFNOSUPPORT:    Unimplemented,
	unix.EPFNOSUPPORT:    Unimplemented,
	unix.EPROTONOSUPPORT: Unimplemented,
	unix.ESOCKTNOSUPPORT: Unimplemented,
	unix.EXDEV:           Unimplemented,

	unix.EAGAIN:       Unavailable,
	unix.ECONNREFUSED: Unavailable,
	unix.ECONNABORTED: Unavailable,
	unix.ECONNRESET:   Unavailable,
	unix.EINTR:        Unavailable,
	unix.EHOSTDOWN:    Unavailable,
	unix.EHOSTUNREACH: Unavailable,
	unix.ENETDOWN:     Unavailable,
	unix.ENETRESET:    Unavailable,
	unix.ENETUNREACH:  Unavailable,
	unix.ENOLCK:       Unavailable,
	unix.ENOLINK:      Unavailable,
	unix.ENONET:       Unavailable,

	unix.EDEADLK: Aborted,
	unix.ESTALE:  Aborted,

	unix.ECANCELED: Cancelled,
}
