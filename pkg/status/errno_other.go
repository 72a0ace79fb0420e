//go:build !linux

package status

import "syscall"

// Portable subset of the linux table; platforms differ too much in which
// codes exist for the full list.
var errnoKinds = map[syscall.Errno]Kind{
	syscall.EINVAL:       InvalidArgument,
	syscall.ENAMETOOLONG: InvalidArgument,
	syscall.ENOENT:       NotFound,
	syscall.EEXIST:       AlreadyExists,
	syscall.EPERM:        PermissionDenied,
	syscall.EACCES:       PermissionDenied,
	syscall.EROFS:        PermissionDenied,
	syscall.ENOTEMPTY:    FailedPrecondition,
	syscall.EISDIR:       FailedPrecondition,
	syscall.ENOTDIR:      FailedPrecondition,
	syscall.EBADF:        FailedPrecondition,
	syscall.ENOSPC:       ResourceExhausted,
	syscall.EMFILE:       ResourceExhausted,
	syscall.ENFILE:       ResourceExhausted,
	syscall.ENOMEM:       ResourceExhausted,
	syscall.EFBIG:        OutOfRange,
	syscall.ERANGE:       OutOfRange,
	syscall.ENOSYS:       Unimplemented,
	syscall.EXDEV:        Unimplemented,
	syscall.EAGAIN:       Unavailable,
	syscall.EINTR:        Unavailable,
	syscall.ETIMEDOUT:    DeadlineExceeded,
}
