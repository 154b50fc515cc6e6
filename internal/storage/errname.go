package storage

import (
	"errors"
	"io/fs"
	"syscall"
)

// ErrorName classifies err with the errno-style name the frontend expects
// in ErrorDetails.ErrorName. Unclassified errors are named "Error".
func ErrorName(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, ErrInvalidID) {
		return "EINVAL"
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		if name, ok := errnoNames[errno]; ok {
			return name
		}
	}
	switch {
	case errors.Is(err, fs.ErrPermission):
		return "EACCES"
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, ErrNotFound):
		return "ENOENT"
	case errors.Is(err, fs.ErrExist):
		return "EEXIST"
	case errors.Is(err, fs.ErrInvalid):
		return "EINVAL"
	}
	return "Error"
}

var errnoNames = map[syscall.Errno]string{
	syscall.EACCES:  "EACCES",
	syscall.EPERM:   "EPERM",
	syscall.ENOENT:  "ENOENT",
	syscall.EEXIST:  "EEXIST",
	syscall.EROFS:   "EROFS",
	syscall.ENOSPC:  "ENOSPC",
	syscall.EISDIR:  "EISDIR",
	syscall.ENOTDIR: "ENOTDIR",
	syscall.EBUSY:   "EBUSY",
	syscall.EMFILE:  "EMFILE",
	syscall.EINVAL:  "EINVAL",
}
