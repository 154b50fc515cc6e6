package storage_test

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"

	"mdnotes/internal/storage"
)

func TestErrorName(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&fs.PathError{Op: "open", Path: "/x", Err: syscall.EACCES}, "EACCES"},
		{fmt.Errorf("write note: %w", &fs.PathError{Op: "open", Path: "/x", Err: syscall.ENOSPC}), "ENOSPC"},
		{fmt.Errorf("wrapped: %w", syscall.EROFS), "EROFS"},
		{fs.ErrNotExist, "ENOENT"},
		{fs.ErrExist, "EEXIST"},
		{storage.ErrNotFound, "ENOENT"},
		{fmt.Errorf("%w: %q", storage.ErrInvalidID, ".."), "EINVAL"},
		{errors.New("something else"), "Error"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, storage.ErrorName(tc.err), "%v", tc.err)
	}
}
