package build

import "errors"

var (
	ErrPrecondition        = errors.New("invalid build request")
	ErrMissingTitle        = errors.New("missing required title string")
	ErrLocked              = errors.New("another build is in progress")
	ErrFileSystemOperation = errors.New("file system operation failed")
)
