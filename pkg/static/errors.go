package static

import "errors"

var (
	ErrNilFS        = errors.New("static: nil file system")
	ErrIndexMissing = errors.New("static: entry document not found")
	ErrNotRegular   = errors.New("static: not a regular file")
)
