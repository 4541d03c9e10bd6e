package common

import "errors"

var (
	// ErrDecode reports a malformed inline app-file encoding: a missing data
	// prefix, a missing base64 marker, or a payload that does not decode.
	ErrDecode = errors.New("malformed inline app file encoding")

	// ErrAssetPersist reports a failed app-file write. The metadata insert and
	// the object upload are not transactional; an upload failure can leave an
	// orphaned metadata row behind.
	ErrAssetPersist = errors.New("app file persist failed")

	// ErrFileTooLarge reports an upload rejected at the HTTP boundary before
	// any store call is made.
	ErrFileTooLarge = errors.New("app file exceeds size limit")
)
