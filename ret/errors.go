package ret

import (
	"github.com/ava12/nabu"
)

// Error codes used by ret package:
const (
	// "expecting %s value, got %s"
	ErrTypeMismatch = nabu.RetrievalErrors + iota

	// "expecting box tag %q, got %q"
	ErrBoxTag
)

var (
	// TypeMismatch matches any ErrTypeMismatch error with errors.Is.
	TypeMismatch = nabu.Sentinel(ErrTypeMismatch, "type mismatch")

	// BoxTagMismatch matches any ErrBoxTag error with errors.Is.
	BoxTagMismatch = nabu.Sentinel(ErrBoxTag, "box tag mismatch")
)

func mismatchError(expected, got Kind) *nabu.Error {
	return nabu.FormatError(ErrTypeMismatch, "expecting %s value, got %s", expected, got)
}

func boxTagError(expected, got string) *nabu.Error {
	return nabu.FormatError(ErrBoxTag, "expecting box tag %q, got %q", expected, got)
}
