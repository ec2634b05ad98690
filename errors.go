//go:build !ios && !android && (amd64 || arm64)

package comptr

import (
	"errors"

	"github.com/obinnaokechukwu/comptr/com"
)

// ComError is a failed HRESULT together with the operation that produced it.
type ComError = com.Error

// Common errors
var (
	// ErrNullPointer indicates an attempt to own a nil interface pointer.
	// It plays the role of an invalid-argument failure; HResult reports it
	// as E_POINTER, the status COM itself returns for a null pointer
	// argument, rather than E_INVALIDARG.
	ErrNullPointer = errors.New("comptr: null interface pointer")

	// ErrReleased is the panic value for use of a released or consumed handle.
	ErrReleased = errors.New("comptr: handle already released")
)

// HResult returns the HRESULT carried by err: S_OK for nil, E_POINTER for
// ErrNullPointer, E_FAIL for other errors without a code.
func HResult(err error) com.HRESULT {
	if errors.Is(err, ErrNullPointer) {
		return com.E_POINTER
	}
	return com.Code(err)
}
