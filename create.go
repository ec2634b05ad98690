//go:build !ios && !android && (amd64 || arm64)

package comptr

import (
	"unsafe"

	"github.com/obinnaokechukwu/comptr/com"
)

// CreateInstance creates an object of class clsid through the host
// component runtime and returns its T interface. The calling thread must
// have initialized the runtime with com.CoInitializeEx. Returns an error
// wrapping com.ErrNotSupported where no runtime exists, or a *com.Error
// carrying the HRESULT of a failed creation.
func CreateInstance[T any, PT interface {
	*T
	com.Interface
}](clsid *com.CLSID, clsctx com.CLSCTX) (*Ptr[T], error) {
	if err := com.RuntimeAvailable(); err != nil {
		return nil, err
	}

	var pt PT
	iid := pt.IID()
	return TryNewWith[T, PT](func(out **T) error {
		var raw unsafe.Pointer
		hr := com.CoCreateInstance(clsid, nil, clsctx, iid, &raw)
		if err := com.NewError(hr, "CoCreateInstance"); err != nil {
			return err
		}
		*out = (*T)(raw)
		return nil
	})
}
