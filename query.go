//go:build !ios && !android && (amd64 || arm64)

package comptr

import (
	"unsafe"

	"github.com/obinnaokechukwu/comptr/com"
	"go.uber.org/zap"
)

// Query asks src's object for interface kind U. src may be a *Ptr, a View
// or a *Shared of any kind.
//
// When the object supports U it has already added the reference the
// returned handle owns. When it does not, Query returns (nil, false) and
// nothing changes; a missing interface is not an error. Presence is
// decided by the returned pointer, not the HRESULT.
func Query[U any, PU interface {
	*U
	com.Interface
}](src com.Unknowner) (*Ptr[U], bool) {
	var pu PU
	iid := pu.IID()

	var out unsafe.Pointer
	hr := src.Unknown().QueryInterface(iid, &out)
	if out == nil {
		trace[U]("query_miss", nil, zap.Stringer("iid", iid), zap.Stringer("hresult", hr))
		return nil, false
	}
	return wrap((*U)(out), "query"), true
}

// SameObject reports whether a and b are interfaces of the same object,
// comparing their IUnknown pointers as the identity rule requires. The
// temporary references it takes are released before it returns.
func SameObject(a, b com.Unknowner) bool {
	ua, ok := Query[com.IUnknown](a)
	if !ok {
		return false
	}
	defer ua.Release()

	ub, ok := Query[com.IUnknown](b)
	if !ok {
		return false
	}
	defer ub.Release()

	return ua.Equal(ub)
}
