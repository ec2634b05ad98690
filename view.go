//go:build !ios && !android && (amd64 || arm64)

package comptr

import (
	"unsafe"

	"github.com/obinnaokechukwu/comptr/com"
)

// View is a borrowed, typed view of an interface pointer. It owns no
// reference: it is valid only while the handle it came from is alive, and
// it is never released.
type View[T any] struct {
	ptr *T
}

// Get returns the interface pointer.
func (v View[T]) Get() *T {
	if v.ptr == nil {
		panic(ErrNullPointer)
	}
	return v.ptr
}

// Unknown returns the IUnknown prefix of the interface.
func (v View[T]) Unknown() *com.IUnknown {
	return com.AsUnknown(unsafe.Pointer(v.Get()))
}

// Addr returns the interface pointer's address.
func (v View[T]) Addr() uintptr {
	return uintptr(unsafe.Pointer(v.ptr))
}

// String renders the view for diagnostics.
func (v View[T]) String() string {
	return formatHandle("View", typeName[T](), v.Addr())
}

// Upcast views p as its base interface kind U. The relation is checked at
// compile time: *T must declare Base() *U. The reference count is not
// touched; to obtain an owning handle of kind U, pass the view to Acquire
// or call Query.
func Upcast[U any, T any, PT interface {
	*T
	com.Extends[U]
}](p *Ptr[T]) View[U] {
	base := PT(p.Get()).Base()
	trace("upcast", base)
	return View[U]{ptr: base}
}

// UpcastView is Upcast for a view, so hierarchies deeper than one level
// can be walked: UpcastView[IBase](Upcast[IMiddle](p)).
func UpcastView[U any, T any, PT interface {
	*T
	com.Extends[U]
}](v View[T]) View[U] {
	return View[U]{ptr: PT(v.Get()).Base()}
}

// Acquire calls AddRef and returns an owning handle for the viewed
// pointer. It is the acquire-then-own counterpart of FromRaw.
func Acquire[T any, PT interface {
	*T
	com.Interface
}](v View[T]) *Ptr[T] {
	ptr := v.Get()
	com.AsUnknown(unsafe.Pointer(ptr)).AddRef()
	return wrap(ptr, "acquire")
}
