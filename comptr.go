//go:build !ios && !android && (amd64 || arm64)

// Package comptr provides owning handles for reference-counted component
// interfaces (COM-style ABI) without cgo.
//
// A *Ptr[T] owns exactly one reference to an interface pointer of kind T.
// Constructors take over a reference the caller already holds; Clone adds
// one; Release gives it back exactly once. Query performs dynamic interface
// discovery and Upcast produces borrowed views along the static interface
// hierarchy:
//
//	p, err := comptr.NewWith(createWidget)
//	if err != nil {
//		return err
//	}
//	defer p.Release()
//
//	if s, ok := comptr.Query[IScalable](p); ok {
//		defer s.Release()
//		s.Get().Scale(2)
//	}
//
// Handles are confined to one goroutine. See Shared for the opt-in
// goroutine-safe form.
package comptr

import (
	"fmt"
	"reflect"
	"sync/atomic"
	"unsafe"

	"github.com/obinnaokechukwu/comptr/com"
)

// noCopy lets go vet's copylocks check flag handles copied by value.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// live counts handles that still own a reference.
var live atomic.Int64

// Live returns the number of handles, Ptr and Shared, that currently own a
// reference. Useful for leak checks in tests.
func Live() int64 {
	return live.Load()
}

// Ptr owns one reference to an interface instance of kind T.
//
// Always use *Ptr[T]; duplicate with Clone, never by copying the struct.
// A Ptr is not safe for concurrent use.
type Ptr[T any] struct {
	_   noCopy
	ptr *T
}

// FromRaw takes ownership of the reference held by p. It does not call
// AddRef. A nil p returns ErrNullPointer and has no side effects.
func FromRaw[T any, PT interface {
	*T
	com.Interface
}](p *T) (*Ptr[T], error) {
	if p == nil {
		return nil, ErrNullPointer
	}
	return wrap(p, "wrap"), nil
}

// FromRawUnchecked is FromRaw without the nil check, for pointers the
// caller has just verified (after a successful creation call, say).
// Passing nil breaks the handle's invariant: the result behaves as
// already released and any vtable call through it panics.
func FromRawUnchecked[T any, PT interface {
	*T
	com.Interface
}](p *T) *Ptr[T] {
	return wrap(p, "wrap")
}

// NewWith calls init with a nil slot that init must fill with an owned
// interface pointer. If the slot is left nil, NewWith returns
// ErrNullPointer.
func NewWith[T any, PT interface {
	*T
	com.Interface
}](init func(out **T)) (*Ptr[T], error) {
	var p *T
	init(&p)
	return FromRaw[T, PT](p)
}

// TryNewWith is NewWith for initializers that can fail. A non-nil error
// from init is returned unchanged and whatever init left in the slot is
// ignored; it is never released.
func TryNewWith[T any, PT interface {
	*T
	com.Interface
}](init func(out **T) error) (*Ptr[T], error) {
	var p *T
	if err := init(&p); err != nil {
		return nil, err
	}
	return FromRaw[T, PT](p)
}

func wrap[T any](p *T, event string) *Ptr[T] {
	h := &Ptr[T]{ptr: p}
	if p != nil {
		live.Add(1)
	}
	trace(event, p)
	return h
}

// Clone calls AddRef and returns a second, independently released handle
// to the same pointer.
func (p *Ptr[T]) Clone() *Ptr[T] {
	ptr := p.Get()
	com.AsUnknown(unsafe.Pointer(ptr)).AddRef()
	return wrap(ptr, "clone")
}

// Get returns the interface pointer for calling its methods. The pointer
// is borrowed: it stays valid only while p is alive. Panics with
// ErrReleased after Release or IntoRaw.
func (p *Ptr[T]) Get() *T {
	if p == nil || p.ptr == nil {
		panic(ErrReleased)
	}
	return p.ptr
}

// Unknown returns the IUnknown prefix of the interface, borrowed from p.
func (p *Ptr[T]) Unknown() *com.IUnknown {
	return com.AsUnknown(unsafe.Pointer(p.Get()))
}

// Borrow returns a non-owning view of p.
func (p *Ptr[T]) Borrow() View[T] {
	return View[T]{ptr: p.Get()}
}

// IntoRaw consumes p and returns its pointer without calling Release.
// The caller now owns the reference and must release it through the
// interface itself, or hand it back with FromRaw.
func (p *Ptr[T]) IntoRaw() *T {
	ptr := p.take()
	trace("into_raw", ptr)
	return ptr
}

// take clears p and hands its reference to the caller.
func (p *Ptr[T]) take() *T {
	ptr := p.Get()
	p.ptr = nil
	live.Add(-1)
	return ptr
}

// Release gives the handle's reference back to the object. It is a no-op
// on a nil, released or consumed handle, so it is safe to defer
// unconditionally.
func (p *Ptr[T]) Release() {
	if p == nil || p.ptr == nil {
		return
	}
	ptr := p.ptr
	p.ptr = nil
	live.Add(-1)
	trace("release", ptr)
	com.AsUnknown(unsafe.Pointer(ptr)).Release()
}

// Released reports whether p no longer owns a reference.
func (p *Ptr[T]) Released() bool {
	return p == nil || p.ptr == nil
}

// Addr returns the interface pointer's address, or 0 once released.
func (p *Ptr[T]) Addr() uintptr {
	if p == nil {
		return 0
	}
	return uintptr(unsafe.Pointer(p.ptr))
}

// Equal reports whether p and other hold the same interface pointer.
// It compares addresses, not object state; use SameObject to compare
// object identity across interface kinds.
func (p *Ptr[T]) Equal(other *Ptr[T]) bool {
	a, b := p.Addr(), other.Addr()
	return a != 0 && a == b
}

// String renders the handle for diagnostics, e.g. comptr.Ptr[com.IUnknown](0xc000012345).
func (p *Ptr[T]) String() string {
	return formatHandle("Ptr", typeName[T](), p.Addr())
}

func formatHandle(kind, typ string, addr uintptr) string {
	if addr == 0 {
		return fmt.Sprintf("comptr.%s[%s](released)", kind, typ)
	}
	return fmt.Sprintf("comptr.%s[%s](%#x)", kind, typ, addr)
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
