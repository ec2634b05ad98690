//go:build !ios && !android && (amd64 || arm64)

package comptr

import (
	"runtime"
	"sync"
	"unsafe"

	"github.com/obinnaokechukwu/comptr/com"
	"go.uber.org/zap"
)

// Shared is an owning handle that may be used from several goroutines at
// once. It exists only for interface kinds declared com.ThreadSafe.
//
// A Shared that becomes unreachable without Release is released by a
// finalizer, on the finalizer goroutine, and a warning is logged. Ptr has
// no such backstop because an arbitrary object may not be called from
// another thread.
type Shared[T any] struct {
	_   noCopy
	mu  sync.Mutex
	ptr *T
}

// Share moves p's reference into a Shared handle. p is consumed; the
// reference count does not change.
func Share[T any, PT interface {
	*T
	com.Interface
	com.ThreadSafe
}](p *Ptr[T]) *Shared[T] {
	ptr := p.Get()
	p.ptr = nil
	trace("share", ptr)
	return newShared(ptr)
}

func newShared[T any](ptr *T) *Shared[T] {
	s := &Shared[T]{ptr: ptr}
	runtime.SetFinalizer(s, (*Shared[T]).finalize)
	return s
}

// Clone calls AddRef and returns a second Shared handle to the same pointer.
func (s *Shared[T]) Clone() *Shared[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ptr == nil {
		panic(ErrReleased)
	}
	com.AsUnknown(unsafe.Pointer(s.ptr)).AddRef()
	live.Add(1)
	trace("clone", s.ptr)
	return newShared(s.ptr)
}

// Get returns the interface pointer. It stays valid until s is released;
// synchronizing Release with other users is the caller's job.
func (s *Shared[T]) Get() *T {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ptr == nil {
		panic(ErrReleased)
	}
	return s.ptr
}

// Unknown returns the IUnknown prefix of the interface.
func (s *Shared[T]) Unknown() *com.IUnknown {
	return com.AsUnknown(unsafe.Pointer(s.Get()))
}

// Release gives the reference back exactly once. Later calls, from any
// goroutine, are no-ops.
func (s *Shared[T]) Release() {
	s.mu.Lock()
	ptr := s.ptr
	s.ptr = nil
	s.mu.Unlock()

	if ptr == nil {
		return
	}
	runtime.SetFinalizer(s, nil)
	live.Add(-1)
	trace("release", ptr)
	com.AsUnknown(unsafe.Pointer(ptr)).Release()
}

func (s *Shared[T]) finalize() {
	if s.ptr == nil {
		return
	}
	Logger().Warn("comptr: releasing leaked shared handle",
		zap.String("type", typeName[T]()),
		zap.Uintptr("addr", uintptr(unsafe.Pointer(s.ptr))))
	ptr := s.ptr
	s.ptr = nil
	live.Add(-1)
	com.AsUnknown(unsafe.Pointer(ptr)).Release()
}

// Addr returns the interface pointer's address, or 0 once released.
func (s *Shared[T]) Addr() uintptr {
	s.mu.Lock()
	defer s.mu.Unlock()
	return uintptr(unsafe.Pointer(s.ptr))
}

// String renders the handle for diagnostics.
func (s *Shared[T]) String() string {
	return formatHandle("Shared", typeName[T](), s.Addr())
}
