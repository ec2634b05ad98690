//go:build !ios && !android && (amd64 || arm64)

// Package com describes the binary contract of reference-counted component
// interfaces: identifiers, status codes, and the IUnknown vtable shared by
// every interface.
//
// Interface kinds are declared as Go struct types whose only field is the
// vtable pointer, with the vtable struct starting with IUnknownVtbl:
//
//	type IWidgetVtbl struct {
//		com.IUnknownVtbl
//		Spin uintptr
//	}
//
//	type IWidget struct {
//		Vtbl *IWidgetVtbl
//	}
//
//	func (*IWidget) IID() *com.GUID { return &IID_IWidget }
//
// Calls go through purego, so no cgo toolchain is required.
package com

// Interface is satisfied by the pointer type of every interface kind. IID
// must not depend on the receiver: it is called on nil pointers.
type Interface interface {
	IID() *GUID
}

// Extends is satisfied by *T when interface kind T statically derives from
// U, meaning U's vtable is a prefix of T's. Base reinterprets the receiver.
//
//	func (w *IWidget) Base() *IUnknown { return (*IUnknown)(unsafe.Pointer(w)) }
type Extends[U any] interface {
	Base() *U
}

// ThreadSafe is implemented by interface kinds whose objects are known to
// tolerate calls from any goroutine (free-threaded or agile objects).
// Nothing in this module infers it; the integrator declares it per type.
type ThreadSafe interface {
	ThreadSafe()
}

// Unknowner is anything that can expose its object's IUnknown.
type Unknowner interface {
	Unknown() *IUnknown
}
