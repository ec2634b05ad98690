//go:build !ios && !android && (amd64 || arm64)

package com

import (
	"unsafe"

	"github.com/ebitengine/purego"
)

// IUnknownVtbl is the method table prefix common to every interface.
type IUnknownVtbl struct {
	QueryInterface uintptr
	AddRef         uintptr
	Release        uintptr
}

// IUnknown is the base interface kind.
type IUnknown struct {
	Vtbl *IUnknownVtbl
}

// IID returns IID_IUnknown.
func (*IUnknown) IID() *GUID {
	return &IID_IUnknown
}

// Unknown returns u.
func (u *IUnknown) Unknown() *IUnknown {
	return u
}

// AsUnknown reinterprets an interface pointer as its IUnknown prefix.
// p must point at a live interface instance.
func AsUnknown(p unsafe.Pointer) *IUnknown {
	return (*IUnknown)(p)
}

// QueryInterface asks the object for interface iid. On success *out holds
// a new reference; on E_NOINTERFACE *out is set to nil.
func (u *IUnknown) QueryInterface(iid *GUID, out *unsafe.Pointer) HRESULT {
	r1, _, _ := purego.SyscallN(u.Vtbl.QueryInterface,
		uintptr(unsafe.Pointer(u)),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(out)))
	return HRESULT(int32(r1))
}

// AddRef increments the object's reference count and returns the new
// count. The value is informational only.
func (u *IUnknown) AddRef() uint32 {
	r1, _, _ := purego.SyscallN(u.Vtbl.AddRef, uintptr(unsafe.Pointer(u)))
	return uint32(r1)
}

// Release decrements the object's reference count and returns the new
// count. The object destroys itself when the count reaches zero; u must
// not be used afterwards.
func (u *IUnknown) Release() uint32 {
	r1, _, _ := purego.SyscallN(u.Vtbl.Release, uintptr(unsafe.Pointer(u)))
	return uint32(r1)
}
