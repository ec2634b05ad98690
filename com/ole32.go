//go:build !ios && !android && (amd64 || arm64)

package com

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/comptr/internal/bindings"
)

// ErrNotSupported is returned when the host has no component runtime.
var ErrNotSupported = errors.New("com: component runtime not available")

// COINIT selects the apartment model for CoInitializeEx.
type COINIT uint32

const (
	COINIT_MULTITHREADED     COINIT = 0x0
	COINIT_APARTMENTTHREADED COINIT = 0x2
	COINIT_DISABLE_OLE1DDE   COINIT = 0x4
)

// CLSCTX selects where a class object may be activated.
type CLSCTX uint32

const (
	CLSCTX_INPROC_SERVER  CLSCTX = 0x1
	CLSCTX_INPROC_HANDLER CLSCTX = 0x2
	CLSCTX_LOCAL_SERVER   CLSCTX = 0x4
	CLSCTX_REMOTE_SERVER  CLSCTX = 0x10
	CLSCTX_SERVER                = CLSCTX_INPROC_SERVER | CLSCTX_LOCAL_SERVER | CLSCTX_REMOTE_SERVER
	CLSCTX_ALL                   = CLSCTX_INPROC_HANDLER | CLSCTX_SERVER
)

var (
	coInitializeEx   func(reserved uintptr, coinit uint32) int32
	coUninitialize   func()
	coCreateInstance func(clsid *GUID, outer uintptr, clsctx uint32, iid *GUID, out *unsafe.Pointer) int32

	ole32Once sync.Once
	ole32Err  error
)

func registerOle32() error {
	ole32Once.Do(func() {
		if err := bindings.Load(); err != nil {
			ole32Err = fmt.Errorf("%w: %v", ErrNotSupported, err)
			return
		}
		for _, b := range []struct {
			fptr any
			name string
		}{
			{&coInitializeEx, "CoInitializeEx"},
			{&coUninitialize, "CoUninitialize"},
			{&coCreateInstance, "CoCreateInstance"},
		} {
			addr, err := bindings.Proc(b.name)
			if err != nil {
				ole32Err = fmt.Errorf("%w: %v", ErrNotSupported, err)
				return
			}
			purego.RegisterFunc(b.fptr, addr)
		}
	})
	return ole32Err
}

// CoInitializeEx initializes the component runtime on the calling OS
// thread. Callers normally pin the goroutine with runtime.LockOSThread
// first, since apartments belong to threads. S_FALSE (already initialized)
// is reported as success; each successful call must be balanced by
// CoUninitialize.
func CoInitializeEx(coinit COINIT) error {
	if err := registerOle32(); err != nil {
		return err
	}
	return NewError(HRESULT(coInitializeEx(0, uint32(coinit))), "CoInitializeEx")
}

// CoUninitialize closes the component runtime on the calling OS thread.
func CoUninitialize() {
	if registerOle32() != nil {
		return
	}
	coUninitialize()
}

// CoCreateInstance creates an object of class clsid and writes its iid
// interface pointer into out. outer is nil unless aggregating.
// Returns E_NOTIMPL when the host has no component runtime.
func CoCreateInstance(clsid *CLSID, outer *IUnknown, clsctx CLSCTX, iid *IID, out *unsafe.Pointer) HRESULT {
	if registerOle32() != nil {
		*out = nil
		return E_NOTIMPL
	}
	return HRESULT(coCreateInstance(clsid, uintptr(unsafe.Pointer(outer)), uint32(clsctx), iid, out))
}

// RuntimeAvailable reports whether CoCreateInstance can be called.
func RuntimeAvailable() error {
	return registerOle32()
}
