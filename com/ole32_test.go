//go:build !ios && !android && (amd64 || arm64)

package com

import (
	"errors"
	"os"
	"runtime"
	"testing"
	"unsafe"

	"github.com/obinnaokechukwu/comptr/internal/bindings"
)

func TestCLSCTX(t *testing.T) {
	if CLSCTX_SERVER != 0x15 {
		t.Errorf("CLSCTX_SERVER = %#x, want 0x15", CLSCTX_SERVER)
	}
	if CLSCTX_ALL != 0x17 {
		t.Errorf("CLSCTX_ALL = %#x, want 0x17", CLSCTX_ALL)
	}
}

func TestOle32Unavailable(t *testing.T) {
	if runtime.GOOS == "windows" || os.Getenv(bindings.RuntimeEnv) != "" {
		t.Skip("host provides a component runtime")
	}

	if err := RuntimeAvailable(); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("RuntimeAvailable: expected ErrNotSupported, got %v", err)
	}
	if err := CoInitializeEx(COINIT_MULTITHREADED); !errors.Is(err, ErrNotSupported) {
		t.Fatalf("CoInitializeEx: expected ErrNotSupported, got %v", err)
	}
	CoUninitialize()

	var sentinel byte
	out := unsafe.Pointer(&sentinel)
	if hr := CoCreateInstance(&IID_IUnknown, nil, CLSCTX_INPROC_SERVER, &IID_IUnknown, &out); hr != E_NOTIMPL {
		t.Fatalf("CoCreateInstance = %v, want E_NOTIMPL", hr)
	}
	if out != nil {
		t.Fatal("CoCreateInstance must clear the slot on failure")
	}
}

// Integration test - only runs where ole32 is available.
func TestCoInitializeEx(t *testing.T) {
	if runtime.GOOS != "windows" {
		t.Skip("requires ole32")
	}

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := CoInitializeEx(COINIT_APARTMENTTHREADED); err != nil {
		t.Fatalf("CoInitializeEx: %v", err)
	}
	defer CoUninitialize()

	// A second call on the same thread returns S_FALSE, which is success.
	if err := CoInitializeEx(COINIT_APARTMENTTHREADED); err != nil {
		t.Fatalf("second CoInitializeEx: %v", err)
	}
	CoUninitialize()

	// Switching apartment model on an initialized thread fails.
	err := CoInitializeEx(COINIT_MULTITHREADED)
	if Code(err) != RPC_E_CHANGED_MODE {
		t.Fatalf("expected RPC_E_CHANGED_MODE, got %v", err)
	}
}
