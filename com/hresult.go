//go:build !ios && !android && (amd64 || arm64)

package com

import (
	"errors"
	"fmt"
)

// HRESULT is the 32-bit status code returned by component methods.
// Negative values are failures.
type HRESULT int32

// Common HRESULT values
const (
	S_OK                  HRESULT = 0
	S_FALSE               HRESULT = 1
	E_NOTIMPL             HRESULT = -2147467263 // 0x80004001
	E_NOINTERFACE         HRESULT = -2147467262 // 0x80004002
	E_POINTER             HRESULT = -2147467261 // 0x80004003
	E_FAIL                HRESULT = -2147467259 // 0x80004005
	E_UNEXPECTED          HRESULT = -2147418113 // 0x8000FFFF
	E_INVALIDARG          HRESULT = -2147024809 // 0x80070057
	E_OUTOFMEMORY         HRESULT = -2147024882 // 0x8007000E
	CLASS_E_NOAGGREGATION HRESULT = -2147221232 // 0x80040110
	REGDB_E_CLASSNOTREG   HRESULT = -2147221164 // 0x80040154
	RPC_E_CHANGED_MODE    HRESULT = -2147417850 // 0x80010106
)

var hresultMessages = map[HRESULT]string{
	S_OK:                  "success",
	S_FALSE:               "success (false)",
	E_NOTIMPL:             "not implemented",
	E_NOINTERFACE:         "no such interface supported",
	E_POINTER:             "invalid pointer",
	E_FAIL:                "unspecified failure",
	E_UNEXPECTED:          "catastrophic failure",
	E_INVALIDARG:          "invalid argument",
	E_OUTOFMEMORY:         "out of memory",
	CLASS_E_NOAGGREGATION: "class does not support aggregation",
	REGDB_E_CLASSNOTREG:   "class not registered",
	RPC_E_CHANGED_MODE:    "cannot change thread mode after it is set",
}

// Succeeded reports whether hr is a success code.
func (hr HRESULT) Succeeded() bool {
	return hr >= 0
}

// Failed reports whether hr is a failure code.
func (hr HRESULT) Failed() bool {
	return hr < 0
}

// String returns the hex form of the code followed by its message when known.
func (hr HRESULT) String() string {
	if msg, ok := hresultMessages[hr]; ok {
		return fmt.Sprintf("0x%08X (%s)", uint32(hr), msg)
	}
	return fmt.Sprintf("0x%08X", uint32(hr))
}

// Error is a failed HRESULT together with the operation that produced it.
type Error struct {
	Code HRESULT // Raw status code
	Op   string  // Operation that failed
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg, ok := hresultMessages[e.Code]
	if !ok {
		msg = "unknown error"
	}
	return fmt.Sprintf("com %s: %s (hresult 0x%08X)", e.Op, msg, uint32(e.Code))
}

// NewError creates an Error from a status code.
// Returns nil if hr is a success code.
func NewError(hr HRESULT, op string) error {
	if hr.Succeeded() {
		return nil
	}
	return &Error{Code: hr, Op: op}
}

// Code returns the HRESULT carried by err, S_OK for nil, or E_FAIL if err
// is not a component error.
func Code(err error) HRESULT {
	if err == nil {
		return S_OK
	}
	var comErr *Error
	if errors.As(err, &comErr) {
		return comErr.Code
	}
	return E_FAIL
}

// IsNoInterface returns true if the error is E_NOINTERFACE.
func IsNoInterface(err error) bool {
	var comErr *Error
	if errors.As(err, &comErr) {
		return comErr.Code == E_NOINTERFACE
	}
	return false
}
