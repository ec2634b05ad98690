//go:build !ios && !android && (amd64 || arm64)

package com

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestHRESULTSuccess(t *testing.T) {
	tests := []struct {
		hr   HRESULT
		want bool
	}{
		{S_OK, true},
		{S_FALSE, true},
		{E_NOINTERFACE, false},
		{E_POINTER, false},
		{E_FAIL, false},
		{RPC_E_CHANGED_MODE, false},
	}
	for _, tt := range tests {
		if got := tt.hr.Succeeded(); got != tt.want {
			t.Errorf("%v.Succeeded() = %v, want %v", tt.hr, got, tt.want)
		}
		if got := tt.hr.Failed(); got == tt.want {
			t.Errorf("%v.Failed() = %v, want %v", tt.hr, got, !tt.want)
		}
	}
}

func TestHRESULTValues(t *testing.T) {
	tests := []struct {
		hr   HRESULT
		want uint32
	}{
		{E_NOTIMPL, 0x80004001},
		{E_NOINTERFACE, 0x80004002},
		{E_POINTER, 0x80004003},
		{E_FAIL, 0x80004005},
		{E_UNEXPECTED, 0x8000FFFF},
		{E_INVALIDARG, 0x80070057},
		{E_OUTOFMEMORY, 0x8007000E},
		{CLASS_E_NOAGGREGATION, 0x80040110},
		{REGDB_E_CLASSNOTREG, 0x80040154},
		{RPC_E_CHANGED_MODE, 0x80010106},
	}
	for _, tt := range tests {
		if uint32(tt.hr) != tt.want {
			t.Errorf("%d: got 0x%08X want 0x%08X", tt.hr, uint32(tt.hr), tt.want)
		}
	}
}

func TestHRESULTString(t *testing.T) {
	if got := E_NOINTERFACE.String(); got != "0x80004002 (no such interface supported)" {
		t.Errorf("String() = %q", got)
	}
	if got := HRESULT(-1).String(); got != "0xFFFFFFFF" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewError(t *testing.T) {
	if err := NewError(S_OK, "Op"); err != nil {
		t.Errorf("S_OK should produce nil, got %v", err)
	}
	if err := NewError(S_FALSE, "Op"); err != nil {
		t.Errorf("S_FALSE should produce nil, got %v", err)
	}

	err := NewError(E_NOINTERFACE, "QueryInterface")
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	if !strings.Contains(msg, "QueryInterface") || !strings.Contains(msg, "0x80004002") {
		t.Errorf("unexpected message: %q", msg)
	}

	var comErr *Error
	if !errors.As(err, &comErr) || comErr.Code != E_NOINTERFACE {
		t.Errorf("errors.As failed for %v", err)
	}
}

func TestCodeAndIsNoInterface(t *testing.T) {
	wrapped := fmt.Errorf("creating widget: %w", NewError(E_NOINTERFACE, "QueryInterface"))

	if Code(wrapped) != E_NOINTERFACE {
		t.Errorf("Code(wrapped) = %v", Code(wrapped))
	}
	if !IsNoInterface(wrapped) {
		t.Error("IsNoInterface should see through wrapping")
	}
	if IsNoInterface(NewError(E_FAIL, "Op")) {
		t.Error("E_FAIL is not E_NOINTERFACE")
	}
	if Code(nil) != S_OK {
		t.Errorf("Code(nil) = %v", Code(nil))
	}
	if Code(errors.New("plain")) != E_FAIL {
		t.Errorf("Code(plain) = %v", Code(errors.New("plain")))
	}
	if !strings.Contains(NewError(-5, "Op").Error(), "unknown error") {
		t.Error("unknown codes should say so")
	}
}
