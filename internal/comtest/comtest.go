//go:build !ios && !android && (amd64 || arm64)

// Package comtest provides in-process component objects for tests.
//
// Objects are plain Go structs whose first word points at a vtable of
// purego callbacks, so every AddRef, Release and QueryInterface made
// through the binary interface is observed and counted exactly.
package comtest

import (
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/obinnaokechukwu/comptr/com"
)

// Interface identifiers served by Object.
var (
	IID_IValue   = com.MustParseGUID("{5D2A6C10-8E0B-4C7E-9A4B-1F3E2D5C6B01}")
	IID_IScaled  = com.MustParseGUID("{5D2A6C10-8E0B-4C7E-9A4B-1F3E2D5C6B02}")
	IID_IAgile   = com.MustParseGUID("{5D2A6C10-8E0B-4C7E-9A4B-1F3E2D5C6B03}")
	IID_IMissing = com.MustParseGUID("{5D2A6C10-8E0B-4C7E-9A4B-1F3E2D5C6BFF}")
)

// ValueVtbl extends IUnknownVtbl with Value.
type ValueVtbl struct {
	com.IUnknownVtbl
	Value uintptr
}

// ScaledVtbl extends ValueVtbl with Scale.
type ScaledVtbl struct {
	ValueVtbl
	Scale uintptr
}

// IValue exposes the object's stored value.
type IValue struct {
	Vtbl *ValueVtbl
}

func (*IValue) IID() *com.GUID { return &IID_IValue }

// Base returns v as its IUnknown prefix.
func (v *IValue) Base() *com.IUnknown { return (*com.IUnknown)(unsafe.Pointer(v)) }

// Value returns the stored value.
func (v *IValue) Value() uint32 {
	r1, _, _ := purego.SyscallN(v.Vtbl.Value, uintptr(unsafe.Pointer(v)))
	return uint32(r1)
}

// IScaled derives from IValue.
type IScaled struct {
	Vtbl *ScaledVtbl
}

func (*IScaled) IID() *com.GUID { return &IID_IScaled }

// Base returns s as its IValue prefix.
func (s *IScaled) Base() *IValue { return (*IValue)(unsafe.Pointer(s)) }

// Scale returns the stored value multiplied by factor.
func (s *IScaled) Scale(factor uint32) uint32 {
	r1, _, _ := purego.SyscallN(s.Vtbl.Scale, uintptr(unsafe.Pointer(s)), uintptr(factor))
	return uint32(r1)
}

// IAgile is a marker interface whose objects are declared goroutine-safe.
type IAgile struct {
	Vtbl *com.IUnknownVtbl
}

func (*IAgile) IID() *com.GUID { return &IID_IAgile }

// ThreadSafe marks IAgile as usable from any goroutine. Object keeps its
// counters in atomics, so the assertion holds.
func (*IAgile) ThreadSafe() {}

// IMissing is never supported by Object.
type IMissing struct {
	Vtbl *com.IUnknownVtbl
}

func (*IMissing) IID() *com.GUID { return &IID_IMissing }

// Object is a fake component. It is born with one reference, as if
// returned by a creation call.
type Object struct {
	vtbl *ScaledVtbl // must stay the first field

	value      uint32
	interfaces []com.GUID
	nullQuery  bool

	refs         atomic.Int32
	addRefs      atomic.Int32
	releases     atomic.Int32
	queries      atomic.Int32
	overReleases atomic.Int32
	destroyed    atomic.Bool
}

// Counts is a snapshot of an Object's protocol activity.
type Counts struct {
	Refs         int32 // current reference count
	AddRefs      int32 // AddRef calls, including those made by QueryInterface
	Releases     int32 // Release calls
	Queries      int32 // QueryInterface calls
	OverReleases int32 // Release calls made after the count reached zero
	Destroyed    bool
}

// New creates an object holding value. IUnknown is always supported; the
// listed interfaces are supported in addition.
func New(value uint32, interfaces ...*com.GUID) *Object {
	o := &Object{
		vtbl:  sharedVtbl(),
		value: value,
	}
	for _, iid := range interfaces {
		o.interfaces = append(o.interfaces, *iid)
	}
	o.refs.Store(1)
	return o
}

// NewScaled creates an object supporting IValue and IScaled.
func NewScaled(value uint32) *Object {
	return New(value, &IID_IValue, &IID_IScaled)
}

// BreakQuery makes QueryInterface report S_OK while writing nil, the way a
// faulty component might.
func (o *Object) BreakQuery() {
	o.nullQuery = true
}

// Counts returns a snapshot of o's counters.
func (o *Object) Counts() Counts {
	return Counts{
		Refs:         o.refs.Load(),
		AddRefs:      o.addRefs.Load(),
		Releases:     o.releases.Load(),
		Queries:      o.queries.Load(),
		OverReleases: o.overReleases.Load(),
		Destroyed:    o.destroyed.Load(),
	}
}

// Refs returns the current reference count.
func (o *Object) Refs() int32 {
	return o.refs.Load()
}

// Pointer returns o's address as an interface pointer of kind T without
// touching the count. The caller decides what reference it stands for.
func Pointer[T any](o *Object) *T {
	return (*T)(unsafe.Pointer(o))
}

// Unknown returns o as *com.IUnknown.
func (o *Object) Unknown() *com.IUnknown {
	return Pointer[com.IUnknown](o)
}

// Create mimics a factory function: it writes a new object's IValue
// pointer, carrying one reference, into out.
func Create(value uint32) (func(out **IValue), *Object) {
	o := New(value, &IID_IValue)
	return func(out **IValue) {
		*out = Pointer[IValue](o)
	}, o
}

func (o *Object) supports(iid *com.GUID) bool {
	if *iid == com.IID_IUnknown {
		return true
	}
	for i := range o.interfaces {
		if o.interfaces[i] == *iid {
			return true
		}
	}
	return false
}

var (
	vtblOnce sync.Once
	vtbl     *ScaledVtbl
)

// sharedVtbl builds the callback table once; purego callbacks are never freed.
func sharedVtbl() *ScaledVtbl {
	vtblOnce.Do(func() {
		v := &ScaledVtbl{}
		v.QueryInterface = purego.NewCallback(queryInterface)
		v.AddRef = purego.NewCallback(addRef)
		v.Release = purego.NewCallback(release)
		v.Value = purego.NewCallback(valueOf)
		v.Scale = purego.NewCallback(scale)
		vtbl = v
	})
	return vtbl
}

func hresult(hr com.HRESULT) uintptr {
	return uintptr(uint32(hr))
}

func queryInterface(this unsafe.Pointer, iid *com.GUID, out *unsafe.Pointer) uintptr {
	o := (*Object)(this)
	o.queries.Add(1)
	if out == nil {
		return hresult(com.E_POINTER)
	}
	if iid == nil || !o.supports(iid) {
		*out = nil
		return hresult(com.E_NOINTERFACE)
	}
	if o.nullQuery {
		*out = nil
		return hresult(com.S_OK)
	}
	o.addRefs.Add(1)
	o.refs.Add(1)
	*out = this
	return hresult(com.S_OK)
}

func addRef(this unsafe.Pointer) uintptr {
	o := (*Object)(this)
	o.addRefs.Add(1)
	return uintptr(o.refs.Add(1))
}

func release(this unsafe.Pointer) uintptr {
	o := (*Object)(this)
	o.releases.Add(1)
	if o.destroyed.Load() {
		o.overReleases.Add(1)
		return 0
	}
	n := o.refs.Add(-1)
	if n == 0 {
		o.destroyed.Store(true)
	}
	return uintptr(n)
}

func valueOf(this unsafe.Pointer) uintptr {
	return uintptr((*Object)(this).value)
}

func scale(this unsafe.Pointer, factor uintptr) uintptr {
	return uintptr((*Object)(this).value * uint32(factor))
}
