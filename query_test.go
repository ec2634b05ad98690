//go:build !ios && !android && (amd64 || arm64)

package comptr

import (
	"testing"

	"github.com/obinnaokechukwu/comptr/com"
	"github.com/obinnaokechukwu/comptr/internal/comtest"
)

func TestQuerySupportedInterface(t *testing.T) {
	o := comtest.NewScaled(3)
	p, err := FromRaw(comtest.Pointer[comtest.IValue](o))
	if err != nil {
		t.Fatalf("FromRaw failed: %v", err)
	}
	defer p.Release()

	s, ok := Query[comtest.IScaled](p)
	if !ok {
		t.Fatal("expected IScaled to be present")
	}
	if s.Addr() != p.Addr() {
		t.Fatalf("query changed identity: %v vs %v", s, p)
	}
	if c := o.Counts(); c.Refs != 2 || c.AddRefs != 1 {
		t.Fatalf("query should add exactly one reference: %+v", c)
	}
	if got := s.Get().Scale(4); got != 12 {
		t.Fatalf("Scale: got %d want 12", got)
	}

	s.Release()
	if c := o.Counts(); c.Refs != 1 {
		t.Fatalf("after releasing queried handle: %+v", c)
	}
}

func TestQueryMissingInterface(t *testing.T) {
	p, o := newValue(t, 5)
	defer p.Release()
	before := Live()

	m, ok := Query[comtest.IMissing](p)
	if ok || m != nil {
		t.Fatalf("expected absent result, got %v", m)
	}

	c := o.Counts()
	if c.Refs != 1 || c.AddRefs != 0 || c.Releases != 0 {
		t.Fatalf("absent query changed the count: %+v", c)
	}
	if c.Queries != 1 {
		t.Fatalf("expected one QueryInterface call, got %d", c.Queries)
	}
	if Live() != before {
		t.Fatalf("absent query created a handle")
	}
}

func TestQueryUnknownAlwaysSucceeds(t *testing.T) {
	objects := []struct {
		name string
		obj  *comtest.Object
	}{
		{"bare", comtest.New(1)},
		{"value", comtest.New(2, &comtest.IID_IValue)},
		{"scaled", comtest.NewScaled(3)},
		{"agile", comtest.New(4, &comtest.IID_IAgile)},
	}

	for _, tt := range objects {
		t.Run(tt.name, func(t *testing.T) {
			p, err := FromRaw(tt.obj.Unknown())
			if err != nil {
				t.Fatalf("FromRaw failed: %v", err)
			}
			defer p.Release()

			u, ok := Query[com.IUnknown](p)
			if !ok {
				t.Fatal("IUnknown query failed")
			}
			if u.Addr() != p.Addr() {
				t.Fatalf("IUnknown pointer differs: %#x vs %#x", u.Addr(), p.Addr())
			}
			if tt.obj.Refs() != 2 {
				t.Fatalf("refs: got %d want 2", tt.obj.Refs())
			}
			u.Release()
			if tt.obj.Refs() != 1 {
				t.Fatalf("refs after release: got %d want 1", tt.obj.Refs())
			}
		})
	}
}

func TestQueryNullResultIsAbsent(t *testing.T) {
	o := comtest.NewScaled(1)
	o.BreakQuery()
	p, err := FromRaw(comtest.Pointer[comtest.IValue](o))
	if err != nil {
		t.Fatalf("FromRaw failed: %v", err)
	}
	defer p.Release()

	if s, ok := Query[comtest.IScaled](p); ok {
		s.Release()
		t.Fatal("S_OK with a nil pointer must be reported absent")
	}
	if o.Refs() != 1 {
		t.Fatalf("refs: got %d want 1", o.Refs())
	}
}

func TestQueryFromView(t *testing.T) {
	o := comtest.NewScaled(6)
	p, err := FromRaw(comtest.Pointer[comtest.IScaled](o))
	if err != nil {
		t.Fatalf("FromRaw failed: %v", err)
	}
	defer p.Release()

	v, ok := Query[comtest.IValue](p.Borrow())
	if !ok {
		t.Fatal("expected IValue to be present")
	}
	defer v.Release()

	if got := v.Get().Value(); got != 6 {
		t.Fatalf("Value: got %d want 6", got)
	}
}

func TestSameObject(t *testing.T) {
	a := comtest.NewScaled(1)
	b := comtest.NewScaled(1)

	pa, _ := FromRaw(comtest.Pointer[comtest.IValue](a))
	defer pa.Release()
	pb, _ := FromRaw(comtest.Pointer[comtest.IValue](b))
	defer pb.Release()

	sa, ok := Query[comtest.IScaled](pa)
	if !ok {
		t.Fatal("expected IScaled")
	}
	defer sa.Release()

	if !SameObject(pa, sa) {
		t.Error("interfaces of one object reported different")
	}
	if SameObject(pa, pb) {
		t.Error("different objects reported same")
	}
	if a.Refs() != 2 || b.Refs() != 1 {
		t.Errorf("SameObject leaked references: a=%d b=%d", a.Refs(), b.Refs())
	}
}
