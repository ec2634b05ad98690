//go:build !ios && !android && (amd64 || arm64)

package com

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// GUID is the 16-byte identifier in its native in-memory layout.
// Data1..Data3 are stored in host byte order, Data4 as raw bytes.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// IID identifies an interface kind.
type IID = GUID

// CLSID identifies a creatable class.
type CLSID = GUID

// IID_IUnknown is the identifier of the base interface every object supports.
var IID_IUnknown = GUID{0x00000000, 0x0000, 0x0000, [8]byte{0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46}}

// ParseGUID parses the registry form of a GUID, with or without braces:
//
//	{00000000-0000-0000-C000-000000000046}
//	00000000-0000-0000-c000-000000000046
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil {
		return GUID{}, fmt.Errorf("com: invalid GUID %q: %w", s, err)
	}
	g := GUID{
		Data1: binary.BigEndian.Uint32(u[0:4]),
		Data2: binary.BigEndian.Uint16(u[4:6]),
		Data3: binary.BigEndian.Uint16(u[6:8]),
	}
	copy(g.Data4[:], u[8:16])
	return g, nil
}

// MustParseGUID is like ParseGUID but panics if s cannot be parsed.
// Intended for package-level IID declarations.
func MustParseGUID(s string) GUID {
	g, err := ParseGUID(s)
	if err != nil {
		panic(err)
	}
	return g
}

// UUID returns g in RFC 4122 byte order.
func (g GUID) UUID() uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:16], g.Data4[:])
	return u
}

// String returns the registry form, e.g. {00000000-0000-0000-C000-000000000046}.
func (g GUID) String() string {
	return "{" + strings.ToUpper(g.UUID().String()) + "}"
}

// Equal reports whether g and other are the same identifier.
func (g *GUID) Equal(other *GUID) bool {
	if g == nil || other == nil {
		return g == other
	}
	return *g == *other
}

// IsZero reports whether g is the nil GUID.
func (g GUID) IsZero() bool {
	return g == GUID{}
}
