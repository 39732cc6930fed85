package ax

import (
	"net/url"
	"time"
)

// TypeID is a runtime type identifier as reported by the framework
// (CFGetTypeID).
type TypeID uintptr

// TypeRegistry maps framework type identifiers to Value kinds. It is built
// once by a backend at startup and never mutated afterwards.
type TypeRegistry struct {
	kinds map[TypeID]Kind
}

// NewTypeRegistry freezes ids into a registry. Identifiers that are not
// present classify as KindUnknown.
func NewTypeRegistry(ids map[Kind]TypeID) *TypeRegistry {
	r := &TypeRegistry{kinds: make(map[TypeID]Kind, len(ids))}
	for kind, id := range ids {
		r.kinds[id] = kind
	}
	return r
}

// Classify returns the kind registered for id.
func (r *TypeRegistry) Classify(id TypeID) Kind {
	if r == nil {
		return KindUnknown
	}
	return r.kinds[id]
}

// Len returns the number of registered identifiers.
func (r *TypeRegistry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.kinds)
}

// HostKind classifies Go values for host → foreign conversion.
type HostKind int

const (
	HostUnsupported HostKind = iota
	HostString
	HostInteger
	HostFloat
	HostBoolean
	HostPoint
	HostSize
	HostRect
	HostRange
	HostTime
	HostURL
	HostData
	HostAttributedText
	HostElement
)

// URLValue is implemented by URI-like host values that are not *url.URL.
type URLValue interface {
	URL() *url.URL
}

// ClassifyHost returns the conversion family for a host value. Structs are
// matched by nominal type, never structurally; URI-like values are matched by
// capability.
func ClassifyHost(v any) HostKind {
	switch v.(type) {
	case string:
		return HostString
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32:
		return HostInteger
	case float32, float64:
		return HostFloat
	case bool:
		return HostBoolean
	case Point:
		return HostPoint
	case Size:
		return HostSize
	case Rect:
		return HostRect
	case Range:
		return HostRange
	case time.Time:
		return HostTime
	case *url.URL, url.URL, URLValue:
		return HostURL
	case []byte:
		return HostData
	case *AttributedText:
		return HostAttributedText
	case *Element:
		return HostElement
	}
	return HostUnsupported
}
