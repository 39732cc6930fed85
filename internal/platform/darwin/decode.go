//go:build darwin

package darwin

import (
	"fmt"
	"unsafe"

	"github.com/mj1618/axcore/internal/ax"
)

// cfRange, CGPoint, CGSize and CGRect as laid out in memory on 64-bit macOS.
type cfRange struct {
	location int
	length   int
}

type cgPoint struct{ x, y float64 }

type cgSize struct{ width, height float64 }

type cgRect struct {
	origin cgPoint
	size   cgSize
}

// newRegistry reads the framework type identifiers once.
func newRegistry() *ax.TypeRegistry {
	return ax.NewTypeRegistry(map[ax.Kind]ax.TypeID{
		ax.KindArray:            ax.TypeID(fnCFArrayGetTypeID()),
		ax.KindElement:          ax.TypeID(fnAXUIElementGetTypeID()),
		ax.KindBoxed:            ax.TypeID(fnAXValueGetTypeID()),
		ax.KindString:           ax.TypeID(fnCFStringGetTypeID()),
		ax.KindNumber:           ax.TypeID(fnCFNumberGetTypeID()),
		ax.KindBoolean:          ax.TypeID(fnCFBooleanGetTypeID()),
		ax.KindURL:              ax.TypeID(fnCFURLGetTypeID()),
		ax.KindDate:             ax.TypeID(fnCFDateGetTypeID()),
		ax.KindData:             ax.TypeID(fnCFDataGetTypeID()),
		ax.KindAttributedString: ax.TypeID(fnCFAttributedStringGetTypeID()),
		ax.KindDictionary:       ax.TypeID(fnCFDictionaryGetTypeID()),
	})
}

// decode converts a CF object into an ax.Value. Nested element and
// attributed string references are borrowed from obj.
func (b *Backend) decode(obj uintptr) ax.Value {
	if obj == 0 {
		return nil
	}
	switch b.registry.Classify(ax.TypeID(fnCFGetTypeID(obj))) {
	case ax.KindArray:
		n := fnCFArrayGetCount(obj)
		arr := make(ax.Array, 0, n)
		for i := 0; i < n; i++ {
			arr = append(arr, b.decode(fnCFArrayGetValueAtIndex(obj, i)))
		}
		return arr
	case ax.KindElement:
		return ax.ElementRef{Ref: ax.Ref(obj)}
	case ax.KindBoxed:
		return decodeAXValue(obj)
	case ax.KindString:
		return decodeString(obj)
	case ax.KindNumber:
		return decodeNumber(obj)
	case ax.KindBoolean:
		return ax.Boolean(fnCFBooleanGetValue(obj))
	case ax.KindURL:
		return ax.URL{String: decodeString(fnCFURLGetString(obj))}
	case ax.KindDate:
		return ax.Date{Absolute: fnCFDateGetAbsoluteTime(obj)}
	case ax.KindData:
		return ax.Data(copyBytes(fnCFDataGetBytePtr(obj), fnCFDataGetLength(obj)))
	case ax.KindAttributedString:
		return ax.AttributedString{Ref: ax.Ref(obj), Text: decodeString(fnCFAttributedStringGetString(obj))}
	case ax.KindDictionary:
		return b.decodeDictionary(obj)
	}
	return ax.Unknown{Description: describe(obj)}
}

func (b *Backend) decodeDictionary(obj uintptr) ax.Dictionary {
	n := fnCFDictionaryGetCount(obj)
	if n == 0 {
		return ax.Dictionary{}
	}
	keys := make([]uintptr, n)
	values := make([]uintptr, n)
	fnCFDictionaryGetKeysAndValues(obj, &keys[0], &values[0])
	d := ax.Dictionary{Keys: make([]ax.Value, n), Values: make([]ax.Value, n)}
	for i := 0; i < n; i++ {
		d.Keys[i] = b.decode(keys[i])
		d.Values[i] = b.decode(values[i])
	}
	return d
}

func decodeAXValue(obj uintptr) ax.Value {
	typ := fnAXValueGetType(obj)
	v := ax.Boxed{Type: ax.BoxType(typ)}
	switch v.Type {
	case ax.BoxPoint:
		var p cgPoint
		fnAXValueGetValue(obj, typ, unsafe.Pointer(&p))
		v.Point = ax.Point{X: p.x, Y: p.y}
	case ax.BoxSize:
		var s cgSize
		fnAXValueGetValue(obj, typ, unsafe.Pointer(&s))
		v.Size = ax.Size{Width: s.width, Height: s.height}
	case ax.BoxRect:
		var r cgRect
		fnAXValueGetValue(obj, typ, unsafe.Pointer(&r))
		v.Rect = ax.Rect{
			Origin: ax.Point{X: r.origin.x, Y: r.origin.y},
			Size:   ax.Size{Width: r.size.width, Height: r.size.height},
		}
	case ax.BoxRange:
		var r cfRange
		fnAXValueGetValue(obj, typ, unsafe.Pointer(&r))
		v.Range = ax.CFRange{Location: r.location, Length: r.length}
	case ax.BoxError:
		var code int32
		fnAXValueGetValue(obj, typ, unsafe.Pointer(&code))
		v.Error = ax.Code(code)
	}
	return v
}

// decodeString prefers the UTF-8 external representation and falls back to
// the raw UTF-16 buffer.
func decodeString(str uintptr) ax.String {
	if str == 0 {
		return ax.String{}
	}
	if data := fnCFStringCreateExternalRepresentation(0, str, kCFStringEncodingUTF8, 0); data != 0 {
		defer fnCFRelease(data)
		return ax.String{UTF8: copyBytes(fnCFDataGetBytePtr(data), fnCFDataGetLength(data))}
	}
	n := fnCFStringGetLength(str)
	if ptr := fnCFStringGetCharactersPtr(str); ptr != nil && n > 0 {
		units := make([]uint16, n)
		copy(units, unsafe.Slice(ptr, n))
		return ax.String{UTF16: units}
	}
	return ax.String{}
}

func decodeNumber(num uintptr) ax.Number {
	typ := fnCFNumberGetType(num)
	n := ax.Number{Type: ax.NumberType(typ)}
	if n.Type.IsFloat() {
		fnCFNumberGetValue(num, int(ax.NumberFloat64), unsafe.Pointer(&n.Float))
	} else {
		fnCFNumberGetValue(num, int(ax.NumberSInt64), unsafe.Pointer(&n.Int))
	}
	return n
}

func copyBytes(ptr *byte, n int) []byte {
	out := make([]byte, n)
	if n > 0 && ptr != nil {
		copy(out, unsafe.Slice(ptr, n))
	}
	return out
}

func describe(obj uintptr) string {
	desc := fnCFCopyDescription(obj)
	if desc == 0 {
		return fmt.Sprintf("<CFType %#x>", obj)
	}
	defer fnCFRelease(desc)
	s, err := ax.WrapString(decodeString(desc))
	if err != nil {
		return fmt.Sprintf("<CFType %#x>", obj)
	}
	return s
}
