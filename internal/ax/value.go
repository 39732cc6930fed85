package ax

import "fmt"

// Ref is an opaque handle to a foreign (CoreFoundation) object. Its meaning
// is private to the Backend that produced it; 0 is the null reference.
type Ref uintptr

// Kind tags the variants of Value.
type Kind int

const (
	KindUnknown Kind = iota
	KindArray
	KindElement
	KindBoxed
	KindString
	KindNumber
	KindBoolean
	KindURL
	KindDate
	KindData
	KindAttributedString
	KindDictionary
)

var kindNames = [...]string{
	KindUnknown:          "unknown",
	KindArray:            "array",
	KindElement:          "element",
	KindBoxed:            "boxed value",
	KindString:           "string",
	KindNumber:           "number",
	KindBoolean:          "boolean",
	KindURL:              "url",
	KindDate:             "date",
	KindData:             "data",
	KindAttributedString: "attributed string",
	KindDictionary:       "dictionary",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Value is a decoded foreign value. The set of implementations is closed:
// every conversion is a switch over the types below.
type Value interface {
	Kind() Kind
}

// Array is an ordered CFArray.
type Array []Value

// ElementRef is an AXUIElementRef borrowed from whatever produced the
// enclosing value. Wrapping it into an Element retains it.
type ElementRef struct {
	Ref Ref
}

// BoxType mirrors AXValueType.
type BoxType int

const (
	BoxIllegal BoxType = 0
	BoxPoint   BoxType = 1
	BoxSize    BoxType = 2
	BoxRect    BoxType = 3
	BoxRange   BoxType = 4
	BoxError   BoxType = 5
)

// CFRange is the foreign {location, length} pair.
type CFRange struct {
	Location int
	Length   int
}

// Boxed is an AXValueRef: a point, size, rect, range or error code. Only
// the field selected by Type is meaningful.
type Boxed struct {
	Type  BoxType
	Point Point
	Size  Size
	Rect  Rect
	Range CFRange
	Error Code
}

// String is a CFString. UTF8 holds the external UTF-8 representation when
// the backend could produce one; otherwise UTF16 holds the raw code units.
type String struct {
	UTF8  []byte
	UTF16 []uint16
}

// NumberType mirrors CFNumberType.
type NumberType int

const (
	NumberSInt8     NumberType = 1
	NumberSInt16    NumberType = 2
	NumberSInt32    NumberType = 3
	NumberSInt64    NumberType = 4
	NumberFloat32   NumberType = 5
	NumberFloat64   NumberType = 6
	NumberChar      NumberType = 7
	NumberShort     NumberType = 8
	NumberInt       NumberType = 9
	NumberLong      NumberType = 10
	NumberLongLong  NumberType = 11
	NumberFloat     NumberType = 12
	NumberDouble    NumberType = 13
	NumberCFIndex   NumberType = 14
	NumberNSInteger NumberType = 15
	NumberCGFloat   NumberType = 16
)

// IsFloat reports whether t is one of the floating point subtypes.
func (t NumberType) IsFloat() bool {
	switch t {
	case NumberFloat32, NumberFloat64, NumberFloat, NumberDouble, NumberCGFloat:
		return true
	}
	return false
}

// Number is a CFNumber. Int is set for integer subtypes, Float for
// floating point ones.
type Number struct {
	Type  NumberType
	Int   int64
	Float float64
}

// Boolean is a CFBoolean.
type Boolean bool

// URL is a CFURL carried as its string form.
type URL struct {
	String String
}

// Date is a CFDate: seconds since 2001-01-01T00:00:00Z.
type Date struct {
	Absolute float64
}

// Data is a CFData byte buffer.
type Data []byte

// AttributedString is a CFAttributedString. It is passed through as an
// opaque object; Text is its plain string content.
type AttributedString struct {
	Ref  Ref
	Text String
}

// Dictionary is a CFDictionary; Keys[i] maps to Values[i].
type Dictionary struct {
	Keys   []Value
	Values []Value
}

// Unknown is any foreign object the registry does not recognise.
type Unknown struct {
	Description string
}

func (Array) Kind() Kind            { return KindArray }
func (ElementRef) Kind() Kind       { return KindElement }
func (Boxed) Kind() Kind            { return KindBoxed }
func (String) Kind() Kind           { return KindString }
func (Number) Kind() Kind           { return KindNumber }
func (Boolean) Kind() Kind          { return KindBoolean }
func (URL) Kind() Kind              { return KindURL }
func (Date) Kind() Kind             { return KindDate }
func (Data) Kind() Kind             { return KindData }
func (AttributedString) Kind() Kind { return KindAttributedString }
func (Dictionary) Kind() Kind       { return KindDictionary }
func (Unknown) Kind() Kind          { return KindUnknown }

// StringOf builds a String value from Go text.
func StringOf(s string) String {
	b := []byte(s)
	if b == nil {
		b = []byte{}
	}
	return String{UTF8: b}
}

// IntOf builds a 64-bit integer Number.
func IntOf(i int64) Number {
	return Number{Type: NumberSInt64, Int: i}
}

// FloatOf builds a 64-bit float Number.
func FloatOf(f float64) Number {
	return Number{Type: NumberFloat64, Float: f}
}
