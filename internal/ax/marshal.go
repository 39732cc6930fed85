package ax

import (
	"fmt"
	"math"
	"net/url"
	"time"
	"unicode/utf16"
	"unicode/utf8"
)

// CFAbsoluteTimeIntervalSince1970 is the number of seconds between the Unix
// epoch and the CoreFoundation reference date, 2001-01-01T00:00:00Z.
const CFAbsoluteTimeIntervalSince1970 = 978307200

// Bridge converts between foreign Values and host (Go) values. Element and
// attributed-string wrappers it creates retain their reference through the
// client's backend.
type Bridge struct {
	client *Client
}

// ToHost converts a foreign value into its Go equivalent.
func (b *Bridge) ToHost(v Value) (any, error) {
	switch v := v.(type) {
	case Array:
		return b.wrapArray(v)
	case ElementRef:
		return b.wrapElement(v), nil
	case Boxed:
		return WrapBoxed(v)
	case String:
		return WrapString(v)
	case Number:
		return WrapNumber(v), nil
	case Boolean:
		return bool(v), nil
	case URL:
		return WrapURL(v)
	case Date:
		return WrapDate(v), nil
	case Data:
		return WrapData(v), nil
	case AttributedString:
		return b.wrapAttributedString(v)
	case Dictionary:
		return b.wrapDictionary(v)
	case Unknown:
		return nil, &ConversionError{Direction: ToHost, Kind: KindUnknown, Type: v.Description}
	case nil:
		return nil, nil
	}
	return nil, &ConversionError{Direction: ToHost, Type: fmt.Sprintf("%T", v)}
}

// ToForeign converts a Go value into a foreign Value.
func (b *Bridge) ToForeign(h any) (Value, error) {
	switch ClassifyHost(h) {
	case HostString:
		return UnwrapString(h.(string)), nil
	case HostInteger, HostFloat:
		return UnwrapNumber(h)
	case HostBoolean:
		return Boolean(h.(bool)), nil
	case HostPoint:
		return Boxed{Type: BoxPoint, Point: h.(Point)}, nil
	case HostSize:
		return Boxed{Type: BoxSize, Size: h.(Size)}, nil
	case HostRect:
		return Boxed{Type: BoxRect, Rect: h.(Rect)}, nil
	case HostRange:
		r, err := UnwrapRange(h.(Range))
		if err != nil {
			return nil, err
		}
		return Boxed{Type: BoxRange, Range: r}, nil
	case HostTime:
		return UnwrapDate(h.(time.Time)), nil
	case HostURL:
		return UnwrapURL(h)
	case HostData:
		return UnwrapData(h.([]byte)), nil
	case HostAttributedText:
		return h.(*AttributedText).foreign(), nil
	case HostElement:
		return UnwrapElement(h.(*Element)), nil
	}
	return nil, &ConversionError{Direction: ToForeign, Type: fmt.Sprintf("%T", h)}
}

// WrapPoint converts a foreign point.
func WrapPoint(p Point) Point { return p }

// WrapSize converts a foreign size.
func WrapSize(s Size) Size { return s }

// WrapRect converts a foreign rect.
func WrapRect(r Rect) Rect {
	return Rect{Origin: WrapPoint(r.Origin), Size: WrapSize(r.Size)}
}

// WrapRange converts a CFRange into an inclusive host range. A zero-length
// range collapses to the single point at Location.
func WrapRange(r CFRange) Range {
	end := r.Location
	if r.Length > 0 {
		end = r.Location + r.Length - 1
	}
	return Range{Start: r.Location, End: end, collapsed: r.Length == 0}
}

// UnwrapRange converts a host range into a CFRange. Negative bounds are
// rejected because the intended collection length is unknown.
func UnwrapRange(r Range) (CFRange, error) {
	if r.Start < 0 || r.End < 0 {
		return CFRange{}, fmt.Errorf("%w: negative values are not allowed in ranges that are converted to CFRange (%s)", ErrInvalidArgument, r)
	}
	return CFRange{Location: r.Start, Length: r.Len()}, nil
}

// WrapBoxed converts an AXValue into a Point, Size, Rect, Range or int64
// error code.
func WrapBoxed(v Boxed) (any, error) {
	switch v.Type {
	case BoxPoint:
		return WrapPoint(v.Point), nil
	case BoxSize:
		return WrapSize(v.Size), nil
	case BoxRect:
		return WrapRect(v.Rect), nil
	case BoxRange:
		return WrapRange(v.Range), nil
	case BoxError:
		return int64(v.Error), nil
	case BoxIllegal:
		return nil, &ConversionError{Direction: ToHost, Kind: KindBoxed, Reason: "illegal AXValue type"}
	}
	return nil, &ConversionError{Direction: ToHost, Kind: KindBoxed, Reason: fmt.Sprintf("AXValue type %d is newer than this bridge", v.Type)}
}

// WrapString converts a CFString into Go text.
func WrapString(s String) (string, error) {
	if s.UTF8 != nil {
		if !utf8.Valid(s.UTF8) {
			return "", &ConversionError{Direction: ToHost, Kind: KindString, Reason: "external representation is not valid UTF-8"}
		}
		return string(s.UTF8), nil
	}
	if s.UTF16 == nil {
		return "", &ConversionError{Direction: ToHost, Kind: KindString, Reason: "string has no UTF-8 representation"}
	}
	for i := 0; i < len(s.UTF16); i++ {
		c := rune(s.UTF16[i])
		if utf16.IsSurrogate(c) {
			if i+1 >= len(s.UTF16) || utf16.DecodeRune(c, rune(s.UTF16[i+1])) == utf8.RuneError {
				return "", &ConversionError{Direction: ToHost, Kind: KindString, Reason: "string has no UTF-8 representation"}
			}
			i++
		}
	}
	return string(utf16.Decode(s.UTF16)), nil
}

// UnwrapString converts Go text into a CFString.
func UnwrapString(s string) String {
	return StringOf(s)
}

// WrapNumber converts a CFNumber by its declared subtype. Unknown subtypes
// yield 0.
func WrapNumber(n Number) any {
	switch n.Type {
	case NumberSInt8, NumberSInt16, NumberSInt32, NumberSInt64,
		NumberChar, NumberShort, NumberInt, NumberLong, NumberLongLong,
		NumberCFIndex, NumberNSInteger:
		return n.Int
	case NumberFloat32, NumberFloat64, NumberFloat, NumberDouble, NumberCGFloat:
		return n.Float
	}
	return int64(0)
}

// UnwrapNumber converts a Go integer or float into a CFNumber.
func UnwrapNumber(h any) (Number, error) {
	switch n := h.(type) {
	case int:
		return IntOf(int64(n)), nil
	case int8:
		return IntOf(int64(n)), nil
	case int16:
		return IntOf(int64(n)), nil
	case int32:
		return IntOf(int64(n)), nil
	case int64:
		return IntOf(n), nil
	case uint:
		if uint64(n) > math.MaxInt64 {
			return Number{}, fmt.Errorf("%w: %d overflows a signed 64-bit number", ErrInvalidArgument, n)
		}
		return IntOf(int64(n)), nil
	case uint8:
		return IntOf(int64(n)), nil
	case uint16:
		return IntOf(int64(n)), nil
	case uint32:
		return IntOf(int64(n)), nil
	case float32:
		return FloatOf(float64(n)), nil
	case float64:
		return FloatOf(n), nil
	}
	return Number{}, &ConversionError{Direction: ToForeign, Type: fmt.Sprintf("%T", h)}
}

// WrapURL converts a CFURL by parsing its string form.
func WrapURL(u URL) (*url.URL, error) {
	s, err := WrapString(u.String)
	if err != nil {
		return nil, err
	}
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, &ConversionError{Direction: ToHost, Kind: KindURL, Reason: err.Error()}
	}
	return parsed, nil
}

// UnwrapURL converts any URI-like host value into a CFURL.
func UnwrapURL(h any) (URL, error) {
	var u *url.URL
	switch v := h.(type) {
	case *url.URL:
		u = v
	case url.URL:
		u = &v
	case URLValue:
		u = v.URL()
	}
	if u == nil {
		return URL{}, fmt.Errorf("%w: nil URL", ErrInvalidArgument)
	}
	return URL{String: StringOf(u.String())}, nil
}

// WrapDate converts a CFDate into a UTC time.
func WrapDate(d Date) time.Time {
	sec, frac := math.Modf(d.Absolute)
	return time.Unix(int64(sec)+CFAbsoluteTimeIntervalSince1970, int64(math.Round(frac*1e9))).UTC()
}

// UnwrapDate converts a time into a CFDate.
func UnwrapDate(t time.Time) Date {
	sec := t.Unix() - CFAbsoluteTimeIntervalSince1970
	return Date{Absolute: float64(sec) + float64(t.Nanosecond())/1e9}
}

// WrapData copies a CFData buffer.
func WrapData(d Data) []byte {
	out := make([]byte, len(d))
	copy(out, d)
	return out
}

// UnwrapData copies a byte buffer into a CFData.
func UnwrapData(b []byte) Data {
	out := make(Data, len(b))
	copy(out, b)
	return out
}

// UnwrapElement hands back the element's reference without retaining it.
func UnwrapElement(e *Element) ElementRef {
	return ElementRef{Ref: e.ref}
}

func (b *Bridge) wrapElement(v ElementRef) *Element {
	return b.client.wrap(v.Ref, true)
}

func (b *Bridge) wrapAttributedString(v AttributedString) (*AttributedText, error) {
	text, err := WrapString(v.Text)
	if err != nil {
		return nil, err
	}
	b.client.backend.Retain(v.Ref)
	return &AttributedText{ref: v.Ref, text: text, backend: b.client.backend}, nil
}

// wrapArray converts a CFArray. Only the first element's kind is inspected;
// the converter chosen for it is applied to every element. On error the
// elements already converted are closed.
func (b *Bridge) wrapArray(a Array) ([]any, error) {
	out := make([]any, 0, len(a))
	if len(a) == 0 {
		return out, nil
	}
	wrap, err := b.arrayWrapper(a[0])
	if err != nil {
		return nil, err
	}
	for i, v := range a {
		h, err := wrap(v)
		if err != nil {
			CloseValue(out)
			return nil, fmt.Errorf("array element %d: %w", i, err)
		}
		out = append(out, h)
	}
	return out, nil
}

func (b *Bridge) arrayWrapper(first Value) (func(Value) (any, error), error) {
	mismatch := func(want Kind, got Value) error {
		return &ConversionError{Direction: ToHost, Kind: want,
			Reason: fmt.Sprintf("array is not homogeneous, found %s", got.Kind())}
	}
	switch first.(type) {
	case ElementRef:
		return func(v Value) (any, error) {
			ref, ok := v.(ElementRef)
			if !ok {
				return nil, mismatch(KindElement, v)
			}
			return b.wrapElement(ref), nil
		}, nil
	case Boxed:
		return func(v Value) (any, error) {
			box, ok := v.(Boxed)
			if !ok {
				return nil, mismatch(KindBoxed, v)
			}
			return WrapBoxed(box)
		}, nil
	case String:
		return func(v Value) (any, error) {
			s, ok := v.(String)
			if !ok {
				return nil, mismatch(KindString, v)
			}
			return WrapString(s)
		}, nil
	case Number:
		return func(v Value) (any, error) {
			n, ok := v.(Number)
			if !ok {
				return nil, mismatch(KindNumber, v)
			}
			return WrapNumber(n), nil
		}, nil
	case Unknown:
		return nil, &ConversionError{Direction: ToHost, Kind: KindUnknown, Type: first.(Unknown).Description}
	}
	// The remaining kinds have no cheaper per-element path than the
	// generic dispatch, restricted to the first element's kind.
	kind := first.Kind()
	return func(v Value) (any, error) {
		if v.Kind() != kind {
			return nil, mismatch(kind, v)
		}
		return b.ToHost(v)
	}, nil
}

// wrapDictionary converts a CFDictionary. Keys that are not strings are
// formatted with %v and then closed. On error everything converted so far
// is closed.
func (b *Bridge) wrapDictionary(d Dictionary) (map[string]any, error) {
	out := make(map[string]any, len(d.Keys))
	for i, k := range d.Keys {
		key, err := b.ToHost(k)
		if err != nil {
			CloseValue(out)
			return nil, fmt.Errorf("dictionary key: %w", err)
		}
		ks, ok := key.(string)
		if !ok {
			ks = fmt.Sprintf("%v", key)
			CloseValue(key)
		}
		var val any
		if i < len(d.Values) {
			val, err = b.ToHost(d.Values[i])
			if err != nil {
				CloseValue(out)
				return nil, fmt.Errorf("dictionary value for %s: %w", ks, err)
			}
		}
		out[ks] = val
	}
	return out, nil
}
