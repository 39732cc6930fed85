//go:build darwin

package darwin

import (
	"fmt"
	"unsafe"

	"github.com/mj1618/axcore/internal/ax"
)

// encode creates an owned CF object for v. The caller releases it.
func encode(v ax.Value) (uintptr, error) {
	switch v := v.(type) {
	case ax.Array:
		return encodeArray(v)
	case ax.ElementRef:
		return fnCFRetain(uintptr(v.Ref)), nil
	case ax.Boxed:
		return encodeAXValue(v)
	case ax.String:
		s, err := ax.WrapString(v)
		if err != nil {
			return 0, err
		}
		return cfString(s), nil
	case ax.Number:
		if v.Type.IsFloat() {
			return fnCFNumberCreate(0, int(ax.NumberFloat64), unsafe.Pointer(&v.Float)), nil
		}
		return fnCFNumberCreate(0, int(ax.NumberSInt64), unsafe.Pointer(&v.Int)), nil
	case ax.Boolean:
		if v {
			return fnCFRetain(kCFBooleanTrue), nil
		}
		return fnCFRetain(kCFBooleanFalse), nil
	case ax.URL:
		s, err := ax.WrapString(v.String)
		if err != nil {
			return 0, err
		}
		str := cfString(s)
		defer fnCFRelease(str)
		url := fnCFURLCreateWithString(0, str, 0)
		if url == 0 {
			return 0, fmt.Errorf("%w: %q is not a valid URL", ax.ErrInvalidArgument, s)
		}
		return url, nil
	case ax.Date:
		return fnCFDateCreate(0, v.Absolute), nil
	case ax.Data:
		if len(v) == 0 {
			return fnCFDataCreate(0, nil, 0), nil
		}
		return fnCFDataCreate(0, &v[0], len(v)), nil
	case ax.AttributedString:
		return fnCFRetain(uintptr(v.Ref)), nil
	case ax.Dictionary:
		return encodeDictionary(v)
	}
	return 0, &ax.ConversionError{Direction: ax.ToForeign, Type: fmt.Sprintf("%T", v)}
}

func encodeAXValue(v ax.Boxed) (uintptr, error) {
	var ptr unsafe.Pointer
	switch v.Type {
	case ax.BoxPoint:
		ptr = unsafe.Pointer(&cgPoint{x: v.Point.X, y: v.Point.Y})
	case ax.BoxSize:
		ptr = unsafe.Pointer(&cgSize{width: v.Size.Width, height: v.Size.Height})
	case ax.BoxRect:
		ptr = unsafe.Pointer(&cgRect{
			origin: cgPoint{x: v.Rect.Origin.X, y: v.Rect.Origin.Y},
			size:   cgSize{width: v.Rect.Size.Width, height: v.Rect.Size.Height},
		})
	case ax.BoxRange:
		ptr = unsafe.Pointer(&cfRange{location: v.Range.Location, length: v.Range.Length})
	case ax.BoxError:
		code := int32(v.Error)
		ptr = unsafe.Pointer(&code)
	default:
		return 0, &ax.ConversionError{Direction: ax.ToForeign, Type: fmt.Sprintf("AXValue type %d", v.Type)}
	}
	return fnAXValueCreate(uint32(v.Type), ptr), nil
}

func encodeArray(a ax.Array) (uintptr, error) {
	objs, err := encodeAll(a)
	if err != nil {
		return 0, err
	}
	defer releaseAll(objs)
	if len(objs) == 0 {
		return fnCFArrayCreate(0, nil, 0, kCFTypeArrayCallBacks), nil
	}
	return fnCFArrayCreate(0, &objs[0], len(objs), kCFTypeArrayCallBacks), nil
}

func encodeDictionary(d ax.Dictionary) (uintptr, error) {
	if len(d.Keys) != len(d.Values) {
		return 0, fmt.Errorf("%w: dictionary has %d keys and %d values", ax.ErrInvalidArgument, len(d.Keys), len(d.Values))
	}
	keys, err := encodeAll(d.Keys)
	if err != nil {
		return 0, err
	}
	defer releaseAll(keys)
	values, err := encodeAll(d.Values)
	if err != nil {
		return 0, err
	}
	defer releaseAll(values)
	if len(keys) == 0 {
		return fnCFDictionaryCreate(0, nil, nil, 0, kCFTypeDictionaryKeyCallBacks, kCFTypeDictionaryValueCallBacks), nil
	}
	return fnCFDictionaryCreate(0, &keys[0], &values[0], len(keys), kCFTypeDictionaryKeyCallBacks, kCFTypeDictionaryValueCallBacks), nil
}

func encodeAll(vals []ax.Value) ([]uintptr, error) {
	objs := make([]uintptr, 0, len(vals))
	for _, v := range vals {
		obj, err := encode(v)
		if err != nil {
			releaseAll(objs)
			return nil, err
		}
		objs = append(objs, obj)
	}
	return objs, nil
}

func releaseAll(objs []uintptr) {
	for _, obj := range objs {
		if obj != 0 {
			fnCFRelease(obj)
		}
	}
}
