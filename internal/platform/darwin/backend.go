//go:build darwin

package darwin

import (
	"github.com/mj1618/axcore/internal/ax"
)

// Backend is the ax.Backend for the macOS accessibility framework.
type Backend struct {
	registry *ax.TypeRegistry
}

var _ ax.Backend = (*Backend)(nil)

// NewBackend loads the frameworks and freezes the type registry.
func NewBackend() (*Backend, error) {
	if err := load(); err != nil {
		return nil, err
	}
	return &Backend{registry: newRegistry()}, nil
}

// withName runs fn with a temporary CFString for name.
func withName[T any](name string, fn func(uintptr) T) T {
	str := cfString(name)
	defer fnCFRelease(str)
	return fn(str)
}

func (b *Backend) Inspect(obj ax.Ref) ax.Value {
	return b.decode(uintptr(obj))
}

func (b *Backend) Describe(obj ax.Ref) string {
	if obj == 0 {
		return "<null>"
	}
	return describe(uintptr(obj))
}

func (b *Backend) Retain(obj ax.Ref) {
	if obj != 0 {
		fnCFRetain(uintptr(obj))
	}
}

func (b *Backend) Release(obj ax.Ref) {
	if obj != 0 {
		fnCFRelease(uintptr(obj))
	}
}

func (b *Backend) Equal(x, y ax.Ref) bool {
	if x == 0 || y == 0 {
		return x == y
	}
	return fnCFEqual(uintptr(x), uintptr(y))
}

func (b *Backend) CreateSystemWide() ax.Ref {
	return ax.Ref(fnAXUIElementCreateSystemWide())
}

func (b *Backend) CreateApplication(pid int) ax.Ref {
	return ax.Ref(fnAXUIElementCreateApplication(int32(pid)))
}

func (b *Backend) CopyAttributeNames(el ax.Ref) (ax.Ref, ax.Code) {
	var names uintptr
	code := fnAXUIElementCopyAttributeNames(uintptr(el), &names)
	return ax.Ref(names), ax.Code(code)
}

func (b *Backend) CopyAttributeValue(el ax.Ref, name string) (ax.Ref, ax.Code) {
	var value uintptr
	code := withName(name, func(attr uintptr) int32 {
		return fnAXUIElementCopyAttributeValue(uintptr(el), attr, &value)
	})
	return ax.Ref(value), ax.Code(code)
}

func (b *Backend) GetAttributeValueCount(el ax.Ref, name string) (int, ax.Code) {
	var count int
	code := withName(name, func(attr uintptr) int32 {
		return fnAXUIElementGetAttributeValueCount(uintptr(el), attr, &count)
	})
	return count, ax.Code(code)
}

func (b *Backend) IsAttributeSettable(el ax.Ref, name string) (bool, ax.Code) {
	var settable bool
	code := withName(name, func(attr uintptr) int32 {
		return fnAXUIElementIsAttributeSettable(uintptr(el), attr, &settable)
	})
	return settable, ax.Code(code)
}

// CreateObject encodes v as an owned CF object.
func (b *Backend) CreateObject(v ax.Value) (ax.Ref, error) {
	obj, err := encode(v)
	if err != nil {
		return 0, err
	}
	return ax.Ref(obj), nil
}

func (b *Backend) SetAttributeValue(el ax.Ref, name string, obj ax.Ref) ax.Code {
	return ax.Code(withName(name, func(attr uintptr) int32 {
		return fnAXUIElementSetAttributeValue(uintptr(el), attr, uintptr(obj))
	}))
}

func (b *Backend) CopyParameterizedAttributeNames(el ax.Ref) (ax.Ref, ax.Code) {
	var names uintptr
	code := fnAXUIElementCopyParameterizedAttributeNames(uintptr(el), &names)
	return ax.Ref(names), ax.Code(code)
}

func (b *Backend) CopyParameterizedAttributeValue(el ax.Ref, name string, param ax.Ref) (ax.Ref, ax.Code) {
	var value uintptr
	code := withName(name, func(attr uintptr) int32 {
		return fnAXUIElementCopyParameterizedAttributeValue(uintptr(el), attr, uintptr(param), &value)
	})
	return ax.Ref(value), ax.Code(code)
}

func (b *Backend) CopyActionNames(el ax.Ref) (ax.Ref, ax.Code) {
	var names uintptr
	code := fnAXUIElementCopyActionNames(uintptr(el), &names)
	return ax.Ref(names), ax.Code(code)
}

func (b *Backend) PerformAction(el ax.Ref, action string) ax.Code {
	return ax.Code(withName(action, func(act uintptr) int32 {
		return fnAXUIElementPerformAction(uintptr(el), act)
	}))
}

// PostKeyboardEvent sends a virtual key code. The character argument is 0 so
// the system derives it from the current keyboard layout.
func (b *Backend) PostKeyboardEvent(el ax.Ref, key uint16, down bool) ax.Code {
	return ax.Code(fnAXUIElementPostKeyboardEvent(uintptr(el), 0, key, down))
}

func (b *Backend) CopyElementAtPosition(el ax.Ref, x, y float32) (ax.Ref, ax.Code) {
	var hit uintptr
	code := fnAXUIElementCopyElementAtPosition(uintptr(el), x, y, &hit)
	return ax.Ref(hit), ax.Code(code)
}

func (b *Backend) GetPid(el ax.Ref) (int, ax.Code) {
	var pid int32
	code := fnAXUIElementGetPid(uintptr(el), &pid)
	return int(pid), ax.Code(code)
}

func (b *Backend) SetMessagingTimeout(el ax.Ref, seconds float32) ax.Code {
	return ax.Code(fnAXUIElementSetMessagingTimeout(uintptr(el), seconds))
}
