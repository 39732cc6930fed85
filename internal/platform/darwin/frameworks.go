//go:build darwin

package darwin

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

const (
	pathCoreFoundation      = "/System/Library/Frameworks/CoreFoundation.framework/CoreFoundation"
	pathApplicationServices = "/System/Library/Frameworks/ApplicationServices.framework/ApplicationServices"

	kCFStringEncodingUTF8 = 0x08000100
)

// Framework handles
var (
	libCoreFound   uintptr
	libAppServices uintptr
)

// CoreFoundation functions
var (
	fnCFRetain          func(cf uintptr) uintptr
	fnCFRelease         func(cf uintptr)
	fnCFEqual           func(a, b uintptr) bool
	fnCFGetTypeID       func(cf uintptr) uintptr
	fnCFCopyDescription func(cf uintptr) uintptr

	fnCFArrayGetTypeID       func() uintptr
	fnCFArrayGetCount        func(arr uintptr) int
	fnCFArrayGetValueAtIndex func(arr uintptr, idx int) uintptr
	fnCFArrayCreate          func(alloc uintptr, values *uintptr, n int, callbacks uintptr) uintptr

	fnCFStringGetTypeID                    func() uintptr
	fnCFStringCreateWithBytes              func(alloc uintptr, bytes *byte, n int, encoding uint32, external bool) uintptr
	fnCFStringCreateExternalRepresentation func(alloc, str uintptr, encoding uint32, lossByte uint8) uintptr
	fnCFStringGetLength                    func(str uintptr) int
	fnCFStringGetCharactersPtr             func(str uintptr) *uint16

	fnCFNumberGetTypeID func() uintptr
	fnCFNumberGetType   func(num uintptr) int
	fnCFNumberGetValue  func(num uintptr, typ int, out unsafe.Pointer) bool
	fnCFNumberCreate    func(alloc uintptr, typ int, val unsafe.Pointer) uintptr

	fnCFBooleanGetTypeID func() uintptr
	fnCFBooleanGetValue  func(b uintptr) bool

	fnCFURLGetTypeID        func() uintptr
	fnCFURLGetString        func(url uintptr) uintptr
	fnCFURLCreateWithString func(alloc, str, base uintptr) uintptr

	fnCFDateGetTypeID       func() uintptr
	fnCFDateGetAbsoluteTime func(date uintptr) float64
	fnCFDateCreate          func(alloc uintptr, at float64) uintptr

	fnCFDataGetTypeID  func() uintptr
	fnCFDataGetLength  func(data uintptr) int
	fnCFDataGetBytePtr func(data uintptr) *byte
	fnCFDataCreate     func(alloc uintptr, bytes *byte, n int) uintptr

	fnCFAttributedStringGetTypeID func() uintptr
	fnCFAttributedStringGetString func(as uintptr) uintptr

	fnCFDictionaryGetTypeID        func() uintptr
	fnCFDictionaryGetCount         func(dict uintptr) int
	fnCFDictionaryGetKeysAndValues func(dict uintptr, keys, values *uintptr)
	fnCFDictionaryCreate           func(alloc uintptr, keys, values *uintptr, n int, keyCB, valueCB uintptr) uintptr

	fnCFRunLoopRunInMode func(mode uintptr, seconds float64, returnAfterSourceHandled bool) int32
)

// ApplicationServices functions
var (
	fnAXUIElementGetTypeID                       func() uintptr
	fnAXUIElementCreateSystemWide                func() uintptr
	fnAXUIElementCreateApplication               func(pid int32) uintptr
	fnAXUIElementCopyAttributeNames              func(el uintptr, names *uintptr) int32
	fnAXUIElementCopyAttributeValue              func(el, attr uintptr, value *uintptr) int32
	fnAXUIElementGetAttributeValueCount          func(el, attr uintptr, count *int) int32
	fnAXUIElementIsAttributeSettable             func(el, attr uintptr, settable *bool) int32
	fnAXUIElementSetAttributeValue               func(el, attr, value uintptr) int32
	fnAXUIElementCopyParameterizedAttributeNames func(el uintptr, names *uintptr) int32
	fnAXUIElementCopyParameterizedAttributeValue func(el, attr, param uintptr, value *uintptr) int32
	fnAXUIElementCopyActionNames                 func(el uintptr, names *uintptr) int32
	fnAXUIElementPerformAction                   func(el, action uintptr) int32
	fnAXUIElementPostKeyboardEvent               func(app uintptr, keyChar, virtualKey uint16, keyDown bool) int32
	fnAXUIElementCopyElementAtPosition           func(el uintptr, x, y float32, hit *uintptr) int32
	fnAXUIElementGetPid                          func(el uintptr, pid *int32) int32
	fnAXUIElementSetMessagingTimeout             func(el uintptr, seconds float32) int32

	fnAXValueGetTypeID func() uintptr
	fnAXValueGetType   func(v uintptr) uint32
	fnAXValueGetValue  func(v uintptr, typ uint32, out unsafe.Pointer) bool
	fnAXValueCreate    func(typ uint32, val unsafe.Pointer) uintptr

	fnAXIsProcessTrustedWithOptions func(options uintptr) bool
)

// Global constants. The callback structs are passed by address; the others
// are CF objects read out of their global variables.
var (
	kCFBooleanTrue                  uintptr
	kCFBooleanFalse                 uintptr
	kCFRunLoopDefaultMode           uintptr
	kCFTypeArrayCallBacks           uintptr
	kCFTypeDictionaryKeyCallBacks   uintptr
	kCFTypeDictionaryValueCallBacks uintptr
	kAXTrustedCheckOptionPrompt     uintptr
)

var (
	loadOnce sync.Once
	loadErr  error
)

// load opens the frameworks and binds every symbol the backend uses.
func load() error {
	loadOnce.Do(func() {
		var err error
		libCoreFound, err = purego.Dlopen(pathCoreFoundation, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = fmt.Errorf("failed to load CoreFoundation: %w", err)
			return
		}
		libAppServices, err = purego.Dlopen(pathApplicationServices, purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			loadErr = fmt.Errorf("failed to load ApplicationServices: %w", err)
			return
		}

		cf := libCoreFound
		purego.RegisterLibFunc(&fnCFRetain, cf, "CFRetain")
		purego.RegisterLibFunc(&fnCFRelease, cf, "CFRelease")
		purego.RegisterLibFunc(&fnCFEqual, cf, "CFEqual")
		purego.RegisterLibFunc(&fnCFGetTypeID, cf, "CFGetTypeID")
		purego.RegisterLibFunc(&fnCFCopyDescription, cf, "CFCopyDescription")

		purego.RegisterLibFunc(&fnCFArrayGetTypeID, cf, "CFArrayGetTypeID")
		purego.RegisterLibFunc(&fnCFArrayGetCount, cf, "CFArrayGetCount")
		purego.RegisterLibFunc(&fnCFArrayGetValueAtIndex, cf, "CFArrayGetValueAtIndex")
		purego.RegisterLibFunc(&fnCFArrayCreate, cf, "CFArrayCreate")

		purego.RegisterLibFunc(&fnCFStringGetTypeID, cf, "CFStringGetTypeID")
		purego.RegisterLibFunc(&fnCFStringCreateWithBytes, cf, "CFStringCreateWithBytes")
		purego.RegisterLibFunc(&fnCFStringCreateExternalRepresentation, cf, "CFStringCreateExternalRepresentation")
		purego.RegisterLibFunc(&fnCFStringGetLength, cf, "CFStringGetLength")
		purego.RegisterLibFunc(&fnCFStringGetCharactersPtr, cf, "CFStringGetCharactersPtr")

		purego.RegisterLibFunc(&fnCFNumberGetTypeID, cf, "CFNumberGetTypeID")
		purego.RegisterLibFunc(&fnCFNumberGetType, cf, "CFNumberGetType")
		purego.RegisterLibFunc(&fnCFNumberGetValue, cf, "CFNumberGetValue")
		purego.RegisterLibFunc(&fnCFNumberCreate, cf, "CFNumberCreate")

		purego.RegisterLibFunc(&fnCFBooleanGetTypeID, cf, "CFBooleanGetTypeID")
		purego.RegisterLibFunc(&fnCFBooleanGetValue, cf, "CFBooleanGetValue")

		purego.RegisterLibFunc(&fnCFURLGetTypeID, cf, "CFURLGetTypeID")
		purego.RegisterLibFunc(&fnCFURLGetString, cf, "CFURLGetString")
		purego.RegisterLibFunc(&fnCFURLCreateWithString, cf, "CFURLCreateWithString")

		purego.RegisterLibFunc(&fnCFDateGetTypeID, cf, "CFDateGetTypeID")
		purego.RegisterLibFunc(&fnCFDateGetAbsoluteTime, cf, "CFDateGetAbsoluteTime")
		purego.RegisterLibFunc(&fnCFDateCreate, cf, "CFDateCreate")

		purego.RegisterLibFunc(&fnCFDataGetTypeID, cf, "CFDataGetTypeID")
		purego.RegisterLibFunc(&fnCFDataGetLength, cf, "CFDataGetLength")
		purego.RegisterLibFunc(&fnCFDataGetBytePtr, cf, "CFDataGetBytePtr")
		purego.RegisterLibFunc(&fnCFDataCreate, cf, "CFDataCreate")

		purego.RegisterLibFunc(&fnCFAttributedStringGetTypeID, cf, "CFAttributedStringGetTypeID")
		purego.RegisterLibFunc(&fnCFAttributedStringGetString, cf, "CFAttributedStringGetString")

		purego.RegisterLibFunc(&fnCFDictionaryGetTypeID, cf, "CFDictionaryGetTypeID")
		purego.RegisterLibFunc(&fnCFDictionaryGetCount, cf, "CFDictionaryGetCount")
		purego.RegisterLibFunc(&fnCFDictionaryGetKeysAndValues, cf, "CFDictionaryGetKeysAndValues")
		purego.RegisterLibFunc(&fnCFDictionaryCreate, cf, "CFDictionaryCreate")

		purego.RegisterLibFunc(&fnCFRunLoopRunInMode, cf, "CFRunLoopRunInMode")

		as := libAppServices
		purego.RegisterLibFunc(&fnAXUIElementGetTypeID, as, "AXUIElementGetTypeID")
		purego.RegisterLibFunc(&fnAXUIElementCreateSystemWide, as, "AXUIElementCreateSystemWide")
		purego.RegisterLibFunc(&fnAXUIElementCreateApplication, as, "AXUIElementCreateApplication")
		purego.RegisterLibFunc(&fnAXUIElementCopyAttributeNames, as, "AXUIElementCopyAttributeNames")
		purego.RegisterLibFunc(&fnAXUIElementCopyAttributeValue, as, "AXUIElementCopyAttributeValue")
		purego.RegisterLibFunc(&fnAXUIElementGetAttributeValueCount, as, "AXUIElementGetAttributeValueCount")
		purego.RegisterLibFunc(&fnAXUIElementIsAttributeSettable, as, "AXUIElementIsAttributeSettable")
		purego.RegisterLibFunc(&fnAXUIElementSetAttributeValue, as, "AXUIElementSetAttributeValue")
		purego.RegisterLibFunc(&fnAXUIElementCopyParameterizedAttributeNames, as, "AXUIElementCopyParameterizedAttributeNames")
		purego.RegisterLibFunc(&fnAXUIElementCopyParameterizedAttributeValue, as, "AXUIElementCopyParameterizedAttributeValue")
		purego.RegisterLibFunc(&fnAXUIElementCopyActionNames, as, "AXUIElementCopyActionNames")
		purego.RegisterLibFunc(&fnAXUIElementPerformAction, as, "AXUIElementPerformAction")
		purego.RegisterLibFunc(&fnAXUIElementPostKeyboardEvent, as, "AXUIElementPostKeyboardEvent")
		purego.RegisterLibFunc(&fnAXUIElementCopyElementAtPosition, as, "AXUIElementCopyElementAtPosition")
		purego.RegisterLibFunc(&fnAXUIElementGetPid, as, "AXUIElementGetPid")
		purego.RegisterLibFunc(&fnAXUIElementSetMessagingTimeout, as, "AXUIElementSetMessagingTimeout")

		purego.RegisterLibFunc(&fnAXValueGetTypeID, as, "AXValueGetTypeID")
		purego.RegisterLibFunc(&fnAXValueGetType, as, "AXValueGetType")
		purego.RegisterLibFunc(&fnAXValueGetValue, as, "AXValueGetValue")
		purego.RegisterLibFunc(&fnAXValueCreate, as, "AXValueCreate")

		purego.RegisterLibFunc(&fnAXIsProcessTrustedWithOptions, as, "AXIsProcessTrustedWithOptions")

		kCFBooleanTrue, loadErr = globalValue(cf, "kCFBooleanTrue")
		if loadErr != nil {
			return
		}
		kCFBooleanFalse, loadErr = globalValue(cf, "kCFBooleanFalse")
		if loadErr != nil {
			return
		}
		kCFRunLoopDefaultMode, loadErr = globalValue(cf, "kCFRunLoopDefaultMode")
		if loadErr != nil {
			return
		}
		kAXTrustedCheckOptionPrompt, loadErr = globalValue(as, "kAXTrustedCheckOptionPrompt")
		if loadErr != nil {
			return
		}
		kCFTypeArrayCallBacks, loadErr = purego.Dlsym(cf, "kCFTypeArrayCallBacks")
		if loadErr != nil {
			return
		}
		kCFTypeDictionaryKeyCallBacks, loadErr = purego.Dlsym(cf, "kCFTypeDictionaryKeyCallBacks")
		if loadErr != nil {
			return
		}
		kCFTypeDictionaryValueCallBacks, loadErr = purego.Dlsym(cf, "kCFTypeDictionaryValueCallBacks")
	})
	return loadErr
}

func globalValue(lib uintptr, name string) (uintptr, error) {
	sym, err := purego.Dlsym(lib, name)
	if err != nil {
		return 0, fmt.Errorf("dlsym %s: %w", name, err)
	}
	return derefGlobalPtr(sym), nil
}

// derefGlobalPtr reads a CF object pointer from a global variable address.
//
//go:nocheckptr
func derefGlobalPtr(addr uintptr) uintptr {
	return *(*uintptr)(unsafe.Pointer(addr)) //nolint:govet
}

// cfString creates an owned CFString from s.
func cfString(s string) uintptr {
	if s == "" {
		return fnCFStringCreateWithBytes(0, nil, 0, kCFStringEncodingUTF8, false)
	}
	b := []byte(s)
	return fnCFStringCreateWithBytes(0, &b[0], len(b), kCFStringEncodingUTF8, false)
}
