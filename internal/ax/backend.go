package ax

import "time"

// Backend is the accessibility framework. Methods named Copy*/Create* return
// references the caller owns and must Release; every other Ref argument or
// result is borrowed.
type Backend interface {
	// Inspect decodes an object into a Value. Element and attributed-string
	// references inside the result are borrowed from obj.
	Inspect(obj Ref) Value
	// Describe returns the framework description of obj.
	Describe(obj Ref) string

	Retain(obj Ref)
	Release(obj Ref)
	Equal(a, b Ref) bool

	CreateSystemWide() Ref
	CreateApplication(pid int) Ref
	// CreateObject builds an owned foreign object for v. It fails when the
	// framework cannot represent v, before any element is contacted.
	CreateObject(v Value) (Ref, error)

	CopyAttributeNames(el Ref) (Ref, Code)
	CopyAttributeValue(el Ref, name string) (Ref, Code)
	GetAttributeValueCount(el Ref, name string) (int, Code)
	IsAttributeSettable(el Ref, name string) (bool, Code)
	SetAttributeValue(el Ref, name string, v Ref) Code

	CopyParameterizedAttributeNames(el Ref) (Ref, Code)
	CopyParameterizedAttributeValue(el Ref, name string, param Ref) (Ref, Code)

	CopyActionNames(el Ref) (Ref, Code)
	PerformAction(el Ref, action string) Code
	PostKeyboardEvent(el Ref, key uint16, down bool) Code

	CopyElementAtPosition(el Ref, x, y float32) (Ref, Code)
	GetPid(el Ref) (int, Code)
	SetMessagingTimeout(el Ref, seconds float32) Code
}

// ProcessTable answers whether a process is still alive.
type ProcessTable interface {
	Running(pid int) bool
}

// RunLoop pumps the host event loop.
type RunLoop interface {
	// Spin blocks for d while processing pending events. A zero duration
	// runs the loop once.
	Spin(d time.Duration)
}

// TrustChecker reports whether the process may control the UI, optionally
// asking the OS to prompt the user.
type TrustChecker interface {
	IsTrusted(prompt bool) bool
}
