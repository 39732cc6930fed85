package ax

import (
	"errors"
	"fmt"
	"strings"
)

// Code mirrors AXError, the status every accessibility call returns.
type Code int32

const (
	Success                           Code = 0
	Failure                           Code = -25200
	IllegalArgument                   Code = -25201
	InvalidUIElement                  Code = -25202
	InvalidUIElementObserver          Code = -25203
	CannotComplete                    Code = -25204
	AttributeUnsupported              Code = -25205
	ActionUnsupported                 Code = -25206
	NotificationUnsupported           Code = -25207
	NotImplemented                    Code = -25208
	NotificationAlreadyRegistered     Code = -25209
	NotificationNotRegistered         Code = -25210
	APIDisabled                       Code = -25211
	NoValue                           Code = -25212
	ParameterizedAttributeUnsupported Code = -25213
	NotEnoughPrecision                Code = -25214
)

var codeNames = map[Code]string{
	Success:                           "success",
	Failure:                           "failure",
	IllegalArgument:                   "illegal argument",
	InvalidUIElement:                  "invalid element",
	InvalidUIElementObserver:          "invalid observer",
	CannotComplete:                    "cannot complete",
	AttributeUnsupported:              "attribute unsupported",
	ActionUnsupported:                 "action unsupported",
	NotificationUnsupported:           "notification unsupported",
	NotImplemented:                    "not implemented",
	NotificationAlreadyRegistered:     "notification already registered",
	NotificationNotRegistered:         "notification not registered",
	APIDisabled:                       "api disabled",
	NoValue:                           "no value",
	ParameterizedAttributeUnsupported: "parameterized attribute unsupported",
	NotEnoughPrecision:                "not enough precision",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("unknown AXError %d", int32(c))
}

var (
	// ErrConversion is returned when a value has a type the bridge cannot convert.
	ErrConversion = errors.New("conversion error")
	// ErrInvalidArgument is returned for malformed input, before any framework call.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedConversion is returned for host values with no foreign equivalent.
	ErrUnsupportedConversion = errors.New("unsupported conversion")
	// ErrStatus matches every non-benign accessibility status.
	ErrStatus = errors.New("accessibility status error")
	// ErrPermissionDenied means the process is not trusted for accessibility control.
	ErrPermissionDenied = errors.New("accessibility permission denied")
	// ErrUnreachableApplication means a call could not complete and the target process is gone.
	ErrUnreachableApplication = errors.New("application unreachable")
	// ErrBusy means a call could not complete but the target process is still running.
	ErrBusy = errors.New("application busy")
)

// Per-code sentinels; a *StatusError matches the one for its Code.
var (
	ErrFailure                           = &codeError{Failure}
	ErrIllegalArgument                   = &codeError{IllegalArgument}
	ErrInvalidElement                    = &codeError{InvalidUIElement}
	ErrInvalidObserver                   = &codeError{InvalidUIElementObserver}
	ErrCannotComplete                    = &codeError{CannotComplete}
	ErrAttributeUnsupported              = &codeError{AttributeUnsupported}
	ErrActionUnsupported                 = &codeError{ActionUnsupported}
	ErrNotificationUnsupported           = &codeError{NotificationUnsupported}
	ErrNotImplemented                    = &codeError{NotImplemented}
	ErrNotificationAlreadyRegistered     = &codeError{NotificationAlreadyRegistered}
	ErrNotificationNotRegistered         = &codeError{NotificationNotRegistered}
	ErrAPIDisabled                       = &codeError{APIDisabled}
	ErrNoValue                           = &codeError{NoValue}
	ErrParameterizedAttributeUnsupported = &codeError{ParameterizedAttributeUnsupported}
	ErrNotEnoughPrecision                = &codeError{NotEnoughPrecision}
)

type codeError struct {
	code Code
}

func (e *codeError) Error() string {
	return e.code.String()
}

// Direction says which way a failed conversion was going.
type Direction int

const (
	ToHost Direction = iota
	ToForeign
)

// ConversionError reports a value the bridge could not convert.
type ConversionError struct {
	Direction Direction
	Kind      Kind   // foreign kind, for ToHost
	Type      string // Go type or foreign description
	Reason    string
}

func (e *ConversionError) Error() string {
	if e.Direction == ToForeign {
		return fmt.Sprintf("don't know how to convert %s to a foreign value", e.Type)
	}
	if e.Reason != "" {
		return fmt.Sprintf("cannot convert %s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("don't know how to convert %s objects yet", e.Type)
}

// Is matches ErrConversion always, and ErrUnsupportedConversion plus
// ErrInvalidArgument for host values with no foreign form.
func (e *ConversionError) Is(target error) bool {
	switch target {
	case ErrConversion:
		return true
	case ErrUnsupportedConversion, ErrInvalidArgument:
		return e.Direction == ToForeign
	}
	return false
}

// StatusError is a non-benign accessibility status raised by an element
// operation.
type StatusError struct {
	Code    Code
	Op      Op
	Element string // framework description of the receiver
	PID     int    // target process, when known
	Args    []any  // operation arguments (attribute, action, value, point)

	busy        bool
	unreachable bool
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s [%d]: %s", e.Op, int32(e.Code), e.message())
}

func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrStatus:
		return true
	case ErrBusy:
		return e.busy
	case ErrUnreachableApplication:
		return e.unreachable
	}
	if ce, ok := target.(*codeError); ok {
		return ce.code == e.Code
	}
	return false
}

func (e *StatusError) arg(i int) string {
	if i < len(e.Args) {
		return fmt.Sprintf("%v", e.Args[i])
	}
	return ""
}

func (e *StatusError) message() string {
	el := e.Element
	switch e.Code {
	case Failure:
		return fmt.Sprintf("a system failure occurred with %s, stopping to be safe", el)
	case IllegalArgument:
		switch len(e.Args) {
		case 0:
			return fmt.Sprintf("%s is not an AXUIElementRef", el)
		case 1:
			if e.Op == OpElementAt {
				return fmt.Sprintf("the point %s is not a valid point, or %s is not an AXUIElementRef", e.arg(0), el)
			}
			return fmt.Sprintf("either the element %s or the attribute/action %q is not a legal argument", el, e.arg(0))
		default:
			return fmt.Sprintf("you can't get/set %q with/to %s for %s", e.arg(0), e.arg(1), el)
		}
	case InvalidUIElement:
		return fmt.Sprintf("%s is no longer a valid reference", el)
	case InvalidUIElementObserver, NotificationUnsupported,
		NotificationAlreadyRegistered, NotificationNotRegistered:
		return "notifications are not supported"
	case CannotComplete:
		if e.unreachable {
			return fmt.Sprintf("application for pid=%d is no longer running, maybe it crashed?", e.PID)
		}
		return fmt.Sprintf("an unspecified error occurred using %s, maybe a timeout", el)
	case AttributeUnsupported:
		return fmt.Sprintf("%s does not have a %q attribute", el, e.arg(0))
	case ActionUnsupported:
		return fmt.Sprintf("%s does not have a %q action", el, e.arg(0))
	case NotImplemented:
		return fmt.Sprintf("the program that owns %s does not work with AXAPI properly", el)
	case APIDisabled:
		return "AXAPI has been disabled"
	case NoValue:
		return fmt.Sprintf("%s has no value for %s", el, strings.TrimSpace(e.arg(0)))
	case ParameterizedAttributeUnsupported:
		return fmt.Sprintf("%s does not have a %q parameterized attribute", el, e.arg(0))
	case NotEnoughPrecision:
		return "AXAPI said there was not enough precision"
	default:
		return fmt.Sprintf("an unknown error code was returned by %s", el)
	}
}
