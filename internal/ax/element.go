package ax

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Well-known attribute names.
const (
	AttrRole     = "AXRole"
	AttrSubrole  = "AXSubrole"
	AttrTitle    = "AXTitle"
	AttrValue    = "AXValue"
	AttrParent   = "AXParent"
	AttrChildren = "AXChildren"
	AttrPosition = "AXPosition"
	AttrSize     = "AXSize"
	AttrFrame    = "AXFrame"
	AttrEnabled  = "AXEnabled"
	AttrFocused  = "AXFocused"
	AttrDesc     = "AXDescription"
)

// Element owns one reference to an accessibility element. It is not safe for
// concurrent use. Close releases the reference; an Element must not be used
// after it is closed.
//
// The attribute, parameterized attribute and action lists and the pid are
// fetched once and kept for the life of the Element.
type Element struct {
	client *Client
	ref    Ref
	closed atomic.Bool

	attrs      []string
	paramAttrs []string
	actions    []string
	pid        int
	pidKnown   bool
}

// Ref returns the underlying reference without retaining it.
func (e *Element) Ref() Ref {
	return e.ref
}

// Close releases the element. Calling it more than once is a no-op.
func (e *Element) Close() error {
	if e.closed.CompareAndSwap(false, true) {
		e.client.backend.Release(e.ref)
	}
	return nil
}

// String returns the framework description of the element.
func (e *Element) String() string {
	if e == nil {
		return "<nil element>"
	}
	return e.client.backend.Describe(e.ref)
}

// Equal reports whether both handles refer to the same UI element.
func (e *Element) Equal(other *Element) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.client.backend.Equal(e.ref, other.ref)
}

// IsSystemWide reports whether e is the system-wide element.
func (e *Element) IsSystemWide() bool {
	return e.client.isSystemWide(e.ref)
}

// Invalid reports whether the element no longer exists. It asks for the
// role and looks for an invalid element status.
func (e *Element) Invalid() bool {
	raw, code := e.client.backend.CopyAttributeValue(e.ref, AttrRole)
	if code == Success {
		e.client.backend.Release(raw)
	}
	return code == InvalidUIElement
}

// check classifies a failed status. The error is non-nil only when the
// operation raises.
func (e *Element) check(op Op, code Code, args ...any) (Outcome, error) {
	out := Classify(op, code)
	if out == Raise {
		return out, e.client.statusError(op, e, code, args...)
	}
	return out, nil
}

// Attributes lists the element's attribute names.
func (e *Element) Attributes() ([]string, error) {
	if e.attrs != nil {
		return e.attrs, nil
	}
	raw, code := e.client.backend.CopyAttributeNames(e.ref)
	if code != Success {
		if _, err := e.check(OpAttributes, code); err != nil {
			return nil, err
		}
		e.attrs = []string{}
		return e.attrs, nil
	}
	names, err := e.client.names(raw)
	if err != nil {
		return nil, err
	}
	e.attrs = names
	return names, nil
}

// Attribute returns the converted value of name, or nil when the element
// has no value for it, is invalid, or does not support it.
func (e *Element) Attribute(name string) (any, error) {
	return e.attribute(OpAttribute, name)
}

func (e *Element) attribute(op Op, name string) (any, error) {
	raw, code := e.client.backend.CopyAttributeValue(e.ref, name)
	if code != Success {
		_, err := e.check(op, code, name)
		return nil, err
	}
	return e.client.decode(raw)
}

// Value is Attribute(AXValue).
func (e *Element) Value() (any, error) {
	return e.Attribute(AttrValue)
}

// Role returns the AXRole, or "" when it has none.
func (e *Element) Role() (string, error) {
	return e.stringAttribute(OpRole, AttrRole)
}

// Subrole returns the AXSubrole, or "" when it has none.
func (e *Element) Subrole() (string, error) {
	return e.stringAttribute(OpSubrole, AttrSubrole)
}

func (e *Element) stringAttribute(op Op, name string) (string, error) {
	v, err := e.attribute(op, name)
	if err != nil || v == nil {
		return "", err
	}
	s, ok := v.(string)
	if !ok {
		return "", &ConversionError{Direction: ToHost, Kind: KindString, Reason: fmt.Sprintf("%s is %T", name, v)}
	}
	return s, nil
}

// Parent returns the parent element, or nil at the root.
func (e *Element) Parent() (*Element, error) {
	v, err := e.attribute(OpParent, AttrParent)
	if err != nil || v == nil {
		return nil, err
	}
	p, ok := v.(*Element)
	if !ok {
		return nil, &ConversionError{Direction: ToHost, Kind: KindElement, Reason: fmt.Sprintf("%s is %T", AttrParent, v)}
	}
	return p, nil
}

// Children returns the child elements. The caller owns them.
func (e *Element) Children() ([]*Element, error) {
	v, err := e.attribute(OpChildren, AttrChildren)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return []*Element{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, &ConversionError{Direction: ToHost, Kind: KindArray, Reason: fmt.Sprintf("%s is %T", AttrChildren, v)}
	}
	out := make([]*Element, 0, len(list))
	for _, c := range list {
		child, ok := c.(*Element)
		if !ok {
			CloseAll(out)
			return nil, &ConversionError{Direction: ToHost, Kind: KindElement, Reason: fmt.Sprintf("child is %T", c)}
		}
		out = append(out, child)
	}
	return out, nil
}

// SizeOf returns the number of values in the array attribute name.
func (e *Element) SizeOf(name string) (int, error) {
	n, code := e.client.backend.GetAttributeValueCount(e.ref, name)
	if code != Success {
		_, err := e.check(OpSizeOf, code, name)
		return 0, err
	}
	return n, nil
}

// Writable reports whether name can be set.
func (e *Element) Writable(name string) (bool, error) {
	ok, code := e.client.backend.IsAttributeSettable(e.ref, name)
	if code != Success {
		_, err := e.check(OpWritable, code, name)
		return false, err
	}
	return ok, nil
}

// Set writes v to name and returns v.
func (e *Element) Set(name string, v any) (any, error) {
	obj, err := e.client.create(v)
	if err != nil {
		return nil, fmt.Errorf("set %s: %w", name, err)
	}
	defer e.client.backend.Release(obj)
	if code := e.client.backend.SetAttributeValue(e.ref, name, obj); code != Success {
		_, err := e.check(OpSet, code, name, v)
		return nil, err
	}
	return v, nil
}

// ParameterizedAttributes lists the element's parameterized attribute names.
func (e *Element) ParameterizedAttributes() ([]string, error) {
	if e.paramAttrs != nil {
		return e.paramAttrs, nil
	}
	raw, code := e.client.backend.CopyParameterizedAttributeNames(e.ref)
	if code != Success {
		if _, err := e.check(OpParameterizedAttributes, code); err != nil {
			return nil, err
		}
		e.paramAttrs = []string{}
		return e.paramAttrs, nil
	}
	names, err := e.client.names(raw)
	if err != nil {
		return nil, err
	}
	e.paramAttrs = names
	return names, nil
}

// ParameterizedAttribute returns the value of name for param.
func (e *Element) ParameterizedAttribute(name string, param any) (any, error) {
	obj, err := e.client.create(param)
	if err != nil {
		return nil, fmt.Errorf("%s parameter: %w", name, err)
	}
	defer e.client.backend.Release(obj)
	raw, code := e.client.backend.CopyParameterizedAttributeValue(e.ref, name, obj)
	if code != Success {
		_, err := e.check(OpParameterizedAttribute, code, name, param)
		return nil, err
	}
	return e.client.decode(raw)
}

// Actions lists the element's action names.
func (e *Element) Actions() ([]string, error) {
	if e.actions != nil {
		return e.actions, nil
	}
	raw, code := e.client.backend.CopyActionNames(e.ref)
	if code != Success {
		if _, err := e.check(OpActions, code); err != nil {
			return nil, err
		}
		e.actions = []string{}
		return e.actions, nil
	}
	names, err := e.client.names(raw)
	if err != nil {
		return nil, err
	}
	e.actions = names
	return names, nil
}

// Perform triggers action. It returns false when the element is invalid.
func (e *Element) Perform(action string) (bool, error) {
	if code := e.client.backend.PerformAction(e.ref, action); code != Success {
		_, err := e.check(OpPerform, code, action)
		return false, err
	}
	return true, nil
}

// ElementAt hit-tests p (top-left origin screen coordinates) within the
// element's application. When the element is invalid the lookup is repeated
// once against the system-wide element.
func (e *Element) ElementAt(p Point) (*Element, error) {
	raw, code := e.client.backend.CopyElementAtPosition(e.ref, float32(p.X), float32(p.Y))
	if code == Success {
		return e.client.wrap(raw, false), nil
	}
	out, err := e.check(OpElementAt, code, p)
	if err != nil || out != RetrySystemWide {
		return nil, err
	}
	if e.IsSystemWide() {
		return nil, nil
	}
	e.client.logger.Debug("element invalid, retrying hit test on system-wide element", "point", p.String())
	sw := e.client.SystemWide()
	defer sw.Close()
	return sw.ElementAt(p)
}

// PID returns the process identifier of the element's application. The
// system-wide element reports 0.
func (e *Element) PID() (int, error) {
	if e.pidKnown {
		return e.pid, nil
	}
	pid, code := e.client.backend.GetPid(e.ref)
	if code != Success {
		out, err := e.check(OpPID, code)
		if err != nil {
			return 0, err
		}
		if out != ZeroIfSystemWide || !e.IsSystemWide() {
			return 0, e.client.statusError(OpPID, e, code)
		}
		pid = 0
	}
	e.pid, e.pidKnown = pid, true
	return pid, nil
}

// pidHint is the pid used for error reporting. It never raises.
func (e *Element) pidHint() int {
	if e.pidKnown {
		return e.pid
	}
	pid, code := e.client.backend.GetPid(e.ref)
	if code != Success {
		return 0
	}
	return pid
}

// Application returns the application element that owns e.
func (e *Element) Application() (*Element, error) {
	pid, err := e.PID()
	if err != nil {
		return nil, err
	}
	return e.client.Application(pid)
}

// SetTimeout sets the messaging timeout for calls on this element. Zero
// restores the global default.
func (e *Element) SetTimeout(seconds float64) (float64, error) {
	if seconds < 0 {
		return 0, fmt.Errorf("%w: negative timeout %v", ErrInvalidArgument, seconds)
	}
	if code := e.client.backend.SetMessagingTimeout(e.ref, float32(seconds)); code != Success {
		_, err := e.check(OpSetTimeout, code, seconds)
		return 0, err
	}
	return seconds, nil
}

// Post sends keyboard events to the element's application, waiting the
// client's key rate after each one.
func (e *Element) Post(events []KeyEvent) error {
	for _, ev := range events {
		if code := e.client.backend.PostKeyboardEvent(e.ref, ev.Key, ev.Down); code != Success {
			_, err := e.check(OpPost, code, ev.Key)
			return err
		}
		e.client.sleep(e.client.keyRate)
	}
	e.client.sleep(settleDelay)
	return nil
}

// Timeout converts a duration to the seconds SetTimeout takes.
func Timeout(d time.Duration) float64 {
	return d.Seconds()
}

// CloseAll closes every element in list.
func CloseAll(list []*Element) {
	for _, el := range list {
		if el != nil {
			el.Close()
		}
	}
}

// CloseValue releases every element and attributed string reachable from a
// host value returned by the bridge.
func CloseValue(v any) {
	switch v := v.(type) {
	case *Element:
		v.Close()
	case *AttributedText:
		v.Close()
	case []*Element:
		CloseAll(v)
	case []any:
		for _, item := range v {
			CloseValue(item)
		}
	case map[string]any:
		for _, item := range v {
			CloseValue(item)
		}
	}
}
