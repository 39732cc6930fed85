// Package axtest provides an in-memory accessibility backend for tests.
//
// Every object handed out by the Backend is reference counted. Tests build a
// tree of Nodes, inject status codes per method, and then assert on call
// counts and reference counts.
package axtest

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/mj1618/axcore/internal/ax"
)

// Method names accepted by Node.Fail and counted by Backend.Calls.
const (
	MethodCopyAttributeNames              = "CopyAttributeNames"
	MethodCopyAttributeValue              = "CopyAttributeValue"
	MethodGetAttributeValueCount          = "GetAttributeValueCount"
	MethodIsAttributeSettable             = "IsAttributeSettable"
	MethodSetAttributeValue               = "SetAttributeValue"
	MethodCreateObject                    = "CreateObject"
	MethodCopyParameterizedAttributeNames = "CopyParameterizedAttributeNames"
	MethodCopyParameterizedAttributeValue = "CopyParameterizedAttributeValue"
	MethodCopyActionNames                 = "CopyActionNames"
	MethodPerformAction                   = "PerformAction"
	MethodPostKeyboardEvent               = "PostKeyboardEvent"
	MethodCopyElementAtPosition           = "CopyElementAtPosition"
	MethodGetPid                          = "GetPid"
	MethodSetMessagingTimeout             = "SetMessagingTimeout"
)

// ParamFunc answers a parameterized attribute query.
type ParamFunc func(param ax.Value) ax.Value

// Node is a fake UI element.
type Node struct {
	Name     string
	PID      int
	Attrs    map[string]ax.Value
	Settable map[string]bool
	Params   map[string]ParamFunc
	Actions  []string
	// HitTest answers CopyElementAtPosition; nil means no element there.
	HitTest func(p ax.Point) *Node

	// Recorded side effects.
	Performed []string
	Events    []ax.KeyEvent
	Timeout   float32

	status map[string]ax.Code
	ref    ax.Ref
}

// Fail makes method return code on this node until Clear is called.
func (n *Node) Fail(method string, code ax.Code) *Node {
	if n.status == nil {
		n.status = map[string]ax.Code{}
	}
	n.status[method] = code
	return n
}

// Clear removes an injected status.
func (n *Node) Clear(method string) {
	delete(n.status, method)
}

// Set stores attr and returns n for chaining.
func (n *Node) Set(attr string, v ax.Value) *Node {
	if n.Attrs == nil {
		n.Attrs = map[string]ax.Value{}
	}
	n.Attrs[attr] = v
	return n
}

type object struct {
	refs  int
	node  *Node
	value ax.Value
	desc  string
}

// Backend is an ax.Backend over a tree of Nodes.
type Backend struct {
	mu      sync.Mutex
	next    ax.Ref
	objects map[ax.Ref]*object
	freed   map[ax.Ref]bool
	calls   map[string]int
	apps    map[int]*Node

	// SystemWide is the node returned by CreateSystemWide. Its GetPid fails
	// with an invalid element status, as the real framework does.
	SystemWide *Node
	// OverReleased counts Release calls on objects that were already freed.
	OverReleased int
	// CreateErr, when set, is returned by CreateObject.
	CreateErr error
}

var _ ax.Backend = (*Backend)(nil)

// NewBackend returns an empty backend with a system-wide node.
func NewBackend() *Backend {
	b := &Backend{
		next:    0x1000,
		objects: map[ax.Ref]*object{},
		freed:   map[ax.Ref]bool{},
		calls:   map[string]int{},
		apps:    map[int]*Node{},
	}
	b.SystemWide = &Node{Name: "system-wide"}
	b.SystemWide.Fail(MethodGetPid, ax.InvalidUIElement)
	b.Add(b.SystemWide)
	return b
}

// Add registers n and returns its reference. The backend holds one
// reference for the life of the test, as the owning application would.
func (b *Backend) Add(n *Node) ax.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addLocked(n)
}

func (b *Backend) addLocked(n *Node) ax.Ref {
	if n.ref != 0 {
		return n.ref
	}
	n.ref = b.alloc(&object{node: n, desc: fmt.Sprintf("<AXUIElement %s>", n.Name)})
	return n.ref
}

// AddApp registers n as the application element for its PID.
func (b *Backend) AddApp(n *Node) ax.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.apps[n.PID] = n
	return b.addLocked(n)
}

// Ref returns the element reference for n as an ElementRef value.
func (b *Backend) Ref(n *Node) ax.ElementRef {
	return ax.ElementRef{Ref: b.Add(n)}
}

// NewAttributedString creates a rich text object held by the backend.
func (b *Backend) NewAttributedString(text string) ax.AttributedString {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := ax.StringOf(text)
	ref := b.alloc(&object{value: s, desc: text})
	return ax.AttributedString{Ref: ref, Text: s}
}

func (b *Backend) alloc(o *object) ax.Ref {
	b.next++
	o.refs = 1
	b.objects[b.next] = o
	return b.next
}

// own returns a new owned object holding v, as a Copy call would.
func (b *Backend) own(v ax.Value) ax.Ref {
	return b.alloc(&object{value: v, desc: fmt.Sprintf("%v", v)})
}

// RefCount returns the current reference count of ref, 0 once freed.
func (b *Backend) RefCount(ref ax.Ref) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if o, ok := b.objects[ref]; ok {
		return o.refs
	}
	return 0
}

// Live returns the number of objects that have not been freed.
func (b *Backend) Live() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.objects)
}

// Calls returns how many times method was invoked.
func (b *Backend) Calls(method string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls[method]
}

func (b *Backend) node(method string, ref ax.Ref) (*Node, ax.Code) {
	b.calls[method]++
	o, ok := b.objects[ref]
	if !ok || o.node == nil {
		return nil, ax.IllegalArgument
	}
	if code, ok := o.node.status[method]; ok {
		return o.node, code
	}
	return o.node, ax.Success
}

func (b *Backend) Inspect(obj ax.Ref) ax.Value {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.objects[obj]
	if !ok {
		return ax.Unknown{Description: fmt.Sprintf("freed object %#x", uintptr(obj))}
	}
	if o.node != nil {
		return ax.ElementRef{Ref: obj}
	}
	return o.value
}

func (b *Backend) Describe(obj ax.Ref) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if o, ok := b.objects[obj]; ok {
		return o.desc
	}
	return fmt.Sprintf("<freed %#x>", uintptr(obj))
}

func (b *Backend) Retain(obj ax.Ref) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if o, ok := b.objects[obj]; ok {
		o.refs++
	}
}

func (b *Backend) Release(obj ax.Ref) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.objects[obj]
	if !ok {
		b.OverReleased++
		return
	}
	o.refs--
	if o.refs == 0 {
		delete(b.objects, obj)
		b.freed[obj] = true
		if o.node != nil {
			o.node.ref = 0
		}
	}
}

func (b *Backend) Equal(x, y ax.Ref) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	ox, okx := b.objects[x]
	oy, oky := b.objects[y]
	if !okx || !oky {
		return x == y
	}
	if ox.node != nil || oy.node != nil {
		return ox.node == oy.node
	}
	return x == y
}

func (b *Backend) CreateSystemWide() ax.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	ref := b.addLocked(b.SystemWide)
	b.objects[ref].refs++
	return ref
}

func (b *Backend) CreateApplication(pid int) ax.Ref {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, ok := b.apps[pid]
	if !ok {
		n = &Node{Name: fmt.Sprintf("application pid=%d", pid), PID: pid}
		b.apps[pid] = n
	}
	ref := b.addLocked(n)
	b.objects[ref].refs++
	return ref
}

func (b *Backend) CopyAttributeNames(el ax.Ref) (ax.Ref, ax.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodCopyAttributeNames, el)
	if code != ax.Success {
		return 0, code
	}
	names := make([]string, 0, len(n.Attrs))
	for name := range n.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	return b.own(stringArray(names)), ax.Success
}

func (b *Backend) CopyAttributeValue(el ax.Ref, name string) (ax.Ref, ax.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodCopyAttributeValue, el)
	if code != ax.Success {
		return 0, code
	}
	v, ok := n.Attrs[name]
	if !ok {
		return 0, ax.AttributeUnsupported
	}
	if v == nil {
		return 0, ax.NoValue
	}
	if ref, ok := v.(ax.ElementRef); ok {
		b.objects[ref.Ref].refs++
		return ref.Ref, ax.Success
	}
	return b.own(v), ax.Success
}

func (b *Backend) GetAttributeValueCount(el ax.Ref, name string) (int, ax.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodGetAttributeValueCount, el)
	if code != ax.Success {
		return 0, code
	}
	v, ok := n.Attrs[name]
	if !ok {
		return 0, ax.AttributeUnsupported
	}
	arr, ok := v.(ax.Array)
	if !ok {
		return 0, ax.IllegalArgument
	}
	return len(arr), ax.Success
}

func (b *Backend) IsAttributeSettable(el ax.Ref, name string) (bool, ax.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodIsAttributeSettable, el)
	if code != ax.Success {
		return false, code
	}
	if _, ok := n.Attrs[name]; !ok {
		return false, ax.AttributeUnsupported
	}
	return n.Settable[name], ax.Success
}

// CreateObject stores v in a new owned object.
func (b *Backend) CreateObject(v ax.Value) (ax.Ref, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls[MethodCreateObject]++
	if b.CreateErr != nil {
		return 0, b.CreateErr
	}
	return b.own(v), nil
}

// value returns the Value held by obj as SetAttributeValue would receive it.
func (b *Backend) value(obj ax.Ref) (ax.Value, bool) {
	o, ok := b.objects[obj]
	if !ok {
		return nil, false
	}
	if o.node != nil {
		return ax.ElementRef{Ref: obj}, true
	}
	return o.value, true
}

func (b *Backend) SetAttributeValue(el ax.Ref, name string, obj ax.Ref) ax.Code {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodSetAttributeValue, el)
	if code != ax.Success {
		return code
	}
	v, ok := b.value(obj)
	if !ok {
		return ax.IllegalArgument
	}
	if _, ok := n.Attrs[name]; !ok {
		return ax.AttributeUnsupported
	}
	if !n.Settable[name] {
		return ax.IllegalArgument
	}
	n.Attrs[name] = v
	return ax.Success
}

func (b *Backend) CopyParameterizedAttributeNames(el ax.Ref) (ax.Ref, ax.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodCopyParameterizedAttributeNames, el)
	if code != ax.Success {
		return 0, code
	}
	names := make([]string, 0, len(n.Params))
	for name := range n.Params {
		names = append(names, name)
	}
	sort.Strings(names)
	return b.own(stringArray(names)), ax.Success
}

func (b *Backend) CopyParameterizedAttributeValue(el ax.Ref, name string, obj ax.Ref) (ax.Ref, ax.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodCopyParameterizedAttributeValue, el)
	if code != ax.Success {
		return 0, code
	}
	param, ok := b.value(obj)
	if !ok {
		return 0, ax.IllegalArgument
	}
	fn, ok := n.Params[name]
	if !ok {
		return 0, ax.ParameterizedAttributeUnsupported
	}
	v := fn(param)
	if v == nil {
		return 0, ax.NoValue
	}
	return b.own(v), ax.Success
}

func (b *Backend) CopyActionNames(el ax.Ref) (ax.Ref, ax.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodCopyActionNames, el)
	if code != ax.Success {
		return 0, code
	}
	return b.own(stringArray(n.Actions)), ax.Success
}

func (b *Backend) PerformAction(el ax.Ref, action string) ax.Code {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodPerformAction, el)
	if code != ax.Success {
		return code
	}
	for _, a := range n.Actions {
		if a == action {
			n.Performed = append(n.Performed, action)
			return ax.Success
		}
	}
	return ax.ActionUnsupported
}

func (b *Backend) PostKeyboardEvent(el ax.Ref, key uint16, down bool) ax.Code {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodPostKeyboardEvent, el)
	if code != ax.Success {
		return code
	}
	n.Events = append(n.Events, ax.KeyEvent{Key: key, Down: down})
	return ax.Success
}

func (b *Backend) CopyElementAtPosition(el ax.Ref, x, y float32) (ax.Ref, ax.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodCopyElementAtPosition, el)
	if code != ax.Success {
		return 0, code
	}
	if n.HitTest == nil {
		return 0, ax.NoValue
	}
	hit := n.HitTest(ax.Point{X: float64(x), Y: float64(y)})
	if hit == nil {
		return 0, ax.NoValue
	}
	ref := b.addLocked(hit)
	b.objects[ref].refs++
	return ref, ax.Success
}

func (b *Backend) GetPid(el ax.Ref) (int, ax.Code) {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodGetPid, el)
	if code != ax.Success {
		return 0, code
	}
	return n.PID, ax.Success
}

func (b *Backend) SetMessagingTimeout(el ax.Ref, seconds float32) ax.Code {
	b.mu.Lock()
	defer b.mu.Unlock()
	n, code := b.node(MethodSetMessagingTimeout, el)
	if code != ax.Success {
		return code
	}
	n.Timeout = seconds
	return ax.Success
}

func stringArray(names []string) ax.Array {
	out := make(ax.Array, 0, len(names))
	for _, n := range names {
		out = append(out, ax.StringOf(n))
	}
	return out
}

// Processes is a ProcessTable backed by a set of live pids.
type Processes map[int]bool

func (p Processes) Running(pid int) bool { return p[pid] }

// RunLoop records spins without blocking.
type RunLoop struct {
	mu    sync.Mutex
	Spins []time.Duration
}

func (r *RunLoop) Spin(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Spins = append(r.Spins, d)
}

// Count returns the number of recorded spins.
func (r *RunLoop) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Spins)
}

// Trust is a fixed TrustChecker. Prompted records whether a prompt was asked for.
type Trust struct {
	Trusted  bool
	Prompted bool
}

func (t *Trust) IsTrusted(prompt bool) bool {
	t.Prompted = t.Prompted || prompt
	return t.Trusted
}

// Sleeper records sleeps instead of blocking.
type Sleeper struct {
	mu    sync.Mutex
	Slept []time.Duration
}

func (s *Sleeper) Sleep(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Slept = append(s.Slept, d)
}
