package model

import (
	"errors"
	"testing"

	"github.com/mj1618/axcore/internal/ax"
	"github.com/mj1618/axcore/internal/ax/axtest"
)

func node(b *axtest.Backend, name, role, title string, kids ...*axtest.Node) *axtest.Node {
	n := &axtest.Node{Name: name, PID: 7}
	n.Set(ax.AttrRole, ax.StringOf(role))
	if title != "" {
		n.Set(ax.AttrTitle, ax.StringOf(title))
	}
	if len(kids) > 0 {
		refs := make(ax.Array, len(kids))
		for i, k := range kids {
			refs[i] = b.Ref(k)
		}
		n.Set(ax.AttrChildren, refs)
	}
	return n
}

func snapshotFixture(t *testing.T) (*axtest.Backend, *ax.Element) {
	t.Helper()
	b := axtest.NewBackend()
	ok := node(b, "ok", "AXButton", "OK")
	ok.Actions = []string{"AXPress"}
	ok.Set(ax.AttrPosition, ax.Boxed{Type: ax.BoxPoint, Point: ax.Point{X: 10.4, Y: 20.6}})
	ok.Set(ax.AttrSize, ax.Boxed{Type: ax.BoxSize, Size: ax.Size{Width: 80, Height: 24}})
	ok.Set(ax.AttrEnabled, ax.Boolean(false))
	field := node(b, "field", "AXTextField", "")
	field.Set(ax.AttrValue, ax.StringOf("typed"))
	field.Set(ax.AttrFocused, ax.Boolean(true))
	group := node(b, "group", "AXGroup", "", ok, field)
	window := node(b, "window", "AXWindow", "Main", group)

	c, err := ax.NewClient(b, axtest.Processes{}, &axtest.RunLoop{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	v, err := c.Bridge().ToHost(b.Ref(window))
	if err != nil {
		t.Fatal(err)
	}
	root := v.(*ax.Element)
	t.Cleanup(func() { root.Close() })
	return b, root
}

func TestSnapshot_Tree(t *testing.T) {
	b, root := snapshotFixture(t)
	live := b.Live()

	tree, err := Snapshot(root, TreeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if tree.ID != 1 || tree.Role != "AXWindow" || tree.Subrole != "" || tree.Title != "Main" {
		t.Errorf("unexpected root: %+v", tree)
	}
	if tree.Child != "" {
		t.Errorf("root child path should be empty, got %q", tree.Child)
	}
	if len(tree.Children) != 1 || len(tree.Children[0].Children) != 2 {
		t.Fatalf("unexpected shape: %+v", tree)
	}
	group := tree.Children[0]
	if group.ID != 2 || group.Child != "0" {
		t.Errorf("group: got id=%d child=%q", group.ID, group.Child)
	}
	ok, field := group.Children[0], group.Children[1]
	if ok.ID != 3 || ok.Child != "0,0" || field.ID != 4 || field.Child != "0,1" {
		t.Errorf("unexpected ids/paths: %d %q, %d %q", ok.ID, ok.Child, field.ID, field.Child)
	}
	if ok.Bounds != [4]int{10, 21, 80, 24} {
		t.Errorf("unexpected bounds: %v", ok.Bounds)
	}
	if ok.Enabled == nil || *ok.Enabled {
		t.Error("expected enabled=false")
	}
	if len(ok.Actions) != 1 || ok.Actions[0] != "AXPress" {
		t.Errorf("unexpected actions: %v", ok.Actions)
	}
	if field.Value != "typed" || !field.Focused || field.Enabled != nil {
		t.Errorf("unexpected field: %+v", field)
	}

	if got := b.Live(); got != live {
		t.Errorf("snapshot leaked objects: live %d, want %d", got, live)
	}
}

func TestSnapshot_Depth(t *testing.T) {
	_, root := snapshotFixture(t)
	tree, err := Snapshot(root, TreeOptions{Depth: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Children) != 1 {
		t.Fatalf("expected the group at depth 2, got %d children", len(tree.Children))
	}
	if len(tree.Children[0].Children) != 0 {
		t.Errorf("depth 2 should stop at the group, got %d children", len(tree.Children[0].Children))
	}
}

func TestSnapshot_FlattenAndFilter(t *testing.T) {
	_, root := snapshotFixture(t)
	tree, err := Snapshot(root, TreeOptions{})
	if err != nil {
		t.Fatal(err)
	}
	flat := Flatten(PruneEmptyGroups([]Element{tree}))
	if len(flat) != 3 {
		t.Fatalf("expected window, button and field, got %d", len(flat))
	}
	if flat[1].Path != "Window > Button" || flat[1].Depth != 1 {
		t.Errorf("unexpected path %q", flat[1].Path)
	}
	btns := FilterElements([]Element{tree}, []string{"button"}, nil)
	if len(btns) != 1 || btns[0].Title != "OK" {
		t.Errorf("unexpected filter result: %+v", btns)
	}
}

func TestDescribe_RoleAndSubrole(t *testing.T) {
	b := axtest.NewBackend()
	search := node(b, "search", "AXTextField", "")
	search.Set(ax.AttrSubrole, ax.StringOf("AXSearchField"))
	bare := &axtest.Node{Name: "bare", PID: 7}
	root := node(b, "text", "AXStaticText", "", search, bare)

	c, err := ax.NewClient(b, axtest.Processes{}, &axtest.RunLoop{})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	v, err := c.Bridge().ToHost(b.Ref(root))
	if err != nil {
		t.Fatal(err)
	}
	el := v.(*ax.Element)
	defer el.Close()

	tree, err := Snapshot(el, TreeOptions{})
	if err != nil {
		t.Fatalf("element without AXSubrole: %v", err)
	}
	if tree.Role != "AXStaticText" || tree.Subrole != "" {
		t.Errorf("unexpected root: %+v", tree)
	}
	if len(tree.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(tree.Children))
	}
	if got := tree.Children[0]; got.Role != "AXTextField" || got.Subrole != "AXSearchField" {
		t.Errorf("unexpected search field: %+v", got)
	}
	if got := tree.Children[1]; got.Role != "" || got.Subrole != "" {
		t.Errorf("element without a role: %+v", got)
	}

	search.Fail(axtest.MethodCopyAttributeValue, ax.Failure)
	if _, err := Snapshot(el, TreeOptions{}); !errors.Is(err, ax.ErrFailure) {
		t.Errorf("expected a failure to propagate, got %v", err)
	}
}

func TestDescribe_ClosesValuesOnError(t *testing.T) {
	b := axtest.NewBackend()
	title := b.NewAttributedString("Rich")
	n := node(b, "broken", "AXButton", "")
	n.Set(ax.AttrTitle, title)
	n.Set(ax.AttrDesc, ax.Unknown{Description: "CGImage"})

	c, err := ax.NewClient(b, axtest.Processes{}, &axtest.RunLoop{})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	v, err := c.Bridge().ToHost(b.Ref(n))
	if err != nil {
		t.Fatal(err)
	}
	el := v.(*ax.Element)
	defer el.Close()

	if _, err := Describe(el); !errors.Is(err, ax.ErrConversion) {
		t.Fatalf("expected a conversion error, got %v", err)
	}
	if got := b.RefCount(title.Ref); got != 1 {
		t.Errorf("title refcount = %d, want 1", got)
	}

	n.Set(ax.AttrDesc, ax.StringOf("plain"))
	got, err := Describe(el)
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Rich" || got.Description != "plain" {
		t.Errorf("unexpected element: %+v", got)
	}
	if rc := b.RefCount(title.Ref); rc != 1 {
		t.Errorf("title refcount after describe = %d, want 1", rc)
	}
}

func TestText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"plain", "plain"},
		{1.5, "1.5"},
		{int64(3), "3"},
		{true, "true"},
		{ax.Point{X: 1, Y: 2}, ax.Point{X: 1, Y: 2}.String()},
	}
	for _, tt := range tests {
		if got := Text(tt.in); got != tt.want {
			t.Errorf("Text(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIndexPath(t *testing.T) {
	if got := IndexPath([]int{0, 3, 1}); got != "0,3,1" {
		t.Errorf("got %q", got)
	}
	if got := IndexPath(nil); got != "" {
		t.Errorf("got %q", got)
	}
}
