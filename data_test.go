package yang

import (
	"errors"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/pretty"
)

const testConfig = `{
  "network-config:interfaces": {
    "interface": [
      {"name": "eth0", "description": "uplink", "mtu": 9000},
      {"name": "eth1", "enabled": false}
    ]
  },
  "network-config:system": {
    "hostname": "core1",
    "location": "datacenter",
    "rack-slot": 7
  }
}`

// testTree parses the reference configuration.
func testTree(t *testing.T, ctx *Context) *DataTree {
	t.Helper()
	tree, err := ParseData(ctx, []byte(testConfig), JSON, 0, 0)
	if err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	t.Cleanup(tree.Destroy)
	return tree
}

// TestParseValidate verifies parsing with validation and that
// constraint violations surface ErrValidation.
func TestParseValidate(t *testing.T) {
	ctx := testContext(t)
	tree := testTree(t, ctx)

	if err := tree.Validate(0); err != nil {
		t.Errorf("Validate: %v", err)
	}

	// The system container requires a hostname.
	_, err := ParseData(ctx, []byte(`{"network-config:system": {"location": "x"}}`), JSON, 0, 0)
	if err == nil {
		t.Fatal("ParseData succeeded without the mandatory hostname")
	}
	if !errors.Is(err, ErrValidation) {
		t.Errorf("error is not ErrValidation: %v", err)
	}
	var yerr *Error
	if errors.As(err, &yerr) && yerr.Msg == "" {
		t.Error("validation error carries no diagnostic message")
	}

	// With ParseOnly the same document parses, and Validate reports
	// the violation later.
	tree2, err := ParseData(ctx, []byte(`{"network-config:system": {"location": "x"}}`), JSON, ParseOnly, 0)
	if err != nil {
		t.Fatalf("ParseData(ParseOnly): %v", err)
	}
	defer tree2.Destroy()
	if err := tree2.Validate(0); !errors.Is(err, ErrValidation) {
		t.Errorf("Validate error = %v, want ErrValidation", err)
	}
}

// TestParseStrict verifies unknown element handling.
func TestParseStrict(t *testing.T) {
	ctx := testContext(t)

	const unknown = `{"network-config:system": {"hostname": "h", "bogus": 1}}`
	if _, err := ParseData(ctx, []byte(unknown), JSON, ParseOnly|ParseStrict, 0); err == nil {
		t.Error("strict parse accepted an unknown element")
	}
}

// TestRoundTrip verifies that converting JSON to XML and back
// preserves the data.
func TestRoundTrip(t *testing.T) {
	ctx := testContext(t)
	tree := testTree(t, ctx)

	wantJSON, err := tree.PrintString(JSON, 0)
	if err != nil {
		t.Fatalf("PrintString: %v", err)
	}

	xml, err := tree.Print(XML, 0)
	if err != nil {
		t.Fatalf("Print(XML): %v", err)
	}
	fromXML, err := ParseData(ctx, xml, XML, 0, 0)
	if err != nil {
		t.Fatalf("ParseData(XML): %v", err)
	}
	defer fromXML.Destroy()

	gotJSON, err := fromXML.PrintString(JSON, 0)
	if err != nil {
		t.Fatalf("PrintString: %v", err)
	}
	if diff := pretty.Compare(wantJSON, gotJSON); diff != "" {
		t.Errorf("round trip changed the data (-want +got):\n%s", diff)
	}
}

// TestLYBRoundTrip verifies the binary encoding round trip.
func TestLYBRoundTrip(t *testing.T) {
	ctx := testContext(t)
	tree := testTree(t, ctx)

	lyb, err := tree.Print(LYB, 0)
	if err != nil {
		t.Fatalf("Print(LYB): %v", err)
	}
	if len(lyb) == 0 {
		t.Fatal("LYB output is empty")
	}

	fromLYB, err := ParseData(ctx, lyb, LYB, 0, 0)
	if err != nil {
		t.Fatalf("ParseData(LYB): %v", err)
	}
	defer fromLYB.Destroy()

	want, _ := tree.PrintString(JSON, 0)
	got, err := fromLYB.PrintString(JSON, 0)
	if err != nil {
		t.Fatalf("PrintString: %v", err)
	}
	if want != got {
		t.Errorf("LYB round trip changed the data:\nwant: %s\ngot:  %s", want, got)
	}
}

// TestDataNavigation verifies node navigation and paths.
func TestDataNavigation(t *testing.T) {
	ctx := testContext(t)
	tree := testTree(t, ctx)

	root, ok := tree.Root()
	if !ok {
		t.Fatal("tree is empty")
	}
	if got := root.Schema().Name(); got != "interfaces" {
		t.Errorf("root = %q, want interfaces", got)
	}
	if got := root.OwnerModule().Name(); got != "network-config" {
		t.Errorf("OwnerModule = %q, want network-config", got)
	}

	eth0, err := tree.FindPath("/network-config:interfaces/interface[name='eth0']")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if got := eth0.Path(); got != "/network-config:interfaces/interface[name='eth0']" {
		t.Errorf("Path = %q", got)
	}

	var children []string
	for child := range eth0.Children() {
		children = append(children, child.Schema().Name())
	}
	if len(children) < 3 {
		t.Errorf("eth0 children = %v, want at least name, description, mtu", children)
	}
	if children[0] != "name" {
		t.Errorf("first child = %q, list keys come first", children[0])
	}

	var keys []string
	for key := range eth0.ListKeys() {
		keys = append(keys, key.CanonicalValue())
	}
	if len(keys) != 1 || keys[0] != "eth0" {
		t.Errorf("ListKeys = %v, want [eth0]", keys)
	}

	mtu, err := tree.FindPath("/network-config:interfaces/interface[name='eth0']/mtu")
	if err != nil {
		t.Fatalf("FindPath(mtu): %v", err)
	}
	var ancestors []string
	for anc := range mtu.Ancestors() {
		ancestors = append(ancestors, anc.Schema().Name())
	}
	if strings.Join(ancestors, "/") != "interface/interfaces" {
		t.Errorf("ancestors = %v", ancestors)
	}

	count := 0
	for range tree.Traverse() {
		count++
	}
	if count < 10 {
		t.Errorf("Traverse visited %d nodes, want the whole tree", count)
	}

	nodes, err := tree.FindXPath("/network-config:interfaces/interface[enabled='false']")
	if err != nil {
		t.Fatalf("FindXPath: %v", err)
	}
	if len(nodes) != 1 || !strings.Contains(nodes[0].Path(), "eth1") {
		t.Errorf("FindXPath matched %v, want eth1 only", nodes)
	}
}

// TestDataValues verifies typed and canonical value extraction.
func TestDataValues(t *testing.T) {
	ctx := testContext(t)
	tree := testTree(t, ctx)

	mtu, err := tree.FindPath("/network-config:interfaces/interface[name='eth0']/mtu")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if got := mtu.CanonicalValue(); got != "9000" {
		t.Errorf("CanonicalValue = %q, want 9000", got)
	}
	val, ok := mtu.Value()
	if !ok {
		t.Fatal("Value not present for a leaf")
	}
	if val.Base != TypeUint16 || val.Uint != 9000 {
		t.Errorf("Value = %+v, want uint16 9000", val)
	}

	enabled, err := tree.FindPath("/network-config:interfaces/interface[name='eth1']/enabled")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	val, _ = enabled.Value()
	if val.Base != TypeBool || val.Bool {
		t.Errorf("Value = %+v, want boolean false", val)
	}

	slot, err := tree.FindPath("/network-config:system/rack-slot")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	val, _ = slot.Value()
	if val.Base != TypeUint8 || val.Uint != 7 {
		t.Errorf("Value = %+v, want uint8 7", val)
	}

	system, err := tree.FindPath("/network-config:system")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if _, ok := system.Value(); ok {
		t.Error("Value present for an inner node")
	}
}

// TestDefaults verifies implicit node creation and default flagging.
func TestDefaults(t *testing.T) {
	ctx := testContext(t)
	tree := testTree(t, ctx)

	if err := tree.AddImplicit(0); err != nil {
		t.Fatalf("AddImplicit: %v", err)
	}

	mtu, err := tree.FindPath("/network-config:interfaces/interface[name='eth1']/mtu")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if !mtu.IsDefault() {
		t.Error("implicit mtu not flagged as default")
	}
	if got := mtu.CanonicalValue(); got != "1500" {
		t.Errorf("implicit mtu = %q, want 1500", got)
	}

	explicit, err := tree.FindPath("/network-config:interfaces/interface[name='eth0']/mtu")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if explicit.IsDefault() {
		t.Error("explicit mtu flagged as default")
	}
}

// TestNewPathRemove verifies path-based editing starting from an
// empty tree.
func TestNewPathRemove(t *testing.T) {
	ctx := testContext(t)
	tree := NewDataTree(ctx)
	defer tree.Destroy()

	if _, ok := tree.Root(); ok {
		t.Fatal("new tree is not empty")
	}

	node, err := tree.NewPath("/network-config:system/hostname", "core2", false)
	if err != nil {
		t.Fatalf("NewPath: %v", err)
	}
	if got := node.Schema().Name(); got != "hostname" {
		t.Errorf("created node = %q, want hostname", got)
	}
	if _, ok := tree.Root(); !ok {
		t.Fatal("tree still empty after NewPath")
	}

	// Update in place.
	if _, err := tree.NewPath("/network-config:system/hostname", "core3", false); err != nil {
		t.Fatalf("NewPath(update): %v", err)
	}
	hostname, err := tree.FindPath("/network-config:system/hostname")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if got := hostname.CanonicalValue(); got != "core3" {
		t.Errorf("hostname = %q, want core3", got)
	}

	if err := tree.Remove("/network-config:system/hostname"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := tree.FindPath("/network-config:system/hostname"); err == nil {
		t.Error("hostname still present after Remove")
	}

	// Removing the last top-level node empties the tree.
	if err := tree.Remove("/network-config:system"); err != nil {
		t.Fatalf("Remove(system): %v", err)
	}
	if _, ok := tree.Root(); ok {
		t.Error("tree not empty after removing the last node")
	}
}

// TestExplicitEdit verifies node construction with the typed
// constructors.
func TestExplicitEdit(t *testing.T) {
	ctx := testContext(t)
	mod, _ := ctx.LatestModule("network-config")

	tree := NewDataTree(ctx)
	defer tree.Destroy()

	if _, err := tree.NewPath("/network-config:interfaces", "", false); err != nil {
		t.Fatalf("NewPath: %v", err)
	}
	ifaces, err := tree.FindPath("/network-config:interfaces")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}

	iface, err := ifaces.NewList(mod, "interface", "[name='eth9']")
	if err != nil {
		t.Fatalf("NewList: %v", err)
	}
	if _, err := iface.NewTerm(mod, "description", "test port"); err != nil {
		t.Fatalf("NewTerm: %v", err)
	}
	if _, err := tree.FindPath("/network-config:interfaces/interface[name='eth9']/description"); err != nil {
		t.Errorf("created leaf not found: %v", err)
	}

	desc, _ := tree.FindPath("/network-config:interfaces/interface[name='eth9']/description")
	desc.Remove()
	if _, err := tree.FindPath("/network-config:interfaces/interface[name='eth9']/description"); err == nil {
		t.Error("leaf still present after Remove")
	}
}

// TestDuplicateMerge verifies deep copies and merging.
func TestDuplicateMerge(t *testing.T) {
	ctx := testContext(t)
	tree := testTree(t, ctx)

	dup, err := tree.Duplicate()
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	defer dup.Destroy()

	want, _ := tree.PrintString(JSON, 0)
	got, _ := dup.PrintString(JSON, 0)
	if want != got {
		t.Error("duplicate differs from the original")
	}

	// Editing the copy leaves the original untouched.
	if _, err := dup.NewPath("/network-config:system/location", "lab", false); err != nil {
		t.Fatalf("NewPath: %v", err)
	}
	orig, _ := tree.FindPath("/network-config:system/location")
	if got := orig.CanonicalValue(); got != "datacenter" {
		t.Errorf("original location = %q, changed by editing the copy", got)
	}

	other, err := ParseData(ctx, []byte(`{"network-routing:routing": {"default-interface": "eth0"}}`), JSON, ParseOnly, 0)
	if err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	defer other.Destroy()
	if err := tree.Merge(other); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if _, err := tree.FindPath("/network-routing:routing/default-interface"); err != nil {
		t.Errorf("merged node not found: %v", err)
	}
}

// TestNodeDuplicate verifies subtree duplication with and without
// parents.
func TestNodeDuplicate(t *testing.T) {
	ctx := testContext(t)
	tree := testTree(t, ctx)

	mtu, err := tree.FindPath("/network-config:interfaces/interface[name='eth0']/mtu")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}

	flat, err := mtu.Duplicate(false)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	defer flat.Destroy()
	root, _ := flat.Root()
	if got := root.Schema().Name(); got != "mtu" {
		t.Errorf("flat duplicate root = %q, want mtu", got)
	}

	deep, err := mtu.Duplicate(true)
	if err != nil {
		t.Fatalf("Duplicate(withParents): %v", err)
	}
	defer deep.Destroy()
	root, _ = deep.Root()
	if got := root.Schema().Name(); got != "interfaces" {
		t.Errorf("deep duplicate root = %q, want interfaces", got)
	}
}

// TestDiff verifies diff computation, iteration, application and
// reversal.
func TestDiff(t *testing.T) {
	ctx := testContext(t)
	treeA := testTree(t, ctx)

	const configB = `{
	  "network-config:interfaces": {
	    "interface": [
	      {"name": "eth0", "description": "uplink", "mtu": 1400},
	      {"name": "eth2"}
	    ]
	  },
	  "network-config:system": {
	    "hostname": "core1",
	    "location": "datacenter",
	    "rack-slot": 7
	  }
	}`
	treeB, err := ParseData(ctx, []byte(configB), JSON, 0, 0)
	if err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	defer treeB.Destroy()

	diff, err := treeA.Diff(treeB, 0)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	defer diff.Destroy()

	ops := map[DiffOp]int{}
	for op, node := range diff.Iter() {
		if node.Schema().Kind() == KindLeaf || node.Schema().Kind() == KindList {
			ops[op]++
		}
	}
	if ops[DiffOpCreate] == 0 {
		t.Error("diff contains no create")
	}
	if ops[DiffOpDelete] == 0 {
		t.Error("diff contains no delete")
	}
	if ops[DiffOpReplace] == 0 {
		t.Error("diff contains no replace")
	}

	// The diff annotations come from the yang module.
	foundMeta := false
	for node := range diff.Tree().Traverse() {
		for meta := range node.Metadata() {
			if meta.Name() == "operation" && meta.Module().Name() == "yang" {
				foundMeta = true
			}
		}
	}
	if !foundMeta {
		t.Error("no operation metadata found in the diff tree")
	}

	// Applying the diff on a copy of A yields B.
	applied, err := treeA.Duplicate()
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	defer applied.Destroy()
	if err := applied.ApplyDiff(diff); err != nil {
		t.Fatalf("ApplyDiff: %v", err)
	}
	wantB, _ := treeB.PrintString(JSON, 0)
	gotB, _ := applied.PrintString(JSON, 0)
	if diffStr := pretty.Compare(wantB, gotB); diffStr != "" {
		t.Errorf("applied diff does not reproduce the target (-want +got):\n%s", diffStr)
	}

	// Reversing the diff and applying it brings B back to A.
	reverse, err := diff.Reverse()
	if err != nil {
		t.Fatalf("Reverse: %v", err)
	}
	defer reverse.Destroy()
	if err := applied.ApplyDiff(reverse); err != nil {
		t.Fatalf("ApplyDiff(reverse): %v", err)
	}
	wantA, _ := treeA.PrintString(JSON, 0)
	gotA, _ := applied.PrintString(JSON, 0)
	if diffStr := pretty.Compare(wantA, gotA); diffStr != "" {
		t.Errorf("reversed diff does not restore the source (-want +got):\n%s", diffStr)
	}
}

// TestDiffForeignOperationMeta verifies that an annotation named
// "operation" defined by a regular module does not influence the
// reported diff operations.
func TestDiffForeignOperationMeta(t *testing.T) {
	ctx := testContext(t)
	treeA := testTree(t, ctx)

	const configB = `{
	  "network-config:interfaces": {
	    "interface": [
	      {"name": "eth0", "description": "uplink", "mtu": 9000},
	      {"name": "eth2"}
	    ]
	  },
	  "network-config:system": {
	    "hostname": "core1",
	    "location": "datacenter",
	    "rack-slot": 7
	  }
	}`
	treeB, err := ParseData(ctx, []byte(configB), JSON, 0, 0)
	if err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	defer treeB.Destroy()

	diff, err := treeA.Diff(treeB, 0)
	if err != nil {
		t.Fatalf("Diff: %v", err)
	}
	defer diff.Destroy()

	mod, ok := ctx.Module("network-config", "")
	if !ok {
		t.Fatal("module network-config not found")
	}
	created := map[string]bool{}
	for op, node := range diff.Iter() {
		if op == DiffOpCreate && node.Schema().Kind() == KindList {
			if _, err := node.NewMetadata(mod, "operation", "delete"); err != nil {
				t.Fatalf("NewMetadata: %v", err)
			}
			created[node.Path()] = true
		}
	}
	if len(created) == 0 {
		t.Fatal("diff contains no created list")
	}
	for op, node := range diff.Iter() {
		if created[node.Path()] && op != DiffOpCreate {
			t.Errorf("%s reported as %s, want create", node.Path(), op)
		}
	}
}

// TestParseOp verifies RPC input parsing.
func TestParseOp(t *testing.T) {
	ctx := testContext(t)

	const rpc = `{"network-config:restart": {"timeout": 10}}`
	tree, op, err := ParseOp(ctx, []byte(rpc), JSON, OpRPC)
	if err != nil {
		t.Fatalf("ParseOp: %v", err)
	}
	defer tree.Destroy()

	if got := op.Schema().Name(); got != "restart" {
		t.Errorf("operation node = %q, want restart", got)
	}
	timeout, err := tree.FindPath("/network-config:restart/timeout")
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if got := timeout.CanonicalValue(); got != "10" {
		t.Errorf("timeout = %q, want 10", got)
	}
}

// TestParseOpNetconf verifies NETCONF envelope parsing for RPCs,
// replies and notifications.
func TestParseOpNetconf(t *testing.T) {
	ctx := testContext(t)

	const rpc = `<rpc message-id="101" xmlns="urn:ietf:params:xml:ns:netconf:base:1.0">
  <restart xmlns="urn:example:network-config">
    <timeout>10</timeout>
  </restart>
</rpc>`
	tree, op, err := ParseOp(ctx, []byte(rpc), XML, OpRPCNetconf)
	if err != nil {
		t.Fatalf("ParseOp(rpc): %v", err)
	}
	defer tree.Destroy()

	if got := op.Schema().Name(); got != "restart" {
		t.Errorf("operation node = %q, want restart", got)
	}
	timeout := ""
	for child := range op.Children() {
		if child.Schema().Name() == "timeout" {
			timeout = child.CanonicalValue()
		}
	}
	if timeout != "10" {
		t.Errorf("timeout = %q, want 10", timeout)
	}

	const reply = `<rpc-reply message-id="101" xmlns="urn:ietf:params:xml:ns:netconf:base:1.0">
  <started xmlns="urn:example:network-config">true</started>
</rpc-reply>`
	if err := op.ParseNetconfReply([]byte(reply)); err != nil {
		t.Fatalf("ParseNetconfReply: %v", err)
	}
	started := ""
	for child := range op.Children() {
		if child.Schema().Name() == "started" {
			started = child.CanonicalValue()
		}
	}
	if started != "true" {
		t.Errorf("started = %q, want true", started)
	}

	const notif = `<notification xmlns="urn:ietf:params:xml:ns:netconf:notification:1.0">
  <eventTime>2025-06-01T10:00:00Z</eventTime>
  <config-change xmlns="urn:example:network-config">
    <changed-by>admin</changed-by>
  </config-change>
</notification>`
	notifTree, notifOp, err := ParseOp(ctx, []byte(notif), XML, OpNotificationNetconf)
	if err != nil {
		t.Fatalf("ParseOp(notification): %v", err)
	}
	defer notifTree.Destroy()
	if got := notifOp.Schema().Name(); got != "config-change" {
		t.Errorf("operation node = %q, want config-change", got)
	}

	// NETCONF envelopes are XML documents.
	if _, _, err := ParseOp(ctx, []byte(`{}`), JSON, OpRPCNetconf); !errors.Is(err, ErrInvalid) {
		t.Errorf("ParseOp(JSON envelope) = %v, want ErrInvalid", err)
	}
}

// TestDataTreeDestroy verifies idempotent destruction and that views
// fail safely afterwards.
func TestDataTreeDestroy(t *testing.T) {
	ctx := testContext(t)
	tree, err := ParseData(ctx, []byte(testConfig), JSON, 0, 0)
	if err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	node, ok := tree.Root()
	if !ok {
		t.Fatal("tree is empty")
	}

	tree.Destroy()
	tree.Destroy() // no-op

	defer func() {
		if recover() == nil {
			t.Error("expected panic on use after destroy")
		}
	}()
	_ = node.Path()
}

// TestTraverseAfterDestroy verifies that a traversal sequence obtained
// before Destroy fails safely instead of walking freed nodes.
func TestTraverseAfterDestroy(t *testing.T) {
	ctx := testContext(t)
	tree, err := ParseData(ctx, []byte(testConfig), JSON, 0, 0)
	if err != nil {
		t.Fatalf("ParseData: %v", err)
	}
	seq := tree.Traverse()
	tree.Destroy()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on iteration after destroy")
		}
	}()
	for range seq {
	}
}
