package yang

import (
	"iter"

	"github.com/holo-routing/yang-go/internal/ffi"
)

// Format selects the data encoding.
type Format int

const (
	XML  Format = Format(ffi.FormatXML)
	JSON Format = Format(ffi.FormatJSON)
	LYB  Format = Format(ffi.FormatLYB)
)

func (f Format) String() string {
	switch f {
	case XML:
		return "xml"
	case JSON:
		return "json"
	case LYB:
		return "lyb"
	default:
		return "unknown"
	}
}

// OpType selects what kind of operation document is being parsed.
type OpType int

const (
	OpData         OpType = OpType(ffi.OpDataYANG)
	OpRPC          OpType = OpType(ffi.OpRPCYANG)
	OpNotification OpType = OpType(ffi.OpNotifYANG)
	OpReply        OpType = OpType(ffi.OpReplyYANG)
	// OpRPCNetconf parses an XML <rpc> envelope. The envelope itself is
	// discarded, the returned tree is rooted at the operation.
	OpRPCNetconf OpType = OpType(ffi.OpRPCNetconf)
	// OpNotificationNetconf parses an XML <notification> envelope.
	OpNotificationNetconf OpType = OpType(ffi.OpNotifNetconf)
)

// ParseOptions is a set of data parser flags.
type ParseOptions uint32

const (
	// ParseOnly skips validation, accepting an incomplete tree.
	ParseOnly ParseOptions = ParseOptions(ffi.ParseOnly)
	// ParseStrict rejects unknown elements instead of skipping them.
	ParseStrict ParseOptions = ParseOptions(ffi.ParseStrict)
	// ParseNoState rejects state data.
	ParseNoState ParseOptions = ParseOptions(ffi.ParseNoState)
	// ParseOrdered promises top-level nodes in schema order.
	ParseOrdered ParseOptions = ParseOptions(ffi.ParseOrdered)
)

// ValidationOptions is a set of validation flags.
type ValidationOptions uint32

const (
	// ValidateNoState rejects state data.
	ValidateNoState ValidationOptions = ValidationOptions(ffi.ValidateNoState)
	// ValidatePresent validates only the modules present in the data.
	ValidatePresent ValidationOptions = ValidationOptions(ffi.ValidatePresent)
)

// PrintOptions is a set of data printer flags.
type PrintOptions uint32

const (
	// PrintWithSiblings prints the whole sibling set, not just one
	// subtree.
	PrintWithSiblings PrintOptions = PrintOptions(ffi.PrintWithSiblings)
	// PrintShrink prints without indentation and newlines.
	PrintShrink PrintOptions = PrintOptions(ffi.PrintShrink)
	// PrintKeepEmptyCont prints non-presence containers with no
	// children.
	PrintKeepEmptyCont PrintOptions = PrintOptions(ffi.PrintKeepEmptyCont)
	// PrintWDAll prints default nodes (with-defaults "report-all").
	PrintWDAll PrintOptions = PrintOptions(ffi.PrintWDAll)
	// PrintWDExplicit prints only explicitly set nodes.
	PrintWDExplicit PrintOptions = PrintOptions(ffi.PrintWDExplicit)
	// PrintWDTrim omits nodes carrying their default value.
	PrintWDTrim PrintOptions = PrintOptions(ffi.PrintWDTrim)
)

// ImplicitOptions is a set of flags for implicit node creation.
type ImplicitOptions uint32

const (
	// ImplicitNoState skips implicit state nodes.
	ImplicitNoState ImplicitOptions = ImplicitOptions(ffi.ImplicitNoState)
	// ImplicitNoConfig skips implicit config nodes.
	ImplicitNoConfig ImplicitOptions = ImplicitOptions(ffi.ImplicitNoConfig)
	// ImplicitOutput treats the tree as RPC/action output.
	ImplicitOutput ImplicitOptions = ImplicitOptions(ffi.ImplicitOutput)
	// ImplicitNoDefaults skips nodes with a default value.
	ImplicitNoDefaults ImplicitOptions = ImplicitOptions(ffi.ImplicitNoDefaults)
)

// DiffOptions is a set of diff computation flags.
type DiffOptions uint16

const (
	// DiffDefaults reports changes in the default flag of otherwise
	// equal nodes.
	DiffDefaults DiffOptions = DiffOptions(ffi.DiffDefaults)
)

// DataTree owns a forest of data nodes bound to a Context. All
// DataNode and Metadata views borrow from it and must not be used
// after Destroy.
type DataTree struct {
	ctx       *Context
	raw       ffi.DataNode
	destroyed bool
}

// NewDataTree returns an empty data tree bound to the context. Nodes
// are added with NewPath.
func NewDataTree(ctx *Context) *DataTree {
	ctx.check()
	return &DataTree{ctx: ctx}
}

// ParseData parses a data tree from an in-memory document.
func ParseData(ctx *Context, data []byte, format Format, parseOpts ParseOptions, validationOpts ValidationOptions) (*DataTree, error) {
	ctx.check()
	raw, code := ffi.ParseDataMem(ctx.raw, string(data), int(format),
		uint32(parseOpts), uint32(validationOpts))
	if code != ffi.CodeSuccess {
		return nil, newError(ctx.raw, code)
	}
	return &DataTree{ctx: ctx, raw: raw}, nil
}

// ParseDataFile parses a data tree from a file.
func ParseDataFile(ctx *Context, path string, format Format, parseOpts ParseOptions, validationOpts ValidationOptions) (*DataTree, error) {
	ctx.check()
	raw, code := ffi.ParseDataPath(ctx.raw, path, int(format),
		uint32(parseOpts), uint32(validationOpts))
	if code != ffi.CodeSuccess {
		return nil, newError(ctx.raw, code)
	}
	return &DataTree{ctx: ctx, raw: raw}, nil
}

// ParseOp parses an RPC, action, notification or reply document. It
// returns the operation tree and the operation node within it. The
// NETCONF variants accept XML only; replies to NETCONF requests are
// parsed with DataNode.ParseNetconfReply instead.
func ParseOp(ctx *Context, data []byte, format Format, opType OpType) (*DataTree, DataNode, error) {
	ctx.check()
	netconf := opType == OpRPCNetconf || opType == OpNotificationNetconf
	if netconf && format != XML {
		return nil, DataNode{}, &Error{Code: CodeInvalid,
			Msg: "NETCONF envelopes are XML documents"}
	}
	rawTree, rawOp, code := ffi.ParseOpMem(ctx.raw, ffi.DataNode{},
		string(data), int(format), int(opType))
	if code != ffi.CodeSuccess {
		return nil, DataNode{}, newError(ctx.raw, code)
	}
	if netconf {
		// The envelope comes back as opaque nodes in a tree of its
		// own; only the operation is kept.
		if rawTree.Valid() {
			ffi.FreeAll(rawTree)
		}
		rawTree = rawOp
	}
	tree := &DataTree{ctx: ctx, raw: rawTree}
	return tree, DataNode{tree: tree, raw: rawOp}, nil
}

// Destroy releases the data tree. It is idempotent; any DataNode or
// Metadata obtained from the tree is invalid afterwards.
func (t *DataTree) Destroy() {
	if t.destroyed {
		return
	}
	if t.raw.Valid() {
		ffi.FreeAll(t.raw)
	}
	t.raw = ffi.DataNode{}
	t.destroyed = true
}

func (t *DataTree) check() {
	t.ctx.check()
	if t.destroyed {
		panic("yang: use of destroyed DataTree")
	}
}

// Context returns the context the tree is bound to.
func (t *DataTree) Context() *Context {
	t.check()
	return t.ctx
}

// Root returns the first top-level node of the tree, false when the
// tree is empty.
func (t *DataTree) Root() (DataNode, bool) {
	t.check()
	return DataNode{tree: t, raw: t.raw}, t.raw.Valid()
}

// NewPath creates a node addressed by a data path, along with any
// missing ancestors, updating an existing term node in place. It
// returns the deepest created or updated node. With output set the
// path is resolved against RPC/action output.
func (t *DataTree) NewPath(path, value string, output bool) (DataNode, error) {
	t.check()
	options := uint32(ffi.NewPathUpdate)
	if output {
		options |= ffi.NewValOutput
	}
	node, head, code := ffi.NewPath(t.raw, t.ctx.raw, path, value, options)
	if code != ffi.CodeSuccess {
		return DataNode{}, newError(t.ctx.raw, code)
	}
	t.raw = head
	return DataNode{tree: t, raw: node}, nil
}

// Remove deletes the subtree addressed by a data path.
func (t *DataTree) Remove(path string) error {
	t.check()
	node, code := ffi.DataFindPath(t.raw, path, false)
	if code != ffi.CodeSuccess {
		return newError(t.ctx.raw, code)
	}
	// Removing the tree head moves it to the next sibling, possibly
	// leaving the tree empty.
	if node == t.raw {
		t.raw = ffi.DataNext(node)
	}
	ffi.UnlinkTree(node)
	ffi.FreeTree(node)
	return nil
}

// Validate validates the tree, adding implicit nodes and resolving
// defaults as needed.
func (t *DataTree) Validate(options ValidationOptions) error {
	t.check()
	head, code := ffi.ValidateAll(t.raw, t.ctx.raw, uint32(options))
	t.raw = head
	if code != ffi.CodeSuccess {
		return newError(t.ctx.raw, code)
	}
	return nil
}

// Duplicate returns a deep copy of the whole tree.
func (t *DataTree) Duplicate() (*DataTree, error) {
	t.check()
	if !t.raw.Valid() {
		return &DataTree{ctx: t.ctx}, nil
	}
	raw, code := ffi.DupSiblings(t.raw, ffi.DataNode{},
		ffi.DupRecursive|ffi.DupWithFlags)
	if code != ffi.CodeSuccess {
		return nil, newError(t.ctx.raw, code)
	}
	return &DataTree{ctx: t.ctx, raw: raw}, nil
}

// Merge merges the source tree into this one. The source is left
// untouched.
func (t *DataTree) Merge(source *DataTree) error {
	t.check()
	source.check()
	if !source.raw.Valid() {
		return nil
	}
	head, code := ffi.MergeSiblings(t.raw, source.raw, 0)
	t.raw = head
	if code != ffi.CodeSuccess {
		return newError(t.ctx.raw, code)
	}
	return nil
}

// AddImplicit adds any missing implicit nodes, such as non-presence
// containers and leafs with defaults.
func (t *DataTree) AddImplicit(options ImplicitOptions) error {
	t.check()
	head, code := ffi.NewImplicitAll(t.raw, t.ctx.raw, uint32(options))
	t.raw = head
	if code != ffi.CodeSuccess {
		return newError(t.ctx.raw, code)
	}
	return nil
}

// Diff computes the edits transforming this tree into the other one.
func (t *DataTree) Diff(other *DataTree, options DiffOptions) (*DataDiff, error) {
	t.check()
	other.check()
	raw, code := ffi.DiffSiblings(t.raw, other.raw, uint16(options))
	if code != ffi.CodeSuccess {
		return nil, newError(t.ctx.raw, code)
	}
	return &DataDiff{tree: DataTree{ctx: t.ctx, raw: raw}}, nil
}

// ApplyDiff applies a diff on the tree.
func (t *DataTree) ApplyDiff(diff *DataDiff) error {
	t.check()
	diff.tree.check()
	if !diff.tree.raw.Valid() {
		return nil
	}
	head, code := ffi.DiffApplyAll(t.raw, diff.tree.raw)
	t.raw = head
	if code != ffi.CodeSuccess {
		return newError(t.ctx.raw, code)
	}
	return nil
}

// FindXPath evaluates an XPath expression on the tree.
func (t *DataTree) FindXPath(expr string) ([]DataNode, error) {
	t.check()
	raws, code := ffi.DataFindXPath(t.raw, expr)
	if code != ffi.CodeSuccess {
		return nil, newError(t.ctx.raw, code)
	}
	nodes := make([]DataNode, 0, len(raws))
	for _, raw := range raws {
		nodes = append(nodes, DataNode{tree: t, raw: raw})
	}
	return nodes, nil
}

// FindPath resolves a single data node from a data path.
func (t *DataTree) FindPath(path string) (DataNode, error) {
	t.check()
	raw, code := ffi.DataFindPath(t.raw, path, false)
	if code != ffi.CodeSuccess {
		return DataNode{}, newError(t.ctx.raw, code)
	}
	return DataNode{tree: t, raw: raw}, nil
}

// Traverse iterates over all nodes of the tree in depth-first order.
func (t *DataTree) Traverse() iter.Seq[DataNode] {
	t.check()
	return func(yield func(DataNode) bool) {
		t.check()
		for raw := t.raw; raw.Valid(); raw = ffi.DataNext(raw) {
			t.check()
			if !pushDataSubtree(DataNode{tree: t, raw: raw}, yield) {
				return
			}
		}
	}
}

// Print serializes the whole tree in the given format. XML and JSON
// output is valid UTF-8 text; LYB is binary.
func (t *DataTree) Print(format Format, options PrintOptions) ([]byte, error) {
	t.check()
	if !t.raw.Valid() {
		return nil, nil
	}
	out, code := ffi.PrintMem(t.raw, int(format),
		uint32(options)|ffi.PrintWithSiblings)
	if code != ffi.CodeSuccess {
		return nil, newError(t.ctx.raw, code)
	}
	return out, nil
}

// PrintString serializes the whole tree as a string. Not meaningful
// for LYB.
func (t *DataTree) PrintString(format Format, options PrintOptions) (string, error) {
	out, err := t.Print(format, options)
	return string(out), err
}

// DataNode is a node of a data tree. It borrows from its DataTree and
// is invalid after the tree is destroyed.
type DataNode struct {
	tree *DataTree
	raw  ffi.DataNode
}

func (n DataNode) check() {
	if n.tree == nil || !n.raw.Valid() {
		panic("yang: use of invalid DataNode")
	}
	n.tree.check()
}

// Tree returns the owning data tree.
func (n DataNode) Tree() *DataTree {
	n.check()
	return n.tree
}

// Schema returns the schema node the data node was created from.
func (n DataNode) Schema() SchemaNode {
	n.check()
	return SchemaNode{ctx: n.tree.ctx, raw: ffi.NodeSchema(n.raw)}
}

// OwnerModule returns the module owning the top-level ancestor of the
// node.
func (n DataNode) OwnerModule() Module {
	n.check()
	return Module{ctx: n.tree.ctx, raw: ffi.OwnerModule(n.raw)}
}

// Path renders the data path of the node, including list key
// predicates.
func (n DataNode) Path() string {
	n.check()
	return ffi.DataPath(n.raw, ffi.DataPathStd)
}

// CanonicalValue returns the canonical string value of a term node,
// empty for inner nodes.
func (n DataNode) CanonicalValue() string {
	n.check()
	return ffi.TermCanonical(n.raw)
}

// Value returns the decoded typed value of a term node.
func (n DataNode) Value() (Value, bool) {
	n.check()
	switch n.Schema().Kind() {
	case KindLeaf, KindLeafList:
		return valueFromFFI(ffi.TermValue(n.tree.ctx.raw, n.raw)), true
	}
	return Value{}, false
}

// IsDefault reports whether the node carries its schema default
// value or is an implicitly created node.
func (n DataNode) IsDefault() bool {
	n.check()
	return ffi.IsDefault(n.raw)
}

// NewInner creates a child container, notification, RPC or action
// node.
func (n DataNode) NewInner(mod Module, name string) (DataNode, error) {
	n.check()
	raw, code := ffi.NewInner(n.raw, mod.raw, name)
	if code != ffi.CodeSuccess {
		return DataNode{}, newError(n.tree.ctx.raw, code)
	}
	return DataNode{tree: n.tree, raw: raw}, nil
}

// NewList creates a child list node. Keys are given as a predicate
// string, e.g. "[name='eth0']".
func (n DataNode) NewList(mod Module, name, keys string) (DataNode, error) {
	n.check()
	raw, code := ffi.NewList(n.raw, mod.raw, name, keys)
	if code != ffi.CodeSuccess {
		return DataNode{}, newError(n.tree.ctx.raw, code)
	}
	return DataNode{tree: n.tree, raw: raw}, nil
}

// NewTerm creates a child leaf or leaf-list node from a string value.
func (n DataNode) NewTerm(mod Module, name, value string) (DataNode, error) {
	n.check()
	raw, code := ffi.NewTerm(n.raw, mod.raw, name, value)
	if code != ffi.CodeSuccess {
		return DataNode{}, newError(n.tree.ctx.raw, code)
	}
	return DataNode{tree: n.tree, raw: raw}, nil
}

// ParseNetconfReply parses an XML <rpc-reply> envelope and attaches
// its output arguments to the node, which must be the request
// operation parsed with OpRPCNetconf.
func (n DataNode) ParseNetconfReply(data []byte) error {
	n.check()
	env, _, code := ffi.ParseOpMem(n.tree.ctx.raw, n.raw,
		string(data), int(XML), ffi.OpReplyNetconf)
	if env.Valid() {
		ffi.FreeAll(env)
	}
	if code != ffi.CodeSuccess {
		return newError(n.tree.ctx.raw, code)
	}
	return nil
}

// Remove detaches and frees the subtree rooted at the node. The node
// must not be a top-level node; use DataTree.Remove for those.
func (n DataNode) Remove() {
	n.check()
	ffi.UnlinkTree(n.raw)
	ffi.FreeTree(n.raw)
}

// Duplicate deep-copies the subtree into a new tree. With withParents
// set the copy keeps its chain of ancestors.
func (n DataNode) Duplicate(withParents bool) (*DataTree, error) {
	n.check()
	options := uint32(ffi.DupRecursive | ffi.DupWithFlags)
	if withParents {
		options |= ffi.DupWithParents
	}
	raw, code := ffi.DupSingle(n.raw, ffi.DataNode{}, options)
	if code != ffi.CodeSuccess {
		return nil, newError(n.tree.ctx.raw, code)
	}
	if withParents {
		for parent := ffi.DataParent(raw); parent.Valid(); parent = ffi.DataParent(raw) {
			raw = parent
		}
	}
	return &DataTree{ctx: n.tree.ctx, raw: raw}, nil
}

// FindXPath evaluates an XPath expression with the node as context.
func (n DataNode) FindXPath(expr string) ([]DataNode, error) {
	n.check()
	raws, code := ffi.DataFindXPath(n.raw, expr)
	if code != ffi.CodeSuccess {
		return nil, newError(n.tree.ctx.raw, code)
	}
	nodes := make([]DataNode, 0, len(raws))
	for _, raw := range raws {
		nodes = append(nodes, DataNode{tree: n.tree, raw: raw})
	}
	return nodes, nil
}

// Print serializes the subtree rooted at the node.
func (n DataNode) Print(format Format, options PrintOptions) ([]byte, error) {
	n.check()
	out, code := ffi.PrintMem(n.raw, int(format), uint32(options))
	if code != ffi.CodeSuccess {
		return nil, newError(n.tree.ctx.raw, code)
	}
	return out, nil
}

// Parent returns the parent node.
func (n DataNode) Parent() (DataNode, bool) {
	n.check()
	raw := ffi.DataParent(n.raw)
	return DataNode{tree: n.tree, raw: raw}, raw.Valid()
}

// Children iterates over the child nodes.
func (n DataNode) Children() iter.Seq[DataNode] {
	n.check()
	return dataSiblingSeq(n.tree, ffi.DataChild(n.raw))
}

// Siblings iterates over the following siblings, excluding the node
// itself.
func (n DataNode) Siblings() iter.Seq[DataNode] {
	n.check()
	return dataSiblingSeq(n.tree, ffi.DataNext(n.raw))
}

// Ancestors iterates from the parent up to the top-level node.
func (n DataNode) Ancestors() iter.Seq[DataNode] {
	n.check()
	return func(yield func(DataNode) bool) {
		for raw := ffi.DataParent(n.raw); raw.Valid(); raw = ffi.DataParent(raw) {
			n.tree.check()
			if !yield(DataNode{tree: n.tree, raw: raw}) {
				return
			}
		}
	}
}

// Traverse iterates over the subtree rooted at the node in
// depth-first order, the node itself first.
func (n DataNode) Traverse() iter.Seq[DataNode] {
	n.check()
	return func(yield func(DataNode) bool) {
		n.check()
		pushDataSubtree(n, yield)
	}
}

// ListKeys iterates over the key leafs of a list instance.
func (n DataNode) ListKeys() iter.Seq[DataNode] {
	n.check()
	return func(yield func(DataNode) bool) {
		for child := range n.Children() {
			if !child.Schema().IsListKey() {
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}

// Metadata iterates over the metadata attached to the node.
func (n DataNode) Metadata() iter.Seq[Metadata] {
	n.check()
	return func(yield func(Metadata) bool) {
		for raw := ffi.NodeMeta(n.raw); raw.Valid(); raw = ffi.MetaNext(raw) {
			n.tree.check()
			if !yield(Metadata{tree: n.tree, raw: raw}) {
				return
			}
		}
	}
}

// NewMetadata attaches a metadata record to the node. The module must
// define the annotation.
func (n DataNode) NewMetadata(mod Module, name, value string) (Metadata, error) {
	n.check()
	raw, code := ffi.NewMeta(n.tree.ctx.raw, n.raw, mod.raw, name, value)
	if code != ffi.CodeSuccess {
		return Metadata{}, newError(n.tree.ctx.raw, code)
	}
	return Metadata{tree: n.tree, raw: raw}, nil
}

func pushDataSubtree(n DataNode, yield func(DataNode) bool) bool {
	if !yield(n) {
		return false
	}
	for child := range n.Children() {
		if !pushDataSubtree(child, yield) {
			return false
		}
	}
	return true
}

func dataSiblingSeq(tree *DataTree, first ffi.DataNode) iter.Seq[DataNode] {
	return func(yield func(DataNode) bool) {
		for raw := first; raw.Valid(); raw = ffi.DataNext(raw) {
			tree.check()
			if !yield(DataNode{tree: tree, raw: raw}) {
				return
			}
		}
	}
}

// Metadata is an annotation instance attached to a data node.
type Metadata struct {
	tree *DataTree
	raw  ffi.Meta
}

func (m Metadata) check() {
	if m.tree == nil || !m.raw.Valid() {
		panic("yang: use of invalid Metadata")
	}
	m.tree.check()
}

func (m Metadata) Name() string {
	m.check()
	return ffi.MetaName(m.raw)
}

func (m Metadata) Value() string {
	m.check()
	return ffi.MetaValue(m.tree.ctx.raw, m.raw)
}

// Module returns the module defining the annotation.
func (m Metadata) Module() Module {
	m.check()
	return Module{ctx: m.tree.ctx, raw: ffi.MetaModule(m.raw)}
}

// DiffOp is the edit operation a diff node represents.
type DiffOp int

const (
	// DiffOpNone marks a node present only to anchor nested edits.
	DiffOpNone DiffOp = iota
	DiffOpCreate
	DiffOpDelete
	DiffOpReplace
)

func (op DiffOp) String() string {
	switch op {
	case DiffOpCreate:
		return "create"
	case DiffOpDelete:
		return "delete"
	case DiffOpReplace:
		return "replace"
	default:
		return "none"
	}
}

// DataDiff owns a diff data tree describing the edits between two
// trees.
type DataDiff struct {
	tree DataTree
}

// ParseDiff parses a printed diff tree back into a DataDiff.
func ParseDiff(ctx *Context, data []byte, format Format) (*DataDiff, error) {
	tree, err := ParseData(ctx, data, format, ParseOnly, 0)
	if err != nil {
		return nil, err
	}
	return &DataDiff{tree: *tree}, nil
}

// Destroy releases the diff tree. It is idempotent.
func (d *DataDiff) Destroy() {
	d.tree.Destroy()
}

// Tree exposes the diff as a plain data tree, usable for printing.
func (d *DataDiff) Tree() *DataTree {
	d.tree.check()
	return &d.tree
}

// Reverse computes the inverse diff, turning creates into deletes and
// swapping replace values.
func (d *DataDiff) Reverse() (*DataDiff, error) {
	d.tree.check()
	if !d.tree.raw.Valid() {
		return &DataDiff{tree: DataTree{ctx: d.tree.ctx}}, nil
	}
	raw, code := ffi.DiffReverseAll(d.tree.raw)
	if code != ffi.CodeSuccess {
		return nil, newError(d.tree.ctx.raw, code)
	}
	return &DataDiff{tree: DataTree{ctx: d.tree.ctx, raw: raw}}, nil
}

// Iter iterates over the diff nodes along with their effective edit
// operation. Nodes without their own operation metadata inherit the
// operation of their nearest annotated ancestor.
func (d *DataDiff) Iter() iter.Seq2[DiffOp, DataNode] {
	d.tree.check()
	return func(yield func(DiffOp, DataNode) bool) {
		for node := range d.tree.Traverse() {
			if !yield(diffNodeOp(node), node) {
				return
			}
		}
	}
}

func diffNodeOp(node DataNode) DiffOp {
	for {
		for meta := range node.Metadata() {
			if meta.Name() != "operation" || meta.Module().Name() != "yang" {
				continue
			}
			switch meta.Value() {
			case "create":
				return DiffOpCreate
			case "delete":
				return DiffOpDelete
			case "replace":
				return DiffOpReplace
			case "none":
				return DiffOpNone
			}
		}
		parent, ok := node.Parent()
		if !ok {
			return DiffOpNone
		}
		node = parent
	}
}
