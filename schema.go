package yang

import (
	"iter"

	"github.com/holo-routing/yang-go/internal/ffi"
)

// SchemaInputFormat selects the schema source syntax.
type SchemaInputFormat int

const (
	SchemaYANG SchemaInputFormat = SchemaInputFormat(ffi.SchemaInYANG)
	SchemaYIN  SchemaInputFormat = SchemaInputFormat(ffi.SchemaInYIN)
)

// SchemaOutputFormat selects the schema print syntax.
type SchemaOutputFormat int

const (
	SchemaOutYANG SchemaOutputFormat = SchemaOutputFormat(ffi.SchemaOutYANG)
	SchemaOutYIN  SchemaOutputFormat = SchemaOutputFormat(ffi.SchemaOutYIN)
	SchemaOutTree SchemaOutputFormat = SchemaOutputFormat(ffi.SchemaOutTree)
)

// SchemaPrintOptions is a set of schema print flags.
type SchemaPrintOptions uint32

const (
	// SchemaPrintShrink prints without indentation and newlines.
	SchemaPrintShrink SchemaPrintOptions = SchemaPrintOptions(ffi.SchemaPrintShrink)
	// SchemaPrintNoSubstmt omits substatements of printed statements.
	SchemaPrintNoSubstmt SchemaPrintOptions = SchemaPrintOptions(ffi.SchemaPrintNoSubstmt)
)

// SchemaPathFormat selects how schema node paths are rendered.
type SchemaPathFormat int

const (
	// SchemaPathLog renders the path format used in log messages.
	SchemaPathLog SchemaPathFormat = SchemaPathFormat(ffi.SchemaPathLog)
	// SchemaPathData renders a data path, skipping choice and case.
	SchemaPathData SchemaPathFormat = SchemaPathFormat(ffi.SchemaPathData)
)

// NodeKind is the YANG statement a schema node was created by.
type NodeKind int

const (
	KindUnknown      NodeKind = NodeKind(ffi.NodeUnknown)
	KindContainer    NodeKind = NodeKind(ffi.NodeContainer)
	KindChoice       NodeKind = NodeKind(ffi.NodeChoice)
	KindCase         NodeKind = NodeKind(ffi.NodeCase)
	KindLeaf         NodeKind = NodeKind(ffi.NodeLeaf)
	KindLeafList     NodeKind = NodeKind(ffi.NodeLeafList)
	KindList         NodeKind = NodeKind(ffi.NodeList)
	KindAnyXML       NodeKind = NodeKind(ffi.NodeAnyXML)
	KindAnyData      NodeKind = NodeKind(ffi.NodeAnyData)
	KindRPC          NodeKind = NodeKind(ffi.NodeRPC)
	KindAction       NodeKind = NodeKind(ffi.NodeAction)
	KindNotification NodeKind = NodeKind(ffi.NodeNotification)
	KindInput        NodeKind = NodeKind(ffi.NodeInput)
	KindOutput       NodeKind = NodeKind(ffi.NodeOutput)
)

func (k NodeKind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindChoice:
		return "choice"
	case KindCase:
		return "case"
	case KindLeaf:
		return "leaf"
	case KindLeafList:
		return "leaf-list"
	case KindList:
		return "list"
	case KindAnyXML:
		return "anyxml"
	case KindAnyData:
		return "anydata"
	case KindRPC:
		return "rpc"
	case KindAction:
		return "action"
	case KindNotification:
		return "notification"
	case KindInput:
		return "input"
	case KindOutput:
		return "output"
	default:
		return "unknown"
	}
}

// BaseType is the resolved YANG built-in type of a leaf.
type BaseType int

const (
	TypeUnknown BaseType = BaseType(ffi.TypeUnknown)
	TypeBinary  BaseType = BaseType(ffi.TypeBinary)
	TypeUint8   BaseType = BaseType(ffi.TypeUint8)
	TypeUint16  BaseType = BaseType(ffi.TypeUint16)
	TypeUint32  BaseType = BaseType(ffi.TypeUint32)
	TypeUint64  BaseType = BaseType(ffi.TypeUint64)
	TypeString  BaseType = BaseType(ffi.TypeString)
	TypeBits    BaseType = BaseType(ffi.TypeBits)
	TypeBool    BaseType = BaseType(ffi.TypeBool)
	TypeDec64   BaseType = BaseType(ffi.TypeDec64)
	TypeEmpty   BaseType = BaseType(ffi.TypeEmpty)
	TypeEnum    BaseType = BaseType(ffi.TypeEnum)
	TypeIdent   BaseType = BaseType(ffi.TypeIdent)
	TypeInstID  BaseType = BaseType(ffi.TypeInstID)
	TypeLeafref BaseType = BaseType(ffi.TypeLeafref)
	TypeUnion   BaseType = BaseType(ffi.TypeUnion)
	TypeInt8    BaseType = BaseType(ffi.TypeInt8)
	TypeInt16   BaseType = BaseType(ffi.TypeInt16)
	TypeInt32   BaseType = BaseType(ffi.TypeInt32)
	TypeInt64   BaseType = BaseType(ffi.TypeInt64)
)

// Module is a loaded YANG module. It borrows from its Context and is
// invalid after the context is destroyed.
type Module struct {
	ctx *Context
	raw ffi.Module
}

func (m Module) check() {
	if m.ctx == nil || !m.raw.Valid() {
		panic("yang: use of invalid Module")
	}
	m.ctx.check()
}

func (m Module) Name() string {
	m.check()
	return ffi.ModuleName(m.raw)
}

func (m Module) Revision() string {
	m.check()
	return ffi.ModuleRevision(m.raw)
}

func (m Module) Namespace() string {
	m.check()
	return ffi.ModuleNamespace(m.raw)
}

func (m Module) Prefix() string {
	m.check()
	return ffi.ModulePrefix(m.raw)
}

// Filepath returns the path the module was loaded from, empty when it
// came from memory.
func (m Module) Filepath() string {
	m.check()
	return ffi.ModuleFilepath(m.raw)
}

func (m Module) Organization() string {
	m.check()
	return ffi.ModuleOrg(m.raw)
}

func (m Module) Contact() string {
	m.check()
	return ffi.ModuleContact(m.raw)
}

func (m Module) Description() string {
	m.check()
	return ffi.ModuleDsc(m.raw)
}

func (m Module) Reference() string {
	m.check()
	return ffi.ModuleRef(m.raw)
}

// Implemented reports whether the module is implemented rather than
// only imported.
func (m Module) Implemented() bool {
	m.check()
	return ffi.ModuleImplemented(m.raw)
}

// SetImplemented marks an imported module as implemented, compiling
// its data tree.
func (m Module) SetImplemented() error {
	m.check()
	if code := ffi.ModuleSetImplemented(m.raw); code != ffi.CodeSuccess {
		return newError(m.ctx.raw, code)
	}
	return nil
}

// FeatureValue reports whether the named feature is enabled. A
// feature unknown to the module yields an error.
func (m Module) FeatureValue(feature string) (bool, error) {
	m.check()
	switch code := ffi.ModuleFeatureValue(m.raw, feature); code {
	case ffi.CodeSuccess:
		return true, nil
	case ffi.CodeNot:
		return false, nil
	default:
		return false, newError(m.ctx.raw, code)
	}
}

// Print serializes the module schema in the given format.
func (m Module) Print(format SchemaOutputFormat, options SchemaPrintOptions) (string, error) {
	m.check()
	out, code := ffi.ModulePrintMem(m.raw, int(format), uint32(options))
	if code != ffi.CodeSuccess {
		return "", newError(m.ctx.raw, code)
	}
	return out, nil
}

// Data iterates over the top-level data nodes of the module.
func (m Module) Data() iter.Seq[SchemaNode] {
	m.check()
	return siblingSeq(m.ctx, ffi.ModuleData(m.raw))
}

// RPCs iterates over the RPCs of the module.
func (m Module) RPCs() iter.Seq[SchemaNode] {
	m.check()
	return siblingSeq(m.ctx, ffi.ModuleRPCs(m.raw))
}

// Notifications iterates over the top-level notifications of the
// module.
func (m Module) Notifications() iter.Seq[SchemaNode] {
	m.check()
	return siblingSeq(m.ctx, ffi.ModuleNotifications(m.raw))
}

// Traverse iterates over all schema nodes of the module in
// depth-first order, including RPCs and notifications.
func (m Module) Traverse() iter.Seq[SchemaNode] {
	m.check()
	return func(yield func(SchemaNode) bool) {
		for _, top := range []iter.Seq[SchemaNode]{m.Data(), m.RPCs(), m.Notifications()} {
			for node := range top {
				if !pushSubtree(node, yield) {
					return
				}
			}
		}
	}
}

// SchemaNode is a compiled schema node. It borrows from its Context
// and is invalid after the context is destroyed.
type SchemaNode struct {
	ctx *Context
	raw ffi.SchemaNode
}

func (n SchemaNode) check() {
	if n.ctx == nil || !n.raw.Valid() {
		panic("yang: use of invalid SchemaNode")
	}
	n.ctx.check()
}

func (n SchemaNode) Kind() NodeKind {
	n.check()
	return NodeKind(ffi.SchemaNodeType(n.raw))
}

func (n SchemaNode) Name() string {
	n.check()
	return ffi.SchemaNodeName(n.raw)
}

func (n SchemaNode) Description() string {
	n.check()
	return ffi.SchemaNodeDsc(n.raw)
}

func (n SchemaNode) Reference() string {
	n.check()
	return ffi.SchemaNodeRef(n.raw)
}

// Module returns the module the node was defined in.
func (n SchemaNode) Module() Module {
	n.check()
	return Module{ctx: n.ctx, raw: ffi.SchemaNodeModule(n.raw)}
}

// Path renders the schema path of the node.
func (n SchemaNode) Path(format SchemaPathFormat) string {
	n.check()
	return ffi.SchemaNodePath(n.raw, int(format))
}

// FindXPath evaluates an XPath expression relative to this node.
func (n SchemaNode) FindXPath(expr string) ([]SchemaNode, error) {
	n.check()
	raws, code := ffi.SchemaFindXPath(n.ctx.raw, n.raw, expr)
	if code != ffi.CodeSuccess {
		return nil, newError(n.ctx.raw, code)
	}
	nodes := make([]SchemaNode, 0, len(raws))
	for _, raw := range raws {
		nodes = append(nodes, SchemaNode{ctx: n.ctx, raw: raw})
	}
	return nodes, nil
}

// FindPath resolves a single schema node from a data path relative to
// this node.
func (n SchemaNode) FindPath(path string, output bool) (SchemaNode, error) {
	n.check()
	raw := ffi.SchemaFindPath(n.ctx.raw, n.raw, path, output)
	if !raw.Valid() {
		return SchemaNode{}, newError(n.ctx.raw, ffi.CodeNotFound)
	}
	return SchemaNode{ctx: n.ctx, raw: raw}, nil
}

func (n SchemaNode) flags() uint32 {
	return ffi.SchemaNodeFlags(n.raw)
}

// IsConfig reports whether the node represents configuration.
func (n SchemaNode) IsConfig() bool {
	n.check()
	return n.flags()&ffi.FlagConfigW != 0
}

// IsState reports whether the node represents state data.
func (n SchemaNode) IsState() bool {
	n.check()
	return n.flags()&ffi.FlagConfigR != 0
}

// IsStatusCurrent reports a "status current" node.
func (n SchemaNode) IsStatusCurrent() bool {
	n.check()
	return n.flags()&ffi.FlagStatusCurr != 0
}

// IsStatusDeprecated reports a "status deprecated" node.
func (n SchemaNode) IsStatusDeprecated() bool {
	n.check()
	return n.flags()&ffi.FlagStatusDepr != 0
}

// IsStatusObsolete reports a "status obsolete" node.
func (n SchemaNode) IsStatusObsolete() bool {
	n.check()
	return n.flags()&ffi.FlagStatusObso != 0
}

// IsMandatory reports a mandatory node.
func (n SchemaNode) IsMandatory() bool {
	n.check()
	return n.flags()&ffi.FlagMandatory != 0
}

// IsPresenceContainer reports a presence container.
func (n SchemaNode) IsPresenceContainer() bool {
	n.check()
	return n.Kind() == KindContainer && n.flags()&ffi.FlagPresence != 0
}

// IsListKey reports a leaf that is a list key.
func (n SchemaNode) IsListKey() bool {
	n.check()
	return n.flags()&ffi.FlagKey != 0
}

// IsKeylessList reports a list without keys.
func (n SchemaNode) IsKeylessList() bool {
	n.check()
	return n.Kind() == KindList && n.flags()&ffi.FlagKeyless != 0
}

// IsUserOrdered reports an "ordered-by user" list or leaf-list.
func (n SchemaNode) IsUserOrdered() bool {
	n.check()
	return n.flags()&ffi.FlagOrdByUser != 0
}

// IsWithinInput reports a node inside an RPC or action input.
func (n SchemaNode) IsWithinInput() bool {
	n.check()
	return n.flags()&ffi.FlagIsInput != 0
}

// IsWithinOutput reports a node inside an RPC or action output.
func (n SchemaNode) IsWithinOutput() bool {
	n.check()
	return n.flags()&ffi.FlagIsOutput != 0
}

// IsWithinNotification reports a node inside a notification.
func (n SchemaNode) IsWithinNotification() bool {
	n.check()
	return n.flags()&ffi.FlagIsNotif != 0
}

// HasDefault reports whether a leaf or choice has a default.
func (n SchemaNode) HasDefault() bool {
	n.check()
	switch n.Kind() {
	case KindLeaf:
		_, ok := ffi.SchemaLeafDefault(n.ctx.raw, n.raw)
		return ok
	case KindChoice:
		return ffi.SchemaChoiceDefault(n.raw).Valid()
	}
	return false
}

// DefaultValue returns the typed default of a leaf.
func (n SchemaNode) DefaultValue() (Value, bool) {
	n.check()
	if n.Kind() != KindLeaf {
		return Value{}, false
	}
	raw, ok := ffi.SchemaLeafDefault(n.ctx.raw, n.raw)
	if !ok {
		return Value{}, false
	}
	return valueFromFFI(raw), true
}

// DefaultCase returns the default case of a choice.
func (n SchemaNode) DefaultCase() (SchemaNode, bool) {
	n.check()
	raw := ffi.SchemaChoiceDefault(n.raw)
	return SchemaNode{ctx: n.ctx, raw: raw}, raw.Valid()
}

// Type returns the type of a leaf or leaf-list.
func (n SchemaNode) Type() (LeafType, bool) {
	n.check()
	if k := n.Kind(); k != KindLeaf && k != KindLeafList {
		return LeafType{}, false
	}
	return LeafType{ctx: n.ctx, raw: ffi.SchemaLeafTypeOf(n.raw)}, true
}

// Units returns the units string of a leaf or leaf-list.
func (n SchemaNode) Units() string {
	n.check()
	if k := n.Kind(); k != KindLeaf && k != KindLeafList {
		return ""
	}
	return ffi.SchemaLeafUnits(n.raw)
}

// MinElements returns the min-elements of a list or leaf-list.
func (n SchemaNode) MinElements() uint32 {
	n.check()
	if k := n.Kind(); k != KindList && k != KindLeafList {
		return 0
	}
	return ffi.SchemaNodeMin(n.raw)
}

// MaxElements returns the max-elements of a list or leaf-list, with 0
// meaning unbounded.
func (n SchemaNode) MaxElements() uint32 {
	n.check()
	if k := n.Kind(); k != KindList && k != KindLeafList {
		return 0
	}
	max := ffi.SchemaNodeMax(n.raw)
	if max == ^uint32(0) {
		return 0
	}
	return max
}

// Musts returns the must restrictions of the node. For RPCs and
// actions the input restrictions are returned; use OutputMusts for
// the output ones.
func (n SchemaNode) Musts() []Must {
	n.check()
	switch n.Kind() {
	case KindRPC, KindAction:
		return mustsFromFFI(ffi.SchemaActionMusts(n.raw, false))
	}
	return mustsFromFFI(ffi.SchemaNodeMusts(n.raw))
}

// OutputMusts returns the output must restrictions of an RPC or
// action.
func (n SchemaNode) OutputMusts() []Must {
	n.check()
	switch n.Kind() {
	case KindRPC, KindAction:
		return mustsFromFFI(ffi.SchemaActionMusts(n.raw, true))
	}
	return nil
}

// Whens returns the when conditions applying to the node.
func (n SchemaNode) Whens() []When {
	n.check()
	raws := ffi.SchemaNodeWhens(n.raw)
	whens := make([]When, 0, len(raws))
	for _, raw := range raws {
		whens = append(whens, When{raw: raw})
	}
	return whens
}

// Parent returns the parent schema node.
func (n SchemaNode) Parent() (SchemaNode, bool) {
	n.check()
	raw := ffi.SchemaNodeParent(n.raw)
	return SchemaNode{ctx: n.ctx, raw: raw}, raw.Valid()
}

// Children iterates over the child nodes. For RPCs and actions this
// yields the input children; use OutputChildren for the output block.
func (n SchemaNode) Children() iter.Seq[SchemaNode] {
	n.check()
	switch n.Kind() {
	case KindRPC, KindAction:
		return siblingSeq(n.ctx, ffi.SchemaActionChild(n.raw, false))
	}
	return siblingSeq(n.ctx, ffi.SchemaNodeChild(n.raw))
}

// OutputChildren iterates over the output children of an RPC or
// action.
func (n SchemaNode) OutputChildren() iter.Seq[SchemaNode] {
	n.check()
	switch n.Kind() {
	case KindRPC, KindAction:
		return siblingSeq(n.ctx, ffi.SchemaActionChild(n.raw, true))
	}
	return siblingSeq(n.ctx, ffi.SchemaNode{})
}

// Actions iterates over the actions of a container or list.
func (n SchemaNode) Actions() iter.Seq[SchemaNode] {
	n.check()
	return siblingSeq(n.ctx, ffi.SchemaNodeActions(n.raw))
}

// Notifications iterates over the notifications of a container or
// list.
func (n SchemaNode) Notifications() iter.Seq[SchemaNode] {
	n.check()
	return siblingSeq(n.ctx, ffi.SchemaNodeNotifs(n.raw))
}

// Siblings iterates over the following siblings, excluding the node
// itself.
func (n SchemaNode) Siblings() iter.Seq[SchemaNode] {
	n.check()
	return siblingSeq(n.ctx, ffi.SchemaNodeNext(n.raw))
}

// Ancestors iterates from the parent up to the schema root.
func (n SchemaNode) Ancestors() iter.Seq[SchemaNode] {
	n.check()
	return func(yield func(SchemaNode) bool) {
		for raw := ffi.SchemaNodeParent(n.raw); raw.Valid(); raw = ffi.SchemaNodeParent(raw) {
			n.ctx.check()
			if !yield(SchemaNode{ctx: n.ctx, raw: raw}) {
				return
			}
		}
	}
}

// Traverse iterates over the subtree rooted at the node in
// depth-first order, the node itself first.
func (n SchemaNode) Traverse() iter.Seq[SchemaNode] {
	n.check()
	return func(yield func(SchemaNode) bool) {
		n.check()
		pushSubtree(n, yield)
	}
}

// ListKeys iterates over the key leafs of a list node.
func (n SchemaNode) ListKeys() iter.Seq[SchemaNode] {
	n.check()
	return func(yield func(SchemaNode) bool) {
		if n.Kind() != KindList {
			return
		}
		for child := range n.Children() {
			if !child.IsListKey() {
				continue
			}
			if !yield(child) {
				return
			}
		}
	}
}

func pushSubtree(n SchemaNode, yield func(SchemaNode) bool) bool {
	if !yield(n) {
		return false
	}
	for child := range n.Children() {
		if !pushSubtree(child, yield) {
			return false
		}
	}
	return true
}

func siblingSeq(ctx *Context, first ffi.SchemaNode) iter.Seq[SchemaNode] {
	return func(yield func(SchemaNode) bool) {
		for raw := first; raw.Valid(); raw = ffi.SchemaNodeNext(raw) {
			ctx.check()
			if !yield(SchemaNode{ctx: ctx, raw: raw}) {
				return
			}
		}
	}
}

// LeafType is the compiled type of a leaf or leaf-list. It borrows
// from its Context.
type LeafType struct {
	ctx *Context
	raw ffi.LeafType
}

func (t LeafType) check() {
	if t.ctx == nil || !t.raw.Valid() {
		panic("yang: use of invalid LeafType")
	}
	t.ctx.check()
}

// Base returns the resolved built-in base type.
func (t LeafType) Base() BaseType {
	t.check()
	return BaseType(ffi.LeafTypeBase(t.raw))
}

// Name returns the typedef name, empty for plain built-in types.
func (t LeafType) Name() string {
	t.check()
	return ffi.LeafTypeName(t.raw)
}

// LeafrefRealType resolves the target type of a leafref chain.
func (t LeafType) LeafrefRealType() (LeafType, bool) {
	t.check()
	if t.Base() != TypeLeafref {
		return LeafType{}, false
	}
	return LeafType{ctx: t.ctx, raw: ffi.LeafrefRealType(t.raw)}, true
}

// Must is a compiled must restriction.
type Must struct {
	raw ffi.Must
}

func (m Must) Description() string  { return ffi.MustDsc(m.raw) }
func (m Must) Reference() string    { return ffi.MustRef(m.raw) }
func (m Must) ErrorMessage() string { return ffi.MustEmsg(m.raw) }
func (m Must) ErrorAppTag() string  { return ffi.MustApptag(m.raw) }

func mustsFromFFI(raws []ffi.Must) []Must {
	musts := make([]Must, 0, len(raws))
	for _, r := range raws {
		musts = append(musts, Must{raw: r})
	}
	return musts
}

// When is a compiled when condition.
type When struct {
	raw ffi.When
}

func (w When) Description() string { return ffi.WhenDsc(w.raw) }
func (w When) Reference() string   { return ffi.WhenRef(w.raw) }

// Value is a decoded data value. Canonical always holds the canonical
// string form; the typed fields are filled according to Base.
type Value struct {
	Base      BaseType
	Int       int64
	Uint      uint64
	Bool      bool
	Dec64     int64
	Canonical string
}

func valueFromFFI(v ffi.Value) Value {
	return Value{
		Base:      BaseType(v.Base),
		Int:       v.Int,
		Uint:      v.Uint,
		Bool:      v.Bool,
		Dec64:     v.Dec64,
		Canonical: v.Canonical,
	}
}
