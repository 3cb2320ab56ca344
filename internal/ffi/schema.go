package ffi

/*
#include <stdlib.h>
#include <libyang/libyang.h>

static struct lysc_node *yg_set_snode(const struct ly_set *s, uint32_t i) {
	return s->snodes[i];
}

static struct lysc_node *yg_module_data(const struct lys_module *m) {
	return m->compiled ? m->compiled->data : NULL;
}

static struct lysc_node *yg_module_rpcs(const struct lys_module *m) {
	return m->compiled ? (struct lysc_node *)m->compiled->rpcs : NULL;
}

static struct lysc_node *yg_module_notifs(const struct lys_module *m) {
	return m->compiled ? (struct lysc_node *)m->compiled->notifs : NULL;
}

static const struct lyd_value *yg_leaf_default(const struct lysc_node *n) {
	return ((const struct lysc_node_leaf *)n)->dflt;
}

static struct lysc_node *yg_choice_default(const struct lysc_node *n) {
	return (struct lysc_node *)((const struct lysc_node_choice *)n)->dflt;
}

static struct lysc_type *yg_leaf_type(const struct lysc_node *n) {
	if (n->nodetype == LYS_LEAF)
		return ((struct lysc_node_leaf *)n)->type;
	return ((struct lysc_node_leaflist *)n)->type;
}

static const char *yg_leaf_units(const struct lysc_node *n) {
	if (n->nodetype == LYS_LEAF)
		return ((struct lysc_node_leaf *)n)->units;
	return ((struct lysc_node_leaflist *)n)->units;
}

static uint32_t yg_node_min(const struct lysc_node *n) {
	if (n->nodetype == LYS_LEAFLIST)
		return ((struct lysc_node_leaflist *)n)->min;
	return ((struct lysc_node_list *)n)->min;
}

static uint32_t yg_node_max(const struct lysc_node *n) {
	if (n->nodetype == LYS_LEAFLIST)
		return ((struct lysc_node_leaflist *)n)->max;
	return ((struct lysc_node_list *)n)->max;
}

static struct lysc_node *yg_node_actions(const struct lysc_node *n) {
	if (n->nodetype == LYS_CONTAINER)
		return (struct lysc_node *)((struct lysc_node_container *)n)->actions;
	if (n->nodetype == LYS_LIST)
		return (struct lysc_node *)((struct lysc_node_list *)n)->actions;
	return NULL;
}

static struct lysc_node *yg_node_notifs(const struct lysc_node *n) {
	if (n->nodetype == LYS_CONTAINER)
		return (struct lysc_node *)((struct lysc_node_container *)n)->notifs;
	if (n->nodetype == LYS_LIST)
		return (struct lysc_node *)((struct lysc_node_list *)n)->notifs;
	return NULL;
}

static struct lysc_node *yg_action_child(const struct lysc_node *n, int output) {
	struct lysc_node_action *act = (struct lysc_node_action *)n;
	return output ? act->output.child : act->input.child;
}

static struct lysc_must *yg_action_musts(const struct lysc_node *n, int output) {
	struct lysc_node_action *act = (struct lysc_node_action *)n;
	return output ? act->output.musts : act->input.musts;
}

static uint64_t yg_array_count(const void *a) {
	return a ? LY_ARRAY_COUNT(a) : 0;
}

static struct lysc_must *yg_must_at(struct lysc_must *arr, uint64_t i) {
	return &arr[i];
}

static struct lysc_when *yg_when_at(struct lysc_when **arr, uint64_t i) {
	return arr[i];
}

static struct lysc_type *yg_leafref_realtype(const struct lysc_type *t) {
	return ((struct lysc_type_leafref *)t)->realtype;
}
*/
import "C"
import "unsafe"

// Module wraps a lys_module handle, owned by its context.
type Module struct {
	ptr *C.struct_lys_module
}

func (m Module) Valid() bool { return m.ptr != nil }

// SchemaNode wraps a compiled lysc_node handle, owned by its context.
type SchemaNode struct {
	ptr *C.struct_lysc_node
}

func (n SchemaNode) Valid() bool { return n.ptr != nil }

// LeafType wraps a lysc_type handle.
type LeafType struct {
	ptr *C.struct_lysc_type
}

func (t LeafType) Valid() bool { return t.ptr != nil }

// Must wraps a lysc_must record.
type Must struct {
	ptr *C.struct_lysc_must
}

// When wraps a lysc_when record.
type When struct {
	ptr *C.struct_lysc_when
}

// Schema node type bits (lysc_node nodetype).
const (
	NodeUnknown      = 0
	NodeContainer    = int(C.LYS_CONTAINER)
	NodeChoice       = int(C.LYS_CHOICE)
	NodeLeaf         = int(C.LYS_LEAF)
	NodeLeafList     = int(C.LYS_LEAFLIST)
	NodeList         = int(C.LYS_LIST)
	NodeAnyXML       = int(C.LYS_ANYXML)
	NodeAnyData      = int(C.LYS_ANYDATA)
	NodeCase         = int(C.LYS_CASE)
	NodeRPC          = int(C.LYS_RPC)
	NodeAction       = int(C.LYS_ACTION)
	NodeNotification = int(C.LYS_NOTIF)
	NodeInput        = int(C.LYS_INPUT)
	NodeOutput       = int(C.LYS_OUTPUT)
)

// Schema node flag bits (lysc_node flags).
const (
	FlagConfigW    = uint32(C.LYS_CONFIG_W)
	FlagConfigR    = uint32(C.LYS_CONFIG_R)
	FlagStatusCurr = uint32(C.LYS_STATUS_CURR)
	FlagStatusDepr = uint32(C.LYS_STATUS_DEPRC)
	FlagStatusObso = uint32(C.LYS_STATUS_OBSLT)
	FlagMandatory  = uint32(C.LYS_MAND_TRUE)
	FlagPresence   = uint32(C.LYS_PRESENCE)
	FlagKey        = uint32(C.LYS_KEY)
	FlagKeyless    = uint32(C.LYS_KEYLESS)
	FlagOrdByUser  = uint32(C.LYS_ORDBY_USER)
	FlagSetDflt    = uint32(C.LYS_SET_DFLT)
	FlagIsInput    = uint32(C.LYS_IS_INPUT)
	FlagIsOutput   = uint32(C.LYS_IS_OUTPUT)
	FlagIsNotif    = uint32(C.LYS_IS_NOTIF)
)

// Schema print formats (LYS_OUTFORMAT).
const (
	SchemaOutYANG = int(C.LYS_OUT_YANG)
	SchemaOutYIN  = int(C.LYS_OUT_YIN)
	SchemaOutTree = int(C.LYS_OUT_TREE)
)

// Schema path formats (LYSC_PATH_TYPE).
const (
	SchemaPathLog  = int(C.LYSC_PATH_LOG)
	SchemaPathData = int(C.LYSC_PATH_DATA)
)

// ParseModuleMem parses and compiles a schema module from an
// in-memory document.
func ParseModuleMem(ctx Ctx, data string, format int) (Module, int) {
	cdata := C.CString(data)
	defer C.free(unsafe.Pointer(cdata))
	var in *C.struct_ly_in
	ret := C.ly_in_new_memory(cdata, &in)
	if ret != C.LY_SUCCESS {
		return Module{}, int(ret)
	}
	defer C.ly_in_free(in, 0)
	var mod *C.struct_lys_module
	ret = C.lys_parse(ctx.ptr, in, C.LYS_INFORMAT(format), nil, &mod)
	if ret != C.LY_SUCCESS {
		return Module{}, int(ret)
	}
	return Module{ptr: mod}, CodeSuccess
}

func ModuleName(m Module) string      { return goString(m.ptr.name) }
func ModuleRevision(m Module) string  { return goString(m.ptr.revision) }
func ModuleNamespace(m Module) string { return goString(m.ptr.ns) }
func ModulePrefix(m Module) string    { return goString(m.ptr.prefix) }
func ModuleFilepath(m Module) string  { return goString(m.ptr.filepath) }
func ModuleOrg(m Module) string       { return goString(m.ptr.org) }
func ModuleContact(m Module) string   { return goString(m.ptr.contact) }
func ModuleDsc(m Module) string       { return goString(m.ptr.dsc) }
func ModuleRef(m Module) string       { return goString(m.ptr.ref) }

func ModuleImplemented(m Module) bool { return m.ptr.implemented != 0 }

func ModuleSetImplemented(m Module) int {
	return int(C.lys_set_implemented(m.ptr, nil))
}

// ModuleFeatureValue returns the LY_ERR state of a feature: LY_SUCCESS
// when enabled, LY_ENOT when disabled, other codes on error.
func ModuleFeatureValue(m Module, feature string) int {
	cfeat := C.CString(feature)
	defer C.free(unsafe.Pointer(cfeat))
	return int(C.lys_feature_value(m.ptr, cfeat))
}

// ModulePrintMem prints the schema in the given LYS_OUTFORMAT.
func ModulePrintMem(m Module, format int, options uint32) (string, int) {
	var cstr *C.char
	ret := C.lys_print_mem(&cstr, m.ptr, C.LYS_OUTFORMAT(format), C.uint32_t(options))
	if ret != C.LY_SUCCESS {
		return "", int(ret)
	}
	defer C.free(unsafe.Pointer(cstr))
	return C.GoString(cstr), CodeSuccess
}

// ModuleData returns the first top-level data node of the compiled
// module, invalid when the module is not compiled or has no data.
func ModuleData(m Module) SchemaNode {
	return SchemaNode{ptr: C.yg_module_data(m.ptr)}
}

func ModuleRPCs(m Module) SchemaNode {
	return SchemaNode{ptr: C.yg_module_rpcs(m.ptr)}
}

func ModuleNotifications(m Module) SchemaNode {
	return SchemaNode{ptr: C.yg_module_notifs(m.ptr)}
}

func SchemaNodeType(n SchemaNode) int      { return int(n.ptr.nodetype) }
func SchemaNodeFlags(n SchemaNode) uint32  { return uint32(n.ptr.flags) }
func SchemaNodeName(n SchemaNode) string   { return goString(n.ptr.name) }
func SchemaNodeDsc(n SchemaNode) string    { return goString(n.ptr.dsc) }
func SchemaNodeRef(n SchemaNode) string    { return goString(n.ptr.ref) }
func SchemaNodeModule(n SchemaNode) Module { return Module{ptr: n.ptr.module} }

func SchemaNodeParent(n SchemaNode) SchemaNode {
	return SchemaNode{ptr: n.ptr.parent}
}

func SchemaNodeNext(n SchemaNode) SchemaNode {
	return SchemaNode{ptr: n.ptr.next}
}

func SchemaNodeChild(n SchemaNode) SchemaNode {
	child := C.lysc_node_child(n.ptr)
	return SchemaNode{ptr: (*C.struct_lysc_node)(unsafe.Pointer(child))}
}

// SchemaNodePath renders the path of the node in the given
// LYSC_PATH_TYPE format.
func SchemaNodePath(n SchemaNode, pathType int) string {
	buf := make([]byte, 4096)
	cbuf := (*C.char)(unsafe.Pointer(&buf[0]))
	ret := C.lysc_path(n.ptr, C.LYSC_PATH_TYPE(pathType), cbuf, C.size_t(len(buf)))
	if ret == nil {
		return ""
	}
	return C.GoString(cbuf)
}

// SchemaFindXPath evaluates an XPath expression on schema nodes. The
// context node may be invalid to search from the root.
func SchemaFindXPath(ctx Ctx, ctxNode SchemaNode, expr string) ([]SchemaNode, int) {
	cexpr := C.CString(expr)
	defer C.free(unsafe.Pointer(cexpr))
	var set *C.struct_ly_set
	ret := C.lys_find_xpath(ctx.ptr, ctxNode.ptr, cexpr, 0, &set)
	if ret != C.LY_SUCCESS {
		return nil, int(ret)
	}
	defer C.ly_set_free(set, nil)
	nodes := make([]SchemaNode, 0, int(set.count))
	for i := C.uint32_t(0); i < set.count; i++ {
		nodes = append(nodes, SchemaNode{ptr: C.yg_set_snode(set, i)})
	}
	return nodes, CodeSuccess
}

// SchemaFindPath resolves a single schema node from a data path.
func SchemaFindPath(ctx Ctx, ctxNode SchemaNode, path string, output bool) SchemaNode {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	node := C.lys_find_path(ctx.ptr, ctxNode.ptr, cpath, cBool(output))
	return SchemaNode{ptr: (*C.struct_lysc_node)(unsafe.Pointer(node))}
}

// SchemaLeafDefault returns the default value record of a leaf node.
func SchemaLeafDefault(ctx Ctx, n SchemaNode) (Value, bool) {
	dflt := C.yg_leaf_default(n.ptr)
	if dflt == nil {
		return Value{}, false
	}
	return valueFromRaw(ctx, dflt), true
}

// SchemaChoiceDefault returns the default case of a choice node.
func SchemaChoiceDefault(n SchemaNode) SchemaNode {
	return SchemaNode{ptr: C.yg_choice_default(n.ptr)}
}

func SchemaLeafTypeOf(n SchemaNode) LeafType {
	return LeafType{ptr: C.yg_leaf_type(n.ptr)}
}

func SchemaLeafUnits(n SchemaNode) string {
	return goString(C.yg_leaf_units(n.ptr))
}

func SchemaNodeMin(n SchemaNode) uint32 { return uint32(C.yg_node_min(n.ptr)) }
func SchemaNodeMax(n SchemaNode) uint32 { return uint32(C.yg_node_max(n.ptr)) }

func SchemaNodeActions(n SchemaNode) SchemaNode {
	return SchemaNode{ptr: C.yg_node_actions(n.ptr)}
}

func SchemaNodeNotifs(n SchemaNode) SchemaNode {
	return SchemaNode{ptr: C.yg_node_notifs(n.ptr)}
}

// SchemaActionChild returns the first child of the input or output
// block of an RPC or action node.
func SchemaActionChild(n SchemaNode, output bool) SchemaNode {
	return SchemaNode{ptr: C.yg_action_child(n.ptr, cInt(output))}
}

func SchemaActionMusts(n SchemaNode, output bool) []Must {
	arr := C.yg_action_musts(n.ptr, cInt(output))
	return mustSlice(arr)
}

// SchemaNodeMusts returns the must restrictions of a node.
func SchemaNodeMusts(n SchemaNode) []Must {
	return mustSlice(C.lysc_node_musts(n.ptr))
}

// SchemaNodeWhens returns the when conditions of a node.
func SchemaNodeWhens(n SchemaNode) []When {
	arr := C.lysc_node_when(n.ptr)
	count := uint64(C.yg_array_count(unsafe.Pointer(arr)))
	whens := make([]When, 0, count)
	for i := uint64(0); i < count; i++ {
		whens = append(whens, When{ptr: C.yg_when_at(arr, C.uint64_t(i))})
	}
	return whens
}

func mustSlice(arr *C.struct_lysc_must) []Must {
	count := uint64(C.yg_array_count(unsafe.Pointer(arr)))
	musts := make([]Must, 0, count)
	for i := uint64(0); i < count; i++ {
		musts = append(musts, Must{ptr: C.yg_must_at(arr, C.uint64_t(i))})
	}
	return musts
}

func MustDsc(m Must) string    { return goString(m.ptr.dsc) }
func MustRef(m Must) string    { return goString(m.ptr.ref) }
func MustEmsg(m Must) string   { return goString(m.ptr.emsg) }
func MustApptag(m Must) string { return goString(m.ptr.eapptag) }

func WhenDsc(w When) string { return goString(w.ptr.dsc) }
func WhenRef(w When) string { return goString(w.ptr.ref) }

// LeafTypeBase returns the LY_DATA_TYPE base type number.
func LeafTypeBase(t LeafType) int { return int(t.ptr.basetype) }

// LeafTypeName returns the typedef name, empty for built-in types.
func LeafTypeName(t LeafType) string { return goString(t.ptr.name) }

// LeafrefRealType resolves the first non-leafref type in a leafref
// chain. Only meaningful when the base type is LY_TYPE_LEAFREF.
func LeafrefRealType(t LeafType) LeafType {
	return LeafType{ptr: C.yg_leafref_realtype(t.ptr)}
}

func cBool(b bool) C.ly_bool {
	if b {
		return 1
	}
	return 0
}

func cInt(b bool) C.int {
	if b {
		return 1
	}
	return 0
}
