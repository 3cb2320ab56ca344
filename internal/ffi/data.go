package ffi

/*
#include <stdlib.h>
#include <string.h>
#include <libyang/libyang.h>

static struct lyd_node *yg_set_dnode(const struct ly_set *s, uint32_t i) {
	return s->dnodes[i];
}

static struct lyd_node *yg_dnode_parent(const struct lyd_node *n) {
	return (struct lyd_node *)n->parent;
}

static const struct lyd_value *yg_term_value(const struct lyd_node *n) {
	return &((const struct lyd_node_term *)n)->value;
}

static int yg_value_basetype(const struct lyd_value *v) {
	return v->realtype ? (int)v->realtype->basetype : 0;
}

static int8_t yg_value_int8(const struct lyd_value *v)     { return v->int8; }
static int16_t yg_value_int16(const struct lyd_value *v)   { return v->int16; }
static int32_t yg_value_int32(const struct lyd_value *v)   { return v->int32; }
static int64_t yg_value_int64(const struct lyd_value *v)   { return v->int64; }
static uint8_t yg_value_uint8(const struct lyd_value *v)   { return v->uint8; }
static uint16_t yg_value_uint16(const struct lyd_value *v) { return v->uint16; }
static uint32_t yg_value_uint32(const struct lyd_value *v) { return v->uint32; }
static uint64_t yg_value_uint64(const struct lyd_value *v) { return v->uint64; }
static int yg_value_bool(const struct lyd_value *v)        { return v->boolean; }
static int64_t yg_value_dec64(const struct lyd_value *v)   { return v->dec64; }
*/
import "C"
import "unsafe"

// DataNode wraps a lyd_node handle, owned by its tree.
type DataNode struct {
	ptr *C.struct_lyd_node
}

func (n DataNode) Valid() bool { return n.ptr != nil }

// Meta wraps a lyd_meta handle attached to a data node.
type Meta struct {
	ptr *C.struct_lyd_meta
}

func (m Meta) Valid() bool { return m.ptr != nil }

// Data formats (LYD_FORMAT).
const (
	FormatUnknown = int(C.LYD_UNKNOWN)
	FormatXML     = int(C.LYD_XML)
	FormatJSON    = int(C.LYD_JSON)
	FormatLYB     = int(C.LYD_LYB)
)

// Schema input formats (LYS_INFORMAT).
const (
	SchemaInYANG = int(C.LYS_IN_YANG)
	SchemaInYIN  = int(C.LYS_IN_YIN)
)

// Operation types for lyd_parse_op (LYD_TYPE).
const (
	OpDataYANG     = int(C.LYD_TYPE_DATA_YANG)
	OpRPCYANG      = int(C.LYD_TYPE_RPC_YANG)
	OpNotifYANG    = int(C.LYD_TYPE_NOTIF_YANG)
	OpReplyYANG    = int(C.LYD_TYPE_REPLY_YANG)
	OpRPCNetconf   = int(C.LYD_TYPE_RPC_NETCONF)
	OpNotifNetconf = int(C.LYD_TYPE_NOTIF_NETCONF)
	OpReplyNetconf = int(C.LYD_TYPE_REPLY_NETCONF)
)

// Data path formats (LYD_PATH_TYPE).
const (
	DataPathStd           = int(C.LYD_PATH_STD)
	DataPathStdNoLastPred = int(C.LYD_PATH_STD_NO_LAST_PRED)
)

// Base data types (LY_DATA_TYPE) used by value extraction.
const (
	TypeUnknown = int(C.LY_TYPE_UNKNOWN)
	TypeBinary  = int(C.LY_TYPE_BINARY)
	TypeUint8   = int(C.LY_TYPE_UINT8)
	TypeUint16  = int(C.LY_TYPE_UINT16)
	TypeUint32  = int(C.LY_TYPE_UINT32)
	TypeUint64  = int(C.LY_TYPE_UINT64)
	TypeString  = int(C.LY_TYPE_STRING)
	TypeBits    = int(C.LY_TYPE_BITS)
	TypeBool    = int(C.LY_TYPE_BOOL)
	TypeDec64   = int(C.LY_TYPE_DEC64)
	TypeEmpty   = int(C.LY_TYPE_EMPTY)
	TypeEnum    = int(C.LY_TYPE_ENUM)
	TypeIdent   = int(C.LY_TYPE_IDENT)
	TypeInstID  = int(C.LY_TYPE_INST)
	TypeLeafref = int(C.LY_TYPE_LEAFREF)
	TypeUnion   = int(C.LY_TYPE_UNION)
	TypeInt8    = int(C.LY_TYPE_INT8)
	TypeInt16   = int(C.LY_TYPE_INT16)
	TypeInt32   = int(C.LY_TYPE_INT32)
	TypeInt64   = int(C.LY_TYPE_INT64)
)

// Parse option bits (LYD_PARSE_*).
const (
	ParseOnly      = uint32(C.LYD_PARSE_ONLY)
	ParseStrict    = uint32(C.LYD_PARSE_STRICT)
	ParseOpaq      = uint32(C.LYD_PARSE_OPAQ)
	ParseNoState   = uint32(C.LYD_PARSE_NO_STATE)
	ParseLybModUpd = uint32(C.LYD_PARSE_LYB_MOD_UPDATE)
	ParseOrdered   = uint32(C.LYD_PARSE_ORDERED)
)

// Validation option bits (LYD_VALIDATE_*).
const (
	ValidateNoState = uint32(C.LYD_VALIDATE_NO_STATE)
	ValidatePresent = uint32(C.LYD_VALIDATE_PRESENT)
)

// Print option bits (LYD_PRINT_*).
const (
	PrintWithSiblings  = uint32(C.LYD_PRINT_WITHSIBLINGS)
	PrintShrink        = uint32(C.LYD_PRINT_SHRINK)
	PrintKeepEmptyCont = uint32(C.LYD_PRINT_KEEPEMPTYCONT)
	PrintWDAll         = uint32(C.LYD_PRINT_WD_ALL)
	PrintWDAllTag      = uint32(C.LYD_PRINT_WD_ALL_TAG)
	PrintWDExplicit    = uint32(C.LYD_PRINT_WD_EXPLICIT)
	PrintWDImplicitTag = uint32(C.LYD_PRINT_WD_IMPL_TAG)
	PrintWDTrim        = uint32(C.LYD_PRINT_WD_TRIM)
)

// Schema print option bits (LYS_PRINT_*).
const (
	SchemaPrintShrink    = uint32(C.LYS_PRINT_SHRINK)
	SchemaPrintNoSubstmt = uint32(C.LYS_PRINT_NO_SUBSTMT)
)

// Implicit node option bits (LYD_IMPLICIT_*).
const (
	ImplicitNoState    = uint32(C.LYD_IMPLICIT_NO_STATE)
	ImplicitNoConfig   = uint32(C.LYD_IMPLICIT_NO_CONFIG)
	ImplicitOutput     = uint32(C.LYD_IMPLICIT_OUTPUT)
	ImplicitNoDefaults = uint32(C.LYD_IMPLICIT_NO_DEFAULTS)
)

// Diff option bits (lyd_diff_siblings options).
const (
	DiffDefaults = uint16(C.LYD_DIFF_DEFAULTS)
)

// New path option bits (LYD_NEW_PATH_*, LYD_NEW_VAL_*).
const (
	NewPathUpdate = uint32(C.LYD_NEW_PATH_UPDATE)
	NewValOutput  = uint32(C.LYD_NEW_VAL_OUTPUT)
)

// Dup option bits (LYD_DUP_*).
const (
	DupRecursive   = uint32(C.LYD_DUP_RECURSIVE)
	DupWithFlags   = uint32(C.LYD_DUP_WITH_FLAGS)
	DupWithParents = uint32(C.LYD_DUP_WITH_PARENTS)
	DupNoMeta      = uint32(C.LYD_DUP_NO_META)
)

// Merge option bits (LYD_MERGE_*).
const (
	MergeDestruct  = uint16(C.LYD_MERGE_DESTRUCT)
	MergeDefaults  = uint16(C.LYD_MERGE_DEFAULTS)
	MergeWithFlags = uint16(C.LYD_MERGE_WITH_FLAGS)
)

// ParseDataMem parses a data tree from an in-memory document.
func ParseDataMem(ctx Ctx, data string, format int, parseOpts, validationOpts uint32) (DataNode, int) {
	cdata := C.CString(data)
	defer C.free(unsafe.Pointer(cdata))
	var tree *C.struct_lyd_node
	ret := C.lyd_parse_data_mem(ctx.ptr, cdata, C.LYD_FORMAT(format),
		C.uint32_t(parseOpts), C.uint32_t(validationOpts), &tree)
	if ret != C.LY_SUCCESS {
		return DataNode{}, int(ret)
	}
	return DataNode{ptr: tree}, CodeSuccess
}

// ParseDataPath parses a data tree from a file.
func ParseDataPath(ctx Ctx, path string, format int, parseOpts, validationOpts uint32) (DataNode, int) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	var in *C.struct_ly_in
	ret := C.ly_in_new_filepath(cpath, 0, &in)
	if ret != C.LY_SUCCESS {
		return DataNode{}, int(ret)
	}
	defer C.ly_in_free(in, 0)
	var tree *C.struct_lyd_node
	ret = C.lyd_parse_data(ctx.ptr, nil, in, C.LYD_FORMAT(format),
		C.uint32_t(parseOpts), C.uint32_t(validationOpts), &tree)
	if ret != C.LY_SUCCESS {
		return DataNode{}, int(ret)
	}
	return DataNode{ptr: tree}, CodeSuccess
}

// ParseOpMem parses an RPC, action, notification or reply from an
// in-memory document. parent, when valid, receives the parsed content
// (a reply's output arguments attach to the request operation node).
// Returns the envelope tree and the operation node; on error a
// partially parsed envelope is freed before returning.
func ParseOpMem(ctx Ctx, parent DataNode, data string, format int, opType int) (DataNode, DataNode, int) {
	cdata := C.CString(data)
	defer C.free(unsafe.Pointer(cdata))
	var in *C.struct_ly_in
	ret := C.ly_in_new_memory(cdata, &in)
	if ret != C.LY_SUCCESS {
		return DataNode{}, DataNode{}, int(ret)
	}
	defer C.ly_in_free(in, 0)
	var tree, op *C.struct_lyd_node
	ret = C.lyd_parse_op(ctx.ptr, parent.ptr, in, C.LYD_FORMAT(format),
		C.enum_lyd_type(opType), &tree, &op)
	if ret != C.LY_SUCCESS {
		if tree != nil {
			C.lyd_free_all(tree)
		}
		return DataNode{}, DataNode{}, int(ret)
	}
	return DataNode{ptr: tree}, DataNode{ptr: op}, CodeSuccess
}

// PrintMem serializes a data tree. LYB output may contain NUL bytes,
// so the result is returned as a byte slice sized by
// lyd_lyb_data_length for that format.
func PrintMem(node DataNode, format int, options uint32) ([]byte, int) {
	var cstr *C.char
	ret := C.lyd_print_mem(&cstr, node.ptr, C.LYD_FORMAT(format), C.uint32_t(options))
	if ret != C.LY_SUCCESS {
		return nil, int(ret)
	}
	defer C.free(unsafe.Pointer(cstr))
	if cstr == nil {
		return nil, CodeSuccess
	}
	var length C.int
	if format == FormatLYB {
		length = C.lyd_lyb_data_length(cstr)
		if length < 0 {
			return nil, CodeInternal
		}
	} else {
		length = C.int(C.strlen(cstr))
	}
	return C.GoBytes(unsafe.Pointer(cstr), length), CodeSuccess
}

// FreeAll frees the whole data tree including all siblings.
func FreeAll(node DataNode) {
	C.lyd_free_all(node.ptr)
}

// FreeTree frees a single subtree.
func FreeTree(node DataNode) {
	C.lyd_free_tree(node.ptr)
}

// UnlinkTree detaches a subtree from its parent and siblings.
func UnlinkTree(node DataNode) {
	C.lyd_unlink_tree(node.ptr)
}

func FirstSibling(node DataNode) DataNode {
	return DataNode{ptr: C.lyd_first_sibling(node.ptr)}
}

// ValidateAll validates and auto-completes a data tree. The tree head
// may move during validation.
func ValidateAll(node DataNode, ctx Ctx, options uint32) (DataNode, int) {
	tree := node.ptr
	ret := C.lyd_validate_all(&tree, ctx.ptr, C.uint32_t(options), nil)
	return DataNode{ptr: tree}, int(ret)
}

// NewPath creates a node, and all its missing ancestors, addressed by
// a data path. Returns the deepest created or updated node relative to
// the tree, plus the possibly new tree head.
func NewPath(node DataNode, ctx Ctx, path, value string, options uint32) (DataNode, DataNode, int) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	var cvalue *C.char
	if value != "" {
		cvalue = C.CString(value)
		defer C.free(unsafe.Pointer(cvalue))
	}
	var parent *C.struct_lyd_node
	if node.Valid() {
		parent = node.ptr
	}
	var newParent, newNode *C.struct_lyd_node
	ret := C.lyd_new_path2(parent, ctx.ptr, cpath, unsafe.Pointer(cvalue), 0,
		C.LYD_ANYDATA_STRING, C.uint32_t(options), &newParent, &newNode)
	if ret != C.LY_SUCCESS {
		return DataNode{}, DataNode{}, int(ret)
	}
	head := parent
	if head == nil {
		head = newParent
	}
	return DataNode{ptr: newNode}, DataNode{ptr: C.lyd_first_sibling(head)}, CodeSuccess
}

// NewInner creates a container, notification, RPC or action node.
func NewInner(parent DataNode, mod Module, name string) (DataNode, int) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var out *C.struct_lyd_node
	ret := C.lyd_new_inner(parent.ptr, mod.ptr, cname, 0, &out)
	if ret != C.LY_SUCCESS {
		return DataNode{}, int(ret)
	}
	return DataNode{ptr: out}, CodeSuccess
}

// NewList creates a list node with all keys given as a single
// predicate string, e.g. "[name='eth0']".
func NewList(parent DataNode, mod Module, name, keys string) (DataNode, int) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	ckeys := C.CString(keys)
	defer C.free(unsafe.Pointer(ckeys))
	var out *C.struct_lyd_node
	ret := C.lyd_new_list2(parent.ptr, mod.ptr, cname, ckeys, 0, &out)
	if ret != C.LY_SUCCESS {
		return DataNode{}, int(ret)
	}
	return DataNode{ptr: out}, CodeSuccess
}

// NewTerm creates a leaf or leaf-list node from a canonical string
// value.
func NewTerm(parent DataNode, mod Module, name, value string) (DataNode, int) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var cvalue *C.char
	if value != "" {
		cvalue = C.CString(value)
		defer C.free(unsafe.Pointer(cvalue))
	}
	var out *C.struct_lyd_node
	ret := C.lyd_new_term(parent.ptr, mod.ptr, cname, cvalue, 0, &out)
	if ret != C.LY_SUCCESS {
		return DataNode{}, int(ret)
	}
	return DataNode{ptr: out}, CodeSuccess
}

// DataFindXPath evaluates an XPath expression on a data tree.
func DataFindXPath(node DataNode, expr string) ([]DataNode, int) {
	cexpr := C.CString(expr)
	defer C.free(unsafe.Pointer(cexpr))
	var set *C.struct_ly_set
	ret := C.lyd_find_xpath(node.ptr, cexpr, &set)
	if ret != C.LY_SUCCESS {
		return nil, int(ret)
	}
	defer C.ly_set_free(set, nil)
	nodes := make([]DataNode, 0, int(set.count))
	for i := C.uint32_t(0); i < set.count; i++ {
		nodes = append(nodes, DataNode{ptr: C.yg_set_dnode(set, i)})
	}
	return nodes, CodeSuccess
}

// DataFindPath resolves a single data node from a data path.
func DataFindPath(node DataNode, path string, output bool) (DataNode, int) {
	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))
	var match *C.struct_lyd_node
	ret := C.lyd_find_path(node.ptr, cpath, cBool(output), &match)
	if ret != C.LY_SUCCESS {
		return DataNode{}, int(ret)
	}
	return DataNode{ptr: match}, CodeSuccess
}

// DupSiblings duplicates a node with all the following siblings.
func DupSiblings(node DataNode, parent DataNode, options uint32) (DataNode, int) {
	var dup *C.struct_lyd_node
	ret := C.lyd_dup_siblings(node.ptr, (*C.struct_lyd_node_inner)(unsafe.Pointer(parent.ptr)),
		C.uint32_t(options), &dup)
	if ret != C.LY_SUCCESS {
		return DataNode{}, int(ret)
	}
	return DataNode{ptr: dup}, CodeSuccess
}

// DupSingle duplicates a single subtree.
func DupSingle(node DataNode, parent DataNode, options uint32) (DataNode, int) {
	var dup *C.struct_lyd_node
	ret := C.lyd_dup_single(node.ptr, (*C.struct_lyd_node_inner)(unsafe.Pointer(parent.ptr)),
		C.uint32_t(options), &dup)
	if ret != C.LY_SUCCESS {
		return DataNode{}, int(ret)
	}
	return DataNode{ptr: dup}, CodeSuccess
}

// MergeSiblings merges a source tree into the target tree. The target
// head may move.
func MergeSiblings(target DataNode, source DataNode, options uint16) (DataNode, int) {
	tree := target.ptr
	ret := C.lyd_merge_siblings(&tree, source.ptr, C.uint16_t(options))
	return DataNode{ptr: tree}, int(ret)
}

// DiffSiblings computes the edits transforming the first tree into the
// second one as a diff data tree.
func DiffSiblings(first DataNode, second DataNode, options uint16) (DataNode, int) {
	var diff *C.struct_lyd_node
	ret := C.lyd_diff_siblings(first.ptr, second.ptr, C.uint16_t(options), &diff)
	if ret != C.LY_SUCCESS {
		return DataNode{}, int(ret)
	}
	return DataNode{ptr: diff}, CodeSuccess
}

// DiffApplyAll applies a diff tree on a data tree. The tree head may
// move.
func DiffApplyAll(tree DataNode, diff DataNode) (DataNode, int) {
	head := tree.ptr
	ret := C.lyd_diff_apply_all(&head, diff.ptr)
	return DataNode{ptr: head}, int(ret)
}

// DiffReverseAll computes the inverse of a diff tree.
func DiffReverseAll(diff DataNode) (DataNode, int) {
	var rev *C.struct_lyd_node
	ret := C.lyd_diff_reverse_all(diff.ptr, &rev)
	if ret != C.LY_SUCCESS {
		return DataNode{}, int(ret)
	}
	return DataNode{ptr: rev}, CodeSuccess
}

// NewImplicitAll adds any missing implicit nodes. The tree head may
// move.
func NewImplicitAll(tree DataNode, ctx Ctx, options uint32) (DataNode, int) {
	head := tree.ptr
	ret := C.lyd_new_implicit_all(&head, ctx.ptr, C.uint32_t(options), nil)
	return DataNode{ptr: head}, int(ret)
}

func IsDefault(node DataNode) bool {
	return C.lyd_is_default(node.ptr) != 0
}

func NodeSchema(node DataNode) SchemaNode {
	return SchemaNode{ptr: node.ptr.schema}
}

func OwnerModule(node DataNode) Module {
	return Module{ptr: C.lyd_owner_module(node.ptr)}
}

func DataParent(node DataNode) DataNode {
	return DataNode{ptr: C.yg_dnode_parent(node.ptr)}
}

func DataNext(node DataNode) DataNode {
	return DataNode{ptr: node.ptr.next}
}

func DataChild(node DataNode) DataNode {
	return DataNode{ptr: C.lyd_child(node.ptr)}
}

// DataPath renders the path of a data node, including list key
// predicates.
func DataPath(node DataNode, pathType int) string {
	cstr := C.lyd_path(node.ptr, C.LYD_PATH_TYPE(pathType), nil, 0)
	if cstr == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(cstr))
	return C.GoString(cstr)
}

// TermCanonical returns the canonical string representation of a term
// node value.
func TermCanonical(node DataNode) string {
	return goString(C.lyd_get_value(node.ptr))
}

// Value is the decoded value of a term node or default record.
type Value struct {
	Base      int
	Int       int64
	Uint      uint64
	Bool      bool
	Dec64     int64
	Canonical string
}

// TermValue decodes the typed value of a term node.
func TermValue(ctx Ctx, node DataNode) Value {
	return valueFromRaw(ctx, C.yg_term_value(node.ptr))
}

func valueFromRaw(ctx Ctx, raw *C.struct_lyd_value) Value {
	v := Value{Base: int(C.yg_value_basetype(raw))}
	switch v.Base {
	case TypeInt8:
		v.Int = int64(C.yg_value_int8(raw))
	case TypeInt16:
		v.Int = int64(C.yg_value_int16(raw))
	case TypeInt32:
		v.Int = int64(C.yg_value_int32(raw))
	case TypeInt64:
		v.Int = int64(C.yg_value_int64(raw))
	case TypeUint8:
		v.Uint = uint64(C.yg_value_uint8(raw))
	case TypeUint16:
		v.Uint = uint64(C.yg_value_uint16(raw))
	case TypeUint32:
		v.Uint = uint64(C.yg_value_uint32(raw))
	case TypeUint64:
		v.Uint = uint64(C.yg_value_uint64(raw))
	case TypeBool:
		v.Bool = C.yg_value_bool(raw) != 0
	case TypeDec64:
		v.Dec64 = int64(C.yg_value_dec64(raw))
	}
	ccanon := C.lyd_value_get_canonical(ctx.ptr, raw)
	v.Canonical = goString(ccanon)
	return v
}

// NodeMeta returns the first metadata record of a node.
func NodeMeta(node DataNode) Meta {
	return Meta{ptr: node.ptr.meta}
}

func MetaNext(m Meta) Meta {
	return Meta{ptr: m.ptr.next}
}

func MetaName(m Meta) string {
	return goString(m.ptr.name)
}

func MetaModule(m Meta) Module {
	return Module{ptr: m.ptr.annotation.module}
}

func MetaValue(ctx Ctx, m Meta) string {
	return goString(C.lyd_value_get_canonical(ctx.ptr, &m.ptr.value))
}

// NewMeta attaches a metadata record to a node.
func NewMeta(ctx Ctx, node DataNode, mod Module, name, value string) (Meta, int) {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	cvalue := C.CString(value)
	defer C.free(unsafe.Pointer(cvalue))
	var meta *C.struct_lyd_meta
	ret := C.lyd_new_meta(ctx.ptr, node.ptr, mod.ptr, cname, cvalue, 0, &meta)
	if ret != C.LY_SUCCESS {
		return Meta{}, int(ret)
	}
	return Meta{ptr: meta}, CodeSuccess
}
