// Package ffi provides the CGo declarations for the libyang3 C library.
//
// # Linkage
//
// By default the package links dynamically against the system libyang3,
// located through pkg-config. Building with the "libyang_bundled" tag
// links a static archive instead; install it first with:
//
//	go run github.com/holo-routing/yang-go/cmd/libyang-install@latest
//
// # Build Errors
//
// If pkg-config cannot find libyang, install the libyang development
// package (e.g. libyang-dev, libyang-devel) or switch to bundled
// linkage as described above.
//
// Everything exported from this package is expressed in plain Go types;
// the C world never leaks past the package boundary. The yang package
// on top adds ownership guards, flag sets and error translation.
package ffi

/*
#include <stdlib.h>
#include <libyang/libyang.h>

extern void goLogCb(LY_LOG_LEVEL level, const char *msg, const char *data_path,
		const char *schema_path, uint64_t line);
extern LY_ERR goModuleImportCb(const char *mod_name, const char *mod_rev,
		const char *submod_name, const char *submod_rev, void *user_data,
		LYS_INFORMAT *format, const char **module_data,
		ly_module_imp_data_free_clb *free_module_data);

void yg_set_log_clb(void) {
	ly_set_log_clb(goLogCb);
}

void yg_set_imp_clb(struct ly_ctx *ctx, void *user_data) {
	ly_ctx_set_module_imp_clb(ctx, goModuleImportCb, user_data);
}

void yg_clear_imp_clb(struct ly_ctx *ctx) {
	ly_ctx_set_module_imp_clb(ctx, NULL, NULL);
}
*/
import "C"
import (
	"unsafe"
)

// Native LY_ERR return codes.
const (
	CodeSuccess    = int(C.LY_SUCCESS)
	CodeMemory     = int(C.LY_EMEM)
	CodeSyscall    = int(C.LY_ESYS)
	CodeInvalid    = int(C.LY_EINVAL)
	CodeExists     = int(C.LY_EEXIST)
	CodeNotFound   = int(C.LY_ENOTFOUND)
	CodeInternal   = int(C.LY_EINT)
	CodeValidation = int(C.LY_EVALID)
	CodeDenied     = int(C.LY_EDENIED)
	CodeIncomplete = int(C.LY_EINCOMPLETE)
	CodeRecompile  = int(C.LY_ERECOMPILE)
	CodeNot        = int(C.LY_ENOT)
	CodeOther      = int(C.LY_EOTHER)
)

// Native log levels.
const (
	LevelError   = int(C.LY_LLERR)
	LevelWarning = int(C.LY_LLWRN)
	LevelVerbose = int(C.LY_LLVRB)
	LevelDebug   = int(C.LY_LLDBG)
)

// Context creation option bits (LY_CTX_*).
const (
	CtxAllImplemented      = uint16(C.LY_CTX_ALL_IMPLEMENTED)
	CtxRefImplemented      = uint16(C.LY_CTX_REF_IMPLEMENTED)
	CtxNoYanglibrary       = uint16(C.LY_CTX_NO_YANGLIBRARY)
	CtxDisableSearchdirs   = uint16(C.LY_CTX_DISABLE_SEARCHDIRS)
	CtxDisableSearchdirCwd = uint16(C.LY_CTX_DISABLE_SEARCHDIR_CWD)
	CtxPreferSearchdirs    = uint16(C.LY_CTX_PREFER_SEARCHDIRS)
	CtxSetPrivParsed       = uint16(C.LY_CTX_SET_PRIV_PARSED)
	CtxExplicitCompile     = uint16(C.LY_CTX_EXPLICIT_COMPILE)
	CtxEnableImpFeatures   = uint16(C.LY_CTX_ENABLE_IMP_FEATURES)
	CtxLeafrefExtended     = uint16(C.LY_CTX_LEAFREF_EXTENDED)
	CtxLeafrefLinking      = uint16(C.LY_CTX_LEAFREF_LINKING)
	CtxBuiltinPluginsOnly  = uint16(C.LY_CTX_BUILTIN_PLUGINS_ONLY)
)

// Ctx wraps a ly_ctx handle.
type Ctx struct {
	ptr *C.struct_ly_ctx
}

// Valid reports whether the handle still refers to a native context.
func (c Ctx) Valid() bool { return c.ptr != nil }

// ErrorInfo is the last error record of a context, as reported by
// ly_err_last.
type ErrorInfo struct {
	Code     int
	Msg      string
	DataPath string
	AppTag   string
}

// LastError retrieves the most recent error record stored in the
// context. Returns a zero-code record when none is stored.
func LastError(ctx Ctx) ErrorInfo {
	if ctx.ptr == nil {
		return ErrorInfo{Code: CodeOther}
	}
	item := C.ly_err_last(ctx.ptr)
	if item == nil {
		return ErrorInfo{Code: CodeOther}
	}
	return ErrorInfo{
		Code:     int(item.err),
		Msg:      goString(item.msg),
		DataPath: goString(item.data_path),
		AppTag:   goString(item.apptag),
	}
}

// CtxNew creates a new libyang context. A null searchDir means none.
func CtxNew(searchDir string, options uint16) (Ctx, int) {
	var raw *C.struct_ly_ctx
	var cdir *C.char
	if searchDir != "" {
		cdir = C.CString(searchDir)
		defer C.free(unsafe.Pointer(cdir))
	}
	ret := C.ly_ctx_new(cdir, C.uint16_t(options), &raw)
	if ret != C.LY_SUCCESS {
		return Ctx{}, int(ret)
	}
	return Ctx{ptr: raw}, CodeSuccess
}

// CtxDestroy frees the context and everything owned by it.
func CtxDestroy(ctx Ctx) {
	if ctx.ptr != nil {
		C.ly_ctx_destroy(ctx.ptr)
	}
}

func CtxSetSearchdir(ctx Ctx, dir string) int {
	cdir := C.CString(dir)
	defer C.free(unsafe.Pointer(cdir))
	return int(C.ly_ctx_set_searchdir(ctx.ptr, cdir))
}

// CtxUnsetSearchdir removes a specific search path, or all of them when
// dir is empty.
func CtxUnsetSearchdir(ctx Ctx, dir string) int {
	var cdir *C.char
	if dir != "" {
		cdir = C.CString(dir)
		defer C.free(unsafe.Pointer(cdir))
	}
	return int(C.ly_ctx_unset_searchdir(ctx.ptr, cdir))
}

func CtxUnsetSearchdirLast(ctx Ctx, count uint32) int {
	return int(C.ly_ctx_unset_searchdir_last(ctx.ptr, C.uint32_t(count)))
}

func CtxGetOptions(ctx Ctx) uint16 {
	return uint16(C.ly_ctx_get_options(ctx.ptr))
}

func CtxSetOptions(ctx Ctx, options uint16) int {
	return int(C.ly_ctx_set_options(ctx.ptr, C.uint16_t(options)))
}

func CtxUnsetOptions(ctx Ctx, options uint16) int {
	return int(C.ly_ctx_unset_options(ctx.ptr, C.uint16_t(options)))
}

func CtxChangeCount(ctx Ctx) uint16 {
	return uint16(C.ly_ctx_get_change_count(ctx.ptr))
}

func CtxInternalModuleCount(ctx Ctx) uint32 {
	return uint32(C.ly_ctx_internal_modules_count(ctx.ptr))
}

// CtxGetModule looks up a module by name and optional revision (empty
// string selects the revision-less schema).
func CtxGetModule(ctx Ctx, name, revision string) Module {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var crev *C.char
	if revision != "" {
		crev = C.CString(revision)
		defer C.free(unsafe.Pointer(crev))
	}
	return Module{ptr: C.ly_ctx_get_module(ctx.ptr, cname, crev)}
}

func CtxGetModuleLatest(ctx Ctx, name string) Module {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Module{ptr: C.ly_ctx_get_module_latest(ctx.ptr, cname)}
}

func CtxGetModuleImplemented(ctx Ctx, name string) Module {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	return Module{ptr: C.ly_ctx_get_module_implemented(ctx.ptr, cname)}
}

func CtxGetModuleNs(ctx Ctx, ns, revision string) Module {
	cns := C.CString(ns)
	defer C.free(unsafe.Pointer(cns))
	var crev *C.char
	if revision != "" {
		crev = C.CString(revision)
		defer C.free(unsafe.Pointer(crev))
	}
	return Module{ptr: C.ly_ctx_get_module_ns(ctx.ptr, cns, crev)}
}

func CtxGetModuleLatestNs(ctx Ctx, ns string) Module {
	cns := C.CString(ns)
	defer C.free(unsafe.Pointer(cns))
	return Module{ptr: C.ly_ctx_get_module_latest_ns(ctx.ptr, cns)}
}

func CtxGetModuleImplementedNs(ctx Ctx, ns string) Module {
	cns := C.CString(ns)
	defer C.free(unsafe.Pointer(cns))
	return Module{ptr: C.ly_ctx_get_module_implemented_ns(ctx.ptr, cns)}
}

// CtxLoadModule loads a module through the search paths, enabling the
// given features. A nil result means failure; consult LastError.
func CtxLoadModule(ctx Ctx, name, revision string, features []string) Module {
	cname := C.CString(name)
	defer C.free(unsafe.Pointer(cname))
	var crev *C.char
	if revision != "" {
		crev = C.CString(revision)
		defer C.free(unsafe.Pointer(crev))
	}
	cfeat, freeFeat := cStringArray(features)
	defer freeFeat()
	return Module{ptr: C.ly_ctx_load_module(ctx.ptr, cname, crev, cfeat)}
}

// CtxModuleIter advances the module iteration index and returns the
// next module, or an invalid Module at the end.
func CtxModuleIter(ctx Ctx, index *uint32) Module {
	mod := C.ly_ctx_get_module_iter(ctx.ptr, (*C.uint32_t)(unsafe.Pointer(index)))
	return Module{ptr: (*C.struct_lys_module)(mod)}
}

// goString converts a possibly-null C string without freeing it.
func goString(cstr *C.char) string {
	if cstr == nil {
		return ""
	}
	return C.GoString(cstr)
}

// cStringArray builds a null-terminated array of C strings in C memory.
// The returned cleanup function releases everything.
func cStringArray(strs []string) (**C.char, func()) {
	ptrSize := unsafe.Sizeof((*C.char)(nil))
	arr := (**C.char)(C.malloc(C.size_t(uintptr(len(strs)+1) * ptrSize)))
	slice := unsafe.Slice(arr, len(strs)+1)
	for i, s := range strs {
		slice[i] = C.CString(s)
	}
	slice[len(strs)] = nil
	return arr, func() {
		for i := 0; i < len(strs); i++ {
			C.free(unsafe.Pointer(slice[i]))
		}
		C.free(unsafe.Pointer(arr))
	}
}
