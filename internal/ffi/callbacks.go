package ffi

// The exported callbacks libyang calls back into. Per cgo rules this
// file's preamble contains declarations only; the registration helpers
// live in ffi.go.

/*
#include <stdlib.h>
#include <libyang/libyang.h>

void yg_set_log_clb(void);
void yg_set_imp_clb(struct ly_ctx *ctx, void *user_data);
void yg_clear_imp_clb(struct ly_ctx *ctx);
*/
import "C"
import (
	"sync"
	"unsafe"
)

// LogFunc receives a libyang log record.
type LogFunc func(level int, msg, dataPath, schemaPath string, line uint64)

// ImportFunc resolves an imported or included module from memory. It
// returns the module source in YANG format and true, or false when the
// module is not provided by the caller.
type ImportFunc func(modName, modRev, submodName, submodRev string) (string, bool)

var (
	cbMu     sync.Mutex
	logCb    LogFunc
	importCb = make(map[unsafe.Pointer]*importState)
)

type importState struct {
	resolve ImportFunc
	served  []unsafe.Pointer
}

// SetLogOptionsStoreLast disables libyang's automatic logging to stderr
// while keeping the last error record available for ly_err_last.
func SetLogOptionsStoreLast() {
	C.ly_log_options(C.LY_LOSTORE_LAST)
}

// SetLogLevel adjusts the global libyang log verbosity.
func SetLogLevel(level int) {
	C.ly_log_level(C.LY_LOG_LEVEL(level))
}

// SetLogCallback installs fn as the process-wide libyang logger and
// enables message delivery in addition to last-error storage.
func SetLogCallback(fn LogFunc) {
	cbMu.Lock()
	logCb = fn
	cbMu.Unlock()
	C.ly_log_options(C.LY_LOLOG | C.LY_LOSTORE_LAST)
	C.yg_set_log_clb()
}

//export goLogCb
func goLogCb(level C.LY_LOG_LEVEL, msg, dataPath, schemaPath *C.char, line C.uint64_t) {
	cbMu.Lock()
	fn := logCb
	cbMu.Unlock()
	if fn == nil {
		return
	}
	fn(int(level), goString(msg), goString(dataPath), goString(schemaPath), uint64(line))
}

// CtxSetImportCallback registers fn as the module import resolver of
// the context. Module sources handed to libyang are kept alive in C
// memory until the callback is cleared or the context handle released
// through CtxClearImportCallback.
func CtxSetImportCallback(ctx Ctx, fn ImportFunc) {
	key := unsafe.Pointer(ctx.ptr)
	state := &importState{resolve: fn}
	cbMu.Lock()
	if prev := importCb[key]; prev != nil {
		// Buffers served by a displaced resolver stay owned here so
		// the clear path still releases every one of them.
		state.served = prev.served
	}
	importCb[key] = state
	cbMu.Unlock()
	C.yg_set_imp_clb(ctx.ptr, key)
}

// CtxClearImportCallback removes the context's import resolver and
// frees any module sources served to libyang.
func CtxClearImportCallback(ctx Ctx) {
	key := unsafe.Pointer(ctx.ptr)
	if ctx.ptr != nil {
		C.yg_clear_imp_clb(ctx.ptr)
	}
	cbMu.Lock()
	state := importCb[key]
	delete(importCb, key)
	cbMu.Unlock()
	if state != nil {
		for _, p := range state.served {
			C.free(p)
		}
	}
}

//export goModuleImportCb
func goModuleImportCb(modName, modRev, submodName, submodRev *C.char,
	userData unsafe.Pointer, format *C.LYS_INFORMAT,
	moduleData **C.char, freeCb *C.ly_module_imp_data_free_clb) C.LY_ERR {

	cbMu.Lock()
	state := importCb[userData]
	cbMu.Unlock()
	if state == nil {
		return C.LY_ENOTFOUND
	}

	src, ok := state.resolve(goString(modName), goString(modRev),
		goString(submodName), goString(submodRev))
	if !ok {
		return C.LY_ENOTFOUND
	}

	cdata := C.CString(src)
	cbMu.Lock()
	state.served = append(state.served, unsafe.Pointer(cdata))
	cbMu.Unlock()

	*format = C.LYS_IN_YANG
	*moduleData = cdata
	// freeCb stays unset: the source buffer is owned on the Go side
	// and released in CtxClearImportCallback.
	_ = freeCb
	return C.LY_SUCCESS
}
