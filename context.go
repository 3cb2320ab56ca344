package yang

import (
	"iter"
	"sync"

	"github.com/holo-routing/yang-go/internal/ffi"
)

// ContextOptions is a set of context creation flags. Combine with
// the | operator; the zero value means no options.
type ContextOptions uint16

const (
	// AllImplemented marks all imported modules as implemented.
	AllImplemented ContextOptions = ContextOptions(ffi.CtxAllImplemented)
	// RefImplemented marks referenced modules as implemented.
	RefImplemented ContextOptions = ContextOptions(ffi.CtxRefImplemented)
	// NoYangLibrary skips the internal ietf-yang-library data.
	NoYangLibrary ContextOptions = ContextOptions(ffi.CtxNoYanglibrary)
	// DisableSearchdirs disables module lookup in the search dirs.
	DisableSearchdirs ContextOptions = ContextOptions(ffi.CtxDisableSearchdirs)
	// DisableSearchdirCwd disables module lookup in the working dir.
	DisableSearchdirCwd ContextOptions = ContextOptions(ffi.CtxDisableSearchdirCwd)
	// PreferSearchdirs searches the dirs before the import callback.
	PreferSearchdirs ContextOptions = ContextOptions(ffi.CtxPreferSearchdirs)
	// EnableImpFeatures enables all features of imported modules.
	EnableImpFeatures ContextOptions = ContextOptions(ffi.CtxEnableImpFeatures)
)

// logInit disables libyang's default stderr printing the first time a
// context is created. Errors are stored on the context instead and
// surfaced through *Error.
var logInit sync.Once

// Context owns a libyang context: the set of loaded modules, their
// compiled schemas and the search dir configuration. All schema and
// data handles derived from a Context borrow from it and must not be
// used after Destroy.
//
// A Context is not safe for concurrent use.
type Context struct {
	raw ffi.Ctx
}

// New creates an empty context with the given options.
func New(options ContextOptions) (*Context, error) {
	logInit.Do(func() {
		ffi.SetLogOptionsStoreLast()
	})
	raw, code := ffi.CtxNew("", uint16(options))
	if code != ffi.CodeSuccess {
		return nil, newError(ffi.Ctx{}, code)
	}
	return &Context{raw: raw}, nil
}

// Destroy releases the context and everything loaded in it. It is
// idempotent; any Module, SchemaNode or DataNode obtained from the
// context is invalid afterwards.
func (c *Context) Destroy() {
	if !c.raw.Valid() {
		return
	}
	ffi.CtxClearImportCallback(c.raw)
	ffi.CtxDestroy(c.raw)
	c.raw = ffi.Ctx{}
}

// check panics when the context was already destroyed. Touching the
// native handle after ly_ctx_destroy would read freed memory.
func (c *Context) check() {
	if !c.raw.Valid() {
		panic("yang: use of destroyed Context")
	}
}

// SetSearchdir appends a directory searched for modules on load.
func (c *Context) SetSearchdir(dir string) error {
	c.check()
	if code := ffi.CtxSetSearchdir(c.raw, dir); code != ffi.CodeSuccess {
		return newError(c.raw, code)
	}
	return nil
}

// UnsetSearchdir removes a previously added search directory.
func (c *Context) UnsetSearchdir(dir string) error {
	c.check()
	if code := ffi.CtxUnsetSearchdir(c.raw, dir); code != ffi.CodeSuccess {
		return newError(c.raw, code)
	}
	return nil
}

// UnsetSearchdirs removes all search directories.
func (c *Context) UnsetSearchdirs() error {
	c.check()
	if code := ffi.CtxUnsetSearchdir(c.raw, ""); code != ffi.CodeSuccess {
		return newError(c.raw, code)
	}
	return nil
}

// UnsetSearchdirLast removes the given number of most recently added
// search directories.
func (c *Context) UnsetSearchdirLast(count uint32) error {
	c.check()
	if code := ffi.CtxUnsetSearchdirLast(c.raw, count); code != ffi.CodeSuccess {
		return newError(c.raw, code)
	}
	return nil
}

// Options returns the currently set context options.
func (c *Context) Options() ContextOptions {
	c.check()
	return ContextOptions(ffi.CtxGetOptions(c.raw))
}

// SetOptions enables the given options on a live context.
func (c *Context) SetOptions(options ContextOptions) error {
	c.check()
	if code := ffi.CtxSetOptions(c.raw, uint16(options)); code != ffi.CodeSuccess {
		return newError(c.raw, code)
	}
	return nil
}

// UnsetOptions disables the given options on a live context.
func (c *Context) UnsetOptions(options ContextOptions) error {
	c.check()
	if code := ffi.CtxUnsetOptions(c.raw, uint16(options)); code != ffi.CodeSuccess {
		return newError(c.raw, code)
	}
	return nil
}

// ChangeCount returns a counter incremented on every context content
// change, usable to detect stale caches.
func (c *Context) ChangeCount() uint16 {
	c.check()
	return ffi.CtxChangeCount(c.raw)
}

// InternalModuleCount returns the number of built-in modules loaded in
// every context.
func (c *Context) InternalModuleCount() uint32 {
	c.check()
	return ffi.CtxInternalModuleCount(c.raw)
}

// Module looks up a loaded module by name and revision. An empty
// revision matches only a module without a revision.
func (c *Context) Module(name, revision string) (Module, bool) {
	c.check()
	raw := ffi.CtxGetModule(c.raw, name, revision)
	return Module{ctx: c, raw: raw}, raw.Valid()
}

// LatestModule looks up the latest revision of a loaded module.
func (c *Context) LatestModule(name string) (Module, bool) {
	c.check()
	raw := ffi.CtxGetModuleLatest(c.raw, name)
	return Module{ctx: c, raw: raw}, raw.Valid()
}

// ImplementedModule looks up the implemented revision of a module.
func (c *Context) ImplementedModule(name string) (Module, bool) {
	c.check()
	raw := ffi.CtxGetModuleImplemented(c.raw, name)
	return Module{ctx: c, raw: raw}, raw.Valid()
}

// ModuleByNamespace looks up a loaded module by namespace and
// revision.
func (c *Context) ModuleByNamespace(ns, revision string) (Module, bool) {
	c.check()
	raw := ffi.CtxGetModuleNs(c.raw, ns, revision)
	return Module{ctx: c, raw: raw}, raw.Valid()
}

// LatestModuleByNamespace looks up the latest revision of a module by
// namespace.
func (c *Context) LatestModuleByNamespace(ns string) (Module, bool) {
	c.check()
	raw := ffi.CtxGetModuleLatestNs(c.raw, ns)
	return Module{ctx: c, raw: raw}, raw.Valid()
}

// ImplementedModuleByNamespace looks up the implemented revision of a
// module by namespace.
func (c *Context) ImplementedModuleByNamespace(ns string) (Module, bool) {
	c.check()
	raw := ffi.CtxGetModuleImplementedNs(c.raw, ns)
	return Module{ctx: c, raw: raw}, raw.Valid()
}

// LoadModule loads a module into the context, resolving it through
// the search dirs and the embedded modules. The loaded module is
// implemented and the listed features enabled; features has the
// lys_set_implemented semantics where "*" enables all.
func (c *Context) LoadModule(name, revision string, features ...string) (Module, error) {
	c.check()
	raw := ffi.CtxLoadModule(c.raw, name, revision, features)
	if !raw.Valid() {
		return Module{}, newError(c.raw, ffi.CodeNotFound)
	}
	return Module{ctx: c, raw: raw}, nil
}

// ParseModule parses and compiles a schema module from source held in
// memory.
func (c *Context) ParseModule(data string, format SchemaInputFormat) (Module, error) {
	c.check()
	raw, code := ffi.ParseModuleMem(c.raw, data, int(format))
	if code != ffi.CodeSuccess {
		return Module{}, newError(c.raw, code)
	}
	return Module{ctx: c, raw: raw}, nil
}

// SetEmbeddedModules installs an import resolver serving module
// source from memory, keyed by module name. Entries may also be keyed
// by "name@revision" to pin a revision. Embedded modules are
// consulted when a module cannot be found in the search dirs.
func (c *Context) SetEmbeddedModules(modules map[string]string) {
	c.check()
	ffi.CtxSetImportCallback(c.raw, func(name, rev, subName, subRev string) (string, bool) {
		want := name
		wantRev := rev
		if subName != "" {
			want = subName
			wantRev = subRev
		}
		if wantRev != "" {
			if src, ok := modules[want+"@"+wantRev]; ok {
				return src, true
			}
		}
		src, ok := modules[want]
		return src, ok
	})
}

// UnsetEmbeddedModules removes the embedded module resolver.
func (c *Context) UnsetEmbeddedModules() {
	c.check()
	ffi.CtxClearImportCallback(c.raw)
}

// Modules iterates over the modules loaded in the context.
// skipInternal starts past the built-in modules.
func (c *Context) Modules(skipInternal bool) iter.Seq[Module] {
	c.check()
	return func(yield func(Module) bool) {
		c.check()
		var index uint32
		if skipInternal {
			index = ffi.CtxInternalModuleCount(c.raw)
		}
		for {
			c.check()
			raw := ffi.CtxModuleIter(c.raw, &index)
			if !raw.Valid() {
				return
			}
			if !yield(Module{ctx: c, raw: raw}) {
				return
			}
		}
	}
}

// Traverse iterates over all schema nodes of all loaded modules in
// depth-first order.
func (c *Context) Traverse() iter.Seq[SchemaNode] {
	c.check()
	return func(yield func(SchemaNode) bool) {
		for mod := range c.Modules(false) {
			for node := range mod.Traverse() {
				if !yield(node) {
					return
				}
			}
		}
	}
}

// FindXPath evaluates an XPath expression over the compiled schema
// trees of the context.
func (c *Context) FindXPath(expr string) ([]SchemaNode, error) {
	c.check()
	raws, code := ffi.SchemaFindXPath(c.raw, ffi.SchemaNode{}, expr)
	if code != ffi.CodeSuccess {
		return nil, newError(c.raw, code)
	}
	nodes := make([]SchemaNode, 0, len(raws))
	for _, raw := range raws {
		nodes = append(nodes, SchemaNode{ctx: c, raw: raw})
	}
	return nodes, nil
}

// FindPath resolves a single schema node from a data path.
func (c *Context) FindPath(path string, output bool) (SchemaNode, error) {
	c.check()
	raw := ffi.SchemaFindPath(c.raw, ffi.SchemaNode{}, path, output)
	if !raw.Valid() {
		return SchemaNode{}, newError(c.raw, ffi.CodeNotFound)
	}
	return SchemaNode{ctx: c, raw: raw}, nil
}
