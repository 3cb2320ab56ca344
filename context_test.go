package yang

import (
	"errors"
	"os"
	"testing"
)

// testContext returns a context with the testdata modules loaded.
func testContext(t *testing.T, features ...string) *Context {
	t.Helper()
	ctx, err := New(NoYangLibrary)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(ctx.Destroy)
	if err := ctx.SetSearchdir("testdata/yang"); err != nil {
		t.Fatalf("SetSearchdir: %v", err)
	}
	if _, err := ctx.LoadModule("network-config", "", features...); err != nil {
		t.Fatalf("LoadModule(network-config): %v", err)
	}
	if _, err := ctx.LoadModule("network-routing", ""); err != nil {
		t.Fatalf("LoadModule(network-routing): %v", err)
	}
	return ctx
}

// TestContextCreateDestroy verifies the create/destroy cycle and that
// Destroy is idempotent.
func TestContextCreateDestroy(t *testing.T) {
	ctx, err := New(0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if ctx.InternalModuleCount() == 0 {
		t.Error("InternalModuleCount is zero, built-in modules missing")
	}
	ctx.Destroy()
	ctx.Destroy() // no-op
}

// TestContextUseAfterDestroy verifies that a destroyed context fails
// safely instead of touching freed memory.
func TestContextUseAfterDestroy(t *testing.T) {
	ctx, err := New(0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	mod, ok := ctx.LatestModule("yang")
	if !ok {
		t.Fatal("built-in module yang not found")
	}
	ctx.Destroy()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on use after destroy")
		}
	}()
	_ = mod.Name()
}

// TestLoadModuleNotFound verifies that a missing module surfaces
// ErrNotFound rather than crashing.
func TestLoadModuleNotFound(t *testing.T) {
	ctx, err := New(NoYangLibrary)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ctx.Destroy()

	_, err = ctx.LoadModule("no-such-module", "")
	if err == nil {
		t.Fatal("LoadModule succeeded for a nonexistent module")
	}
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error is not ErrNotFound: %v", err)
	}
	var yerr *Error
	if !errors.As(err, &yerr) {
		t.Fatalf("error is not *Error: %v", err)
	}
	if yerr.Code != CodeNotFound {
		t.Errorf("code = %v, want %v", yerr.Code, CodeNotFound)
	}
}

// TestSearchdirs verifies search dir bookkeeping.
func TestSearchdirs(t *testing.T) {
	ctx, err := New(NoYangLibrary)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ctx.Destroy()

	if err := ctx.SetSearchdir("testdata/yang"); err != nil {
		t.Fatalf("SetSearchdir: %v", err)
	}
	if err := ctx.UnsetSearchdir("testdata/yang"); err != nil {
		t.Fatalf("UnsetSearchdir: %v", err)
	}

	if err := ctx.SetSearchdir("testdata/yang"); err != nil {
		t.Fatalf("SetSearchdir: %v", err)
	}
	if err := ctx.UnsetSearchdirLast(1); err != nil {
		t.Fatalf("UnsetSearchdirLast: %v", err)
	}

	if err := ctx.SetSearchdir("testdata/yang"); err != nil {
		t.Fatalf("SetSearchdir: %v", err)
	}
	if err := ctx.UnsetSearchdirs(); err != nil {
		t.Fatalf("UnsetSearchdirs: %v", err)
	}

	// With no search dirs the module cannot be resolved.
	if _, err := ctx.LoadModule("network-config", ""); err == nil {
		t.Error("LoadModule succeeded without search dirs")
	}
}

// TestContextOptions verifies option get/set/unset and that the zero
// value behaves as no options.
func TestContextOptions(t *testing.T) {
	var none ContextOptions
	ctx, err := New(none)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ctx.Destroy()
	ctx2, err := New(0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ctx2.Destroy()
	if ctx.Options() != ctx2.Options() {
		t.Errorf("zero options differ: %v != %v", ctx.Options(), ctx2.Options())
	}

	if err := ctx.SetOptions(AllImplemented); err != nil {
		t.Fatalf("SetOptions: %v", err)
	}
	if ctx.Options()&AllImplemented == 0 {
		t.Error("AllImplemented not set")
	}
	if err := ctx.UnsetOptions(AllImplemented); err != nil {
		t.Fatalf("UnsetOptions: %v", err)
	}
	if ctx.Options()&AllImplemented != 0 {
		t.Error("AllImplemented still set")
	}
}

// TestModuleLookup verifies the lookup variants by name and
// namespace.
func TestModuleLookup(t *testing.T) {
	ctx := testContext(t)

	if _, ok := ctx.Module("network-config", "2025-06-01"); !ok {
		t.Error("Module by name and revision not found")
	}
	if _, ok := ctx.Module("network-config", "2020-01-01"); ok {
		t.Error("Module found with a wrong revision")
	}
	if _, ok := ctx.LatestModule("network-config"); !ok {
		t.Error("LatestModule not found")
	}
	if _, ok := ctx.ImplementedModule("network-config"); !ok {
		t.Error("ImplementedModule not found")
	}
	if _, ok := ctx.ModuleByNamespace("urn:example:network-config", "2025-06-01"); !ok {
		t.Error("ModuleByNamespace not found")
	}
	if _, ok := ctx.LatestModuleByNamespace("urn:example:network-config"); !ok {
		t.Error("LatestModuleByNamespace not found")
	}
	if _, ok := ctx.ImplementedModuleByNamespace("urn:example:network-config"); !ok {
		t.Error("ImplementedModuleByNamespace not found")
	}
	if _, ok := ctx.LatestModule("no-such-module"); ok {
		t.Error("lookup of a nonexistent module succeeded")
	}
}

// TestChangeCount verifies the change counter moves when the context
// content changes.
func TestChangeCount(t *testing.T) {
	ctx, err := New(NoYangLibrary)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ctx.Destroy()
	if err := ctx.SetSearchdir("testdata/yang"); err != nil {
		t.Fatalf("SetSearchdir: %v", err)
	}

	before := ctx.ChangeCount()
	if _, err := ctx.LoadModule("network-config", ""); err != nil {
		t.Fatalf("LoadModule: %v", err)
	}
	if ctx.ChangeCount() == before {
		t.Error("ChangeCount did not change after module load")
	}
}

// TestEmbeddedModules verifies module resolution from in-memory
// sources without any search dir.
func TestEmbeddedModules(t *testing.T) {
	src, err := os.ReadFile("testdata/yang/network-config.yang")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	ctx, err := New(NoYangLibrary)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ctx.Destroy()

	ctx.SetEmbeddedModules(map[string]string{
		"network-config": string(src),
	})
	mod, err := ctx.LoadModule("network-config", "")
	if err != nil {
		t.Fatalf("LoadModule from embedded source: %v", err)
	}
	if got := mod.Name(); got != "network-config" {
		t.Errorf("Name = %q, want network-config", got)
	}

	ctx.UnsetEmbeddedModules()
	if _, err := ctx.LoadModule("network-routing", ""); err == nil {
		t.Error("LoadModule succeeded after UnsetEmbeddedModules")
	}
}

// TestEmbeddedModulesReplace verifies that installing a new embedded
// resolver over an existing one keeps resolving, including after the
// first resolver has already served a module source.
func TestEmbeddedModulesReplace(t *testing.T) {
	cfgSrc, err := os.ReadFile("testdata/yang/network-config.yang")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	routingSrc, err := os.ReadFile("testdata/yang/network-routing.yang")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	ctx, err := New(NoYangLibrary)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ctx.Destroy()

	ctx.SetEmbeddedModules(map[string]string{
		"network-config": string(cfgSrc),
	})
	if _, err := ctx.LoadModule("network-config", ""); err != nil {
		t.Fatalf("LoadModule from first resolver: %v", err)
	}

	ctx.SetEmbeddedModules(map[string]string{
		"network-config":  string(cfgSrc),
		"network-routing": string(routingSrc),
	})
	if _, err := ctx.LoadModule("network-routing", ""); err != nil {
		t.Fatalf("LoadModule from replacement resolver: %v", err)
	}

	ctx.UnsetEmbeddedModules()
}

// TestParseModule verifies schema parsing from memory.
func TestParseModule(t *testing.T) {
	const src = `
		module tiny {
			yang-version 1.1;
			namespace "urn:example:tiny";
			prefix t;
			leaf greeting { type string; }
		}`

	ctx, err := New(NoYangLibrary)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ctx.Destroy()

	mod, err := ctx.ParseModule(src, SchemaYANG)
	if err != nil {
		t.Fatalf("ParseModule: %v", err)
	}
	if got := mod.Namespace(); got != "urn:example:tiny" {
		t.Errorf("Namespace = %q, want urn:example:tiny", got)
	}

	if _, err := ctx.ParseModule("module broken {", SchemaYANG); err == nil {
		t.Error("ParseModule succeeded on malformed input")
	}
}

// TestModulesIterator verifies module iteration with and without the
// built-in modules.
func TestModulesIterator(t *testing.T) {
	ctx := testContext(t)

	all := 0
	for range ctx.Modules(false) {
		all++
	}
	user := 0
	seen := map[string]bool{}
	for mod := range ctx.Modules(true) {
		user++
		seen[mod.Name()] = true
	}
	if all <= user {
		t.Errorf("all modules (%d) not greater than user modules (%d)", all, user)
	}
	if !seen["network-config"] || !seen["network-routing"] {
		t.Errorf("user modules missing from iteration: %v", seen)
	}
}

// TestModulesIteratorAfterDestroy verifies that a module sequence
// obtained before Destroy fails safely instead of walking freed
// memory.
func TestModulesIteratorAfterDestroy(t *testing.T) {
	ctx, err := New(0)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	seq := ctx.Modules(false)
	ctx.Destroy()

	defer func() {
		if recover() == nil {
			t.Error("expected panic on iteration after destroy")
		}
	}()
	for range seq {
	}
}

// TestContextFindPath verifies schema lookup from the context root.
func TestContextFindPath(t *testing.T) {
	ctx := testContext(t)

	node, err := ctx.FindPath("/network-config:interfaces/interface/mtu", false)
	if err != nil {
		t.Fatalf("FindPath: %v", err)
	}
	if got := node.Name(); got != "mtu" {
		t.Errorf("Name = %q, want mtu", got)
	}

	if _, err := ctx.FindPath("/network-config:interfaces/no-such-leaf", false); err == nil {
		t.Error("FindPath succeeded for a nonexistent node")
	}

	nodes, err := ctx.FindXPath("/network-config:interfaces/interface/*")
	if err != nil {
		t.Fatalf("FindXPath: %v", err)
	}
	if len(nodes) == 0 {
		t.Error("FindXPath returned no nodes")
	}
}
