// Program yangtool loads YANG modules, validates instance data
// against them, and converts, diffs or prints the results.
//
// Usage: yangtool [--path DIR] [--module NAME] [--feature MOD:F1,F2]
//
//	[--config FILE] [--format FORMAT] [--tree] [--diff]
//	[FILE ...]
//
// Every FILE is parsed as instance data; files ending in .gz are
// decompressed first and the encoding is taken from the remaining
// extension (.json or .xml). The default mode validates the merged
// data and reports the result.
//
// FORMAT switches to conversion mode and selects the output encoding
// (json or xml). --tree prints the schema tree of the loaded modules
// instead of handling data. --diff takes exactly two FILEs and prints
// the edits turning the first into the second; with --text a unified
// text diff of the printed forms is shown instead of the native diff
// tree.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt"

	"github.com/holo-routing/yang-go"
)

func main() {
	var (
		paths    []string
		modules  []string
		features []string
		cfgFile  string
		format   string
		tree     bool
		diff     bool
		textDiff bool
		noColor  bool
	)
	getopt.CommandLine.ListVarLong(&paths, "path", 'p', "directory to search for modules (may be repeated)")
	getopt.CommandLine.ListVarLong(&modules, "module", 'm', "module to load (may be repeated)")
	getopt.CommandLine.ListVarLong(&features, "feature", 'F', "features to enable, as MODULE:NAME[,NAME...]")
	getopt.CommandLine.StringVarLong(&cfgFile, "config", 'c', "YAML file naming search paths, modules and features")
	getopt.CommandLine.StringVarLong(&format, "format", 'f', "convert data to the given encoding: json or xml")
	getopt.CommandLine.BoolVarLong(&tree, "tree", 't', "print the schema tree of the loaded modules")
	getopt.CommandLine.BoolVarLong(&diff, "diff", 'd', "print the edits between two data files")
	getopt.CommandLine.BoolVarLong(&textDiff, "text", 0, "with --diff, print a unified text diff")
	getopt.CommandLine.BoolVarLong(&noColor, "no-color", 0, "disable colored diagnostics")
	getopt.Parse()
	files := getopt.Args()

	if noColor || !isatty.IsTerminal(os.Stderr.Fd()) {
		color.NoColor = true
	}

	cfg := &config{
		SearchPaths: paths,
	}
	if cfgFile != "" {
		fileCfg, err := loadConfig(cfgFile)
		if err != nil {
			fatalf("%v", err)
		}
		cfg.merge(fileCfg)
	}
	for _, name := range modules {
		cfg.Modules = append(cfg.Modules, moduleConfig{Name: name})
	}
	for _, spec := range features {
		mod, feats, err := parseFeatureSpec(spec)
		if err != nil {
			fatalf("%v", err)
		}
		cfg.addFeatures(mod, feats)
	}

	ctx, err := newContext(cfg)
	if err != nil {
		fatalf("%v", err)
	}
	defer ctx.Destroy()

	switch {
	case tree:
		if err := printTrees(ctx); err != nil {
			fatalf("%v", err)
		}
	case diff:
		if len(files) != 2 {
			fatalf("--diff requires exactly two data files")
		}
		if err := diffFiles(ctx, files[0], files[1], textDiff); err != nil {
			fatalf("%v", err)
		}
	case format != "":
		enc, err := parseFormat(format)
		if err != nil {
			fatalf("%v", err)
		}
		for _, file := range files {
			if err := convertFile(ctx, file, enc); err != nil {
				fatalf("%s: %v", file, err)
			}
		}
	default:
		failed := false
		for _, file := range files {
			if err := validateFile(ctx, file); err != nil {
				errorf("%s: %v", file, err)
				failed = true
				continue
			}
			okf("%s: valid", file)
		}
		if failed {
			os.Exit(1)
		}
	}
}

// newContext builds a context with the configured search paths and
// modules loaded.
func newContext(cfg *config) (*yang.Context, error) {
	ctx, err := yang.New(yang.NoYangLibrary)
	if err != nil {
		return nil, err
	}
	for _, dir := range cfg.SearchPaths {
		if err := ctx.SetSearchdir(dir); err != nil {
			ctx.Destroy()
			return nil, fmt.Errorf("search path %s: %w", dir, err)
		}
	}
	for _, mod := range cfg.Modules {
		if _, err := ctx.LoadModule(mod.Name, mod.Revision, mod.Features...); err != nil {
			ctx.Destroy()
			return nil, fmt.Errorf("module %s: %w", mod.Name, err)
		}
	}
	return ctx, nil
}

func validateFile(ctx *yang.Context, file string) error {
	tree, err := parseFile(ctx, file)
	if err != nil {
		return err
	}
	defer tree.Destroy()
	return tree.Validate(0)
}

func convertFile(ctx *yang.Context, file string, enc yang.Format) error {
	tree, err := parseFile(ctx, file)
	if err != nil {
		return err
	}
	defer tree.Destroy()
	out, err := tree.Print(enc, 0)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func printTrees(ctx *yang.Context) error {
	for mod := range ctx.Modules(true) {
		out, err := mod.Print(yang.SchemaOutTree, 0)
		if err != nil {
			return fmt.Errorf("module %s: %w", mod.Name(), err)
		}
		fmt.Print(out)
	}
	return nil
}

func parseFormat(s string) (yang.Format, error) {
	switch strings.ToLower(s) {
	case "json":
		return yang.JSON, nil
	case "xml":
		return yang.XML, nil
	default:
		return 0, fmt.Errorf("unknown format: %s", s)
	}
}

// parseFeatureSpec splits a MODULE:NAME[,NAME...] argument.
func parseFeatureSpec(spec string) (string, []string, error) {
	mod, list, ok := strings.Cut(spec, ":")
	if !ok || mod == "" || list == "" {
		return "", nil, fmt.Errorf("invalid feature spec %q, want MODULE:NAME[,NAME...]", spec)
	}
	return mod, strings.Split(list, ","), nil
}

var (
	errColor = color.New(color.FgRed)
	okColor  = color.New(color.FgGreen)
)

func errorf(format string, args ...any) {
	errColor.Fprintf(os.Stderr, format+"\n", args...)
}

func okf(format string, args ...any) {
	okColor.Fprintf(os.Stderr, format+"\n", args...)
}

func fatalf(format string, args ...any) {
	errorf(format, args...)
	os.Exit(1)
}
