package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/holo-routing/yang-go"
)

// readDataFile reads a data file, transparently decompressing .gz
// input, and reports the encoding inferred from the extension.
func readDataFile(file string) ([]byte, yang.Format, error) {
	name := file
	f, err := os.Open(file)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", file, err)
		}
		defer gz.Close()
		r = gz
		name = strings.TrimSuffix(name, ".gz")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", file, err)
	}

	switch filepath.Ext(name) {
	case ".json":
		return data, yang.JSON, nil
	case ".xml":
		return data, yang.XML, nil
	default:
		return nil, 0, fmt.Errorf("%s: cannot infer encoding, want a .json or .xml extension", file)
	}
}

func parseFile(ctx *yang.Context, file string) (*yang.DataTree, error) {
	data, enc, err := readDataFile(file)
	if err != nil {
		return nil, err
	}
	return yang.ParseData(ctx, data, enc, yang.ParseOnly, 0)
}
