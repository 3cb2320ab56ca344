package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/holo-routing/yang-go"
)

// diffFiles prints the edits turning the first data file into the
// second. The native diff tree is printed as XML; in text mode a
// unified diff of the two printed JSON forms is shown instead.
func diffFiles(ctx *yang.Context, fileA, fileB string, text bool) error {
	treeA, err := parseFile(ctx, fileA)
	if err != nil {
		return fmt.Errorf("%s: %w", fileA, err)
	}
	defer treeA.Destroy()
	treeB, err := parseFile(ctx, fileB)
	if err != nil {
		return fmt.Errorf("%s: %w", fileB, err)
	}
	defer treeB.Destroy()

	if text {
		return textDiffTrees(treeA, treeB)
	}

	diff, err := treeA.Diff(treeB, 0)
	if err != nil {
		return err
	}
	defer diff.Destroy()
	out, err := diff.Tree().Print(yang.XML, 0)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func textDiffTrees(treeA, treeB *yang.DataTree) error {
	printedA, err := treeA.PrintString(yang.JSON, 0)
	if err != nil {
		return err
	}
	printedB, err := treeB.PrintString(yang.JSON, 0)
	if err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	chunksA, chunksB, lines := dmp.DiffLinesToChars(printedA, printedB)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chunksA, chunksB, false), lines)
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			okColor.Print(prefixLines("+", d.Text))
		case diffmatchpatch.DiffDelete:
			errColor.Print(prefixLines("-", d.Text))
		default:
			fmt.Print(prefixLines(" ", d.Text))
		}
	}
	return nil
}

func prefixLines(prefix, text string) string {
	var sb strings.Builder
	for _, line := range strings.SplitAfter(strings.TrimSuffix(text, "\n"), "\n") {
		sb.WriteString(prefix)
		sb.WriteString(strings.TrimSuffix(line, "\n"))
		sb.WriteByte('\n')
	}
	return sb.String()
}
