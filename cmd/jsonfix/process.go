// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
	"github.com/spf13/cobra"

	"github.com/Broadhead-Logic/jsonfix"
)

func processStdin(cmd *cobra.Command) error {
	if flagBackup {
		return fmt.Errorf("jsonfix: --backup cannot be used with standard input")
	}
	src, err := io.ReadAll(os.Stdin)
	if err != nil {
		return err
	}
	output, err := fix(src)
	if err != nil {
		return err
	}
	return emit(cmd, "<standard input>", src, output, nil)
}

func processFile(cmd *cobra.Command, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	output, err := fix(src)
	if err != nil {
		return err
	}
	return emit(cmd, path, src, output, info)
}

// fix runs the relaxed pipeline, printing each repair to stderr when
// --verbose is set, and re-encodes the decoded value with the standard
// library's indenting encoder so output formatting is stable regardless
// of how mangled the input was. The result never carries a trailing
// newline; emit adds one back for file destinations and leaves stdout
// bare.
func fix(src []byte) ([]byte, error) {
	var log jsonfix.RepairLog
	v, _, err := jsonfix.LoadsRelaxed(string(src), jsonfix.WithRepairLog(&log))
	if flagVerbose {
		fmt.Fprintf(os.Stderr, "jsonfix: %d repair(s)\n", len(log))
		for _, r := range log {
			fmt.Fprintf(os.Stderr, "Line %d: %s\n", r.Line, r.Message)
		}
	}
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encoding repaired value: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// withTrailingNewline returns a copy of b with exactly one '\n' appended,
// for the file destinations emit writes to; stdout gets the bare bytes.
func withTrailingNewline(b []byte) []byte {
	out := make([]byte, 0, len(b)+1)
	out = append(out, b...)
	return append(out, '\n')
}

func emit(cmd *cobra.Command, name string, src, output []byte, info os.FileInfo) error {
	switch {
	case flagDryRun:
		printDiff(cmd, name, src, output)
		return nil
	case flagOutput == "-":
		fmt.Fprint(cmd.OutOrStdout(), string(output))
		return nil
	case flagOutput != "":
		return os.WriteFile(flagOutput, withTrailingNewline(output), 0o644)
	case info != nil:
		return writeInPlace(info, name, src, withTrailingNewline(output))
	default:
		fmt.Fprint(cmd.OutOrStdout(), string(output))
		return nil
	}
}

func printDiff(cmd *cobra.Command, name string, src, output []byte) {
	old, new := string(src), string(output)
	edits := myers.ComputeEdits(span.URIFromPath(name), old, new)
	diff := fmt.Sprint(gotextdiff.ToUnified(name, name+".fixed", old, edits))
	if diff == "" {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), diff)
}

func writeInPlace(info os.FileInfo, path string, src, output []byte) error {
	perms := info.Mode().Perm()
	if flagBackup {
		bak := path + ".bak"
		if err := os.WriteFile(bak, src, perms); err != nil {
			return fmt.Errorf("writing backup %s: %w", bak, err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := tmp.Chmod(perms); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if _, err := tmp.Write(output); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
