// Copyright (c) 2023 Tailscale Inc & AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	flagOutput  string
	flagVerbose bool
	flagBackup  bool
	flagDryRun  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "jsonfix [flags] FILE...",
		Short:   "Repair almost-JSON text into standard JSON",
		Long:    "jsonfix repairs text corrupted by manual editing, LLM generation, copy-paste,\nor truncated export into standard JSON, and reports what it changed.",
		Version: version,
		Args:    cobra.ArbitraryArgs,
		RunE:    runRoot,
	}
	cmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write result to this path instead of rewriting FILE in place (single file only; \"-\" means stdout)")
	cmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "print each repair made, to stderr")
	cmd.Flags().BoolVarP(&flagBackup, "backup", "b", false, "write a .bak copy before overwriting a file in place")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "print a unified diff instead of writing output")
	cmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")
	return cmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return processStdin(cmd)
	}
	if flagOutput != "" && len(args) > 1 {
		return fmt.Errorf("jsonfix: --output requires a single FILE argument")
	}
	failed := false
	for _, path := range args {
		if err := processFile(cmd, path); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "jsonfix: %s: %v\n", path, err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("jsonfix: one or more files failed")
	}
	return nil
}
