// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	coverProfile = "coverage.out"
	cliPkg       = modulePath + "/internal/cli"
)

// Test groups test targets.
type Test mg.Namespace

// All runs every test.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Unit runs all tests except the CLI package, which drives whole commands
// against a temporary store.
func (Test) Unit() error {
	pkgs, err := sh.Output(binGo, "list", "./...")
	if err != nil {
		return err
	}
	var unitPkgs []string
	for pkg := range strings.SplitSeq(pkgs, "\n") {
		if pkg != "" && pkg != cliPkg {
			unitPkgs = append(unitPkgs, pkg)
		}
	}
	if len(unitPkgs) == 0 {
		fmt.Println("No unit test packages found.")
		return nil
	}
	return sh.RunV(binGo, append([]string{"test"}, unitPkgs...)...)
}

// Run runs the tests matching a pattern.
//
//	mage test:run --run TestReconcile --pkg ./internal/reconcile/...
func (Test) Run() error {
	fs := flag.NewFlagSet("test:run", flag.ContinueOnError)
	run := fs.String("run", "", "test name pattern")
	pkg := fs.String("pkg", "./...", "package pattern")
	verbose := fs.Bool("v", false, "verbose output")
	parseTargetFlags(fs)

	args := []string{"test"}
	if *verbose {
		args = append(args, "-v")
	}
	if *run != "" {
		args = append(args, "-run", *run)
	}
	return sh.RunV(binGo, append(args, *pkg)...)
}

// Cover writes coverage.out and prints per-function coverage.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile="+coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+coverProfile)
}
