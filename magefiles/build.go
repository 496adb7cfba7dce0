// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for taglayout using Mage.
//
// Usage:
//
//	mage build        Compile the taglayout binary to bin/
//	mage install      Install taglayout to GOPATH/bin
//	mage clean        Remove build artifacts
//	mage test:all     Run every test
//	mage test:unit    Run tests, skipping the CLI end-to-end package
//	mage test:run     Run tests matching --run across --pkg
//	mage test:cover   Write coverage.out and print per-function coverage
//	mage lint         Run golangci-lint
//	mage stats        Print Go LOC and documentation word counts
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "taglayout"
	binaryDir  = "bin"
	cmdDir     = "./cmd/taglayout"
	modulePath = "github.com/mesh-intelligence/taglayout"
)

// ldflags stamps the version from TAGLAYOUT_VERSION, or from git describe
// when unset.
func ldflags() string {
	version := os.Getenv("TAGLAYOUT_VERSION")
	if version == "" {
		out, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
		if err != nil {
			return ""
		}
		version = strings.TrimPrefix(out, "v")
	}
	return "-X " + modulePath + "/internal/cli.Version=" + version
}

// Build compiles the taglayout binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if flags := ldflags(); flags != "" {
		args = append(args, "-ldflags", flags)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Clean removes build artifacts.
func Clean() error {
	for _, path := range []string{binaryDir, coverProfile} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}
