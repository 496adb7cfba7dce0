package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// targetArgs holds the arguments after the mage target name. Mage only
// passes positional parameters, so init moves them out of os.Args and
// test:run parses them with its own FlagSet.
//
// "mage test:run --run TestDrag -v" leaves os.Args as ["mage", "test:run"].
var targetArgs []string

func init() {
	// [binary] [mage-flags...] [target] [target-args...]
	for i := 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		if arg == "--" {
			return
		}
		if arg != "" && arg[0] != '-' {
			targetArgs = os.Args[i+1:]
			os.Args = os.Args[:i+1]
			return
		}
	}
}

// parseTargetFlags parses targetArgs into fs and exits on a parse error.
func parseTargetFlags(fs *flag.FlagSet) {
	err := fs.Parse(targetArgs)
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
