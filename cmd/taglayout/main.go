// Command taglayout manages per-tag item layouts from the command line.
package main

import "github.com/mesh-intelligence/taglayout/internal/cli"

func main() {
	cli.Execute()
}
