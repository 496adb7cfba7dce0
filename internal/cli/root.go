// Package cli implements the taglayout command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError carries the process exit code for a failed command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(format string, args ...any) error {
	return &exitError{code: exitUserError, err: fmt.Errorf(format, args...)}
}

func sysError(format string, args ...any) error {
	return &exitError{code: exitSysError, err: fmt.Errorf(format, args...)}
}

// ExitCode maps an error returned by the root command to a process exit
// code. Errors without an explicit code are usage errors.
func ExitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	jsonMode  bool
}

// env is the state shared by the subcommands of one root command.
type env struct {
	flags     rootFlags
	configDir string
	cfg       *viper.Viper
}

// NewRootCmd creates the top-level "taglayout" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	e := &env{}
	root := &cobra.Command{
		Use:   "taglayout",
		Short: "Arrange tagged items into persistent slot layouts",
		Long: "taglayout keeps one layout per tag: an arrangement of item candidates into\n" +
			"display slots, reconciled against the items you currently hold.",
		Version: Version,
		// Do not print usage on errors returned by subcommands.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return e.loadConfig()
		},
	}

	root.PersistentFlags().StringVar(&e.flags.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&e.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.taglayout-db)")
	root.PersistentFlags().BoolVar(&e.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(e))
	root.AddCommand(newShowCmd(e))
	root.AddCommand(newGetCmd(e))
	root.AddCommand(newSetCmd(e))
	root.AddCommand(newRemoveCmd(e))
	root.AddCommand(newDragCmd(e))
	root.AddCommand(newAutoLayoutCmd(e))
	root.AddCommand(newGeneratorsCmd(e))
	root.AddCommand(newHistoryCmd(e))

	return root
}

// Execute runs the root command and exits with the appropriate code.
func Execute() {
	os.Exit(run(NewRootCmd(), os.Args[1:], os.Stderr))
}

func run(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(stderr, "taglayout:", err)
	}
	return ExitCode(err)
}
