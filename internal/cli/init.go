package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInitCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize taglayout storage",
		Long:  "Create the configuration and data directories, then initialize the layout store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The config directory and config.yaml are ensured by the root
			// command; attaching creates the data directory and JSONL files.
			backend, err := e.attachBackend()
			if err != nil {
				return err
			}
			if err := backend.Detach(); err != nil {
				return sysError("finalize storage: %w", err)
			}

			cfg, err := e.storeConfig()
			if err != nil {
				return sysError("%w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "taglayout initialized successfully")
			fmt.Fprintln(out, "  config:", e.configDir)
			fmt.Fprintln(out, "  data:  ", cfg.DataDir)
			return nil
		},
	}
}
