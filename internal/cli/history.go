package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taglayout/pkg/types"
)

func newHistoryCmd(e *env) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history <tag>",
		Short: "List saved versions of a tag's layout, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := e.attachBackend()
			if err != nil {
				return err
			}
			defer backend.Detach()

			entries, err := backend.History(args[0], limit)
			if err != nil {
				if errors.Is(err, types.ErrInvalidTag) {
					return userError("%w", err)
				}
				return sysError("history: %w", err)
			}

			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), entries)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CREATED\tOPERATION\tLAYOUT")
			for _, h := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\n", h.CreatedAt.Local().Format(time.DateTime), h.Operation, h.Encoded)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most n entries (0 for all)")
	return cmd
}
