package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taglayout/pkg/types"
)

func newSetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "set <tag> <layout>",
		Short: "Replace a tag's layout",
		Long: `Set stores a layout string for the tag. Slots are comma separated; a slot
is -1 when empty, an item id, or several ids joined with '|' in priority order.

Example:
  taglayout set barrows "4708,4710,-1,4712|4714"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag := types.StandardizeTag(args[0])
			if tag == "" {
				return userError("%w", types.ErrInvalidTag)
			}
			l, err := types.DecodeLayout(tag, args[1])
			if err != nil {
				return userError("parse layout: %w", err)
			}

			s, err := e.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.manager.Save(l); err != nil {
				return sysError("%w", err)
			}

			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), toLayoutJSON(l))
			}
			fmt.Fprintln(cmd.OutOrStdout(), types.EncodeLayout(l))
			return nil
		},
	}
}

func newRemoveCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <tag>",
		Aliases: []string{"delete"},
		Short:   "Forget a tag's layout",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if err := s.manager.Remove(args[0]); err != nil {
				if errors.Is(err, types.ErrInvalidTag) {
					return userError("%w", err)
				}
				return sysError("%w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed layout %s\n", types.StandardizeTag(args[0]))
			return nil
		},
	}
}
