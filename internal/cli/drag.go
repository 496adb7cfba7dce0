package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taglayout/internal/editor"
)

func newDragCmd(e *env) *cobra.Command {
	var (
		o    renderOpts
		edit bool
	)
	cmd := &cobra.Command{
		Use:   "drag <tag> <from> <to>",
		Short: "Move an item between slots",
		Long: `Drag applies a drag gesture from one slot to another and saves the result.

Without --edit the two slots are swapped, or the item is inserted and the
slots between shifted when insert_mode is "insert". With --edit the item
shown in <from> is moved into <to>'s candidate list, just before the
candidate currently shown there, or into its own slot when <to> is empty.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[1])
			if err != nil {
				return userError("invalid slot %q", args[1])
			}
			to, err := strconv.Atoi(args[2])
			if err != nil {
				return userError("invalid slot %q", args[2])
			}

			s, err := e.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if _, err := s.render(args[0]); err != nil {
				return err
			}
			plan, err := s.manager.Drag(editor.Gesture{Source: from, Target: to, Modifier: edit})
			if err != nil {
				return sysError("drag: %w", err)
			}
			return e.printPlan(cmd.OutOrStdout(), plan, o)
		},
	}
	cmd.Flags().BoolVar(&edit, "edit", false, "edit candidate lists instead of moving slots")
	o.bind(cmd)
	return cmd
}
