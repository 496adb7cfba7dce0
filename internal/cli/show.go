package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taglayout/internal/reconcile"
	"github.com/mesh-intelligence/taglayout/internal/render"
	"github.com/mesh-intelligence/taglayout/pkg/types"
)

// layoutJSON is the --json form of a stored layout.
type layoutJSON struct {
	Tag    string  `json:"tag"`
	Layout string  `json:"layout"`
	Slots  [][]int `json:"slots"`
}

func toLayoutJSON(l *types.Layout) layoutJSON {
	return layoutJSON{Tag: l.Tag(), Layout: types.EncodeLayout(l), Slots: l.Slots()}
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError("marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

// renderOpts are the grid flags shared by commands that print a plan.
type renderOpts struct {
	allRows   bool
	positions bool
}

func (o *renderOpts) bind(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&o.allRows, "all-rows", false, "draw trailing empty rows")
	cmd.Flags().BoolVar(&o.positions, "positions", false, "prefix each cell with its slot position")
}

func (e *env) printPlan(w io.Writer, plan *reconcile.RenderPlan, o renderOpts) error {
	if e.flags.jsonMode {
		if err := render.JSON(w, plan); err != nil {
			return sysError("%w", err)
		}
		return nil
	}
	fmt.Fprint(w, render.Grid(plan, render.Options{KeepEmptyRows: o.allRows, ShowPositions: o.positions}))
	return nil
}

func newShowCmd(e *env) *cobra.Command {
	var o renderOpts
	cmd := &cobra.Command{
		Use:   "show <tag>",
		Short: "Reconcile a tag's layout against current possessions and draw it",
		Long: `Show opens the tag, matches every slot against the configured possessions
and draws the result. Possessed items missing from the layout are appended
to its first empty slots and the layout is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			plan, err := s.render(args[0])
			if err != nil {
				return err
			}
			return e.printPlan(cmd.OutOrStdout(), plan, o)
		},
	}
	o.bind(cmd)
	return cmd
}

func newGetCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "get <tag>",
		Short: "Print a tag's stored layout string",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			l, err := s.manager.Load(args[0])
			if err != nil {
				switch {
				case errors.Is(err, types.ErrNotFound):
					return userError("no layout for tag %q", args[0])
				case errors.Is(err, types.ErrInvalidTag):
					return userError("%w", err)
				}
				return sysError("load %q: %w", args[0], err)
			}

			if e.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), toLayoutJSON(l))
			}
			fmt.Fprintln(cmd.OutOrStdout(), types.EncodeLayout(l))
			return nil
		},
	}
}
