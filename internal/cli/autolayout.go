package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/taglayout/pkg/types"
)

func newAutoLayoutCmd(e *env) *cobra.Command {
	var (
		o    renderOpts
		keep bool
		undo bool
	)
	cmd := &cobra.Command{
		Use:   "autolayout <tag> <name>",
		Short: "Replace a tag's layout with a generated one",
		Long: `Autolayout runs the named generator against the tag's layout and shows
the result. Nothing is saved until the result is kept: pass --keep or --undo,
or answer the prompt.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if keep && undo {
				return userError("--keep and --undo are mutually exclusive")
			}

			s, err := e.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			if _, err := s.render(args[0]); err != nil {
				return err
			}
			p, err := s.manager.AutoLayout(args[0], args[1])
			if err != nil {
				if errors.Is(err, types.ErrGeneratorNotFound) {
					return userError("%w", err)
				}
				return sysError("autolayout: %w", err)
			}
			plan, err := s.manager.Reconcile(s.snapshot())
			if err != nil {
				return sysError("preview: %w", err)
			}

			out := cmd.OutOrStdout()
			if !e.flags.jsonMode {
				if err := e.printPlan(out, plan, o); err != nil {
					return err
				}
			}

			if !keep && !undo {
				fmt.Fprintf(out, "Keep the %s layout? [y/N] ", p.Name())
				answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					if undoErr := p.Undo(); undoErr != nil {
						return sysError("%w", undoErr)
					}
					return sysError("read answer: %w", err)
				}
				answer = strings.ToLower(strings.TrimSpace(answer))
				keep = answer == "y" || answer == "yes"
			}

			if keep {
				if err := p.Keep(); err != nil {
					return sysError("%w", err)
				}
			} else if err := p.Undo(); err != nil {
				return sysError("%w", err)
			}

			_, l := s.manager.Active()
			if e.flags.jsonMode {
				return writeJSON(out, struct {
					layoutJSON
					Kept bool `json:"kept"`
				}{toLayoutJSON(l), keep})
			}
			if keep {
				fmt.Fprintf(out, "Kept %s layout for %s\n", p.Name(), l.Tag())
			} else {
				fmt.Fprintf(out, "Restored previous layout for %s\n", l.Tag())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&keep, "keep", false, "save the generated layout without prompting")
	cmd.Flags().BoolVar(&undo, "undo", false, "discard the generated layout without prompting")
	o.bind(cmd)
	return cmd
}

func newGeneratorsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "generators",
		Short: "List registered auto layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := e.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			entries := s.manager.Generators()
			if e.flags.jsonMode {
				type generatorJSON struct {
					Name  string `json:"name"`
					Owner string `json:"owner"`
				}
				out := make([]generatorJSON, len(entries))
				for i, entry := range entries {
					out[i] = generatorJSON{Name: entry.Name, Owner: entry.Owner}
				}
				return writeJSON(cmd.OutOrStdout(), out)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tOWNER")
			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\n", entry.Name, entry.Owner)
			}
			return w.Flush()
		},
	}
}
