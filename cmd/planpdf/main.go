package main

import (
	"fmt"
	"io"
	"os"

	"insurancefinder/internal/plan"
	"insurancefinder/internal/scoring"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Output for humans goes to out.
func newRootCmd(out io.Writer) *cobra.Command {
	var (
		sel       plan.Selection
		output    string
		selfCheck bool
	)

	root := &cobra.Command{
		Use:           "planpdf",
		Short:         "Render an insurance plan summary PDF from the command line",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := plan.Renderer{SelfCheck: selfCheck}.Render(plan.Format(sel, nil))
			if err != nil {
				return err
			}
			if output == "" {
				output = plan.FileName(sel.State)
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(out, "wrote %s (%d bytes)\n", output, len(data))
			return nil
		},
	}
	root.Flags().StringVar(&sel.State, "state", "", "State code, e.g. CT")
	root.Flags().StringVar(&sel.Age, "age", "", "Age band, e.g. 18-24")
	root.Flags().StringVar(&sel.Ownership, "ownership", "", "Own, Finance or Lease")
	root.Flags().StringVar(&sel.History, "history", "", "Driving history, e.g. \"Clean record\"")
	root.Flags().StringVar(&sel.Goal, "goal", "", "Cheapest, Balanced or \"Max protection\"")
	root.Flags().StringVarP(&output, "output", "o", "", "Output path (default insurance-plan-<state>.pdf)")
	root.Flags().BoolVar(&selfCheck, "self-check", true, "Re-parse the PDF before writing it")

	root.AddCommand(newScoreCmd(out))
	return root
}

func newScoreCmd(out io.Writer) *cobra.Command {
	var age, history, goal string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Print the Confidence Score and risk tier for a selection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, ok := scoring.ParseAgeBand(age)
			if !ok {
				return fmt.Errorf("unknown age band %q", age)
			}
			h, ok := scoring.ParseHistory(history)
			if !ok {
				return fmt.Errorf("unknown driving history %q", history)
			}
			g, ok := scoring.ParseGoal(goal)
			if !ok {
				return fmt.Errorf("unknown goal %q", goal)
			}
			res := scoring.Evaluate(a, h, g)
			fmt.Fprintf(out, "%d/100 (%s risk)\n", res.Score, res.Tier)
			return nil
		},
	}
	cmd.Flags().StringVar(&age, "age", "", "Age band")
	cmd.Flags().StringVar(&history, "history", "", "Driving history")
	cmd.Flags().StringVar(&goal, "goal", "", "Goal")
	return cmd
}
