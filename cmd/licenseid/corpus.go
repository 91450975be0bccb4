package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dsablic/licenseid/internal/corpus"
)

func (a *app) newCorpusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "corpus",
		Short: "Build and inspect corpus snapshots",
	}

	var dir, out string
	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Normalize a directory of <name>.txt license texts into a snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources := corpus.Embedded()
			if dir != "" {
				var err error
				sources, err = corpus.ReadDir(dir)
				if err != nil {
					return err
				}
			}
			c, err := corpus.Build(sources)
			if err != nil {
				return err
			}
			if err := corpus.SaveSnapshot(out, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d licenses to %s\n", c.Len(), out)
			return nil
		},
	}
	buildCmd.Flags().StringVar(&dir, "dir", "", "Directory of license texts (default: embedded licenses)")
	buildCmd.Flags().StringVar(&out, "out", "corpus.json.gz", "Snapshot output path")

	inspectCmd := &cobra.Command{
		Use:   "inspect FILE",
		Short: "List the licenses stored in a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := corpus.OpenSnapshot(args[0])
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tLINES\tBYTES")
			for _, name := range c.Names() {
				e, _ := c.Lookup(name)
				fmt.Fprintf(tw, "%s\t%d\t%d\n", e.Name, len(e.Lines), len(e.Original))
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(buildCmd, inspectCmd)
	return cmd
}
