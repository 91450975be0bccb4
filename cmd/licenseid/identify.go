package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dsablic/licenseid/internal/engine"
)

func (a *app) newIdentifyCmd() *cobra.Command {
	var asJSON, showText bool
	cmd := &cobra.Command{
		Use:   "identify [FILE]",
		Short: "Identify the license of a file or of text on stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			e, err := a.engine()
			if err != nil {
				return err
			}
			res, err := e.Identify(text)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			verdict := "match"
			if res.Score < a.cfg.Threshold {
				verdict = "below threshold"
			}
			fmt.Fprintf(out, "License: %s\nScore:   %.4f (%s)\n", res.Name, res.Score, verdict)
			if showText {
				fmt.Fprintf(out, "\n%s\n", res.Text)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")
	cmd.Flags().BoolVar(&showText, "show-text", false, "Print the matched license text")
	return cmd
}

func (a *app) newNormalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [FILE]",
		Short: "Print the canonical form used for comparison",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), engine.NormalizeText(text))
			return nil
		},
	}
}
