package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/dsablic/licenseid/internal/ui"
)

func (a *app) newLicensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "licenses",
		Short: "List the reference licenses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}
			for _, name := range e.Licenses() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	showCmd := &cobra.Command{
		Use:   "show [NAME]",
		Short: "Print the reference text of a license",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine()
			if err != nil {
				return err
			}

			var name string
			if len(args) == 1 {
				name = args[0]
			} else {
				if !ui.IsTTY() {
					return fmt.Errorf("license name required")
				}
				err := huh.NewSelect[string]().
					Title("Choose a license").
					Options(huh.NewOptions(e.Licenses()...)...).
					Value(&name).
					Run()
				if err != nil {
					return fmt.Errorf("select license: %w", err)
				}
			}

			text, ok := e.Original(name)
			if !ok {
				msg := fmt.Sprintf("unknown license %q", name)
				if s := e.Suggest(name, 3); len(s) > 0 {
					msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(s, ", "))
				}
				fmt.Fprintln(os.Stderr, msg)
				return errNotFound
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.AddCommand(showCmd)
	return cmd
}
