package main

import (
	"context"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dsablic/licenseid/internal/license"
	"github.com/dsablic/licenseid/internal/model"
	"github.com/dsablic/licenseid/internal/output"
	"github.com/dsablic/licenseid/internal/scan"
	"github.com/dsablic/licenseid/internal/ui"
)

const tokenEnv = "LICENSEID_GIT_TOKEN"

func (a *app) newScanCmd() *cobra.Command {
	var (
		repoURL    string
		token      string
		ref        string
		format     string
		threshold  float64
		crossCheck bool
		exclude    []string
	)
	cmd := &cobra.Command{
		Use:   "scan [DIR]",
		Short: "Identify license files and source headers in a directory or git repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "markdown" {
				return fmt.Errorf("unsupported format: %s (use json or markdown)", format)
			}
			if len(args) == 1 && repoURL != "" {
				return fmt.Errorf("pass either DIR or --repo, not both")
			}

			ctx := cmd.Context()
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			if repoURL != "" {
				if token == "" {
					token = os.Getenv(tokenEnv)
				}
				cloneDir, cleanup, err := scan.NewCloner(token).WithRef(ref).Clone(ctx, repoURL)
				if err != nil {
					return err
				}
				defer cleanup()
				dir = cloneDir
			}

			e, err := a.engine()
			if err != nil {
				return err
			}

			opts := scan.Options{
				Threshold:   a.cfg.Threshold,
				HeaderLines: a.cfg.HeaderLines,
				Exclude:     slices.Concat(a.cfg.Exclude, exclude),
			}
			if cmd.Flags().Changed("threshold") {
				opts.Threshold = threshold
			}

			report, err := runScan(ctx, scan.New(e, opts), dir)
			if err != nil {
				return err
			}
			report.Repository = repoURL

			if crossCheck || a.cfg.CrossCheck {
				primary := ""
				if report.Primary != nil {
					primary = report.Primary.License
				}
				report.CrossCheck = license.CrossCheck(dir, primary)
			}

			if format == "markdown" {
				return output.WriteMarkdown(cmd.OutOrStdout(), *report)
			}
			return output.WriteJSON(cmd.OutOrStdout(), *report)
		},
	}
	cmd.Flags().StringVar(&repoURL, "repo", "", "Clone and scan a git repository URL")
	cmd.Flags().StringVar(&token, "token", "", "Access token for private repositories (default $"+tokenEnv+")")
	cmd.Flags().StringVar(&ref, "ref", "", "Branch or tag to clone with --repo (default: remote HEAD)")
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json, markdown)")
	cmd.Flags().Float64Var(&threshold, "threshold", scan.DefaultThreshold, "Minimum score to report a license")
	cmd.Flags().BoolVar(&crossCheck, "crosscheck", false, "Compare the result with go-license-detector")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Path globs to skip")
	return cmd
}

// runScan shows a TUI progress bar when stderr is a terminal and plain
// progress lines otherwise.
func runScan(ctx context.Context, s *scan.Scanner, dir string) (*model.ScanReport, error) {
	if !ui.IsTTY() {
		plain := ui.NewPlainProgress(func(msg string) { fmt.Fprintln(os.Stderr, msg) })
		report, err := s.Scan(ctx, dir, plain.Update)
		if err != nil {
			return nil, err
		}
		plain.Done(report)
		return report, nil
	}

	p := ui.RunTUI(0)
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run()
	}()

	report, err := s.Scan(ctx, dir, func(completed, total int, file model.FileMatch) {
		p.Send(ui.ProgressMsg{Completed: completed, Total: total, File: file})
	})
	if err != nil {
		p.Quit()
		<-done
		return nil, err
	}
	p.Send(ui.DoneMsg{Totals: report.Totals, Primary: report.Primary})
	<-done
	return report, nil
}
