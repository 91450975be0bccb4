// internal/output/markdown.go
package output

import (
	"fmt"
	"io"

	"github.com/dsablic/licenseid/internal/model"
)

// WriteMarkdown writes the report as GitHub-flavored markdown to w.
func WriteMarkdown(w io.Writer, report model.ScanReport) error {
	fmt.Fprintf(w, "# License Scan Report\n\n")
	fmt.Fprintf(w, "**Root:** %s\n", report.Root)
	if report.Repository != "" {
		fmt.Fprintf(w, "**Repository:** %s\n", report.Repository)
	}
	fmt.Fprintf(w, "**Generated:** %s\n\n", report.GeneratedAt)

	// Summary
	fmt.Fprintf(w, "## Summary\n\n")
	fmt.Fprintf(w, "| Metric | Value |\n")
	fmt.Fprintf(w, "|--------|-------|\n")
	if report.Primary != nil {
		fmt.Fprintf(w, "| Primary license | %s (%.2f) |\n", report.Primary.License, report.Primary.Score)
	} else {
		fmt.Fprintf(w, "| Primary license | — |\n")
	}
	fmt.Fprintf(w, "| Threshold | %.2f |\n", report.Threshold)
	fmt.Fprintf(w, "| Known licenses | %d |\n", report.Licenses)
	fmt.Fprintf(w, "| Files scanned | %d |\n", report.Totals.Scanned)
	fmt.Fprintf(w, "| Files skipped | %d |\n", report.Totals.Skipped)
	fmt.Fprintf(w, "| Matched | %d |\n", report.Totals.Matched)
	fmt.Fprintf(w, "| Unmatched | %d |\n\n", report.Totals.Unmatched)

	if report.CrossCheck != nil {
		cc := report.CrossCheck
		license := cc.License
		if license == "" {
			license = "—"
		}
		agree := "no"
		if cc.Agrees {
			agree = "yes"
		}
		fmt.Fprintf(w, "## Cross-check\n\n")
		fmt.Fprintf(w, "| Detector | License | Confidence | Agrees |\n")
		fmt.Fprintf(w, "|----------|---------|-----------:|--------|\n")
		fmt.Fprintf(w, "| %s | %s | %.2f | %s |\n\n", cc.Detector, license, cc.Confidence, agree)
	}

	// By license
	fmt.Fprintf(w, "## Licenses\n\n")
	fmt.Fprintf(w, "| License | Files |\n")
	fmt.Fprintf(w, "|---------|------:|\n")
	for _, lc := range report.ByLicense {
		fmt.Fprintf(w, "| %s | %d |\n", lc.License, lc.Files)
	}
	fmt.Fprintln(w)

	// Per file
	fmt.Fprintf(w, "## Files\n\n")
	fmt.Fprintf(w, "| File | Kind | Language | License | Score | Closest |\n")
	fmt.Fprintf(w, "|------|------|----------|---------|------:|---------|\n")
	for _, f := range report.Files {
		license := f.License
		if license == "" {
			license = "—"
		}
		lang := f.Language
		if lang == "" {
			lang = "—"
		}
		fmt.Fprintf(w, "| %s | %s | %s | %s | %.2f | %s |\n",
			f.Path, f.Kind, lang, license, f.Score, f.Best)
	}
	fmt.Fprintln(w)

	// Errors
	if len(report.Errors) > 0 {
		fmt.Fprintf(w, "## Errors\n\n")
		for _, e := range report.Errors {
			fmt.Fprintf(w, "- **%s**: %s\n", e.Path, e.Error)
		}
		fmt.Fprintln(w)
	}

	return nil
}
