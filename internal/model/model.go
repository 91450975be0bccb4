// internal/model/model.go
package model

// MatchKind says which part of a file was identified.
type MatchKind string

const (
	// KindLicenseFile is a file that holds a whole license text.
	KindLicenseFile MatchKind = "license-file"
	// KindHeader is the leading comment block of a source file.
	KindHeader MatchKind = "header"
)

// Match is a single identification result.
type Match struct {
	License string  `json:"license"`
	Score   float64 `json:"score"`
}

// FileMatch holds the identification result for one scanned file.
type FileMatch struct {
	Path     string    `json:"path"`
	Kind     MatchKind `json:"kind"`
	Language string    `json:"language,omitempty"`
	License  string    `json:"license,omitempty"`
	Score    float64   `json:"score"`
	Best     string    `json:"best"`
}

// Matched reports whether the file reached the report threshold.
func (f FileMatch) Matched() bool {
	return f.License != ""
}

// LicenseCount aggregates matched files per license.
type LicenseCount struct {
	License string `json:"license"`
	Files   int    `json:"files"`
}

// CrossCheck is the verdict of an independent license detector run over
// the whole tree.
type CrossCheck struct {
	Detector   string  `json:"detector"`
	License    string  `json:"license,omitempty"`
	Confidence float64 `json:"confidence"`
	Agrees     bool    `json:"agrees"`
}

// Totals holds aggregate scan counters.
type Totals struct {
	Scanned   int `json:"scanned"`
	Skipped   int `json:"skipped"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
}

// FileError records a file that could not be processed.
type FileError struct {
	Path  string `json:"path"`
	Error string `json:"error"`
}

// ScanReport is the top-level output structure of a scan.
type ScanReport struct {
	GeneratedAt string         `json:"generated_at"`
	Root        string         `json:"root"`
	Repository  string         `json:"repository,omitempty"`
	Threshold   float64        `json:"threshold"`
	Licenses    int            `json:"corpus_licenses"`
	Primary     *Match         `json:"primary,omitempty"`
	Files       []FileMatch    `json:"files"`
	ByLicense   []LicenseCount `json:"by_license"`
	Totals      Totals         `json:"totals"`
	CrossCheck  *CrossCheck    `json:"cross_check,omitempty"`
	Errors      []FileError    `json:"errors,omitempty"`
}
