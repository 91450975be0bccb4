// internal/scan/names.go
package scan

import (
	"path"
	"strings"
)

var licenseFileNames = map[string]bool{
	"copying":        true,
	"copying.lesser": true,
	"copying.lib":    true,
	"copyright":      true,
	"licence":        true,
	"license":        true,
	"mit-license":    true,
	"mit_license":    true,
	"notice":         true,
	"unlicence":      true,
	"unlicense":      true,
}

// proseLanguages are scc languages that do not carry comment headers.
var proseLanguages = map[string]bool{
	"License":          true,
	"Markdown":         true,
	"Plain Text":       true,
	"ReStructuredText": true,
	"Text":             true,
}

// IsLicenseFile reports whether name looks like a file holding a full
// license text, such as LICENSE, COPYING.md or LICENSE-APACHE. Source
// files like license.go are not license files.
func IsLicenseFile(name string) bool {
	base := strings.ToLower(name)
	switch path.Ext(base) {
	case ".txt", ".md", ".rst", "":
		base = strings.TrimSuffix(base, path.Ext(base))
	}
	if licenseFileNames[base] {
		return true
	}
	for _, prefix := range []string{"license-", "licence-", "license_", "licence_"} {
		if strings.HasPrefix(base, prefix) {
			return true
		}
	}
	return false
}
