// Package license runs go-license-detector over a directory as an
// independent second opinion on a scan result.
package license

import (
	"github.com/go-enry/go-license-detector/v4/licensedb"
	"github.com/go-enry/go-license-detector/v4/licensedb/filer"

	"github.com/dsablic/licenseid/internal/model"
)

// Detector is the name reported in cross-check results.
const Detector = "go-license-detector"

// Detect scans the directory for license files and returns the SPDX
// identifier and confidence of the most confident match, or an empty
// string if none is found.
func Detect(dir string) (string, float64) {
	f, err := filer.FromDirectory(dir)
	if err != nil {
		return "", 0
	}

	results, err := licensedb.Detect(f)
	if err != nil {
		return "", 0
	}

	var bestID string
	var bestConf float32
	for id, match := range results {
		if match.Confidence > bestConf || (match.Confidence == bestConf && id < bestID) {
			bestConf = match.Confidence
			bestID = id
		}
	}

	return bestID, float64(bestConf)
}

// CrossCheck compares primary, the license our scan settled on, with the
// verdict of go-license-detector for dir. primary may be empty.
func CrossCheck(dir, primary string) *model.CrossCheck {
	id, conf := Detect(dir)
	return &model.CrossCheck{
		Detector:   Detector,
		License:    id,
		Confidence: conf,
		Agrees:     id == primary,
	}
}
