// internal/scan/scan.go
package scan

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/boyter/scc/v3/processor"
	"github.com/go-enry/go-enry/v2"

	"github.com/dsablic/licenseid/internal/match"
	"github.com/dsablic/licenseid/internal/model"
)

const (
	DefaultThreshold   = 0.8
	DefaultHeaderLines = 40

	maxFileSize   = 1 << 20
	minHeaderWord = 8
	concurrency   = 8
)

var initOnce sync.Once

// Identifier is the part of the engine the scanner needs.
type Identifier interface {
	Identify(text string) (match.Result, error)
	Licenses() []string
}

// Options configures a scan. Zero values select the defaults.
type Options struct {
	Threshold   float64
	HeaderLines int
	Exclude     []string
}

// ProgressFunc is called after each file is identified with the verdict
// for that file.
type ProgressFunc func(completed, total int, file model.FileMatch)

// Scanner walks a directory tree and identifies license files and source
// file headers.
type Scanner struct {
	id   Identifier
	opts Options
}

// loadLanguages ensures that scc's ProcessConstants is called exactly
// once, even when multiple goroutines create scanners concurrently.
func loadLanguages() {
	initOnce.Do(func() {
		processor.ProcessConstants()
	})
}

// New creates a Scanner.
func New(id Identifier, opts Options) *Scanner {
	loadLanguages()
	if opts.Threshold <= 0 {
		opts.Threshold = DefaultThreshold
	}
	if opts.HeaderLines <= 0 {
		opts.HeaderLines = DefaultHeaderLines
	}
	return &Scanner{id: id, opts: opts}
}

type candidate struct {
	rel      string
	kind     model.MatchKind
	language string
	text     string
}

// Scan identifies every candidate file below dir. progress may be nil.
func (s *Scanner) Scan(ctx context.Context, dir string, progress ProgressFunc) (*model.ScanReport, error) {
	report := &model.ScanReport{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Root:        dir,
		Threshold:   s.opts.Threshold,
		Licenses:    len(s.id.Licenses()),
		Files:       []model.FileMatch{},
		ByLicense:   []model.LicenseCount{},
	}

	cands, err := s.collect(ctx, dir, report)
	if err != nil {
		return nil, err
	}

	files := make([]model.FileMatch, len(cands))
	errs := make([]error, len(cands))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	var mu sync.Mutex
	completed := 0

	for i, c := range cands {
		if ctx.Err() != nil {
			break
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(idx int, c candidate) {
			defer wg.Done()
			defer func() { <-sem }()

			res, err := s.id.Identify(c.text)
			if err != nil {
				errs[idx] = err
				return
			}
			fm := model.FileMatch{
				Path:     c.rel,
				Kind:     c.kind,
				Language: c.language,
				Score:    res.Score,
				Best:     res.Name,
			}
			if res.Score >= s.opts.Threshold {
				fm.License = res.Name
			}
			files[idx] = fm

			if progress != nil {
				mu.Lock()
				completed++
				progress(completed, len(cands), fm)
				mu.Unlock()
			}
		}(i, c)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for i, f := range files {
		if errs[i] != nil {
			report.Errors = append(report.Errors, model.FileError{Path: cands[i].rel, Error: errs[i].Error()})
			continue
		}
		report.Files = append(report.Files, f)
		report.Totals.Scanned++
		if f.Matched() {
			report.Totals.Matched++
			counts[f.License]++
		} else {
			report.Totals.Unmatched++
		}
	}

	for license, n := range counts {
		report.ByLicense = append(report.ByLicense, model.LicenseCount{License: license, Files: n})
	}
	sort.Slice(report.ByLicense, func(i, j int) bool {
		if report.ByLicense[i].Files != report.ByLicense[j].Files {
			return report.ByLicense[i].Files > report.ByLicense[j].Files
		}
		return report.ByLicense[i].License < report.ByLicense[j].License
	})

	report.Primary = primary(report.Files)
	return report, nil
}

// collect walks dir in lexical order and returns the files worth
// identifying. Skipped files are counted on report.
func (s *Scanner) collect(ctx context.Context, dir string, report *model.ScanReport) ([]candidate, error) {
	var cands []candidate

	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable files
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, relErr := filepath.Rel(dir, p)
		if relErr != nil || rel == "." {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			base := d.Name()
			if base == ".git" || base == "node_modules" || base == ".hg" || enry.IsVendor(rel+"/") || s.excluded(rel) {
				slog.Debug("skip dir", "path", rel)
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() || s.excluded(rel) || enry.IsDotFile(rel) {
			report.Totals.Skipped++
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxFileSize {
			report.Totals.Skipped++
			return nil
		}

		content, err := os.ReadFile(p)
		if err != nil {
			report.Errors = append(report.Errors, model.FileError{Path: rel, Error: err.Error()})
			return nil
		}
		if enry.IsBinary(content) || enry.IsGenerated(rel, content) {
			slog.Debug("skip file", "path", rel, "reason", "binary or generated")
			report.Totals.Skipped++
			return nil
		}

		if c, ok := s.classify(rel, content); ok {
			cands = append(cands, c)
		} else {
			report.Totals.Skipped++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cands, nil
}

func (s *Scanner) classify(rel string, content []byte) (candidate, bool) {
	name := path.Base(rel)
	possible, _ := processor.DetectLanguage(name)

	source := false
	for _, lang := range possible {
		if !proseLanguages[lang] {
			source = true
		}
	}

	if slices.Contains(possible, "License") || (IsLicenseFile(name) && !source) {
		return candidate{rel: rel, kind: model.KindLicenseFile, language: "License", text: string(content)}, true
	}
	if !source {
		return candidate{}, false
	}

	language := processor.DetermineLanguage(name, "", possible, content)
	if language == "" || proseLanguages[language] {
		return candidate{}, false
	}

	header := Header(string(content), s.opts.HeaderLines, LanguageMarkers(language))
	if len(strings.Fields(header)) < minHeaderWord {
		return candidate{}, false
	}
	return candidate{rel: rel, kind: model.KindHeader, language: language, text: header}, true
}

func (s *Scanner) excluded(rel string) bool {
	for _, pattern := range s.opts.Exclude {
		if ok, _ := path.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := path.Match(pattern, path.Base(rel)); ok {
			return true
		}
	}
	return false
}

// primary picks the project license: the best matched license file closest
// to the root.
func primary(files []model.FileMatch) *model.Match {
	var best *model.FileMatch
	for i := range files {
		f := &files[i]
		if f.Kind != model.KindLicenseFile || !f.Matched() {
			continue
		}
		if best == nil || better(f, best) {
			best = f
		}
	}
	if best == nil {
		return nil
	}
	return &model.Match{License: best.License, Score: best.Score}
}

func better(a, b *model.FileMatch) bool {
	da, db := strings.Count(a.Path, "/"), strings.Count(b.Path, "/")
	if da != db {
		return da < db
	}
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	return a.Path < b.Path
}
