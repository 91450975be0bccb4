package corpus

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
)

//go:embed licenses/*.txt
var embedded embed.FS

// Embedded returns the reference texts bundled with the binary.
func Embedded() []Source {
	sources, err := readFS(embedded, "licenses")
	if err != nil {
		// The embedded directory is fixed at build time.
		panic(err)
	}
	return sources
}

// ReadDir collects one source per "<name>.txt" file in dir. Other files
// are ignored.
func ReadDir(dir string) ([]Source, error) {
	return readFS(os.DirFS(dir), ".")
}

func readFS(fsys fs.FS, dir string) ([]Source, error) {
	des, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read license dir: %w", err)
	}

	var sources []Source
	for _, de := range des {
		if de.IsDir() || path.Ext(de.Name()) != ".txt" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, de.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", de.Name(), err)
		}
		sources = append(sources, Source{
			Name: strings.TrimSuffix(de.Name(), ".txt"),
			Text: string(data),
		})
	}
	sort.Slice(sources, func(i, j int) bool {
		return sources[i].Name < sources[j].Name
	})
	return sources, nil
}
