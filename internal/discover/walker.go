// Package discover finds candidate database files under a directory tree.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
)

// Find walks root recursively and returns the absolute paths of regular
// files whose names end in one of the given suffixes. The result is
// deduplicated and sorted lexicographically so repeated runs over an
// unchanged tree produce identical reports.
//
// Unreadable entries are logged at warn level and skipped; only a missing
// or unstatable root is an error. Symlinked directories are not followed,
// which keeps the walk safe against symlink cycles.
func Find(root string, suffixes []string, log zerolog.Logger) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat source directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("source %s is not a directory", root)
	}

	seen := make(map[string]struct{})
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unreadable entry")
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if !matches(d.Name(), suffixes) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("skipping unresolvable path")
			return nil
		}
		seen[abs] = struct{}{}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk %s: %w", root, walkErr)
	}

	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

func matches(name string, suffixes []string) bool {
	lower := strings.ToLower(name)
	for _, s := range suffixes {
		if strings.HasSuffix(lower, strings.ToLower(s)) {
			return true
		}
	}
	return false
}
