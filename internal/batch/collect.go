package batch

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"chromalint/internal/config"
	"chromalint/internal/engine"
)

// CollectFiles expands files and directories into the list of analyzable
// source files, honoring the configured include/exclude globs. Files named
// directly are taken as-is when their language is supported, even if the
// include patterns would not match them.
func CollectFiles(paths []string, files config.FilesConfig) ([]string, error) {
	var collected []string
	seen := make(map[string]bool)

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			collected = append(collected, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if engine.LanguageForPath(path) != engine.LanguageUnknown {
				add(path)
			}
			continue
		}

		err = filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			rel, relErr := filepath.Rel(path, walkPath)
			if relErr != nil {
				rel = walkPath
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if matchesAny(files.Exclude, rel) || matchesAny(files.Exclude, rel+"/") {
					return filepath.SkipDir
				}
				return nil
			}
			if matchesAny(files.Exclude, rel) {
				return nil
			}
			if !matchesAny(files.Include, rel) {
				return nil
			}
			if engine.LanguageForPath(walkPath) == engine.LanguageUnknown {
				return nil
			}
			add(walkPath)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return collected, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
