package catalog

import (
	"os"
	"path/filepath"
)

// SearchPaths returns catalog directories in precedence order: extra dirs,
// then the project, user and system directories.
func SearchPaths(projectDir string, extra ...string) []string {
	paths := make([]string, 0, len(extra)+3)
	for _, dir := range extra {
		if dir != "" {
			paths = append(paths, dir)
		}
	}
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".explainer", "catalogs"))
	}

	if home, err := os.UserHomeDir(); err == nil && home != "" {
		paths = append(paths, filepath.Join(home, ".config", "explainer", "catalogs"))
	}

	paths = append(paths, filepath.Join(string(filepath.Separator), "usr", "share", "explainer", "catalogs"))
	return paths
}

// LoadCatalogsFromSearchPaths loads catalogs with first-hit precedence;
// builtins fill in any name not found on disk.
func LoadCatalogsFromSearchPaths(projectDir string, extra ...string) ([]*Catalog, error) {
	return loadFromPaths(SearchPaths(projectDir, extra...))
}

func loadFromPaths(paths []string) ([]*Catalog, error) {
	seen := make(map[string]*Catalog)
	order := make([]string, 0)

	add := func(c *Catalog) {
		if _, exists := seen[c.name]; exists {
			return
		}
		seen[c.name] = c
		order = append(order, c.name)
	}

	for _, path := range paths {
		catalogs, err := LoadCatalogsFromDir(path)
		if err != nil {
			return nil, err
		}
		for _, c := range catalogs {
			add(c)
		}
	}

	builtins, err := LoadBuiltinCatalogs()
	if err != nil {
		return nil, err
	}
	for _, c := range builtins {
		add(c)
	}

	resolved := make([]*Catalog, 0, len(order))
	for _, name := range order {
		resolved = append(resolved, seen[name])
	}
	return resolved, nil
}
