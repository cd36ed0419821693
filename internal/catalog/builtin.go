package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// LoadBuiltinCatalogs returns the explainers bundled with the binary.
func LoadBuiltinCatalogs() ([]*Catalog, error) {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil, fmt.Errorf("read builtin catalogs: %w", err)
	}

	catalogs := make([]*Catalog, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := builtinFS.ReadFile("builtin/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("read builtin catalog %s: %w", entry.Name(), err)
		}
		c, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse builtin catalog %s: %w", entry.Name(), err)
		}
		c.source = "builtin"
		catalogs = append(catalogs, c)
	}

	sort.Slice(catalogs, func(i, j int) bool {
		return catalogs[i].name < catalogs[j].name
	})

	return catalogs, nil
}
