package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-labs/explainer/internal/catalog"
)

func TestCountSources(t *testing.T) {
	builtins, err := catalog.LoadBuiltinCatalogs()
	require.NoError(t, err)
	onDisk := mustCatalog(t, "local")

	tests := []struct {
		name     string
		catalogs []*catalog.Catalog
		want     string
	}{
		{"nothing", nil, "0 catalogs, all built-in"},
		{"builtins only", builtins, "2 catalogs, all built-in"},
		{"single disk catalog", []*catalog.Catalog{onDisk}, "1 catalog: 0 built-in, 1 from disk"},
		{"mixed", append([]*catalog.Catalog{onDisk}, builtins...), "3 catalogs: 2 built-in, 1 from disk"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, countSources(tt.catalogs).String())
		})
	}
}

func TestCatalogStepOutput(t *testing.T) {
	var buf bytes.Buffer
	step := beginCatalogStep(&buf, "Loading catalogs")
	step.Done([]*catalog.Catalog{mustCatalog(t, "local")})

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Loading catalogs... 1 catalog: 0 built-in, 1 from disk ("), out)
	assert.True(t, strings.HasSuffix(out, ")\n"), out)

	buf.Reset()
	beginCatalogStep(&buf, "Loading catalogs").Fail(errors.New("bad yaml"))
	assert.Equal(t, "Loading catalogs... failed: bad yaml\n", buf.String())

	// Disabled steps are nil and must be safe to finish.
	var disabled *catalogStep
	disabled.Done(nil)
	disabled.Fail(nil)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{123 * time.Millisecond, "120ms"},
		{2540 * time.Millisecond, "2.5s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.in); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
