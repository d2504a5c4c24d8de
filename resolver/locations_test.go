// Copyright (c) Microsoft Corporation. All rights reserved.
// Licensed under the MIT License.

package resolver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jongio/toolenv/testutil"
)

func TestDefaultLocationsOrder(t *testing.T) {
	testutil.SkipOnWindows(t)
	home := testutil.TempDir(t)
	for _, version := range []string{"v20.1.0", "v18.2.0", "v22.0.0"} {
		require.NoError(t, os.MkdirAll(filepath.Join(home, ".nvm", "versions", "node", version, "bin"), 0o755))
	}

	locs := DefaultLocations(home)

	// Kinds never go backwards in probe order.
	for i := 1; i < len(locs); i++ {
		assert.LessOrEqual(t, locs[i-1].Kind, locs[i].Kind, "location %d (%s)", i, locs[i].Dir)
	}
	assert.Equal(t, Location{Dir: "/usr/local/bin", Kind: KindDirect}, locs[0])

	var nvm []string
	for _, loc := range locs {
		if strings.Contains(loc.Dir, filepath.Join(".nvm", "versions")) {
			nvm = append(nvm, loc.Dir)
		}
	}
	assert.Equal(t, []string{
		filepath.Join(home, ".nvm", "versions", "node", "v18.2.0", "bin"),
		filepath.Join(home, ".nvm", "versions", "node", "v20.1.0", "bin"),
		filepath.Join(home, ".nvm", "versions", "node", "v22.0.0", "bin"),
	}, nvm)

	assert.Contains(t, locs, Location{Dir: filepath.Join(home, ".local", "bin"), Kind: KindUserLocal})
	assert.Contains(t, locs, Location{Dir: filepath.Join(home, ".volta", "bin"), Kind: KindVersionManager})
	assert.Contains(t, locs, Location{Dir: filepath.Join(home, ".nvm", "current", "bin"), Kind: KindVersionManager})
}

func TestDefaultLocationsWithoutHome(t *testing.T) {
	testutil.SkipOnWindows(t)

	for _, loc := range DefaultLocations("") {
		assert.Equal(t, KindDirect, loc.Kind, loc.Dir)
		assert.True(t, filepath.IsAbs(loc.Dir), loc.Dir)
	}
}

func TestDedupeLocations(t *testing.T) {
	testutil.SkipOnWindows(t)
	root := testutil.TempDir(t)
	real := filepath.Join(root, "real")
	require.NoError(t, os.MkdirAll(real, 0o755))
	alias := filepath.Join(root, "alias")
	testutil.Symlink(t, real, alias)

	got := dedupeLocations([]Location{
		{Dir: alias, Kind: KindUserLocal},
		{Dir: ""},
		{Dir: real + "/", Kind: KindDirect},
		{Dir: "/does/not/exist", Kind: KindDirect},
		{Dir: "/does/not/exist/", Kind: KindBundled},
	})

	assert.Equal(t, []Location{
		{Dir: alias, Kind: KindUserLocal},
		{Dir: "/does/not/exist", Kind: KindDirect},
	}, got)
}

func TestResolverLocations(t *testing.T) {
	r := New(Options{
		Tool:           "tool",
		Home:           "/home/test",
		ExtraLocations: []Location{{Dir: "/extra", Kind: KindUserLocal}},
		BundledDir:     "/app/resources",
		Locations:      []Location{{Dir: "/custom", Kind: KindDirect}, {Dir: "/extra", Kind: KindDirect}},
	})

	assert.Equal(t, []Location{
		{Dir: "/extra", Kind: KindUserLocal},
		{Dir: "/app/resources", Kind: KindBundled},
		{Dir: "/custom", Kind: KindDirect},
	}, r.Locations())
}
