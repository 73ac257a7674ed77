package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

func seedAssets(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"maps/level.map":      "x.\n.x\n",
		"scenes/default.yaml": "map: maps/level.map\n",
		"shaders/world.vert":  "void main() {}\n",
		"shaders/world.frag":  "void main() {}\n",
		"models/box.obj":      "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
		"readme.md":           "ignored",
		".git/config":         "ignored",
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func newManager(t *testing.T, dir string, watch bool) *AssetManager {
	t.Helper()
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir, watch))
	t.Cleanup(func() { assert.NoError(t, am.Shutdown()) })
	return am
}

func TestInitializeIndexesKnownTypes(t *testing.T) {
	dir := seedAssets(t)
	am := newManager(t, dir, false)

	assert.Equal(t, 5, am.Len())
	info, ok := am.Asset("maps/level.map")
	require.True(t, ok)
	assert.Equal(t, metadata.ResourceTypeMap, info.Type)
	assert.True(t, info.LastLoaded.IsZero())

	shaders := am.Assets(metadata.ResourceTypeShader)
	require.Len(t, shaders, 2)
	assert.Equal(t, filepath.Join(dir, "shaders/world.frag"), shaders[0].Path)
	assert.Equal(t, filepath.Join(dir, "shaders/world.vert"), shaders[1].Path)

	_, ok = am.Asset("readme.md")
	assert.False(t, ok)
}

func TestInitializeMissingDir(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	defer am.Shutdown()

	err = am.Initialize(filepath.Join(t.TempDir(), "nope"), false)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)
}

func TestLoadAsset(t *testing.T) {
	dir := seedAssets(t)
	am := newManager(t, dir, false)

	res, err := am.LoadAsset("scenes/default.yaml", metadata.ResourceTypeScene, nil)
	require.NoError(t, err)
	scene := res.Data.(*metadata.SceneResourceData)
	assert.Equal(t, filepath.Join(dir, "maps/level.map"), scene.Map)

	info, ok := am.Asset("scenes/default.yaml")
	require.True(t, ok)
	assert.False(t, info.LastLoaded.IsZero())

	res, err = am.LoadAsset("shaders/world", metadata.ResourceTypeShader, nil)
	require.NoError(t, err)
	assert.Equal(t, "world", res.Name)

	res, err = am.LoadAsset(filepath.Join(dir, "models/box.obj"), metadata.ResourceTypeMesh, nil)
	require.NoError(t, err)
	require.NoError(t, am.UnloadAsset(res))
	assert.Nil(t, res.Data)
}

func TestLoadAssetErrors(t *testing.T) {
	am := newManager(t, seedAssets(t), false)

	_, err := am.LoadAsset("maps/level.map", metadata.ResourceTypeNone, nil)
	assert.ErrorIs(t, err, core.ErrUnknownAssetType)

	_, err = am.LoadAsset("maps/missing.map", metadata.ResourceTypeMap, nil)
	assert.ErrorIs(t, err, core.ErrAssetNotFound)

	assert.ErrorIs(t, am.UnloadAsset(nil), core.ErrInvalidInput)
}

func TestPollChangesWithoutWatch(t *testing.T) {
	am := newManager(t, seedAssets(t), false)
	assert.Empty(t, am.PollChanges())
}

func TestWatchReportsChanges(t *testing.T) {
	dir := seedAssets(t)
	am := newManager(t, dir, true)

	target := filepath.Join(dir, "maps/level.map")
	require.NoError(t, os.WriteFile(target, []byte("xx\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("skip"), 0o644))

	var seen []string
	assert.Eventually(t, func() bool {
		seen = append(seen, am.PollChanges()...)
		for _, p := range seen {
			if p == target {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
	assert.NotContains(t, seen, filepath.Join(dir, "notes.md"))
}

func TestWatchIndexesNewFiles(t *testing.T) {
	dir := seedAssets(t)
	am := newManager(t, dir, true)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "models/cone.obj"), []byte("v 0 0 0\n"), 0o644))
	assert.Eventually(t, func() bool {
		am.PollChanges()
		_, ok := am.Asset("models/cone.obj")
		return ok
	}, 2*time.Second, 10*time.Millisecond)
}

func TestShutdownTwice(t *testing.T) {
	am, err := NewAssetManager()
	require.NoError(t, err)
	require.NoError(t, am.Initialize(seedAssets(t), true))
	require.NoError(t, am.Shutdown())
	require.NoError(t, am.Shutdown())
}
