package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/corridor/engine/assets/loaders"
	"github.com/spaghettifunk/corridor/engine/core"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

const changeBufferSize = 64

type AssetInfo struct {
	Path       string
	Type       metadata.ResourceType
	LastLoaded time.Time
}

// AssetManager indexes the assets directory, loads files through the
// registered loaders and, when watching, reports files that changed on
// disk. Changes are collected by a background goroutine and handed out by
// PollChanges, which never blocks.
type AssetManager struct {
	assetsDir string
	assets    map[string]AssetInfo
	loaders   map[metadata.ResourceType]Loader

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	watching bool
	changes  chan string
	wg       sync.WaitGroup
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[metadata.ResourceType]Loader),
		fsnotify: fsWatch,
		changes:  make(chan string, changeBufferSize),
		done:     make(chan struct{}),
	}, nil
}

// Initialize indexes assetsDir and registers the loaders. With watch set,
// the directory tree is also watched for changes.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	s, err := os.Stat(assetsDir)
	if err != nil {
		return fmt.Errorf("assets directory %s: %w", assetsDir, core.ErrAssetNotFound)
	}
	if !s.IsDir() {
		return fmt.Errorf("assets directory %s is not a directory: %w", assetsDir, core.ErrInvalidConfig)
	}
	am.assetsDir = filepath.Clean(assetsDir)

	// Register loaders
	am.registerLoader(metadata.ResourceTypeText, &loaders.TextLoader{})
	am.registerLoader(metadata.ResourceTypeShader, &loaders.ShaderLoader{})
	am.registerLoader(metadata.ResourceTypeImage, &loaders.TextureLoader{})
	am.registerLoader(metadata.ResourceTypeMesh, &loaders.ModelLoader{})
	am.registerLoader(metadata.ResourceTypeMap, &loaders.MapLoader{})
	am.registerLoader(metadata.ResourceTypeScene, &loaders.SceneLoader{})

	if err := am.watchRecursive(am.assetsDir, watch); err != nil {
		return err
	}
	if watch {
		am.watching = true
		am.wg.Add(1)
		go am.start()
	}
	core.LogDebug("indexed %d assets in %s (watch: %t)", am.Len(), am.assetsDir, watch)
	return nil
}

// Shutdown stops watching. It is safe to call more than once.
func (am *AssetManager) Shutdown() error {
	am.mutex.Lock()
	if am.isClosed {
		am.mutex.Unlock()
		return nil
	}
	am.isClosed = true
	am.mutex.Unlock()

	close(am.done)
	am.wg.Wait()
	if !am.watching {
		return am.fsnotify.Close()
	}
	return nil
}

// Dir returns the indexed assets directory.
func (am *AssetManager) Dir() string {
	return am.assetsDir
}

// Resolve turns a path relative to the assets directory into the form used
// as index key. Absolute paths are only cleaned.
func (am *AssetManager) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(am.assetsDir, path)
}

// Register loaders for each asset type
func (am *AssetManager) registerLoader(assetType metadata.ResourceType, loader Loader) {
	am.loaders[assetType] = loader
}

// LoadAsset loads path (relative to the assets directory or absolute) with
// the loader registered for resourceType. Shaders are named by their stem.
func (am *AssetManager) LoadAsset(path string, resourceType metadata.ResourceType, params interface{}) (*metadata.Resource, error) {
	loader, loaderExists := am.loaders[resourceType]
	if !loaderExists {
		return nil, fmt.Errorf("no loader registered for asset type %s: %w", resourceType, core.ErrUnknownAssetType)
	}

	full := am.Resolve(path)
	if resourceType == metadata.ResourceTypeScene && params == nil {
		params = loaders.SceneLoaderParams{AssetsDir: am.assetsDir}
	}
	res, err := loader.Load(full, params)
	if err != nil {
		return nil, err
	}

	key := full
	if resourceType == metadata.ResourceTypeShader {
		key = res.FullPath + metadata.ShaderStageVertex.Extension()
	}
	am.mutex.Lock()
	am.assets[key] = AssetInfo{
		Path:       key,
		Type:       resourceType,
		LastLoaded: time.Now(),
	}
	am.mutex.Unlock()
	return res, nil
}

func (am *AssetManager) UnloadAsset(asset *metadata.Resource) error {
	if asset == nil {
		return fmt.Errorf("unload of nil asset: %w", core.ErrInvalidInput)
	}
	loader, ok := am.loaders[asset.Type]
	if !ok {
		return fmt.Errorf("no loader registered for asset type %s: %w", asset.Type, core.ErrUnknownAssetType)
	}
	return loader.Unload(asset)
}

// Asset returns the index entry of a path.
func (am *AssetManager) Asset(path string) (AssetInfo, bool) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	info, ok := am.assets[am.Resolve(path)]
	return info, ok
}

// Assets lists the indexed assets of a type in path order.
func (am *AssetManager) Assets(assetType metadata.ResourceType) []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	out := make([]AssetInfo, 0)
	for _, info := range am.assets {
		if info.Type == assetType {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

func (am *AssetManager) Len() int {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	return len(am.assets)
}

// PollChanges returns the paths changed since the last call, without
// duplicates and in arrival order. It never blocks.
func (am *AssetManager) PollChanges() []string {
	var out []string
	seen := make(map[string]struct{})
	for {
		select {
		case p := <-am.changes:
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		default:
			return out
		}
	}
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, true); err != nil {
						core.LogWarn("cannot watch new directory %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				am.handleFileEvent(e.Name)
			}
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
			}
			if determineAssetType(e.Name) == metadata.ResourceTypeNone {
				continue
			}
			select {
			case am.changes <- filepath.Clean(e.Name):
			case <-am.done:
				am.fsnotify.Close()
				return
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

// watchRecursive indexes every file under path and, with watch set, adds
// every directory to the watch list.
func (am *AssetManager) watchRecursive(path string, watch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if strings.HasPrefix(fi.Name(), ".") && walkPath != path {
				return filepath.SkipDir
			}
			if watch {
				if err := am.fsnotify.Add(walkPath); err != nil {
					return err
				}
			}
			return nil
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) {
	assetType := determineAssetType(path)
	if assetType == metadata.ResourceTypeNone {
		return
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	path = filepath.Clean(path)
	info := am.assets[path]
	info.Path = path
	info.Type = assetType
	am.assets[path] = info
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) metadata.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".vert", ".frag":
		return metadata.ResourceTypeShader
	case ".png", ".jpg", ".jpeg", ".bmp", ".tif", ".tiff", ".webp":
		return metadata.ResourceTypeImage
	case ".obj":
		return metadata.ResourceTypeMesh
	case ".map":
		return metadata.ResourceTypeMap
	case ".yaml", ".yml":
		return metadata.ResourceTypeScene
	case ".txt", ".toml":
		return metadata.ResourceTypeText
	default:
		return metadata.ResourceTypeNone
	}
}
