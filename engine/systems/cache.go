package systems

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/corridor/engine/assets"
	"github.com/spaghettifunk/corridor/engine/renderer/metadata"
)

// resourceCache loads resources of one type through the asset manager on
// the job system and keeps them by resolved path.
type resourceCache[T any] struct {
	name         string
	resourceType metadata.ResourceType
	params       interface{}
	jobSystem    *JobSystem
	assetManager *assets.AssetManager

	mutex   sync.RWMutex
	entries map[string]T
}

func newResourceCache[T any](name string, resourceType metadata.ResourceType, params interface{}, js *JobSystem, am *assets.AssetManager) *resourceCache[T] {
	return &resourceCache[T]{
		name:         name,
		resourceType: resourceType,
		params:       params,
		jobSystem:    js,
		assetManager: am,
		entries:      make(map[string]T),
	}
}

// load returns the resources for paths, loading the ones not cached yet in
// parallel. The result is keyed by resolved path.
func (c *resourceCache[T]) load(paths []string) (map[string]T, error) {
	out := make(map[string]T, len(paths))
	var missing []string
	seen := make(map[string]struct{})

	c.mutex.RLock()
	for _, p := range paths {
		full := c.assetManager.Resolve(p)
		if v, ok := c.entries[full]; ok {
			out[full] = v
			continue
		}
		if _, ok := seen[full]; !ok {
			seen[full] = struct{}{}
			missing = append(missing, full)
		}
	}
	c.mutex.RUnlock()

	loaded, err := RunAll(c.jobSystem, c.name, missing, func(path string) (T, error) {
		var zero T
		res, err := c.assetManager.LoadAsset(path, c.resourceType, c.params)
		if err != nil {
			return zero, err
		}
		data, ok := res.Data.(T)
		if !ok {
			return zero, fmt.Errorf("%s: unexpected %s data %T", path, c.resourceType, res.Data)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	c.mutex.Lock()
	for i, path := range missing {
		c.entries[path] = loaded[i]
		out[path] = loaded[i]
	}
	c.mutex.Unlock()
	return out, nil
}

func (c *resourceCache[T]) get(path string) (T, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	v, ok := c.entries[c.assetManager.Resolve(path)]
	return v, ok
}

func (c *resourceCache[T]) put(path string, v T) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[c.assetManager.Resolve(path)] = v
}

// invalidate drops a cached entry so the next load reads the file again.
func (c *resourceCache[T]) invalidate(path string) bool {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	full := c.assetManager.Resolve(path)
	if _, ok := c.entries[full]; !ok {
		return false
	}
	delete(c.entries, full)
	return true
}

func (c *resourceCache[T]) len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

func (c *resourceCache[T]) clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = make(map[string]T)
}
