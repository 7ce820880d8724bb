package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/hellotriangle/engine/assets/loaders"
	"github.com/spaghettifunk/hellotriangle/engine/core"
	"github.com/spaghettifunk/hellotriangle/engine/renderer/shaders"
)

// Name of the shader module built into the binary.
const BasicShaderName = "basic"

// Pending reloads beyond this are dropped until the engine catches up.
const reloadQueueSize = 16

var ErrUnknownShader = errors.New("unknown shader")

type AssetType int

const (
	AssetTypeNone AssetType = iota
	AssetTypeShader
)

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// AssetManager resolves shader sources, preferring files under the asset
// directory over the embedded defaults, and optionally watches the directory
// for changes.
type AssetManager struct {
	dir     string
	assets  map[string]AssetInfo
	loaders map[AssetType]Loader

	mutex sync.RWMutex

	watcher   *fsnotify.Watcher
	reloads   chan string
	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

func NewAssetManager(dir string) *AssetManager {
	return &AssetManager{
		dir:     dir,
		assets:  make(map[string]AssetInfo),
		loaders: map[AssetType]Loader{AssetTypeShader: &loaders.ShaderLoader{}},
		reloads: make(chan string, reloadQueueSize),
		done:    make(chan struct{}),
	}
}

// Initialize indexes the asset directory. A missing directory is not an
// error: every asset then comes from the embedded defaults. With watch set,
// changes to shader files are reported through Reloads.
func (am *AssetManager) Initialize(watch bool) error {
	exists, err := am.dirExists()
	if err != nil {
		return err
	}
	if !exists {
		core.LogDebug("Asset directory '%s' not found, using embedded assets.", am.dir)
		if watch {
			core.LogWarn("Asset watching requested but '%s' does not exist.", am.dir)
		}
		return nil
	}

	if watch {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("failed to create asset watcher: %w", err)
		}
		am.watcher = w
	}

	if err := am.watchRecursive(am.dir); err != nil {
		return err
	}

	if am.watcher != nil {
		am.wg.Add(1)
		go am.start()
		core.LogInfo("Watching '%s' for shader changes.", am.dir)
	}
	return nil
}

func (am *AssetManager) dirExists() (bool, error) {
	fi, err := os.Stat(am.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !fi.IsDir() {
		return false, fmt.Errorf("asset path '%s' is not a directory", am.dir)
	}
	return true, nil
}

// ShaderPath is where an on-disk override of the named shader lives.
func (am *AssetManager) ShaderPath(name string) string {
	return filepath.Join(am.dir, "shaders", name+".wgsl")
}

// ShaderSource returns the WGSL source of the named shader. An override in
// the asset directory wins over the embedded module.
func (am *AssetManager) ShaderSource(name string) (string, error) {
	path := am.ShaderPath(name)
	if _, err := os.Stat(path); err == nil {
		data, err := am.loaders[AssetTypeShader].Load(path)
		if err != nil {
			return "", err
		}
		am.touch(path, AssetTypeShader)
		core.LogDebug("Loaded shader '%s' from %s.", name, path)
		return string(data), nil
	}

	if name == BasicShaderName {
		return shaders.BasicSource(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownShader, name)
}

// ShaderNameForPath maps a watched file back to its shader name.
func ShaderNameForPath(path string) (string, bool) {
	if determineAssetType(path) != AssetTypeShader {
		return "", false
	}
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))], true
}

// OverriddenShader reports which shader path overrides. Only the file at
// ShaderPath(name) counts; a same-named file elsewhere in the tree does not.
func (am *AssetManager) OverriddenShader(path string) (string, bool) {
	name, ok := ShaderNameForPath(path)
	if !ok || filepath.Clean(path) != am.ShaderPath(name) {
		return "", false
	}
	return name, true
}

// Reloads drains the shader files changed since the last call, without
// blocking. Each path is reported once.
func (am *AssetManager) Reloads() []string {
	var out []string
	seen := make(map[string]bool)
	for {
		select {
		case p := <-am.reloads:
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		default:
			return out
		}
	}
}

// Assets returns the indexed assets.
func (am *AssetManager) Assets() []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	out := make([]AssetInfo, 0, len(am.assets))
	for _, a := range am.assets {
		out = append(out, a)
	}
	return out
}

// Close stops the watcher. It is safe to call more than once.
func (am *AssetManager) Close() error {
	var err error
	am.closeOnce.Do(func() {
		close(am.done)
		am.wg.Wait()
		if am.watcher != nil {
			err = am.watcher.Close()
		}
	})
	return err
}

func (am *AssetManager) start() {
	defer am.wg.Done()
	for {
		select {
		case e, ok := <-am.watcher.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case err, ok := <-am.watcher.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	if e.Has(fsnotify.Create) {
		if s, err := os.Stat(e.Name); err == nil && s.IsDir() {
			if err := am.watchRecursive(e.Name); err != nil {
				core.LogWarn("asset watcher: cannot watch %s: %s", e.Name, err)
			}
			return
		}
	}

	// A removed override falls back to the embedded source, which is a
	// reload too.
	if e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename) {
		am.removeAsset(e.Name)
		if determineAssetType(e.Name) == AssetTypeShader {
			am.queueReload(e.Name)
		}
		return
	}

	if e.Has(fsnotify.Create) || e.Has(fsnotify.Write) {
		if am.handleFileEvent(e.Name) == AssetTypeShader {
			am.queueReload(e.Name)
		}
	}
}

func (am *AssetManager) queueReload(path string) {
	select {
	case am.reloads <- path:
	default:
		core.LogWarn("asset watcher: reload queue full, dropping %s", path)
	}
}

// watchRecursive indexes the files under path and, when watching, adds
// every directory to the watch list.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if am.watcher != nil {
				return am.watcher.Add(walkPath)
			}
			return nil
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// handleFileEvent records a created or modified file and returns its type.
func (am *AssetManager) handleFileEvent(path string) AssetType {
	assetType := determineAssetType(path)
	if assetType == AssetTypeNone {
		return assetType
	}
	am.touch(path, assetType)
	return assetType
}

func (am *AssetManager) touch(path string, assetType AssetType) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.assets[path] = AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: time.Now(),
	}
}

func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	delete(am.assets, path)
}

func determineAssetType(path string) AssetType {
	switch filepath.Ext(path) {
	case ".wgsl":
		return AssetTypeShader
	default:
		return AssetTypeNone
	}
}
