// Package assets loads showroom models and environment maps from the assets
// root, the directory that web-style paths such as /models/x/scene.gltf are
// resolved against.
//
// Decoding runs on worker goroutines. Results come back over a channel that
// the owning page drains on the frame goroutine, so nothing here touches the
// scene graph or GL.
package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/showroom/internal/engine/scene"
)

// ErrOutsideRoot is returned for paths that escape the assets root.
var ErrOutsideRoot = errors.New("path escapes assets root")

// Loader resolves and decodes assets under one root directory.
type Loader struct {
	root    string
	cache   *Cache
	log     *zap.Logger
	workers int
}

// NewLoader creates a loader for root. log may be nil.
func NewLoader(root string, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{
		root:    root,
		cache:   NewCache(),
		log:     log,
		workers: max(2, runtime.NumCPU()/2),
	}
}

// Root returns the assets root.
func (l *Loader) Root() string {
	return l.root
}

// Cache exposes the byte cache.
func (l *Loader) Cache() *Cache {
	return l.cache
}

// Resolve maps a web-style path to a file under the root.
func (l *Loader) Resolve(webPath string) (string, error) {
	if webPath == "" {
		return "", fmt.Errorf("empty asset path")
	}
	rel := filepath.FromSlash(strings.TrimPrefix(webPath, "/"))
	if !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%s: %w", webPath, ErrOutsideRoot)
	}
	return filepath.Join(l.root, rel), nil
}

// Read returns the bytes of webPath, cached.
func (l *Loader) Read(webPath string) ([]byte, error) {
	path, err := l.Resolve(webPath)
	if err != nil {
		return nil, err
	}
	if data, ok := l.cache.Get(path); ok {
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", webPath, err)
	}
	l.cache.Set(path, data)
	return data, nil
}

// LoadModel decodes the glTF at webPath into a node tree.
func (l *Loader) LoadModel(webPath string) (*scene.Node, error) {
	path, err := l.Resolve(webPath)
	if err != nil {
		return nil, err
	}
	node, err := DecodeGLTF(path)
	if err != nil {
		return nil, fmt.Errorf("loading model %s: %w", webPath, err)
	}
	return node, nil
}

// Request asks for one model on behalf of item ID.
type Request struct {
	ID   int
	Path string
}

// Result is a finished request. Exactly one of Node and Err is set.
type Result struct {
	ID   int
	Path string
	Node *scene.Node
	Err  error
}

// Start decodes every request in the background. The returned channel is
// buffered for all results and closed once the last one is sent, so workers
// never block on a page that stopped draining. Requests not yet started
// when ctx is cancelled are skipped.
func (l *Loader) Start(ctx context.Context, reqs []Request) <-chan Result {
	out := make(chan Result, len(reqs))
	queue := make(chan Request)

	var wg sync.WaitGroup
	for i := 0; i < min(l.workers, len(reqs)); i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for req := range queue {
				node, err := l.LoadModel(req.Path)
				out <- Result{ID: req.ID, Path: req.Path, Node: node, Err: err}
			}
		}()
	}

	go func() {
		defer func() {
			close(queue)
			wg.Wait()
			close(out)
		}()
		for _, req := range reqs {
			select {
			case queue <- req:
			case <-ctx.Done():
				l.log.Debug("load cancelled", zap.Int("requests", len(reqs)))
				return
			}
		}
	}()

	return out
}

// Drain hands every result already waiting on ch to fn without blocking.
// It returns false once ch is closed and empty.
func Drain(ch <-chan Result, fn func(Result)) bool {
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return false
			}
			fn(r)
		default:
			return true
		}
	}
}
