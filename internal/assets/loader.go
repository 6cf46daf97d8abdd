package assets

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"space-demos/internal/logger"
	"space-demos/internal/scene"
	"space-demos/internal/updatequeue"
)

// Loader decodes images on background goroutines and hands them to the frame thread through
// an update queue. Textures stay empty (and render blank) until their image is drained.
type Loader struct {
	ctx   context.Context
	dirs  []string
	queue *updatequeue.Queue
	log   *logger.Logger
	wg    sync.WaitGroup
}

// NewLoader returns a loader that looks up names in dirs, in order. Decoding stops being
// delivered once ctx is done.
func NewLoader(ctx context.Context, queue *updatequeue.Queue, log *logger.Logger, dirs ...string) *Loader {
	return &Loader{ctx: ctx, dirs: dirs, queue: queue, log: log}
}

// Resolve returns the first existing path for name across the search directories. Absolute
// names are checked as-is.
func (l *Loader) Resolve(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", err
		}
		return name, nil
	}
	for _, dir := range l.dirs {
		p := filepath.Clean(filepath.Join(dir, name))
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%s not found in %v: %w", name, l.dirs, os.ErrNotExist)
}

// Load decodes name in the background and sets it on tex.
func (l *Loader) Load(tex *scene.Texture, name string) {
	l.run(tex, func() (image.Image, error) {
		return l.decode(name)
	})
}

// LoadWithAlpha decodes colorName and alphaName in the background and sets their
// composition (see ComposeAlpha) on tex.
func (l *Loader) LoadWithAlpha(tex *scene.Texture, colorName, alphaName string) {
	l.run(tex, func() (image.Image, error) {
		col, err := l.decode(colorName)
		if err != nil {
			return nil, err
		}
		alpha, err := l.decode(alphaName)
		if err != nil {
			return nil, err
		}
		return ComposeAlpha(col, alpha), nil
	})
}

// Wait blocks until every started load has finished decoding.
func (l *Loader) Wait() {
	l.wg.Wait()
}

func (l *Loader) decode(name string) (image.Image, error) {
	path, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	return Decode(path)
}

func (l *Loader) run(tex *scene.Texture, load func() (image.Image, error)) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := load()
		if err != nil {
			l.logf("texture %s: %v", tex.Name, err)
			return
		}
		if l.ctx.Err() != nil {
			return
		}
		b := img.Bounds()
		l.queue.Push(func() {
			tex.SetImage(img)
			l.logf("texture %s: loaded %dx%d", tex.Name, b.Dx(), b.Dy())
		})
	}()
}

func (l *Loader) logf(format string, args ...any) {
	if l.log != nil {
		l.log.Logf(format, args...)
	}
}
