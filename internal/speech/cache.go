package speech

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/mod/semver"
)

// FillFunc renders the audio for text when it is not cached.
type FillFunc func(ctx context.Context, text string) ([]byte, error)

// Cache stores rendered audio as <root>/<version>/<sha256>.wav. Only the
// active version is read; Activate removes the others.
type Cache struct {
	root    string
	version string
}

// NewCache creates a cache rooted at root for version, e.g. "v2".
func NewCache(root, version string) (*Cache, error) {
	if !semver.IsValid(version) {
		return nil, fmt.Errorf("cache version %q is not a semantic version", version)
	}
	return &Cache{root: root, version: version}, nil
}

// Dir returns the directory of the active version.
func (c *Cache) Dir() string {
	return filepath.Join(c.root, c.version)
}

func key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (c *Cache) path(text string) string {
	return filepath.Join(c.Dir(), key(text)+".wav")
}

// Lookup returns cached audio for text.
func (c *Cache) Lookup(text string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(text))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Store writes audio for text. The write is atomic: readers see either the
// old file or the complete new one.
func (c *Cache) Store(text string, data []byte) error {
	if err := os.MkdirAll(c.Dir(), 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp, err := os.CreateTemp(c.Dir(), ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache entry: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path(text)); err != nil {
		return fmt.Errorf("commit cache entry: %w", err)
	}
	return nil
}

// Fetch is cache-first: it returns cached audio for text, otherwise calls
// fill and stores the result. A failed store still returns the audio.
func (c *Cache) Fetch(ctx context.Context, text string, fill FillFunc) ([]byte, error) {
	if data, ok := c.Lookup(text); ok {
		return data, nil
	}
	data, err := fill(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, ErrNoAudio
	}
	if err := c.Store(text, data); err != nil {
		return data, err
	}
	return data, nil
}

// EffectKey is the cache key for a rendered effect.
func EffectKey(e Effect) string {
	return "effect:" + string(e)
}

// InstallResult summarizes an Install run.
type InstallResult struct {
	Rendered int
	Cached   int
	Failed   []string
}

// Install pre-renders phrases and every effect into the active version.
// Phrases that fail are reported and skipped; Install stops early only
// when ctx ends.
func (c *Cache) Install(ctx context.Context, phrases []string, fill FillFunc, sampleRate int) (InstallResult, error) {
	var res InstallResult

	for _, e := range Effects {
		k := EffectKey(e)
		if _, ok := c.Lookup(k); ok {
			res.Cached++
			continue
		}
		pcm, err := Render(e, sampleRate)
		if err != nil {
			return res, err
		}
		if err := c.Store(k, EncodeWAV(pcm, sampleRate)); err != nil {
			return res, err
		}
		res.Rendered++
	}

	for _, p := range phrases {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, ok := c.Lookup(p); ok {
			res.Cached++
			continue
		}
		if _, err := c.Fetch(ctx, p, fill); err != nil {
			res.Failed = append(res.Failed, p)
			continue
		}
		res.Rendered++
	}
	return res, nil
}

// Versions lists the version directories under root, oldest first.
// Directories whose names are not semantic versions are ignored.
func (c *Cache) Versions() ([]string, error) {
	entries, err := os.ReadDir(c.root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read cache root: %w", err)
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() && semver.IsValid(e.Name()) {
			out = append(out, e.Name())
		}
	}
	semver.Sort(out)
	return out, nil
}

// Activate removes every version directory except the active one and
// returns the removed versions, oldest first.
func (c *Cache) Activate() ([]string, error) {
	versions, err := c.Versions()
	if err != nil {
		return nil, err
	}
	var removed []string
	for _, v := range versions {
		if semver.Compare(v, c.version) == 0 {
			continue
		}
		if err := os.RemoveAll(filepath.Join(c.root, v)); err != nil {
			return removed, fmt.Errorf("remove cache %s: %w", v, err)
		}
		removed = append(removed, v)
	}
	return removed, nil
}
