// Package render turns the finished comic markdown into terminal output and
// extracts a short summary of its contents.
package render

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/charmbracelet/glamour"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultWidth     = 80
	defaultCacheSize = 32
)

// Options configures a Renderer.
type Options struct {
	// Style is a glamour standard style: auto, dark, light, notty, ascii.
	Style string
	// BaseURL resolves relative links and image paths, e.g. the backend's
	// /images/ mount.
	BaseURL string
	// CacheSize is the number of rendered outputs to keep.
	CacheSize int
}

// Renderer renders markdown with glamour. Rendered output is cached per
// width so resizing back and forth does not re-render.
type Renderer struct {
	style   string
	baseURL string
	cache   *lru.Cache[string, string]
}

// New creates a Renderer.
func New(opts Options) (*Renderer, error) {
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, string](size)
	if err != nil {
		return nil, fmt.Errorf("creating render cache: %w", err)
	}
	style := opts.Style
	if style == "" {
		style = "auto"
	}
	return &Renderer{style: style, baseURL: opts.BaseURL, cache: cache}, nil
}

// Style returns the glamour style in use.
func (r *Renderer) Style() string { return r.style }

// Render renders md wrapped at width columns. A non-positive width uses 80.
func (r *Renderer) Render(md string, width int) (string, error) {
	if width <= 0 {
		width = defaultWidth
	}
	key := cacheKey(md, width)
	if out, ok := r.cache.Get(key); ok {
		return out, nil
	}

	opts := []glamour.TermRendererOption{
		glamour.WithStandardStyle(r.style),
		glamour.WithWordWrap(width),
	}
	if r.baseURL != "" {
		opts = append(opts, glamour.WithBaseURL(r.baseURL))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := tr.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	r.cache.Add(key, out)
	return out, nil
}

// Cached reports how many rendered outputs are held.
func (r *Renderer) Cached() int { return r.cache.Len() }

func cacheKey(md string, width int) string {
	sum := sha256.Sum256([]byte(md))
	return strconv.Itoa(width) + ":" + hex.EncodeToString(sum[:])
}
