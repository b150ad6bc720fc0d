package charts

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
	"time"

	"github.com/glensd/personalExpenseTracker/internal/cache"
	"github.com/glensd/personalExpenseTracker/internal/core"
)

const (
	DefaultCacheSize = 256
	DefaultCacheTTL  = 10 * time.Minute
)

// CachedRenderer memoizes rendered images by a digest of the data they show,
// so repeated requests over unchanged analytics skip rendering.
type CachedRenderer struct {
	renderer *Renderer
	images   *cache.LRUCache[[]byte]
}

func NewCachedRenderer(renderer *Renderer, size int, ttl time.Duration) *CachedRenderer {
	if renderer == nil {
		renderer = NewRenderer()
	}
	return &CachedRenderer{
		renderer: renderer,
		images:   cache.NewLRUCache[[]byte](size, ttl),
	}
}

// Cache exposes the underlying cache for registration with a cache.Manager.
func (c *CachedRenderer) Cache() *cache.LRUCache[[]byte] {
	return c.images
}

func (c *CachedRenderer) CategoryPie(totals []core.CategoryTotal) ([]byte, error) {
	h := c.digest("category")
	for _, t := range totals {
		writeString(h, t.Category)
		writeInt(h, t.Total.Cents)
	}
	return c.render(hex.EncodeToString(h.Sum(nil)), func() ([]byte, error) {
		return c.renderer.CategoryPie(totals)
	})
}

func (c *CachedRenderer) MonthlyBars(totals []core.MonthlyTotal) ([]byte, error) {
	h := c.digest("monthly")
	for _, t := range totals {
		writeInt(h, int64(t.Year))
		writeInt(h, int64(t.Month))
		writeInt(h, t.Total.Cents)
	}
	return c.render(hex.EncodeToString(h.Sum(nil)), func() ([]byte, error) {
		return c.renderer.MonthlyBars(totals)
	})
}

func (c *CachedRenderer) render(key string, draw func() ([]byte, error)) ([]byte, error) {
	if img, ok := c.images.Get(key); ok {
		return img, nil
	}
	img, err := draw()
	if err != nil || img == nil {
		return img, err
	}
	c.images.Set(key, img)
	return img, nil
}

func (c *CachedRenderer) digest(kind string) hash.Hash {
	h := sha256.New()
	writeString(h, kind)
	writeInt(h, int64(c.renderer.width()))
	writeInt(h, int64(c.renderer.height()))
	return h
}

// writeString is length-prefixed so adjacent fields cannot run together.
func writeString(h hash.Hash, s string) {
	writeInt(h, int64(len(s)))
	h.Write([]byte(s))
}

func writeInt(h hash.Hash, v int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	h.Write(buf[:])
}
